package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mifos-community/mifosx-mcp/internal/config"
	"github.com/mifos-community/mifosx-mcp/internal/fineract"
)

func newReadClient() (*fineract.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return fineract.NewClient(cfg.Fineract, config.NewLogger(cfg.Logging)), nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	if raw, ok := v.(json.RawMessage); ok {
		cmd.Println(string(raw))
		return nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Client lookups",
}

var clientsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search clients by account number or name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newReadClient()
		if err != nil {
			return err
		}
		results, err := client.Search(cmd.Context(), args[0], "clients")
		if err != nil {
			return err
		}
		return printJSON(cmd, results)
	},
}

var clientsGetCmd = &cobra.Command{
	Use:   "get <client-id>",
	Short: "Fetch one client by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("client id must be numeric: %w", err)
		}
		client, err := newReadClient()
		if err != nil {
			return err
		}
		raw, err := client.ClientByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd, raw)
	},
}

var clientsListCmd = &cobra.Command{
	Use:   "list [search-text]",
	Short: "List clients, optionally filtered",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := ""
		if len(args) == 1 {
			text = args[0]
		}
		client, err := newReadClient()
		if err != nil {
			return err
		}
		raw, err := client.ListClients(cmd.Context(), text, 0, 50)
		if err != nil {
			return err
		}
		return printJSON(cmd, raw)
	},
}

var codesCmd = &cobra.Command{
	Use:   "codes [code-id]",
	Short: "List code groups, or the values of one group",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newReadClient()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			out, err := client.ListCodes(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("code id must be numeric: %w", err)
		}
		group, err := client.CodeValues(cmd.Context(), id, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, group.Values)
	},
}

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List the backend's configured currencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newReadClient()
		if err != nil {
			return err
		}
		out, err := client.Currencies(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, out)
	},
}

func init() {
	clientsCmd.AddCommand(clientsSearchCmd, clientsGetCmd, clientsListCmd)
}
