package tools

import (
	"context"
	"encoding/json"
	"fmt"

	mcpTypes "github.com/mark3labs/mcp-go/mcp"

	"github.com/mifos-community/mifosx-mcp/internal/codes"
	"github.com/mifos-community/mifosx-mcp/internal/fineract"
)

// Reader is the read-only backend surface the lookup tools use.
// Implemented by fineract.Client.
type Reader interface {
	Search(ctx context.Context, query, resource string) ([]fineract.SearchResult, error)
	ClientByID(ctx context.Context, clientID int64) (json.RawMessage, error)
	ListClients(ctx context.Context, text string, page, size int) (json.RawMessage, error)
	ListCodes(ctx context.Context) ([]fineract.Code, error)
	CodeValues(ctx context.Context, codeID int64, name string) (codes.Group, error)
	Currencies(ctx context.Context) ([]codes.Currency, error)
}

func (r *Registry) registerLookups(reader Reader) {
	r.add(mcpTypes.NewTool("search_client",
		mcpTypes.WithDescription("Search for a client account by account number or full name."),
		mcpTypes.WithString("query", mcpTypes.Required(), mcpTypes.Description("Account number or client name (e.g. 00000001)")),
	), func(ctx context.Context, args map[string]interface{}) (json.RawMessage, error) {
		query, _ := args["query"].(string)
		results, err := reader.Search(ctx, query, "clients")
		if err != nil {
			return nil, err
		}
		return json.Marshal(results)
	})

	r.add(mcpTypes.NewTool("get_client_by_id",
		mcpTypes.WithDescription("Get a client's full record by id."),
		mcpTypes.WithNumber("clientId", mcpTypes.Required(), mcpTypes.Description("Client id (e.g. 1)")),
	), func(ctx context.Context, args map[string]interface{}) (json.RawMessage, error) {
		id, ok := args["clientId"].(float64)
		if !ok {
			return nil, fmt.Errorf(`argument "clientId" is required`)
		}
		return reader.ClientByID(ctx, int64(id))
	})

	r.add(mcpTypes.NewTool("list_clients",
		mcpTypes.WithDescription("List clients, optionally filtered by a free-text search."),
		mcpTypes.WithString("searchText", mcpTypes.Description("Optional search text (e.g. John)")),
	), func(ctx context.Context, args map[string]interface{}) (json.RawMessage, error) {
		text, _ := args["searchText"].(string)
		return reader.ListClients(ctx, text, 0, 50)
	})

	r.add(mcpTypes.NewTool("list_codes",
		mcpTypes.WithDescription("List the backend's code groups."),
	), func(ctx context.Context, args map[string]interface{}) (json.RawMessage, error) {
		out, err := reader.ListCodes(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(out)
	})

	r.add(mcpTypes.NewTool("list_code_values",
		mcpTypes.WithDescription("List the values of one code group by its numeric id."),
		mcpTypes.WithNumber("codeId", mcpTypes.Required(), mcpTypes.Description("Code group id (e.g. 4)")),
	), func(ctx context.Context, args map[string]interface{}) (json.RawMessage, error) {
		id, ok := args["codeId"].(float64)
		if !ok {
			return nil, fmt.Errorf(`argument "codeId" is required`)
		}
		group, err := reader.CodeValues(ctx, int64(id), fmt.Sprintf("code %d", int64(id)))
		if err != nil {
			return nil, err
		}
		return json.Marshal(group.Values)
	})

	r.add(mcpTypes.NewTool("list_currencies",
		mcpTypes.WithDescription("List the currencies configured on the backend."),
	), func(ctx context.Context, args map[string]interface{}) (json.RawMessage, error) {
		out, err := reader.Currencies(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(out)
	})
}
