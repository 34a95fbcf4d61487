package main

import (
	"os"

	"github.com/mifos-community/mifosx-mcp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
