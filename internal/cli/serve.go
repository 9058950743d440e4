package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Demwunz/topo/internal/config"
	"github.com/Demwunz/topo/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve [path]",
	Short: "Run topo as an MCP tool server over stdio",
	Long: `serve exposes topo_score, topo_scan, topo_index, and topo_exact as MCP
tools over stdio, watching the repository root and triggering a full rescan
whenever files change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		ctx := context.Background()
		srv, err := mcpserver.New(ctx, root, config.Default())
		if err != nil {
			return fmt.Errorf("create mcp server: %w", err)
		}
		defer srv.Close()

		return srv.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
