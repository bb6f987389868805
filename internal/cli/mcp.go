package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shpitdev/air-assist/internal/mcpserver"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server exposing the recommend_trip tool.

By default the server speaks JSON-RPC over stdio. Use --http to serve the
streamable HTTP transport instead.

Client configuration:
  {
    "mcpServers": {
      "airassist": {
        "command": "/path/to/airassist",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "HTTP listen address (empty = use stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	p, err := newPipeline(cmd.Context())
	if err != nil {
		return err
	}
	srv, err := mcpserver.New(p)
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", mcpHTTPAddr)
		return srv.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}
	return srv.Run(cmd.Context())
}
