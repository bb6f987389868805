package cli

import (
	"github.com/spf13/cobra"

	"github.com/shpitdev/air-assist/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recommendation HTTP API",
	Long: `Starts the HTTP API:

  GET  /healthz
  GET  /v1/recommendations?destination=...   query parameters are the answers
  POST /v1/recommendations                   JSON object of answers

Pipeline failures are answered with 502 and {"error":{"code":"<kind>","message":"..."}}.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (env: AIRASSIST_ADDR, default :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = serveAddr
	}

	p, err := newPipeline(cmd.Context())
	if err != nil {
		return err
	}
	return server.ListenAndServe(cmd.Context(), cfg.Server.Addr, server.NewEngine(p, logger), logger)
}
