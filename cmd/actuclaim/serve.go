package main

import (
	"github.com/spf13/cobra"

	"github.com/actuclaim/actuclaim/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculation API over HTTP",
	Long: `Serve the JSON API:

  POST /calculate        case fields in, damages case out
  POST /calculate-pji    simple pre-judgment interest on an amount
  GET  /api/tbill-rate   average stored rate for ?start=&end=
  GET  /healthz`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, settings, err := newEngine(cmd)
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = settings.Server.Addr
		}

		server := api.NewServer(engine)
		server.SetLogger(loggerFor(cmd))
		return server.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default: server.addr from settings)")
	rootCmd.AddCommand(serveCmd)
}
