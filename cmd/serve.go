package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"edtctl/pkg/config"
	"edtctl/pkg/logger"
	"edtctl/pkg/scraper"
	"edtctl/pkg/server"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve merged weeks as JSON over HTTP",
	Long:  `Start an HTTP server exposing GET /v1/week?date=DD/MM/YYYY and GET /ping.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ListenAddr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client, err := scraper.NewClientFromConfig(ctx, cfg)
		if err != nil {
			return err
		}

		log := logger.For("server")
		muxRouter := mux.NewRouter()
		router := server.NewRouter(server.NewWeekHandler(client, log), muxRouter, log)

		return server.NewHTTPServer(router, muxRouter, cfg.Listen(), log).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address, defaults to listen_addr from the config or :8080")
}
