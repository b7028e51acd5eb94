package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleanmark/htmlcleaner/internal/cleanserver"
)

func serveCmd() *cobra.Command {
	var cfg cleanserver.Config
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP cleaning service",
		Long: `Serve exposes the cleaning engine over HTTP: a JSON endpoint for
one-shot cleaning, a websocket endpoint that streams progress for
large documents, and Prometheus metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
				With().Timestamp().Logger()
			return cleanserver.New(cfg, log).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&cfg.ListenAddress, "listen", ":8460", "address to listen on")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", 8<<20, "maximum request body size in bytes")
	return cmd
}
