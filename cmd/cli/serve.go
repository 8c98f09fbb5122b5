package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sellerkit/sellerkit/internal/initialization"
	"github.com/sellerkit/sellerkit/internal/server"
)

func NewServeCommand(container *initialization.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the enrichment HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(container)
		},
	}
}

func runServer(container *initialization.Container) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := server.NewHTTPServer(server.HTTPServerDependencies{
		Pipeline: container.Pipeline,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", container.Config.HTTPAddress).Msg("starting HTTP server")
		errCh <- app.Listen(container.Config.HTTPAddress)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down HTTP server")
		return app.Shutdown()
	}
}
