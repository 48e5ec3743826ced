package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skill-matrix/internal/app"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		container, err := newContainer()
		if err != nil {
			exitErr("bootstrap container", err)
		}

		a, cleanup, err := app.Bootstrap(container)
		if err != nil {
			_ = container.Close()
			exitErr("bootstrap app", err)
		}
		defer func() {
			if err := cleanup(); err != nil {
				container.Logger.Sugar().Warnf("cleanup error: %v", err)
			}
		}()

		addr, err := app.ListenAddr(container.Config.App.HTTPPort)
		if err != nil {
			exitErr("invalid HTTP port", err)
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- a.Fiber.Listen(addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil {
				exitErr("server error", err)
			}
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
				container.Logger.Sugar().Warnf("shutdown error: %v", err)
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
