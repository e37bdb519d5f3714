// Package serve runs the HTTP API
package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardsense/cardsense-india/cmd/root"
	"cardsense/cardsense-india/internal/api"
	"cardsense/cardsense-india/internal/logging"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var address string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the statement upload HTTP API",
	Long: `Run the HTTP API. Statements are uploaded as multipart form data to
/api/statements/upload with the caller's user ID in the X-User-ID header.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (overrides server.address)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer(cmd.Context())
	if err != nil {
		return err
	}
	cfg := c.GetConfig()
	if address != "" {
		cfg.Server.Address = address
	}

	server := api.NewServer(c.GetUploadService(), c.GetAnalyzer(), c.GetCategorizer(), api.Options{
		MaxUploadBytes:    cfg.MaxUploadBytes(),
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
		Burst:             cfg.Server.Burst,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		SummaryTTL:        cfg.SummaryTTL(),
	}, c.GetLogger())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(cfg.Server.Address)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		root.Log.Info("Shutting down HTTP server", logging.F("signal", sig.String()))
		return server.Shutdown(shutdownTimeout)
	}
}
