// Plantapi serves the plant catalog over the REST API the plantmanager TUI
// talks to. It is meant for local development and demos.
//
// Usage:
//
//	plantapi serve [--addr :3333] [--catalog plants.yaml]
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"plantmanager/internal/catalog"
	"plantmanager/internal/logging"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "plantapi",
	Short:   "Plant catalog API",
	Long:    `A read-only REST API serving plants and their environments, paged and sorted the way plantmanager requests them.`,
	Version: version,
}

var (
	addr        string
	catalogPath string
	logLevel    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog API server",
	Example: `  # Serve the built-in catalog on the default port
  plantapi serve

  # Serve your own catalog
  plantapi serve --addr :8080 --catalog ./plants.yaml --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":3333", "Address to listen on")
	serveCmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog file (default: built-in catalog)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel, ""); err != nil {
		return err
	}
	defer logging.Sync()
	log := logging.GetLogger()

	c, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           catalog.NewRouter(c, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("plant api listening",
			zap.String("addr", addr),
			zap.Int("plants", len(c.Plants)),
			zap.Int("environments", len(c.Environments)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Seed()
	}
	return catalog.Load(path)
}
