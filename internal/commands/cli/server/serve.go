// Package server provides server-related CLI commands.
package server

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_segop/internal/config"
	"github.com/andrei-cloud/go_segop/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the payload server",
		Long: `Start a TCP server that builds segOP payloads on request.

Requests are a two-character command followed by a JSON body:
  BP{"text":"Hello world","tier":"T1_METADATA"}   -> BQ00 + payload bytes
  CP{"blob_hex":"deadbeef"}                       -> CQ00 + P2SOP commitment blob
Failures answer with the next command code and a two-digit error code.`,
		RunE: runServe,
	}

	// Add serve command specific flags that can override config.
	cmd.Flags().String("host", "localhost", "Server host")
	cmd.Flags().Int("port", 1600, "Server port")

	// Bind serve command flags to config.
	config.BindPFlag("server.host", cmd.Flags().Lookup("host")) //nolint:errcheck
	config.BindPFlag("server.port", cmd.Flags().Lookup("port")) //nolint:errcheck

	return cmd
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Get()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv, err := server.NewServer(serverAddr, cfg.Payload.MaxSize)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stopChan)

	select {
	case <-stopChan:
		log.Info().Msg("shutting down server...")
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		// Start returned without error; keep serving until signalled.
		<-stopChan
		log.Info().Msg("shutting down server...")
	}

	if err := srv.Stop(); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	return nil
}
