package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/NickRemizov/face-review/internal/config"
	"github.com/NickRemizov/face-review/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Face Review web server.
The server backs the browser workspace: review sessions, face data for the
gallery views, overlay rendering, thumbnail framing and the consistency
audit.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides WEB_PORT)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides WEB_HOST)")
}

// resolveServeHostPort resolves port and host from flags and environment.
// Flags win over env vars, env vars over defaults.
func resolveServeHostPort(cmd *cobra.Command, cfg *config.Config) (int, string) {
	port := cfg.Web.Port
	host := cfg.Web.Host

	if flagPort := mustGetInt(cmd, "port"); flagPort > 0 {
		port = flagPort
	}
	if flagHost := mustGetString(cmd, "host"); flagHost != "" {
		host = flagHost
	}
	return port, host
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if cfg.Recognition.URL == "" {
		return errors.New("RECOGNITION_URL environment variable is required")
	}
	if cfg.Gallery.URL == "" {
		return errors.New("GALLERY_API_URL environment variable is required")
	}

	port, host := resolveServeHostPort(cmd, cfg)

	server, err := web.NewServer(cfg, port, host)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Face Review on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
