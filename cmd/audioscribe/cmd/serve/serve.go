package serve

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"audioscribe/internal/cli"
)

var configPath string
var verbose bool

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	Cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "verbose output")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcription HTTP API server",
	Long: `Run the transcription HTTP API server

- Accepts audio uploads and transcribes them synchronously
- Serves transcription records, health, metrics and swagger docs`,
	Run: func(cmd *cobra.Command, args []string) {
		application, cleanup, err := cli.Bootstrap(configPath, verbose)
		if err != nil {
			log.Fatalf("Failed to initialize: %v\n", err)
		}
		defer cleanup()

		if err := application.Server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v\n", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := application.Server.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("Forced shutdown: %v\n", err)
		}
	},
}
