// pkg/cli/root.go
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/johananj/geocaption/internal/config"
	"github.com/johananj/geocaption/internal/logger"
)

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interruption signals
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		logger.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	rootCmd := &cobra.Command{
		Use:   "geocaption",
		Short: "Burn capture time and place captions into photos",
		Long: `A tool that reads EXIF capture time and GPS coordinates from a folder of
photos, reverse-geocodes coordinates to a place name, and writes each image
with a shadowed caption into a mirrored output tree.`,
	}

	cfg := config.New()
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCommand(ctx, cfg))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("Error executing command: %v", err)
		os.Exit(1)
	}
}
