package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/johananj/geocaption/internal/archive"
	"github.com/johananj/geocaption/internal/caption"
	"github.com/johananj/geocaption/internal/config"
	"github.com/johananj/geocaption/internal/geocode"
	"github.com/johananj/geocaption/internal/journal"
	"github.com/johananj/geocaption/internal/logger"
	"github.com/johananj/geocaption/internal/pipeline"
	"github.com/johananj/geocaption/internal/progress"
	"github.com/johananj/geocaption/internal/render"
	"github.com/johananj/geocaption/pkg/s3client"
)

func newRunCommand(ctx context.Context, cfg *config.Config) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "run [flags] <input-folder> <output-folder>",
		Short: "Caption a folder of photos into a mirrored output tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				if err := cfg.LoadFile(configFile); err != nil {
					return err
				}
			}
			cfg.Input = args[0]
			cfg.Output = args[1]
			return runBatch(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Path to a config file")

	// Overlay options
	cmd.Flags().StringVar(&cfg.Overlay.FontPath, "font", "", "Path to a .ttf font file (built-in font when empty)")
	cmd.Flags().Float64Var(&cfg.Overlay.FontSize, "font-size", 40, "Caption font size in points")
	cmd.Flags().StringVar(&cfg.Overlay.TextColor, "text-color", "#ffffff", "Caption color as #RRGGBB")
	cmd.Flags().StringVar(&cfg.Overlay.ShadowColor, "shadow-color", "#000000", "Caption shadow color as #RRGGBB")
	cmd.Flags().IntVar(&cfg.Overlay.MaxSize, "max-size", 2048, "Downscale images whose longer dimension exceeds this (0 disables)")

	// Geocoding options
	cmd.Flags().StringVar(&cfg.Geocode.URL, "geocode-url", "https://nominatim.openstreetmap.org", "Reverse-geocoding service base URL")
	cmd.Flags().DurationVar(&cfg.Geocode.Timeout, "geocode-timeout", 10*time.Second, "Timeout for each reverse-geocoding lookup")

	// Run options
	cmd.Flags().BoolVar(&cfg.Run.Resume, "resume", false, "Skip files recorded in the journal by a previous run")
	cmd.Flags().StringVar(&cfg.Run.JournalPath, "journal", "", "Path to the resume journal file")

	// Optional S3 archive destination
	cmd.Flags().StringVar(&cfg.S3.Endpoint, "s3-endpoint", "", "S3 endpoint URL (enables archiving of outputs)")
	cmd.Flags().StringVar(&cfg.S3.Region, "s3-region", "us-east-1", "S3 region")
	cmd.Flags().StringVar(&cfg.S3.Bucket, "s3-bucket", "", "S3 bucket name")
	cmd.Flags().StringVar(&cfg.S3.AccessKey, "s3-access-key", "", "S3 access key")
	cmd.Flags().StringVar(&cfg.S3.SecretKey, "s3-secret-key", "", "S3 secret key")
	cmd.Flags().BoolVar(&cfg.S3.UseSSL, "s3-use-ssl", true, "Use SSL for the S3 connection")
	cmd.Flags().StringVar(&cfg.S3.Prefix, "s3-prefix", "", "Prefix for S3 object keys")

	return cmd
}

func runBatch(ctx context.Context, cfg *config.Config) error {
	logger.SetLevel(cfg.LogLevel)

	textColor, err := config.ParseColor(cfg.Overlay.TextColor)
	if err != nil {
		return err
	}
	shadowColor, err := config.ParseColor(cfg.Overlay.ShadowColor)
	if err != nil {
		return err
	}

	face := caption.LoadFace(cfg.Overlay.FontPath, cfg.Overlay.FontSize)
	renderer := render.New(face, textColor, shadowColor)

	resolver := geocode.NewClient(cfg.Geocode.URL, cfg.Geocode.Timeout)

	jnl := journal.New(cfg.Run.JournalPath)
	if cfg.Run.Resume {
		if err := jnl.Load(); err != nil {
			logger.Warn("Could not load journal: %v", err)
		}
	}

	var arch *archive.Archiver
	if cfg.S3.Enabled() {
		client, err := s3client.New(ctx, s3client.Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
			Prefix:    cfg.S3.Prefix,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		arch = archive.New(client)
	}

	pipe := pipeline.New(cfg, resolver, renderer, jnl, arch, progress.New())
	return pipe.Run(ctx)
}
