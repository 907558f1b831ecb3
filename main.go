package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/openclaw/labelgen/api"
	"github.com/openclaw/labelgen/batch"
	"github.com/openclaw/labelgen/config"
	"github.com/openclaw/labelgen/label"
)

var version = "v0.1.0"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:   "labelgen",
		Short: "Barcode and QR label generator",
		Long: `labelgen renders QR codes and linear barcodes as print-ready labels.

A label can carry a product name, a price and the company logo. Labels are
saved one by one as PNG files, or in batches as PNG files or a paginated PDF
sheet (US Letter, 3 x 10).`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")

	root.AddCommand(
		newGenerateCmd(&configPath),
		newNextCmd(),
		newSymbologiesCmd(),
		newBatchCmd(&configPath),
		newSettingsCmd(&configPath),
		newServeCmd(&configPath),
	)
	return root
}

// app is the state shared by every command that needs configuration.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	settings *config.SettingsStore
}

func setup(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	return &app{
		cfg:      cfg,
		log:      log,
		settings: config.NewSettingsStore(cfg.SettingsPath()),
	}, nil
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// processor loads the configured fonts. A missing font file is fatal.
func (a *app) processor() (*batch.Processor, error) {
	fonts, err := label.LoadFonts(label.FontOptions{
		RegularPath: a.cfg.Fonts.Regular,
		BoldPath:    a.cfg.Fonts.Bold,
		NameSize:    a.cfg.Fonts.NameSize,
		PriceSize:   a.cfg.Fonts.PriceSize,
		CaptionSize: a.cfg.Fonts.CaptionSize,
	})
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	return batch.NewProcessor(fonts, a.log), nil
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the label API and preview page on the configured address",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), a)
		},
	}
}

// runServe blocks until ctx is cancelled, then shuts the server down.
func runServe(ctx context.Context, a *app) error {
	p, err := a.processor()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: a.cfg.Listen,
		Handler: api.NewRouter(&api.Server{
			Processor: p,
			Settings:  a.settings,
			Log:       a.log,
			Version:   version,
			Timeout:   a.cfg.RequestTimeout.Duration,
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: a.cfg.RequestTimeout.Duration + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	a.log.Info("starting labelgen", "version", version, "listen", a.cfg.Listen, "data_dir", a.cfg.DataDir)

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("HTTP server shutdown error", "error", err)
	}
	a.log.Info("goodbye")
	return nil
}
