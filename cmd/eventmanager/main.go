// Command eventmanager reads an attendee roster, writes a personalized
// thank-you letter per attendee into the output directory, and reports the
// peak registration hour and weekday.
//
// Settings come from the environment (optionally preloaded from .env); flags
// override the input, template, and output paths:
//
//	eventmanager -input event_attendees.csv -template form_letter.html.tmpl -output output
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/PivtoranisV/event-manager/internal/adapter/civicinfo"
	"github.com/PivtoranisV/event-manager/internal/adapter/httpadapter"
	"github.com/PivtoranisV/event-manager/internal/adapter/letter"
	"github.com/PivtoranisV/event-manager/internal/adapter/roster"
	"github.com/PivtoranisV/event-manager/internal/config"
	"github.com/PivtoranisV/event-manager/internal/domain"
	"github.com/PivtoranisV/event-manager/internal/observability"
	"github.com/PivtoranisV/event-manager/internal/pipeline"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// newMetrics is swapped in tests to avoid registering twice.
var newMetrics = observability.NewMetrics

// newLogger is swapped in tests to capture the run log.
var newLogger = observability.NewRunLogger

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(exitFatal)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return exitFatal
	}

	flags := flag.NewFlagSet("eventmanager", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cfg.InputPath, "input", cfg.InputPath, "attendee roster (.csv or .xlsx)")
	flags.StringVar(&cfg.TemplatePath, "template", cfg.TemplatePath, "letter template file")
	flags.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "directory for generated letters")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", flags.Args())
		flags.Usage()
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("EventManager initialized.")
	metrics := newMetrics()

	// Initialize representative lookup (feature-flagged via CIVIC_ENABLED / CIVIC_KEY_FILE).
	var lookup domain.RepresentativeLookup
	if cfg.CivicEnabled {
		key, err := civicinfo.ReadAPIKey(cfg.CivicKeyFile)
		if err != nil {
			logger.Error("failed to load civic API key", "error", err, "path", cfg.CivicKeyFile)
			return exitFatal
		}
		client := civicinfo.NewClient(key, civicinfo.Options{
			BaseURL:   cfg.CivicBaseURL,
			Timeout:   cfg.CivicTimeout,
			RateLimit: cfg.CivicRateLimit,
		}, metrics, logger)
		lookup = civicinfo.NewCachedLookup(client, cfg.CivicCacheSize, metrics)
		metrics.LookupEnabled.Set(1)
		logger.Info("civic lookup enabled", "cache_size", cfg.CivicCacheSize, "timeout", cfg.CivicTimeout, "rate_limit", cfg.CivicRateLimit)
	} else {
		logger.Info("civic lookup disabled")
	}

	renderer, err := letter.NewRenderer(cfg.TemplatePath)
	if err != nil {
		logger.Error("failed to load letter template", "error", err, "path", cfg.TemplatePath)
		return exitFatal
	}

	source, err := roster.Open(cfg.InputPath)
	if err != nil {
		logger.Error("failed to open roster", "error", err)
		return exitFatal
	}
	defer func() {
		if err := source.Close(); err != nil {
			logger.Error("roster close error", "error", err)
		}
	}()

	p := pipeline.New(
		source,
		pipeline.NewTransformer(lookup, logger),
		renderer,
		letter.NewWriter(cfg.OutputDir),
		logger,
		metrics,
		pipeline.Options{
			AbortOnParseFailure: cfg.AbortOnParseFailure(),
			TrackWeekday:        cfg.TrackWeekday,
		},
	)

	if cfg.MetricsAddr != "" {
		srv := httpadapter.NewServer(cfg.MetricsAddr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
		}()
	}

	summary, err := p.Run(ctx)
	if err != nil {
		logger.Error("run failed", "error", err, "rows_read", summary.RowsRead, "letters_written", summary.LettersWritten)
		return exitFatal
	}

	logger.Info("run complete",
		"rows_read", summary.RowsRead,
		"letters_written", summary.LettersWritten,
		"rows_skipped", summary.RowsSkipped,
		"fallbacks", summary.Fallbacks,
		"output_dir", cfg.OutputDir,
		"duration", summary.Duration,
	)
	return exitOK
}
