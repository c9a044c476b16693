package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/docufill/pdf-form-filler/internal/batch"
	"github.com/docufill/pdf-form-filler/internal/config"
	"github.com/docufill/pdf-form-filler/internal/fill"
	"github.com/docufill/pdf-form-filler/internal/highlight"
	"github.com/docufill/pdf-form-filler/internal/server"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode.
func setupLogging(cfg *config.Config) *log.Logger {
	flags := log.LstdFlags
	if cfg.IsDebug() {
		flags |= log.Lshortfile
	}
	logger := log.New(os.Stderr, "", flags)
	if !cfg.IsServerMode() && !cfg.IsDebug() {
		// Batch mode stays quiet unless asked.
		logger.SetOutput(io.Discard)
	}
	return logger
}

// runServerMode blocks until a shutdown signal arrives or the server
// fails.
func runServerMode(ctx context.Context, cancel context.CancelFunc, srv *server.Server, logger *log.Logger) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		logger.Printf("Received signal: %s", sig)
		logger.Println("Initiating graceful shutdown...")
		cancel()
		if err := <-serverErrCh; err != nil {
			logger.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}
	case err := <-serverErrCh:
		if err != nil {
			logger.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	logger.Println("Server stopped successfully")
}

// runBatchMode processes one ZIP and exits.
func runBatchMode(ctx context.Context, cfg *config.Config, processor *batch.Processor, logger *log.Logger) error {
	zipBytes, err := os.ReadFile(cfg.InputZip)
	if err != nil {
		return fmt.Errorf("failed to read input archive: %w", err)
	}

	values := fill.ValidateValues(cfg.Values, logger)
	if len(values) == 0 {
		return fmt.Errorf("no usable field values given (try --name, --email, ...)")
	}

	out, err := processor.ProcessZip(ctx, zipBytes, values)
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfg.OutputZip, out, 0o600); err != nil {
		return fmt.Errorf("failed to write output archive: %w", err)
	}

	logger.Printf("Wrote %s", cfg.OutputZip)
	return nil
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			fmt.Printf("pdf-form-filler %s (built %s, commit %s)\n", version, buildTime, gitCommit)
			os.Exit(0)
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogging(cfg)

	tables, err := config.LoadTables(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	pipeline := fill.NewPipeline(tables.Mapping, tables.Patterns, logger)
	processor := batch.NewProcessor(pipeline, cfg.MaxFileSize, cfg.Workers, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsServerMode() {
		highlighter := highlight.NewHighlighter(logger)
		srv := server.New(cfg, processor, highlighter, logger)
		runServerMode(ctx, cancel, srv, logger)
		return
	}

	if err := runBatchMode(ctx, cfg, processor, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
