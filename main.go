package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"pricetracker/internal/config"
	"pricetracker/internal/fetcher"
	"pricetracker/internal/investing"
	"pricetracker/internal/logging"
	"pricetracker/internal/schedule"
	"pricetracker/internal/tracker"
	"pricetracker/internal/yahoo"
)

func main() {
	configPath := pflag.StringP("config", "c", "",
		"path to the YAML configuration file defining symbols and output paths (e.g. config.yaml)")
	intervalNote := pflag.Bool("interval-note",
		false, "print the configured refresh interval and exit")
	pflag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: the --config flag is required")
		pflag.Usage()
		os.Exit(1)
	}

	// Fatal startup errors land on stderr; the file logger only exists
	// once the configuration that describes it has loaded.
	startupLog := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		startupLog.Error("fatal configuration error", "error", err)
		os.Exit(1)
	}

	if *intervalNote {
		fmt.Printf("Refresh interval: %d seconds (configured in %s)\n",
			cfg.Settings.SleepInterval, *configPath)
		return
	}

	logger := logging.New(cfg.Settings)
	for _, w := range cfg.Warnings {
		logger.Warn("configuration warning", "detail", w)
	}

	logger.Info("price tracker initialized",
		"instruments", len(cfg.Symbols),
		"interval", cfg.Settings.SleepInterval,
		"log_level", cfg.Settings.LogLevel,
	)

	// Create missing output directories up front; failure here is fatal.
	for _, ins := range cfg.Symbols {
		dir := filepath.Dir(ins.Filepath)
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("exiting due to fatal file system error",
				"dir", dir, "error", err)
			startupLog.Error("fatal file system error", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	// Handle interrupt signals so an operator kill lands between steps
	// rather than mid-write.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received interrupt signal, shutting down")
		cancel()
	}()

	yahooClient := yahoo.NewClient(cfg.YahooBaseURL)

	instruments := make([]tracker.Instrument, 0, len(cfg.Symbols))
	for _, ins := range cfg.Symbols {
		var source fetcher.Source
		if ins.Scraped() {
			source = investing.NewFundFetcher(ins.Symbol, cfg.InvestingBaseURL)
		} else {
			source = yahoo.NewQuoteFetcher(yahooClient, ins.Symbol)
		}
		instruments = append(instruments, tracker.Instrument{
			Symbol:  ins.Symbol,
			Path:    ins.Filepath,
			Source:  source,
			Scraped: ins.Scraped(),
		})
	}

	t := tracker.New(
		instruments,
		yahooClient,
		schedule.NewPolicy(),
		time.Duration(cfg.Settings.SleepInterval)*time.Second,
		logger,
	)

	if err := t.Run(ctx); err != nil {
		logger.Info("tracker stopped", "reason", err)
	}
}
