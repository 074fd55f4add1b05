package tracker

import (
	"context"
	"log/slog"
	"os"
	"time"

	"pricetracker/internal/fetcher"
	"pricetracker/internal/schedule"
)

// Oracle reports whether an instrument's exchange is currently trading.
type Oracle interface {
	IsOpen(ctx context.Context, symbol string) (bool, error)
}

// Instrument pairs a value source with the file its values are written to.
type Instrument struct {
	Symbol string
	Path   string
	Source fetcher.Source

	// Scraped instruments skip the fetch while their output file is
	// fresh; quote instruments skip while the market is closed.
	Scraped bool
}

// Tracker runs the poll-format-write loop over the configured
// instruments, one cycle per interval, forever.
type Tracker struct {
	instruments []Instrument
	oracle      Oracle
	policy      *schedule.Policy
	interval    time.Duration
	logger      *slog.Logger
}

// New creates a tracker. A nil logger falls back to slog.Default().
func New(instruments []Instrument, oracle Oracle, policy *schedule.Policy, interval time.Duration, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	if policy == nil {
		policy = schedule.NewPolicy()
	}
	return &Tracker{
		instruments: instruments,
		oracle:      oracle,
		policy:      policy,
		interval:    interval,
		logger:      logger,
	}
}

// Run executes cycles until ctx is cancelled. Nothing below the
// per-instrument level ever aborts the loop; the only ways out are
// context cancellation and process death.
func (t *Tracker) Run(ctx context.Context) error {
	for {
		if delay := t.policy.WeekendDelay(); delay > 0 {
			t.logger.Info("weekend, sleeping until Monday", "duration", delay)
			if !t.sleep(ctx, delay) {
				return ctx.Err()
			}
		}

		t.logger.Info("starting fetch cycle", "instruments", len(t.instruments))
		t.RunCycle(ctx)
		t.logger.Info("cycle complete", "sleep", t.interval)

		if !t.sleep(ctx, t.interval) {
			return ctx.Err()
		}
	}
}

// RunCycle performs one full pass over the instruments in configured
// order. Each instrument is fetched and written independently; a failure
// on one never prevents processing of the rest.
func (t *Tracker) RunCycle(ctx context.Context) {
	for _, ins := range t.instruments {
		if ctx.Err() != nil {
			return
		}
		t.process(ctx, ins)
	}
}

func (t *Tracker) process(ctx context.Context, ins Instrument) {
	if ins.Scraped {
		if fresh, age := t.policy.FreshEnough(ins.Path); fresh {
			t.logger.Info("output file still fresh, skipping scrape",
				"symbol", ins.Symbol, "path", ins.Path, "age", age)
			return
		}
	} else if t.oracle != nil {
		open, err := t.oracle.IsOpen(ctx, ins.Symbol)
		if err != nil {
			// Fail closed: a state lookup we cannot trust must not lead
			// to overwriting the file with stale or garbage data.
			t.logger.Error("market state lookup failed, treating market as closed",
				"symbol", ins.Symbol, "error", err)
			return
		}
		if !open {
			t.logger.Info("market closed, skipping", "symbol", ins.Symbol)
			return
		}
	}

	t.logger.Debug("fetching", "symbol", ins.Symbol)

	var text string
	value, err := ins.Source.Fetch(ctx)
	if err != nil {
		t.logger.Error("fetch failed", "symbol", ins.Symbol, "error", err)
		text = fetcher.ErrorText(err)
	} else {
		text = fetcher.FormatValue(value)
	}

	if err := os.WriteFile(ins.Path, []byte(text), 0o644); err != nil {
		t.logger.Error("failed to write output file",
			"symbol", ins.Symbol, "path", ins.Path, "error", err)
		return
	}

	t.logger.Info("wrote value", "symbol", ins.Symbol, "value", text, "path", ins.Path)
}

// sleep waits for d or until ctx is cancelled; it reports whether the
// full duration elapsed.
func (t *Tracker) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
