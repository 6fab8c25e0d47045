// Package crawler drives a headless browser session against one
// auction site at a time, discovers lots through paginated or filtered
// queries, deduplicates them and applies the future-date cutoff.
package crawler

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-rod/rod"
	"golang.org/x/time/rate"

	"github.com/ybycrew/leilaoapp-sub000/internal/models"
)

// Config bounds one crawl run. Defaults are conservative: unreliable
// upstream sites reward patience over parallelism.
type Config struct {
	MaxPages    int
	PageSize    int
	MinDelay    time.Duration
	MaxDelay    time.Duration
	PageTimeout time.Duration
	MaxRetries  int
}

// DefaultConfig returns the baseline crawl bounds.
func DefaultConfig() Config {
	return Config{
		MaxPages:    50,
		PageSize:    20,
		MinDelay:    150 * time.Millisecond,
		MaxDelay:    800 * time.Millisecond,
		PageTimeout: 15 * time.Second,
		MaxRetries:  2,
	}
}

// Strategy discovers lots for one site. Implementations receive the
// shared runtime and push raw payloads through rt.Emit.
type Strategy interface {
	Name() string
	Discover(rt *Runtime) error
}

// Runtime is the per-run context handed to a strategy: the browser,
// the collector, pacing and metrics.
type Runtime struct {
	Browser   *rod.Browser
	Collector *Collector
	Config    Config
	Metrics   *Metrics

	limiter *rate.Limiter
}

// Emit pushes one raw payload through extraction, dedup and the date
// cutoff, recording the outcome.
func (rt *Runtime) Emit(raw map[string]any) AddOutcome {
	outcome := rt.Collector.AddRaw(raw)
	rt.Metrics.RecordOutcome(outcome)
	return outcome
}

// Pace blocks for the politeness interval between consecutive network
// operations against the same site: a rate-limiter wait plus a
// randomized delay inside the configured bounds. The randomized delay
// is a required design element against anti-bot defenses, not an
// optimization.
func (rt *Runtime) Pace() {
	if rt.limiter != nil {
		r := rt.limiter.Reserve()
		time.Sleep(r.Delay())
	}
	spread := rt.Config.MaxDelay - rt.Config.MinDelay
	delay := rt.Config.MinDelay
	if spread > 0 {
		delay += time.Duration(rand.Int63n(int64(spread)))
	}
	time.Sleep(delay)
}

// WithRetries runs fn up to MaxRetries+1 times, pacing between
// attempts. The last error is returned when every attempt fails.
func (rt *Runtime) WithRetries(stage string, fn func() error) error {
	var err error
	for attempt := 0; attempt <= rt.Config.MaxRetries; attempt++ {
		if attempt > 0 {
			rt.Metrics.IncRetry()
			rt.Pace()
		}
		if err = fn(); err == nil {
			return nil
		}
		log.Printf("[crawler] %s attempt %d failed: %v", stage, attempt+1, err)
	}
	rt.Metrics.IncError(stage)
	return err
}

// Crawler runs one discovery strategy per auction house over a fresh
// browser session.
type Crawler struct {
	cfg     Config
	metrics *Metrics
}

// New builds a crawler. A nil metrics is accepted and turns the
// counters into no-ops.
func New(cfg Config, metrics *Metrics) *Crawler {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultConfig().MaxPages
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	return &Crawler{cfg: cfg, metrics: metrics}
}

// Run launches a browser, lets the strategy discover lots and returns
// the deduplicated, date-filtered result set. A browser launch failure
// is fatal for this auction house's run; discovery failures inside the
// strategy are logged and partial results are still returned.
func (c *Crawler) Run(strategy Strategy) ([]*models.CanonicalLot, error) {
	browser, err := LaunchBrowser()
	if err != nil {
		c.metrics.IncError("browser-launch")
		return nil, fmt.Errorf("failed to start browser session for %s: %w", strategy.Name(), err)
	}
	defer browser.Close()

	rt := &Runtime{
		Browser:   browser,
		Collector: NewCollector(time.Now()),
		Config:    c.cfg,
		Metrics:   c.metrics,
		limiter:   rate.NewLimiter(rate.Every(c.cfg.MinDelay), 1),
	}

	if err := strategy.Discover(rt); err != nil {
		// Partial results survive a discovery failure; the caller
		// records the error in the run log.
		log.Printf("[crawler] %s discovery ended with error: %v", strategy.Name(), err)
		c.metrics.IncError("discover")
		return rt.Collector.Lots(), err
	}

	discarded, duplicates, past := rt.Collector.Stats()
	fmt.Printf("🏁 %s: %d lots collected (%d discarded, %d duplicates, %d past auctions)\n",
		strategy.Name(), len(rt.Collector.Lots()), discarded, duplicates, past)

	return rt.Collector.Lots(), nil
}
