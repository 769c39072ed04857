// Package checker probes the external links referenced by a set of
// documents. Each unique URL is probed exactly once by a bounded pool of
// workers and the outcomes are merged with the documents that reference
// them.
package checker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/lukemcguire/mdlinkcheck/docs"
	"github.com/lukemcguire/mdlinkcheck/result"
)

// Engine dispatches one probe per unique URL across a fixed worker pool.
type Engine struct {
	cfg        Config
	prober     Prober
	limiter    *rate.Limiter
	progressCh chan<- Event
}

// New creates an Engine that probes over HTTP.
// The progressCh parameter is optional; pass nil to disable progress events.
func New(cfg Config, progressCh chan<- Event) *Engine {
	return NewWithProber(cfg, NewHTTPProber(cfg), progressCh)
}

// NewWithProber creates an Engine that uses prober for every URL.
func NewWithProber(cfg Config, prober Prober, progressCh chan<- Event) *Engine {
	cfg = cfg.withDefaults()

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}

	return &Engine{
		cfg:        cfg,
		prober:     prober,
		limiter:    limiter,
		progressCh: progressCh,
	}
}

// Run probes every URL in refs and returns one LinkResult per URL, in the
// order probes completed. refs must not be modified while Run is active.
//
// Broken links are not errors. An error is returned only when a probe could
// not be performed at all or ctx was cancelled; the run is aborted then.
func (e *Engine) Run(ctx context.Context, refs docs.ReferenceMap) (*result.Result, error) {
	start := time.Now()
	res := &result.Result{Links: make([]result.LinkResult, 0, len(refs))}

	if len(refs) == 0 {
		return res, nil
	}

	urls := refs.URLs()
	workers := min(e.cfg.Workers, len(urls))

	// Fan out every job before any worker starts.
	jobs := make(chan string, len(urls))
	for _, rawURL := range urls {
		jobs <- rawURL
	}
	close(jobs)

	outcomes := make(chan Outcome, len(urls))

	log.Debug().Int("urls", len(urls)).Int("workers", workers).Msg("Starting link probes")

	errGroup, groupCtx := errgroup.WithContext(ctx)
	for range workers {
		errGroup.Go(func() error {
			for rawURL := range jobs {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				if e.limiter != nil {
					if err := e.limiter.Wait(groupCtx); err != nil {
						return fmt.Errorf("rate limiter wait: %w", err)
					}
				}
				out, err := e.prober.Probe(groupCtx, rawURL)
				if err != nil {
					return fmt.Errorf("probe %s: %w", rawURL, err)
				}
				// A cancelled attempt says nothing about the link.
				if err := groupCtx.Err(); err != nil {
					return err
				}
				out.URL = rawURL
				outcomes <- out
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- errGroup.Wait()
		close(outcomes)
	}()

	// Fan in: merge each outcome with the documents referencing its URL.
	for out := range outcomes {
		link := result.LinkResult{
			URL:           out.URL,
			Status:        out.Status,
			OK:            out.OK,
			StatusCode:    out.StatusCode,
			ErrorCategory: out.Category,
			Sources:       refs.Sources(out.URL),
		}
		res.Links = append(res.Links, link)
		if !link.OK {
			res.Stats.BrokenCount++
		}
		e.emit(ctx, Event{
			URL:     link.URL,
			Status:  link.Status,
			OK:      link.OK,
			Checked: len(res.Links),
			Broken:  res.Stats.BrokenCount,
			Total:   len(urls),
		})
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("probe links: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("probe links: %w", err)
	}

	res.Stats.TotalChecked = len(res.Links)
	res.Stats.Duration = time.Since(start)

	log.Debug().
		Int("checked", res.Stats.TotalChecked).
		Int("broken", res.Stats.BrokenCount).
		Dur("duration", res.Stats.Duration).
		Msg("Link probes finished")

	return res, nil
}

// emit forwards evt to the progress channel unless the caller has gone away.
func (e *Engine) emit(ctx context.Context, evt Event) {
	if e.progressCh == nil {
		return
	}
	select {
	case e.progressCh <- evt:
	case <-ctx.Done():
	}
}
