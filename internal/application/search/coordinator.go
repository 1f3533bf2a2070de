// Package search coordinates keystroke-driven catalog searches: it debounces
// input, dispatches at most one query per quiescence window, annotates
// results with saved/unsaved state, and guarantees that only the most recent
// query's results ever reach the sink.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Rluis14/Plant-Pals-App/internal/application/catalog"
	"github.com/Rluis14/Plant-Pals-App/internal/application/collection"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
)

const (
	// DefaultDebounceWindow is the quiescence window after the last
	// keystroke before a query is dispatched.
	DefaultDebounceWindow = 300 * time.Millisecond

	// annotateConcurrency bounds the saved-status fan-out.
	annotateConcurrency = 8
)

// Result is one catalog match annotated with the current user's saved state.
type Result struct {
	Plant *domain.Plant
	Saved bool
}

// Update is delivered to the sink once per applied search outcome.
type Update struct {
	Query   string
	Results []Result
	Err     error
	// Cleared marks the empty-input state, which suppresses any
	// "no results" presentation; a real empty result set arrives with
	// Cleared false and a non-nil empty Results slice.
	Cleared bool
}

// Sink receives updates in apply order.
type Sink func(Update)

// Coordinator debounces queries and drops stale responses. Dispatches are
// tagged with a generation; a response whose generation is no longer current
// is discarded on arrival, so an early query can never overwrite a later
// one regardless of network reordering.
type Coordinator struct {
	catalog *catalog.Service
	saved   *collection.Manager
	window  time.Duration
	sink    Sink

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup

	deliverMu sync.Mutex
}

func NewCoordinator(catalogSvc *catalog.Service, saved *collection.Manager, window time.Duration, sink Sink) *Coordinator {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Coordinator{
		catalog: catalogSvc,
		saved:   saved,
		window:  window,
		sink:    sink,
	}
}

// SetQuery records the latest input. A pending dispatch for earlier input is
// cancelled outright (no store call is made for superseded text) and any
// in-flight query is invalidated. Empty or whitespace-only input clears
// results immediately.
func (c *Coordinator) SetQuery(query string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.mu.Unlock()
		c.deliver(gen, Update{Cleared: true})
		return
	}
	c.timer = time.AfterFunc(c.window, func() {
		c.dispatch(gen, trimmed)
	})
	c.mu.Unlock()
}

// Close cancels pending and in-flight work and waits for it to drain. No
// updates are delivered after Close returns.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.gen++ // invalidate anything in flight
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Coordinator) dispatch(gen uint64, query string) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer cancel()

		plants, err := c.catalog.Search(ctx, query)
		if err != nil {
			// One user-facing error, no automatic retry.
			c.deliver(gen, Update{Query: query, Err: err})
			return
		}
		results := c.annotate(ctx, plants)
		c.deliver(gen, Update{Query: query, Results: results})
	}()
}

// annotate fans out one saved-status lookup per result. IsSaved degrades
// lookup failures to unsaved, so a single bad lookup never fails the batch.
func (c *Coordinator) annotate(ctx context.Context, plants []*domain.Plant) []Result {
	results := make([]Result, len(plants))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(annotateConcurrency)
	for i, plant := range plants {
		i, plant := i, plant
		results[i].Plant = plant
		g.Go(func() error {
			results[i].Saved = c.saved.IsSaved(ctx, plant.ID)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// deliver applies the update only if its generation is still current, and
// serializes sink calls so updates arrive in apply order.
func (c *Coordinator) deliver(gen uint64, update Update) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()
	c.mu.Lock()
	stale := c.closed || gen != c.gen
	c.mu.Unlock()
	if stale {
		return
	}
	if update.Results == nil && update.Err == nil && !update.Cleared {
		update.Results = []Result{}
	}
	c.sink(update)
}
