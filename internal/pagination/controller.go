// Package pagination holds the listing's page window and drives page fetches.
package pagination

import (
	"context"
	"errors"
	"sync"

	"github.com/sksahoo1435/scintillate-project/internal/logging"
	"github.com/sksahoo1435/scintillate-project/internal/swapi"
)

// PageSize is the catalog's fixed page size.
const PageSize = 10

// ErrSuperseded is returned when a newer page request was accepted while this
// one was in flight. Its result was discarded.
var ErrSuperseded = errors.New("page request superseded")

type Fetcher interface {
	FetchPage(ctx context.Context, page int) (swapi.Page, error)
}

// Window is the current page (1-indexed) and the total page count.
type Window struct {
	Current int
	Total   int
}

// Contains reports whether n is an addressable page.
func (w Window) Contains(n int) bool {
	return n >= 1 && n <= w.Total
}

func (w Window) HasPrev() bool { return w.Contains(w.Current - 1) }

func (w Window) HasNext() bool { return w.Contains(w.Current + 1) }

// TotalPages rounds up so a partially-filled last page stays addressable.
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// Controller owns the page window and the visible entries. Only the most
// recently accepted request may commit; current and entries are committed
// together on success so they always describe the same page.
type Controller struct {
	fetcher Fetcher

	mu      sync.Mutex
	window  Window
	entries []swapi.Entry
	count   int
	seq     uint64
}

func NewController(fetcher Fetcher) *Controller {
	return &Controller{
		fetcher: fetcher,
		window:  Window{Current: 1, Total: 1},
		entries: []swapi.Entry{},
	}
}

func (c *Controller) Window() Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window
}

// Entries returns a copy of the visible entries.
func (c *Controller) Entries() []swapi.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]swapi.Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Count is the catalog's total entry count from the last successful fetch.
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// RequestPage fetches page n. A page outside the window is a silent no-op:
// accepted is false, nothing is fetched and the error is nil. On fetch
// failure the prior window and entries are left in place.
func (c *Controller) RequestPage(ctx context.Context, n int) (accepted bool, err error) {
	logger := logging.FromContext(ctx)

	c.mu.Lock()
	if !c.window.Contains(n) {
		window := c.window
		c.mu.Unlock()
		logger.Debug().Int("page", n).Int("total", window.Total).Msg("page request out of range")
		return false, nil
	}
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	page, err := c.fetcher.FetchPage(ctx, n)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		logger.Debug().Int("page", n).Msg("discarding superseded page response")
		return true, ErrSuperseded
	}
	if err != nil {
		logger.Warn().Err(err).Int("page", n).Msg("page fetch failed")
		return true, err
	}

	c.count = page.Count
	c.window = Window{Current: n, Total: TotalPages(page.Count)}
	c.entries = append([]swapi.Entry(nil), page.Entries...)
	return true, nil
}

// Next requests the page after the current one.
func (c *Controller) Next(ctx context.Context) (bool, error) {
	return c.RequestPage(ctx, c.Window().Current+1)
}

// Prev requests the page before the current one.
func (c *Controller) Prev(ctx context.Context) (bool, error) {
	return c.RequestPage(ctx, c.Window().Current-1)
}
