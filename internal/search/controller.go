// Package search turns search-box keystrokes and filter toggles into
// listview.SearchConfig values for a list page.
package search

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/romdo/go-debounce"

	"github.com/five82/tally/internal/listview"
)

// DefaultWait is the keystroke inactivity required before a term is emitted.
const DefaultWait = 300 * time.Millisecond

// ErrUnknownField is returned when toggling a field that is not searchable.
var ErrUnknownField = errors.New("unknown search field")

// Controller holds the search term and active filters of one list page and
// reports changes through its emit callback. It never filters data itself.
//
// Keystrokes are debounced; clearing the term and toggling a filter emit
// immediately. The emit callback may run on a timer goroutine.
type Controller struct {
	mu     sync.Mutex
	fields []string
	term   string
	active []string
	emit   func(listview.SearchConfig)

	debounced func()
	cancel    func()
}

// NewController builds a controller for the given searchable fields, all of
// which start active. A non-positive wait uses DefaultWait.
func NewController(fields []string, wait time.Duration, emit func(listview.SearchConfig)) *Controller {
	if wait <= 0 {
		wait = DefaultWait
	}
	if emit == nil {
		emit = func(listview.SearchConfig) {}
	}
	c := &Controller{
		fields: slices.Clone(fields),
		active: slices.Clone(fields),
		emit:   emit,
	}
	c.debounced, c.cancel = debounce.New(wait, c.flush)
	return c
}

// Input records the full current text of the search box.
func (c *Controller) Input(text string) {
	c.mu.Lock()
	c.term = text
	if strings.TrimSpace(text) != "" {
		c.mu.Unlock()
		c.debounced()
		return
	}
	c.cancel()
	cfg := c.configLocked()
	c.mu.Unlock()
	c.emit(cfg)
}

// Clear empties the term and emits right away.
func (c *Controller) Clear() {
	c.Input("")
}

// Toggle flips one filter field and emits with the current term.
func (c *Controller) Toggle(field string) error {
	c.mu.Lock()
	if !slices.Contains(c.fields, field) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if i := slices.Index(c.active, field); i >= 0 {
		c.active = slices.Delete(c.active, i, i+1)
	} else {
		c.active = append(c.active, field)
	}
	c.cancel()
	cfg := c.configLocked()
	c.mu.Unlock()
	c.emit(cfg)
	return nil
}

// Fields returns the declared searchable fields.
func (c *Controller) Fields() []string {
	return slices.Clone(c.fields)
}

// Config returns the current term and active filters.
func (c *Controller) Config() listview.SearchConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.configLocked()
}

// Term returns the raw term as typed.
func (c *Controller) Term() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.term
}

// Close drops any pending emission.
func (c *Controller) Close() {
	c.cancel()
}

func (c *Controller) flush() {
	c.mu.Lock()
	cfg := c.configLocked()
	c.mu.Unlock()
	c.emit(cfg)
}

// configLocked keeps active filters in declaration order.
func (c *Controller) configLocked() listview.SearchConfig {
	cfg := listview.SearchConfig{Term: strings.TrimSpace(c.term)}
	for _, f := range c.fields {
		if slices.Contains(c.active, f) {
			cfg.ActiveFilters = append(cfg.ActiveFilters, f)
		}
	}
	return cfg
}
