package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/pages"
)

// Hub connects background work to the running program. Pages and the poller
// call Notify from their own goroutines; the poller asks Active which page to
// refresh.
type Hub struct {
	mu      sync.Mutex
	program *tea.Program
	active  pages.Lister
}

// NewHub returns a hub with no program attached. Notify is a no-op until Run
// attaches one.
func NewHub() *Hub {
	return &Hub{}
}

// Notify asks the UI to re-read page state. It must not be called from
// inside the program's Update.
func (h *Hub) Notify() {
	h.mu.Lock()
	p := h.program
	h.mu.Unlock()
	if p != nil {
		p.Send(refreshMsg{})
	}
}

// Active returns the page on screen, or nil before the UI starts.
func (h *Hub) Active() pages.Lister {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

func (h *Hub) setActive(l pages.Lister) {
	if h == nil {
		return
	}
	h.mu.Lock()
	h.active = l
	h.mu.Unlock()
}

func (h *Hub) attach(p *tea.Program) {
	h.mu.Lock()
	h.program = p
	h.mu.Unlock()
}
