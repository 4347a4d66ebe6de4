package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/pages"
)

// handleSearchKey feeds the search bar. Every edit goes to the page, which
// debounces it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.page()
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeBrowse
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		page.ClearSearch()
		m.sync()
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.mode = modeBrowse
		m.searchInput.Blur()
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if value := m.searchInput.Value(); value != before {
		page.Search(value)
		m.cursor = 0
	}
	m.sync()
	return m, cmd
}

// filterModal toggles which fields the search term is matched against.
type filterModal struct {
	page   pages.Lister
	cursor int
}

func newFilterModal(page pages.Lister) *filterModal {
	return &filterModal{page: page}
}

func (f *filterModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, false
	}
	filters := f.page.View().Filters
	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Confirm), key.Matches(km, keys.Filters):
		return f, nil, true
	case key.Matches(km, keys.Up):
		f.cursor = max(f.cursor-1, 0)
	case key.Matches(km, keys.Down):
		f.cursor = min(f.cursor+1, len(filters)-1)
	case key.Matches(km, keys.Select):
		if f.cursor < len(filters) {
			_ = f.page.ToggleFilter(filters[f.cursor].Key)
		}
	}
	return f, nil, false
}

func (f *filterModal) View(theme Theme, width, height int) string {
	styles := theme.Styles().WithBackground(theme.FocusBg)
	v := f.page.View()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Search fields"))
	b.WriteString("\n\n")
	for i, filter := range v.Filters {
		box := ternary(filter.Active, "[x] ", "[ ] ")
		style := styles.Text
		if i == f.cursor {
			style = styles.Selected
		}
		b.WriteString(style.Render(box + filter.Label))
		b.WriteString("\n")
	}
	if len(v.Filters) == 0 {
		b.WriteString(styles.MutedText.Render("No searchable fields"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("space toggle · esc close"))

	return placeOverlay(theme, width, height, modalBox(theme, 36).Render(b.String()))
}
