package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tally/internal/backoffice"
	"github.com/five82/tally/internal/listview"
	"github.com/five82/tally/internal/pages"
	"github.com/five82/tally/internal/state"
)

const checkboxWidth = 4

// statusColumns are colored with the theme's status palette.
var statusColumns = map[string]bool{
	"status":         true,
	"payment_status": true,
}

// renderTable renders the active page inside a titled box.
func (m Model) renderTable(height int) string {
	page := m.page()
	title := m.tableTitle()
	inner := max(m.width-2, 0)
	bodyHeight := max(height-2, 1)

	var content string
	switch {
	case len(m.view.Rows) > 0:
		content = m.renderRows(page.Columns(), inner, bodyHeight)
	default:
		content = m.renderEmpty(inner, bodyHeight)
	}
	return renderTitledBox(m.theme, title, content, m.width, height, true)
}

func (m Model) tableTitle() string {
	page := m.page()
	v := m.view
	parts := []string{page.Title()}
	if v.Total > 0 || v.Matched > 0 {
		if v.Search.Active() && v.Matched != v.Total {
			parts = append(parts, fmt.Sprintf("%d of %d", v.Matched, v.Total))
		} else {
			parts = append(parts, fmt.Sprintf("%d", v.Total))
		}
	}
	if v.Sort.Active() {
		for _, c := range page.Columns() {
			if c.Key == v.Sort.Key {
				parts = append(parts, "by "+c.Label+" "+sortArrow(v.Sort.Direction))
			}
		}
	}
	return strings.Join(parts, " · ")
}

// renderEmpty renders the empty, failed or loading placeholder.
func (m Model) renderEmpty(width, height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	var msg string
	switch {
	case m.view.Phase == state.Failed:
		msg = styles.DangerText.Render(fmt.Sprintf("Could not load %s", strings.ToLower(m.page().Title()))) +
			"\n" + styles.MutedText.Render(backoffice.UserMessage(m.view.LastError)) +
			"\n\n" + styles.FaintText.Render("press r to retry")
	case m.loading() || m.view.Phase == state.Idle:
		msg = styles.WarningText.Render("Loading...")
	default:
		msg = styles.MutedText.Render(m.view.EmptyMessage)
		switch m.view.Empty {
		case listview.NoMatches:
			msg += "\n" + styles.FaintText.Render("esc clears the search")
		case listview.PastLastPage:
			msg += "\n" + styles.FaintText.Render("[ goes back a page")
		}
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.FocusBg)))
}

// visibleColumns returns the column indexes and widths that fit in width,
// scrolled so the column cursor stays on screen.
func visibleColumns(cols []pages.Column, cursor, width int) ([]int, []int) {
	avail := width - checkboxWidth
	start := 0
	for start < cursor {
		used := 0
		for i := start; i <= cursor && i < len(cols); i++ {
			used += cols[i].Width + 1
		}
		if used <= avail {
			break
		}
		start++
	}

	var idx, widths []int
	used := 0
	for i := start; i < len(cols); i++ {
		w := cols[i].Width
		if used+w+1 > avail {
			w = avail - used - 1
			if w < 3 {
				break
			}
		}
		idx = append(idx, i)
		widths = append(widths, w)
		used += w + 1
	}
	return idx, widths
}

// renderRows renders the header row and the rows around the cursor.
func (m Model) renderRows(cols []pages.Column, width, height int) string {
	v := m.view
	idx, widths := visibleColumns(cols, m.column, width)
	bgColor := m.theme.FocusBg
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	// Header
	var head strings.Builder
	head.WriteString(bg.Render(fit(ternary(v.AllSelected, "[x]", "[ ]"), checkboxWidth), styles.MutedText))
	for n, i := range idx {
		c := cols[i]
		label := c.Label
		if v.Sort.Key == c.Key {
			label += " " + sortArrow(v.Sort.Direction)
		}
		style := styles.MutedText.Bold(true)
		if i == m.column {
			style = styles.AccentText.Bold(true).Underline(true)
		}
		head.WriteString(bg.Render(fit(label, widths[n]), style))
		head.WriteString(bg.Space())
	}
	lines := []string{bg.FillLine(head.String(), width)}

	// Rows
	visible := max(height-1, 1)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(v.Rows))
	for r := start; r < end; r++ {
		lines = append(lines, m.renderRow(v.Rows[r], cols, idx, widths, width, r == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row pages.Row, cols []pages.Column, idx, widths []int, width int, cursor bool) string {
	bgColor := m.theme.FocusBg
	if cursor {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)
	text := styles.Text
	if cursor {
		text = styles.Selected
	}

	var b strings.Builder
	box := ternary(row.Selected, "[x]", "[ ]")
	b.WriteString(bg.Render(fit(box, checkboxWidth), ternaryStyle(row.Selected, styles.AccentText, styles.FaintText)))
	for n, i := range idx {
		cell := ""
		if i < len(row.Cells) {
			cell = row.Cells[i]
		}
		style := text
		if statusColumns[cols[i].Key] && m.theme.StatusColor(cell) != "" && !cursor {
			style = styles.StatusStyle(cell).Background(lipgloss.Color(bgColor))
		}
		b.WriteString(bg.Render(fit(cell, widths[n]), style))
		b.WriteString(bg.Space())
	}
	return bg.FillLine(b.String(), width)
}

func sortArrow(d listview.Direction) string {
	switch d {
	case listview.Ascending:
		return "▲"
	case listview.Descending:
		return "▼"
	}
	return ""
}

func ternaryStyle(cond bool, a, b lipgloss.Style) lipgloss.Style {
	if cond {
		return a
	}
	return b
}
