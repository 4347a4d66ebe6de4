package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"Navigation", "Columns & pages", "Records", "General"}

// renderHelp renders the help overlay from the key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Background(lipgloss.Color(m.theme.FocusBg)).
		Width(12)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	groups := m.keys.FullHelp()
	for i, group := range groups {
		title := ""
		if i < len(helpSectionTitles) {
			title = helpSectionTitles[i]
		}
		b.WriteString(styles.AccentText.Bold(true).Render(title))
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	content := b.String()
	if m.height > 0 {
		lines := strings.Split(content, "\n")
		if limit := m.height - 6; limit > 0 && len(lines) > limit {
			// Two columns when the list does not fit.
			half := (len(lines) + 1) / 2
			left := strings.Join(lines[:half], "\n")
			right := strings.Join(lines[half:], "\n")
			content = lipgloss.JoinHorizontal(lipgloss.Top,
				lipgloss.NewStyle().Width(34).Render(left),
				lipgloss.NewStyle().Width(34).Render(right))
			return placeOverlay(m.theme, m.width, m.height, modalBox(m.theme, 74).Render(content))
		}
	}
	return placeOverlay(m.theme, m.width, m.height, modalBox(m.theme, 40).Render(content))
}
