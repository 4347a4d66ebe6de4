package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color palette. Every color is a hex string.
type Theme struct {
	Name string

	Background string // behind everything
	Surface    string // header, command bar and status line
	SurfaceAlt string // table panel
	FocusBg    string // focused panel and modals

	SelectionBg   string // cursor row
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// StatusColors colors order, payment and appointment statuses.
	StatusColors map[string]string
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	statusColors map[string]string
	muted        string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:   fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:     fg(t.Accent).Bold(true),
		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),

		statusColors: t.StatusColors,
		muted:        t.Muted,
	}
}

// StatusColor returns the color for a record status, or "" when the value is
// not a known status.
func (t Theme) StatusColor(status string) string {
	return t.StatusColors[normalizeStatus(status)]
}

// StatusStyle returns a foreground style for the given status.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color, ok := s.statusColors[normalizeStatus(status)]
	if !ok {
		color = s.muted
	}
	return fg(color)
}

// WithBackground returns a copy of s with every style on bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo, &out.Selected,
	} {
		*st = st.Background(bg)
	}
	return out
}

func normalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

var themeOrder = []Theme{ledgerTheme(), harborTheme(), paperTheme()}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range themeOrder {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return themeOrder[0]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, t := range themeOrder {
		if strings.EqualFold(t.Name, current) {
			return themeOrder[(i+1)%len(themeOrder)].Name
		}
	}
	return themeOrder[0].Name
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themeOrder))
	for i, t := range themeOrder {
		names[i] = t.Name
	}
	return names
}

// statusPalette maps the statuses the backend reports onto a theme's
// semantic colors. Anything unlisted renders muted.
func statusPalette(t Theme) map[string]string {
	return map[string]string{
		// sales orders
		"pending":    t.Faint,
		"processing": t.Info,
		"shipped":    t.Accent,
		"delivered":  t.Success,
		"cancelled":  t.Danger,
		// payments
		"unpaid":   t.Warning,
		"partial":  t.Warning,
		"paid":     t.Success,
		"refunded": t.Faint,
		// appointments
		"scheduled": t.Accent,
		"confirmed": t.Info,
		"completed": t.Success,
	}
}

// ledgerTheme is the default: dark ink with a teal accent.
func ledgerTheme() Theme {
	t := Theme{
		Name:          "Ledger",
		Background:    "#0e1416",
		Surface:       "#152024",
		SurfaceAlt:    "#1b2a2f",
		FocusBg:       "#20343a",
		SelectionBg:   "#1f5a5e",
		SelectionText: "#eef6f4",
		Border:        "#2f4a50",
		BorderFocus:   "#3fb8af",
		Text:          "#dfe9e7",
		Muted:         "#8fa5a3",
		Faint:         "#5f7674",
		Accent:        "#3fb8af",
		Success:       "#7cc47f",
		Warning:       "#e3b25c",
		Danger:        "#e06c6c",
		Info:          "#6fa8dc",
	}
	t.StatusColors = statusPalette(t)
	return t
}

// harborTheme is a cool slate blue with an amber accent.
func harborTheme() Theme {
	t := Theme{
		Name:          "Harbor",
		Background:    "#10131c",
		Surface:       "#171c28",
		SurfaceAlt:    "#1e2535",
		FocusBg:       "#262f43",
		SelectionBg:   "#3a4a6b",
		SelectionText: "#f3f1ea",
		Border:        "#35405a",
		BorderFocus:   "#f0a04b",
		Text:          "#e4e2dc",
		Muted:         "#a3a9b8",
		Faint:         "#6b7386",
		Accent:        "#f0a04b",
		Success:       "#8ccf7e",
		Warning:       "#f2cc60",
		Danger:        "#ef6f6c",
		Info:          "#78b7e0",
	}
	t.StatusColors = statusPalette(t)
	return t
}

// paperTheme is a light theme for bright terminals.
func paperTheme() Theme {
	t := Theme{
		Name:          "Paper",
		Background:    "#f7f5ef",
		Surface:       "#ece8dd",
		SurfaceAlt:    "#f2efe6",
		FocusBg:       "#fbfaf6",
		SelectionBg:   "#cfe3e8",
		SelectionText: "#1c2326",
		Border:        "#c9c2b1",
		BorderFocus:   "#1f6f8b",
		Text:          "#2a2f33",
		Muted:         "#5d646b",
		Faint:         "#8a8f93",
		Accent:        "#1f6f8b",
		Success:       "#2f7d32",
		Warning:       "#9a6a00",
		Danger:        "#b3261e",
		Info:          "#3565a8",
	}
	t.StatusColors = statusPalette(t)
	return t
}
