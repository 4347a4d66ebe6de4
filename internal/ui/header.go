package ui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tally/internal/pages"
)

// renderHeader renders the logo, tab strip and connection status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	parts := []string{bg.Render("tally", styles.Logo)}

	tabs := make([]string, 0, len(m.pages))
	for i, p := range m.pages {
		label := p.Title()
		if compact {
			label = truncate(label, 8)
		}
		text := fmt.Sprintf("%d %s", i+1, label)
		if i == m.active {
			tabs = append(tabs, bg.Render(text, styles.AccentText.Bold(true).Underline(true)))
		} else {
			tabs = append(tabs, bg.Render(text, styles.MutedText))
		}
	}
	parts = append(parts, bg.Join(tabs, "  "))

	switch {
	case m.loading():
		parts = append(parts, bg.Render(m.spinner.View()+" loading", styles.WarningText))
	case m.view.Offline:
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	case !m.view.LastUpdated.IsZero():
		parts = append(parts, bg.Render("● ONLINE", styles.SuccessText))
	}

	if !compact {
		if !m.view.LastUpdated.IsZero() {
			parts = append(parts, bg.Render("updated "+humanizeDuration(m.now.Sub(m.view.LastUpdated))+" ago", styles.FaintText))
		}
		if host := apiHost(m.apiURL); host != "" {
			parts = append(parts, bg.Render(host, styles.FaintText))
		}
		if who := m.sessionLabel(); who != "" {
			parts = append(parts, bg.Render(who, styles.MutedText))
		}
	}

	switch {
	case m.session.Expired(m.now):
		parts = append(parts, bg.Render("TOKEN EXPIRED", styles.DangerText))
	case m.session.ExpiresSoon(m.now, SessionWarnWindow):
		parts = append(parts, bg.Render("token expires in "+humanizeDuration(m.session.ExpiresAt.Sub(m.now)), styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

func (m Model) sessionLabel() string {
	who := m.session.UserID
	if who == "" {
		who = m.session.OrganizationID
	}
	if who == "" {
		return ""
	}
	if m.session.Role != "" {
		return who + " (" + m.session.Role + ")"
	}
	return who
}

func apiHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}

// renderCommandBar shows the search bar while searching and key hints
// otherwise.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.mode == modeSearch {
		m.searchInput.Width = max(m.width-24, 10)
		hint := bg.Render("enter done · esc clear", styles.FaintText)
		return styles.Header.Width(m.width).Render(m.searchInput.View() + bg.Spaces(2) + hint)
	}

	h := m.help
	h.Styles = help.Styles{
		ShortKey:       styles.AccentText,
		ShortDesc:      styles.MutedText,
		ShortSeparator: styles.FaintText,
		Ellipsis:       styles.FaintText,
	}
	h.Width = max(m.width-lipgloss.Width(m.theme.Name)-8, 10)
	hints := h.ShortHelpView(m.keys.ShortHelp())

	theme := bg.Render("T", styles.AccentText) + bg.Sep(":") + bg.Render(m.theme.Name, styles.FaintText)
	return styles.Header.Width(m.width).Render(hints + bg.Spaces(2) + theme)
}

// renderStatusLine shows pagination, selection and the latest notification.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	v := m.view

	var parts []string
	if v.Pagination.TotalPages > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("page %d/%d", v.Pagination.CurrentPage, v.Pagination.TotalPages), styles.Text))
	}
	parts = append(parts, bg.Render(fmt.Sprintf("%d per page", v.PageSize), styles.MutedText))
	if v.SelectedCount > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d selected", v.SelectedCount), styles.AccentText))
	}
	if v.ServerPage && v.Sort.Active() {
		parts = append(parts, bg.Render("sorted within this page", styles.FaintText))
	}
	if v.Term != "" {
		parts = append(parts, bg.Render(fmt.Sprintf("search %q", truncate(v.Term, 24)), styles.InfoText))
	}

	if m.hasToast {
		style := styles.SuccessText
		if m.toast.Level == pages.ToastError {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(truncate(m.toast.Text, max(m.width/2, 20)), style))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, bg.Spaces(2)))
}
