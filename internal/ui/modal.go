package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/confirm"
	"github.com/five82/tally/internal/pages"
)

// Modal is the interface for modal dialogs.
// Update returns the updated modal, a command, and whether the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmDoneMsg carries the outcome of a confirmed action.
type confirmDoneMsg struct{ err error }

// confirmModal asks before a destructive action. Privileged actions collect
// the manager password; a rejected password keeps the modal open.
type confirmModal struct {
	ctx      context.Context
	page     pages.Lister
	password textinput.Model
	busy     bool
	note     string
}

func newConfirmModal(ctx context.Context, page pages.Lister) *confirmModal {
	pw := textinput.New()
	pw.Prompt = ""
	pw.Placeholder = "manager password"
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'
	pw.CharLimit = 128
	c := &confirmModal{ctx: ctx, page: page, password: pw}
	return c
}

// Init focuses the password field for privileged actions.
func (c *confirmModal) Init() tea.Cmd {
	if c.page.Confirmation().Request.Privileged {
		return c.password.Focus()
	}
	return nil
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case confirmDoneMsg:
		c.busy = false
		c.note = ""
		if errors.Is(msg.err, pages.ErrLoading) {
			c.note = msg.err.Error()
		}
		if c.page.Confirmation().Phase == confirm.Requested {
			c.password.SetValue("")
			return c, c.password.Focus(), false
		}
		return c, nil, true

	case tea.KeyMsg:
		if c.busy {
			return c, nil, false
		}
		privileged := c.page.Confirmation().Request.Privileged
		switch {
		case key.Matches(msg, keys.Escape):
			c.page.CancelConfirm()
			return c, nil, true
		case key.Matches(msg, keys.Confirm), !privileged && msg.String() == "y":
			c.busy = true
			c.password.Blur()
			page, ctx, credential := c.page, c.ctx, c.password.Value()
			return c, func() tea.Msg {
				return confirmDoneMsg{err: page.Confirm(ctx, credential)}
			}, false
		case !privileged && msg.String() == "n":
			c.page.CancelConfirm()
			return c, nil, true
		}
		if privileged {
			var cmd tea.Cmd
			c.password, cmd = c.password.Update(msg)
			return c, cmd, false
		}
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles().WithBackground(theme.FocusBg)
	st := c.page.Confirmation()
	req := st.Request

	var b strings.Builder
	b.WriteString(styles.DangerText.Render(titleWord(req.Action) + " " + req.Subject + "?"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("This cannot be undone."))
	b.WriteString("\n\n")

	if req.Privileged {
		b.WriteString(styles.Text.Render("Manager password"))
		b.WriteString("\n")
		b.WriteString(c.password.View())
		b.WriteString("\n")
		if st.FieldError != "" {
			b.WriteString(styles.DangerText.Render(st.FieldError))
		}
		b.WriteString("\n\n")
	}

	if c.note != "" {
		b.WriteString(styles.WarningText.Render(c.note))
		b.WriteString("\n\n")
	}

	switch {
	case c.busy:
		b.WriteString(styles.WarningText.Render("Working..."))
	case req.Privileged:
		b.WriteString(styles.FaintText.Render("enter confirm · esc cancel"))
	default:
		b.WriteString(styles.FaintText.Render("y/enter confirm · n/esc cancel"))
	}

	return placeOverlay(theme, width, height, modalBox(theme, 52).Render(b.String()))
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
