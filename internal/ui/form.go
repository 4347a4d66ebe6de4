package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tally/internal/backoffice"
	"github.com/five82/tally/internal/listview"
	"github.com/five82/tally/internal/pages"
)

// submitDoneMsg carries the outcome of a form submission.
type submitDoneMsg struct{ err error }

// formModal edits or creates one record. Validation messages come back on
// the form and are shown under each input.
type formModal struct {
	ctx    context.Context
	page   pages.Lister
	form   *pages.Form
	inputs []textinput.Model
	focus  int
	busy   bool
	err    string
}

func newFormModal(ctx context.Context, page pages.Lister, form *pages.Form) *formModal {
	f := &formModal{ctx: ctx, page: page, form: form}
	for i, field := range form.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 500
		in.Placeholder = placeholder(field)
		in.SetValue(field.Value)
		if i == 0 {
			in.Focus()
		}
		f.inputs = append(f.inputs, in)
	}
	return f
}

// placeholder hints the expected input for a field.
func placeholder(field pages.FormField) string {
	for _, rule := range strings.Split(field.Rules, ",") {
		if opts, ok := strings.CutPrefix(rule, "oneof="); ok {
			return strings.ReplaceAll(opts, " ", " | ")
		}
	}
	switch field.Kind {
	case listview.KindDate:
		return listview.DateLayout
	case listview.KindBool:
		return "yes | no"
	case listview.KindNumber, listview.KindDecimal:
		return "0"
	}
	return ""
}

func (f *formModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		f.busy = false
		switch {
		case msg.err == nil, errors.Is(msg.err, backoffice.ErrNotFound):
			return f, nil, true
		case errors.Is(msg.err, pages.ErrInvalidForm):
			f.err = ""
			f.focusFirstError()
		default:
			f.err = backoffice.UserMessage(msg.err)
		}
		return f, nil, false

	case tea.KeyMsg:
		if f.busy {
			return f, nil, false
		}
		switch {
		case key.Matches(msg, keys.Escape):
			return f, nil, true
		case key.Matches(msg, keys.Submit):
			return f, f.submit(), false
		case key.Matches(msg, keys.Confirm):
			if f.focus == len(f.inputs)-1 {
				return f, f.submit(), false
			}
			return f, f.move(1), false
		case key.Matches(msg, keys.NextField):
			return f, f.move(1), false
		case key.Matches(msg, keys.PrevField):
			return f, f.move(-1), false
		}
		if len(f.inputs) > 0 {
			var cmd tea.Cmd
			f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
			return f, cmd, false
		}
	}
	return f, nil, false
}

func (f *formModal) move(delta int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *formModal) focusFirstError() {
	for i, field := range f.form.Fields {
		if field.Error != "" {
			f.inputs[f.focus].Blur()
			f.focus = i
			f.inputs[i].Focus()
			return
		}
	}
}

// submit copies the inputs onto the form and sends it.
func (f *formModal) submit() tea.Cmd {
	for i, in := range f.inputs {
		f.form.Set(f.form.Fields[i].Key, in.Value())
	}
	f.busy = true
	f.err = ""
	page, ctx, form := f.page, f.ctx, f.form
	return func() tea.Msg {
		return submitDoneMsg{err: page.Submit(ctx, form)}
	}
}

func (f *formModal) View(theme Theme, width, height int) string {
	styles := theme.Styles().WithBackground(theme.FocusBg)
	boxWidth := min(max(width-10, 40), 72)
	labelWidth := 14

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(f.form.Title))
	b.WriteString("\n\n")

	for i, field := range f.form.Fields {
		label := styles.MutedText
		if i == f.focus {
			label = styles.AccentText
		}
		f.inputs[i].Width = boxWidth - labelWidth - 6
		b.WriteString(label.Width(labelWidth).Render(field.Label))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if field.Error != "" {
			b.WriteString(lipgloss.NewStyle().Width(labelWidth).Render(""))
			b.WriteString(styles.DangerText.Render(field.Error))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case f.busy:
		b.WriteString(styles.WarningText.Render("Saving..."))
	case f.err != "":
		b.WriteString(styles.DangerText.Render(f.err))
	default:
		b.WriteString(styles.FaintText.Render("tab next · enter on last field or ctrl+s save · esc cancel"))
	}

	return placeOverlay(theme, width, height, modalBox(theme, boxWidth).Render(b.String()))
}
