package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/logging"
)

// logsMsg carries the tail of the client log file.
type logsMsg struct {
	lines []string
	err   error
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logging.Tail(path, LogTailLines)
		return logsMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogs(msg logsMsg) {
	m.logErr = msg.err
	if msg.err != nil {
		m.logViewport.SetContent("")
		return
	}
	if len(msg.lines) == 0 {
		m.logViewport.SetContent("(log is empty)")
		return
	}
	m.logViewport.SetContent(strings.Join(msg.lines, "\n"))
	m.logViewport.GotoBottom()
}

// handleLogsKey scrolls the log overlay.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Quit):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, loadLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m Model) renderLogs() string {
	title := "Client log"
	if m.logPath != "" {
		title += " · " + truncateMiddle(m.logPath, max(m.width/2, 10))
	}
	content := m.logViewport.View()
	if m.logErr != nil {
		styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
		content = styles.DangerText.Render("Could not read log: " + m.logErr.Error())
	}
	return renderTitledBox(m.theme, title, content, m.width, m.height, true)
}
