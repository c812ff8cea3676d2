package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// trimUpdate normalizes a composed update: trailing whitespace per line
// dropped, then the whole text trimmed.
func trimUpdate(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (m Model) showUpdateResult(msg updateSubmittedMsg) Model {
	m.state = stateResult
	m.resultTitle = "Update"
	if msg.err != nil {
		m.err = msg.err
		return m
	}

	var b strings.Builder
	if msg.result.FollowupsCount == 0 {
		b.WriteString(WarningStyle.Render("Update submitted but no check-ins were matched."))
	} else {
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("Update submitted to %d check-in(s)", msg.result.FollowupsCount)))
		for _, followup := range msg.result.AttachedFollowups {
			label := "Submitted"
			if followup.Action == "updated" {
				label = "Updated"
			}
			b.WriteString("\n")
			b.WriteString(ListDimStyle.Render("- "))
			b.WriteString(DetailValueStyle.Render(followup.FollowupName))
			b.WriteString(ListDimStyle.Render(" (" + label + ")"))
		}
	}
	m.resultBody = b.String()
	return m
}

func (m Model) showCheckins(msg checkinsLoadedMsg) Model {
	m.state = stateResult
	m.resultTitle = "Pending Check-ins"
	if msg.err != nil {
		m.err = msg.err
		return m
	}

	checkins := msg.result.PendingCheckins
	if len(checkins) == 0 {
		m.resultBody = EmptyStateStyle.Render("No pending check-ins for today.")
		return m
	}

	var b strings.Builder
	for i, checkin := range checkins {
		if i > 0 {
			b.WriteString("\n\n")
		}
		name := checkin.FollowupName
		if name == "" {
			name = "Check-in"
		}
		b.WriteString(CardTitleStyle.Render(name))
		for j, question := range checkin.TemplateQuestions {
			b.WriteString("\n")
			b.WriteString(ListDimStyle.Render(fmt.Sprintf("%d. ", j+1)))
			b.WriteString(DetailValueStyle.Render(question.Question))
			if question.IsBlocker {
				b.WriteString(" ")
				b.WriteString(BlockerStyle.Render("[blocker]"))
			}
		}
	}
	m.resultBody = b.String()
	return m
}

func (m Model) showAuthStatus(msg authStatusLoadedMsg) Model {
	m.state = stateResult
	m.resultTitle = "Auth Status"
	if msg.err != nil {
		m.err = msg.err
		return m
	}

	var b strings.Builder
	writeField := func(label, value string) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(DetailLabelStyle.Render(label))
		b.WriteString(DetailValueStyle.Render(value))
	}
	writeField("Email", msg.result.UserEmail())
	writeField("Organization", msg.result.Organization.Name)
	if msg.result.Organization.UUID != "" {
		writeField("Org UUID", msg.result.Organization.UUID)
	}
	m.resultBody = b.String()
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	header := HeaderStyle.Render("DailyBot")

	var body string
	switch m.state {
	case stateMenu:
		body = m.viewMenu()
	case stateCompose:
		body = m.viewCompose()
	case stateLoading:
		body = EmptyStateStyle.Render(m.loadingText)
	case stateResult:
		body = m.viewResult()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, "", m.viewStatusBar())
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m Model) viewMenu() string {
	var b strings.Builder
	for i, item := range menuItems {
		if i > 0 {
			b.WriteString("\n")
		}
		if i == m.selected {
			b.WriteString(SelectedListItemStyle.Render(item.title))
		} else {
			b.WriteString(ListItemStyle.Render(item.title))
		}
		b.WriteString("  ")
		b.WriteString(ListDimStyle.Render(item.desc))
	}
	return CardStyle.Render(b.String())
}

func (m Model) viewCompose() string {
	title := CardTitleStyle.Render("New update")
	return CardStyle.Render(title + "\n" + m.editor.View())
}

func (m Model) viewResult() string {
	title := CardTitleStyle.Render(m.resultTitle)
	body := m.resultBody
	if m.err != nil {
		body = ErrorStyle.Render("Error: ") + DetailValueStyle.Render(m.err.Error())
	}

	// Clamp long lines to the window so the card never wraps badly.
	maxWidth := m.contentWidth()
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, maxWidth, "…")
	}

	return CardStyle.Render(title + "\n" + strings.Join(lines, "\n"))
}

func (m Model) viewStatusBar() string {
	var hints []string
	switch m.state {
	case stateMenu:
		hints = []string{hint("↑/↓", "move"), hint("enter", "select"), hint("q", "quit")}
	case stateCompose:
		hints = []string{hint("ctrl+d", "submit"), hint("esc", "back"), hint("ctrl+c", "quit")}
	case stateLoading:
		hints = []string{hint("ctrl+c", "quit")}
	case stateResult:
		hints = []string{hint("esc", "back"), hint("q", "quit")}
	}
	return StatusBarStyle.Render(strings.Join(hints, "  "))
}

func hint(keyStr, desc string) string {
	return StatusKeyStyle.Render(keyStr) + StatusBarStyle.Render(" "+desc)
}
