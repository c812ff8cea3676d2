// Package tui implements the interactive menu shown when dailybot runs
// with no arguments: submit an update, review pending check-ins, and check
// who is logged in without memorizing subcommands.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dailybot/dailybot-cli/internal/api"
)

// menuState distinguishes the modes of the interactive menu.
type menuState int

const (
	stateMenu    menuState = iota
	stateCompose           // textarea for a new update
	stateLoading           // waiting on an API call
	stateResult            // showing an API result or error
)

// Menu entries in display order.
const (
	menuSubmitUpdate = iota
	menuPendingCheckins
	menuAuthStatus
	menuQuit
)

var menuItems = []struct {
	title string
	desc  string
}{
	{title: "Submit update", desc: "Write a stand-up update and post it"},
	{title: "Pending check-ins", desc: "Show today's unanswered check-ins"},
	{title: "Auth status", desc: "Show the logged-in account"},
	{title: "Quit", desc: "Leave the menu"},
}

// Async API results delivered back into Update.
type updateSubmittedMsg struct {
	result *api.UpdateResult
	err    error
}

type checkinsLoadedMsg struct {
	result *api.StatusResult
	err    error
}

type authStatusLoadedMsg struct {
	result *api.AuthStatusResult
	err    error
}

// Model is the top-level bubbletea model for the interactive menu.
type Model struct {
	client *api.Client
	keys   MenuKeyMap

	width  int
	height int

	state    menuState
	selected int

	editor textarea.Model

	loadingText string
	resultTitle string
	resultBody  string
	err         error
}

// New creates the menu model.
func New(client *api.Client) Model {
	editor := textarea.New()
	editor.Prompt = ""
	editor.ShowLineNumbers = false
	editor.Placeholder = "What did you do? What's next? Any blockers?"
	return Model{
		client: client,
		keys:   DefaultKeyMap(),
		editor: editor,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("DailyBot")
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(m.contentWidth())
		return m, nil

	case updateSubmittedMsg:
		return m.showUpdateResult(msg), nil

	case checkinsLoadedMsg:
		return m.showCheckins(msg), nil

	case authStatusLoadedMsg:
		return m.showAuthStatus(msg), nil
	}

	switch m.state {
	case stateMenu:
		return m.updateMenu(msg)
	case stateCompose:
		return m.updateCompose(msg)
	case stateLoading:
		return m.updateLoading(msg)
	case stateResult:
		return m.updateResult(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		if m.selected < len(menuItems)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Enter):
		switch m.selected {
		case menuSubmitUpdate:
			m.state = stateCompose
			m.editor.Reset()
			m.editor.SetWidth(m.contentWidth())
			return m, m.editor.Focus()
		case menuPendingCheckins:
			m.state = stateLoading
			m.loadingText = "Fetching pending check-ins..."
			return m, m.loadCheckins()
		case menuAuthStatus:
			m.state = stateLoading
			m.loadingText = "Fetching auth status..."
			return m, m.loadAuthStatus()
		case menuQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) updateCompose(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.String() == "ctrl+c":
			return m, tea.Quit

		case key.Matches(keyMsg, m.keys.Escape):
			m.state = stateMenu
			m.editor.Blur()
			return m, nil

		case key.Matches(keyMsg, m.keys.Submit):
			message := trimUpdate(m.editor.Value())
			if message == "" {
				// Nothing typed yet; stay in the editor.
				return m, nil
			}
			m.state = stateLoading
			m.loadingText = "Submitting update..."
			m.editor.Blur()
			return m, m.submitUpdate(message)
		}
	}

	// Everything else, including typed text and cursor blinks, goes to
	// the editor.
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Escape), key.Matches(keyMsg, m.keys.Enter):
		m.state = stateMenu
		m.err = nil
		return m, nil
	}
	return m, nil
}

// contentWidth is the usable width inside the outer padding.
func (m Model) contentWidth() int {
	w := m.width - 8
	if w < 20 {
		w = 60
	}
	return w
}

func (m Model) submitUpdate(message string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.SubmitUpdate(api.UpdateRequest{Message: message})
		return updateSubmittedMsg{result: result, err: err}
	}
}

func (m Model) loadCheckins() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.Status()
		return checkinsLoadedMsg{result: result, err: err}
	}
}

func (m Model) loadAuthStatus() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.AuthStatus()
		return authStatusLoadedMsg{result: result, err: err}
	}
}

// Run starts the interactive menu.
func Run(client *api.Client) error {
	p := tea.NewProgram(New(client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
