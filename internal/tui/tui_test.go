package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dailybot/dailybot-cli/internal/api"
	"github.com/dailybot/dailybot-cli/internal/identity"
)

// newTestModel builds a model whose client points nowhere; tests drive the
// model with messages directly and never let a command run.
func newTestModel() Model {
	id := identity.Identity{Kind: identity.KindSession, Source: identity.SourceSession, Secret: "tok"}
	return New(api.New("http://127.0.0.1:1", id))
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model, cmd
}

func TestMenuNavigation(t *testing.T) {
	m := newTestModel()

	m, _ = apply(t, m, keyMsg(tea.KeyDown))
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.selected)
	}

	for i := 0; i < 10; i++ {
		m, _ = apply(t, m, keyMsg(tea.KeyDown))
	}
	if m.selected != len(menuItems)-1 {
		t.Fatalf("selected = %d, want clamped to %d", m.selected, len(menuItems)-1)
	}

	for i := 0; i < 10; i++ {
		m, _ = apply(t, m, keyMsg(tea.KeyUp))
	}
	if m.selected != 0 {
		t.Fatalf("selected = %d, want clamped to 0", m.selected)
	}
}

func TestMenuEnterOpensCompose(t *testing.T) {
	m := newTestModel()
	m.selected = menuSubmitUpdate

	m, _ = apply(t, m, keyMsg(tea.KeyEnter))
	if m.state != stateCompose {
		t.Fatalf("state = %v, want stateCompose", m.state)
	}
}

func TestComposeEscapeReturnsToMenu(t *testing.T) {
	m := newTestModel()
	m.state = stateCompose

	m, _ = apply(t, m, keyMsg(tea.KeyEsc))
	if m.state != stateMenu {
		t.Fatalf("state = %v, want stateMenu", m.state)
	}
}

func TestQuitFromMenu(t *testing.T) {
	m := newTestModel()

	_, cmd := apply(t, m, runeMsg('q'))
	if cmd == nil {
		t.Fatal("Update returned nil cmd, want quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestShowCheckinsEmpty(t *testing.T) {
	m := newTestModel()
	m.state = stateLoading

	m, _ = apply(t, m, checkinsLoadedMsg{result: &api.StatusResult{}})
	if m.state != stateResult {
		t.Fatalf("state = %v, want stateResult", m.state)
	}
	if !strings.Contains(m.resultBody, "No pending check-ins") {
		t.Fatalf("resultBody = %q, want empty-state text", m.resultBody)
	}
}

func TestShowCheckinsContent(t *testing.T) {
	m := newTestModel()
	m.state = stateLoading

	m, _ = apply(t, m, checkinsLoadedMsg{result: &api.StatusResult{
		Count: 1,
		PendingCheckins: []api.PendingCheckin{{
			FollowupName: "Daily Standup",
			TemplateQuestions: []api.TemplateQuestion{
				{Question: "What did you do?"},
				{Question: "Anything blocking you?", IsBlocker: true},
			},
		}},
	}})

	for _, want := range []string{"Daily Standup", "What did you do?", "[blocker]"} {
		if !strings.Contains(m.resultBody, want) {
			t.Fatalf("resultBody = %q, missing %q", m.resultBody, want)
		}
	}
}

func TestShowUpdateResult(t *testing.T) {
	m := newTestModel()
	m.state = stateLoading

	m, _ = apply(t, m, updateSubmittedMsg{result: &api.UpdateResult{
		FollowupsCount: 2,
		AttachedFollowups: []api.AttachedFollowup{
			{FollowupName: "Daily Standup", Action: "created"},
			{FollowupName: "Retro", Action: "updated"},
		},
	}})

	if !strings.Contains(m.resultBody, "2 check-in(s)") {
		t.Fatalf("resultBody = %q, want submission count", m.resultBody)
	}
	if !strings.Contains(m.resultBody, "(Updated)") || !strings.Contains(m.resultBody, "(Submitted)") {
		t.Fatalf("resultBody = %q, want per-followup action labels", m.resultBody)
	}
}

func TestResultErrorRendered(t *testing.T) {
	m := newTestModel()
	m.state = stateLoading

	m, _ = apply(t, m, authStatusLoadedMsg{err: api.NewError(api.KindService, "boom")})
	if m.state != stateResult {
		t.Fatalf("state = %v, want stateResult", m.state)
	}
	if !strings.Contains(m.View(), "boom") {
		t.Fatal("View() does not show the error detail")
	}
}

func TestResultEscapeReturnsToMenu(t *testing.T) {
	m := newTestModel()
	m.state = stateResult
	m.err = api.NewError(api.KindService, "boom")

	m, _ = apply(t, m, keyMsg(tea.KeyEsc))
	if m.state != stateMenu {
		t.Fatalf("state = %v, want stateMenu", m.state)
	}
	if m.err != nil {
		t.Fatal("err should be cleared when leaving the result view")
	}
}

func TestUpdateByStateDispatch(t *testing.T) {
	states := []menuState{stateMenu, stateCompose, stateLoading, stateResult}

	for _, state := range states {
		t.Run(fmt.Sprintf("state_%d", state), func(t *testing.T) {
			m := newTestModel()
			m.state = state
			// Just exercise the dispatch; no outcome assertions needed.
			updated, _ := m.Update(keyMsg(tea.KeyEsc))
			if updated == nil {
				t.Errorf("state %v: Update returned nil", state)
			}
			if updated.(Model).View() == "" {
				t.Errorf("state %v: View returned empty string", state)
			}
		})
	}
}

func TestTrimUpdate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "did things", want: "did things"},
		{name: "trailing spaces", input: "did things   \nmore  ", want: "did things\nmore"},
		{name: "surrounding blank lines", input: "\n\nbody\n\n", want: "body"},
		{name: "only whitespace", input: "   \n\t\n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trimUpdate(tt.input); got != tt.want {
				t.Fatalf("trimUpdate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
