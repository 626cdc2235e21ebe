package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/smarttasks/internal/model"
	"github.com/idilsaglam/smarttasks/internal/store"
	"github.com/idilsaglam/smarttasks/internal/tasks"
)

var clock = func() time.Time { return time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC) }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, runes(string(r)))
	}
	return m
}

func newModel(t *testing.T) (Model, *tasks.Store) {
	t.Helper()
	s := tasks.New(store.NewMemory(), tasks.WithClock(clock))
	m := New(s, Options{Priority: model.PriorityLow, Now: clock})
	t.Cleanup(m.Close)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, s
}

func TestModel_AddToggleDelete(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, runes("a"))
	assert.True(t, m.Adding())
	m = typeText(t, m, "Buy milk")
	m = send(t, m, enter)
	assert.False(t, m.Adding())

	m = send(t, m, runes("a"))
	m = typeText(t, m, "Call Bob")
	m = send(t, m, tab, tab, enter) // low -> medium -> high

	require.Len(t, m.Items(), 2)
	assert.Equal(t, "Call Bob", m.Items()[0].Text)
	assert.Equal(t, model.PriorityHigh, m.Items()[0].Priority)
	assert.Equal(t, model.PriorityLow, m.Items()[1].Priority)
	assert.Equal(t, model.Stats{Total: 2, Pending: 2}, m.Stats())

	// cursor on "Buy milk", toggle it
	m = send(t, m, down, space)
	assert.Equal(t, model.Stats{Total: 2, Completed: 1, Pending: 1}, m.Stats())
	assert.Equal(t, s.Stats(), m.Stats())

	m = send(t, m, runes("3"))
	assert.Equal(t, model.FilterCompleted, m.Filter())
	require.Len(t, m.Items(), 1)
	assert.Equal(t, "Buy milk", m.Items()[0].Text)

	m = send(t, m, runes("d"))
	assert.Empty(t, m.Items())
	assert.Equal(t, 1, s.Stats().Total)
}

func TestModel_BlankAddShowsError(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, runes("a"))
	m = typeText(t, m, "   ")
	next, cmd := m.Update(enter)
	m = next.(Model)

	assert.True(t, m.Adding())
	assert.NotEmpty(t, m.AddError())
	assert.NotNil(t, cmd)
	assert.Equal(t, 0, s.Stats().Total)

	m = send(t, m, clearErrMsg{})
	assert.Empty(t, m.AddError())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Adding())
}

func TestModel_FollowsStoreChanges(t *testing.T) {
	m, s := newModel(t)
	_, err := s.Add("added elsewhere", model.PriorityMedium)
	require.NoError(t, err)

	// the next handled key drains the pending snapshot
	m = send(t, m, runes("c"))
	require.Len(t, m.Items(), 1)
	assert.Equal(t, "added elsewhere", m.Items()[0].Text)
}

func TestModel_FilterCycles(t *testing.T) {
	m, _ := newModel(t)
	want := []model.Filter{model.FilterActive, model.FilterCompleted, model.FilterHigh, model.FilterAll}
	for _, f := range want {
		m = send(t, m, runes("f"))
		assert.Equal(t, f, m.Filter())
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_EscClearsFuzzyFilterBeforeQuitting(t *testing.T) {
	m, s := newModel(t)
	for _, txt := range []string{"alpha", "beta"} {
		_, err := s.Add(txt, model.PriorityLow)
		require.NoError(t, err)
	}
	m = send(t, m, runes("c"))
	require.Len(t, m.Items(), 2)

	m.list.SetFilterText("alp")
	require.Equal(t, list.FilterApplied, m.list.FilterState())
	require.Len(t, m.list.VisibleItems(), 1)

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	next, cmd := m.Update(esc)
	m = next.(Model)
	if cmd != nil {
		assert.NotEqual(t, tea.Quit(), cmd())
	}
	assert.Equal(t, list.Unfiltered, m.list.FilterState())
	assert.Len(t, m.list.VisibleItems(), 2)

	// with no filter left, esc quits
	_, cmd = m.Update(esc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_View(t *testing.T) {
	m, s := newModel(t)
	_, err := s.Add("Render me", model.PriorityHigh)
	require.NoError(t, err)
	m = send(t, m, runes("c"))

	out := m.View()
	assert.Contains(t, out, "Render me")
	assert.Contains(t, out, "Total")
}
