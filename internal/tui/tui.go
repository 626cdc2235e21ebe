// Package tui is the interactive Bubble Tea view over a tasks.Store.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/smarttasks/internal/model"
	"github.com/idilsaglam/smarttasks/internal/tasks"
	"github.com/idilsaglam/smarttasks/internal/ui"
)

const shakeDuration = 500 * time.Millisecond

type Options struct {
	Priority model.Priority // preselected priority for new tasks
	Now      func() time.Time
}

// listItem adapts model.Task to bubbles/list.Item
type listItem struct {
	task model.Task
	now  time.Time
}

func (i listItem) Title() string       { return i.task.Text }
func (i listItem) Description() string { return string(i.task.Priority) }
func (i listItem) FilterValue() string { return i.task.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	th := ui.Current()
	box := ui.MutedStyle.Render(th.BoxUnchecked)
	text := it.task.Text
	if it.task.Completed {
		box = ui.SuccessStyle.Render(th.BoxChecked)
		text = ui.DoneStyle.Render(text)
	}
	badge := ui.PriorityStyle(string(it.task.Priority)).Render(string(it.task.Priority))
	age := ui.MutedStyle.Render(ui.RelativeTime(it.task.CreatedAt, it.now))

	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s  %s  %s", prefix, box, text, badge, age)
}

// inbox receives snapshots from the store subscription. The store and the
// program share one goroutine, so Update drains it after each mutation.
type inbox struct {
	snap *tasks.Snapshot
}

type clearErrMsg struct{}

type keyMap struct {
	Add, Toggle, Delete, Clear, Filter, Quit key.Binding
}

var keys = keyMap{
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear done")),
	Filter: key.NewBinding(key.WithKeys("f", "1", "2", "3", "4"), key.WithHelp("f/1-4", "filter")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Clear, k.Filter}
}

// Model implements tea.Model.
type Model struct {
	store       *tasks.Store
	in          *inbox
	unsubscribe func()
	now         func() time.Time

	list   list.Model
	stats  model.Stats
	filter model.Filter

	// Inline add
	adding   bool
	ti       textinput.Model
	priority model.Priority
	addErr   string

	width, height int
}

// New builds the view and subscribes it to s. Call Close when done.
func New(s *tasks.Store, opt Options) Model {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if !opt.Priority.Valid() {
		opt.Priority = model.PriorityMedium
	}

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.TitleStyle
	l.Styles.HelpStyle = ui.HelpStyle
	l.Styles.PaginationStyle = ui.HelpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = keys.bindings
	l.AdditionalFullHelpKeys = keys.bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200

	in := &inbox{}
	m := Model{
		store:    s,
		in:       in,
		now:      opt.Now,
		list:     l,
		ti:       ti,
		priority: opt.Priority,
		width:    80,
		height:   24,
	}
	m.unsubscribe = s.Subscribe(func(snap tasks.Snapshot) { in.snap = &snap })
	m.apply(s.Snapshot())
	return m
}

// Run starts the program in the alternate screen and blocks until quit.
// Every change is already persisted by the store.
func Run(s *tasks.Store, opt Options) error {
	m := New(s, opt)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m Model) Stats() model.Stats   { return m.stats }
func (m Model) Filter() model.Filter { return m.filter }
func (m Model) Adding() bool         { return m.adding }
func (m Model) AddError() string     { return m.addErr }

// Items is what the list currently shows.
func (m Model) Items() []model.Task {
	out := make([]model.Task, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if li, ok := it.(listItem); ok {
			out = append(out, li.task)
		}
	}
	return out
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case clearErrMsg:
		m.addErr = ""
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(km, keys.Quit):
			// esc clears an applied fuzzy filter before it quits
			if km.Type == tea.KeyEsc && m.list.FilterState() == list.FilterApplied {
				break
			}
			return m, tea.Quit
		case key.Matches(km, keys.Toggle):
			if t, ok := m.selected(); ok {
				m.store.Toggle(t.ID)
			}
			return m, m.sync()
		case key.Matches(km, keys.Delete):
			if t, ok := m.selected(); ok {
				m.store.Delete(t.ID)
			}
			return m, m.sync()
		case key.Matches(km, keys.Clear):
			m.store.ClearCompleted()
			return m, m.sync()
		case key.Matches(km, keys.Filter):
			f := m.filter.Next()
			if s := km.String(); s >= "1" && s <= "4" {
				f = model.Filters[s[0]-'1']
			}
			m.store.SetFilter(f)
			return m, m.sync()
		case key.Matches(km, keys.Add):
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			m.resize()
			return m, m.ti.Focus()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			_, err := m.store.Add(m.ti.Value(), m.priority)
			if err != nil {
				if errors.Is(err, tasks.ErrEmptyText) {
					m.addErr = "Task cannot be empty"
				} else {
					m.addErr = err.Error()
				}
				return m, tea.Tick(shakeDuration, func(time.Time) tea.Msg { return clearErrMsg{} })
			}
			m.stopAdding()
			return m, m.sync()
		case "tab":
			m.priority = m.priority.Next()
			return m, nil
		case "esc", "ctrl+c":
			m.stopAdding()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) stopAdding() {
	m.adding = false
	m.addErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m Model) selected() (model.Task, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Task{}, false
	}
	return li.task, true
}

// sync applies the latest snapshot pushed by the store, if any.
func (m *Model) sync() tea.Cmd {
	if m.in.snap == nil {
		return nil
	}
	snap := *m.in.snap
	m.in.snap = nil
	return m.apply(snap)
}

func (m *Model) apply(snap tasks.Snapshot) tea.Cmd {
	now := m.now()
	items := make([]list.Item, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		items = append(items, listItem{task: t, now: now})
	}
	m.stats = snap.Stats
	m.filter = snap.Filter
	m.list.Title = m.header()

	idx := m.list.Index()
	cmd := m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	return cmd
}

func (m Model) header() string {
	th := ui.Current()
	counts := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		ui.TitleStyle.Render("Tasks"),
		ui.SuccessStyle.Render(th.SymDone), m.stats.Completed,
		ui.PendingStyle.Render(th.SymUnchecked), m.stats.Pending,
		ui.AccentStyle.Render("Total"), m.stats.Total,
	)
	tabs := make([]string, 0, len(model.Filters))
	for i, f := range model.Filters {
		label := fmt.Sprintf("%d %s", i+1, f)
		if f == m.filter {
			tabs = append(tabs, ui.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, ui.MutedStyle.Render(label))
		}
	}
	return counts + "   " + strings.Join(tabs, "  ")
}

func (m *Model) resize() {
	listHeight := m.height - 4
	if m.adding {
		listHeight = m.height - 7
	}
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(m.width-4, listHeight)
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add task  " + ui.PriorityStyle(string(m.priority)).Render(string(m.priority)) +
			ui.MutedStyle.Render("  (tab: priority)")
		if m.addErr != "" {
			// nudge the box sideways while the error shows
			bar = bar.MarginLeft(1)
			title += " - " + ui.ErrorStyle.Render(m.addErr)
		}
		content = content + "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.FrameStyle().Render(content)
}
