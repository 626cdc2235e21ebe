// Package tasks holds the authoritative task list: create/toggle/delete
// mutations, filtered views, counts, and persistence into a store.KV.
package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/smarttasks/internal/model"
	"github.com/idilsaglam/smarttasks/internal/store"
)

// DefaultKey is the storage entry the task list lives under.
const DefaultKey = "smartTasks"

// ErrEmptyText is returned by Add when the text is blank after trimming.
var ErrEmptyText = errors.New("task text is empty")

// Snapshot is what renderers get after every change: the current filter,
// the tasks it selects (newest first) and the counts over the full list.
type Snapshot struct {
	Filter model.Filter
	Tasks  []model.Task
	Stats  model.Stats
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Store is not safe for concurrent use; callers drive it from one goroutine.
type Store struct {
	kv     store.KV
	key    string
	logger *log.Logger
	now    func() time.Time
	newID  func() model.TaskID

	tasks  []model.Task
	filter model.Filter

	subs   []subscriber
	nextID int

	persistErr error
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDFunc(fn func() model.TaskID) Option {
	return func(s *Store) { s.newID = fn }
}

func WithFilter(f model.Filter) Option {
	return func(s *Store) { s.filter = model.ParseFilter(string(f)) }
}

// New returns an empty store backed by kv. Call Load to read persisted tasks.
func New(kv store.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		logger: log.New(io.Discard),
		now:    time.Now,
		newID:  func() model.TaskID { return model.TaskID(uuid.NewString()) },
		tasks:  []model.Task{},
		filter: model.FilterAll,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one and returns how
// many tasks were loaded. It never fails: unreadable or malformed data yields
// an empty list and a warning, and invalid records are skipped.
func (s *Store) Load() int {
	s.tasks = []model.Task{}
	defer s.notify()

	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Warn("reading tasks failed, starting empty", "key", s.key, "err", err)
		return 0
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return 0
	}
	var recs []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		s.logger.Warn("malformed task data, starting empty", "key", s.key, "err", err)
		return 0
	}

	seen := make(map[model.TaskID]bool, len(recs))
	for i, rec := range recs {
		var t model.Task
		if err := json.Unmarshal(rec, &t); err != nil {
			s.logger.Warn("skipping malformed task", "index", i, "err", err)
			continue
		}
		switch {
		case t.ID == "":
			s.logger.Warn("skipping task without id", "index", i)
			continue
		case seen[t.ID]:
			s.logger.Warn("skipping duplicate task id", "id", t.ID)
			continue
		case !t.Priority.Valid():
			s.logger.Warn("skipping task with invalid priority", "id", t.ID, "priority", t.Priority)
			continue
		}
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			s.logger.Warn("skipping task with empty text", "id", t.ID)
			continue
		}
		seen[t.ID] = true
		s.tasks = append(s.tasks, t)
	}
	s.logger.Debug("tasks loaded", "count", len(s.tasks))
	return len(s.tasks)
}

// Add prepends a new pending task. Blank text is rejected with ErrEmptyText
// and leaves the store untouched.
func (s *Store) Add(text string, p model.Priority) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}
	if !p.Valid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidPriority, p)
	}
	t := model.Task{
		ID:        s.newID(),
		Text:      text,
		Priority:  p,
		Completed: false,
		CreatedAt: s.now(),
	}
	s.tasks = slices.Insert(s.tasks, 0, t)
	s.changed()
	return t, nil
}

// Toggle flips the completed flag. Unknown ids are ignored.
func (s *Store) Toggle(id model.TaskID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.changed()
	return true
}

// Delete removes the task permanently. Unknown ids are ignored.
func (s *Store) Delete(id model.TaskID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.changed()
	return true
}

// ClearCompleted removes every completed task and returns how many went.
func (s *Store) ClearCompleted() int {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t model.Task) bool { return t.Completed })
	n := before - len(s.tasks)
	if n > 0 {
		s.changed()
	}
	return n
}

// Filter returns a copy of the tasks f selects, newest first.
func (s *Store) Filter(f model.Filter) []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) All() []model.Task { return slices.Clone(s.tasks) }

func (s *Store) Get(id model.TaskID) (model.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) Stats() model.Stats { return model.CountStats(s.tasks) }

// SetFilter changes the view renderers are shown.
func (s *Store) SetFilter(f model.Filter) {
	s.filter = model.ParseFilter(string(f))
	s.notify()
}

func (s *Store) CurrentFilter() model.Filter { return s.filter }

// Visible is the task list under the current filter.
func (s *Store) Visible() []model.Task { return s.Filter(s.filter) }

func (s *Store) Snapshot() Snapshot {
	return Snapshot{Filter: s.filter, Tasks: s.Visible(), Stats: s.Stats()}
}

// Subscribe registers fn to receive a snapshot after every mutation or
// filter change. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

// Persist overwrites the storage entry with the full task list.
func (s *Store) Persist() error {
	b, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.kv.Set(s.key, string(b)); err != nil {
		return fmt.Errorf("persist %s: %w", s.key, err)
	}
	return nil
}

// PersistErr is the outcome of the write made by the last mutation;
// nil once a later write succeeds.
func (s *Store) PersistErr() error { return s.persistErr }

// changed persists and notifies. A failed write is logged and kept for
// PersistErr: the in-memory list stays authoritative for the running session.
func (s *Store) changed() {
	s.persistErr = s.Persist()
	if s.persistErr != nil {
		s.logger.Error("saving tasks failed", "err", s.persistErr)
	}
	s.notify()
}

func (s *Store) notify() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, sub := range slices.Clone(s.subs) {
		sub.fn(snap)
	}
}

func (s *Store) index(id model.TaskID) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}
