package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/krishvaghani-dev/dailyWork/internal/clock"
	"github.com/krishvaghani-dev/dailyWork/internal/kv"
)

// DefaultKey is the storage key holding the serialized collection.
const DefaultKey = "dailyTasks"

// Event operations recorded in the journal.
const (
	OpAdd            = "add"
	OpToggle         = "toggle"
	OpUpdate         = "update"
	OpRemove         = "remove"
	OpClearCompleted = "clear_completed"
)

// Event describes one applied mutation.
type Event struct {
	Op     string
	TaskID int64
	Text   string
	At     time.Time
	Detail string
}

// Journal receives an Event after every successful mutation.
type Journal interface {
	Record(ctx context.Context, ev Event) error
}

// Store holds the task collection and is the only code that reads or writes
// it to durable storage. Every mutation re-persists the whole collection in
// canonical order.
type Store struct {
	mu      sync.RWMutex
	kv      kv.Storage
	key     string
	clock   clock.Clock
	journal Journal
	tasks   []Task
}

type Option func(*Store)

func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithJournal(j Journal) Option {
	return func(s *Store) { s.journal = j }
}

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func NewStore(st kv.Storage, opts ...Option) *Store {
	s := &Store{
		kv:    st,
		key:   DefaultKey,
		clock: clock.Real{},
		tasks: []Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces in-memory state with the persisted collection. A missing key
// yields an empty collection; undecodable data is reported as ErrCorrupt.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		s.tasks = []Task{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read tasks: %w", err)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.tasks = []Task{}
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	SortCanonical(tasks)
	s.tasks = tasks
	return nil
}

// Save orders tasks canonically, persists them and makes them the in-memory
// state.
func (s *Store) Save(ctx context.Context, tasks []Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, tasks)
}

func (s *Store) saveLocked(ctx context.Context, tasks []Task) error {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	SortCanonical(sorted)

	data, err := json.Marshal(sorted)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	s.tasks = sorted
	return nil
}

func (s *Store) record(ctx context.Context, ev Event) {
	if s.journal == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = s.clock.Now()
	}
	if err := s.journal.Record(ctx, ev); err != nil {
		log.Printf("warning: failed to journal %s of task %d: %v", ev.Op, ev.TaskID, err)
	}
}

// Tasks returns a copy of the collection in canonical order.
func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Get(id int64) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// nextIDLocked returns the creation timestamp in milliseconds, bumped past
// the highest id already stored.
func (s *Store) nextIDLocked(now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range s.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

// Add creates a task. Text that is empty after trimming is ignored and
// reported as added=false without an error.
func (s *Store) Add(ctx context.Context, text string, priority Priority, due time.Time) (Task, bool, error) {
	if strings.TrimSpace(text) == "" {
		return Task{}, false, nil
	}
	if priority == "" {
		priority = PriorityMedium
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	t := Task{
		ID:        s.nextIDLocked(now),
		Text:      text,
		Date:      due,
		Completed: false,
		Priority:  priority,
		CreatedAt: now,
		Notes:     "",
		Category:  DefaultCategory,
	}

	next := append(append([]Task{}, s.tasks...), t)
	if err := s.saveLocked(ctx, next); err != nil {
		return Task{}, false, err
	}
	s.record(ctx, Event{Op: OpAdd, TaskID: t.ID, Text: t.Text, At: now, Detail: string(t.Priority)})
	return t, true, nil
}

// ToggleComplete flips the completion flag. An unknown id changes nothing
// but the collection is still re-saved.
func (s *Store) ToggleComplete(ctx context.Context, id int64) (Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]Task{}, s.tasks...)
	var (
		toggled Task
		found   bool
	)
	for i := range next {
		if next[i].ID == id {
			next[i].Completed = !next[i].Completed
			toggled, found = next[i], true
			break
		}
	}

	if err := s.saveLocked(ctx, next); err != nil {
		return Task{}, false, err
	}
	if found {
		s.record(ctx, Event{Op: OpToggle, TaskID: id, Text: toggled.Text, Detail: fmt.Sprintf("completed=%t", toggled.Completed)})
	}
	return toggled, found, nil
}

// Update merges p into the task with the given id. A replacement text that
// is empty after trimming makes the whole update a no-op.
func (s *Store) Update(ctx context.Context, id int64, p Patch) (Task, bool, error) {
	if p.Text != nil && strings.TrimSpace(*p.Text) == "" {
		return Task{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]Task{}, s.tasks...)
	var (
		updated Task
		found   bool
	)
	for i := range next {
		if next[i].ID == id {
			p.apply(&next[i])
			updated, found = next[i], true
			break
		}
	}

	if err := s.saveLocked(ctx, next); err != nil {
		return Task{}, false, err
	}
	if found {
		s.record(ctx, Event{Op: OpUpdate, TaskID: id, Text: updated.Text, Detail: string(updated.Priority)})
	}
	return updated, found, nil
}

// Remove deletes the task with the given id. Callers reach it through a
// confirmed Deletion.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Task, 0, len(s.tasks))
	var removed *Task
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			t := s.tasks[i]
			removed = &t
			continue
		}
		next = append(next, s.tasks[i])
	}

	if err := s.saveLocked(ctx, next); err != nil {
		return false, err
	}
	if removed == nil {
		return false, nil
	}
	s.record(ctx, Event{Op: OpRemove, TaskID: id, Text: removed.Text})
	return true, nil
}

// ClearCompleted removes every completed task and returns how many were
// removed.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			next = append(next, t)
		}
	}
	removed := len(s.tasks) - len(next)
	if removed == 0 {
		return 0, nil
	}

	if err := s.saveLocked(ctx, next); err != nil {
		return 0, err
	}
	s.record(ctx, Event{Op: OpClearCompleted, Detail: fmt.Sprintf("removed=%d", removed)})
	return removed, nil
}
