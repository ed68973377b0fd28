package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/krishvaghani-dev/dailyWork/internal/clock"
	"github.com/krishvaghani-dev/dailyWork/internal/kv"
	"github.com/krishvaghani-dev/dailyWork/internal/task"
)

// Now is the fixed moment fixtures are built around: a Monday morning.
var Now = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

// MemoryStore is a loaded store over in-memory storage with a fixed clock.
type MemoryStore struct {
	Store *task.Store
	KV    *kv.MemoryStorage
	Clock *clock.Fixed
}

// NewMemoryStore returns an empty, loaded store whose clock reads Now.
func NewMemoryStore(t *testing.T) *MemoryStore {
	t.Helper()

	clk := clock.NewFixed(Now)
	mem := kv.NewMemoryStorage()
	store := task.NewStore(mem, task.WithClock(clk))
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Failed to load store: %v", err)
	}
	return &MemoryStore{Store: store, KV: mem, Clock: clk}
}

// Seed adds a task and fails the test if it was not added.
func (m *MemoryStore) Seed(t *testing.T, text string, p task.Priority, due time.Time) task.Task {
	t.Helper()

	added, ok, err := m.Store.Add(context.Background(), text, p, due)
	if err != nil || !ok {
		t.Fatalf("Failed to seed %q: ok=%v err=%v", text, ok, err)
	}
	return added
}

// SeedSample adds a small mixed list around Now: one overdue, two today,
// one tomorrow and one later, plus one completed task.
func (m *MemoryStore) SeedSample(t *testing.T) []task.Task {
	t.Helper()

	day := func(offset, hour, minute int) time.Time {
		return time.Date(Now.Year(), Now.Month(), Now.Day()+offset, hour, minute, 0, 0, time.UTC)
	}

	seeded := []task.Task{
		m.Seed(t, "Submit expense report", task.PriorityMedium, day(-1, 17, 0)),
		m.Seed(t, "Team standup", task.PriorityHigh, day(0, 9, 30)),
		m.Seed(t, "Buy milk", task.PriorityLow, day(0, 18, 0)),
		m.Seed(t, "Dentist", task.PriorityMedium, day(1, 8, 15)),
		m.Seed(t, "Quarterly planning", task.PriorityHigh, day(4, 10, 0)),
		m.Seed(t, "Answer email", task.PriorityMedium, day(0, 8, 0)),
	}

	done, _, err := m.Store.ToggleComplete(context.Background(), seeded[5].ID)
	if err != nil {
		t.Fatalf("Failed to complete seed task: %v", err)
	}
	seeded[5] = done
	return seeded
}
