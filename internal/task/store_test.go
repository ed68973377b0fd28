package task

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/krishvaghani-dev/dailyWork/internal/clock"
	"github.com/krishvaghani-dev/dailyWork/internal/kv"
)

type recordingJournal struct {
	events []Event
	err    error
}

func (j *recordingJournal) Record(ctx context.Context, ev Event) error {
	j.events = append(j.events, ev)
	return j.err
}

func newTestStore(t *testing.T) (*Store, *kv.MemoryStorage, *clock.Fixed) {
	t.Helper()
	st := kv.NewMemoryStorage()
	c := clock.NewFixed(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))
	s := NewStore(st, WithClock(c))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s, st, c
}

func TestStoreLoadEmpty(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestStore(t)

	if got := s.Tasks(); len(got) != 0 {
		t.Errorf("Expected empty collection, got %d tasks", len(got))
	}
}

func TestStoreLoadCorrupt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := kv.NewMemoryStorage()
	_ = st.Set(ctx, DefaultKey, []byte("{definitely not an array"))

	s := NewStore(st)
	err := s.Load(ctx)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Expected ErrCorrupt, got %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Error("Expected empty in-memory state after corrupt load")
	}
}

func TestStoreLoadNull(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := kv.NewMemoryStorage()
	_ = st.Set(ctx, DefaultKey, []byte("null"))

	s := NewStore(st)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Tasks() == nil {
		t.Error("Expected non-nil empty collection")
	}
}

func TestStoreLoadAppliesCanonicalOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := kv.NewMemoryStorage()
	_ = st.Set(ctx, DefaultKey, []byte(`[
		{"id":1,"text":"done","date":"2026-10-19T09:00:00.000Z","completed":true,"priority":"high"},
		{"id":2,"text":"low","date":"2026-10-19T09:00:00.000Z","completed":false,"priority":"low"},
		{"id":3,"text":"high","date":"2026-10-19T09:00:00.000Z","completed":false,"priority":"high"}
	]`))

	s := NewStore(st)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := s.Tasks()
	if got[0].ID != 3 || got[1].ID != 2 || got[2].ID != 1 {
		t.Errorf("Expected order [3 2 1], got [%d %d %d]", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestStoreAdd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, st, c := newTestStore(t)

	due := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	task, added, err := s.Add(ctx, "Buy milk", PriorityHigh, due)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !added {
		t.Fatal("Expected task to be added")
	}

	if task.ID != c.Now().UnixMilli() {
		t.Errorf("Expected id from creation time %d, got %d", c.Now().UnixMilli(), task.ID)
	}
	if task.Completed {
		t.Error("Expected new task to be incomplete")
	}
	if !task.Date.Equal(due) {
		t.Errorf("Expected due %v, got %v", due, task.Date)
	}
	if task.Category != DefaultCategory {
		t.Errorf("Expected category %q, got %q", DefaultCategory, task.Category)
	}
	if !task.CreatedAt.Equal(c.Now()) {
		t.Errorf("Expected createdAt %v, got %v", c.Now(), task.CreatedAt)
	}

	if st.Writes() != 1 {
		t.Errorf("Expected 1 persisted write, got %d", st.Writes())
	}
}

func TestStoreAddDefaultsPriority(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestStore(t)

	task, _, err := s.Add(context.Background(), "Walk", "", time.Now())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("Expected medium priority, got %s", task.Priority)
	}
}

func TestStoreAddEmptyTextIsNoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, st, _ := newTestStore(t)

	_, _, _ = s.Add(ctx, "keep", PriorityLow, time.Now())
	before := s.Tasks()
	writes := st.Writes()

	for _, text := range []string{"", "   ", "\t\n"} {
		_, added, err := s.Add(ctx, text, PriorityHigh, time.Now())
		if err != nil {
			t.Fatalf("Add(%q) returned error: %v", text, err)
		}
		if added {
			t.Errorf("Expected Add(%q) to be rejected", text)
		}
	}

	if !reflect.DeepEqual(before, s.Tasks()) {
		t.Error("Expected collection unchanged after empty adds")
	}
	if st.Writes() != writes {
		t.Error("Expected no storage writes for empty adds")
	}
}

func TestStoreAddUniqueIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	// The clock does not move, so ids must be bumped.
	seen := map[int64]bool{}
	for i := 0; i < 20; i++ {
		task, _, err := s.Add(ctx, "same instant", PriorityMedium, time.Now())
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("Duplicate id %d", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestStoreSaveOrdersCollection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	input := []Task{
		{ID: 1, Text: "a", Priority: PriorityLow, Date: base},
		{ID: 2, Text: "b", Priority: PriorityHigh, Date: base.Add(time.Hour)},
		{ID: 3, Text: "c", Priority: PriorityHigh, Date: base},
	}
	if err := s.Save(ctx, input); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := s.Tasks()
	if got[0].ID != 3 || got[1].ID != 2 || got[2].ID != 1 {
		t.Errorf("Expected [3 2 1], got [%d %d %d]", got[0].ID, got[1].ID, got[2].ID)
	}
	// Save must not reorder the caller's slice.
	if input[0].ID != 1 {
		t.Error("Expected caller slice to be untouched")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, st, _ := newTestStore(t)
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	x := []Task{
		{ID: 10, Text: "later", Priority: PriorityMedium, Date: base.Add(time.Hour), CreatedAt: base, Category: "general"},
		{ID: 11, Text: "done", Priority: PriorityHigh, Date: base, Completed: true, CreatedAt: base, Category: "general"},
		{ID: 12, Text: "first", Priority: PriorityMedium, Date: base, CreatedAt: base, Notes: "n", Category: "work"},
	}
	if err := s.Save(ctx, x); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	fresh := NewStore(st)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := append([]Task{}, x...)
	SortCanonical(want)
	got := fresh.Tasks()
	if len(got) != len(want) {
		t.Fatalf("Expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Text != want[i].Text ||
			!got[i].Date.Equal(want[i].Date) || got[i].Completed != want[i].Completed ||
			got[i].Priority != want[i].Priority || got[i].Notes != want[i].Notes ||
			got[i].Category != want[i].Category {
			t.Errorf("task %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestStoreToggleTwiceRestores(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	task, _, _ := s.Add(ctx, "Call dad", PriorityMedium, time.Now())

	toggled, found, err := s.ToggleComplete(ctx, task.ID)
	if err != nil || !found {
		t.Fatalf("ToggleComplete failed: found=%v err=%v", found, err)
	}
	if !toggled.Completed {
		t.Error("Expected completed after first toggle")
	}

	toggled, _, _ = s.ToggleComplete(ctx, task.ID)
	if toggled.Completed != task.Completed {
		t.Error("Expected original completion after second toggle")
	}
}

func TestStoreToggleUnknownID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	_, _, _ = s.Add(ctx, "one", PriorityMedium, time.Now())
	before := s.Tasks()

	_, found, err := s.ToggleComplete(ctx, 999)
	if err != nil {
		t.Fatalf("Expected no error for unknown id, got %v", err)
	}
	if found {
		t.Error("Expected found=false for unknown id")
	}
	if !reflect.DeepEqual(before, s.Tasks()) {
		t.Error("Expected collection unchanged")
	}
}

func TestStoreUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	task, _, _ := s.Add(ctx, "draft", PriorityLow, time.Now())

	text := "final"
	prio := PriorityHigh
	updated, found, err := s.Update(ctx, task.ID, Patch{Text: &text, Priority: &prio})
	if err != nil || !found {
		t.Fatalf("Update failed: found=%v err=%v", found, err)
	}
	if updated.Text != "final" || updated.Priority != PriorityHigh {
		t.Errorf("Unexpected update result: %+v", updated)
	}
	got, _ := s.Get(task.ID)
	if got.Text != "final" {
		t.Errorf("Expected stored text 'final', got %q", got.Text)
	}
}

func TestStoreUpdateEmptyTextIsNoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, st, _ := newTestStore(t)
	task, _, _ := s.Add(ctx, "draft", PriorityLow, time.Now())
	writes := st.Writes()

	blank := "   "
	prio := PriorityHigh
	_, found, err := s.Update(ctx, task.ID, Patch{Text: &blank, Priority: &prio})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if found {
		t.Error("Expected blank edit to be rejected")
	}

	got, _ := s.Get(task.ID)
	if got.Text != "draft" || got.Priority != PriorityLow {
		t.Errorf("Expected task untouched, got %+v", got)
	}
	if st.Writes() != writes {
		t.Error("Expected no storage write for blank edit")
	}
}

func TestStoreDeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, st, _ := newTestStore(t)
	task, _, _ := s.Add(ctx, "temporary", PriorityLow, time.Now())

	persisted, _ := st.Get(ctx, DefaultKey)
	writes := st.Writes()

	d := s.Delete(task.ID)
	if pending, ok := d.Task(); !ok || pending.ID != task.ID {
		t.Fatal("Expected pending deletion to reference the task")
	}

	if _, ok := s.Get(task.ID); !ok {
		t.Fatal("Expected task to remain before confirmation")
	}
	after, _ := st.Get(ctx, DefaultKey)
	if string(after) != string(persisted) || st.Writes() != writes {
		t.Error("Expected stored collection unchanged before confirmation")
	}

	removed, err := d.Confirm(ctx)
	if err != nil || !removed {
		t.Fatalf("Confirm failed: removed=%v err=%v", removed, err)
	}
	if _, ok := s.Get(task.ID); ok {
		t.Error("Expected task removed after confirmation")
	}

	// A resolved deletion does nothing more.
	removed, _ = d.Confirm(ctx)
	if removed {
		t.Error("Expected second Confirm to be a no-op")
	}
}

func TestStoreDeleteCancel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, st, _ := newTestStore(t)
	task, _, _ := s.Add(ctx, "keep me", PriorityLow, time.Now())
	writes := st.Writes()

	d := s.Delete(task.ID)
	d.Cancel()
	removed, err := d.Confirm(ctx)
	if err != nil {
		t.Fatalf("Confirm after cancel returned error: %v", err)
	}
	if removed {
		t.Error("Expected cancelled deletion to stay cancelled")
	}
	if _, ok := s.Get(task.ID); !ok {
		t.Error("Expected task to survive cancel")
	}
	if st.Writes() != writes {
		t.Error("Expected no storage write on cancel")
	}
}

func TestStoreClearCompleted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	a, _, _ := s.Add(ctx, "a", PriorityLow, time.Now())
	b, _, _ := s.Add(ctx, "b", PriorityLow, time.Now())
	_, _, _ = s.Add(ctx, "c", PriorityLow, time.Now())
	_, _, _ = s.ToggleComplete(ctx, a.ID)
	_, _, _ = s.ToggleComplete(ctx, b.ID)

	n, err := s.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 removed, got %d", n)
	}
	if len(s.Tasks()) != 1 {
		t.Errorf("Expected 1 task left, got %d", len(s.Tasks()))
	}
}

func TestStoreJournal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	j := &recordingJournal{err: errors.New("journal offline")}
	s := NewStore(kv.NewMemoryStorage(), WithJournal(j), WithKey("custom"))

	task, _, err := s.Add(ctx, "journaled", PriorityHigh, time.Now())
	if err != nil {
		t.Fatalf("Add failed despite journal error: %v", err)
	}
	_, _, _ = s.ToggleComplete(ctx, task.ID)
	_, _ = s.Delete(task.ID).Confirm(ctx)

	var ops []string
	for _, ev := range j.events {
		ops = append(ops, ev.Op)
	}
	want := []string{OpAdd, OpToggle, OpRemove}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("Expected journal ops %v, got %v", want, ops)
	}
}

type failingStorage struct{ *kv.MemoryStorage }

func (f *failingStorage) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

func TestStoreSaveErrorKeepsState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore(&failingStorage{MemoryStorage: kv.NewMemoryStorage()})

	if _, _, err := s.Add(ctx, "lost", PriorityLow, time.Now()); err == nil {
		t.Fatal("Expected write error")
	}
	if len(s.Tasks()) != 0 {
		t.Error("Expected in-memory state unchanged after failed save")
	}
}
