package task

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPriorityWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p    Priority
		want int
	}{
		{PriorityHigh, 3},
		{PriorityMedium, 2},
		{PriorityLow, 1},
		{"urgent", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := tt.p.Weight(); got != tt.want {
			t.Errorf("Weight(%q) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	p, err := ParsePriority("  HIGH ")
	if err != nil {
		t.Fatalf("ParsePriority failed: %v", err)
	}
	if p != PriorityHigh {
		t.Errorf("Expected high, got %s", p)
	}

	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Expected ErrInvalidPriority, got %v", err)
	}
}

func TestTaskJSONFormat(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*3600)
	task := Task{
		ID:        1767225600000,
		Text:      "Buy milk",
		Date:      time.Date(2026, 1, 1, 9, 30, 0, 0, loc),
		Priority:  PriorityHigh,
		CreatedAt: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
		Category:  DefaultCategory,
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(data)

	for _, want := range []string{
		`"id":1767225600000`,
		`"text":"Buy milk"`,
		`"date":"2026-01-01T07:30:00.000Z"`,
		`"completed":false`,
		`"createdAt":"2026-01-01T08:00:00.000Z"`,
		`"priority":"high"`,
		`"notes":""`,
		`"category":"general"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %s in %s", want, s)
		}
	}
}

func TestTaskUnmarshalStoredRecord(t *testing.T) {
	t.Parallel()

	raw := `{"id":1700000000000,"text":"Answer email","date":"2023-11-14T22:13:20.000Z","completed":true,"createdAt":"2023-11-14T20:00:00.000Z","priority":"low","notes":"","category":"general"}`

	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if task.ID != 1700000000000 || task.Text != "Answer email" || !task.Completed {
		t.Errorf("Unexpected task: %+v", task)
	}
	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	if !task.Date.Equal(want) {
		t.Errorf("Expected date %v, got %v", want, task.Date)
	}
	if task.Priority != PriorityLow {
		t.Errorf("Expected low priority, got %s", task.Priority)
	}
}

func TestTaskUnmarshalBadDate(t *testing.T) {
	t.Parallel()

	var task Task
	err := json.Unmarshal([]byte(`{"id":1,"text":"x","date":"yesterday"}`), &task)
	if err == nil {
		t.Fatal("Expected error for unparseable date")
	}
}

func TestSortCanonical(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: 1, Priority: PriorityLow, Date: base},
		{ID: 2, Priority: PriorityHigh, Date: base.Add(2 * time.Hour), Completed: true},
		{ID: 3, Priority: PriorityHigh, Date: base.Add(time.Hour)},
		{ID: 4, Priority: "unknown", Date: base.Add(-time.Hour)},
		{ID: 5, Priority: PriorityHigh, Date: base},
		{ID: 6, Priority: PriorityMedium, Date: base, Completed: true},
		{ID: 7, Priority: PriorityMedium, Date: base.Add(-48 * time.Hour)},
	}

	SortCanonical(tasks)

	var got []int64
	for _, task := range tasks {
		got = append(got, task.ID)
	}
	want := []int64{5, 3, 7, 1, 4, 2, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, got)
		}
	}
}

func TestSortCanonicalProperty(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	prios := []Priority{PriorityLow, PriorityHigh, PriorityMedium, "odd"}
	var tasks []Task
	for i := 0; i < 40; i++ {
		tasks = append(tasks, Task{
			ID:        int64(i),
			Priority:  prios[(i*7)%len(prios)],
			Date:      base.Add(time.Duration((i*37)%11) * time.Hour),
			Completed: i%3 == 0,
		})
	}

	SortCanonical(tasks)

	for i := 0; i < len(tasks); i++ {
		for j := i + 1; j < len(tasks); j++ {
			a, b := tasks[i], tasks[j]
			if a.Completed != b.Completed {
				if a.Completed {
					t.Fatalf("completed task %d before incomplete %d", a.ID, b.ID)
				}
				continue
			}
			wa, wb := a.Priority.Weight(), b.Priority.Weight()
			if wa < wb || (wa == wb && a.Date.After(b.Date)) {
				t.Fatalf("task %d sorted before %d in violation of canonical order", a.ID, b.ID)
			}
		}
	}
}
