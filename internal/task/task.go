package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrCorrupt         = errors.New("stored tasks are corrupt")
	ErrInvalidPriority = errors.New("invalid priority")
)

// DefaultCategory is assigned to every new task.
const DefaultCategory = "general"

// isoLayout matches the ISO-8601 text the collection has always been stored
// with: UTC, millisecond precision, "Z" suffix.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the known priorities, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Weight maps a priority to its ordering weight. Unknown values weigh 0.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p.Weight() > 0
}

// ParsePriority accepts the three known priorities in any case.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w '%s': must be high, medium or low", ErrInvalidPriority, s)
	}
	return p, nil
}

// Task is a single planned item.
type Task struct {
	ID        int64     `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Date      time.Time `json:"date" yaml:"date"`
	Completed bool      `json:"completed" yaml:"completed"`
	Priority  Priority  `json:"priority" yaml:"priority"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	Notes     string    `json:"notes" yaml:"notes,omitempty"`
	Category  string    `json:"category" yaml:"category,omitempty"`
}

type taskJSON struct {
	ID        int64    `json:"id"`
	Text      string   `json:"text"`
	Date      string   `json:"date"`
	Completed bool     `json:"completed"`
	CreatedAt string   `json:"createdAt"`
	Priority  Priority `json:"priority"`
	Notes     string   `json:"notes"`
	Category  string   `json:"category"`
}

func formatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(isoLayout)
}

func parseISO(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// MarshalJSON writes timestamps as ISO-8601 strings.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		ID:        t.ID,
		Text:      t.Text,
		Date:      formatISO(t.Date),
		Completed: t.Completed,
		CreatedAt: formatISO(t.CreatedAt),
		Priority:  t.Priority,
		Notes:     t.Notes,
		Category:  t.Category,
	})
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := parseISO(raw.Date)
	if err != nil {
		return fmt.Errorf("task %d: bad date %q: %w", raw.ID, raw.Date, err)
	}
	created, err := parseISO(raw.CreatedAt)
	if err != nil {
		return fmt.Errorf("task %d: bad createdAt %q: %w", raw.ID, raw.CreatedAt, err)
	}
	*t = Task{
		ID:        raw.ID,
		Text:      raw.Text,
		Date:      date,
		Completed: raw.Completed,
		Priority:  raw.Priority,
		CreatedAt: created,
		Notes:     raw.Notes,
		Category:  raw.Category,
	}
	return nil
}

// Patch is a partial update. nil => "no change".
type Patch struct {
	Text     *string
	Priority *Priority
	Date     *time.Time
	Notes    *string
	Category *string
}

func (p Patch) apply(t *Task) {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
}
