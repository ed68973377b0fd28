// Package view derives the displayed, filtered and re-ordered task list from
// the stored collection. It never mutates its input.
package view

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/krishvaghani-dev/dailyWork/internal/clock"
	"github.com/krishvaghani-dev/dailyWork/internal/task"
)

var (
	ErrUnknownFilter    = errors.New("unknown filter")
	ErrUnknownSortKey   = errors.New("unknown sort key")
	ErrUnknownDirection = errors.New("unknown sort direction")
)

// Filter selects tasks. Status, date-bucket and priority filters share one
// slot, so only one of them is active at a time.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterToday     Filter = "today"
	FilterTomorrow  Filter = "tomorrow"
	FilterUpcoming  Filter = "upcoming"
	FilterCompleted Filter = "completed"
	FilterHigh      Filter = Filter(task.PriorityHigh)
	FilterMedium    Filter = Filter(task.PriorityMedium)
	FilterLow       Filter = Filter(task.PriorityLow)
)

// Filters lists every filter in display order.
var Filters = []Filter{
	FilterAll, FilterToday, FilterTomorrow, FilterUpcoming, FilterCompleted,
	FilterHigh, FilterMedium, FilterLow,
}

type SortKey string

const (
	SortPriority SortKey = "priority"
	SortDate     SortKey = "date"
	SortName     SortKey = "name"
)

var SortKeys = []SortKey{SortPriority, SortDate, SortName}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query is the user's current filter and sort selection.
type Query struct {
	Filter    Filter
	SortBy    SortKey
	Direction Direction
}

// DefaultQuery shows everything, sorted by priority ascending.
func DefaultQuery() Query {
	return Query{Filter: FilterAll, SortBy: SortPriority, Direction: Asc}
}

func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FilterAll, nil
	}
	for _, known := range Filters {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w '%s'", ErrUnknownFilter, s)
}

func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return SortPriority, nil
	}
	for _, known := range SortKeys {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w '%s': must be priority, date or name", ErrUnknownSortKey, s)
}

func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", fmt.Errorf("%w '%s': must be asc or desc", ErrUnknownDirection, s)
	}
}

// Toggle flips the direction.
func (d Direction) Toggle() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// Match reports whether t passes the filter, with date buckets taken in
// now's location.
func (f Filter) Match(t task.Task, now time.Time) bool {
	switch f {
	case FilterToday:
		return BucketOf(t.Date, now) == BucketToday
	case FilterTomorrow:
		return BucketOf(t.Date, now) == BucketTomorrow
	case FilterUpcoming:
		return BucketOf(t.Date, now) == BucketUpcoming
	case FilterCompleted:
		return t.Completed
	case FilterHigh, FilterMedium, FilterLow:
		return t.Priority == task.Priority(f)
	default:
		return true
	}
}

// Apply filters and sorts a copy of tasks.
func Apply(tasks []task.Task, q Query, now time.Time) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Filter.Match(t, now) {
			out = append(out, t)
		}
	}

	less := comparator(q)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		return less(a, b)
	})
	return out
}

// comparator orders two tasks of equal completion status.
//
// For priority, "asc" lists the highest weight first.
func comparator(q Query) func(a, b task.Task) bool {
	desc := q.Direction == Desc

	switch q.SortBy {
	case SortDate:
		return func(a, b task.Task) bool {
			if desc {
				return b.Date.Before(a.Date)
			}
			return a.Date.Before(b.Date)
		}
	case SortName:
		col := collate.New(language.English)
		return func(a, b task.Task) bool {
			c := col.CompareString(a.Text, b.Text)
			if desc {
				return c > 0
			}
			return c < 0
		}
	case SortPriority:
		return func(a, b task.Task) bool {
			wa, wb := a.Priority.Weight(), b.Priority.Weight()
			if desc {
				return wa < wb
			}
			return wa > wb
		}
	default:
		return func(a, b task.Task) bool { return false }
	}
}

// Bucket is the calendar-day class of a due date relative to now.
type Bucket string

const (
	BucketPast     Bucket = "past"
	BucketToday    Bucket = "today"
	BucketTomorrow Bucket = "tomorrow"
	BucketUpcoming Bucket = "upcoming"
)

// BucketOf classifies due by local calendar day: midnight to midnight in
// now's location, not rolling 24-hour windows.
func BucketOf(due, now time.Time) Bucket {
	today := clock.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	dayAfter := today.AddDate(0, 0, 2)
	d := due.In(now.Location())

	switch {
	case d.Before(today):
		return BucketPast
	case d.Before(tomorrow):
		return BucketToday
	case d.Before(dayAfter):
		return BucketTomorrow
	default:
		return BucketUpcoming
	}
}

// Label renders a due date for display: "Today, 9:00 AM",
// "Tomorrow, 9:00 AM" or "Jan 2, 9:00 AM".
func Label(due, now time.Time) string {
	d := due.In(now.Location())
	clockText := d.Format("3:04 PM")
	switch BucketOf(due, now) {
	case BucketToday:
		return "Today, " + clockText
	case BucketTomorrow:
		return "Tomorrow, " + clockText
	default:
		return d.Format("Jan 2, 3:04 PM")
	}
}

// Summary counts tasks by completion.
type Summary struct {
	Total     int
	Pending   int
	Completed int
}

func Stats(tasks []task.Task) Summary {
	var s Summary
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
