// Package agenda builds a markdown day plan from the task list.
package agenda

import (
	"fmt"
	"strings"
	"time"

	"github.com/krishvaghani-dev/dailyWork/internal/task"
	"github.com/krishvaghani-dev/dailyWork/internal/view"
)

// DefaultUpcoming caps the "Coming Up" section.
const DefaultUpcoming = 5

// Agenda groups pending tasks by calendar day relative to a moment.
type Agenda struct {
	Now      time.Time
	Summary  view.Summary
	Overdue  []task.Task
	Today    []task.Task
	Tomorrow []task.Task
	Upcoming []task.Task
	// DoneToday holds tasks due today that are already completed.
	DoneToday []task.Task
}

// Generate buckets tasks around now. At most upcoming later tasks are kept;
// a non-positive value means DefaultUpcoming.
func Generate(tasks []task.Task, now time.Time, upcoming int) *Agenda {
	if upcoming <= 0 {
		upcoming = DefaultUpcoming
	}

	a := &Agenda{Now: now, Summary: view.Stats(tasks)}

	byDate := view.Apply(tasks, view.Query{Filter: view.FilterAll, SortBy: view.SortDate, Direction: view.Asc}, now)
	for _, t := range byDate {
		bucket := view.BucketOf(t.Date, now)
		if t.Completed {
			if bucket == view.BucketToday {
				a.DoneToday = append(a.DoneToday, t)
			}
			continue
		}
		switch bucket {
		case view.BucketPast:
			a.Overdue = append(a.Overdue, t)
		case view.BucketToday:
			a.Today = append(a.Today, t)
		case view.BucketTomorrow:
			a.Tomorrow = append(a.Tomorrow, t)
		default:
			if len(a.Upcoming) < upcoming {
				a.Upcoming = append(a.Upcoming, t)
			}
		}
	}
	return a
}

// Render converts the agenda to markdown
func (a *Agenda) Render() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Agenda: %s\n\n", a.Now.Format("Monday, Jan 2, 2006")))
	sb.WriteString(fmt.Sprintf("**Status**: %d total, %d pending, %d completed\n\n",
		a.Summary.Total, a.Summary.Pending, a.Summary.Completed))

	a.section(&sb, "Overdue", a.Overdue, "Jan 2, 3:04 PM")
	a.section(&sb, "Today", a.Today, "3:04 PM")
	a.section(&sb, "Tomorrow", a.Tomorrow, "3:04 PM")
	a.section(&sb, "Coming Up", a.Upcoming, "Jan 2, 3:04 PM")

	if len(a.DoneToday) > 0 {
		sb.WriteString("## Done Today\n\n")
		for _, t := range a.DoneToday {
			sb.WriteString(fmt.Sprintf("- [x] %s\n", t.Text))
		}
		sb.WriteString("\n")
	}

	if len(a.Overdue)+len(a.Today)+len(a.Tomorrow)+len(a.Upcoming) == 0 {
		sb.WriteString("Nothing pending. Enjoy the day.\n")
	}

	return sb.String()
}

func (a *Agenda) section(sb *strings.Builder, title string, tasks []task.Task, layout string) {
	if len(tasks) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	for _, t := range tasks {
		sb.WriteString(fmt.Sprintf("- [ ] %s %s%s\n",
			t.Date.In(a.Now.Location()).Format(layout), t.Text, priorityMark(t.Priority)))
	}
	sb.WriteString("\n")
}

func priorityMark(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return " (!)"
	case task.PriorityLow:
		return " (low)"
	default:
		return ""
	}
}
