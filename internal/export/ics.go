package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/krishvaghani-dev/dailyWork/internal/task"
)

const icsStampLayout = "20060102T150405Z"

// eventLength is the block each task occupies in a calendar.
const eventLength = 30 * time.Minute

// BuildCalendar builds an iCalendar document with one event per task,
// starting at its due time.
func BuildCalendar(tasks []task.Task, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//dailywork//Task Export//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	for _, t := range tasks {
		lines = append(lines, eventLines(t, now)...)
	}
	lines = append(lines, "END:VCALENDAR", "")
	return strings.Join(lines, "\r\n")
}

func eventLines(t task.Task, now time.Time) []string {
	title := strings.TrimSpace(t.Text)
	if title == "" {
		title = "Task"
	}

	lines := []string{
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:task-%d@dailywork", t.ID),
		"DTSTAMP:" + now.UTC().Format(icsStampLayout),
		"SUMMARY:" + escapeICSText(title),
		"DTSTART:" + t.Date.UTC().Format(icsStampLayout),
		"DTEND:" + t.Date.Add(eventLength).UTC().Format(icsStampLayout),
		"PRIORITY:" + icsPriority(t.Priority),
	}
	if t.Category != "" {
		lines = append(lines, "CATEGORIES:"+escapeICSText(t.Category))
	}
	if desc := strings.TrimSpace(t.Notes); desc != "" {
		lines = append(lines, "DESCRIPTION:"+escapeICSText(desc))
	}
	if t.Completed {
		// Done tasks stay on the calendar but no longer block time.
		lines = append(lines, "TRANSP:TRANSPARENT")
	}
	return append(lines, "END:VEVENT")
}

// icsPriority maps to RFC 5545 priorities: 1 highest, 9 lowest, 0 undefined.
func icsPriority(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "1"
	case task.PriorityMedium:
		return "5"
	case task.PriorityLow:
		return "9"
	default:
		return "0"
	}
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}
