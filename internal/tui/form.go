package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/krishvaghani-dev/dailyWork/internal/clock"
	"github.com/krishvaghani-dev/dailyWork/internal/task"
)

// FormDefaults seed a fresh creation form.
type FormDefaults struct {
	Priority   task.Priority
	Time       task.TimeOfDay
	MinuteStep int
}

// DefaultFormDefaults matches a new install: medium priority at 09:00 AM,
// minutes moving in steps of five.
func DefaultFormDefaults() FormDefaults {
	return FormDefaults{Priority: task.PriorityMedium, Time: task.DefaultTimeOfDay(), MinuteStep: 5}
}

type field int

const (
	fieldText field = iota
	fieldDay
	fieldHour
	fieldMinute
	fieldPeriod
	fieldPriority
	fieldCount
)

var fieldNames = [...]string{"Task", "Date", "Hour", "Minute", "AM/PM", "Priority"}

// Form is the single source of truth for the add/edit form: text, calendar
// day, 12-hour time and priority.
type Form struct {
	defaults FormDefaults

	text     textinput.Model
	day      time.Time // midnight of the chosen day
	tod      task.TimeOfDay
	priority task.Priority
	focus    field

	// editing is the id of the task being edited; 0 while adding.
	editing int64
}

func newForm(d FormDefaults, now time.Time) Form {
	if d.MinuteStep <= 0 {
		d.MinuteStep = 5
	}
	if !d.Priority.Valid() {
		d.Priority = task.PriorityMedium
	}
	if d.Time.Validate() != nil {
		d.Time = task.DefaultTimeOfDay()
	}

	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 256
	ti.Width = 40

	f := Form{defaults: d, text: ti}
	f.Reset(now)
	return f
}

// Reset clears the form for a new task due today.
func (f *Form) Reset(now time.Time) {
	f.text.SetValue("")
	f.day = clock.StartOfDay(now)
	f.tod = f.defaults.Time
	f.priority = f.defaults.Priority
	f.focus = fieldText
	f.editing = 0
}

// Load fills the form from an existing task for editing.
func (f *Form) Load(t task.Task, loc *time.Location) {
	due := t.Date.In(loc)
	f.text.SetValue(t.Text)
	f.text.CursorEnd()
	f.day = clock.StartOfDay(due)
	f.tod = task.TimeOfDayFrom(due)
	f.priority = t.Priority
	if !f.priority.Valid() {
		f.priority = f.defaults.Priority
	}
	f.focus = fieldText
	f.editing = t.ID
}

func (f *Form) Focus() tea.Cmd {
	f.focus = fieldText
	return f.text.Focus()
}

func (f *Form) Blur() {
	f.text.Blur()
}

// Editing reports the id being edited and whether the form is in edit mode.
func (f Form) Editing() (int64, bool) {
	return f.editing, f.editing != 0
}

func (f Form) Text() string { return f.text.Value() }
func (f Form) Day() time.Time { return f.day }
func (f Form) TimeOfDay() task.TimeOfDay { return f.tod }
func (f Form) Priority() task.Priority { return f.priority }

// Due composes the chosen day and time in loc.
func (f Form) Due(loc *time.Location) (time.Time, error) {
	return task.ComposeDue(f.day, f.tod, loc)
}

// NextField moves focus forward (delta 1) or backward (delta -1), wrapping.
func (f *Form) NextField(delta int) {
	next := (int(f.focus) + delta) % int(fieldCount)
	if next < 0 {
		next += int(fieldCount)
	}
	f.focus = field(next)
	if f.focus == fieldText {
		f.text.Focus()
	} else {
		f.text.Blur()
	}
}

// StepDay moves the date by delta days. The date never moves to a day
// before today.
func (f *Form) StepDay(delta int, now time.Time) {
	today := clock.StartOfDay(now.In(f.day.Location()))
	next := f.day.AddDate(0, 0, delta)
	if delta < 0 && next.Before(today) {
		return
	}
	f.day = next
}

func (f *Form) StepHour(delta int) {
	f.tod = f.tod.StepHour(delta)
}

func (f *Form) StepMinute(delta int) {
	f.tod = f.tod.StepMinute(delta, f.defaults.MinuteStep)
}

func (f *Form) TogglePeriod() {
	f.tod = f.tod.TogglePeriod()
}

// CyclePriority walks high, medium, low.
func (f *Form) CyclePriority(delta int) {
	idx := 0
	for i, p := range task.Priorities {
		if p == f.priority {
			idx = i
			break
		}
	}
	n := len(task.Priorities)
	f.priority = task.Priorities[((idx+delta)%n+n)%n]
}

// Step applies an arrow-key adjustment to the focused field.
func (f *Form) Step(delta int, now time.Time) {
	switch f.focus {
	case fieldDay:
		f.StepDay(delta, now)
	case fieldHour:
		f.StepHour(delta)
	case fieldMinute:
		f.StepMinute(delta)
	case fieldPeriod:
		f.TogglePeriod()
	case fieldPriority:
		f.CyclePriority(delta)
	}
}

func (f *Form) updateText(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.text, cmd = f.text.Update(msg)
	return cmd
}
