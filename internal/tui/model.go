// Package tui is the interactive terminal planner. It renders the filtered
// task list, owns the add/edit form and gates deletions behind a
// confirmation modal.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/krishvaghani-dev/dailyWork/internal/clock"
	"github.com/krishvaghani-dev/dailyWork/internal/task"
	"github.com/krishvaghani-dev/dailyWork/internal/view"
)

const (
	deleteTitle   = "Delete Task"
	deleteMessage = "Are you sure you want to delete this task?"
	clearTitle    = "Clear Completed"
	clearMessage  = "Remove every completed task?"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirm
)

// Options configure a Model.
type Options struct {
	Query view.Query
	Form  FormDefaults
	Clock clock.Clock
}

// Model is the bubbletea model for the planner.
type Model struct {
	ctx   context.Context
	store *task.Store
	clock clock.Clock
	keys  keyMap
	help  help.Model

	query   view.Query
	visible []task.Task
	cursor  int
	mode    mode
	form    Form

	// Exactly one of pending and clearing is set while the modal is open.
	pending  *task.Deletion
	clearing bool

	status string
	width  int
}

// New builds a model over an already loaded store.
func New(ctx context.Context, store *task.Store, opts Options) Model {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	q := opts.Query
	if q.Filter == "" || q.SortBy == "" || q.Direction == "" {
		q = view.DefaultQuery()
	}

	m := Model{
		ctx:    ctx,
		store:  store,
		clock:  clk,
		keys:   defaultKeyMap(),
		help:   help.New(),
		query:  q,
		mode:   modeList,
		form:   newForm(opts.Form, clk.Now()),
		status: "Press 'a' to add a task.",
	}
	m.refresh()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, store *task.Store, opts Options) error {
	program := tea.NewProgram(New(ctx, store, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *Model) refresh() {
	m.visible = view.Apply(m.store.Tasks(), m.query, m.clock.Now())
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m Model) selected() (task.Task, bool) {
	if len(m.visible) == 0 {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(m.visible))
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(m.visible))
	case key.Matches(msg, m.keys.Add):
		m.form.Reset(m.clock.Now())
		m.mode = modeForm
		m.status = "New task: tab between fields, enter to save."
		return m, m.form.Focus()
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		m.form.Load(t, m.clock.Now().Location())
		m.mode = modeForm
		m.status = "Editing task."
		return m, m.form.Focus()
	case key.Matches(msg, m.keys.Toggle):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		toggled, _, err := m.store.ToggleComplete(m.ctx, t.ID)
		if err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.refresh()
		if toggled.Completed {
			m.status = "Marked done"
		} else {
			m.status = "Marked pending"
		}
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pending = m.store.Delete(t.ID)
		m.mode = modeConfirm
	case key.Matches(msg, m.keys.Clear):
		if view.Stats(m.store.Tasks()).Completed == 0 {
			m.status = "No completed tasks"
			return m, nil
		}
		m.clearing = true
		m.mode = modeConfirm
	case key.Matches(msg, m.keys.Filter):
		m.query.Filter = nextFilter(m.query.Filter)
		m.cursor = 0
		m.refresh()
		m.status = "Filter: " + string(m.query.Filter)
	case key.Matches(msg, m.keys.Sort):
		m.query.SortBy = nextSortKey(m.query.SortBy)
		m.refresh()
		m.status = "Sort: " + string(m.query.SortBy)
	case key.Matches(msg, m.keys.Reverse):
		m.query.Direction = m.query.Direction.Toggle()
		m.refresh()
		m.status = "Direction: " + string(m.query.Direction)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.clock.Now()
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.form.Blur()
		m.form.Reset(now)
		m.mode = modeList
		m.status = "Cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()
	case key.Matches(msg, m.keys.Next):
		m.form.NextField(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.form.NextField(-1)
		return m, nil
	}

	if m.form.focus == fieldText {
		return m, m.form.updateText(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Inc):
		m.form.Step(1, now)
	case key.Matches(msg, m.keys.Dec):
		m.form.Step(-1, now)
	}
	return m, nil
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	now := m.clock.Now()
	due, err := m.form.Due(now.Location())
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	text := m.form.Text()
	if strings.TrimSpace(text) == "" {
		m.status = "Task text cannot be empty"
		return m, nil
	}
	priority := m.form.Priority()

	if id, editing := m.form.Editing(); editing {
		_, found, err := m.store.Update(m.ctx, id, task.Patch{Text: &text, Priority: &priority, Date: &due})
		if err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.status = "Updated task"
		if !found {
			m.status = "Task no longer exists"
		}
	} else {
		if _, _, err := m.store.Add(m.ctx, text, priority, due); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.status = "Added task"
	}

	m.form.Blur()
	m.form.Reset(now)
	m.mode = modeList
	m.refresh()
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if m.clearing {
			n, err := m.store.ClearCompleted(m.ctx)
			if err != nil {
				m.status = fmt.Sprintf("clear failed: %v", err)
			} else {
				m.status = fmt.Sprintf("Removed %d completed tasks", n)
			}
		} else if m.pending != nil {
			if _, err := m.pending.Confirm(m.ctx); err != nil {
				m.status = fmt.Sprintf("delete failed: %v", err)
			} else {
				m.status = "Deleted task"
			}
		}
		m.closeModal()
		m.refresh()
	case key.Matches(msg, m.keys.Reject):
		if m.pending != nil {
			m.pending.Cancel()
		}
		m.closeModal()
		m.status = "Cancelled"
	}
	return m, nil
}

func (m *Model) closeModal() {
	m.pending = nil
	m.clearing = false
	m.mode = modeList
}

func nextFilter(f view.Filter) view.Filter {
	for i, known := range view.Filters {
		if known == f {
			return view.Filters[(i+1)%len(view.Filters)]
		}
	}
	return view.FilterAll
}

func nextSortKey(k view.SortKey) view.SortKey {
	for i, known := range view.SortKeys {
		if known == k {
			return view.SortKeys[(i+1)%len(view.SortKeys)]
		}
	}
	return view.SortPriority
}

func clampCursor(cursor, length int) int {
	if length == 0 || cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

func (m Model) View() string {
	var b strings.Builder
	now := m.clock.Now()

	b.WriteString(titleStyle.Render("Daily Tasks"))
	b.WriteString("  ")
	arrow := "↑"
	if m.query.Direction == view.Desc {
		arrow = "↓"
	}
	b.WriteString(subtleStyle.Render(fmt.Sprintf("filter: %s · sort: %s %s", m.query.Filter, m.query.SortBy, arrow)))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(subtleStyle.Render("No tasks here. Press 'a' to add one."))
		b.WriteString("\n")
	}
	for i, t := range m.visible {
		b.WriteString(m.renderRow(i, t, now))
		b.WriteString("\n")
	}

	s := view.Stats(m.store.Tasks())
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("%d total · %d pending · %d completed", s.Total, s.Pending, s.Completed)))
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.renderForm(now))
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView(m.keys.formHelp()))
	case modeConfirm:
		b.WriteString(m.renderModal())
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView(m.keys.confirmHelp()))
	default:
		b.WriteString(m.help.ShortHelpView(m.keys.listHelp()))
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderRow(i int, t task.Task, now time.Time) string {
	cursor := "  "
	if i == m.cursor && m.mode == modeList {
		cursor = cursorStyle.Render("> ")
	}
	box := "[ ]"
	text := t.Text
	if t.Completed {
		box = "[x]"
		text = doneStyle.Render(text)
	}
	prio := string(t.Priority)
	if st, ok := priorityStyles[prio]; ok {
		prio = st.Render(prio)
	}
	return fmt.Sprintf("%s%s %s  %s  %s", cursor, box, text, prio, subtleStyle.Render(view.Label(t.Date, now)))
}

func (m Model) renderForm(now time.Time) string {
	title := "Add Task"
	if _, editing := m.form.Editing(); editing {
		title = "Edit Task"
	}

	day := m.form.Day().Format("Mon Jan 2")
	switch view.BucketOf(m.form.Day(), now) {
	case view.BucketToday:
		day = "Today (" + day + ")"
	case view.BucketTomorrow:
		day = "Tomorrow (" + day + ")"
	}
	tod := m.form.TimeOfDay()
	values := [fieldCount]string{
		m.form.text.View(),
		day,
		fmt.Sprintf("%02d", tod.Hour),
		fmt.Sprintf("%02d", tod.Minute),
		string(tod.Period),
		string(m.form.Priority()),
	}

	var rows []string
	rows = append(rows, titleStyle.Render(title))
	for f := field(0); f < fieldCount; f++ {
		label := fmt.Sprintf("%-9s", fieldNames[f])
		if f == m.form.focus {
			label = focusStyle.Render(label)
		}
		rows = append(rows, label+" "+values[f])
	}
	return formStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderModal() string {
	title, message := deleteTitle, deleteMessage
	if m.clearing {
		title, message = clearTitle, clearMessage
	} else if m.pending != nil {
		if t, ok := m.pending.Task(); ok {
			message += "\n\n" + subtleStyle.Render(t.Text)
		}
	}
	return modalStyle.Render(titleStyle.Render(title) + "\n\n" + message)
}
