package agenda

import (
	"strings"
	"testing"
	"time"

	"github.com/krishvaghani-dev/dailyWork/internal/task"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func day(d, h, m int) time.Time {
	return time.Date(2026, 10, d, h, m, 0, 0, time.UTC)
}

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: 1, Text: "file expenses", Date: day(17, 9, 0), Priority: task.PriorityMedium},
		{ID: 2, Text: "late lunch", Date: day(19, 14, 0), Priority: task.PriorityLow},
		{ID: 3, Text: "standup", Date: day(19, 9, 30), Priority: task.PriorityHigh},
		{ID: 4, Text: "dentist", Date: day(20, 8, 0), Priority: task.PriorityMedium},
		{ID: 5, Text: "conference", Date: day(25, 10, 0), Priority: task.PriorityMedium},
		{ID: 6, Text: "email", Date: day(19, 8, 0), Priority: task.PriorityMedium, Completed: true},
		{ID: 7, Text: "old done", Date: day(10, 8, 0), Priority: task.PriorityMedium, Completed: true},
	}
}

func TestGenerateBuckets(t *testing.T) {
	t.Parallel()

	a := Generate(sampleTasks(), now, 0)

	check := func(name string, got []task.Task, want ...int64) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("%s: expected %d tasks, got %d", name, len(want), len(got))
		}
		for i := range want {
			if got[i].ID != want[i] {
				t.Errorf("%s[%d]: expected id %d, got %d", name, i, want[i], got[i].ID)
			}
		}
	}

	check("overdue", a.Overdue, 1)
	check("today", a.Today, 3, 2)
	check("tomorrow", a.Tomorrow, 4)
	check("upcoming", a.Upcoming, 5)
	check("done today", a.DoneToday, 6)

	if a.Summary.Total != 7 || a.Summary.Completed != 2 || a.Summary.Pending != 5 {
		t.Errorf("unexpected summary: %+v", a.Summary)
	}
}

func TestGenerateLimitsUpcoming(t *testing.T) {
	t.Parallel()

	var tasks []task.Task
	for i := 0; i < 4; i++ {
		tasks = append(tasks, task.Task{ID: int64(i + 1), Text: "later", Date: day(22+i, 9, 0)})
	}

	a := Generate(tasks, now, 2)
	if len(a.Upcoming) != 2 || a.Upcoming[0].ID != 1 || a.Upcoming[1].ID != 2 {
		t.Errorf("expected the two soonest tasks, got %+v", a.Upcoming)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	out := Generate(sampleTasks(), now, 0).Render()

	for _, want := range []string{
		"# Agenda: Monday, Oct 19, 2026",
		"**Status**: 7 total, 5 pending, 2 completed",
		"## Overdue\n\n- [ ] Oct 17, 9:00 AM file expenses\n",
		"## Today\n\n- [ ] 9:30 AM standup (!)\n- [ ] 2:00 PM late lunch (low)\n",
		"## Tomorrow\n\n- [ ] 8:00 AM dentist\n",
		"## Coming Up\n\n- [ ] Oct 25, 10:00 AM conference\n",
		"## Done Today\n\n- [x] email\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("agenda missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "old done") {
		t.Error("completed tasks from earlier days should not appear")
	}
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()

	out := Generate(nil, now, 0).Render()
	if !strings.Contains(out, "Nothing pending") {
		t.Errorf("expected empty message, got:\n%s", out)
	}
	if strings.Contains(out, "## Today") {
		t.Error("empty sections should be omitted")
	}
}
