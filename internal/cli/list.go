package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/krishvaghani-dev/dailyWork/internal/task"
	"github.com/krishvaghani-dev/dailyWork/internal/view"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks, pending first.

Filters: all, today, tomorrow, upcoming, completed, high, medium, low.
Sort keys: priority, date, name. For priority, "asc" lists high first.`,
	RunE: runList,
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "List tasks due today",
	RunE:  runFilteredList(view.FilterToday),
}

var tomorrowCmd = &cobra.Command{
	Use:   "tomorrow",
	Short: "List tasks due tomorrow",
	RunE:  runFilteredList(view.FilterTomorrow),
}

func init() {
	addListFlags(listCmd)
	addListFlags(todayCmd)
	addListFlags(tomorrowCmd)
	todayCmd.Flags().MarkHidden("filter")
	tomorrowCmd.Flags().MarkHidden("filter")
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("filter", "f", "", "Filter (default from config)")
	cmd.Flags().StringP("sort", "s", "", "Sort key (default from config)")
	cmd.Flags().String("dir", "", "Sort direction: asc or desc (default from config)")
}

func runList(cmd *cobra.Command, args []string) error {
	return runFilteredList("")(cmd, args)
}

// runFilteredList builds a RunE that lists tasks, forcing filter when set.
func runFilteredList(filter view.Filter) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		q, err := queryFromFlags(cmd, s.cfg.View.Filter, s.cfg.View.Sort, s.cfg.View.Direction)
		if err != nil {
			return err
		}
		if filter != "" {
			q.Filter = filter
		}

		printTasks(cmd.OutOrStdout(), s.store.Tasks(), q, s.clock.Now())
		return nil
	}
}

// queryFromFlags overlays the list flags on configured defaults.
func queryFromFlags(cmd *cobra.Command, filter, sortKey, dir string) (view.Query, error) {
	if v, _ := cmd.Flags().GetString("filter"); v != "" {
		filter = v
	}
	if v, _ := cmd.Flags().GetString("sort"); v != "" {
		sortKey = v
	}
	if v, _ := cmd.Flags().GetString("dir"); v != "" {
		dir = v
	}

	f, err := view.ParseFilter(filter)
	if err != nil {
		return view.Query{}, err
	}
	k, err := view.ParseSortKey(sortKey)
	if err != nil {
		return view.Query{}, err
	}
	d, err := view.ParseDirection(dir)
	if err != nil {
		return view.Query{}, err
	}
	return view.Query{Filter: f, SortBy: k, Direction: d}, nil
}

func printTasks(out io.Writer, tasks []task.Task, q view.Query, now time.Time) {
	shown := view.Apply(tasks, q, now)
	if len(shown) == 0 {
		fmt.Fprintf(out, "No tasks (filter: %s).\n", q.Filter)
		return
	}

	for _, t := range shown {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		fmt.Fprintf(out, "%d  %s %-40s %-6s  %s\n", t.ID, box, t.Text, t.Priority, view.Label(t.Date, now))
	}

	s := view.Stats(tasks)
	fmt.Fprintf(out, "\n%d shown · %d total · %d pending · %d completed\n", len(shown), s.Total, s.Pending, s.Completed)
}
