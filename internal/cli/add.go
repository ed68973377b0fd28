package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/krishvaghani-dev/dailyWork/internal/clock"
	"github.com/krishvaghani-dev/dailyWork/internal/config"
	"github.com/krishvaghani-dev/dailyWork/internal/task"
	"github.com/krishvaghani-dev/dailyWork/internal/view"
)

var addCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a task",
	Long: `Add a task due on a day at a time.

Days are "today", "tomorrow", "+N" (N days from today) or YYYY-MM-DD.
Times are 12-hour ("9:30 PM") or 24-hour ("21:30"). Without flags the task
is due today at the configured default time with the default priority.`,
	Example: `  dailywork add Buy milk
  dailywork add -p high -d tomorrow -t "8:15 am" Dentist`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringP("priority", "p", "", "Priority: high, medium or low (default from config)")
	addCmd.Flags().StringP("day", "d", "today", "Due day")
	addCmd.Flags().StringP("time", "t", "", "Due time (default from config)")
	addCmd.Flags().Bool("allow-past", false, "Allow a due day before today")
}

type addOptions struct {
	Priority  string
	Day       string
	Time      string
	AllowPast bool
}

func runAdd(cmd *cobra.Command, args []string) error {
	var opts addOptions
	opts.Priority, _ = cmd.Flags().GetString("priority")
	opts.Day, _ = cmd.Flags().GetString("day")
	opts.Time, _ = cmd.Flags().GetString("time")
	opts.AllowPast, _ = cmd.Flags().GetBool("allow-past")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	return addTask(cmd.Context(), cmd.OutOrStdout(), s.store, s.cfg.Form, strings.Join(args, " "), opts, s.clock.Now())
}

func addTask(ctx context.Context, out io.Writer, store *task.Store, form config.FormConfig, text string, opts addOptions, now time.Time) error {
	rawPriority := opts.Priority
	if rawPriority == "" {
		rawPriority = form.Priority
	}
	priority, err := task.ParsePriority(rawPriority)
	if err != nil {
		return err
	}

	day, err := task.ParseDay(opts.Day, now)
	if err != nil {
		return err
	}
	if !opts.AllowPast && day.Before(clock.StartOfDay(now)) {
		return fmt.Errorf("due day %s is in the past (use --allow-past to add it anyway)", day.Format("2006-01-02"))
	}

	rawTime := opts.Time
	if rawTime == "" {
		rawTime = form.Time
	}
	tod, err := task.ParseTimeOfDay(rawTime)
	if err != nil {
		return err
	}
	due, err := task.ComposeDue(day, tod, now.Location())
	if err != nil {
		return err
	}

	t, added, err := store.Add(ctx, text, priority, due)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	if !added {
		fmt.Fprintln(out, "Nothing added: task text is empty.")
		return nil
	}

	fmt.Fprintf(out, "Added %d: %s (%s, %s)\n", t.ID, t.Text, t.Priority, view.Label(t.Date, now))
	return nil
}
