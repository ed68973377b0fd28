package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/krishvaghani-dev/dailyWork/internal/task"
	"github.com/krishvaghani-dev/dailyWork/internal/view"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a task's text, priority, due date, notes or category",
	Long: `Change fields of a task. Only the flags given are changed.

Setting only --day keeps the task's time of day; setting only --time keeps
its day. An empty --text leaves the task unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("text", "", "New task text")
	editCmd.Flags().StringP("priority", "p", "", "New priority: high, medium or low")
	editCmd.Flags().StringP("day", "d", "", "New due day")
	editCmd.Flags().StringP("time", "t", "", "New due time")
	editCmd.Flags().String("notes", "", "Notes")
	editCmd.Flags().String("category", "", "Category")
}

// editOptions holds the flags that were set; nil means unchanged.
type editOptions struct {
	Text     *string
	Priority *string
	Day      *string
	Time     *string
	Notes    *string
	Category *string
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var opts editOptions
	for name, dst := range map[string]**string{
		"text":     &opts.Text,
		"priority": &opts.Priority,
		"day":      &opts.Day,
		"time":     &opts.Time,
		"notes":    &opts.Notes,
		"category": &opts.Category,
	} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = &v
		}
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	return editTask(cmd.Context(), cmd.OutOrStdout(), s.store, id, opts, s.clock.Now())
}

func editTask(ctx context.Context, out io.Writer, store *task.Store, id int64, opts editOptions, now time.Time) error {
	current, ok := store.Get(id)
	if !ok {
		fmt.Fprintf(out, "No task with id %d.\n", id)
		return nil
	}

	p := task.Patch{Text: opts.Text, Notes: opts.Notes, Category: opts.Category}
	if opts.Priority != nil {
		prio, err := task.ParsePriority(*opts.Priority)
		if err != nil {
			return err
		}
		p.Priority = &prio
	}

	if opts.Day != nil || opts.Time != nil {
		loc := now.Location()
		day := current.Date.In(loc)
		tod := task.TimeOfDayFrom(day)
		if opts.Day != nil {
			d, err := task.ParseDay(*opts.Day, now)
			if err != nil {
				return err
			}
			day = d
		}
		if opts.Time != nil {
			t, err := task.ParseTimeOfDay(*opts.Time)
			if err != nil {
				return err
			}
			tod = t
		}
		due, err := task.ComposeDue(day, tod, loc)
		if err != nil {
			return err
		}
		p.Date = &due
	}

	updated, found, err := store.Update(ctx, id, p)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if !found {
		fmt.Fprintln(out, "Nothing changed: task text is empty.")
		return nil
	}
	fmt.Fprintf(out, "Updated %d: %s (%s, %s)\n", updated.ID, updated.Text, updated.Priority, view.Label(updated.Date, now))
	return nil
}
