package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/krishvaghani-dev/dailyWork/internal/task"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task between done and pending",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	return toggleTask(cmd.Context(), cmd.OutOrStdout(), s.store, id)
}

func toggleTask(ctx context.Context, out io.Writer, store *task.Store, id int64) error {
	t, found, err := store.ToggleComplete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	switch {
	case !found:
		fmt.Fprintf(out, "No task with id %d.\n", id)
	case t.Completed:
		fmt.Fprintf(out, "Completed: %s\n", t.Text)
	default:
		fmt.Fprintf(out, "Reopened: %s\n", t.Text)
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id '%s'", s)
	}
	return id, nil
}
