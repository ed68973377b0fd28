package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krishvaghani-dev/dailyWork/internal/task"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task after confirmation",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

var clearCompletedCmd = &cobra.Command{
	Use:   "clear-completed",
	Short: "Delete every completed task after confirmation",
	RunE:  runClearCompleted,
}

func init() {
	rmCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
	clearCompletedCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
}

func runRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	return removeTask(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), s.store, id, yes)
}

func removeTask(ctx context.Context, in io.Reader, out io.Writer, store *task.Store, id int64, yes bool) error {
	d := store.Delete(id)
	t, ok := d.Task()
	if !ok {
		d.Cancel()
		fmt.Fprintf(out, "No task with id %d.\n", id)
		return nil
	}

	if !yes {
		fmt.Fprintf(out, "Delete Task\nAre you sure you want to delete this task?\n  %s\n", t.Text)
		if !confirm(in, out) {
			d.Cancel()
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if _, err := d.Confirm(ctx); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	fmt.Fprintf(out, "Deleted: %s\n", t.Text)
	return nil
}

func runClearCompleted(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	return clearCompleted(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), s.store, yes)
}

func clearCompleted(ctx context.Context, in io.Reader, out io.Writer, store *task.Store, yes bool) error {
	n := 0
	for _, t := range store.Tasks() {
		if t.Completed {
			n++
		}
	}
	if n == 0 {
		fmt.Fprintln(out, "No completed tasks.")
		return nil
	}

	if !yes {
		fmt.Fprintf(out, "Remove %d completed tasks?\n", n)
		if !confirm(in, out) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	removed, err := store.ClearCompleted(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear completed tasks: %w", err)
	}
	fmt.Fprintf(out, "Removed %d completed tasks.\n", removed)
	return nil
}

// confirm asks for y/N on in. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "[y/N]: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
