package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/krishvaghani-dev/dailyWork/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent task changes",
	Long:  `Show the journal of task changes, newest first, or every change to one task with --task.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of changes to show")
	historyCmd.Flags().Int64("task", 0, "Only show changes to this task id, oldest first")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	taskID, _ := cmd.Flags().GetInt64("task")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Journal.Enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "The journal is disabled (journal.enabled: false).")
		return nil
	}

	j, err := journal.Open(cfg.JournalPath())
	if err != nil {
		return err
	}
	defer j.Close()

	return printHistory(cmd.Context(), cmd.OutOrStdout(), j, taskID, limit)
}

func printHistory(ctx context.Context, out io.Writer, j *journal.SQLiteJournal, taskID int64, limit int) error {
	var (
		entries []journal.Entry
		err     error
	)
	if taskID != 0 {
		entries, err = j.ForTask(ctx, taskID)
	} else {
		entries, err = j.Recent(ctx, limit)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No history found.")
		return nil
	}

	fmt.Fprintf(out, "Recent Changes (%d):\n\n", len(entries))
	for _, e := range entries {
		session := e.SessionID
		if len(session) > 8 {
			session = session[:8]
		}
		fmt.Fprintf(out, "  %s  %-15s  %-8s  %d  %s",
			e.Timestamp.Local().Format("2006-01-02 15:04"), e.Op, session, e.TaskID, e.Text)
		if e.Detail != "" {
			fmt.Fprintf(out, " (%s)", e.Detail)
		}
		fmt.Fprintln(out)
	}
	return nil
}
