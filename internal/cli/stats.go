package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/krishvaghani-dev/dailyWork/internal/task"
	"github.com/krishvaghani-dev/dailyWork/internal/view"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		printStats(cmd.OutOrStdout(), s.store.Tasks(), s.clock.Now())
		return nil
	},
}

func printStats(out io.Writer, tasks []task.Task, now time.Time) {
	s := view.Stats(tasks)
	fmt.Fprintf(out, "Total:     %d\n", s.Total)
	fmt.Fprintf(out, "Pending:   %d\n", s.Pending)
	fmt.Fprintf(out, "Completed: %d\n", s.Completed)

	pending := make(map[view.Bucket]int)
	byPriority := make(map[task.Priority]int)
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		pending[view.BucketOf(t.Date, now)]++
		byPriority[t.Priority]++
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Pending by day:      %d overdue, %d today, %d tomorrow, %d later\n",
		pending[view.BucketPast], pending[view.BucketToday], pending[view.BucketTomorrow], pending[view.BucketUpcoming])
	fmt.Fprintf(out, "Pending by priority: %d high, %d medium, %d low\n",
		byPriority[task.PriorityHigh], byPriority[task.PriorityMedium], byPriority[task.PriorityLow])
}
