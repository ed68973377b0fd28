package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krishvaghani-dev/dailyWork/internal/agenda"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Print a markdown plan for today and tomorrow",
	RunE: func(cmd *cobra.Command, args []string) error {
		upcoming, _ := cmd.Flags().GetInt("upcoming")

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		a := agenda.Generate(s.store.Tasks(), s.clock.Now(), upcoming)
		fmt.Fprint(cmd.OutOrStdout(), a.Render())
		return nil
	},
}

func init() {
	agendaCmd.Flags().Int("upcoming", agenda.DefaultUpcoming, "Number of later tasks to include")
}
