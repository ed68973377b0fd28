package cli

import (
	"github.com/spf13/cobra"

	"github.com/krishvaghani-dev/dailyWork/internal/config"
	"github.com/krishvaghani-dev/dailyWork/internal/task"
	"github.com/krishvaghani-dev/dailyWork/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive planner",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		q, err := queryFromFlags(cmd, s.cfg.View.Filter, s.cfg.View.Sort, s.cfg.View.Direction)
		if err != nil {
			return err
		}
		form, err := formDefaults(s.cfg.Form)
		if err != nil {
			return err
		}

		return tui.Run(cmd.Context(), s.store, tui.Options{Query: q, Form: form, Clock: s.clock})
	},
}

func init() {
	addListFlags(uiCmd)
}

func formDefaults(fc config.FormConfig) (tui.FormDefaults, error) {
	p, err := task.ParsePriority(fc.Priority)
	if err != nil {
		return tui.FormDefaults{}, err
	}
	tod, err := task.ParseTimeOfDay(fc.Time)
	if err != nil {
		return tui.FormDefaults{}, err
	}
	return tui.FormDefaults{Priority: p, Time: tod, MinuteStep: fc.MinuteStep}, nil
}
