package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/krishvaghani-dev/dailyWork/internal/config"
	"github.com/krishvaghani-dev/dailyWork/internal/journal"
	"github.com/krishvaghani-dev/dailyWork/internal/kv"
	"github.com/krishvaghani-dev/dailyWork/internal/task"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check dailywork configuration and storage health",
	Long:  `Runs diagnostic checks on configuration, storage and the journal and reports pass/fail for each.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := runDoctor(cmd.Context(), cmd.OutOrStdout())
		if failed > 0 {
			return fmt.Errorf("%d checks failed", failed)
		}
		return nil
	},
}

// runDoctor prints every check and returns the number that failed.
func runDoctor(ctx context.Context, out io.Writer) int {
	passed := 0
	failed := 0

	check := func(name string, ok bool, detail string) {
		if ok {
			fmt.Fprintf(out, "  ✓ %s\n", name)
			passed++
		} else {
			fmt.Fprintf(out, "  ✗ %s: %s\n", name, detail)
			failed++
		}
	}

	fmt.Fprintln(out, "Configuration:")
	check("global config", exists(config.GlobalConfigPath()), "run: dailywork init --global (defaults are used until then)")
	if exists(config.ProjectConfigPath()) {
		fmt.Fprintf(out, "  → project config: %s\n", config.ProjectConfigPath())
	}

	cfg, cfgErr := loadConfig()
	if cfgErr != nil {
		check("config valid", false, cfgErr.Error())
		fmt.Fprintf(out, "\nResults: %d passed, %d failed\n", passed, failed)
		return failed
	}
	check("config valid", true, "")

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Storage:")
	opts := cfg.KVOptions()
	fmt.Fprintf(out, "  → backend: %s\n", opts.Backend)
	st, err := kv.Open(opts)
	check("storage reachable", err == nil, fmt.Sprint(err))
	if err == nil {
		defer st.Close()
		data, err := st.Get(ctx, cfg.Storage.Key)
		switch {
		case errors.Is(err, kv.ErrNotFound):
			check("task list", true, "")
			fmt.Fprintln(out, "  → no tasks saved yet")
		case err != nil:
			check("task list readable", false, err.Error())
		default:
			store := task.NewStore(memoryCopy(ctx, cfg.Storage.Key, data), task.WithKey(cfg.Storage.Key))
			loadErr := store.Load(ctx)
			check("task list decodes", loadErr == nil, fmt.Sprint(loadErr))
			if loadErr == nil {
				fmt.Fprintf(out, "  → %d tasks\n", len(store.Tasks()))
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Journal:")
	if !cfg.Journal.Enabled {
		fmt.Fprintln(out, "  → disabled")
	} else {
		j, err := journal.Open(cfg.JournalPath())
		check("journal opens", err == nil, fmt.Sprint(err))
		if err == nil {
			_, err := j.Recent(ctx, 1)
			check("journal readable", err == nil, fmt.Sprint(err))
			j.Close()
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Results: %d passed, %d failed\n", passed, failed)
	return failed
}

// memoryCopy loads data into a scratch store so decoding can be checked
// without writing to the real backend.
func memoryCopy(ctx context.Context, key string, data []byte) kv.Storage {
	m := kv.NewMemoryStorage()
	_ = m.Set(ctx, key, data)
	return m
}
