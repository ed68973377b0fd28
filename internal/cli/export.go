package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/krishvaghani-dev/dailyWork/internal/export"
	"github.com/krishvaghani-dev/dailyWork/internal/task"
	"github.com/krishvaghani-dev/dailyWork/internal/view"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks as JSON, YAML, CSV, iCalendar or PDF",
	Long: `Export tasks, optionally filtered. The JSON format is the same one the
tasks are stored in, so it doubles as a backup that "dailywork import" reads.

Without --format the format is taken from the --output file extension, and
falls back to JSON.`,
	Example: `  dailywork export -o tasks.ics
  dailywork export --format pdf --filter today -o today.pdf`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Add tasks from a JSON export",
	Long:  `Add tasks from a JSON export. Tasks whose id already exists are skipped.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().String("format", "", "Format: json, yaml, csv, ics or pdf")
	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().StringP("filter", "f", "all", "Only export tasks matching this filter")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	filterName, _ := cmd.Flags().GetString("filter")

	if format == "" {
		format = formatFromPath(output)
	}
	filter, err := view.ParseFilter(filterName)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	now := s.clock.Now()
	tasks := s.store.Tasks()
	if filter != view.FilterAll {
		tasks = view.Apply(tasks, view.Query{Filter: filter, SortBy: view.SortDate, Direction: view.Asc}, now)
	}

	data, err := export.Render(tasks, format, now)
	if err != nil {
		return err
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", len(tasks), output)
	return nil
}

func formatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "yml":
		return export.FormatYAML
	case export.FormatYAML, export.FormatCSV, export.FormatICS, export.FormatPDF:
		return ext
	default:
		return export.FormatJSON
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	return importTasks(cmd.Context(), cmd.OutOrStdout(), s.store, data, s.clock.Now())
}

func importTasks(ctx context.Context, out io.Writer, store *task.Store, data []byte, now time.Time) error {
	var incoming []task.Task
	if err := json.Unmarshal(data, &incoming); err != nil {
		return fmt.Errorf("%w: %v", task.ErrCorrupt, err)
	}

	merged := store.Tasks()
	seen := make(map[int64]bool, len(merged))
	for _, t := range merged {
		seen[t.ID] = true
	}

	added, skipped := 0, 0
	for _, t := range incoming {
		if t.ID <= 0 || seen[t.ID] || strings.TrimSpace(t.Text) == "" {
			skipped++
			continue
		}
		if t.Priority == "" {
			t.Priority = task.PriorityMedium
		}
		if t.Category == "" {
			t.Category = task.DefaultCategory
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		seen[t.ID] = true
		merged = append(merged, t)
		added++
	}

	if added > 0 {
		if err := store.Save(ctx, merged); err != nil {
			return fmt.Errorf("failed to save tasks: %w", err)
		}
	}
	fmt.Fprintf(out, "Imported %d tasks, skipped %d.\n", added, skipped)
	return nil
}
