// Package export renders a task list in formats meant for other tools:
// JSON (the stored wire format), YAML, CSV, iCalendar and PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/krishvaghani-dev/dailyWork/internal/task"
	"github.com/krishvaghani-dev/dailyWork/internal/view"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
	FormatICS  = "ics"
	FormatPDF  = "pdf"
)

// Formats lists the supported format names.
var Formats = []string{FormatJSON, FormatYAML, FormatCSV, FormatICS, FormatPDF}

// Render encodes tasks in the named format. now stamps the ICS and PDF
// output and resolves relative due labels.
func Render(tasks []task.Task, format string, now time.Time) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		if tasks == nil {
			tasks = []task.Task{}
		}
		return json.MarshalIndent(tasks, "", "  ")
	case FormatYAML:
		return yaml.Marshal(tasks)
	case FormatCSV:
		return renderCSV(tasks)
	case FormatICS:
		return []byte(BuildCalendar(tasks, now)), nil
	case FormatPDF:
		return renderPDF(tasks, now)
	default:
		return nil, fmt.Errorf("unknown format '%s': must be one of %s", format, strings.Join(Formats, ", "))
	}
}

// Write renders tasks and writes them to w.
func Write(w io.Writer, tasks []task.Task, format string, now time.Time) error {
	data, err := Render(tasks, format, now)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func renderCSV(tasks []task.Task) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "text", "date", "completed", "priority", "category", "notes"})
	for _, t := range tasks {
		_ = w.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Text,
			t.Date.UTC().Format(time.RFC3339),
			strconv.FormatBool(t.Completed),
			string(t.Priority),
			t.Category,
			t.Notes,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func renderPDF(tasks []task.Task, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Daily Tasks", true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Daily Tasks")
	pdf.Ln(8)

	s := view.Stats(tasks)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("%s  |  %d total, %d pending, %d completed",
		now.Format("Mon Jan 2, 2006"), s.Total, s.Pending, s.Completed))
	pdf.Ln(10)

	// Core fonts are cp1252; anything outside it would print as garbage.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s  (%s, %s)", box, t.Text, t.Priority, view.Label(t.Date, now))
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
		if t.Notes != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.MultiCell(0, 5, tr("    "+t.Notes), "0", "L", false)
			pdf.SetFont("Arial", "", 10)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
