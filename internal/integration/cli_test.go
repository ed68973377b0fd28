//go:build integration

package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/krishvaghani-dev/dailyWork/internal/testutil"
)

// getBinary returns the path to the dailywork binary.
// The binary should be built before running integration tests:
// go build -o bin/dailywork ./cmd/dailywork
func getBinary(t *testing.T) string {
	t.Helper()

	// SetupTestEnv changes directory, so resolve against this package's source.
	binPaths := []string{
		filepath.Join(packageDir, "..", "..", "bin", "dailywork"),
	}

	for _, binPath := range binPaths {
		absPath, _ := filepath.Abs(binPath)
		if _, err := os.Stat(absPath); err == nil {
			return absPath
		}
	}

	// Try to find via PATH
	if path, err := exec.LookPath("dailywork"); err == nil {
		return path
	}

	t.Fatal("dailywork binary not found. Run 'go build -o bin/dailywork ./cmd/dailywork' first or ensure dailywork is in PATH")
	return ""
}

var packageDir, _ = os.Getwd()

func run(t *testing.T, bin string, args ...string) string {
	t.Helper()

	output, err := exec.Command(bin, args...).CombinedOutput()
	if err != nil {
		t.Fatalf("dailywork %s failed: %v\nOutput: %s", strings.Join(args, " "), err, output)
	}
	return string(output)
}

func TestInitGlobal(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	bin := getBinary(t)

	t.Run("CreatesConfig", func(t *testing.T) {
		output := run(t, bin, "init", "--global", "--backend", "sqlite")
		if !strings.Contains(output, "with sqlite storage") {
			t.Errorf("Expected success message, got: %s", output)
		}
		if !env.FileExists(filepath.Join(env.GlobalDir, "config.yaml")) {
			t.Error("Expected ~/.dailywork/config.yaml to exist")
		}
	})

	t.Run("FailsIfExists", func(t *testing.T) {
		output, err := exec.Command(bin, "init", "--global").CombinedOutput()
		if err == nil {
			t.Error("Expected init --global to fail when config exists")
		}
		if !strings.Contains(string(output), "already exists") {
			t.Errorf("Expected 'already exists' error, got: %s", output)
		}
	})

	t.Run("RejectsUnknownBackend", func(t *testing.T) {
		output, err := exec.Command(bin, "init", "--global", "--force", "--backend", "postgres").CombinedOutput()
		if err == nil {
			t.Error("Expected init to reject an unknown backend")
		}
		if !strings.Contains(string(output), "invalid backend") {
			t.Errorf("Expected 'invalid backend' error, got: %s", output)
		}
	})
}

var addedID = regexp.MustCompile(`Added (\d+):`)

func TestTaskLifecycle(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	bin := getBinary(t)

	output := run(t, bin, "add", "-p", "high", "-d", "tomorrow", "-t", "8:15 am", "Dentist")
	m := addedID.FindStringSubmatch(output)
	if m == nil {
		t.Fatalf("Expected task id in output, got: %s", output)
	}
	id := m[1]
	if !strings.Contains(output, "Tomorrow, 8:15 AM") {
		t.Errorf("Expected due label, got: %s", output)
	}
	if !env.FileExists(filepath.Join(env.GlobalDir, "tasks.json")) {
		t.Error("Expected tasks.json to be created")
	}

	output = run(t, bin, "tomorrow")
	if !strings.Contains(output, "Dentist") {
		t.Errorf("Expected task in tomorrow list, got: %s", output)
	}
	output = run(t, bin, "today")
	if !strings.Contains(output, "No tasks (filter: today)") {
		t.Errorf("Expected empty today list, got: %s", output)
	}

	output = run(t, bin, "done", id)
	if !strings.Contains(output, "Completed: Dentist") {
		t.Errorf("Expected completion message, got: %s", output)
	}

	output = run(t, bin, "history", "--task", id)
	if !strings.Contains(output, "Recent Changes (2)") {
		t.Errorf("Expected two journal entries, got: %s", output)
	}

	// declined without a terminal: stdin is empty
	output = run(t, bin, "rm", id)
	if !strings.Contains(output, "Cancelled.") {
		t.Errorf("Expected delete to be cancelled, got: %s", output)
	}

	output = run(t, bin, "rm", "--yes", id)
	if !strings.Contains(output, "Deleted: Dentist") {
		t.Errorf("Expected delete message, got: %s", output)
	}

	output = run(t, bin, "list")
	if !strings.Contains(output, "No tasks (filter: all)") {
		t.Errorf("Expected empty list, got: %s", output)
	}
}

func TestExportImport(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	bin := getBinary(t)

	run(t, bin, "add", "Buy milk")
	run(t, bin, "add", "-p", "low", "-d", "+3", "Water plants")

	run(t, bin, "export", "-o", "tasks.ics")
	ics := env.ReadFile("tasks.ics")
	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR") || strings.Count(ics, "BEGIN:VEVENT") != 2 {
		t.Errorf("Unexpected calendar:\n%s", ics)
	}

	run(t, bin, "export", "-o", "backup.json")
	output := run(t, bin, "import", "backup.json")
	if !strings.Contains(output, "Imported 0 tasks, skipped 2.") {
		t.Errorf("Expected duplicates to be skipped, got: %s", output)
	}
}

func TestDoctor(t *testing.T) {
	testutil.SetupTestEnv(t)
	bin := getBinary(t)

	run(t, bin, "init", "--global")
	output := run(t, bin, "doctor")
	if !strings.Contains(output, "0 failed") {
		t.Errorf("Expected all checks to pass, got: %s", output)
	}
}
