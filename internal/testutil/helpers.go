// Package testutil provides reusable test utilities for dailywork tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnv provides access to isolated test directories
type TestEnv struct {
	Home       string // Mocked HOME directory
	ProjectDir string // Test project directory, also the working directory
	GlobalDir  string // ~/.dailywork equivalent
	t          *testing.T
}

// SetupTestEnv creates an isolated test environment with mocked HOME and
// changes into a fresh project directory. Both are restored when the test
// ends, so callers must not use t.Parallel().
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpHome := t.TempDir()
	tmpProject := t.TempDir()
	globalDir := filepath.Join(tmpHome, ".dailywork")

	if err := os.MkdirAll(globalDir, 0755); err != nil {
		t.Fatalf("Failed to create global .dailywork: %v", err)
	}

	// Set HOME to temp directory (auto-restored after test)
	t.Setenv("HOME", tmpHome)
	// Empty environment overrides are ignored by the config loader
	for _, key := range []string{
		"DAILYWORK_STORAGE_BACKEND", "DAILYWORK_STORAGE_PATH", "DAILYWORK_STORAGE_KEY",
		"DAILYWORK_JOURNAL_ENABLED", "DAILYWORK_JOURNAL_PATH",
	} {
		t.Setenv(key, "")
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpProject); err != nil {
		t.Fatalf("Failed to change to project directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})

	return &TestEnv{
		Home:       tmpHome,
		ProjectDir: tmpProject,
		GlobalDir:  globalDir,
		t:          t,
	}
}

// CreateFile creates a file with the given content in the test environment.
// Relative paths are taken from the project directory.
func (e *TestEnv) CreateFile(path, content string) {
	e.t.Helper()

	fullPath := e.abs(path)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}
}

// CreateGlobalFile creates a file relative to the global .dailywork directory.
func (e *TestEnv) CreateGlobalFile(relPath, content string) {
	e.t.Helper()
	e.CreateFile(filepath.Join(e.GlobalDir, relPath), content)
}

// ReadFile reads a file from the test environment.
func (e *TestEnv) ReadFile(path string) string {
	e.t.Helper()

	data, err := os.ReadFile(e.abs(path))
	if err != nil {
		e.t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// FileExists checks if a file exists in the test environment.
func (e *TestEnv) FileExists(path string) bool {
	e.t.Helper()

	_, err := os.Stat(e.abs(path))
	return err == nil
}

func (e *TestEnv) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.ProjectDir, path)
}
