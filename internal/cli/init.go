package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/krishvaghani-dev/dailyWork/internal/config"
	"github.com/krishvaghani-dev/dailyWork/internal/kv"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize dailywork in current directory or globally",
	Long: `Initialize dailywork configuration.

Without flags: Creates .dailywork/ in the current directory with a task list
kept next to the project.
With --global: Creates ~/.dailywork/ with the default configuration.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("global", false, "Initialize global configuration at ~/.dailywork/")
	initCmd.Flags().Bool("force", false, "Overwrite existing files")
	initCmd.Flags().String("backend", kv.BackendFile, "Storage backend for --global: 'file', 'sqlite' or 'redis'")
}

func runInit(cmd *cobra.Command, args []string) error {
	global, _ := cmd.Flags().GetBool("global")
	force, _ := cmd.Flags().GetBool("force")
	backend, _ := cmd.Flags().GetString("backend")

	// Validate backend option
	switch backend {
	case kv.BackendFile, kv.BackendSQLite, kv.BackendRedis:
	default:
		return fmt.Errorf("invalid backend '%s': must be 'file', 'sqlite' or 'redis'", backend)
	}

	if global {
		return initGlobal(cmd.OutOrStdout(), force, backend)
	}
	return initProject(cmd.OutOrStdout(), force)
}

func initGlobal(out io.Writer, force bool, backend string) error {
	home := config.GlobalDir()
	configPath := config.GlobalConfigPath()

	// Check existing
	if exists(configPath) && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", home, err)
	}

	if err := config.WriteDefaultWithBackend(configPath, backend); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(out, "Initialized dailywork at %s with %s storage\n", home, backend)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Add a task:  dailywork add Plan the week")
	fmt.Fprintln(out, "  2. See today:   dailywork today")
	fmt.Fprintln(out, "  3. Open the UI: dailywork ui")
	return nil
}

func initProject(out io.Writer, force bool) error {
	dir := config.ProjectDir()

	// Check existing
	if exists(dir) && !force {
		return fmt.Errorf(".dailywork already exists (use --force to overwrite)")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, "config.yaml")
	if err := config.WriteProjectDefault(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintln(out, "Initialized dailywork in current project")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Created:")
	fmt.Fprintln(out, "  .dailywork/config.yaml  - Project configuration")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Tasks added from this directory are kept in .dailywork/tasks.json.")
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
