package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/krishvaghani-dev/dailyWork/internal/config"
	"github.com/krishvaghani-dev/dailyWork/internal/kv"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage dailywork configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show merged configuration",
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in editor",
	RunE:  runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration and data file paths",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)

	configEditCmd.Flags().Bool("global", false, "Edit global config")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# Merged configuration (defaults + global + project + environment)")
	fmt.Fprintln(out, string(data))
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	global, _ := cmd.Flags().GetBool("global")

	path, hint := config.ProjectConfigPath(), "dailywork init"
	if global {
		path, hint = config.GlobalConfigPath(), "dailywork init --global"
	}
	if !exists(path) {
		return fmt.Errorf("%s does not exist (run: %s)", path, hint)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	return c.Run()
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Global:  %s\n", config.GlobalConfigPath())
	fmt.Fprintf(out, "Project: %s\n", config.ProjectConfigPath())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.KVOptions()
	switch opts.Backend {
	case kv.BackendRedis:
		fmt.Fprintf(out, "Tasks:   redis://%s/%d key %s\n", opts.RedisAddr, opts.RedisDB, cfg.Storage.Key)
	case kv.BackendMemory:
		fmt.Fprintln(out, "Tasks:   in memory (not persisted)")
	default:
		fmt.Fprintf(out, "Tasks:   %s (%s) key %s\n", opts.Path, opts.Backend, cfg.Storage.Key)
	}
	if cfg.Journal.Enabled {
		fmt.Fprintf(out, "Journal: %s\n", cfg.JournalPath())
	}
	return nil
}
