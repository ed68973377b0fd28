package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/krishvaghani-dev/dailyWork/internal/kv"
	"github.com/krishvaghani-dev/dailyWork/internal/task"
	"github.com/krishvaghani-dev/dailyWork/internal/view"
)

// EnvPrefix prefixes environment overrides, e.g. DAILYWORK_STORAGE_BACKEND.
const EnvPrefix = "DAILYWORK"

// Load loads and merges configuration from global and project sources,
// then applies environment overrides.
func Load() (*Config, error) {
	return LoadPaths(GlobalConfigPath(), ProjectConfigPath())
}

// LoadPaths merges the given files in order, later files overriding earlier
// ones. Missing files are skipped.
func LoadPaths(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, cfg)

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := mergeFile(v, path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			// Log warning but continue with what we have
			log.Printf("warning: failed to read config %s: %v", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return v.MergeConfig(f)
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("version", cfg.Version)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("storage.redis.addr", cfg.Storage.Redis.Addr)
	v.SetDefault("storage.redis.db", cfg.Storage.Redis.DB)
	v.SetDefault("storage.redis.password", cfg.Storage.Redis.Password)
	v.SetDefault("view.filter", cfg.View.Filter)
	v.SetDefault("view.sort", cfg.View.Sort)
	v.SetDefault("view.direction", cfg.View.Direction)
	v.SetDefault("form.priority", cfg.Form.Priority)
	v.SetDefault("form.time", cfg.Form.Time)
	v.SetDefault("form.minute_step", cfg.Form.MinuteStep)
	v.SetDefault("journal.enabled", cfg.Journal.Enabled)
	v.SetDefault("journal.path", cfg.Journal.Path)
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case kv.BackendFile, kv.BackendSQLite, kv.BackendRedis, kv.BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unknown backend '%s'", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	if _, err := c.Query(); err != nil {
		return err
	}
	if _, err := task.ParsePriority(c.Form.Priority); err != nil {
		return fmt.Errorf("form.priority: %w", err)
	}
	if _, err := task.ParseTimeOfDay(c.Form.Time); err != nil {
		return fmt.Errorf("form.time: %w", err)
	}
	if c.Form.MinuteStep < 1 || c.Form.MinuteStep > 30 {
		return fmt.Errorf("form.minute_step must be between 1 and 30, got %d", c.Form.MinuteStep)
	}
	return nil
}

// Query converts the view section into a list query.
func (c *Config) Query() (view.Query, error) {
	f, err := view.ParseFilter(c.View.Filter)
	if err != nil {
		return view.Query{}, fmt.Errorf("view.filter: %w", err)
	}
	k, err := view.ParseSortKey(c.View.Sort)
	if err != nil {
		return view.Query{}, fmt.Errorf("view.sort: %w", err)
	}
	d, err := view.ParseDirection(c.View.Direction)
	if err != nil {
		return view.Query{}, fmt.Errorf("view.direction: %w", err)
	}
	return view.Query{Filter: f, SortBy: k, Direction: d}, nil
}

// KVOptions resolves the storage section, filling in the default path for
// the chosen backend.
func (c *Config) KVOptions() kv.Options {
	backend := strings.ToLower(c.Storage.Backend)
	path := ExpandPath(c.Storage.Path)
	if path == "" {
		switch backend {
		case kv.BackendSQLite:
			path = filepath.Join(GlobalDir(), "dailywork.db")
		default:
			path = filepath.Join(GlobalDir(), "tasks.json")
		}
	}
	return kv.Options{
		Backend:       backend,
		Path:          path,
		RedisAddr:     c.Storage.Redis.Addr,
		RedisDB:       c.Storage.Redis.DB,
		RedisPassword: c.Storage.Redis.Password,
	}
}

// JournalPath returns the journal database path.
func (c *Config) JournalPath() string {
	if p := ExpandPath(c.Journal.Path); p != "" {
		return p
	}
	return filepath.Join(GlobalDir(), "journal.db")
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	return filepath.Join(ProjectDir(), "config.yaml")
}

// GlobalDir returns the path to the global dailywork directory
func GlobalDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".dailywork")
}

// ProjectDir returns the path to the project dailywork directory
func ProjectDir() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, ".dailywork")
}
