package config

// Config represents the full dailywork configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// Where the task collection is persisted
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Initial filter and sort of list views
	View ViewConfig `yaml:"view" mapstructure:"view"`

	// Defaults for the task creation form
	Form FormConfig `yaml:"form" mapstructure:"form"`

	// Mutation history
	Journal JournalConfig `yaml:"journal" mapstructure:"journal"`
}

// StorageConfig selects the key-value backend
type StorageConfig struct {
	Backend string      `yaml:"backend" mapstructure:"backend"` // file, sqlite, redis or memory
	Path    string      `yaml:"path" mapstructure:"path"`       // file or database path; empty means the default under ~/.dailywork
	Key     string      `yaml:"key" mapstructure:"key"`
	Redis   RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig configures the redis backend
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	DB       int    `yaml:"db" mapstructure:"db"`
	Password string `yaml:"password" mapstructure:"password"`
}

// ViewConfig holds the initial list query
type ViewConfig struct {
	Filter    string `yaml:"filter" mapstructure:"filter"`
	Sort      string `yaml:"sort" mapstructure:"sort"`
	Direction string `yaml:"direction" mapstructure:"direction"`
}

// FormConfig holds creation form defaults
type FormConfig struct {
	Priority   string `yaml:"priority" mapstructure:"priority"`
	Time       string `yaml:"time" mapstructure:"time"`
	MinuteStep int    `yaml:"minute_step" mapstructure:"minute_step"`
}

// JournalConfig controls the SQLite mutation journal
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}
