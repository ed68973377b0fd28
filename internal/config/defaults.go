package config

import (
	"os"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Storage: StorageConfig{
			Backend: "file",
			Key:     "dailyTasks",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		View: ViewConfig{
			Filter:    "all",
			Sort:      "priority",
			Direction: "asc",
		},
		Form: FormConfig{
			Priority:   "medium",
			Time:       "09:00 AM",
			MinuteStep: 5,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
	}
}

// WriteDefault writes the default global configuration to a file
func WriteDefault(path string) error {
	return WriteDefaultWithBackend(path, "file")
}

// WriteDefaultWithBackend writes the default global configuration with a specific backend
func WriteDefaultWithBackend(path string, backend string) error {
	redisSection := `  # redis:
  #   addr: localhost:6379
  #   db: 0
  #   password: ""`

	if backend == "redis" {
		redisSection = `  redis:
    addr: localhost:6379
    db: 0
    password: ""`
	}

	content := `# dailywork configuration
version: "1"

# Task storage
storage:
  backend: ` + backend + `  # "file", "sqlite", "redis" or "memory"
  # path: ~/.dailywork/tasks.json  # default depends on backend
  key: dailyTasks
` + redisSection + `

# Initial list view
view:
  filter: all         # all, today, tomorrow, upcoming, completed, high, medium, low
  sort: priority      # priority, date or name
  direction: asc

# New task defaults
form:
  priority: medium
  time: "09:00 AM"
  minute_step: 5

# Mutation history (used by "dailywork history")
journal:
  enabled: true
  # path: ~/.dailywork/journal.db
`
	return os.WriteFile(path, []byte(content), 0644)
}

// WriteProjectDefault writes a project configuration that only overrides
// the storage location, so a directory can keep its own task list.
func WriteProjectDefault(path string) error {
	content := `# dailywork project configuration
version: "1"

# Keep this directory's tasks next to it
storage:
  backend: file
  path: .dailywork/tasks.json

# Override global settings as needed
# view:
#   filter: today
#   sort: date
`
	return os.WriteFile(path, []byte(content), 0644)
}
