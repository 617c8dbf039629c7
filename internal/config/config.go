package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the top-level hw configuration.
type Config struct {
	User    UserConfig    `toml:"user"`
	Google  GoogleConfig  `toml:"google"`
	Urgency UrgencyConfig `toml:"urgency"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

// GoogleConfig controls the Google Tasks export target.
type GoogleConfig struct {
	// TaskList overrides the name of the task list assignments are exported
	// to. Empty means the built-in default ("Homework Auto-Sorter").
	TaskList string `toml:"task_list"`
}

// UrgencyConfig allows overriding individual priority-score weights.
// nil fields fall back to the built-in defaults, so a partial [urgency]
// section only overrides what it names.
type UrgencyConfig struct {
	Overdue     *int `toml:"overdue"`
	DueToday    *int `toml:"due_today"`
	DueTomorrow *int `toml:"due_tomorrow"`
	DueSoon     *int `toml:"due_soon"`
	DueThisWeek *int `toml:"due_this_week"`
	DueLater    *int `toml:"due_later"`
	EffortCap   *int `toml:"effort_cap"`
}

// Paths holds the resolved standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))

	hwConfig := filepath.Join(configDir, "hw")
	hwData := filepath.Join(dataDir, "hw")

	return Paths{
		ConfigDir:  hwConfig,
		DataDir:    hwData,
		ConfigFile: filepath.Join(hwConfig, "config.toml"),
		DBFile:     filepath.Join(hwData, "hw.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.ConfigDir, p.DataDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := &Config{}

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
