// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Storage backends accepted by the storage key.
const (
	StorageNATS   = "nats"
	StorageFile   = "file"
	StorageMemory = "memory"
)

// Config holds all configuration values for taskr.
type Config struct {
	DataDir  string `mapstructure:"data_dir" yaml:"data_dir"`
	Storage  string `mapstructure:"storage" yaml:"storage"`
	List     string `mapstructure:"list" yaml:"list"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		DataDir:  ".taskr",
		Storage:  StorageNATS,
		List:     "",
		LogLevel: "info",
		LogFile:  "",
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults.
// flags may be nil; only flags the user actually set override lower layers.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("taskr")

	def := Default()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("storage", def.Storage)
	v.SetDefault("list", def.List)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)

	v.SetEnvPrefix("TASKR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	for _, key := range []string{"data_dir", "storage", "list", "log_level", "log_file"} {
		if err := v.BindEnv(key, "TASKR_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	if flags != nil {
		bindings := map[string]string{
			"data_dir": "data-dir",
			"storage":  "storage",
			"list":     "list",
		}
		for key, name := range bindings {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding %s flag: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageNATS, StorageFile, StorageMemory:
	default:
		return fmt.Errorf("invalid storage backend: %q (must be nats, file, or memory)", c.Storage)
	}
	if c.Storage != StorageMemory && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required for %s storage", c.Storage)
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/taskr/taskr.yml or $XDG_CONFIG_HOME/taskr/taskr.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskr", "taskr.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "taskr", "taskr.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "taskr.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
