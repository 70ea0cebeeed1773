package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FileName = "config.yaml"

	DefaultQuoteURL = "https://api.quotable.io/random?tags=motivational|inspirational"
)

type Config struct {
	DataDir       string              `yaml:"-"`
	Path          string              `yaml:"-"`
	Ephemeral     bool                `yaml:"-"`
	Quote         QuoteConfig         `yaml:"quote"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Audio         AudioConfig         `yaml:"audio"`
	Storage       StorageConfig       `yaml:"storage"`
	Log           LogConfig           `yaml:"log"`
}

type QuoteConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type NotificationsConfig struct {
	// Enabled is a tri-state: nil means the permission has not been decided yet.
	Enabled *bool `yaml:"enabled,omitempty"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

func Default(dataDir string) Config {
	return Config{
		DataDir: dataDir,
		Path:    filepath.Join(dataDir, FileName),
		Quote: QuoteConfig{
			URL:     DefaultQuoteURL,
			Timeout: 5 * time.Second,
		},
		Audio:   AudioConfig{Enabled: true},
		Storage: StorageConfig{DBPath: filepath.Join(dataDir, "lofi.db")},
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(dataDir, "lofi.log"),
		},
	}
}

// New loads <dataDir>/config.yaml, writing the defaults when the file does
// not exist yet.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, errors.New("data dir is required")
	}
	cfg, err := Load(filepath.Join(dataDir, FileName))
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	cfg = Default(dataDir)
	if err := Save(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a config file and fills unset fields from the defaults.
func Load(path string) (Config, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default(filepath.Dir(path))
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func Save(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	payload, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(cfg.Path, payload, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Ephemeral returns a configuration rooted in a throwaway dir. Storage stays
// in memory and the config file is never written.
func Ephemeral(dataDir string) Config {
	cfg := Default(dataDir)
	cfg.Ephemeral = true
	return cfg
}

func (c *Config) applyDefaults() {
	def := Default(c.DataDir)
	if c.Quote.URL == "" {
		c.Quote.URL = def.Quote.URL
	}
	if c.Quote.Timeout <= 0 {
		c.Quote.Timeout = def.Quote.Timeout
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = def.Storage.DBPath
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Path == "" {
		c.Log.Path = def.Log.Path
	}
}

// DefaultDataDir resolves ~/.lofi.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".lofi"), nil
}
