// Package daemon loads configuration and assembles the moodmap service:
// store, scorer, journal and HTTP server.
package daemon

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/moodmap/moodmap/internal/domain"
)

// ConfigFileName is looked up inside the data directory when no --config is given.
const ConfigFileName = "config.toml"

// Config is the moodmap configuration file (~/.moodmap/config.toml).
type Config struct {
	API       APIConfig       `toml:"api"`
	Storage   StorageConfig   `toml:"storage"`
	Sentiment SentimentConfig `toml:"sentiment"`
	Location  LocationConfig  `toml:"location"`
	Log       LogConfig       `toml:"log"`
}

type APIConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"`
}

// Addr returns host:port.
func (a APIConfig) Addr() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

type StorageConfig struct {
	Driver string `toml:"driver"` // sqlite | memory
	Path   string `toml:"path"`   // directory; empty means the data dir
}

type SentimentConfig struct {
	Provider  string `toml:"provider"` // lexicon | openai
	Model     string `toml:"model"`
	APIKeyEnv string `toml:"api_key_env"`
	Timeout   string `toml:"timeout"`
}

type LocationConfig struct {
	Permission string `toml:"permission"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // json | text
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:    "127.0.0.1",
			Port:    8787,
			Metrics: true,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
		},
		Sentiment: SentimentConfig{
			Provider:  "lexicon",
			Model:     "gpt-4.1-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			Timeout:   "20s",
		},
		Location: LocationConfig{
			Permission: string(domain.PermissionGranted),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig overlays the TOML file at path on DefaultConfig. A missing file
// is not an error; the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("storage.driver %q: want sqlite or memory", c.Storage.Driver)
	}
	switch c.Sentiment.Provider {
	case "lexicon", "openai":
	default:
		return fmt.Errorf("sentiment.provider %q: want lexicon or openai", c.Sentiment.Provider)
	}
	if _, err := domain.ParsePermissionState(c.Location.Permission); err != nil {
		return fmt.Errorf("location.permission: %w", err)
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port %d out of range", c.API.Port)
	}
	return nil
}

// DataDir resolves the moodmap home: the explicit override, then
// $MOODMAP_HOME, then ~/.moodmap.
func DataDir(override string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv("MOODMAP_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".moodmap")
}

// StorageDir returns where the sqlite file lives.
func (c Config) StorageDir(dataDir string) string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return dataDir
}
