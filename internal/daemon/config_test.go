package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/moodmap/moodmap/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 8787 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 8787)
	}
	if !cfg.API.Metrics {
		t.Error("API.Metrics should be true by default")
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("Storage.Driver = %q, want %q", cfg.Storage.Driver, "sqlite")
	}
	if cfg.Sentiment.Provider != "lexicon" {
		t.Errorf("Sentiment.Provider = %q, want %q", cfg.Sentiment.Provider, "lexicon")
	}
	if cfg.Sentiment.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("Sentiment.APIKeyEnv = %q, want %q", cfg.Sentiment.APIKeyEnv, "OPENAI_API_KEY")
	}
	if cfg.Location.Permission != "granted" {
		t.Errorf("Location.Permission = %q, want %q", cfg.Location.Permission, "granted")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadConfig_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[api]
port = 9000

[storage]
driver = "memory"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("API.Port = %d, want 9000", cfg.API.Port)
	}
	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, default should survive the overlay", cfg.API.Host)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("Storage.Driver = %q, want memory", cfg.Storage.Driver)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want debug/json", cfg.Log)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `[api`},
		{"unknown key", "[api]\nprot = 1\n"},
		{"bad driver", "[storage]\ndriver = \"postgres\"\n"},
		{"bad provider", "[sentiment]\nprovider = \"vader\"\n"},
		{"bad permission", "[location]\npermission = \"maybe\"\n"},
		{"bad port", "[api]\nport = 70000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() error = nil, want error")
			}
		})
	}
}

func TestDataDir(t *testing.T) {
	if got := DataDir("/explicit"); got != "/explicit" {
		t.Errorf("DataDir(override) = %q, want /explicit", got)
	}

	t.Setenv("MOODMAP_HOME", "/from/env")
	if got := DataDir(""); got != "/from/env" {
		t.Errorf("DataDir(\"\") = %q, want /from/env", got)
	}

	t.Setenv("MOODMAP_HOME", "")
	if got := DataDir(""); filepath.Base(got) != ".moodmap" {
		t.Errorf("DataDir(\"\") = %q, want ~/.moodmap", got)
	}
}

func TestAddr(t *testing.T) {
	a := APIConfig{Host: "0.0.0.0", Port: 8080}
	if got := a.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", got)
	}
}

func TestNew_MemoryStore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Driver = "memory"
	cfg.Location.Permission = "denied"

	d, err := New(context.Background(), cfg, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer d.Close()

	if got := d.Journal.Permission(); got != domain.PermissionDenied {
		t.Errorf("Permission() = %v, want denied", got)
	}
}

func TestNew_SqliteReload(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	ctx := context.Background()

	d, err := New(ctx, cfg, dir, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := d.Journal.AddRecord(ctx, domain.Coordinate{Latitude: 1, Longitude: 1}, "happy"); err != nil {
		t.Fatalf("AddRecord() error = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}

	d, err = New(ctx, cfg, dir, nil)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer d.Close()
	if n := len(d.Journal.Records()); n != 1 {
		t.Errorf("reloaded %d records, want 1", n)
	}
}

func TestNew_OpenAIWithoutKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Driver = "memory"
	cfg.Sentiment.Provider = "openai"
	cfg.Sentiment.APIKeyEnv = "MOODMAP_TEST_UNSET_KEY"
	t.Setenv("MOODMAP_TEST_UNSET_KEY", "")

	if _, err := New(context.Background(), cfg, t.TempDir(), nil); err == nil {
		t.Error("New() error = nil, want missing api key error")
	}
}
