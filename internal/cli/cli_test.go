package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/moodmap/moodmap/internal/domain"
)

// run executes the root command with args against a fresh flag state.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func quietHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	cfg := "[log]\nlevel = \"error\"\n"
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return home
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		lat, lon string
		wantErr  bool
	}{
		{"52.52", "13.405", false},
		{" -33.8688 ", "151.2093", false},
		{"90", "-180", false},
		{"abc", "1", true},
		{"1", "", true},
		{"90.0001", "0", true},
		{"NaN", "0", true},
	}
	for _, tt := range tests {
		_, err := parseCoordinate(tt.lat, tt.lon)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCoordinate(%q, %q) error = %v, wantErr %v", tt.lat, tt.lon, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, domain.ErrInvalidCoordinate) {
			t.Errorf("parseCoordinate(%q, %q) error = %v, want ErrInvalidCoordinate", tt.lat, tt.lon, err)
		}
	}
}

func TestAddListDeleteSummary(t *testing.T) {
	home := quietHome(t)

	out, err := run(t, "--home", home, "add", "--lat", "48.8566", "--lon", "2.3522", "I", "feel", "so", "happy", "here")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	id := strings.Fields(out)[0]
	if !strings.Contains(out, "Joyful") && !strings.Contains(out, "Content") && !strings.Contains(out, "Euphoric") {
		t.Errorf("add output %q: want a positive mood", out)
	}

	if _, err := run(t, "--home", home, "add", "--lat", "1", "--lon", "1", "lonely", "and", "sad"); err != nil {
		t.Fatalf("second add: %v", err)
	}

	out, err = run(t, "--home", home, "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var records []domain.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	if len(records) != 2 || records[0].ID != id {
		t.Fatalf("list = %+v, want 2 records starting with %s", records, id)
	}

	out, err = run(t, "--home", home, "summary")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, "Records: 2") {
		t.Errorf("summary output missing total:\n%s", out)
	}

	if _, err := run(t, "--home", home, "delete", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = run(t, "--home", home, "delete", id)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestAdd_Rejects(t *testing.T) {
	home := quietHome(t)

	if _, err := run(t, "--home", home, "add", "--lat", "north", "--lon", "1", "hi"); !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Errorf("bad latitude error = %v, want ErrInvalidCoordinate", err)
	}
	if _, err := run(t, "--home", home, "add", "--lat", "1", "--lon", "1", "   "); !errors.Is(err, domain.ErrEmptyDescription) {
		t.Errorf("blank note error = %v, want ErrEmptyDescription", err)
	}
}

func TestAnalyze(t *testing.T) {
	home := quietHome(t)

	out, err := run(t, "--home", home, "analyze", "the", "train", "left")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, domain.Neutral.Label()) {
		t.Errorf("analyze(flat text) = %q, want Neutral", out)
	}

	out, _ = run(t, "--home", home, "list")
	if !strings.Contains(out, "No records yet") {
		t.Errorf("analyze recorded something: %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "moodmap ") {
		t.Errorf("version output = %q", out)
	}
}
