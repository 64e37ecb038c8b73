package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points config lookups at an empty temp directory and chdirs there
// so no real config or .env file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	ResetCache()
	t.Cleanup(ResetCache)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv(EnvDataset, "")
	t.Setenv(EnvRatings, "")
	t.Setenv(EnvReader, "")
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return tmpDir
}

func writeConfig(t *testing.T, configHome, content string) {
	t.Helper()
	dir := filepath.Join(configHome, ConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := ConfigPath(), "/custom/config/bookrec/config.yml"; got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := ConfigPath(), filepath.Join(home, ".config", "bookrec", "config.yml"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestLoad_NotFound(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("Load() = %+v, want empty config", *cfg)
	}
}

func TestLoad_Valid(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `dataset_path: /data/library.yml
ratings_path: /data/extra.jsonl
default_reader: Cat
viz_layout: circle
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		DatasetPath:   "/data/library.yml",
		RatingsPath:   "/data/extra.jsonl",
		DefaultReader: "Cat",
		VizLayout:     "circle",
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "dataset_path: [unterminated\n")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "dataset_path: /data/library.yml\ndefault_reader: Cat\n")
	t.Setenv(EnvReader, "James")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultReader != "James" {
		t.Errorf("DefaultReader = %q, want env override James", cfg.DefaultReader)
	}
	if cfg.DatasetPath != "/data/library.yml" {
		t.Errorf("DatasetPath = %q, want file value", cfg.DatasetPath)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	// godotenv never overrides a variable that is already present, even if empty.
	os.Unsetenv(EnvRatings)
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte(EnvRatings+"=/from/dotenv.jsonl\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RatingsPath != "/from/dotenv.jsonl" {
		t.Errorf("RatingsPath = %q, want value from .env", cfg.RatingsPath)
	}
}

func TestLoad_Cache(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "default_reader: Cat\n")

	first, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, "default_reader: Rick\n")
	second, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if first != second || second.DefaultReader != "Cat" {
		t.Error("Load() should return the cached config until ResetCache")
	}

	ResetCache()
	third, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if third.DefaultReader != "Rick" {
		t.Errorf("after ResetCache DefaultReader = %q, want Rick", third.DefaultReader)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
		{"~/books", filepath.Join(home, "books")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ExpandTilde(tt.in); got != tt.want {
				t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHelpfulConfigMessage(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	msg := HelpfulConfigMessage()
	for _, want := range []string{"/custom/config/bookrec/config.yml", EnvDataset, "default_reader"} {
		if !strings.Contains(msg, want) {
			t.Errorf("HelpfulConfigMessage() missing %q", want)
		}
	}
}
