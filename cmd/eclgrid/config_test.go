package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	t.Run("default location missing", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if diff := cmp.Diff(Config{}, cfg); diff != "" {
			t.Fatalf("expected zero config (-want +got):\n%s", diff)
		}
	})

	t.Run("default location", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		path := filepath.Join(home, "eclgrid", "config.yaml")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		data := "grids_dir: /data/grids\nlog_level: debug\nserver_address: 0.0.0.0:9000\njson_indent: true\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		indent := true
		want := Config{
			GridsDir:      "/data/grids",
			LogLevel:      "debug",
			JSONIndent:    &indent,
			ServerAddress: "0.0.0.0:9000",
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Fatalf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error for missing explicit config")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("grids_dir: [unterminated\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("expected parse error")
		}
	})
}
