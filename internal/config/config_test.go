package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeConfig drops a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "station.json", `{"listen_addr": ":9090"}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := cfg.GetListenAddr(); got != ":9090" {
		t.Errorf("listen addr = %q, want :9090", got)
	}
	if got := cfg.GetDatabasePath(); got != DefaultDatabasePath {
		t.Errorf("database path = %q, want default %q", got, DefaultDatabasePath)
	}
	if got := cfg.GetMapDir(); got != DefaultMapDir {
		t.Errorf("map dir = %q, want default %q", got, DefaultMapDir)
	}
	if got := cfg.GetPollInterval(); got != 500*time.Millisecond {
		t.Errorf("poll interval = %v, want 500ms", got)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, "station.json", `{
		"listen_addr": ":7070",
		"database_path": "/var/lib/groundlink/telemetry.db",
		"map_dir": "/srv/maps",
		"render_dir": "/srv/rendered",
		"poll_interval": "2s"
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GetPollInterval() != 2*time.Second {
		t.Errorf("poll interval = %v, want 2s", cfg.GetPollInterval())
	}
	if cfg.GetRenderDir() != "/srv/rendered" {
		t.Errorf("render dir = %q, want /srv/rendered", cfg.GetRenderDir())
	}
}

func TestLoad_Rejections(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{"wrong_extension", "station.yaml", `{}`},
		{"malformed_json", "station.json", `{listen`},
		{"bad_poll_interval", "station.json", `{"poll_interval": "fast"}`},
		{"negative_poll_interval", "station.json", `{"poll_interval": "-1s"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.file, tc.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load(%s) should fail", tc.name)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}
