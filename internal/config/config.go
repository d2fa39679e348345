// Package config loads the station's configuration file. The schema uses
// pointer fields so a partial JSON file overrides only the settings it
// names; everything else keeps its default.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied for any field the config file omits.
const (
	DefaultListenAddr   = ":8080"
	DefaultDatabasePath = "groundlink.db"
	DefaultMapDir       = "maps"
	DefaultRenderDir    = "rendered"
	DefaultPollInterval = "500ms"
)

// maxFileSize caps config reads; a station config is a few hundred bytes.
const maxFileSize = 1 * 1024 * 1024

// StationConfig is the root configuration for the operator station.
type StationConfig struct {
	ListenAddr   *string `json:"listen_addr,omitempty"`
	DatabasePath *string `json:"database_path,omitempty"`
	MapDir       *string `json:"map_dir,omitempty"`
	RenderDir    *string `json:"render_dir,omitempty"`
	PollInterval *string `json:"poll_interval,omitempty"` // duration string like "500ms"
}

// Load reads a StationConfig from a JSON file. Fields omitted from the file
// keep their defaults, so partial configs are safe.
func Load(path string) (*StationConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &StationConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks field values that have constraints beyond their type.
func (c *StationConfig) Validate() error {
	if c.PollInterval != nil {
		d, err := time.ParseDuration(*c.PollInterval)
		if err != nil {
			return fmt.Errorf("poll_interval: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("poll_interval must be positive, got %s", d)
		}
	}
	return nil
}

// GetListenAddr returns the configured listen address or its default.
func (c *StationConfig) GetListenAddr() string {
	if c.ListenAddr != nil {
		return *c.ListenAddr
	}
	return DefaultListenAddr
}

// GetDatabasePath returns the configured database path or its default.
func (c *StationConfig) GetDatabasePath() string {
	if c.DatabasePath != nil {
		return *c.DatabasePath
	}
	return DefaultDatabasePath
}

// GetMapDir returns the watched map directory or its default.
func (c *StationConfig) GetMapDir() string {
	if c.MapDir != nil {
		return *c.MapDir
	}
	return DefaultMapDir
}

// GetRenderDir returns the render output directory or its default.
func (c *StationConfig) GetRenderDir() string {
	if c.RenderDir != nil {
		return *c.RenderDir
	}
	return DefaultRenderDir
}

// GetPollInterval returns the watcher poll interval or its default. Validate
// has already checked the duration parses.
func (c *StationConfig) GetPollInterval() time.Duration {
	raw := DefaultPollInterval
	if c.PollInterval != nil {
		raw = *c.PollInterval
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		d, _ = time.ParseDuration(DefaultPollInterval)
	}
	return d
}
