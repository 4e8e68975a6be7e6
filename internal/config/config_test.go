// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.Trending.RecentQuantile != 0.75 {
		t.Errorf("RecentQuantile default = %v, want 0.75", cfg.Trending.RecentQuantile)
	}
	if cfg.Explore.RowsPerSection != 16 {
		t.Errorf("RowsPerSection default = %d, want 16", cfg.Explore.RowsPerSection)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port default = %d, want 8080", cfg.Server.Port)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing videos path", func(c *Config) { c.Data.VideosPath = "  " }},
		{"port out of range", func(c *Config) { c.Server.Port = 0 }},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging" }},
		{"quantile at one", func(c *Config) { c.Trending.RecentQuantile = 1.0 }},
		{"quantile at zero", func(c *Config) { c.Trending.RecentQuantile = 0 }},
		{"zero rows per section", func(c *Config) { c.Explore.RowsPerSection = 0 }},
		{"semantic enabled without url", func(c *Config) { c.Semantic.Enabled = true; c.Semantic.URL = "" }},
		{"semantic relative url", func(c *Config) { c.Semantic.Enabled = true; c.Semantic.URL = "/search" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }},
		{"zero cache ttl", func(c *Config) { c.Cache.TTL = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestValidateAllowsDisabledSubsystems(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0
	cfg.Cache.Enabled = false
	cfg.Cache.TTL = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled subsystems must skip their checks: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DATA_VIDEOS_PATH", "data.videos_path"},
		{"TRENDING_RECENT_QUANTILE", "trending.recent_quantile"},
		{"SEMANTIC_URL", "semantic.url"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"RANDOM_UNRELATED_VAR", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	body := []byte(`
data:
  videos_path: /tmp/videos.parquet
server:
  port: 9090
trending:
  recent_quantile: 0.5
security:
  cors_origins:
    - https://app.example.com
`)
	if err := os.WriteFile(configPath, body, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Env beats file beats default.
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want env override 9999", cfg.Server.Port)
	}
	if cfg.Trending.RecentQuantile != 0.5 {
		t.Errorf("RecentQuantile = %v, want file value 0.5", cfg.Trending.RecentQuantile)
	}
	if cfg.Explore.RowsPerSection != 16 {
		t.Errorf("RowsPerSection = %d, want default 16", cfg.Explore.RowsPerSection)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "https://app.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want default 30s", cfg.Server.Timeout)
	}
}

func TestLoadCommaSeparatedOrigins(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DATA_VIDEOS_PATH", "/tmp/videos.parquet")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Security.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], want[i])
		}
	}
}

func TestFoundConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: 8080\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	if got := FoundConfigFile(); got != configPath {
		t.Errorf("FoundConfigFile() = %q, want %q", got, configPath)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	if got := FoundConfigFile(); got != "" {
		t.Errorf("FoundConfigFile() = %q, want empty for missing file", got)
	}
}

func TestWatchConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: info\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 1)
	err := WatchConfigFile(configPath, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("WatchConfigFile() error: %v", err)
	}

	if err := os.WriteFile(configPath, []byte("logging:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("callback not invoked after config file change")
	}
}
