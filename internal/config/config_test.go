package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.DataBackend != "sqlite" {
		t.Errorf("DataBackend = %q, want %q", cfg.DataBackend, "sqlite")
	}
	if !cfg.LoadSampleData {
		t.Error("LoadSampleData should default to true")
	}
	if cfg.MaxReceiptBytes != 5*1024*1024 {
		t.Errorf("MaxReceiptBytes = %d, want %d", cfg.MaxReceiptBytes, 5*1024*1024)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("LOAD_SAMPLE_DATA", "false")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q, want %q", cfg.DataBackend, "memory")
	}
	if cfg.LoadSampleData {
		t.Error("LoadSampleData should be false")
	}
	if cfg.RateLimitPerMinute != 30 {
		t.Errorf("RateLimitPerMinute = %d, want 30", cfg.RateLimitPerMinute)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) { c.DataBackend = "memory" },
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Port = "abc" },
			wantErr: "invalid port",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = "70000" },
			wantErr: "invalid port",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.DataBackend = "postgres" },
			wantErr: "invalid data backend",
		},
		{
			name: "empty sqlite path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr: "SQLite database path",
		},
		{
			name: "zero receipt limit",
			mutate: func(c *Config) {
				c.DataBackend = "memory"
				c.MaxReceiptBytes = 0
			},
			wantErr: "max receipt bytes",
		},
		{
			name: "zero rate limit",
			mutate: func(c *Config) {
				c.DataBackend = "memory"
				c.RateLimitPerMinute = 0
			},
			wantErr: "rate limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}
