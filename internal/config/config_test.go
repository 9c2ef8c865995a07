package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gesturekit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
zones:
  left_fraction: 0.25
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected addr :9000, got %q", cfg.Server.Addr)
	}
	if cfg.Zones.LeftFraction != 0.25 {
		t.Errorf("expected left fraction 0.25, got %v", cfg.Zones.LeftFraction)
	}
	// Untouched sections keep their defaults.
	if cfg.Gesture.LongPressMs != Default().Gesture.LongPressMs {
		t.Errorf("expected default long press, got %d", cfg.Gesture.LongPressMs)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
server:
  adress: ":9000"
`)

	if _, err := Load(path); err == nil {
		t.Error("expected error for misspelled field")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "empty addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantSub: "server.addr",
		},
		{
			name: "zones consume viewport",
			mutate: func(c *Config) {
				c.Zones.LeftFraction = 0.6
				c.Zones.RightFraction = 0.5
			},
			wantSub: "middle band",
		},
		{
			name:    "negative fraction",
			mutate:  func(c *Config) { c.Zones.LeftFraction = -0.1 },
			wantSub: "negative",
		},
		{
			name:    "zero tap window",
			mutate:  func(c *Config) { c.Gesture.TapWindowMs = 0 },
			wantSub: "tap_window_ms",
		},
		{
			name:    "long press below tap window",
			mutate:  func(c *Config) { c.Gesture.LongPressMs = 100 },
			wantSub: "long_press_ms",
		},
		{
			name:    "confidence out of range",
			mutate:  func(c *Config) { c.Debounce.ConfidenceThreshold = 1.5 },
			wantSub: "confidence_threshold",
		},
		{
			name:    "zero recompute interval",
			mutate:  func(c *Config) { c.Debounce.RecomputeEvery = 0 },
			wantSub: "recompute_every",
		},
		{
			name:    "zero pinch threshold",
			mutate:  func(c *Config) { c.MultiFinger.PinchThreshold = 0 },
			wantSub: "pinch_threshold",
		},
		{
			name:    "speed levels not ascending",
			mutate:  func(c *Config) { c.Speed.Levels = []float64{2, 1} },
			wantSub: "speed",
		},
		{
			name:    "zero density",
			mutate:  func(c *Config) { c.Calibration.Density = 0 },
			wantSub: "density",
		},
		{
			name:    "zero plugin timeout",
			mutate:  func(c *Config) { c.Plugins.TimeoutMs = 0 },
			wantSub: "plugins.timeout_ms",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q should mention %q", err, tc.wantSub)
			}
		})
	}
}
