// Package config loads and validates the YAML configuration for the
// gesturekit daemon. Defaults and validation are centralized here so
// the rest of the code can assume a well-formed config.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/astralplayer/gesturekit/internal/gesture"
)

// Config is the top-level YAML configuration for the daemon.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Zones       ZonesConfig       `yaml:"zones"`
	Gesture     GestureConfig     `yaml:"gesture"`
	Debounce    DebounceConfig    `yaml:"debounce"`
	MultiFinger MultiFingerConfig `yaml:"multi_finger"`
	Speed       SpeedConfig       `yaml:"speed"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Plugins     PluginsConfig     `yaml:"plugins"`
}

// ServerConfig configures the HTTP API listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// StaticDir is an optional directory of static files to serve at
	// the root path. Empty disables static serving.
	StaticDir string `yaml:"static_dir,omitempty"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	// Path is the database file path. Empty means the default under
	// the user home directory.
	Path string `yaml:"path,omitempty"`
}

// ZonesConfig configures the horizontal control-zone split.
type ZonesConfig struct {
	LeftFraction  float64 `yaml:"left_fraction"`
	RightFraction float64 `yaml:"right_fraction"`
}

// GestureConfig configures the single-finger state machine timings.
type GestureConfig struct {
	TapWindowMs       int64 `yaml:"tap_window_ms"`
	DoubleTapWindowMs int64 `yaml:"double_tap_window_ms"`
	LongPressMs       int64 `yaml:"long_press_ms"`
}

// DebounceConfig configures the direction-change debouncer.
type DebounceConfig struct {
	MinChangeIntervalMs int64   `yaml:"min_change_interval_ms"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	RecomputeEvery      int     `yaml:"recompute_every"`
}

// MultiFingerConfig configures the multi-finger recognizer.
type MultiFingerConfig struct {
	PinchThreshold     float64 `yaml:"pinch_threshold"`
	RotateThresholdDeg float64 `yaml:"rotate_threshold_deg"`
	TapWindowMs        int64   `yaml:"tap_window_ms"`
}

// SpeedConfig configures the long-press playback speed ladder.
type SpeedConfig struct {
	Levels          []float64 `yaml:"levels"`
	HoldIntervalsMs []int64   `yaml:"hold_intervals_ms"`
}

// CalibrationConfig describes the display the engine is calibrated for.
type CalibrationConfig struct {
	Density float64 `yaml:"density"`
	WidthPx float64 `yaml:"width_px"`
}

// PluginsConfig configures host plugin dispatch. An empty dir disables
// plugins; actions are then only delivered through the API.
type PluginsConfig struct {
	Dir       string `yaml:"dir,omitempty"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Default returns a fully-populated Config with defaults.
func Default() Config {
	th := gesture.DefaultThresholds()
	sc := gesture.DefaultSpeedConfig()
	return Config{
		Server: ServerConfig{
			Addr: ":8721",
		},
		Zones: ZonesConfig{
			LeftFraction:  gesture.DefaultLeftFraction,
			RightFraction: gesture.DefaultRightFraction,
		},
		Gesture: GestureConfig{
			TapWindowMs:       th.TapWindowMs,
			DoubleTapWindowMs: th.DoubleTapWindowMs,
			LongPressMs:       th.LongPressMs,
		},
		Debounce: DebounceConfig{
			MinChangeIntervalMs: gesture.DefaultMinChangeIntervalMs,
			ConfidenceThreshold: gesture.DefaultConfidenceThreshold,
			RecomputeEvery:      gesture.DefaultAdaptiveRecomputeEvery,
		},
		MultiFinger: MultiFingerConfig{
			PinchThreshold:     gesture.DefaultPinchThreshold,
			RotateThresholdDeg: gesture.DefaultRotateThresholdDeg,
			TapWindowMs:        gesture.DefaultMultiTapWindowMs,
		},
		Speed: SpeedConfig{
			Levels:          sc.Levels,
			HoldIntervalsMs: sc.HoldIntervalsMs,
		},
		Calibration: CalibrationConfig{
			Density: 1.0,
			WidthPx: 1080,
		},
		Plugins: PluginsConfig{
			TimeoutMs: 5000,
		},
	}
}

// Load reads and parses a YAML config file on top of the defaults.
// Unknown fields are rejected to catch typos.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the config for values the engine cannot operate with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}

	if c.Zones.LeftFraction < 0 || c.Zones.RightFraction < 0 {
		return errors.New("zone fractions must not be negative")
	}
	if c.Zones.LeftFraction+c.Zones.RightFraction >= 1 {
		return fmt.Errorf("zone fractions %.2f + %.2f leave no middle band",
			c.Zones.LeftFraction, c.Zones.RightFraction)
	}

	if c.Gesture.TapWindowMs <= 0 {
		return errors.New("gesture.tap_window_ms must be positive")
	}
	if c.Gesture.DoubleTapWindowMs <= 0 {
		return errors.New("gesture.double_tap_window_ms must be positive")
	}
	if c.Gesture.LongPressMs <= c.Gesture.TapWindowMs {
		return fmt.Errorf("gesture.long_press_ms (%d) must exceed tap_window_ms (%d)",
			c.Gesture.LongPressMs, c.Gesture.TapWindowMs)
	}

	if c.Debounce.MinChangeIntervalMs <= 0 {
		return errors.New("debounce.min_change_interval_ms must be positive")
	}
	if c.Debounce.ConfidenceThreshold < 0 || c.Debounce.ConfidenceThreshold > 1 {
		return fmt.Errorf("debounce.confidence_threshold %.2f must be in [0, 1]",
			c.Debounce.ConfidenceThreshold)
	}
	if c.Debounce.RecomputeEvery <= 0 {
		return errors.New("debounce.recompute_every must be positive")
	}

	if c.MultiFinger.PinchThreshold <= 0 {
		return errors.New("multi_finger.pinch_threshold must be positive")
	}
	if c.MultiFinger.RotateThresholdDeg <= 0 {
		return errors.New("multi_finger.rotate_threshold_deg must be positive")
	}

	speed := gesture.SpeedConfig{Levels: c.Speed.Levels, HoldIntervalsMs: c.Speed.HoldIntervalsMs}
	if err := speed.Validate(); err != nil {
		return fmt.Errorf("speed: %w", err)
	}

	if c.Calibration.Density <= 0 {
		return errors.New("calibration.density must be positive")
	}
	if c.Calibration.WidthPx <= 0 {
		return errors.New("calibration.width_px must be positive")
	}

	if c.Plugins.TimeoutMs <= 0 {
		return errors.New("plugins.timeout_ms must be positive")
	}

	return nil
}
