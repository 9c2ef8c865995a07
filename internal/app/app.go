// Package app wires the configuration, store, engine and HTTP server
// into a runnable gesture daemon.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/astralplayer/gesturekit/internal/action"
	"github.com/astralplayer/gesturekit/internal/config"
	"github.com/astralplayer/gesturekit/internal/engine"
	"github.com/astralplayer/gesturekit/internal/gesture"
	"github.com/astralplayer/gesturekit/internal/plugin"
	"github.com/astralplayer/gesturekit/internal/server"
	"github.com/astralplayer/gesturekit/internal/store"
	"github.com/astralplayer/gesturekit/internal/touch"
)

// Settings keys for persisted control levels.
const (
	settingBrightness = "level.brightness"
	settingVolume     = "level.volume"
)

// App is the assembled gesture daemon.
type App struct {
	cfg     config.Config
	store   *store.Store
	engine  *engine.Engine
	server  *server.Server
	plugins *plugin.Manager
}

// New builds an App from a validated config and an open store. The
// recognition thresholds are calibrated for the configured display.
func New(cfg config.Config, st *store.Store) (*App, error) {
	params, err := gesture.Calibrate(cfg.Calibration.Density, cfg.Calibration.WidthPx)
	if err != nil {
		return nil, fmt.Errorf("calibrate: %w", err)
	}

	th := gesture.Thresholds{
		TapWindowMs:       cfg.Gesture.TapWindowMs,
		DoubleTapWindowMs: cfg.Gesture.DoubleTapWindowMs,
		LongPressMs:       cfg.Gesture.LongPressMs,
		Slop:              params.Slop,
		SeekPerPixelMs:    params.SeekPerPixelMs,
		Speed: gesture.SpeedConfig{
			Levels:          cfg.Speed.Levels,
			HoldIntervalsMs: cfg.Speed.HoldIntervalsMs,
		},
	}

	e := engine.New(engine.Options{
		Thresholds: th,
		Zones: gesture.ZoneConfig{
			LeftFraction:  cfg.Zones.LeftFraction,
			RightFraction: cfg.Zones.RightFraction,
		},
		Debounce: gesture.DebounceConfig{
			MinChangeIntervalMs: cfg.Debounce.MinChangeIntervalMs,
			ConfidenceThreshold: cfg.Debounce.ConfidenceThreshold,
			RecomputeEvery:      cfg.Debounce.RecomputeEvery,
			DirectionThreshold:  params.DirectionThreshold,
		},
		MultiFinger: gesture.MultiFingerConfig{
			PinchThreshold:     cfg.MultiFinger.PinchThreshold,
			RotateThresholdDeg: cfg.MultiFinger.RotateThresholdDeg,
			SwipeThreshold:     params.SwipeThreshold,
			TapWindowMs:        cfg.MultiFinger.TapWindowMs,
		},
	})

	a := &App{
		cfg:    cfg,
		store:  st,
		engine: e,
		server: server.New(server.Config{StaticDir: cfg.Server.StaticDir, Store: st, Engine: e}),
	}

	if st != nil {
		// Persist level changes so brightness and volume survive a
		// daemon restart.
		e.SubscribeActions(func(act action.Action) {
			var key string
			switch act.Kind {
			case action.KindSetBrightness:
				key = settingBrightness
			case action.KindSetVolume:
				key = settingVolume
			default:
				return
			}
			if err := st.Settings().SetFloat(key, act.Amount); err != nil {
				log.Printf("Failed to persist %s: %v", key, err)
			}
		})
	}

	if cfg.Plugins.Dir != "" {
		a.plugins = plugin.NewManager(cfg.Plugins.Dir)
		dispatcher := plugin.NewDispatcher(a.plugins, plugin.NewExecutor(cfg.Plugins.TimeoutMs))

		// Dispatch off the processing goroutine; plugin executables can
		// be slow and must not stall gesture recognition.
		e.SubscribeActions(func(act action.Action) {
			go func() {
				if err := dispatcher.Dispatch(context.Background(), act); err != nil {
					log.Printf("Plugin dispatch failed: %v", err)
				}
			}()
		})
	}

	return a, nil
}

// Engine returns the assembled engine.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Server returns the HTTP server.
func (a *App) Server() *server.Server {
	return a.server
}

// Plugins returns the host plugin manager, or nil when plugins are
// disabled.
func (a *App) Plugins() *plugin.Manager {
	return a.plugins
}

// LoadGestures loads the persisted custom gestures into the matcher.
func (a *App) LoadGestures() error {
	if a.store == nil {
		return nil
	}

	gestures, err := a.store.Gestures().List()
	if err != nil {
		return err
	}

	for _, g := range gestures {
		points := make([]touch.Point, len(g.Points))
		for i, p := range g.Points {
			points[i] = touch.Point{X: p.X, Y: p.Y, Timestamp: p.TimestampMs}
		}

		kind, err := action.ParseKind(g.ActionKind)
		if err != nil {
			log.Printf("Skipping gesture %s: %v", g.Name, err)
			continue
		}

		a.engine.Matcher().Add(&action.CustomGesture{
			ID:     g.ID,
			Name:   g.Name,
			Points: points,
			Action: action.Action{Kind: kind, Amount: g.ActionAmount},
		})
	}

	log.Printf("Loaded %d custom gestures from database", len(gestures))
	return nil
}

// LoadLevels restores persisted brightness and volume levels into the
// engine. Missing settings keep the engine defaults.
func (a *App) LoadLevels() error {
	if a.store == nil {
		return nil
	}

	brightness, volume := a.engine.Levels()

	if v, err := a.store.Settings().GetFloat(settingBrightness); err == nil {
		brightness = v
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if v, err := a.store.Settings().GetFloat(settingVolume); err == nil {
		volume = v
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	a.engine.SetLevels(brightness, volume)
	return nil
}

// LoadMappings loads the persisted mapping overrides into the mapper.
func (a *App) LoadMappings() error {
	if a.store == nil {
		return nil
	}

	overrides, err := a.store.Mappings().List()
	if err != nil {
		return err
	}

	loaded := 0
	for _, m := range overrides {
		zone, err := gesture.ParseZone(m.Zone)
		if err != nil {
			log.Printf("Skipping mapping override: %v", err)
			continue
		}
		typ, err := gesture.ParseType(m.GestureType)
		if err != nil {
			log.Printf("Skipping mapping override: %v", err)
			continue
		}
		kind, err := action.ParseKind(m.ActionKind)
		if err != nil {
			log.Printf("Skipping mapping override: %v", err)
			continue
		}

		a.engine.Mapper().SetOverride(
			action.Key{Zone: zone, Type: typ},
			action.Action{Kind: kind, Amount: m.ActionAmount},
		)
		loaded++
	}

	log.Printf("Loaded %d mapping overrides from database", loaded)
	return nil
}

// Run loads persisted state and serves the HTTP API. It blocks until
// the server stops.
func (a *App) Run() error {
	if err := a.LoadGestures(); err != nil {
		return fmt.Errorf("load gestures: %w", err)
	}
	if err := a.LoadMappings(); err != nil {
		return fmt.Errorf("load mappings: %w", err)
	}
	if err := a.LoadLevels(); err != nil {
		return fmt.Errorf("load levels: %w", err)
	}
	if a.plugins != nil {
		if err := a.plugins.Discover(); err != nil {
			return fmt.Errorf("discover plugins: %w", err)
		}
		log.Printf("Discovered %d host plugins", len(a.plugins.List()))
	}

	log.Printf("Listening on %s", a.cfg.Server.Addr)
	return a.server.ListenAndServe(a.cfg.Server.Addr)
}
