package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/astralplayer/gesturekit/internal/app"
	"github.com/astralplayer/gesturekit/internal/config"
	"github.com/astralplayer/gesturekit/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	fmt.Println("GestureKit - Touch Gesture Engine")

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}

		dbDir := filepath.Join(homeDir, ".gesturekit")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		dbPath = filepath.Join(dbDir, "gesturekit.db")
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = findWebDir()
	}
	if cfg.Server.StaticDir != "" {
		fmt.Printf("Serving static files from: %s\n", cfg.Server.StaticDir)
	}

	a, err := app.New(cfg, st)
	if err != nil {
		log.Fatalf("Failed to assemble engine: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.gesturekit/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".gesturekit", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
