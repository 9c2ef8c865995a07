package plugin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// writePlugin creates a plugin subdirectory with a manifest under dir.
func writePlugin(t *testing.T, dir string, manifest Manifest) {
	t.Helper()

	pluginDir := filepath.Join(dir, manifest.Name)
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), data, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func TestManager_Discover(t *testing.T) {
	tmpDir := t.TempDir()
	writePlugin(t, tmpDir, Manifest{
		Name:        "media-control",
		Version:     "1.0.0",
		Description: "Controls media playback",
		Executable:  "media-control",
		Actions:     []string{"toggle_play_pause", "next_track", "prev_track"},
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugins := manager.List()
	if len(plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(plugins))
	}

	p := plugins[0]
	if p.Manifest.Name != "media-control" {
		t.Errorf("expected plugin name 'media-control', got %q", p.Manifest.Name)
	}
	if p.Executable != filepath.Join(tmpDir, "media-control", "media-control") {
		t.Errorf("unexpected executable path %q", p.Executable)
	}
	if !p.Handles("next_track") {
		t.Error("plugin should handle next_track")
	}
	if p.Handles("set_volume") {
		t.Error("plugin should not handle set_volume")
	}
}

func TestManager_Discover_MultiplePlugins(t *testing.T) {
	tmpDir := t.TempDir()
	writePlugin(t, tmpDir, Manifest{
		Name: "media-control", Executable: "media-control",
		Actions: []string{"toggle_play_pause"},
	})
	writePlugin(t, tmpDir, Manifest{
		Name: "system-control", Executable: "system-control",
		Actions: []string{"set_volume", "set_brightness"},
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	if got := len(manager.List()); got != 2 {
		t.Fatalf("expected 2 plugins, got %d", got)
	}

	p, ok := manager.ForAction("set_brightness")
	if !ok {
		t.Fatal("expected a plugin for set_brightness")
	}
	if p.Manifest.Name != "system-control" {
		t.Errorf("expected system-control, got %q", p.Manifest.Name)
	}

	if _, ok := manager.ForAction("screenshot"); ok {
		t.Error("expected no plugin for screenshot")
	}
}

func TestManager_Discover_EmptyDir(t *testing.T) {
	manager := NewManager(t.TempDir())
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	if got := len(manager.List()); got != 0 {
		t.Errorf("expected 0 plugins, got %d", got)
	}
}

func TestManager_Discover_NonExistentDir(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "missing"))
	if err := manager.Discover(); err != nil {
		t.Errorf("Discover() on missing dir should not fail, got %v", err)
	}
}

func TestManager_Discover_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()

	pluginDir := filepath.Join(tmpDir, "broken")
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), []byte(`{not json`), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	writePlugin(t, tmpDir, Manifest{
		Name: "healthy", Executable: "healthy", Actions: []string{"toggle_mute"},
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	// The broken plugin is skipped, the healthy one survives.
	if got := len(manager.List()); got != 1 {
		t.Fatalf("expected 1 plugin, got %d", got)
	}
	if _, err := manager.Get("healthy"); err != nil {
		t.Errorf("Get(healthy) error = %v", err)
	}
}

func TestManager_Get_NotFound(t *testing.T) {
	manager := NewManager(t.TempDir())
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	if _, err := manager.Get("ghost"); err != ErrPluginNotFound {
		t.Errorf("expected ErrPluginNotFound, got %v", err)
	}
}

func TestManager_PluginDir(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager(dir)
	if manager.PluginDir() != dir {
		t.Errorf("PluginDir() = %q, want %q", manager.PluginDir(), dir)
	}
}
