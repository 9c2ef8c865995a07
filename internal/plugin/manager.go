package plugin

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ErrPluginNotFound is returned when a requested plugin cannot be found.
var ErrPluginNotFound = errors.New("plugin not found")

// Manager manages plugin discovery and access.
type Manager struct {
	pluginDir string
	plugins   map[string]*Plugin
	mu        sync.RWMutex
}

// NewManager creates a new plugin Manager with the given plugin directory.
func NewManager(pluginDir string) *Manager {
	return &Manager{
		pluginDir: pluginDir,
		plugins:   make(map[string]*Plugin),
	}
}

// Discover scans the plugin directory for plugin.json manifests. Each
// subdirectory is expected to hold one plugin with its manifest next
// to the executable. A missing plugin directory is not an error;
// hosts without plugins consume actions through the API instead.
func (m *Manager) Discover() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.plugins = make(map[string]*Plugin)

	info, err := os.Stat(m.pluginDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(m.pluginDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		pluginPath := filepath.Join(m.pluginDir, entry.Name())
		manifestPath := filepath.Join(pluginPath, "plugin.json")

		manifestData, err := os.ReadFile(manifestPath)
		if err != nil {
			continue // Skip plugins without a readable manifest
		}

		var manifest Manifest
		if err := json.Unmarshal(manifestData, &manifest); err != nil {
			continue // Skip plugins with invalid JSON
		}

		m.plugins[manifest.Name] = &Plugin{
			Manifest:   manifest,
			Path:       pluginPath,
			Executable: filepath.Join(pluginPath, manifest.Executable),
		}
	}

	return nil
}

// Get returns a plugin by name.
// Returns ErrPluginNotFound if the plugin does not exist.
func (m *Manager) Get(name string) (*Plugin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plugin, ok := m.plugins[name]
	if !ok {
		return nil, ErrPluginNotFound
	}

	return plugin, nil
}

// ForAction returns the first discovered plugin whose manifest lists
// the action kind, or false when none does.
func (m *Manager) ForAction(kind string) (*Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, plugin := range m.plugins {
		if plugin.Handles(kind) {
			return plugin, true
		}
	}
	return nil, false
}

// List returns a slice of all discovered plugins.
func (m *Manager) List() []*Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plugins := make([]*Plugin, 0, len(m.plugins))
	for _, plugin := range m.plugins {
		plugins = append(plugins, plugin)
	}

	return plugins
}

// PluginDir returns the plugin directory path.
func (m *Manager) PluginDir() string {
	return m.pluginDir
}
