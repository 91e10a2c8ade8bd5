package goplugdep

import (
	"sync"

	"github.com/plugforge/go-plugdep/constraint"
)

// MemoryRegistry is a map-backed Registry holding multiple versions per
// plugin name. "Latest" is the maximum version by semantic ordering, with a
// lexicographic fallback for version strings that do not parse.
//
// It is safe for concurrent use and is the registry used throughout the
// package's own tests.
type MemoryRegistry struct {
	mu        sync.RWMutex
	plugins   map[string]map[string]*PluginMetadata // name -> version -> metadata
	installed map[string]map[string]bool            // name -> version -> true
}

// NewMemoryRegistry returns an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		plugins:   make(map[string]map[string]*PluginMetadata),
		installed: make(map[string]map[string]bool),
	}
}

// Register adds or replaces a plugin version. The metadata's Name and
// Version fields key the entry.
func (r *MemoryRegistry) Register(meta *PluginMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.plugins[meta.Name] == nil {
		r.plugins[meta.Name] = make(map[string]*PluginMetadata)
	}
	r.plugins[meta.Name][meta.Version] = meta
}

// MarkInstalled records a plugin version as installed. The version must
// not be empty.
func (r *MemoryRegistry) MarkInstalled(name, version string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.installed[name] == nil {
		r.installed[name] = make(map[string]bool)
	}
	r.installed[name][version] = true
}

// GetPlugin returns the metadata of the highest registered version.
func (r *MemoryRegistry) GetPlugin(id string) (*PluginMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.plugins[id]
	if len(versions) == 0 {
		return nil, false
	}

	var latest string
	first := true
	for version := range versions {
		if first || constraint.Compare(version, latest) > 0 {
			latest = version
			first = false
		}
	}
	return versions[latest], true
}

// AvailableVersions returns all registered versions in ascending order.
func (r *MemoryRegistry) AvailableVersions(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := make([]string, 0, len(r.plugins[id]))
	for version := range r.plugins[id] {
		versions = append(versions, version)
	}
	constraint.Sort(versions)
	return versions
}

// IsInstalled reports whether the plugin is installed; an empty version
// matches any installed version.
func (r *MemoryRegistry) IsInstalled(id, version string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	installed := r.installed[id]
	if len(installed) == 0 {
		return false
	}
	if version == "" {
		return true
	}
	return installed[version]
}

// Verify MemoryRegistry implements Registry.
var _ Registry = (*MemoryRegistry)(nil)
