package goplugdep

import (
	"sync"
)

// ChainRegistry implements multi-registry lookup with fallback behavior.
// It tries registries in order and remembers which registry provides each
// plugin, so all versions of a plugin come from one source.
//
// Key behaviors:
//  1. Plugins are looked up in registry order (first to last).
//  2. The first registry where a plugin is found is used for ALL versions
//     of that plugin.
//  3. A plugin absent from every registry is simply reported as unknown;
//     the resolver turns that into a not-found placeholder node.
//
// Install status is special: a plugin counts as installed when ANY chained
// registry reports it installed, regardless of which registry provides its
// metadata.
type ChainRegistry struct {
	registries []Registry

	// pluginSource tracks which registry provides each plugin name.
	pluginSource   map[string]int
	pluginSourceMu sync.RWMutex
}

// NewChainRegistry chains registries in lookup priority order.
func NewChainRegistry(registries ...Registry) *ChainRegistry {
	return &ChainRegistry{
		registries:   registries,
		pluginSource: make(map[string]int),
	}
}

// GetPlugin returns metadata from the first registry that knows the plugin.
func (c *ChainRegistry) GetPlugin(id string) (*PluginMetadata, bool) {
	if reg, ok := c.source(id); ok {
		return reg.GetPlugin(id)
	}

	for i, reg := range c.registries {
		if meta, ok := reg.GetPlugin(id); ok {
			c.rememberSource(id, i)
			return meta, true
		}
	}
	return nil, false
}

// AvailableVersions returns the versions from the registry that provides
// the plugin.
func (c *ChainRegistry) AvailableVersions(id string) []string {
	if reg, ok := c.source(id); ok {
		return reg.AvailableVersions(id)
	}

	for i, reg := range c.registries {
		if versions := reg.AvailableVersions(id); len(versions) > 0 {
			c.rememberSource(id, i)
			return versions
		}
	}
	return nil
}

// IsInstalled reports whether any chained registry has the plugin installed.
func (c *ChainRegistry) IsInstalled(id, version string) bool {
	for _, reg := range c.registries {
		if reg.IsInstalled(id, version) {
			return true
		}
	}
	return false
}

// SourceFor returns the index of the registry that provides the given
// plugin, or -1 when the plugin has not been looked up yet.
func (c *ChainRegistry) SourceFor(id string) int {
	c.pluginSourceMu.RLock()
	defer c.pluginSourceMu.RUnlock()

	if idx, ok := c.pluginSource[id]; ok {
		return idx
	}
	return -1
}

func (c *ChainRegistry) source(id string) (Registry, bool) {
	c.pluginSourceMu.RLock()
	defer c.pluginSourceMu.RUnlock()

	if idx, ok := c.pluginSource[id]; ok {
		return c.registries[idx], true
	}
	return nil, false
}

func (c *ChainRegistry) rememberSource(id string, idx int) {
	c.pluginSourceMu.Lock()
	defer c.pluginSourceMu.Unlock()

	if _, exists := c.pluginSource[id]; !exists {
		c.pluginSource[id] = idx
	}
}

// Verify ChainRegistry implements Registry.
var _ Registry = (*ChainRegistry)(nil)
