package goplugdep

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/plugforge/go-plugdep/constraint"
)

// LocalRegistry serves plugin metadata from a local directory. This enables
// offline workflows where plugins are vendored next to the host application.
//
// The directory follows the standard layout:
//
//	{root}/plugins/{name}/{version}/plugin.yaml
//	{root}/installed.yaml
//
// plugin.yaml is a PluginMetadata manifest:
//
//	name: cache
//	version: 1.2.0
//	dependencies:
//	  - "storage>=1.0.0"
//	  - "metrics (optional)"
//	core_version: ">=0.5.0"
//
// installed.yaml lists the currently installed plugin versions:
//
//	installed:
//	  - name: cache
//	    version: 1.2.0
type LocalRegistry struct {
	rootPath string

	cache sync.Map // map[string]*PluginMetadata keyed by "name@version"

	installedOnce sync.Once
	installed     map[string]map[string]bool
}

// installedIndex is the on-disk shape of installed.yaml.
type installedIndex struct {
	Installed []struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"installed"`
}

// NewLocalRegistry creates a registry backed by a local directory.
// The path must exist and be readable.
func NewLocalRegistry(rootPath string) (*LocalRegistry, error) {
	rootPath = filepath.Clean(rootPath)
	if _, err := os.Stat(rootPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("local registry path does not exist: %s", rootPath)
		}
		return nil, fmt.Errorf("cannot access local registry path %s: %w", rootPath, err)
	}
	return &LocalRegistry{rootPath: rootPath}, nil
}

// GetPlugin reads the manifest of the highest version found on disk.
func (r *LocalRegistry) GetPlugin(id string) (*PluginMetadata, bool) {
	versions := r.AvailableVersions(id)
	if len(versions) == 0 {
		return nil, false
	}

	// AvailableVersions returns ascending order; the last entry is latest.
	meta, err := r.readManifest(id, versions[len(versions)-1])
	if err != nil {
		return nil, false
	}
	return meta, true
}

// AvailableVersions lists the version directories for a plugin name in
// ascending version order.
func (r *LocalRegistry) AvailableVersions(id string) []string {
	entries, err := os.ReadDir(filepath.Join(r.rootPath, "plugins", id))
	if err != nil {
		return nil
	}

	var versions []string
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}
	constraint.Sort(versions)
	return versions
}

// IsInstalled consults the installed.yaml index. An empty version matches
// any installed version. A missing or unreadable index means nothing is
// installed.
func (r *LocalRegistry) IsInstalled(id, version string) bool {
	r.installedOnce.Do(r.loadInstalled)

	installed := r.installed[id]
	if len(installed) == 0 {
		return false
	}
	if version == "" {
		return true
	}
	return installed[version]
}

func (r *LocalRegistry) loadInstalled() {
	r.installed = make(map[string]map[string]bool)

	data, err := os.ReadFile(filepath.Join(r.rootPath, "installed.yaml"))
	if err != nil {
		return
	}

	var index installedIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return
	}
	for _, entry := range index.Installed {
		if entry.Name == "" {
			continue
		}
		if r.installed[entry.Name] == nil {
			r.installed[entry.Name] = make(map[string]bool)
		}
		r.installed[entry.Name][entry.Version] = true
	}
}

// readManifest loads and caches one plugin.yaml.
func (r *LocalRegistry) readManifest(id, version string) (*PluginMetadata, error) {
	cacheKey := id + "@" + version
	if cached, ok := r.cache.Load(cacheKey); ok {
		return cached.(*PluginMetadata), nil
	}

	manifestPath := filepath.Join(r.rootPath, "plugins", id, version, "plugin.yaml")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read plugin manifest %s: %w", manifestPath, err)
	}

	var meta PluginMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse plugin manifest %s: %w", manifestPath, err)
	}
	if meta.Name == "" {
		meta.Name = id
	}
	if meta.Version == "" {
		meta.Version = version
	}

	r.cache.Store(cacheKey, &meta)
	return &meta, nil
}

// Verify LocalRegistry implements Registry.
var _ Registry = (*LocalRegistry)(nil)
