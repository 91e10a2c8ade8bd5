package goplugdep

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMemoryRegistry_GetPluginLatest(t *testing.T) {
	reg := NewMemoryRegistry()
	reg.Register(&PluginMetadata{Name: "cache", Version: "1.9.0"})
	reg.Register(&PluginMetadata{Name: "cache", Version: "1.10.0"})
	reg.Register(&PluginMetadata{Name: "cache", Version: "1.2.0"})

	meta, ok := reg.GetPlugin("cache")
	if !ok {
		t.Fatal("GetPlugin() = not found")
	}
	// Semantic ordering: 1.10.0 > 1.9.0, which lexicographic would get wrong.
	if meta.Version != "1.10.0" {
		t.Errorf("latest = %q, want 1.10.0", meta.Version)
	}
}

func TestMemoryRegistry_GetPluginUnknown(t *testing.T) {
	reg := NewMemoryRegistry()
	if _, ok := reg.GetPlugin("ghost"); ok {
		t.Error("GetPlugin() found an unregistered plugin")
	}
}

func TestMemoryRegistry_AvailableVersionsAscending(t *testing.T) {
	reg := NewMemoryRegistry()
	reg.Register(&PluginMetadata{Name: "cache", Version: "2.0.0"})
	reg.Register(&PluginMetadata{Name: "cache", Version: "1.0.0"})
	reg.Register(&PluginMetadata{Name: "cache", Version: "1.5.0"})

	got := reg.AvailableVersions("cache")
	want := []string{"1.0.0", "1.5.0", "2.0.0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AvailableVersions() = %v, want %v", got, want)
	}
}

func TestMemoryRegistry_IsInstalled(t *testing.T) {
	reg := NewMemoryRegistry()
	reg.Register(&PluginMetadata{Name: "cache", Version: "1.0.0"})
	reg.MarkInstalled("cache", "1.0.0")

	if !reg.IsInstalled("cache", "1.0.0") {
		t.Error("exact version not reported installed")
	}
	if !reg.IsInstalled("cache", "") {
		t.Error("empty version must match any installed version")
	}
	if reg.IsInstalled("cache", "2.0.0") {
		t.Error("uninstalled version reported installed")
	}
	if reg.IsInstalled("ghost", "") {
		t.Error("unknown plugin reported installed")
	}
}

// writeLocalRegistry lays out a plugin directory tree under a temp dir.
func writeLocalRegistry(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	manifests := map[string]string{
		"plugins/cache/1.0.0/plugin.yaml": "name: cache\nversion: 1.0.0\n",
		"plugins/cache/1.10.0/plugin.yaml": "name: cache\n" +
			"version: 1.10.0\n" +
			"dependencies:\n" +
			"  - \"storage>=1.0.0\"\n",
		"plugins/storage/1.2.0/plugin.yaml": "description: key-value store\n",
		"installed.yaml": "installed:\n" +
			"  - name: cache\n" +
			"    version: 1.0.0\n",
	}
	for rel, content := range manifests {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestNewLocalRegistry_MissingPath(t *testing.T) {
	if _, err := NewLocalRegistry(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("NewLocalRegistry() accepted a missing directory")
	}
}

func TestLocalRegistry_GetPlugin(t *testing.T) {
	reg, err := NewLocalRegistry(writeLocalRegistry(t))
	if err != nil {
		t.Fatalf("NewLocalRegistry: %v", err)
	}

	meta, ok := reg.GetPlugin("cache")
	if !ok {
		t.Fatal("GetPlugin(cache) = not found")
	}
	if meta.Version != "1.10.0" {
		t.Errorf("latest = %q, want 1.10.0", meta.Version)
	}
	if len(meta.Dependencies) != 1 || meta.Dependencies[0] != "storage>=1.0.0" {
		t.Errorf("dependencies = %v", meta.Dependencies)
	}
}

func TestLocalRegistry_ManifestDefaultsFromPath(t *testing.T) {
	reg, err := NewLocalRegistry(writeLocalRegistry(t))
	if err != nil {
		t.Fatalf("NewLocalRegistry: %v", err)
	}

	// storage's manifest omits name and version; both come from the path.
	meta, ok := reg.GetPlugin("storage")
	if !ok {
		t.Fatal("GetPlugin(storage) = not found")
	}
	if meta.Name != "storage" || meta.Version != "1.2.0" {
		t.Errorf("meta = %s@%s, want storage@1.2.0", meta.Name, meta.Version)
	}
}

func TestLocalRegistry_AvailableVersions(t *testing.T) {
	reg, err := NewLocalRegistry(writeLocalRegistry(t))
	if err != nil {
		t.Fatalf("NewLocalRegistry: %v", err)
	}

	got := reg.AvailableVersions("cache")
	want := []string{"1.0.0", "1.10.0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AvailableVersions() = %v, want %v", got, want)
	}
	if versions := reg.AvailableVersions("ghost"); versions != nil {
		t.Errorf("AvailableVersions(ghost) = %v, want nil", versions)
	}
}

func TestLocalRegistry_IsInstalled(t *testing.T) {
	reg, err := NewLocalRegistry(writeLocalRegistry(t))
	if err != nil {
		t.Fatalf("NewLocalRegistry: %v", err)
	}

	if !reg.IsInstalled("cache", "1.0.0") {
		t.Error("installed.yaml entry not honored")
	}
	if !reg.IsInstalled("cache", "") {
		t.Error("empty version must match any installed version")
	}
	if reg.IsInstalled("cache", "1.10.0") {
		t.Error("uninstalled version reported installed")
	}
	if reg.IsInstalled("storage", "") {
		t.Error("plugin absent from installed.yaml reported installed")
	}
}

func TestLocalRegistry_NoInstalledIndex(t *testing.T) {
	root := t.TempDir()
	reg, err := NewLocalRegistry(root)
	if err != nil {
		t.Fatalf("NewLocalRegistry: %v", err)
	}
	if reg.IsInstalled("anything", "") {
		t.Error("missing installed.yaml must mean nothing is installed")
	}
}

func TestChainRegistry_FirstSourceWins(t *testing.T) {
	primary := NewMemoryRegistry()
	primary.Register(&PluginMetadata{Name: "cache", Version: "1.0.0"})
	fallback := NewMemoryRegistry()
	fallback.Register(&PluginMetadata{Name: "cache", Version: "9.0.0"})
	fallback.Register(&PluginMetadata{Name: "auth", Version: "0.1.0"})

	chain := NewChainRegistry(primary, fallback)

	meta, ok := chain.GetPlugin("cache")
	if !ok || meta.Version != "1.0.0" {
		t.Errorf("cache came from the wrong registry: %+v", meta)
	}
	// All versions of a pinned plugin come from its source registry, even
	// when a later registry has more.
	if got := chain.AvailableVersions("cache"); !reflect.DeepEqual(got, []string{"1.0.0"}) {
		t.Errorf("AvailableVersions(cache) = %v, want [1.0.0]", got)
	}

	if meta, ok := chain.GetPlugin("auth"); !ok || meta.Version != "0.1.0" {
		t.Errorf("auth not served by fallback: %+v", meta)
	}
	if idx := chain.SourceFor("cache"); idx != 0 {
		t.Errorf("SourceFor(cache) = %d, want 0", idx)
	}
	if idx := chain.SourceFor("auth"); idx != 1 {
		t.Errorf("SourceFor(auth) = %d, want 1", idx)
	}
	if idx := chain.SourceFor("ghost"); idx != -1 {
		t.Errorf("SourceFor(ghost) = %d, want -1", idx)
	}
}

func TestChainRegistry_UnknownPlugin(t *testing.T) {
	chain := NewChainRegistry(NewMemoryRegistry())
	if _, ok := chain.GetPlugin("ghost"); ok {
		t.Error("GetPlugin() found a plugin absent from every registry")
	}
}

func TestChainRegistry_IsInstalledAnyRegistry(t *testing.T) {
	primary := NewMemoryRegistry()
	primary.Register(&PluginMetadata{Name: "cache", Version: "1.0.0"})
	fallback := NewMemoryRegistry()
	fallback.MarkInstalled("cache", "1.0.0")

	chain := NewChainRegistry(primary, fallback)
	if !chain.IsInstalled("cache", "1.0.0") {
		t.Error("install status must consider every chained registry")
	}
}
