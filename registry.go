package goplugdep

// Registry supplies plugin metadata to the resolver. Implementations are
// treated as synchronous, in-memory collaborators: the resolver defines no
// timeout or retry semantics for registry calls.
//
// The resolver only reads through this interface; installation side effects
// go through an InstallFunc instead.
type Registry interface {
	// GetPlugin returns the latest known version's metadata for a plugin
	// name. The second return value is false when the plugin is unknown.
	GetPlugin(id string) (*PluginMetadata, bool)

	// AvailableVersions returns all versions known for a plugin name, in
	// ascending version order. Empty when the plugin is unknown.
	AvailableVersions(id string) []string

	// IsInstalled reports whether a plugin is currently installed.
	// An empty version matches any installed version of the plugin.
	IsInstalled(id, version string) bool
}
