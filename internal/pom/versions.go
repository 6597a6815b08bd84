package pom

// VersionEntry pairs a component name with its version.
type VersionEntry struct {
	Name    string
	Version string
}

// VersionPropertyMap maps component names to versions and remembers insertion order.
// Overwriting a name keeps its original position.
type VersionPropertyMap struct {
	names    []string
	versions map[string]string
}

func newVersionPropertyMap() VersionPropertyMap {
	return VersionPropertyMap{versions: make(map[string]string)}
}

func (versionMap *VersionPropertyMap) set(name string, version string) {
	if versionMap.versions == nil {
		versionMap.versions = make(map[string]string)
	}
	if _, exists := versionMap.versions[name]; !exists {
		versionMap.names = append(versionMap.names, name)
	}
	versionMap.versions[name] = version
}

// Lookup returns the version registered for name.
func (versionMap VersionPropertyMap) Lookup(name string) (string, bool) {
	version, exists := versionMap.versions[name]
	return version, exists
}

// Len returns the number of registered names.
func (versionMap VersionPropertyMap) Len() int {
	return len(versionMap.names)
}

// Entries returns the registered names and versions in insertion order.
func (versionMap VersionPropertyMap) Entries() []VersionEntry {
	entries := make([]VersionEntry, 0, len(versionMap.names))
	for _, name := range versionMap.names {
		entries = append(entries, VersionEntry{Name: name, Version: versionMap.versions[name]})
	}
	return entries
}
