package drift

import "github.com/temirov/pom-audit/internal/pom"

// ConfigurationDiscoverer finds project descriptors below a root directory.
type ConfigurationDiscoverer interface {
	DiscoverConfigurationFiles(root string) ([]string, error)
}

// VersionExtractor exposes the descriptor parsing used by the drift report.
type VersionExtractor interface {
	ParseDocument(documentPath string) (pom.Document, error)
	ExtractDocumentVersions(document pom.Document, literals *pom.LiteralVersionSet) pom.VersionPropertyMap
	UnusedVersionProperties(document pom.Document) []string
}

// PathExpander resolves user shortcuts such as "~" in configured paths.
type PathExpander interface {
	Expand(candidatePath string) string
}
