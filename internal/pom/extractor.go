package pom

import (
	"sort"
	"strings"
)

const (
	versionSuffixConstant           = ".version"
	propertyReferencePrefixConstant = "${"
	propertyReferenceSuffixConstant = "}"
	expressionPrefixConstant        = "$"
	coordinateSeparatorConstant     = ":"
)

// Extractor derives component versions from project descriptors in a single namespace.
type Extractor struct {
	namespace string
}

// NewExtractor constructs an Extractor. An empty namespace selects DefaultNamespace.
func NewExtractor(namespace string) *Extractor {
	trimmedNamespace := strings.TrimSpace(namespace)
	if len(trimmedNamespace) == 0 {
		trimmedNamespace = DefaultNamespace
	}
	return &Extractor{namespace: trimmedNamespace}
}

// Namespace returns the XML namespace the extractor matches elements in.
func (extractor *Extractor) Namespace() string {
	return extractor.namespace
}

// ParseDocument decodes the descriptor at documentPath using the extractor namespace.
func (extractor *Extractor) ParseDocument(documentPath string) (Document, error) {
	return ParseDocument(documentPath, extractor.namespace)
}

// ExtractVersions parses documentPath and returns its component versions,
// recording literal third-party versions into literals.
func (extractor *Extractor) ExtractVersions(documentPath string, literals *LiteralVersionSet) (VersionPropertyMap, error) {
	document, parseError := extractor.ParseDocument(documentPath)
	if parseError != nil {
		return VersionPropertyMap{}, parseError
	}
	return extractor.ExtractDocumentVersions(document, literals), nil
}

// ExtractDocumentVersions builds the version map of an already parsed document.
//
// Version properties are registered first under their name without the
// ".version" suffix. Dependencies with an artifactId and a version that is not
// a ${...} reference then register artifactId -> version, replacing a property
// of the same name. Dependencies with groupId, artifactId and a version not
// starting with "$" are added to literals when it is non-nil.
func (extractor *Extractor) ExtractDocumentVersions(document Document, literals *LiteralVersionSet) VersionPropertyMap {
	versionMap := newVersionPropertyMap()

	for _, property := range document.Properties {
		if !strings.HasSuffix(property.Name, versionSuffixConstant) {
			continue
		}
		versionMap.set(strings.TrimSuffix(property.Name, versionSuffixConstant), property.Value)
	}

	for _, dependency := range document.Dependencies {
		if len(dependency.ArtifactID) > 0 && len(dependency.Version) > 0 && !dependency.HasVersionReference() {
			versionMap.set(dependency.ArtifactID, dependency.Version)
		}
		if literals != nil && len(dependency.GroupID) > 0 && len(dependency.ArtifactID) > 0 && dependency.HasLiteralVersion() {
			literals.Add(dependency.Coordinates())
		}
	}

	return versionMap
}

// DeclaredVersionProperties returns the component names of the document's
// ".version" properties in declaration order.
func (extractor *Extractor) DeclaredVersionProperties(document Document) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, property := range document.Properties {
		if !strings.HasSuffix(property.Name, versionSuffixConstant) {
			continue
		}
		name := strings.TrimSuffix(property.Name, versionSuffixConstant)
		if _, duplicate := seen[name]; duplicate {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// ReferencedPropertyNames returns the property names dependencies refer to
// through ${name} or ${name.version}, normalized without the ".version" suffix.
func (extractor *Extractor) ReferencedPropertyNames(document Document) map[string]struct{} {
	referenced := make(map[string]struct{})
	for _, dependency := range document.Dependencies {
		if len(dependency.ArtifactID) == 0 || !dependency.HasVersionReference() {
			continue
		}
		reference := strings.TrimPrefix(dependency.Version, propertyReferencePrefixConstant)
		reference = strings.TrimSuffix(reference, propertyReferenceSuffixConstant)
		referenced[strings.TrimSuffix(reference, versionSuffixConstant)] = struct{}{}
	}
	return referenced
}

// UnusedVersionProperties returns the declared version properties of document
// that none of its dependencies reference, sorted by name.
func (extractor *Extractor) UnusedVersionProperties(document Document) []string {
	referenced := extractor.ReferencedPropertyNames(document)
	unused := []string{}
	for _, name := range extractor.DeclaredVersionProperties(document) {
		if _, isReferenced := referenced[name]; isReferenced {
			continue
		}
		unused = append(unused, name)
	}
	sort.Strings(unused)
	return unused
}
