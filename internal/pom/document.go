package pom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// DefaultNamespace is the XML namespace of Maven 4.0.0 project descriptors.
const DefaultNamespace = "http://maven.apache.org/POM/4.0.0"

const (
	propertiesElementNameConstant           = "properties"
	parentElementNameConstant               = "parent"
	dependencyElementNameConstant           = "dependency"
	groupIDElementNameConstant              = "groupId"
	artifactIDElementNameConstant           = "artifactId"
	versionElementNameConstant              = "version"
	documentOpenErrorTemplateConstant       = "unable to open %s: %w"
	documentDecodeErrorTemplateConstant     = "unable to parse %s: %w"
	xmlTokenErrorTemplateConstant           = "malformed xml: %w"
	unsupportedCharsetErrorTemplateConstant = "unsupported charset %q"
)

// Property is one child element of the top-level properties block.
type Property struct {
	Name  string
	Value string
}

// DependencyRecord is a single dependency declaration. Empty fields mean the element was absent.
type DependencyRecord struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// HasVersionReference reports whether the version is a ${...} property reference.
func (record DependencyRecord) HasVersionReference() bool {
	return strings.HasPrefix(record.Version, propertyReferencePrefixConstant)
}

// HasLiteralVersion reports whether the version is present and not an expression.
func (record DependencyRecord) HasLiteralVersion() bool {
	return len(record.Version) > 0 && !strings.HasPrefix(record.Version, expressionPrefixConstant)
}

// Coordinates formats the record as group:artifact:version.
func (record DependencyRecord) Coordinates() string {
	return record.GroupID + coordinateSeparatorConstant + record.ArtifactID + coordinateSeparatorConstant + record.Version
}

// Document is the parsed subset of a project descriptor the audit relies on.
type Document struct {
	Properties    []Property
	Dependencies  []DependencyRecord
	ParentVersion string
}

// HasParentReference reports whether the document declares a non-empty parent version.
func (document Document) HasParentReference() bool {
	return len(document.ParentVersion) > 0
}

// ParseDocument opens and decodes the descriptor at documentPath.
func ParseDocument(documentPath string, namespace string) (Document, error) {
	documentFile, openError := os.Open(documentPath)
	if openError != nil {
		return Document{}, fmt.Errorf(documentOpenErrorTemplateConstant, documentPath, openError)
	}
	defer documentFile.Close()

	document, decodeError := DecodeDocument(documentFile, namespace)
	if decodeError != nil {
		return Document{}, fmt.Errorf(documentDecodeErrorTemplateConstant, documentPath, decodeError)
	}
	return document, nil
}

// DecodeDocument reads POM XML from reader. Only elements in namespace are considered.
//
// Properties come from the properties block directly under the root element,
// the parent version from parent/version under the root, and dependencies from
// every dependency element at any depth in document order.
func DecodeDocument(reader io.Reader, namespace string) (Document, error) {
	decoder := xml.NewDecoder(reader)
	decoder.CharsetReader = charsetReader

	walker := documentWalker{namespace: namespace}
	for {
		token, tokenError := decoder.Token()
		if errors.Is(tokenError, io.EOF) {
			break
		}
		if tokenError != nil {
			return Document{}, fmt.Errorf(xmlTokenErrorTemplateConstant, tokenError)
		}

		switch typedToken := token.(type) {
		case xml.StartElement:
			walker.start(typedToken.Name)
		case xml.CharData:
			walker.text(typedToken)
		case xml.EndElement:
			walker.end()
		}
	}

	return walker.document, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	encoding, lookupError := ianaindex.IANA.Encoding(label)
	if lookupError != nil {
		return nil, lookupError
	}
	if encoding == nil {
		return nil, fmt.Errorf(unsupportedCharsetErrorTemplateConstant, label)
	}
	return encoding.NewDecoder().Reader(input), nil
}

type openElement struct {
	name xml.Name
	text strings.Builder
}

// documentWalker tracks the open element path while streaming tokens.
type documentWalker struct {
	namespace         string
	document          Document
	elements          []*openElement
	dependencyIndexes []int
}

func (walker *documentWalker) start(name xml.Name) {
	walker.elements = append(walker.elements, &openElement{name: name})
	if walker.matches(name, dependencyElementNameConstant) {
		walker.document.Dependencies = append(walker.document.Dependencies, DependencyRecord{})
		walker.dependencyIndexes = append(walker.dependencyIndexes, len(walker.document.Dependencies)-1)
	}
}

func (walker *documentWalker) text(data xml.CharData) {
	if len(walker.elements) == 0 {
		return
	}
	walker.elements[len(walker.elements)-1].text.Write(data)
}

func (walker *documentWalker) end() {
	if len(walker.elements) == 0 {
		return
	}
	closed := walker.elements[len(walker.elements)-1]
	walker.elements = walker.elements[:len(walker.elements)-1]
	ancestors := walker.elements
	value := strings.TrimSpace(closed.text.String())

	switch {
	case walker.matches(closed.name, dependencyElementNameConstant):
		walker.dependencyIndexes = walker.dependencyIndexes[:len(walker.dependencyIndexes)-1]
	case len(ancestors) == 2 && walker.matches(ancestors[1].name, propertiesElementNameConstant):
		if closed.name.Space == walker.namespace {
			walker.document.Properties = append(walker.document.Properties, Property{Name: closed.name.Local, Value: value})
		}
	case len(ancestors) == 2 && walker.matches(ancestors[1].name, parentElementNameConstant) && walker.matches(closed.name, versionElementNameConstant):
		walker.document.ParentVersion = value
	case len(ancestors) > 0 && len(walker.dependencyIndexes) > 0 && walker.matches(ancestors[len(ancestors)-1].name, dependencyElementNameConstant):
		walker.assignDependencyField(closed.name, value)
	}
}

func (walker *documentWalker) assignDependencyField(name xml.Name, value string) {
	record := &walker.document.Dependencies[walker.dependencyIndexes[len(walker.dependencyIndexes)-1]]
	switch {
	case walker.matches(name, groupIDElementNameConstant):
		record.GroupID = value
	case walker.matches(name, artifactIDElementNameConstant):
		record.ArtifactID = value
	case walker.matches(name, versionElementNameConstant):
		record.Version = value
	}
}

func (walker *documentWalker) matches(name xml.Name, localName string) bool {
	return name.Space == walker.namespace && name.Local == localName
}
