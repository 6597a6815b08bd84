package pom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pom-audit/internal/pom"
)

func TestDecodeDocumentParentVersion(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		content               string
		expectedParentVersion string
		expectedHasParent     bool
	}{
		{
			name: "trimmed_parent_version",
			content: `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <parent><groupId>nl.knaw</groupId><version>  1.4.0-SNAPSHOT </version></parent>
  <version>9.9</version>
</project>`,
			expectedParentVersion: "1.4.0-SNAPSHOT",
			expectedHasParent:     true,
		},
		{
			name: "blank_parent_version",
			content: `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <parent><version>   </version></parent>
</project>`,
			expectedParentVersion: "",
			expectedHasParent:     false,
		},
		{
			name:                  "no_parent_block",
			content:               `<project xmlns="http://maven.apache.org/POM/4.0.0"><version>1.0</version></project>`,
			expectedParentVersion: "",
			expectedHasParent:     false,
		},
		{
			name: "nested_parent_is_not_the_project_parent",
			content: `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <build><parent><version>2.0</version></parent></build>
</project>`,
			expectedParentVersion: "",
			expectedHasParent:     false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			document, decodeError := pom.DecodeDocument(strings.NewReader(testCase.content), pom.DefaultNamespace)
			require.NoError(testInstance, decodeError)
			require.Equal(testInstance, testCase.expectedParentVersion, document.ParentVersion)
			require.Equal(testInstance, testCase.expectedHasParent, document.HasParentReference())
		})
	}
}

func TestDecodeDocumentCollectsDependenciesInDocumentOrder(testInstance *testing.T) {
	content := `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <dependencies>
    <dependency><groupId>a</groupId><artifactId>first</artifactId><version>${first.version}</version></dependency>
  </dependencies>
  <build><plugins><plugin><dependencies>
    <dependency><groupId>b</groupId><artifactId>second</artifactId><version> 2 </version></dependency>
  </dependencies></plugin></plugins></build>
</project>`

	document, decodeError := pom.DecodeDocument(strings.NewReader(content), pom.DefaultNamespace)
	require.NoError(testInstance, decodeError)
	require.Equal(testInstance, []pom.DependencyRecord{
		{GroupID: "a", ArtifactID: "first", Version: "${first.version}"},
		{GroupID: "b", ArtifactID: "second", Version: "2"},
	}, document.Dependencies)
	require.True(testInstance, document.Dependencies[0].HasVersionReference())
	require.True(testInstance, document.Dependencies[1].HasLiteralVersion())
	require.Equal(testInstance, "b:second:2", document.Dependencies[1].Coordinates())
}

func TestDecodeDocumentHonoursDeclaredCharset(testInstance *testing.T) {
	content := `<?xml version="1.0" encoding="ISO-8859-1"?>
<project xmlns="http://maven.apache.org/POM/4.0.0"><properties><a.version>1.0</a.version></properties></project>`

	document, decodeError := pom.DecodeDocument(strings.NewReader(content), pom.DefaultNamespace)
	require.NoError(testInstance, decodeError)
	require.Equal(testInstance, []pom.Property{{Name: "a.version", Value: "1.0"}}, document.Properties)
}

func TestDecodeDocumentRejectsTruncatedInput(testInstance *testing.T) {
	_, decodeError := pom.DecodeDocument(strings.NewReader(`<project xmlns="http://maven.apache.org/POM/4.0.0"><properties>`), pom.DefaultNamespace)
	require.Error(testInstance, decodeError)
}
