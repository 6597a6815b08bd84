// Package drift compares the component versions of Maven module descriptors
// with their parent descriptor and reports overrides, parent version properties
// nothing references, and third-party dependencies pinned to literal versions.
//
// It exposes CommandBuilder for wiring the report Cobra command and Service for
// driving the comparison programmatically.
package drift
