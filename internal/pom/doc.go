// Package pom models Maven project descriptors and extracts the version
// information the drift audit compares.
//
// DecodeDocument turns POM XML into a Document, VersionPropertyMap keeps
// component versions in declaration order, and LiteralVersionSet accumulates
// third-party dependencies pinned to hard-coded versions across every parsed
// file.
package pom
