// Package formatter serializes domain values into wire payloads.
//
// This package is organized into:
// - serializer.go: format dispatch and JSON serialization
// - xml.go: generic XML serialization with proper escaping
//
// Serialization is a pure transformation: same input, same output, no side
// effects. The caller picks the format; nothing here negotiates it.
package formatter
