// Package validation checks serialized response payloads against a schema
// before they are allowed to leave the process.
//
// Two schema languages are supported, selected by Format:
//
//   - FormatJSON: JSON Schema (Draft 7), with full $ref dereferencing.
//   - FormatXML: XML Schema (XSD), backed by libxml2.
//
// Both strategies normalize their underlying engine reports into the same
// Error value (message, code, optional structured context), so callers can
// produce diagnostics without knowing which engine ran. A failing validation
// always surfaces as one of the typed failures in error.go carrying a
// non-empty, ordered list of Errors; an empty schema skips validation
// entirely.
package validation
