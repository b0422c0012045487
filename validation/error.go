package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// Error codes shared by both validation strategies. JSON Schema violations
// additionally use the lower-cased violated keyword (e.g. "required",
// "maxlength") as their code.
const (
	CodeInvalidXML  = "invalid-response-xml"
	CodeInvalidJSON = "invalid-response-payloadbody-json"
)

// Error is a single validation or serialization failure. Message and Code
// are always non-empty; Context is only present for JSON Schema violations.
type Error struct {
	Message string        `json:"message"`
	Code    string        `json:"code"`
	Context *ErrorContext `json:"context,omitempty"`
}

// ErrorContext locates a JSON Schema violation inside the payload.
type ErrorContext struct {
	JSONPointer string         `json:"jsonPointer"`
	Value       any            `json:"value"`
	Constraints map[string]any `json:"constraints"`
}

// UnsupportedFormatError reports a format outside the supported set. It is a
// configuration error, surfaced at the call that supplied the bad format.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported response format %q (supported: json, xml)", e.Format)
}

// InvalidSchemaError reports that the schema document itself is malformed or
// unresolvable. It is a configuration error, distinct from a validation
// failure of the content.
type InvalidSchemaError struct {
	Errors []Error
}

func (e *InvalidSchemaError) Error() string {
	return "invalid schema document: " + summarize(e.Errors)
}

// InvalidXMLError reports content that claims to be XML but does not parse.
// Schema validation is never attempted on such content.
type InvalidXMLError struct {
	Errors []Error
}

func (e *InvalidXMLError) Error() string {
	return "invalid xml document: " + summarize(e.Errors)
}

// SchemaViolationError reports content that parsed fine but fails one or
// more schema constraints. Errors preserves the engine's iteration order.
type SchemaViolationError struct {
	Errors []Error
}

func (e *SchemaViolationError) Error() string {
	return "response payload violates schema: " + summarize(e.Errors)
}

func summarize(errs []Error) string {
	if len(errs) == 0 {
		return "no details"
	}
	if len(errs) == 1 {
		return errs[0].Message
	}
	return fmt.Sprintf("%s (and %d more)", errs[0].Message, len(errs)-1)
}

// capitalize upper-cases the first rune, matching how underlying parser
// messages are surfaced in schema-document errors.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
