package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/theoremus-urban-solutions/response-payload/validation"
)

// Serialize encodes content into the requested wire format. Unsupported
// formats fail with UnsupportedFormatError; encoder-level failures (e.g.
// content that cannot be represented) propagate as serialization errors.
func Serialize(content any, format validation.Format) (string, error) {
	switch format {
	case validation.FormatJSON:
		return encodeJSON(content)
	case validation.FormatXML:
		return encodeXML(content)
	}
	return "", &validation.UnsupportedFormatError{Format: format.String()}
}

// encodeJSON emits UTF-8 output with forward slashes and non-ASCII characters
// left literal.
func encodeJSON(content any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(content); err != nil {
		return "", fmt.Errorf("serialize json: %w", err)
	}
	// Encoder appends a newline after every value.
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
