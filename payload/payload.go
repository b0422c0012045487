package payload

import (
	"fmt"

	"github.com/theoremus-urban-solutions/response-payload/formatter"
	"github.com/theoremus-urban-solutions/response-payload/validation"
)

// Header is one response header. Header order is part of the contract
// (Content-Type before Location), so headers travel as a slice, not a map.
type Header struct {
	Name  string
	Value string
}

// Router turns a finalized payload into a transport response. Implementations
// own the concrete response type; Finalize returns it verbatim.
type Router interface {
	BuildResponse(body string, statusCode string, headers []Header) (any, error)
}

// ResponsePayload aggregates content, format, schema, status code and headers.
// Every SetContent synchronously re-validates against the configured schema,
// so content and its validity are never observably out of sync. Instances are
// reusable: setting new content re-validates independently of earlier calls.
type ResponsePayload struct {
	router      Router
	format      validation.Format
	validator   validation.SchemaValidator
	statusCode  string
	schema      string
	contentType string
	location    string
	content     any
}

// New builds a payload bound to a router, a format ("json" or "xml",
// case-sensitive) and a status code. Schema and content are set afterwards.
func New(router Router, format string, statusCode string) (*ResponsePayload, error) {
	p := &ResponsePayload{router: router, statusCode: statusCode}
	if err := p.SetFormat(format); err != nil {
		return nil, err
	}
	return p, nil
}

// SetFormat resolves the format and its validator once, so later dispatch is
// a stored lookup rather than string matching. Formats outside {json, xml}
// fail with UnsupportedFormatError.
func (p *ResponsePayload) SetFormat(format string) error {
	f, err := validation.ParseFormat(format)
	if err != nil {
		return err
	}
	v, err := validation.ForFormat(f)
	if err != nil {
		return err
	}
	p.format = f
	p.validator = v
	return nil
}

// Format returns the resolved wire format.
func (p *ResponsePayload) Format() validation.Format { return p.format }

// SetStatusCode replaces the transport status code.
func (p *ResponsePayload) SetStatusCode(code string) { p.statusCode = code }

// StatusCode returns the configured transport status code.
func (p *ResponsePayload) StatusCode() string { return p.statusCode }

// SetSchema configures the schema document subsequent content is validated
// against. Empty means no validation.
func (p *ResponsePayload) SetSchema(schema string) { p.schema = schema }

// SetContentType configures the Content-Type header; empty omits it.
func (p *ResponsePayload) SetContentType(contentType string) { p.contentType = contentType }

// SetLocation configures the Location header; empty omits it.
func (p *ResponsePayload) SetLocation(location string) { p.location = location }

// Content returns the currently stored content value.
func (p *ResponsePayload) Content() any { return p.content }

// SetContent stores content and immediately validates it against the
// configured schema. There is no rollback: on failure the content stays
// stored, the error propagates, and the caller must treat the payload as
// invalid rather than finalize it.
func (p *ResponsePayload) SetContent(content any) error {
	p.content = content
	return p.AssertResponseSchema(p.schema, content)
}

// AssertResponseSchema validates value against schema for the payload's
// format. An empty schema skips validation. For XML, a value that is not
// already a document string is serialized first, so validation sees the same
// bytes the transport would.
func (p *ResponsePayload) AssertResponseSchema(schema string, value any) error {
	if schema == "" {
		return nil
	}
	if p.format == validation.FormatXML {
		switch value.(type) {
		case string, []byte:
		default:
			serialized, err := formatter.Serialize(value, p.format)
			if err != nil {
				return err
			}
			value = serialized
		}
	}
	return p.validator.Validate(value, schema)
}

// ConfiguredHeaders builds the header list: Content-Type first, Location
// second, each included only when non-empty.
func (p *ResponsePayload) ConfiguredHeaders() []Header {
	headers := []Header{}
	if p.contentType != "" {
		headers = append(headers, Header{Name: "Content-Type", Value: p.contentType})
	}
	if p.location != "" {
		headers = append(headers, Header{Name: "Location", Value: p.location})
	}
	return headers
}

// Finalize serializes the content (unless autoSerialize is off, in which case
// the content must already be a serialized string) and hands the triple to
// the router, returning its result verbatim.
func (p *ResponsePayload) Finalize(autoSerialize bool) (any, error) {
	var body string
	if autoSerialize {
		serialized, err := formatter.Serialize(p.content, p.format)
		if err != nil {
			return nil, err
		}
		body = serialized
	} else {
		s, ok := p.content.(string)
		if !ok {
			return nil, fmt.Errorf("content must already be serialized when autoSerialize is off, got %T", p.content)
		}
		body = s
	}
	return p.router.BuildResponse(body, p.statusCode, p.ConfiguredHeaders())
}
