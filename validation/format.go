package validation

// Format identifies a supported wire format. The zero value is invalid;
// formats are resolved once via ParseFormat rather than re-matched on every
// dispatch.
type Format int

const (
	FormatJSON Format = iota + 1
	FormatXML
)

// ParseFormat resolves a literal format string. Matching is exact and
// case-sensitive; anything outside the supported set is an
// UnsupportedFormatError.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	}
	return 0, &UnsupportedFormatError{Format: s}
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	}
	return "unknown"
}

// SchemaValidator checks a serialized value against a schema document and
// reports every violation it finds. A nil return means the value is valid.
type SchemaValidator interface {
	Validate(value any, schema string) error
}

// ForFormat returns the validator implementation for f.
func ForFormat(f Format) (SchemaValidator, error) {
	switch f {
	case FormatJSON:
		return &JSONValidator{}, nil
	case FormatXML:
		return &XMLValidator{}, nil
	}
	return nil, &UnsupportedFormatError{Format: f.String()}
}

// AssertSchema validates value against schema for the given format. An empty
// schema is a deliberate escape hatch for optional contracts and skips
// validation entirely.
func AssertSchema(f Format, schema string, value any) error {
	if schema == "" {
		return nil
	}
	v, err := ForFormat(f)
	if err != nil {
		return err
	}
	return v.Validate(value, schema)
}
