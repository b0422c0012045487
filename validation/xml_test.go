package validation

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

const rootOnlySchema = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="root">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="id" type="xs:integer" minOccurs="1"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

// TestXMLValidator_ValidDocument verifies a conforming document passes
func TestXMLValidator_ValidDocument(t *testing.T) {
	v := &XMLValidator{}
	if err := v.Validate(`<root><id>7</id></root>`, rootOnlySchema); err != nil {
		t.Errorf("valid document should pass, got %v", err)
	}
}

// TestXMLValidator_ParseFailureShortCircuits verifies a malformed document
// never reaches schema validation: only InvalidXMLError is raised
func TestXMLValidator_ParseFailureShortCircuits(t *testing.T) {
	v := &XMLValidator{}
	err := v.Validate(`<root><id>7</root>`, rootOnlySchema)

	var parseErr *InvalidXMLError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected InvalidXMLError, got %v", err)
	}
	var violation *SchemaViolationError
	if errors.As(err, &violation) {
		t.Error("parse failure must not also surface as a schema violation")
	}
	if len(parseErr.Errors) == 0 {
		t.Fatal("parse failure must carry at least one error")
	}
	e := parseErr.Errors[0]
	if e.Code != CodeInvalidXML {
		t.Errorf("code should be %q, got %q", CodeInvalidXML, e.Code)
	}
	if !strings.Contains(e.Message, "(line:") {
		t.Errorf("message should carry the line position, got %q", e.Message)
	}
}

// TestXMLValidator_RootMismatch verifies a well-formed document with the
// wrong root element fails schema validation with code invalid-response-xml
func TestXMLValidator_RootMismatch(t *testing.T) {
	v := &XMLValidator{}
	err := v.Validate(`<other/>`, rootOnlySchema)

	var violation *SchemaViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected SchemaViolationError, got %v", err)
	}
	if len(violation.Errors) == 0 {
		t.Fatal("schema violation must carry at least one error")
	}
	e := violation.Errors[0]
	if e.Code != CodeInvalidXML {
		t.Errorf("code should be %q, got %q", CodeInvalidXML, e.Code)
	}
	if e.Context != nil {
		t.Error("XML errors must not carry JSON pointer context")
	}
	if e.Message != strings.ToLower(e.Message) {
		t.Errorf("message should be lower-cased: %q", e.Message)
	}
}

// TestXMLValidator_MalformedSchema verifies a broken XSD is a configuration
// error, not a content failure
func TestXMLValidator_MalformedSchema(t *testing.T) {
	v := &XMLValidator{}
	err := v.Validate(`<root/>`, `<xs:schema xmlns:xs="nonsense`)

	var bad *InvalidSchemaError
	if !errors.As(err, &bad) {
		t.Fatalf("expected InvalidSchemaError, got %v", err)
	}
}

// TestXMLValidator_EngineStateRestored verifies the engine is usable after
// every exit path: a parse failure, a schema failure and concurrent calls all
// leave it ready for the next validation
func TestXMLValidator_EngineStateRestored(t *testing.T) {
	v := &XMLValidator{}

	_ = v.Validate(`<root><id></root>`, rootOnlySchema) // parse failure
	_ = v.Validate(`<other/>`, rootOnlySchema)          // schema failure
	if err := v.Validate(`<root><id>1</id></root>`, rootOnlySchema); err != nil {
		t.Errorf("engine should be usable after failures, got %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = v.Validate(`<other/>`, rootOnlySchema)
			_ = v.Validate(`<root><id>1</id></root>`, rootOnlySchema)
		}()
	}
	wg.Wait()

	if err := v.Validate(`<root><id>1</id></root>`, rootOnlySchema); err != nil {
		t.Errorf("engine should be usable after concurrent validations, got %v", err)
	}
}

// TestXMLValidator_NonStringValue verifies only serialized documents are
// accepted
func TestXMLValidator_NonStringValue(t *testing.T) {
	v := &XMLValidator{}
	if err := v.Validate(map[string]any{"root": 1}, rootOnlySchema); err == nil {
		t.Error("non-string value should be rejected")
	}
}

// TestEngineError verifies line extraction and message normalization
func TestEngineError(t *testing.T) {
	e := engineError("Entity: line 3: parser error : Opening and ending tag mismatch.")
	if e.Code != CodeInvalidXML {
		t.Errorf("code should be %q, got %q", CodeInvalidXML, e.Code)
	}
	if !strings.HasSuffix(e.Message, "(line: 3)") {
		t.Errorf("line should be extracted from the engine message, got %q", e.Message)
	}

	e = engineError("no position here")
	if !strings.HasSuffix(e.Message, "(line: 0)") {
		t.Errorf("missing position should render as line 0, got %q", e.Message)
	}
}
