package validation

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/lestrrat-go/libxml2"
	"github.com/lestrrat-go/libxml2/xsd"
)

// XMLValidator validates raw XML documents against an XSD document.
//
// libxml2 keeps error-collection state per process, so the whole
// parse/validate sequence runs under a single lock: the lock is the scoped
// acquisition of the engine, and the deferred release restores it on every
// exit path. Independent JSON validations are unaffected.
type XMLValidator struct{}

var xmlEngineMu sync.Mutex

// Validate parses value and, only if it parses, validates it against schema.
// Parse failures short-circuit with InvalidXMLError; schema violations are
// reported as SchemaViolationError. Both carry Errors with code
// "invalid-response-xml" and no structured context.
func (v *XMLValidator) Validate(value any, schema string) error {
	text, err := xmlDocumentText(value)
	if err != nil {
		return err
	}

	xmlEngineMu.Lock()
	defer xmlEngineMu.Unlock()

	doc, err := libxml2.ParseString(text)
	if err != nil {
		return &InvalidXMLError{Errors: []Error{engineError(err.Error())}}
	}
	defer doc.Free()

	s, err := xsd.Parse([]byte(schema))
	if err != nil {
		// The schema document itself did not compile: configuration error,
		// not a content failure.
		return &InvalidSchemaError{Errors: []Error{engineError(err.Error())}}
	}
	defer s.Free()

	err = s.Validate(doc)
	if err == nil {
		return nil
	}
	var sve xsd.SchemaValidationError
	if !errors.As(err, &sve) {
		return fmt.Errorf("xml schema validation: %w", err)
	}
	raw := sve.Errors()
	errs := make([]Error, 0, len(raw))
	for _, e := range raw {
		errs = append(errs, engineError(e.Error()))
	}
	if len(errs) == 0 {
		log.Printf("xml schema validation failed with no reported violations; treating payload as valid")
		return nil
	}
	return &SchemaViolationError{Errors: errs}
}

func xmlDocumentText(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", fmt.Errorf("xml validation requires a serialized document, got %T", value)
}

var xmlLinePattern = regexp.MustCompile(`(?i)\bline[: ]+(\d+)`)

// engineError normalizes a libxml2 message into the shared Error shape:
// lower-cased message with the reported line rendered as "(line: n)".
// libxml2 embeds positions inside the message text; 0 means it gave none.
func engineError(msg string) Error {
	line := 0
	if m := xmlLinePattern.FindStringSubmatch(msg); m != nil {
		line, _ = strconv.Atoi(m[1])
	}
	msg = strings.TrimSuffix(strings.TrimSpace(msg), ".")
	return Error{
		Message: fmt.Sprintf("%s (line: %d)", lower(msg), line),
		Code:    CodeInvalidXML,
	}
}
