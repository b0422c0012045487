package validation

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// JSONValidator validates payloads against a JSON Schema document. The draft
// is pinned to Draft 7 for reproducible behavior; schemas declaring $schema
// keep their declared dialect. All $ref indirections are resolved at compile
// time, so an unresolvable reference is a configuration error, not a soft
// validation failure.
type JSONValidator struct{}

// schemaURL is the synthetic resource name compiled schemas are registered
// under; same-document $ref pointers resolve against it.
const schemaURL = "response-schema.json"

var (
	schemaCacheMu sync.RWMutex
	schemaCache   = map[string]*jsonschema.Schema{}
)

// compileSchema parses, dereferences and compiles a schema document, memoized
// per distinct schema text.
func compileSchema(schema string) (*jsonschema.Schema, error) {
	schemaCacheMu.RLock()
	compiled, ok := schemaCache[schema]
	schemaCacheMu.RUnlock()
	if ok {
		return compiled, nil
	}

	// Decode first so a malformed document surfaces the raw parser message.
	var doc any
	if err := json.Unmarshal([]byte(schema), &doc); err != nil {
		return nil, &InvalidSchemaError{Errors: []Error{{
			Message: capitalize(err.Error()),
			Code:    CodeInvalidJSON,
		}}}
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	if err := c.AddResource(schemaURL, strings.NewReader(schema)); err != nil {
		return nil, &InvalidSchemaError{Errors: []Error{{
			Message: capitalize(err.Error()),
			Code:    CodeInvalidJSON,
		}}}
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, &InvalidSchemaError{Errors: []Error{{
			Message: capitalize(err.Error()),
			Code:    CodeInvalidJSON,
		}}}
	}

	schemaCacheMu.Lock()
	schemaCache[schema] = compiled
	schemaCacheMu.Unlock()
	return compiled, nil
}

// Validate checks value against the schema and returns a SchemaViolationError
// carrying one Error per violation, in the engine's iteration order.
func (v *JSONValidator) Validate(value any, schema string) error {
	compiled, err := compileSchema(schema)
	if err != nil {
		return err
	}

	instance, err := decodeInstance(value)
	if err != nil {
		return err
	}

	err = compiled.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("json schema validation: %w", err)
	}

	var leaves []*jsonschema.ValidationError
	collectLeaves(ve, &leaves)

	errs := make([]Error, 0, len(leaves))
	for _, leaf := range leaves {
		keyword := violatedKeyword(leaf.KeywordLocation)
		// Best effort: a pointer that no longer resolves leaves Value nil.
		val, _ := resolvePointer(instance, leaf.InstanceLocation)
		errs = append(errs, Error{
			Message: lower(leaf.InstanceLocation + ": " + leaf.Message),
			Code:    keyword,
			Context: &ErrorContext{
				JSONPointer: leaf.InstanceLocation,
				Value:       val,
				Constraints: map[string]any{
					"keyword":         keyword,
					"keywordLocation": leaf.KeywordLocation,
					"schemaLocation":  leaf.AbsoluteKeywordLocation,
				},
			},
		})
	}
	if len(errs) == 0 {
		// An engine that signals failure without explaining itself is an
		// engine bug; tolerated, but never silently.
		log.Printf("json schema validation failed with no reported violations; treating payload as valid")
		return nil
	}
	return &SchemaViolationError{Errors: errs}
}

// decodeInstance turns the serialized payload (or a JSON-compatible
// structure) into the generic form the schema engine validates.
func decodeInstance(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return decodeInstanceBytes([]byte(v))
	case []byte:
		return decodeInstanceBytes(v)
	case nil:
		return nil, nil
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("content is not json-serializable: %w", err)
		}
		return decodeInstanceBytes(b)
	}
}

func decodeInstanceBytes(b []byte) (any, error) {
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, &SchemaViolationError{Errors: []Error{{
			Message: lower("payload is not valid json: " + err.Error()),
			Code:    CodeInvalidJSON,
		}}}
	}
	return out, nil
}

// collectLeaves walks the cause tree depth-first, preserving the engine's
// native order, and keeps only the innermost violations.
func collectLeaves(ve *jsonschema.ValidationError, out *[]*jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		*out = append(*out, ve)
		return
	}
	for _, cause := range ve.Causes {
		collectLeaves(cause, out)
	}
}

// violatedKeyword extracts the schema keyword from a keyword location such as
// "/properties/name/maxLength", skipping applicator indices like "/anyOf/0".
func violatedKeyword(loc string) string {
	segments := strings.Split(loc, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		s := segments[i]
		if s == "" {
			continue
		}
		if _, err := strconv.Atoi(s); err == nil {
			continue
		}
		return lower(s)
	}
	return "schema"
}

// resolvePointer fetches the value a JSON Pointer refers to inside a decoded
// document. Returns false when the pointer does not resolve.
func resolvePointer(doc any, pointer string) (any, bool) {
	if pointer == "" {
		return doc, true
	}
	current := doc
	for _, raw := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		token := strings.ReplaceAll(strings.ReplaceAll(raw, "~1", "/"), "~0", "~")
		switch node := current.(type) {
		case map[string]any:
			v, ok := node[token]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			current = node[i]
		default:
			return nil, false
		}
	}
	return current, true
}
