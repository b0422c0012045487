package formatter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// encodeXML round-trips content through JSON first: that normalizes structs
// and typed maps into plain maps and slices, which the generic
// element-per-field encoder below can walk. Opaque values that would fail the
// JSON step fail here for the same reason.
func encodeXML(content any) (string, error) {
	js, err := encodeJSON(content)
	if err != nil {
		return "", err
	}
	var generic any
	if err := json.Unmarshal([]byte(js), &generic); err != nil {
		return "", fmt.Errorf("serialize xml: %w", err)
	}
	var b strings.Builder
	writeFieldXML(&b, "response", generic)
	return b.String(), nil
}

// writeFieldXML writes one element per field. Object keys are emitted in
// sorted order so output is deterministic; array items repeat the enclosing
// element name.
func writeFieldXML(b *strings.Builder, name string, v any) {
	switch val := v.(type) {
	case map[string]any:
		b.WriteString("<")
		b.WriteString(name)
		b.WriteString(">")
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeFieldXML(b, k, val[k])
		}
		b.WriteString("</")
		b.WriteString(name)
		b.WriteString(">")
	case []any:
		for _, item := range val {
			writeFieldXML(b, name, item)
		}
	case string:
		writeTextXML(b, name, xmlEscape(val))
	case float64:
		writeTextXML(b, name, strconv.FormatFloat(val, 'f', -1, 64))
	case bool:
		if val {
			writeTextXML(b, name, "true")
		} else {
			writeTextXML(b, name, "false")
		}
	case nil:
		b.WriteString("<")
		b.WriteString(name)
		b.WriteString("/>")
	}
}

func writeTextXML(b *strings.Builder, name, text string) {
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(text)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
