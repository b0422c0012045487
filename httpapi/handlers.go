package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/theoremus-urban-solutions/response-payload/config"
	"github.com/theoremus-urban-solutions/response-payload/payload"
	"github.com/theoremus-urban-solutions/response-payload/validation"
)

type healthResponse struct {
	Status    string `json:"status"`
	Endpoints int    `json:"endpoints"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:    "ok",
		Endpoints: len(config.Config.Endpoints),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// handleRespond accepts a JSON content value on POST /api/respond/<endpoint>
// and pushes it through the endpoint's configured payload.
func handleRespond(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/respond/")
	ep := endpointByName(name)
	if ep == nil {
		w.WriteHeader(404)
		_, _ = w.Write(buildErrorPayload(name, "json", "no such endpoint: "+name, nil))
		return
	}
	respondWith(w, r, ep)
}

// endpointHandler binds a handler to one configured endpoint path.
func endpointHandler(ep *config.Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWith(w, r, ep)
	}
}

// respondWith pushes the request body through the endpoint's configured
// payload. Schema violations never reach the wire as the endpoint body; they
// come back as a structured error payload instead.
func respondWith(w http.ResponseWriter, r *http.Request, ep *config.Endpoint) {
	if r.Method != http.MethodPost {
		w.WriteHeader(405)
		_, _ = w.Write(buildErrorPayload(ep.Name, ep.Format, "method not allowed", nil))
		return
	}

	var content any
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		w.WriteHeader(400)
		_, _ = w.Write(buildErrorPayload(ep.Name, ep.Format, "request body is not valid json: "+err.Error(), nil))
		return
	}

	p, err := payload.New(NewWriterRouter(w), ep.Format, ep.StatusCode)
	if err != nil {
		w.WriteHeader(500)
		_, _ = w.Write(buildErrorPayload(ep.Name, ep.Format, err.Error(), nil))
		return
	}
	p.SetSchema(ep.Schema)
	p.SetContentType(endpointContentType(ep))
	p.SetLocation(ep.Location)

	if err := p.SetContent(content); err != nil {
		w.WriteHeader(statusForError(err))
		_, _ = w.Write(buildErrorPayload(ep.Name, ep.Format, err.Error(), validationErrors(err)))
		return
	}
	if _, err := p.Finalize(true); err != nil {
		w.WriteHeader(500)
		_, _ = w.Write(buildErrorPayload(ep.Name, ep.Format, err.Error(), nil))
		return
	}
}

func endpointByName(name string) *config.Endpoint {
	for i := range config.Config.Endpoints {
		if config.Config.Endpoints[i].Name == name {
			return &config.Config.Endpoints[i]
		}
	}
	return nil
}

func endpointContentType(ep *config.Endpoint) string {
	if ep.ContentType != "" {
		return ep.ContentType
	}
	return "application/" + ep.Format
}

// statusForError maps the validation taxonomy onto HTTP statuses: content
// failures are 422, configuration failures 500.
func statusForError(err error) int {
	var violation *validation.SchemaViolationError
	var badXML *validation.InvalidXMLError
	if errors.As(err, &violation) || errors.As(err, &badXML) {
		return 422
	}
	return 500
}

// validationErrors pulls the ordered Error list out of a validation failure,
// whichever failure type carries it.
func validationErrors(err error) []validation.Error {
	var violation *validation.SchemaViolationError
	if errors.As(err, &violation) {
		return violation.Errors
	}
	var badXML *validation.InvalidXMLError
	if errors.As(err, &badXML) {
		return badXML.Errors
	}
	var badSchema *validation.InvalidSchemaError
	if errors.As(err, &badSchema) {
		return badSchema.Errors
	}
	return nil
}

type errorPayload struct {
	Endpoint string             `json:"endpoint"`
	Error    string             `json:"error"`
	Errors   []validation.Error `json:"errors,omitempty"`
}

// buildErrorPayload renders an error document in the endpoint's own format so
// clients never have to parse a second format on failure.
func buildErrorPayload(endpoint, format, message string, errs []validation.Error) []byte {
	if format == "xml" {
		var b strings.Builder
		b.WriteString("<error>")
		b.WriteString("<endpoint>")
		b.WriteString(xmlEscape(endpoint))
		b.WriteString("</endpoint>")
		b.WriteString("<message>")
		b.WriteString(xmlEscape(message))
		b.WriteString("</message>")
		for _, e := range errs {
			b.WriteString("<detail>")
			b.WriteString("<code>")
			b.WriteString(xmlEscape(e.Code))
			b.WriteString("</code>")
			b.WriteString("<message>")
			b.WriteString(xmlEscape(e.Message))
			b.WriteString("</message>")
			b.WriteString("</detail>")
		}
		b.WriteString("</error>")
		return []byte(b.String())
	}
	buf, _ := json.Marshal(errorPayload{Endpoint: endpoint, Error: message, Errors: errs})
	return buf
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
