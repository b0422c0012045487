package httpapi

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/response-payload/config"
)

func withEndpoints(t *testing.T, endpoints []config.Endpoint) {
	t.Helper()
	orig := config.Config
	t.Cleanup(func() { config.Config = orig })
	config.Config = config.AppConfig{
		Server:    config.ServerConfig{Port: 16181},
		Endpoints: endpoints,
	}
}

// TestHandleRespond_Valid verifies conforming content comes back formatted
// with the endpoint's status and headers
func TestHandleRespond_Valid(t *testing.T) {
	withEndpoints(t, []config.Endpoint{{
		Name:       "thing",
		Format:     "json",
		StatusCode: "200",
		Schema:     `{"type":"object","required":["id"]}`,
	}})

	req := httptest.NewRequest("POST", "/api/respond/thing", strings.NewReader(`{"id":1,"name":"a/b"}`))
	rec := httptest.NewRecorder()
	handleRespond(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status should be 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type should default to application/json, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"name":"a/b"`) {
		t.Errorf("body should contain the formatted content with literal slash, got %s", rec.Body.String())
	}
}

// TestHandleRespond_SchemaViolation verifies violating content is answered
// with 422 and the error payload instead of the body
func TestHandleRespond_SchemaViolation(t *testing.T) {
	withEndpoints(t, []config.Endpoint{{
		Name:       "thing",
		Format:     "json",
		StatusCode: "200",
		Schema:     `{"type":"object","required":["id"]}`,
	}})

	req := httptest.NewRequest("POST", "/api/respond/thing", strings.NewReader(`{"name":"a"}`))
	rec := httptest.NewRecorder()
	handleRespond(rec, req)

	if rec.Code != 422 {
		t.Fatalf("status should be 422, got %d", rec.Code)
	}
	var ep errorPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &ep); err != nil {
		t.Fatalf("error payload should be valid JSON: %v", err)
	}
	if len(ep.Errors) != 1 || ep.Errors[0].Code != "required" {
		t.Errorf("expected one \"required\" error, got %#v", ep.Errors)
	}
}

// TestHandleRespond_BadRequestBody verifies non-JSON request content is a 400
func TestHandleRespond_BadRequestBody(t *testing.T) {
	withEndpoints(t, []config.Endpoint{{
		Name:       "thing",
		Format:     "json",
		StatusCode: "200",
	}})

	req := httptest.NewRequest("POST", "/api/respond/thing", strings.NewReader(`{"broken`))
	rec := httptest.NewRecorder()
	handleRespond(rec, req)

	if rec.Code != 400 {
		t.Errorf("status should be 400, got %d", rec.Code)
	}
}

// TestHandleRespond_UnknownEndpoint verifies unknown endpoint names are a 404
func TestHandleRespond_UnknownEndpoint(t *testing.T) {
	withEndpoints(t, nil)

	req := httptest.NewRequest("POST", "/api/respond/nope", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handleRespond(rec, req)

	if rec.Code != 404 {
		t.Errorf("status should be 404, got %d", rec.Code)
	}
}

// TestHandleRespond_MethodNotAllowed verifies only POST is accepted
func TestHandleRespond_MethodNotAllowed(t *testing.T) {
	withEndpoints(t, []config.Endpoint{{
		Name:       "thing",
		Format:     "json",
		StatusCode: "200",
	}})

	req := httptest.NewRequest("GET", "/api/respond/thing", nil)
	rec := httptest.NewRecorder()
	handleRespond(rec, req)

	if rec.Code != 405 {
		t.Errorf("status should be 405, got %d", rec.Code)
	}
}

// TestHandleHealth verifies the health endpoint reports endpoint count
func TestHandleHealth(t *testing.T) {
	withEndpoints(t, []config.Endpoint{{Name: "a"}, {Name: "b"}})

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()
	handleHealth(rec, req)

	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("health response should be valid JSON: %v", err)
	}
	if resp.Status != "ok" || resp.Endpoints != 2 {
		t.Errorf("unexpected health response: %+v", resp)
	}
}

// TestBuildErrorPayload_XML verifies XML endpoints get their errors in XML
func TestBuildErrorPayload_XML(t *testing.T) {
	out := string(buildErrorPayload("report", "xml", "payload <invalid>", nil))
	if !strings.Contains(out, "<error>") || !strings.Contains(out, "payload &lt;invalid&gt;") {
		t.Errorf("unexpected XML error payload: %s", out)
	}
}
