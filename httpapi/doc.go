// Package httpapi binds schema-gated response payloads to net/http.
//
// It provides the Router implementation that turns a finalized payload into
// an actual HTTP response, the endpoint handlers that push request content
// through the schema gate, and the server lifecycle (startup, graceful
// shutdown).
package httpapi
