// Package payload assembles transport-ready responses: a content value, a
// wire format, a status code, headers, and an optional schema the serialized
// content must satisfy before it may leave the process.
//
// A ResponsePayload keeps content and validity in sync by re-validating on
// every SetContent. Delivery is delegated to the caller-supplied Router,
// the single seam to whatever transport layer actually sends bytes.
package payload
