package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/theoremus-urban-solutions/response-payload/payload"
)

// WriterRouter implements payload.Router against an http.ResponseWriter.
// Headers are applied in the order the payload configured them.
type WriterRouter struct {
	w http.ResponseWriter
}

func NewWriterRouter(w http.ResponseWriter) *WriterRouter {
	return &WriterRouter{w: w}
}

// BuildResponse writes headers, status and body. It returns the number of
// body bytes written.
func (rt *WriterRouter) BuildResponse(body string, statusCode string, headers []payload.Header) (any, error) {
	code, err := strconv.Atoi(statusCode)
	if err != nil {
		return nil, fmt.Errorf("status code %q is not numeric: %w", statusCode, err)
	}
	for _, h := range headers {
		rt.w.Header().Set(h.Name, h.Value)
	}
	rt.w.WriteHeader(code)
	n, err := rt.w.Write([]byte(body))
	if err != nil {
		return nil, err
	}
	return n, nil
}
