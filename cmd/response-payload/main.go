package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/theoremus-urban-solutions/response-payload/config"
	"github.com/theoremus-urban-solutions/response-payload/httpapi"
	"github.com/theoremus-urban-solutions/response-payload/internal"
	"github.com/theoremus-urban-solutions/response-payload/payload"
)

// stdoutRouter prints the transport triple instead of sending it anywhere.
type stdoutRouter struct{}

func (stdoutRouter) BuildResponse(body string, statusCode string, headers []payload.Header) (any, error) {
	for _, h := range headers {
		fmt.Printf("%s: %s\n", h.Name, h.Value)
	}
	fmt.Printf("status: %s\n", statusCode)
	fmt.Println(body)
	return nil, nil
}

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve")
	format := flag.String("format", "json", "json|xml")
	status := flag.String("status", "200", "transport status code")
	schemaFile := flag.String("schema", "", "schema document path (optional)")
	contentFile := flag.String("content", "", "content file; empty or '-' reads stdin")
	contentType := flag.String("contentType", "", "Content-Type header (optional)")
	location := flag.String("location", "", "Location header (optional)")
	endpointName := flag.String("endpoint", "", "endpoint name from config.endpoints[] (overrides format/status/schema)")
	flag.Parse()

	internal.InitLogging()

	switch *mode {
	case "serve":
		if err := config.LoadAppConfig(); err != nil {
			panic(err)
		}
		httpapi.StartServer()
		httpapi.HandleGracefulShutdown()
	case "oneshot":
		wireFormat, statusCode, schema := *format, *status, ""
		if *endpointName != "" {
			if err := config.LoadAppConfig(); err != nil {
				panic(err)
			}
			ep := config.SelectEndpoint(*endpointName)
			if ep == nil {
				panic("no such endpoint: " + *endpointName)
			}
			wireFormat, statusCode, schema = ep.Format, ep.StatusCode, ep.Schema
		} else if *schemaFile != "" {
			s, err := config.LoadSchema(*schemaFile)
			if err != nil {
				panic(err)
			}
			schema = s
		}

		var content any
		if err := json.Unmarshal(readContent(*contentFile), &content); err != nil {
			panic(err)
		}

		p, err := payload.New(stdoutRouter{}, wireFormat, statusCode)
		if err != nil {
			panic(err)
		}
		p.SetSchema(schema)
		p.SetContentType(*contentType)
		p.SetLocation(*location)
		if err := p.SetContent(content); err != nil {
			panic(err)
		}
		if _, err := p.Finalize(true); err != nil {
			panic(err)
		}
	default:
		panic("unknown mode")
	}
}

func readContent(path string) []byte {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			panic(err)
		}
		return data
	}
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	return data
}
