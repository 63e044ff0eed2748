// Package testkit holds small helpers shared by tests.
package testkit

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync"
)

// RoundTripFunc adapts a function to http.RoundTripper.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Transport is a scripted http.RoundTripper. Register handlers per
// "METHOD url-prefix" and it records every request it sees.
type Transport struct {
	mu       sync.Mutex
	handlers map[string]RoundTripFunc
	Requests []*http.Request
}

func NewTransport() *Transport {
	return &Transport{handlers: make(map[string]RoundTripFunc)}
}

// Handle registers a handler for requests whose method matches and whose
// URL starts with urlPrefix.
func (t *Transport) Handle(method, urlPrefix string, fn RoundTripFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[method+" "+urlPrefix] = fn
}

// Respond registers a fixed status/body response for method + urlPrefix.
func (t *Transport) Respond(method, urlPrefix string, status int, body string) {
	t.Handle(method, urlPrefix, func(*http.Request) (*http.Response, error) {
		return JSONResponse(status, body), nil
	})
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.Requests = append(t.Requests, req)
	var match RoundTripFunc
	for key, fn := range t.handlers {
		method, prefix, _ := strings.Cut(key, " ")
		if req.Method == method && strings.HasPrefix(req.URL.String(), prefix) {
			match = fn
			break
		}
	}
	t.mu.Unlock()

	if match == nil {
		return JSONResponse(http.StatusNotFound, `{"error":"testkit: no handler"}`), nil
	}
	return match(req)
}

// JSONResponse builds an *http.Response with a JSON content type.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}
