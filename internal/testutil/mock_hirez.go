// Package testutil provides testing utilities for the Hi-Rez API client.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
)

// MockHiRez is a configurable in-process Hi-Rez API server. It routes
// requests by API method name, parsed from the first path segment
// ("getplayerjson" -> "getplayer"), and counts calls per method.
//
// createsession and ping get working default handlers; every other
// method must be configured before use.
type MockHiRez struct {
	server *httptest.Server

	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc
	calls    map[string]int
	paths    map[string]string
	sessions int
}

// NewMockHiRez starts a mock API server. Callers must Close it.
func NewMockHiRez() *MockHiRez {
	mock := &MockHiRez{
		handlers: make(map[string]http.HandlerFunc),
		calls:    make(map[string]int),
		paths:    make(map[string]string),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := methodFromPath(r.URL.Path)

		mock.mu.Lock()
		mock.calls[method]++
		mock.paths[method] = r.URL.Path
		if method == "createsession" {
			mock.sessions++
		}
		handler := mock.handlers[method]
		mock.mu.Unlock()

		if handler != nil {
			handler(w, r)
			return
		}
		mock.defaultHandler(method, w)
	}))

	return mock
}

// methodFromPath extracts the API method from a request path like
// "/getplayerjson/1234/sig/session/ts/5959045".
func methodFromPath(path string) string {
	segment := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}
	return strings.TrimSuffix(segment, "json")
}

// URL returns the mock server's base URL.
func (m *MockHiRez) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockHiRez) Close() {
	m.server.Close()
}

// Handle installs a custom handler for an API method.
func (m *MockHiRez) Handle(method string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[method] = handler
}

// RespondJSON makes the method respond 200 with v encoded as JSON.
func (m *MockHiRez) RespondJSON(method string, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		panic(err)
	}
	m.RespondBody(method, http.StatusOK, string(body))
}

// RespondBody makes the method respond with a fixed status and body.
func (m *MockHiRez) RespondBody(method string, status int, body string) {
	m.Handle(method, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		if body != "" {
			w.Write([]byte(body))
		}
	})
}

// Calls returns how many times the method was requested.
func (m *MockHiRez) Calls(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[method]
}

// SessionsCreated returns how many sessions were requested.
func (m *MockHiRez) SessionsCreated() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions
}

// LastPath returns the full path of the method's most recent request.
func (m *MockHiRez) LastPath(method string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paths[method]
}

// Reset clears call tracking, keeping the configured handlers.
func (m *MockHiRez) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = make(map[string]int)
	m.paths = make(map[string]string)
	m.sessions = 0
}

// defaultHandler serves the built-in createsession and ping responses,
// and flags unconfigured methods loudly.
func (m *MockHiRez) defaultHandler(method string, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	switch method {
	case "createsession":
		w.Write([]byte(`{"ret_msg": "Approved", "session_id": "mock-session-id", "timestamp": "1/1/2023 12:00:00 PM"}`))
	case "ping":
		w.Write([]byte(`"PaladinsAPI (ver 5.1) [PATCH - 5.1] - mock"`))
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"ret_msg": "unconfigured mock method: ` + method + `"}`))
	}
}
