// Package testutil provides shared fakes for package tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// GraphQLCall records one request seen by the stub server.
type GraphQLCall struct {
	Op    string
	Vars  map[string]any
	Token string
}

// GraphQLHandler produces the data payload for one operation, or the
// messages for the response's errors array.
type GraphQLHandler func(call GraphQLCall) (data any, errs []string)

// GraphQLServer is a scripted GraphQL endpoint. Handlers are keyed by
// operation name; an operation without a handler gets a GraphQL error.
type GraphQLServer struct {
	*httptest.Server

	mu       sync.Mutex
	calls    []GraphQLCall
	handlers map[string]GraphQLHandler
}

// NewGraphQLServer starts a stub endpoint that is torn down with the
// test.
func NewGraphQLServer(t *testing.T) *GraphQLServer {
	t.Helper()

	s := &GraphQLServer{handlers: make(map[string]GraphQLHandler)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *GraphQLServer) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OperationName string         `json:"operationName"`
		Query         string         `json:"query"`
		Variables     map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	call := GraphQLCall{
		Op:    req.OperationName,
		Vars:  req.Variables,
		Token: strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "),
	}
	s.mu.Lock()
	s.calls = append(s.calls, call)
	handler := s.handlers[call.Op]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if handler == nil {
		writeJSON(w, map[string]any{
			"errors": []map[string]string{{"message": "no handler for operation " + call.Op}},
		})
		return
	}

	data, errs := handler(call)
	if len(errs) > 0 {
		msgs := make([]map[string]string, len(errs))
		for i, m := range errs {
			msgs[i] = map[string]string{"message": m}
		}
		writeJSON(w, map[string]any{"errors": msgs})
		return
	}
	writeJSON(w, map[string]any{"data": data})
}

// Handle registers a handler for one operation name.
func (s *GraphQLServer) Handle(op string, h GraphQLHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[op] = h
}

// HandleData registers a handler that always returns data.
func (s *GraphQLServer) HandleData(op string, data any) {
	s.Handle(op, func(GraphQLCall) (any, []string) {
		return data, nil
	})
}

// HandleErrors registers a handler that always fails with msgs.
func (s *GraphQLServer) HandleErrors(op string, msgs ...string) {
	s.Handle(op, func(GraphQLCall) (any, []string) {
		return nil, msgs
	})
}

// Calls returns the recorded calls for one operation name.
func (s *GraphQLServer) Calls(op string) []GraphQLCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []GraphQLCall
	for _, c := range s.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// CallCount returns how many times an operation was requested.
func (s *GraphQLServer) CallCount(op string) int {
	return len(s.Calls(op))
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}
