package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// TokenServer is a fake OAuth2 client-credentials endpoint.
type TokenServer struct {
	*httptest.Server

	calls     atomic.Int32
	mu        sync.Mutex
	token     string
	expiresIn int64
}

// NewTokenServer starts a token endpoint answering every POST with token.
func NewTokenServer(t *testing.T, token string, expiresIn int64) *TokenServer {
	t.Helper()

	s := &TokenServer{token: token, expiresIn: expiresIn}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Calls returns the number of token requests served.
func (s *TokenServer) Calls() int {
	return int(s.calls.Load())
}

// SetToken changes the token handed out by subsequent requests.
func (s *TokenServer) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *TokenServer) serve(w http.ResponseWriter, r *http.Request) {
	s.calls.Add(1)

	if r.Method != http.MethodPost || !strings.HasPrefix(r.Header.Get("Authorization"), "Basic ") {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   s.expiresIn,
		"scope":        r.PostForm.Get("scope"),
	})
}

// ContentServer is a fake content API whose routes are registered per test.
// Requests to unregistered paths get 404.
type ContentServer struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
}

// NewContentServer starts an empty fake content API.
func NewContentServer(t *testing.T) *ContentServer {
	t.Helper()

	s := &ContentServer{
		routes: make(map[string]http.HandlerFunc),
		hits:   make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle registers handler for the exact request path.
func (s *ContentServer) Handle(path string, handler http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = handler
}

// HandleJSON registers a handler answering path with status and body.
func (s *ContentServer) HandleJSON(path string, status int, body string) {
	s.Handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// Hits returns how many requests path received.
func (s *ContentServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *ContentServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	handler, ok := s.routes[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	handler(w, r)
}
