// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the route table and the middleware gates in
// front of the admin API. The session store wraps a Valkey client that is
// never dialed: requests without a session cookie short-circuit before any
// network call.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"

	"multilingua/internal/handlers"
	"multilingua/internal/middleware"
	"multilingua/internal/session"
	"multilingua/internal/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	catalog := store.NewMemory()
	sessions := session.NewStore(redis.NewClient(&redis.Options{Addr: "localhost:0"}), false)

	return New(Options{
		Sessions: sessions,
		Public:   handlers.NewPublic(catalog, nil, "http://localhost:8080"),
		Auth:     handlers.NewAuth(sessions, nil),
		Admin:    handlers.NewAdmin(catalog, nil),
	})
}

func TestPublicRoutes(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		path string
		want int
	}{
		{"/health", http.StatusOK},
		{"/api/languages", http.StatusOK},
		{"/api/subjects", http.StatusOK},
		{"/api/subjects/nope", http.StatusNotFound},
		{"/api/articles", http.StatusOK},
		{"/api/articles/featured", http.StatusOK},
		{"/api/articles/recent", http.StatusOK},
		{"/api/articles/subject/1", http.StatusOK},
		{"/api/articles/nope", http.StatusNotFound},
		{"/api/articles/nope/view", http.StatusNotFound},
		{"/sitemap.xml", http.StatusOK},
		{"/nowhere", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != tt.want {
			t.Errorf("GET %s: got %d, want %d", tt.path, rr.Code, tt.want)
		}
	}
}

func TestAdminCheckAnonymous(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/check", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var body map[string]bool
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["isAdmin"] {
		t.Error("anonymous request must not be admin")
	}
}

func TestAdminMutationRequiresCSRF(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/subjects", strings.NewReader(`{"name":"X"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("mutation without CSRF token: got %d, want 403", rr.Code)
	}
}

func TestAdminMutationRequiresSession(t *testing.T) {
	h := newTestRouter(t)

	// Pick up a CSRF token first, the way a browser client would.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/check", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var token string
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.CSRFCookieName {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("no CSRF cookie issued")
	}

	// CSRF passes, but there is no session: the auth gate answers.
	req = httptest.NewRequest(http.MethodPost, "/api/admin/subjects", strings.NewReader(`{"name":"X"}`))
	req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: token})
	req.Header.Set(middleware.CSRFHeaderName, token)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("mutation without session: got %d, want 401", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "authentication required") {
		t.Errorf("body: %s", rr.Body.String())
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options: got %q", got)
	}
}
