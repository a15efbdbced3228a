// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"multilingua/internal/models"
	"multilingua/internal/store"
)

func newAdminRouter(t *testing.T, catalog store.Catalog) http.Handler {
	t.Helper()
	a := NewAdmin(catalog, nil)

	r := chi.NewRouter()
	r.Post("/api/admin/subjects", a.SubjectCreate)
	r.Post("/api/admin/articles", a.ArticleCreate)
	r.Put("/api/admin/articles/{id}", a.ArticleUpdate)
	r.Delete("/api/admin/articles/{id}", a.ArticleDelete)
	return r
}

func send(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestSubjectCreate(t *testing.T) {
	m := store.NewMemory()
	h := newAdminRouter(t, m)

	rr := send(t, h, http.MethodPost, "/api/admin/subjects",
		`{"name":"Technology","slug":"technology","icon":"ri-computer-line"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var subject models.Subject
	if err := json.Unmarshal(rr.Body.Bytes(), &subject); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if subject.ID == 0 || subject.Slug != "technology" {
		t.Errorf("subject: %+v", subject)
	}

	// Duplicate slug conflicts.
	rr = send(t, h, http.MethodPost, "/api/admin/subjects",
		`{"name":"Tech Again","slug":"technology"}`)
	if rr.Code != http.StatusConflict {
		t.Errorf("duplicate slug: got %d, want 409", rr.Code)
	}

	// Missing name is rejected before the store is touched.
	rr = send(t, h, http.MethodPost, "/api/admin/subjects", `{"slug":"empty"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing name: got %d, want 400", rr.Code)
	}

	// Unknown fields are rejected.
	rr = send(t, h, http.MethodPost, "/api/admin/subjects", `{"name":"X","bogus":true}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown field: got %d, want 400", rr.Code)
	}
}

func TestSubjectCreateGeneratesSlug(t *testing.T) {
	m := store.NewMemory()
	h := newAdminRouter(t, m)

	rr := send(t, h, http.MethodPost, "/api/admin/subjects", `{"name":"Arts & Culture"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var subject models.Subject
	if err := json.Unmarshal(rr.Body.Bytes(), &subject); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if subject.Slug != "arts-culture" {
		t.Errorf("generated slug: got %q, want %q", subject.Slug, "arts-culture")
	}

	// The same name again gets a suffixed slug instead of a conflict.
	rr = send(t, h, http.MethodPost, "/api/admin/subjects", `{"name":"Arts & Culture"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("second create: got %d, body %s", rr.Code, rr.Body.String())
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &subject); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if subject.Slug != "arts-culture-2" {
		t.Errorf("suffixed slug: got %q, want %q", subject.Slug, "arts-culture-2")
	}
}

const validArticleBody = `{
	"slug": "go-generics",
	"subjectId": %d,
	"featured": false,
	"publishDate": "2024-03-01T00:00:00Z",
	"translations": {
		"en": {"title": "Go Generics", "excerpt": "Type parameters.", "content": "Generics arrived in 1.18."}
	},
	"availableLanguages": ["en"]
}`

func TestArticleCreate(t *testing.T) {
	m := store.NewMemory()
	h := newAdminRouter(t, m)

	rr := send(t, h, http.MethodPost, "/api/admin/subjects", `{"name":"Technology","slug":"technology"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("subject create: %d", rr.Code)
	}
	var subject models.Subject
	json.Unmarshal(rr.Body.Bytes(), &subject)

	body := strings.Replace(validArticleBody, "%d", "1", 1)
	rr = send(t, h, http.MethodPost, "/api/admin/articles", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("article create: got %d, body %s", rr.Code, rr.Body.String())
	}
	var article models.Article
	if err := json.Unmarshal(rr.Body.Bytes(), &article); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if article.ID == 0 || article.Slug != "go-generics" {
		t.Errorf("article: %+v", article)
	}

	// Same slug again conflicts.
	rr = send(t, h, http.MethodPost, "/api/admin/articles", body)
	if rr.Code != http.StatusConflict {
		t.Errorf("duplicate slug: got %d, want 409", rr.Code)
	}

	// Unknown subject is a 404.
	bad := strings.Replace(validArticleBody, "%d", "99", 1)
	bad = strings.Replace(bad, "go-generics", "other-slug", 1)
	rr = send(t, h, http.MethodPost, "/api/admin/articles", bad)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown subject: got %d, want 404", rr.Code)
	}

	// Missing English translation is a validation error.
	rr = send(t, h, http.MethodPost, "/api/admin/articles", `{
		"slug": "no-english",
		"subjectId": 1,
		"publishDate": "2024-03-01T00:00:00Z",
		"translations": {"fr": {"title": "T", "excerpt": "E", "content": "C"}},
		"availableLanguages": ["fr"]
	}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing en: got %d, want 400", rr.Code)
	}
}

func TestArticleCreateGeneratesSlug(t *testing.T) {
	m := store.NewMemory()
	h := newAdminRouter(t, m)
	send(t, h, http.MethodPost, "/api/admin/subjects", `{"name":"Technology","slug":"technology"}`)

	rr := send(t, h, http.MethodPost, "/api/admin/articles", `{
		"subjectId": 1,
		"publishDate": "2024-03-01T00:00:00Z",
		"translations": {
			"en": {"title": "Why Channels Matter", "excerpt": "CSP.", "content": "Share memory by communicating."}
		},
		"availableLanguages": ["en"]
	}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var article models.Article
	if err := json.Unmarshal(rr.Body.Bytes(), &article); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if article.Slug != "why-channels-matter" {
		t.Errorf("generated slug: got %q", article.Slug)
	}
}

func TestArticleUpdate(t *testing.T) {
	m := store.NewMemory()
	h := newAdminRouter(t, m)
	send(t, h, http.MethodPost, "/api/admin/subjects", `{"name":"Technology","slug":"technology"}`)
	send(t, h, http.MethodPost, "/api/admin/articles", strings.Replace(validArticleBody, "%d", "1", 1))

	rr := send(t, h, http.MethodPut, "/api/admin/articles/1", `{
		"featured": true,
		"translations": {"fr": {"title": "Génériques Go", "excerpt": "Paramètres de type.", "content": "Arrivés en 1.18."}},
		"availableLanguages": ["en", "fr"]
	}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var article models.Article
	if err := json.Unmarshal(rr.Body.Bytes(), &article); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !article.Featured {
		t.Error("featured flag not applied")
	}
	// The merge keeps the English translation.
	if _, ok := article.Translations["en"]; !ok {
		t.Error("en translation lost in merge")
	}
	if _, ok := article.Translations["fr"]; !ok {
		t.Error("fr translation missing after merge")
	}

	rr = send(t, h, http.MethodPut, "/api/admin/articles/99", `{"featured": true}`)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown article: got %d, want 404", rr.Code)
	}

	rr = send(t, h, http.MethodPut, "/api/admin/articles/abc", `{"featured": true}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id: got %d, want 400", rr.Code)
	}
}

func TestArticleDelete(t *testing.T) {
	m := store.NewMemory()
	h := newAdminRouter(t, m)
	send(t, h, http.MethodPost, "/api/admin/subjects", `{"name":"Technology","slug":"technology"}`)
	send(t, h, http.MethodPost, "/api/admin/articles", strings.Replace(validArticleBody, "%d", "1", 1))

	rr := send(t, h, http.MethodDelete, "/api/admin/articles/1", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}

	// Gone from the catalog, count untouched.
	article, err := m.GetArticleBySlug(context.Background(), "go-generics")
	if err != nil || article != nil {
		t.Errorf("article should be gone: %v, %v", article, err)
	}
	subject, err := m.GetSubjectBySlug(context.Background(), "technology")
	if err != nil {
		t.Fatalf("GetSubjectBySlug: %v", err)
	}
	if subject.ArticleCount != 1 {
		t.Errorf("articleCount after delete: got %d, want 1", subject.ArticleCount)
	}

	rr = send(t, h, http.MethodDelete, "/api/admin/articles/1", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want 404", rr.Code)
	}
}

// Guards against publishDate parsing regressions in the JSON payloads used
// above: the store should see the exact instant the client sent.
func TestArticleCreatePublishDate(t *testing.T) {
	m := store.NewMemory()
	h := newAdminRouter(t, m)
	send(t, h, http.MethodPost, "/api/admin/subjects", `{"name":"Technology","slug":"technology"}`)
	send(t, h, http.MethodPost, "/api/admin/articles", strings.Replace(validArticleBody, "%d", "1", 1))

	article, err := m.GetArticleBySlug(context.Background(), "go-generics")
	if err != nil || article == nil {
		t.Fatalf("GetArticleBySlug: %v, %v", article, err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !article.PublishDate.Equal(want) {
		t.Errorf("publishDate: got %v, want %v", article.PublishDate, want)
	}
}
