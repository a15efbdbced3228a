// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"multilingua/internal/cache"
	"multilingua/internal/i18n"
	"multilingua/internal/markdown"
	"multilingua/internal/models"
	"multilingua/internal/sitemap"
	"multilingua/internal/store"
)

// Public groups the read-only handlers for the content API. Hot endpoints
// check the Valkey response cache before touching the catalog and store the
// encoded payload on miss. respCache may be nil (tests, local runs without
// Valkey); caching then simply disappears.
type Public struct {
	catalog   store.Catalog
	respCache *cache.ResponseCache
	baseURL   string
}

// NewPublic creates a new Public handler group.
func NewPublic(catalog store.Catalog, respCache *cache.ResponseCache, baseURL string) *Public {
	return &Public{
		catalog:   catalog,
		respCache: respCache,
		baseURL:   baseURL,
	}
}

// Health reports liveness for load balancers and uptime checks.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Languages returns the language registry for the site's language selector.
func (p *Public) Languages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, i18n.Languages)
}

// cachedJSON serves a response from the cache when possible; otherwise it
// invokes produce, writes the result, and caches the encoded bytes.
// Producer errors pass through respondStoreError and are never cached.
func (p *Public) cachedJSON(w http.ResponseWriter, r *http.Request, produce func(ctx context.Context) (any, error)) {
	ctx := r.Context()
	key := cache.RequestKey(r.URL.Path, r.URL.RawQuery)

	if p.respCache != nil {
		if body, ok := p.respCache.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	v, err := produce(ctx)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("response encode failed", "error", err, "path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	body = append(body, '\n')

	if p.respCache != nil {
		p.respCache.Set(ctx, key, body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// Subjects lists all subjects in creation order.
func (p *Public) Subjects(w http.ResponseWriter, r *http.Request) {
	p.cachedJSON(w, r, func(ctx context.Context) (any, error) {
		return p.catalog.ListSubjects(ctx)
	})
}

// SubjectBySlug returns one subject, or 404.
func (p *Public) SubjectBySlug(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	subject, err := p.catalog.GetSubjectBySlug(r.Context(), slugParam)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if subject == nil {
		respondError(w, http.StatusNotFound, "subject not found")
		return
	}
	respondJSON(w, http.StatusOK, subject)
}

// Articles lists every article in creation order.
func (p *Public) Articles(w http.ResponseWriter, r *http.Request) {
	p.cachedJSON(w, r, func(ctx context.Context) (any, error) {
		return p.catalog.ListArticles(ctx)
	})
}

// FeaturedArticles lists featured articles, newest first.
func (p *Public) FeaturedArticles(w http.ResponseWriter, r *http.Request) {
	p.cachedJSON(w, r, func(ctx context.Context) (any, error) {
		return p.catalog.ListFeaturedArticles(ctx)
	})
}

// RecentArticles lists the newest articles. The limit query parameter
// defaults to 5; a non-positive or unparseable value yields an empty list.
func (p *Public) RecentArticles(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			n = 0
		}
		limit = n
	}
	p.cachedJSON(w, r, func(ctx context.Context) (any, error) {
		return p.catalog.ListRecentArticles(ctx, limit)
	})
}

// ArticlesBySubject lists a subject's articles, newest first. An unknown
// subject yields an empty list, matching the query semantics of the catalog.
func (p *Public) ArticlesBySubject(w http.ResponseWriter, r *http.Request) {
	subjectID, err := strconv.Atoi(chi.URLParam(r, "subjectID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid subject id")
		return
	}
	p.cachedJSON(w, r, func(ctx context.Context) (any, error) {
		return p.catalog.ListArticlesBySubject(ctx, subjectID)
	})
}

// ArticleBySlug returns the full article record including every translation.
func (p *Public) ArticleBySlug(w http.ResponseWriter, r *http.Request) {
	article, err := p.lookupArticle(w, r)
	if article == nil || err != nil {
		return
	}
	respondJSON(w, http.StatusOK, article)
}

// articleView is the localized rendition of an article served to readers.
type articleView struct {
	*models.Article
	Language  string                  `json:"language"`
	Direction string                  `json:"direction"`
	Localized models.LocalizedContent `json:"localized"`
}

// ArticleView returns an article resolved to the requested language
// (?lang=...). An incomplete or unknown translation silently falls back to
// English — readers always get content, never an error about languages.
func (p *Public) ArticleView(w http.ResponseWriter, r *http.Request) {
	article, err := p.lookupArticle(w, r)
	if article == nil || err != nil {
		return
	}

	lang := i18n.Normalize(r.URL.Query().Get("lang"))
	localized := i18n.Resolve(article, lang)

	effective := i18n.FallbackLanguage
	if lc, ok := article.Translations[lang]; ok && lc.Complete() {
		effective = lang
	}
	direction := "ltr"
	for _, l := range i18n.Languages {
		if l.Code == effective && l.RTL {
			direction = "rtl"
		}
	}

	respondJSON(w, http.StatusOK, articleView{
		Article:   article,
		Language:  effective,
		Direction: direction,
		Localized: localized,
	})
}

// ArticleHTML returns the article body for the requested language rendered
// from Markdown to HTML, for clients that don't ship a Markdown renderer.
func (p *Public) ArticleHTML(w http.ResponseWriter, r *http.Request) {
	article, err := p.lookupArticle(w, r)
	if article == nil || err != nil {
		return
	}

	localized := i18n.Resolve(article, r.URL.Query().Get("lang"))
	rendered, err := markdown.ToHTML(localized.Content)
	if err != nil {
		slog.Error("markdown render failed", "error", err, "slug", article.Slug)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"slug":  article.Slug,
		"title": localized.Title,
		"html":  rendered,
	})
}

// Sitemap serves sitemap.xml, caching the rendered document in Valkey.
func (p *Public) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if p.respCache != nil {
		if body, ok := p.respCache.Get(ctx, cache.SitemapKey); ok {
			w.Header().Set("Content-Type", "application/xml; charset=utf-8")
			w.Write(body)
			return
		}
	}

	body, err := sitemap.Generate(ctx, p.catalog, p.baseURL)
	if err != nil {
		slog.Error("sitemap generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if p.respCache != nil {
		p.respCache.Set(ctx, cache.SitemapKey, body)
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(body)
}

// lookupArticle fetches the slug-addressed article, writing the error
// response itself when the article cannot be served.
func (p *Public) lookupArticle(w http.ResponseWriter, r *http.Request) (*models.Article, error) {
	slugParam := chi.URLParam(r, "slug")
	article, err := p.catalog.GetArticleBySlug(r.Context(), slugParam)
	if err != nil {
		respondStoreError(w, err)
		return nil, err
	}
	if article == nil {
		respondError(w, http.StatusNotFound, "article not found")
		return nil, nil
	}
	return article, nil
}
