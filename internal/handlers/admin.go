// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"multilingua/internal/cache"
	"multilingua/internal/slug"
	"multilingua/internal/store"
)

// Admin groups the catalog mutation handlers. Every write invalidates the
// whole response cache: a single article touches list endpoints, its
// subject's count, and the sitemap, so fine-grained invalidation isn't
// worth the bookkeeping.
type Admin struct {
	catalog   store.Catalog
	respCache *cache.ResponseCache
}

// NewAdmin creates a new Admin handler group. respCache may be nil.
func NewAdmin(catalog store.Catalog, respCache *cache.ResponseCache) *Admin {
	return &Admin{
		catalog:   catalog,
		respCache: respCache,
	}
}

// subjectPayload is the JSON body for subject creation.
type subjectPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
}

// SubjectCreate adds a subject to the catalog. The slug is derived from the
// name when the payload omits it.
func (a *Admin) SubjectCreate(w http.ResponseWriter, r *http.Request) {
	var payload subjectPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if msg := validateSubjectPayload(payload); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if payload.Slug == "" {
		generated, err := slug.Unique(r.Context(), payload.Name, a.subjectSlugTaken)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		payload.Slug = generated
	}

	subject, err := a.catalog.CreateSubject(r.Context(), store.SubjectInput{
		Name: payload.Name,
		Slug: payload.Slug,
		Icon: payload.Icon,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}

	a.invalidate(r)
	respondJSON(w, http.StatusCreated, subject)
}

// ArticleCreate adds an article. The slug defaults to one derived from the
// English title when omitted.
func (a *Admin) ArticleCreate(w http.ResponseWriter, r *http.Request) {
	var input store.ArticleInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if msg := validateArticlePayload(input); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if input.Slug == "" {
		generated, err := slug.Unique(r.Context(), input.Translations["en"].Title, a.articleSlugTaken)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		input.Slug = generated
	}

	article, err := a.catalog.CreateArticle(r.Context(), input)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	a.invalidate(r)
	respondJSON(w, http.StatusCreated, article)
}

// ArticleUpdate merges a partial update into an article.
func (a *Admin) ArticleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	var patch store.ArticlePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	article, err := a.catalog.UpdateArticle(r.Context(), id, patch)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	a.invalidate(r)
	respondJSON(w, http.StatusOK, article)
}

// ArticleDelete removes an article. The subject's article count is left
// untouched; it tracks creations, not current membership.
func (a *Admin) ArticleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	if err := a.catalog.DeleteArticle(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

func (a *Admin) invalidate(r *http.Request) {
	if a.respCache != nil {
		a.respCache.InvalidateAll(r.Context())
	}
}

func (a *Admin) subjectSlugTaken(ctx context.Context, s string) (bool, error) {
	subject, err := a.catalog.GetSubjectBySlug(ctx, s)
	return subject != nil, err
}

func (a *Admin) articleSlugTaken(ctx context.Context, s string) (bool, error) {
	article, err := a.catalog.GetArticleBySlug(ctx, s)
	return article != nil, err
}
