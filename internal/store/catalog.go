// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the content catalog: subjects, articles and their
// translations. Two backends implement the same Catalog interface — an
// in-memory one used by tests and a PostgreSQL one used in production —
// so handlers never know which they are talking to.
package store

import (
	"context"
	"log/slog"
	"time"

	"multilingua/internal/i18n"
	"multilingua/internal/models"
)

// DefaultRecentLimit is used by ListRecentArticles when the caller does not
// supply a limit.
const DefaultRecentLimit = 5

// SubjectInput carries the fields needed to create a subject.
type SubjectInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
}

// ArticleInput carries the fields needed to create an article. PublishDate
// defaults to the current time when zero. Translations must include a
// complete "en" entry.
type ArticleInput struct {
	Slug               string                              `json:"slug"`
	SubjectID          int                                 `json:"subjectId"`
	ImageURL           string                              `json:"imageUrl"`
	ReadTime           int                                 `json:"readTime"`
	Author             string                              `json:"author"`
	AuthorImage        string                              `json:"authorImage"`
	PublishDate        time.Time                           `json:"publishDate"`
	Featured           bool                                `json:"featured"`
	Translations       map[string]models.LocalizedContent  `json:"translations"`
	AvailableLanguages []string                            `json:"availableLanguages"`
}

// ArticlePatch carries a partial update. Nil pointer fields are left
// untouched. Translations are merged per language code; AvailableLanguages
// replaces the stored sequence when non-nil.
type ArticlePatch struct {
	Slug               *string                             `json:"slug"`
	SubjectID          *int                                `json:"subjectId"`
	ImageURL           *string                             `json:"imageUrl"`
	ReadTime           *int                                `json:"readTime"`
	Author             *string                             `json:"author"`
	AuthorImage        *string                             `json:"authorImage"`
	PublishDate        *time.Time                          `json:"publishDate"`
	Featured           *bool                               `json:"featured"`
	Translations       map[string]models.LocalizedContent  `json:"translations"`
	AvailableLanguages []string                            `json:"availableLanguages"`
}

// Catalog is the storage boundary for all subject and article operations.
//
// Reads signal absence with a (nil, nil) return; writes against missing
// targets fail with a *NotFoundError. All returned entities are copies —
// mutating them never affects stored state.
type Catalog interface {
	CreateSubject(ctx context.Context, in SubjectInput) (*models.Subject, error)
	GetSubject(ctx context.Context, id int) (*models.Subject, error)
	GetSubjectBySlug(ctx context.Context, slug string) (*models.Subject, error)
	ListSubjects(ctx context.Context) ([]models.Subject, error)

	CreateArticle(ctx context.Context, in ArticleInput) (*models.Article, error)
	UpdateArticle(ctx context.Context, id int, patch ArticlePatch) (*models.Article, error)
	DeleteArticle(ctx context.Context, id int) error
	GetArticle(ctx context.Context, id int) (*models.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
	ListArticles(ctx context.Context) ([]models.Article, error)
	ListFeaturedArticles(ctx context.Context) ([]models.Article, error)
	ListRecentArticles(ctx context.Context, limit int) ([]models.Article, error)
	ListArticlesBySubject(ctx context.Context, subjectID int) ([]models.Article, error)
}

// validateSubjectInput checks required subject fields.
func validateSubjectInput(in SubjectInput) error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if in.Slug == "" {
		return &ValidationError{Field: "slug", Reason: "required"}
	}
	return nil
}

// validateTranslations rejects incomplete localized entries. Every provided
// translation must carry title, excerpt, and content; requireFallback
// additionally demands a complete "en" entry (create path — updates may
// patch a single language).
func validateTranslations(translations map[string]models.LocalizedContent, requireFallback bool) error {
	if requireFallback {
		lc, ok := translations[i18n.FallbackLanguage]
		if !ok {
			return &ValidationError{
				Field:  "translations." + i18n.FallbackLanguage,
				Reason: "required",
			}
		}
		if !lc.Complete() {
			return &ValidationError{
				Field:  "translations." + i18n.FallbackLanguage,
				Reason: "title, excerpt, and content must be non-empty",
			}
		}
	}
	for code, lc := range translations {
		if code == "" {
			return &ValidationError{Field: "translations", Reason: "empty language code"}
		}
		if !lc.Complete() {
			return &ValidationError{
				Field:  "translations." + code,
				Reason: "title, excerpt, and content must be non-empty",
			}
		}
	}
	return nil
}

// warnLanguageDrift logs when AvailableLanguages names a code with no
// stored translation. The historical dataset contains such drift, so this
// is a data-quality warning, not a rejection: the display list and the
// resolvable set are allowed to diverge.
func warnLanguageDrift(slug string, available []string, translations map[string]models.LocalizedContent) {
	for _, code := range available {
		if _, ok := translations[code]; !ok {
			slog.Warn("available language has no translation",
				"slug", slug,
				"language", code,
			)
		}
	}
}

// syncFallbackMirror copies the "en" translation into the denormalized
// top-level fields.
func syncFallbackMirror(a *models.Article) {
	if lc, ok := a.Translations[i18n.FallbackLanguage]; ok {
		a.Title = lc.Title
		a.Excerpt = lc.Excerpt
		a.Content = lc.Content
	}
}
