// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// LocalizedContent holds the language-specific fields of an article.
// Content is markdown-flavored text; heading markers are interpreted by
// the rendering layer, not here.
type LocalizedContent struct {
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content"`
	Notes     []string `json:"notes,omitempty"`
	Resources []string `json:"resources,omitempty"`
}

// Complete reports whether the translation carries all required fields.
// Notes and resources are optional.
func (lc LocalizedContent) Complete() bool {
	return strings.TrimSpace(lc.Title) != "" &&
		strings.TrimSpace(lc.Excerpt) != "" &&
		strings.TrimSpace(lc.Content) != ""
}

// Clone returns a deep copy of the localized content.
func (lc LocalizedContent) Clone() LocalizedContent {
	c := lc
	if lc.Notes != nil {
		c.Notes = append([]string(nil), lc.Notes...)
	}
	if lc.Resources != nil {
		c.Resources = append([]string(nil), lc.Resources...)
	}
	return c
}

// Article is a single published piece of content, available in one or more
// languages. The top-level Title/Excerpt/Content always mirror the "en"
// translation; they are a denormalized duplicate kept in sync at write time
// for older API consumers.
type Article struct {
	ID          int        `json:"id"`
	Slug        string     `json:"slug"`
	SubjectID   int        `json:"subjectId"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	ImageURL    string     `json:"imageUrl"`
	ReadTime    int        `json:"readTime"`
	Author      string     `json:"author"`
	AuthorImage string     `json:"authorImage,omitempty"`
	PublishDate time.Time  `json:"publishDate"`
	Featured    bool       `json:"featured"`
	ViewCount   int        `json:"viewCount"`

	// Translations maps a language code ("en", "fr", ...) to the localized
	// fields. "en" is always present; it is the canonical fallback.
	Translations map[string]LocalizedContent `json:"translations"`

	// AvailableLanguages lists the language codes the reader UI should
	// offer for this article. It controls display affordances only; which
	// translation is served is decided by i18n.Resolve from Translations.
	AvailableLanguages []string `json:"availableLanguages"`
}

// HasLanguage reports whether code appears in AvailableLanguages.
func (a *Article) HasLanguage(code string) bool {
	for _, l := range a.AvailableLanguages {
		if l == code {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the article, so store internals are never
// shared by reference with callers.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	c := *a
	if a.Translations != nil {
		c.Translations = make(map[string]LocalizedContent, len(a.Translations))
		for code, lc := range a.Translations {
			c.Translations[code] = lc.Clone()
		}
	}
	if a.AvailableLanguages != nil {
		c.AvailableLanguages = append([]string(nil), a.AvailableLanguages...)
	}
	return &c
}
