// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sitemap

import (
	"context"
	"strings"
	"testing"
	"time"

	"multilingua/internal/models"
	"multilingua/internal/store"
)

func TestGenerate(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	subject, err := m.CreateSubject(ctx, store.SubjectInput{Name: "Science", Slug: "science"})
	if err != nil {
		t.Fatalf("CreateSubject: %v", err)
	}
	_, err = m.CreateArticle(ctx, store.ArticleInput{
		Slug:        "quantum-basics",
		SubjectID:   subject.ID,
		PublishDate: time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC),
		Translations: map[string]models.LocalizedContent{
			"en": {Title: "Quantum Basics", Excerpt: "E", Content: "C"},
		},
	})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}

	// Trailing slash on the base URL must not double up.
	out, err := Generate(ctx, m, "https://example.com/")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	xml := string(out)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`,
		`<loc>https://example.com/</loc>`,
		`<loc>https://example.com/subject/science</loc>`,
		`<loc>https://example.com/article/quantum-basics</loc>`,
		`<lastmod>2024-04-02</lastmod>`,
		`<changefreq>monthly</changefreq>`,
		`<priority>1.0</priority>`,
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("sitemap missing %q:\n%s", want, xml)
		}
	}

	if strings.Contains(xml, "example.com//") {
		t.Error("base URL slash not normalized")
	}
}

func TestGenerateEmptyCatalog(t *testing.T) {
	out, err := Generate(context.Background(), store.NewMemory(), "https://example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Home page is always present.
	if !strings.Contains(string(out), "<loc>https://example.com/</loc>") {
		t.Errorf("empty catalog sitemap should still list the home page:\n%s", out)
	}
}
