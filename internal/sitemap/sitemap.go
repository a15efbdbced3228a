// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sitemap renders the sitemap.xml for the public site: the home
// page, one URL per subject, and one URL per article. The handler layer
// caches the output in Valkey, so generation reads straight from the
// catalog every time it runs.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"multilingua/internal/store"
)

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []entry  `xml:"url"`
}

type entry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Generate renders the complete sitemap XML document.
func Generate(ctx context.Context, catalog store.Catalog, baseURL string) ([]byte, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	today := time.Now().UTC().Format("2006-01-02")

	set := urlset{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []entry{
			{Loc: baseURL + "/", LastMod: today, ChangeFreq: "daily", Priority: "1.0"},
		},
	}

	subjects, err := catalog.ListSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap subjects: %w", err)
	}
	for _, s := range subjects {
		set.URLs = append(set.URLs, entry{
			Loc:        baseURL + "/subject/" + s.Slug,
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	articles, err := catalog.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap articles: %w", err)
	}
	for _, a := range articles {
		set.URLs = append(set.URLs, entry{
			Loc:        baseURL + "/article/" + a.Slug,
			LastMod:    a.PublishDate.UTC().Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap marshal: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
