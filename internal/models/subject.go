// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Subject is a top-level content category grouping articles, e.g.
// "Technology" or "Science". Identified by a numeric ID internally and by
// a unique slug in URLs.
type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`

	// ArticleCount is maintained by the catalog store: it is incremented
	// when an article is created under this subject and never decremented,
	// matching the historical behavior of the production dataset.
	ArticleCount int `json:"articleCount"`
}

// Clone returns an independent copy of the subject.
func (s *Subject) Clone() *Subject {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
