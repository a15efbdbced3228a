// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n decides which translation of an article a reader actually
// sees. Language codes are opaque lowercase identifiers; the resolver makes
// no assumption about which or how many languages exist, beyond "en" being
// the canonical fallback every article must carry.
package i18n

import (
	"strings"

	"multilingua/internal/models"
)

// FallbackLanguage is the canonical language every article stores a full
// translation for. Resolution falls back here and nowhere else.
const FallbackLanguage = "en"

// Language describes a language offered by the site UI, including the text
// direction the presentation layer needs for right-to-left scripts.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
	RTL        bool   `json:"rtl"`
}

// Languages is the registry served to the language selector. Extending the
// site to a new language means adding an entry here and providing
// translations; no other code changes.
var Languages = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "fr", Name: "French", NativeName: "Français"},
	{Code: "es", Name: "Spanish", NativeName: "Español"},
	{Code: "ar", Name: "Arabic", NativeName: "العربية", RTL: true},
}

// Known reports whether code is in the registry.
func Known(code string) bool {
	for _, l := range Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Normalize lowercases and trims a requested language code. An empty result
// means "no preference" and resolves to the fallback.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Resolve returns the effective localized view of an article for the
// requested language: the requested translation when it is fully populated,
// otherwise the "en" translation. The choice is driven purely by the
// Translations map — AvailableLanguages plays no part. Notes and resources
// are never nil in the result so callers can render an explicit empty state.
//
// Resolve is a pure function of its inputs and always returns a copy.
func Resolve(a *models.Article, lang string) models.LocalizedContent {
	lang = Normalize(lang)
	if lc, ok := a.Translations[lang]; ok && lc.Complete() {
		return withDefaults(lc.Clone())
	}
	return withDefaults(a.Translations[FallbackLanguage].Clone())
}

// withDefaults replaces nil optional sequences with empty ones.
func withDefaults(lc models.LocalizedContent) models.LocalizedContent {
	if lc.Notes == nil {
		lc.Notes = []string{}
	}
	if lc.Resources == nil {
		lc.Resources = []string{}
	}
	return lc
}
