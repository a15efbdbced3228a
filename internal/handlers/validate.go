package handlers

import (
	"strings"
	"unicode/utf8"

	"multilingua/internal/store"
)

// Validation limits for catalog and account fields. The store enforces the
// structural rules (complete translations, required slugs); these limits
// guard against oversized payloads before they reach it.
const (
	maxNameLen     = 200
	maxSlugLen     = 300
	maxTitleLen    = 300
	maxExcerptLen  = 1_000
	maxContentLen  = 200_000
	maxEmailLen    = 320
	minPasswordLen = 8
)

// validateSubjectPayload checks subject inputs and returns the first error found.
func validateSubjectPayload(p subjectPayload) string {
	if strings.TrimSpace(p.Name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(p.Name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(p.Slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	return ""
}

// validateArticlePayload checks article size limits across every translation.
func validateArticlePayload(in store.ArticleInput) string {
	if utf8.RuneCountInString(in.Slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	for code, lc := range in.Translations {
		if utf8.RuneCountInString(lc.Title) > maxTitleLen {
			return "Title is too long in " + code + " (max 300 characters)."
		}
		if utf8.RuneCountInString(lc.Excerpt) > maxExcerptLen {
			return "Excerpt is too long in " + code + " (max 1,000 characters)."
		}
		if utf8.RuneCountInString(lc.Content) > maxContentLen {
			return "Content is too long in " + code + " (max 200,000 characters)."
		}
	}
	return ""
}

// validateCredentials checks registration inputs and returns the first error found.
func validateCredentials(email, password, displayName string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return "Email is too long."
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return "Email is not valid."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	if strings.TrimSpace(displayName) == "" {
		return "Display name is required."
	}
	if utf8.RuneCountInString(displayName) > maxNameLen {
		return "Display name is too long (max 200 characters)."
	}
	return ""
}
