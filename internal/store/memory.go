// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"multilingua/internal/models"
)

// Memory is a map-backed Catalog. It is the backend for tests and local
// development without PostgreSQL. IDs are monotonic per collection and
// never reused, mirroring the SQL backend's serial columns.
//
// A single RWMutex guards all state: article creation assigns an ID and
// bumps the owning subject's count as one atomic unit, so concurrent
// creates can never both read the same count before writing it back.
// Reads take the read lock and hand out copies.
type Memory struct {
	mu sync.RWMutex

	subjects     map[int]*models.Subject
	subjectOrder []int
	articles     map[int]*models.Article
	articleOrder []int

	nextSubjectID int
	nextArticleID int
}

// NewMemory returns an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{
		subjects:      make(map[int]*models.Subject),
		articles:      make(map[int]*models.Article),
		nextSubjectID: 1,
		nextArticleID: 1,
	}
}

var _ Catalog = (*Memory)(nil)

// CreateSubject stores a new subject with a zero article count.
func (m *Memory) CreateSubject(_ context.Context, in SubjectInput) (*models.Subject, error) {
	if err := validateSubjectInput(in); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.subjects {
		if s.Slug == in.Slug {
			return nil, &ConflictError{Entity: "subject", Slug: in.Slug}
		}
	}

	s := &models.Subject{
		ID:   m.nextSubjectID,
		Name: in.Name,
		Slug: in.Slug,
		Icon: in.Icon,
	}
	m.nextSubjectID++
	m.subjects[s.ID] = s
	m.subjectOrder = append(m.subjectOrder, s.ID)

	return s.Clone(), nil
}

// GetSubject returns the subject with the given ID, or nil when absent.
func (m *Memory) GetSubject(_ context.Context, id int) (*models.Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.subjects[id].Clone(), nil
}

// GetSubjectBySlug returns the subject with the given slug, or nil.
func (m *Memory) GetSubjectBySlug(_ context.Context, slug string) (*models.Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.subjectOrder {
		if m.subjects[id].Slug == slug {
			return m.subjects[id].Clone(), nil
		}
	}
	return nil, nil
}

// ListSubjects returns all subjects in insertion order.
func (m *Memory) ListSubjects(_ context.Context) ([]models.Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Subject, 0, len(m.subjectOrder))
	for _, id := range m.subjectOrder {
		out = append(out, *m.subjects[id].Clone())
	}
	return out, nil
}

// CreateArticle validates the input, stores the article, and increments the
// owning subject's article count. On any failure the store is unchanged.
func (m *Memory) CreateArticle(_ context.Context, in ArticleInput) (*models.Article, error) {
	if in.Slug == "" {
		return nil, &ValidationError{Field: "slug", Reason: "required"}
	}
	if err := validateTranslations(in.Translations, true); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	subject, ok := m.subjects[in.SubjectID]
	if !ok {
		return nil, &NotFoundError{Entity: "subject", Key: strconv.Itoa(in.SubjectID)}
	}
	for _, a := range m.articles {
		if a.Slug == in.Slug {
			return nil, &ConflictError{Entity: "article", Slug: in.Slug}
		}
	}

	publishDate := in.PublishDate
	if publishDate.IsZero() {
		publishDate = time.Now()
	}

	a := &models.Article{
		ID:                 m.nextArticleID,
		Slug:               in.Slug,
		SubjectID:          in.SubjectID,
		ImageURL:           in.ImageURL,
		ReadTime:           in.ReadTime,
		Author:             in.Author,
		AuthorImage:        in.AuthorImage,
		PublishDate:        publishDate,
		Featured:           in.Featured,
		Translations:       make(map[string]models.LocalizedContent, len(in.Translations)),
		AvailableLanguages: append([]string(nil), in.AvailableLanguages...),
	}
	for code, lc := range in.Translations {
		a.Translations[code] = lc.Clone()
	}
	syncFallbackMirror(a)
	warnLanguageDrift(a.Slug, a.AvailableLanguages, a.Translations)

	m.nextArticleID++
	m.articles[a.ID] = a
	m.articleOrder = append(m.articleOrder, a.ID)
	subject.ArticleCount++

	return a.Clone(), nil
}

// UpdateArticle merges a patch into an existing article. Touched
// translations are validated like on create. Changing SubjectID does not
// move the article counts between subjects; the counts deliberately track
// creations only.
func (m *Memory) UpdateArticle(_ context.Context, id int, patch ArticlePatch) (*models.Article, error) {
	if err := validateTranslations(patch.Translations, false); err != nil {
		return nil, err
	}
	if patch.Slug != nil && *patch.Slug == "" {
		return nil, &ValidationError{Field: "slug", Reason: "must not be empty"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.articles[id]
	if !ok {
		return nil, &NotFoundError{Entity: "article", Key: strconv.Itoa(id)}
	}

	if patch.Slug != nil && *patch.Slug != a.Slug {
		for _, other := range m.articles {
			if other.Slug == *patch.Slug {
				return nil, &ConflictError{Entity: "article", Slug: *patch.Slug}
			}
		}
		a.Slug = *patch.Slug
	}
	if patch.SubjectID != nil {
		a.SubjectID = *patch.SubjectID
	}
	if patch.ImageURL != nil {
		a.ImageURL = *patch.ImageURL
	}
	if patch.ReadTime != nil {
		a.ReadTime = *patch.ReadTime
	}
	if patch.Author != nil {
		a.Author = *patch.Author
	}
	if patch.AuthorImage != nil {
		a.AuthorImage = *patch.AuthorImage
	}
	if patch.PublishDate != nil {
		a.PublishDate = *patch.PublishDate
	}
	if patch.Featured != nil {
		a.Featured = *patch.Featured
	}
	for code, lc := range patch.Translations {
		a.Translations[code] = lc.Clone()
	}
	if patch.AvailableLanguages != nil {
		a.AvailableLanguages = append([]string(nil), patch.AvailableLanguages...)
	}
	syncFallbackMirror(a)
	warnLanguageDrift(a.Slug, a.AvailableLanguages, a.Translations)

	return a.Clone(), nil
}

// DeleteArticle removes an article. The owning subject's article count is
// not decremented; see the Subject doc comment.
func (m *Memory) DeleteArticle(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.articles[id]; !ok {
		return &NotFoundError{Entity: "article", Key: strconv.Itoa(id)}
	}
	delete(m.articles, id)
	for i, aid := range m.articleOrder {
		if aid == id {
			m.articleOrder = append(m.articleOrder[:i], m.articleOrder[i+1:]...)
			break
		}
	}
	return nil
}

// GetArticle returns the article with the given ID, or nil when absent.
func (m *Memory) GetArticle(_ context.Context, id int) (*models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.articles[id].Clone(), nil
}

// GetArticleBySlug returns the article with the given slug, or nil.
func (m *Memory) GetArticleBySlug(_ context.Context, slug string) (*models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.articleOrder {
		if m.articles[id].Slug == slug {
			return m.articles[id].Clone(), nil
		}
	}
	return nil, nil
}

// ListArticles returns all articles in insertion order.
func (m *Memory) ListArticles(_ context.Context) ([]models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(*models.Article) bool { return true }, false), nil
}

// ListFeaturedArticles returns featured articles, newest publish date first.
func (m *Memory) ListFeaturedArticles(_ context.Context) ([]models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(a *models.Article) bool { return a.Featured }, true), nil
}

// ListRecentArticles returns up to limit articles, newest publish date
// first. A limit of zero (or less) yields an empty list.
func (m *Memory) ListRecentArticles(_ context.Context, limit int) ([]models.Article, error) {
	if limit <= 0 {
		return []models.Article{}, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.collect(func(*models.Article) bool { return true }, true)
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// ListArticlesBySubject returns the subject's articles, newest first.
func (m *Memory) ListArticlesBySubject(_ context.Context, subjectID int) ([]models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(a *models.Article) bool { return a.SubjectID == subjectID }, true), nil
}

// collect copies matching articles in insertion order, optionally sorting
// by publish date descending. The sort is stable, so articles sharing a
// publish date keep their insertion order — required for deterministic
// pagination.
func (m *Memory) collect(match func(*models.Article) bool, byDate bool) []models.Article {
	out := make([]models.Article, 0, len(m.articleOrder))
	for _, id := range m.articleOrder {
		if match(m.articles[id]) {
			out = append(out, *m.articles[id].Clone())
		}
	}
	if byDate {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PublishDate.After(out[j].PublishDate)
		})
	}
	return out
}
