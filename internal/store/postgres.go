// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"multilingua/internal/models"
)

// Postgres is the production Catalog backed by PostgreSQL. Translations and
// the available-language list are stored as jsonb alongside the scalar
// columns; IDs come from serial primary keys.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a PostgreSQL-backed catalog on the given connection.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

var _ Catalog = (*Postgres)(nil)

const subjectColumns = `id, name, slug, icon, article_count`

const articleColumns = `id, slug, subject_id, title, excerpt, content, image_url,
	read_time, author, author_image, publish_date, featured, view_count,
	translations, available_languages`

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// scanSubject scans a row into a Subject.
func scanSubject(scanner interface{ Scan(...any) error }) (*models.Subject, error) {
	var s models.Subject
	err := scanner.Scan(&s.ID, &s.Name, &s.Slug, &s.Icon, &s.ArticleCount)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// scanArticle scans a row into an Article, decoding the jsonb columns.
func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	var translations, languages []byte
	err := scanner.Scan(
		&a.ID, &a.Slug, &a.SubjectID, &a.Title, &a.Excerpt, &a.Content,
		&a.ImageURL, &a.ReadTime, &a.Author, &a.AuthorImage, &a.PublishDate,
		&a.Featured, &a.ViewCount, &translations, &languages,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(translations, &a.Translations); err != nil {
		return nil, fmt.Errorf("decode translations: %w", err)
	}
	if err := json.Unmarshal(languages, &a.AvailableLanguages); err != nil {
		return nil, fmt.Errorf("decode available_languages: %w", err)
	}
	return &a, nil
}

// encodeArticleJSON marshals the jsonb columns of an article.
func encodeArticleJSON(a *models.Article) (translations, languages []byte, err error) {
	translations, err = json.Marshal(a.Translations)
	if err != nil {
		return nil, nil, fmt.Errorf("encode translations: %w", err)
	}
	langs := a.AvailableLanguages
	if langs == nil {
		langs = []string{}
	}
	languages, err = json.Marshal(langs)
	if err != nil {
		return nil, nil, fmt.Errorf("encode available_languages: %w", err)
	}
	return translations, languages, nil
}

// CreateSubject inserts a new subject with a zero article count.
func (p *Postgres) CreateSubject(ctx context.Context, in SubjectInput) (*models.Subject, error) {
	if err := validateSubjectInput(in); err != nil {
		return nil, err
	}

	row := p.db.QueryRowContext(ctx, `
		INSERT INTO subjects (name, slug, icon)
		VALUES ($1, $2, $3)
		RETURNING `+subjectColumns,
		in.Name, in.Slug, in.Icon,
	)
	s, err := scanSubject(row)
	if isUniqueViolation(err) {
		return nil, &ConflictError{Entity: "subject", Slug: in.Slug}
	}
	if err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return s, nil
}

// GetSubject retrieves a subject by ID. Returns nil if not found.
func (p *Postgres) GetSubject(ctx context.Context, id int) (*models.Subject, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id)
	s, err := scanSubject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	return s, nil
}

// GetSubjectBySlug retrieves a subject by slug. Returns nil if not found.
func (p *Postgres) GetSubjectBySlug(ctx context.Context, slug string) (*models.Subject, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE slug = $1`, slug)
	s, err := scanSubject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subject by slug: %w", err)
	}
	return s, nil
}

// ListSubjects returns all subjects in creation order.
func (p *Postgres) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+subjectColumns+` FROM subjects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	out := []models.Subject{}
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// CreateArticle inserts an article and bumps the owning subject's article
// count inside a single transaction, so either both happen or neither.
func (p *Postgres) CreateArticle(ctx context.Context, in ArticleInput) (*models.Article, error) {
	if in.Slug == "" {
		return nil, &ValidationError{Field: "slug", Reason: "required"}
	}
	if err := validateTranslations(in.Translations, true); err != nil {
		return nil, err
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create article: begin tx: %w", err)
	}
	defer tx.Rollback()

	// Lock the subject row so the count increment below is serialized with
	// concurrent creates against the same subject.
	var subjectID int
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM subjects WHERE id = $1 FOR UPDATE`, in.SubjectID,
	).Scan(&subjectID)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Entity: "subject", Key: strconv.Itoa(in.SubjectID)}
	}
	if err != nil {
		return nil, fmt.Errorf("create article: lock subject: %w", err)
	}

	publishDate := in.PublishDate
	if publishDate.IsZero() {
		publishDate = time.Now()
	}

	a := &models.Article{
		Slug:               in.Slug,
		SubjectID:          in.SubjectID,
		ImageURL:           in.ImageURL,
		ReadTime:           in.ReadTime,
		Author:             in.Author,
		AuthorImage:        in.AuthorImage,
		PublishDate:        publishDate,
		Featured:           in.Featured,
		Translations:       in.Translations,
		AvailableLanguages: in.AvailableLanguages,
	}
	syncFallbackMirror(a)
	warnLanguageDrift(a.Slug, a.AvailableLanguages, a.Translations)

	translations, languages, err := encodeArticleJSON(a)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO articles (slug, subject_id, title, excerpt, content, image_url,
		                      read_time, author, author_image, publish_date, featured,
		                      translations, available_languages)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+articleColumns,
		a.Slug, a.SubjectID, a.Title, a.Excerpt, a.Content, a.ImageURL,
		a.ReadTime, a.Author, a.AuthorImage, a.PublishDate, a.Featured,
		translations, languages,
	)
	created, err := scanArticle(row)
	if isUniqueViolation(err) {
		return nil, &ConflictError{Entity: "article", Slug: a.Slug}
	}
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE subjects SET article_count = article_count + 1 WHERE id = $1`, a.SubjectID,
	); err != nil {
		return nil, fmt.Errorf("create article: bump count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create article: commit: %w", err)
	}
	return created, nil
}

// UpdateArticle merges a patch into an existing article. Subject article
// counts are left alone even when SubjectID changes; they track creations
// only.
func (p *Postgres) UpdateArticle(ctx context.Context, id int, patch ArticlePatch) (*models.Article, error) {
	if err := validateTranslations(patch.Translations, false); err != nil {
		return nil, err
	}
	if patch.Slug != nil && *patch.Slug == "" {
		return nil, &ValidationError{Field: "slug", Reason: "must not be empty"}
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update article: begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1 FOR UPDATE`, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Entity: "article", Key: strconv.Itoa(id)}
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	if patch.Slug != nil {
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
		a.Translations[code] = lc
	}
	if patch.AvailableLanguages != nil {
		a.AvailableLanguages = patch.AvailableLanguages
	}
	syncFallbackMirror(a)
	warnLanguageDrift(a.Slug, a.AvailableLanguages, a.Translations)

	translations, languages, err := encodeArticleJSON(a)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE articles SET
			slug = $1, subject_id = $2, title = $3, excerpt = $4, content = $5,
			image_url = $6, read_time = $7, author = $8, author_image = $9,
			publish_date = $10, featured = $11, translations = $12,
			available_languages = $13
		WHERE id = $14
	`, a.Slug, a.SubjectID, a.Title, a.Excerpt, a.Content, a.ImageURL,
		a.ReadTime, a.Author, a.AuthorImage, a.PublishDate, a.Featured,
		translations, languages, id,
	)
	if isUniqueViolation(err) {
		return nil, &ConflictError{Entity: "article", Slug: a.Slug}
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update article: commit: %w", err)
	}
	return a, nil
}

// DeleteArticle removes an article by ID. Subject counts are not touched.
func (p *Postgres) DeleteArticle(ctx context.Context, id int) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "article", Key: strconv.Itoa(id)}
	}
	return nil
}

// GetArticle retrieves an article by ID. Returns nil if not found.
func (p *Postgres) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// GetArticleBySlug retrieves an article by slug. Returns nil if not found.
func (p *Postgres) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE slug = $1`, slug)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article by slug: %w", err)
	}
	return a, nil
}

// ListArticles returns all articles in creation order.
func (p *Postgres) ListArticles(ctx context.Context) ([]models.Article, error) {
	return p.queryArticles(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY id`)
}

// ListFeaturedArticles returns featured articles, newest publish date
// first. Ties are broken by creation order.
func (p *Postgres) ListFeaturedArticles(ctx context.Context) ([]models.Article, error) {
	return p.queryArticles(ctx, `
		SELECT `+articleColumns+` FROM articles
		WHERE featured
		ORDER BY publish_date DESC, id`)
}

// ListRecentArticles returns up to limit articles, newest first.
func (p *Postgres) ListRecentArticles(ctx context.Context, limit int) ([]models.Article, error) {
	if limit <= 0 {
		return []models.Article{}, nil
	}
	return p.queryArticles(ctx, `
		SELECT `+articleColumns+` FROM articles
		ORDER BY publish_date DESC, id
		LIMIT $1`, limit)
}

// ListArticlesBySubject returns the subject's articles, newest first.
func (p *Postgres) ListArticlesBySubject(ctx context.Context, subjectID int) ([]models.Article, error) {
	return p.queryArticles(ctx, `
		SELECT `+articleColumns+` FROM articles
		WHERE subject_id = $1
		ORDER BY publish_date DESC, id`, subjectID)
}

// queryArticles runs an article SELECT and scans all rows.
func (p *Postgres) queryArticles(ctx context.Context, query string, args ...any) ([]models.Article, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	out := []models.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}
