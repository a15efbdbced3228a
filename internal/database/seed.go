package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"multilingua/internal/models"
)

// Seed populates the database with initial development data: a default
// admin account, the subject catalog, and a handful of multilingual
// articles. It is a no-op when users already exist.
//
// Articles are inserted with raw SQL rather than through the catalog store
// so this package stays free of a dependency on internal/store; subject
// article counts are recomputed in one statement at the end.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Default admin. 2FA is not enabled — they must set it up on first login.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@multilingua.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	for _, s := range seedSubjects {
		_, err := db.Exec(`
			INSERT INTO subjects (name, slug, icon) VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO NOTHING
		`, s.Name, s.Slug, s.Icon)
		if err != nil {
			return fmt.Errorf("seed subject %s: %w", s.Slug, err)
		}
	}

	for _, a := range seedArticles {
		translations, err := json.Marshal(a.Translations)
		if err != nil {
			return fmt.Errorf("seed article %s: %w", a.Slug, err)
		}
		languages, err := json.Marshal(a.AvailableLanguages)
		if err != nil {
			return fmt.Errorf("seed article %s: %w", a.Slug, err)
		}
		en := a.Translations["en"]
		_, err = db.Exec(`
			INSERT INTO articles (slug, subject_id, title, excerpt, content, image_url,
			                      read_time, author, author_image, publish_date, featured,
			                      translations, available_languages)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (slug) DO NOTHING
		`, a.Slug, a.SubjectID, en.Title, en.Excerpt, en.Content, a.ImageURL,
			a.ReadTime, a.Author, a.AuthorImage, a.PublishDate, a.Featured,
			translations, languages)
		if err != nil {
			return fmt.Errorf("seed article %s: %w", a.Slug, err)
		}
	}

	// Bring the derived counts in line with the rows just inserted.
	_, err = db.Exec(`
		UPDATE subjects SET article_count =
			(SELECT COUNT(*) FROM articles WHERE articles.subject_id = subjects.id)
	`)
	if err != nil {
		return fmt.Errorf("seed recount: %w", err)
	}

	slog.Info("database seeded",
		"admin", "admin@multilingua.local",
		"subjects", len(seedSubjects),
		"articles", len(seedArticles),
	)
	return nil
}

var seedSubjects = []models.Subject{
	{Name: "Technology", Slug: "technology", Icon: "ri-computer-line"},
	{Name: "Science", Slug: "science", Icon: "ri-flask-line"},
	{Name: "Environment", Slug: "environment", Icon: "ri-plant-line"},
	{Name: "Health", Slug: "health", Icon: "ri-heart-pulse-line"},
	{Name: "Arts & Culture", Slug: "arts-culture", Icon: "ri-palette-line"},
	{Name: "Travel", Slug: "travel", Icon: "ri-plane-line"},
}

var seedArticles = []models.Article{
	{
		Slug:        "rise-quantum-computing",
		SubjectID:   1,
		ImageURL:    "https://images.unsplash.com/photo-1635070041078-e363dbe005cb?w=800&h=500",
		ReadTime:    8,
		Author:      "Dr. Michael Chen",
		AuthorImage: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200&h=200",
		PublishDate: time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC),
		Featured:    true,
		Translations: map[string]models.LocalizedContent{
			"en": {
				Title:   "The Rise of Quantum Computing",
				Excerpt: "Explore the revolutionary potential of quantum computers and how they're reshaping our technological landscape.",
				Content: "# Introduction\nQuantum computing represents a fundamental shift in how we process information. Unlike classical computers that use bits, quantum computers leverage qubits that can exist in multiple states simultaneously.\n\n# Why It Matters\nProblems that are intractable for classical machines, from molecular simulation to optimization, become reachable.",
				Notes: []string{
					"Quantum computers use qubits instead of classical bits",
					"Can solve complex problems exponentially faster",
				},
				Resources: []string{
					"Introduction to Quantum Computing",
					"Latest Quantum Breakthroughs",
				},
			},
			"es": {
				Title:   "El Auge de la Computación Cuántica",
				Excerpt: "Explora el potencial revolucionario de las computadoras cuánticas y cómo están remodelando nuestro panorama tecnológico.",
				Content: "# Introducción\nLa computación cuántica representa un cambio fundamental en cómo procesamos la información.",
				Notes: []string{
					"Las computadoras cuánticas usan qubits en lugar de bits clásicos",
				},
				Resources: []string{"Introducción a la Computación Cuántica"},
			},
			"fr": {
				Title:   "L'Essor de l'Informatique Quantique",
				Excerpt: "Découvrez le potentiel révolutionnaire des ordinateurs quantiques et comment ils transforment notre paysage technologique.",
				Content: "# Introduction\nL'informatique quantique représente un changement fondamental dans notre façon de traiter l'information.",
				Notes: []string{
					"Les ordinateurs quantiques utilisent des qubits au lieu de bits classiques",
				},
				Resources: []string{"Introduction à l'Informatique Quantique"},
			},
			"ar": {
				Title:   "صعود الحوسبة الكمية",
				Excerpt: "اكتشف الإمكانات الثورية للحواسيب الكمية وكيف تعيد تشكيل مشهدنا التكنولوجي.",
				Content: "# مقدمة\nتمثل الحوسبة الكمية تحولاً أساسياً في كيفية معالجتنا للمعلومات.",
				Notes: []string{
					"تستخدم الحواسيب الكمية الكيوبتات بدلاً من البتات التقليدية",
				},
				Resources: []string{"مقدمة في الحوسبة الكمية"},
			},
		},
		AvailableLanguages: []string{"en", "es", "fr", "ar"},
	},
	{
		Slug:        "complete-guide-machine-learning",
		SubjectID:   1,
		ImageURL:    "https://images.unsplash.com/photo-1519389950473-47a0478938c6?w=800&h=500",
		ReadTime:    10,
		Author:      "AI Insights Team",
		AuthorImage: "https://images.unsplash.com/photo-1544005313-94ddf02864ca?w=200&h=200",
		PublishDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		Featured:    true,
		Translations: map[string]models.LocalizedContent{
			"en": {
				Title:   "The Complete Guide to Machine Learning",
				Excerpt: "Explore the fundamentals of machine learning, from basic concepts to advanced applications.",
				Content: "# Introduction\nMachine learning is revolutionizing how we solve complex problems.\n\n# Basic Concepts\nKey areas include:\n- Supervised Learning\n- Unsupervised Learning\n- Reinforcement Learning\n\n## Supervised Learning\nAlgorithms learn from labeled data to make predictions about new, unseen data.",
				Notes: []string{
					"Machine learning requires quality data",
					"Choose algorithms based on your problem",
				},
				Resources: []string{"Machine Learning Basics", "Ethics in AI"},
			},
		},
		AvailableLanguages: []string{"en"},
	},
	{
		Slug:        "understanding-sleep-cycles",
		SubjectID:   4,
		ImageURL:    "https://images.unsplash.com/photo-1541199249251-f713e6145474?w=800&h=500",
		ReadTime:    8,
		Author:      "Dr. Sarah Chen",
		AuthorImage: "https://images.unsplash.com/photo-1559839734-2b71ea197ec2?w=200&h=200",
		PublishDate: time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC),
		Featured:    true,
		Translations: map[string]models.LocalizedContent{
			"en": {
				Title:   "Understanding Sleep Cycles",
				Excerpt: "Learn about the different stages of sleep and how they affect your overall health and well-being.",
				Content: "# Introduction\nSleep is essential for our physical and mental health.\n\n# The Stages of Sleep\nThe main stages are N1, N2, N3 (deep sleep), and REM sleep.\n\n# Tips for Better Sleep\n1. Maintain a consistent sleep schedule\n2. Create a relaxing bedtime routine",
				Notes: []string{
					"Sleep cycles typically last 90-120 minutes",
					"Adults need 7-9 hours of sleep per night",
				},
				Resources: []string{"National Sleep Foundation Guidelines"},
			},
			"ar": {
				Title:   "فهم دورات النوم",
				Excerpt: "تعرف على المراحل المختلفة للنوم وكيف تؤثر على صحتك العامة ورفاهيتك.",
				Content: "# مقدمة\nالنوم ضروري لصحتنا الجسدية والعقلية.\n\n# مراحل النوم\nالمراحل الرئيسية هي N1 و N2 و N3 ونوم حركة العين السريعة.",
				Notes: []string{
					"تستغرق دورات النوم عادة 90-120 دقيقة",
				},
				Resources: []string{"إرشادات المؤسسة الوطنية للنوم"},
			},
		},
		AvailableLanguages: []string{"en", "ar"},
	},
	{
		Slug:        "ocean-conservation-efforts",
		SubjectID:   3,
		ImageURL:    "https://images.unsplash.com/photo-1439405326854-014607f694d7?w=800&h=500",
		ReadTime:    6,
		Author:      "Elena Rodríguez",
		PublishDate: time.Date(2024, 2, 8, 0, 0, 0, 0, time.UTC),
		Translations: map[string]models.LocalizedContent{
			"en": {
				Title:   "Ocean Conservation Efforts Around the World",
				Excerpt: "How coastal communities and researchers are working to protect marine ecosystems.",
				Content: "# A Shared Resource\nOceans regulate our climate and feed billions of people, yet they face mounting pressure from warming, overfishing, and pollution.\n\n# What Is Working\nMarine protected areas and community-led fisheries management show measurable recovery.",
			},
			"fr": {
				Title:   "Les Efforts de Conservation des Océans dans le Monde",
				Excerpt: "Comment les communautés côtières et les chercheurs protègent les écosystèmes marins.",
				Content: "# Une Ressource Partagée\nLes océans régulent notre climat et nourrissent des milliards de personnes.",
			},
		},
		AvailableLanguages: []string{"en", "fr"},
	},
}
