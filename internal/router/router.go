// Package router sets up all HTTP routes and middleware chains for the
// Multilingua content API. Public reads are open; catalog mutations sit
// behind session auth, completed 2FA, the admin role, and CSRF checks.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"multilingua/internal/handlers"
	"multilingua/internal/middleware"
	"multilingua/internal/session"
)

// Options carries the handler groups and policy knobs the router needs.
type Options struct {
	Sessions *session.Store
	Public   *handlers.Public
	Auth     *handlers.Auth
	Admin    *handlers.Admin

	// SecureCookies controls the Secure attribute on the CSRF cookie.
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(opts.Sessions))

	// Liveness probe. No auth, no CSRF, no cache.
	r.Get("/health", opts.Public.Health)

	// Public content API.
	r.Get("/api/languages", opts.Public.Languages)
	r.Get("/api/subjects", opts.Public.Subjects)
	r.Get("/api/subjects/{slug}", opts.Public.SubjectBySlug)
	r.Route("/api/articles", func(r chi.Router) {
		r.Get("/", opts.Public.Articles)
		r.Get("/featured", opts.Public.FeaturedArticles)
		r.Get("/recent", opts.Public.RecentArticles)
		r.Get("/subject/{subjectID}", opts.Public.ArticlesBySubject)
		r.Get("/{slug}", opts.Public.ArticleBySlug)
		r.Get("/{slug}/view", opts.Public.ArticleView)
		r.Get("/{slug}/html", opts.Public.ArticleHTML)
	})
	r.Get("/sitemap.xml", opts.Public.Sitemap)

	csrf := middleware.NewCSRF(opts.SecureCookies)

	// Authentication. Login is rate-limited per IP to slow down credential
	// stuffing; the window is generous enough for fat-fingered passwords.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(csrf)

		r.With(loginLimiter.Middleware).Post("/login", opts.Auth.Login)
		r.With(loginLimiter.Middleware).Post("/register", opts.Auth.Register)
		r.Post("/logout", opts.Auth.Logout)

		// 2FA requires a session but not completed verification.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/2fa/setup", opts.Auth.TwoFASetup)
			r.Post("/2fa/verify", opts.Auth.TwoFAVerify)
		})
	})

	// Admin area: catalog mutations.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(csrf)

		// The check endpoint answers for any session state.
		r.Get("/check", opts.Auth.AdminCheck)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.RequireAdmin)

			r.Post("/subjects", opts.Admin.SubjectCreate)
			r.Route("/articles", func(r chi.Router) {
				r.Post("/", opts.Admin.ArticleCreate)
				r.Put("/{id}", opts.Admin.ArticleUpdate)
				r.Delete("/{id}", opts.Admin.ArticleDelete)
			})
		})
	})

	return r
}
