package handler

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ferrogaz/website/internal/middleware"
	"github.com/ferrogaz/website/web"
)

// RouterConfig carries the middleware settings the router needs beyond
// the Handler's own dependencies.
type RouterConfig struct {
	SessionSecret []byte
	UploadsDir    string
	IsDev         bool
}

// Routes builds the full HTTP router: public site, public API, and the
// session-protected dashboard API.
func (h *Handler) Routes(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDev)))
	r.Use(h.sessions.LoadAndSave)
	r.Use(middleware.SkipCSRF("/api/contact", "/api/orders", "/api/cookies/consent"))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(cfg.SessionSecret, cfg.IsDev)))
	r.Use(middleware.Language)

	r.Get("/health", h.Health)

	// Static assets and uploaded media.
	staticFS, _ := fs.Sub(web.Static, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFS)))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	// Public API.
	r.Route("/api", func(r chi.Router) {
		r.With(middleware.RateLimit(2, 5)).Post("/contact", h.SubmitContact)
		r.Post("/cookies/consent", h.SaveConsent)
		r.Get("/cookies/consent", h.GetConsent)

		loginLimiter := func(next http.Handler) http.Handler { return next }
		if h.loginGuard != nil {
			loginLimiter = h.loginGuard.Middleware()
		}
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter).Post("/login", h.Login)
			r.With(middleware.RateLimit(0.5, 3)).Post("/register", h.Register)
			r.Post("/logout", h.Logout)
			r.With(middleware.Auth(h.sessions), middleware.LoadUser(h.sessions, h.db)).Get("/me", h.Me)
		})

		// Order workflow: creation is public, management needs staff.
		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.RateLimit(1, 3)).Post("/", h.CreateOrder)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(h.sessions))
				r.Use(middleware.LoadUser(h.sessions, h.db))
				r.Use(middleware.RequireStaff)

				r.Get("/", h.ListOrders)
				r.Get("/{id}", h.GetOrder)
				r.Patch("/{id}", h.PatchOrder)
				r.Post("/{id}/cancel", h.CancelOrder)
			})
		})

		// Dashboard API.
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(middleware.Auth(h.sessions))
			r.Use(middleware.LoadUser(h.sessions, h.db))
			r.Use(middleware.RequireStaff)

			r.Get("/page-content", h.GetPageContent)
			r.Put("/page-content", h.SavePageContent)
			r.Delete("/page-content", h.DeletePageContent)

			r.Get("/media", h.ListMedia)
			r.Post("/media", h.UploadMedia)
			r.Delete("/media", h.DeleteMedia)

			r.Get("/analytics", h.GetAnalytics)
			r.Get("/contact-messages", h.ListContactMessages)
			r.With(middleware.RequireAdmin).Get("/events", h.ListEvents)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/", h.ListUsers)
				r.Post("/", h.CreateUser)
				r.Put("/{id}", h.UpdateUser)
				r.Delete("/{id}", h.DeleteUser)
			})
		})
	})

	// Public pages.
	r.Get("/", h.Page)
	r.Get("/{slug}", h.Page)

	return r
}
