package ministryhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	loginhandler "github.com/natiberk/ministry-hub/internal/http/handlers/auth/login"
	logouthandler "github.com/natiberk/ministry-hub/internal/http/handlers/auth/logout"
	registerhandler "github.com/natiberk/ministry-hub/internal/http/handlers/auth/register"
	eventcreate "github.com/natiberk/ministry-hub/internal/http/handlers/event/create"
	eventlist "github.com/natiberk/ministry-hub/internal/http/handlers/event/list"
	eventread "github.com/natiberk/ministry-hub/internal/http/handlers/event/read"
	eventremove "github.com/natiberk/ministry-hub/internal/http/handlers/event/remove"
	eventupdate "github.com/natiberk/ministry-hub/internal/http/handlers/event/update"
	healthhandler "github.com/natiberk/ministry-hub/internal/http/handlers/health"
	materialcreate "github.com/natiberk/ministry-hub/internal/http/handlers/material/create"
	materiallist "github.com/natiberk/ministry-hub/internal/http/handlers/material/list"
	materialremove "github.com/natiberk/ministry-hub/internal/http/handlers/material/remove"
	materialupdate "github.com/natiberk/ministry-hub/internal/http/handlers/material/update"
	newslettercreate "github.com/natiberk/ministry-hub/internal/http/handlers/newsletter/create"
	newsletterlist "github.com/natiberk/ministry-hub/internal/http/handlers/newsletter/list"
	newsletterremove "github.com/natiberk/ministry-hub/internal/http/handlers/newsletter/remove"
	newslettersend "github.com/natiberk/ministry-hub/internal/http/handlers/newsletter/send"
	paymentcallback "github.com/natiberk/ministry-hub/internal/http/handlers/payment/callback"
	registrationcreate "github.com/natiberk/ministry-hub/internal/http/handlers/registration/create"
	registrationlist "github.com/natiberk/ministry-hub/internal/http/handlers/registration/list"
	registrationreceipt "github.com/natiberk/ministry-hub/internal/http/handlers/registration/receipt"
	subscribercreate "github.com/natiberk/ministry-hub/internal/http/handlers/subscriber/create"
	subscriberlist "github.com/natiberk/ministry-hub/internal/http/handlers/subscriber/list"
	subscriberremove "github.com/natiberk/ministry-hub/internal/http/handlers/subscriber/remove"
	userlist "github.com/natiberk/ministry-hub/internal/http/handlers/user/list"
	userremove "github.com/natiberk/ministry-hub/internal/http/handlers/user/remove"
	userupdate "github.com/natiberk/ministry-hub/internal/http/handlers/user/update"
	"github.com/natiberk/ministry-hub/internal/http/middlewarectx"
	"github.com/natiberk/ministry-hub/internal/policy"
)

// registerRoutes wires every handler into the router. Public endpoints sit
// outside the session group; everything under /admin requires a valid
// session plus the matching permission bit.
func (a *App) registerRoutes(r chi.Router, logger *slog.Logger) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	registerLimiter := rate.NewLimiter(rate.Limit(5), 20)

	r.Route("/api/v1", func(r chi.Router) {
		// Public surface
		r.Get("/events", eventlist.New(logger, a.eventService).ServeHTTP)
		r.Get("/events/{id}", eventread.New(logger, a.eventService).ServeHTTP)
		r.Get("/materials", materiallist.New(logger, a.materialService).ServeHTTP)
		r.Post("/subscribers", subscribercreate.New(logger, a.newsletterService).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(registerLimiter, logger))
			r.Post("/events/{id}/register", registrationcreate.New(logger, a.registrationService).ServeHTTP)
		})

		r.Get("/payments/callback", paymentcallback.New(logger, a.registrationService, a.cfg.ThankYouURL).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(a.jwtMaker, logger))
			r.Get("/registrations/{id}/receipt", registrationreceipt.New(logger, a.registrationService, a.authService, a.receiptGenerator).ServeHTTP)
		})

		// Session management
		r.Post("/auth/login", loginhandler.New(logger, a.authService, a.cfg.CookieTTL, a.cfg.CookieSecure).ServeHTTP)
		r.Post("/auth/logout", logouthandler.New(logger, a.cfg.CookieSecure).ServeHTTP)

		// Admin surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(a.jwtMaker, logger))

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(a.authService, policy.ResourceEvents, policy.ActionCreate, logger))
				r.Post("/events", eventcreate.New(logger, a.eventService).ServeHTTP)
			})
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(a.authService, policy.ResourceEvents, policy.ActionUpdate, logger))
				r.Put("/events/{id}", eventupdate.New(logger, a.eventService).ServeHTTP)
			})
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(a.authService, policy.ResourceEvents, policy.ActionDelete, logger))
				r.Delete("/events/{id}", eventremove.New(logger, a.eventService).ServeHTTP)
			})
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(a.authService, policy.ResourceEvents, policy.ActionRead, logger))
				r.Get("/events/{id}/registrations", registrationlist.New(logger, a.registrationService).ServeHTTP)
			})

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(a.authService, policy.ResourceMaterials, policy.ActionCreate, logger))
				r.Post("/materials", materialcreate.New(logger, a.materialService).ServeHTTP)
			})
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(a.authService, policy.ResourceMaterials, policy.ActionUpdate, logger))
				r.Put("/materials/{id}", materialupdate.New(logger, a.materialService).ServeHTTP)
			})
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(a.authService, policy.ResourceMaterials, policy.ActionDelete, logger))
				r.Delete("/materials/{id}", materialremove.New(logger, a.materialService).ServeHTTP)
			})

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(a.authService, policy.ResourceNewsletter, policy.ActionCreate, logger))
				r.Post("/newsletters", newslettercreate.New(logger, a.newsletterService).ServeHTTP)
			})
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(a.authService, policy.ResourceNewsletter, policy.ActionRead, logger))
				r.Get("/newsletters", newsletterlist.New(logger, a.newsletterService).ServeHTTP)
				r.Get("/subscribers", subscriberlist.New(logger, a.newsletterService).ServeHTTP)
			})
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(a.authService, policy.ResourceNewsletter, policy.ActionDelete, logger))
				r.Delete("/newsletters/{id}", newsletterremove.New(logger, a.newsletterService).ServeHTTP)
				r.Delete("/subscribers/{id}", subscriberremove.New(logger, a.newsletterService).ServeHTTP)
			})
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(a.authService, policy.ResourceEmails, policy.ActionCreate, logger))
				r.Post("/newsletters/{id}/send", newslettersend.New(logger, a.newsletterService).ServeHTTP)
			})

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireUserManager(a.authService, logger))
				r.Post("/users", registerhandler.New(logger, a.authService).ServeHTTP)
				r.Get("/users", userlist.New(logger, a.userService).ServeHTTP)
				r.Put("/users/{uid}", userupdate.New(logger, a.userService).ServeHTTP)
				r.Delete("/users/{uid}", userremove.New(logger, a.userService).ServeHTTP)
			})
		})
	})

	r.Get("/health", healthhandler.New(logger, a.db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
