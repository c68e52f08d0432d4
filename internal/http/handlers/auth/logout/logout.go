// Package logout implements the HTTP handler that ends an admin session by
// expiring the session cookie.
package logout

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/natiberk/ministry-hub/internal/http/middlewarectx"
	"github.com/natiberk/ministry-hub/internal/http/response"
)

// Handler handles sign-out requests.
type Handler struct {
	log          *slog.Logger
	cookieSecure bool
}

// New creates a logout Handler.
func New(log *slog.Logger, cookieSecure bool) *Handler {
	return &Handler{log: log, cookieSecure: cookieSecure}
}

// ServeHTTP godoc
// @Summary Sign out of the admin panel
// @Description Expires the session cookie. Stateless on the server side.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("session ended")
	render.JSON(w, r, response.StatusOKWithData(nil))
}
