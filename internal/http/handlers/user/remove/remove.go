// Package remove implements the admin HTTP handler for deleting an
// administrative account.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/natiberk/ministry-hub/internal/http/middlewarectx"
	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/services/user"
)

// Handler handles account deletion requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the account-management contract of the handler.
type Service interface {
	Remove(ctx context.Context, actor *models.User, uid string) error
}

// New creates a user-remove Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Delete an administrative account
// @Description System-protected accounts can never be deleted.
// @Tags Users
// @Produce json
// @Param uid path string true "Account UID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Protected account or not an account manager"
// @Failure 404 {object} response.ErrorResponse "Unknown account"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/users/{uid} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := middlewarectx.AccountFromContext(r.Context())
	if !ok {
		log.Error("acting account missing from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	uid := chi.URLParam(r, "uid")
	if err := h.service.Remove(r.Context(), actor, uid); err != nil {
		switch {
		case errors.Is(err, user.ErrForbidden):
			log.Warn("account removal denied", slog.String("uid", uid))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("permission denied"))
		case errors.Is(err, user.ErrUserNotFound):
			log.Warn("account not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
		default:
			log.Error("failed to remove account", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not remove account"))
		}
		return
	}

	log.Info("account removed", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(nil))
}
