// Package list implements the admin HTTP handler that lists administrative
// accounts.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/natiberk/ministry-hub/internal/http/middlewarectx"
	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/services/user"
)

// Handler handles account listing requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the account-management contract of the handler.
type Service interface {
	List(ctx context.Context, actor *models.User) ([]*models.User, error)
}

// New creates a user-list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary List administrative accounts
// @Tags Users
// @Produce json
// @Success 200 {object} response.Response "Accounts without password hashes"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 403 {object} response.ErrorResponse "Not an account manager"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"

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

	users, err := h.service.List(r.Context(), actor)
	if err != nil {
		if errors.Is(err, user.ErrForbidden) {
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("permission denied"))
			return
		}
		log.Error("failed to list accounts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list accounts"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(users))
}
