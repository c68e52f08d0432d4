// Package update implements the admin HTTP handler for editing an
// administrative account's profile, role and permission table.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/natiberk/ministry-hub/internal/http/middlewarectx"
	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/services/user"
)

// Request holds the account's replacement fields. Passwords are not
// changeable through this endpoint.
type Request struct {
	Name        string                          `json:"name" validate:"required,min=2,max=100"`
	Email       string                          `json:"email" validate:"required,email"`
	Role        string                          `json:"role" validate:"required,oneof=superadmin admin staff"`
	Permissions map[string]models.PermissionSet `json:"permissions"`
}

// Handler handles account update requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the account-management contract of the handler.
type Service interface {
	Update(ctx context.Context, actor *models.User, updated models.User) error
}

// New creates a user-update Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Update an administrative account
// @Description Rewrites an account's profile, role and permission table. System-protected accounts are immutable.
// @Tags Users
// @Accept json
// @Produce json
// @Param uid path string true "Account UID"
// @Param request body Request true "Replacement fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 403 {object} response.ErrorResponse "Protected account or not an account manager"
// @Failure 404 {object} response.ErrorResponse "Unknown account"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/users/{uid} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	uid := chi.URLParam(r, "uid")
	err := h.service.Update(r.Context(), actor, models.User{
		UID:         uid,
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		Permissions: req.Permissions,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrForbidden):
			log.Warn("account update denied", slog.String("uid", uid))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("permission denied"))
		case errors.Is(err, user.ErrUserNotFound):
			log.Warn("account not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
		default:
			log.Error("failed to update account", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update account"))
		}
		return
	}

	log.Info("account updated", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(nil))
}
