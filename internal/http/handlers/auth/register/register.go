// Package register implements the HTTP handler that creates administrative
// accounts. Only accounts passing the user-management middleware reach it.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
)

// Request holds the new account's fields. Permissions is keyed by resource
// name; omitted resources grant nothing.
type Request struct {
	Name        string                          `json:"name" validate:"required,min=2,max=100"`
	Email       string                          `json:"email" validate:"required,email"`
	Password    string                          `json:"password" validate:"required,min=8"`
	Role        string                          `json:"role" validate:"omitempty,oneof=superadmin admin staff"`
	Permissions map[string]models.PermissionSet `json:"permissions"`
}

// Handler handles account creation requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the account-creation contract of the handler.
type Service interface {
	Register(ctx context.Context, name, email, password, role string, permissions map[string]models.PermissionSet) (string, error)
}

// New creates a register Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Create an administrative account
// @Description Creates an account with a role and a permission table.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body Request true "New account"
// @Success 200 {object} response.Response "Created account uid"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	uid, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password, req.Role, req.Permissions)
	if err != nil {
		log.Error("failed to create account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create account"))
		return
	}

	log.Info("account created", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"uid": uid,
	}))
}
