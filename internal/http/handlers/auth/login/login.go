// Package login implements the HTTP handler for admin sign-in.
//
// On success the session token is set as an HTTP-only cookie; the response
// body carries the account's public fields.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/natiberk/ministry-hub/internal/http/middlewarectx"
	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/services/auth"
)

// Request holds the sign-in credentials.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Handler handles sign-in requests.
type Handler struct {
	log          *slog.Logger
	service      Service
	validate     *validator.Validate
	cookieTTL    time.Duration
	cookieSecure bool
}

// Service is the authentication contract of the handler.
type Service interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// New creates a login Handler. cookieTTL bounds the session cookie's
// lifetime; cookieSecure must be true everywhere except local development.
func New(log *slog.Logger, service Service, cookieTTL time.Duration, cookieSecure bool) *Handler {
	return &Handler{
		log:          log,
		service:      service,
		validate:     validator.New(),
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

// ServeHTTP godoc
// @Summary Sign in to the admin panel
// @Description Checks the credentials and sets the session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Credentials"
// @Success 200 {object} response.Response "Authenticated account"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 401 {object} response.ErrorResponse "Wrong e-mail or password"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("invalid credentials", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid email or password"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieTTL),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("login success", slog.String("uid", user.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"uid":   user.UID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}))
}
