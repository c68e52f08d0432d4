// Package create implements the public HTTP handler for event
// registration. Paid events answer with the gateway checkout URL the
// client must redirect to; free events settle immediately.
package create

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

	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/services/registration"
)

// Request holds the submitted registration form. Answers is keyed by the
// event's form field labels.
type Request struct {
	Answers map[string]string `json:"answers" validate:"required"`
	IsGuest bool              `json:"is_guest"`
	Email   string            `json:"email" validate:"required,email"`
	Amount  float64           `json:"amount" validate:"omitempty,gte=0"`
}

// Handler handles registration requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the registration business-logic contract of the handler.
type Service interface {
	Register(ctx context.Context, req registration.RegisterRequest) (*registration.RegisterResult, error)
}

// New creates a registration Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Register for an event
// @Description Validates the form answers and creates a registration. For paid events the response carries the checkout URL.
// @Tags Registrations
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body Request true "Form answers"
// @Success 200 {object} response.Response "Registration id and optional checkout URL"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON or missing required fields"
// @Failure 404 {object} response.ErrorResponse "Unknown event"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Payment gateway unavailable"
// @Router /events/{id}/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.registration.create"

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

	eventID := chi.URLParam(r, "id")
	res, err := h.service.Register(r.Context(), registration.RegisterRequest{
		EventID: eventID,
		Answers: req.Answers,
		IsGuest: req.IsGuest,
		Email:   req.Email,
		Amount:  req.Amount,
	})
	if err != nil {
		var missingErr *registration.MissingFieldsError
		switch {
		case errors.As(err, &missingErr):
			log.Warn("missing required fields", slog.Any("labels", missingErr.Labels))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.MissingFields(missingErr.Labels))
		case errors.Is(err, registration.ErrEventNotFound):
			log.Warn("event not found", slog.String("event_id", eventID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))
		default:
			log.Error("registration failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not start payment, please try again"))
		}
		return
	}

	log.Info("registration created", slog.String("registration_id", res.RegistrationID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"registration_id": res.RegistrationID,
		"checkout_url":    res.CheckoutURL,
	}))
}
