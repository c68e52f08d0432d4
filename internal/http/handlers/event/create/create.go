// Package create implements the HTTP handler for creating events with
// their dynamic registration forms.
package create

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

	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/services/event"
)

// Request holds the new event's fields. Paid events must carry a positive
// price; form fields define the public registration form.
type Request struct {
	Title       string             `json:"title" validate:"required,min=3,max=200"`
	Description string             `json:"description"`
	Date        time.Time          `json:"date" validate:"required"`
	Location    string             `json:"location"`
	IsPaid      bool               `json:"is_paid"`
	Price       float64            `json:"price" validate:"omitempty,gt=0"`
	FormFields  []models.FormField `json:"form_fields" validate:"required,min=1,dive"`
}

// Handler handles event creation requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the event business-logic contract of the handler.
type Service interface {
	Create(ctx context.Context, e models.Event) (string, error)
}

// New creates an event-create Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Create an event
// @Description Creates an event with its registration form definition.
// @Tags Events
// @Accept json
// @Produce json
// @Param request body Request true "New event"
// @Success 200 {object} response.Response "Created event id"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON or duplicate form labels"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/events [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.create"

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

	if req.IsPaid && req.Price <= 0 {
		log.Error("paid event without a price")
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("paid events require a positive price"))
		return
	}

	id, err := h.service.Create(r.Context(), models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		IsPaid:      req.IsPaid,
		Price:       req.Price,
		FormFields:  req.FormFields,
	})
	if err != nil {
		if errors.Is(err, event.ErrDuplicateLabel) {
			log.Error("duplicate form field labels")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("form field labels must be unique"))
			return
		}
		log.Error("failed to create event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create event"))
		return
	}

	log.Info("event created", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
