// Package list implements the admin HTTP handler that lists an event's
// registrations.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
)

const defaultLimit = 50

// Handler handles registration listing requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the registration business-logic contract of the handler.
type Service interface {
	ListByEvent(ctx context.Context, eventID string, limit, offset int) ([]*models.Registration, error)
}

// New creates a registration-list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary List an event's registrations
// @Description Returns registrations newest first. Supports limit and offset query parameters.
// @Tags Registrations
// @Produce json
// @Param id path string true "Event ID"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Response "Registrations"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/events/{id}/registrations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.registration.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	eventID := chi.URLParam(r, "id")
	regs, err := h.service.ListByEvent(r.Context(), eventID, limit, offset)
	if err != nil {
		log.Error("failed to list registrations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list registrations"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(regs))
}
