// Package list implements the public HTTP handler that lists events.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
)

// Handler handles event listing requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the event business-logic contract of the handler.
type Service interface {
	List(ctx context.Context) ([]*models.Event, error)
}

// New creates an event-list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary List events
// @Description Returns all events with their registration form definitions.
// @Tags Events
// @Produce json
// @Success 200 {object} response.Response "Events"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /events [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	events, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list events"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(events))
}
