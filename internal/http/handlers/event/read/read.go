// Package read implements the public HTTP handler that returns one event.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/storage/repository"
)

// Handler handles single-event read requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the event business-logic contract of the handler.
type Service interface {
	Get(ctx context.Context, id string) (*models.Event, error)
}

// New creates an event-read Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Get one event
// @Description Returns the event and its registration form definition.
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Response "Event"
// @Failure 404 {object} response.ErrorResponse "Unknown event"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /events/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	event, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("event not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))
			return
		}
		log.Error("failed to read event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read event"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(event))
}
