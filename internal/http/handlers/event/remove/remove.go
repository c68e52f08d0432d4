// Package remove implements the HTTP handler for deleting an event and its
// registrations.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
)

// Handler handles event deletion requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the event business-logic contract of the handler.
type Service interface {
	Remove(ctx context.Context, id string) (int, error)
}

// New creates an event-remove Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Delete an event
// @Description Deletes the event together with its registrations.
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Unknown event"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/events/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	count, err := h.service.Remove(r.Context(), id)
	if err != nil {
		log.Error("failed to remove event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove event"))
		return
	}
	if count == 0 {
		log.Warn("event not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("event not found"))
		return
	}

	log.Info("event removed", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(nil))
}
