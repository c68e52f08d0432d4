// Package remove implements the admin HTTP handler for removing a
// newsletter subscriber.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/storage/repository"
)

// Handler handles subscriber removal requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the subscription contract of the handler.
type Service interface {
	Unsubscribe(ctx context.Context, id int) error
}

// New creates a subscriber-remove Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Remove a newsletter subscriber
// @Tags Subscribers
// @Produce json
// @Param id path int true "Subscriber ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Invalid subscriber id"
// @Failure 404 {object} response.ErrorResponse "Unknown subscriber"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/subscribers/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid subscriber id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid subscriber id"))
		return
	}

	if err := h.service.Unsubscribe(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("subscriber not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscriber not found"))
			return
		}
		log.Error("failed to remove subscriber", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove subscriber"))
		return
	}

	log.Info("subscriber removed", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(nil))
}
