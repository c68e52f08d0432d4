// Package list implements the admin HTTP handler that lists newsletter
// subscribers.
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

// Handler handles subscriber listing requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the subscription contract of the handler.
type Service interface {
	ListSubscribers(ctx context.Context) ([]*models.Subscriber, error)
}

// New creates a subscriber-list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary List newsletter subscribers
// @Tags Subscribers
// @Produce json
// @Success 200 {object} response.Response "Subscribers"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/subscribers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subs, err := h.service.ListSubscribers(r.Context())
	if err != nil {
		log.Error("failed to list subscribers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscribers"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(subs))
}
