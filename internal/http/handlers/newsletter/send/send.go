// Package send implements the HTTP handler that dispatches a newsletter to
// all subscribers through the send queue.
package send

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
	"github.com/natiberk/ministry-hub/internal/services/newsletter"
)

// Handler handles newsletter dispatch requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the newsletter business-logic contract of the handler.
type Service interface {
	Send(ctx context.Context, id string) (int, error)
}

// New creates a newsletter-send Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Send a newsletter
// @Description Marks the newsletter sent and queues one delivery job per subscriber.
// @Tags Newsletters
// @Produce json
// @Param id path string true "Newsletter ID"
// @Success 200 {object} response.Response "Number of queued deliveries"
// @Failure 404 {object} response.ErrorResponse "Unknown newsletter"
// @Failure 409 {object} response.ErrorResponse "Newsletter already sent"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/newsletters/{id}/send [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newsletter.send"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	queued, err := h.service.Send(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, newsletter.ErrNewsletterNotFound):
			log.Warn("newsletter not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("newsletter not found"))
		case errors.Is(err, newsletter.ErrAlreadySent):
			log.Warn("newsletter already sent", slog.String("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("newsletter already sent"))
		default:
			log.Error("failed to send newsletter", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not send newsletter"))
		}
		return
	}

	log.Info("newsletter queued", slog.String("id", id), slog.Int("subscribers", queued))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"queued": queued,
	}))
}
