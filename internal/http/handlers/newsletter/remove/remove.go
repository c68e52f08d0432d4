// Package remove implements the HTTP handler for deleting a newsletter.
package remove

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

// Handler handles newsletter deletion requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the newsletter business-logic contract of the handler.
type Service interface {
	Remove(ctx context.Context, id string) error
}

// New creates a newsletter-remove Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Delete a newsletter
// @Tags Newsletters
// @Produce json
// @Param id path string true "Newsletter ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Unknown newsletter"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/newsletters/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newsletter.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if err := h.service.Remove(r.Context(), id); err != nil {
		if errors.Is(err, newsletter.ErrNewsletterNotFound) {
			log.Warn("newsletter not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("newsletter not found"))
			return
		}
		log.Error("failed to remove newsletter", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove newsletter"))
		return
	}

	log.Info("newsletter removed", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(nil))
}
