// Package list implements the admin HTTP handler that lists newsletters.
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

// Handler handles newsletter listing requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the newsletter business-logic contract of the handler.
type Service interface {
	List(ctx context.Context) ([]*models.Newsletter, error)
}

// New creates a newsletter-list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary List newsletters
// @Tags Newsletters
// @Produce json
// @Success 200 {object} response.Response "Newsletters with their send status"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/newsletters [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newsletter.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	newsletters, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list newsletters", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list newsletters"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(newsletters))
}
