// Package list implements the public HTTP handler that lists study
// materials.
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

// Handler handles material listing requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the material business-logic contract of the handler.
type Service interface {
	List(ctx context.Context) ([]*models.Material, error)
}

// New creates a material-list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary List study materials
// @Tags Materials
// @Produce json
// @Success 200 {object} response.Response "Materials"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /materials [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.material.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	materials, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list materials", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list materials"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(materials))
}
