// Package receipt implements the HTTP handler that serves a registration's
// receipt as a PDF download. Receipts exist only for settled registrations.
package receipt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/natiberk/ministry-hub/internal/http/middlewarectx"
	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
	receiptsvc "github.com/natiberk/ministry-hub/internal/services/receipt"
	"github.com/natiberk/ministry-hub/internal/services/registration"
)

// Handler handles receipt download requests.
type Handler struct {
	log       *slog.Logger
	service   Service
	users     Users
	generator Generator
}

// Service loads registrations and their events.
type Service interface {
	Get(ctx context.Context, id string) (*models.Registration, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
}

// Users loads the account behind the session uid.
type Users interface {
	CurrentUser(ctx context.Context, uid string) (*models.User, error)
}

// Generator renders the receipt document.
type Generator interface {
	Build(event *models.Event, reg *models.Registration, fallbackName string) ([]byte, error)
}

// New creates a receipt Handler.
func New(log *slog.Logger, service Service, users Users, generator Generator) *Handler {
	return &Handler{
		log:       log,
		service:   service,
		users:     users,
		generator: generator,
	}
}

// ServeHTTP godoc
// @Summary Download a registration receipt
// @Description Returns the receipt PDF. Only settled registrations have one.
// @Tags Registrations
// @Produce application/pdf
// @Param id path string true "Registration ID"
// @Success 200 {file} binary "Receipt PDF"
// @Failure 404 {object} response.ErrorResponse "Unknown registration"
// @Failure 409 {object} response.ErrorResponse "Payment not completed"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /registrations/{id}/receipt [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.registration.receipt"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	reg, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, registration.ErrRegistrationNotFound) {
			log.Warn("registration not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("registration not found"))
			return
		}
		log.Error("failed to load registration", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load registration"))
		return
	}

	if reg.PaymentStatus != models.PaymentCompleted {
		log.Warn("receipt requested before settlement",
			slog.String("id", id),
			slog.String("payment_status", reg.PaymentStatus))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("payment not completed"))
		return
	}

	event, err := h.service.GetEvent(r.Context(), reg.EventID)
	if err != nil {
		log.Error("failed to load event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load event"))
		return
	}

	// Attendee name falls back to the requesting account's name; the
	// registration's own e-mail is the last resort.
	fallbackName := reg.Email
	if uid, ok := r.Context().Value(middlewarectx.UserUID).(string); ok && uid != "" {
		account, err := h.users.CurrentUser(r.Context(), uid)
		if err != nil {
			log.Warn("failed to load session account", sl.Err(err))
		} else {
			fallbackName = account.Name
		}
	}

	pdf, err := h.generator.Build(event, reg, fallbackName)
	if err != nil {
		log.Error("failed to render receipt", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not render receipt"))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", receiptsvc.Filename(event, reg)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	if _, err := w.Write(pdf); err != nil {
		log.Error("failed to write receipt body", sl.Err(err))
	}
}
