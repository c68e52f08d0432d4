// Package callback implements the HTTP handler the payment gateway calls
// after checkout. The gateway's own query parameters are treated as a hint
// only; settlement always goes through a fresh server-to-server verify.
package callback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/services/registration"
)

// Handler handles gateway callback requests.
type Handler struct {
	log         *slog.Logger
	service     Service
	thankYouURL string
}

// Service is the settlement contract of the handler.
type Service interface {
	HandleCallback(ctx context.Context, txRef string) (string, error)
}

// New creates a callback Handler. thankYouURL is where the payer's browser
// is sent after settlement, with the final status appended.
func New(log *slog.Logger, service Service, thankYouURL string) *Handler {
	return &Handler{
		log:         log,
		service:     service,
		thankYouURL: thankYouURL,
	}
}

// ServeHTTP godoc
// @Summary Payment gateway callback
// @Description Verifies the transaction with the gateway and redirects the browser to the thank-you page with the final status.
// @Tags Payments
// @Param trx_ref query string true "Transaction reference (registration ID)"
// @Success 302 {string} string "Redirect to the thank-you page"
// @Failure 400 {object} response.ErrorResponse "Missing trx_ref"
// @Failure 404 {object} response.ErrorResponse "Unknown transaction reference"
// @Router /payments/callback [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.callback"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	txRef := r.URL.Query().Get("trx_ref")
	if txRef == "" {
		txRef = r.URL.Query().Get("tx_ref")
	}
	if txRef == "" {
		log.Error("callback without transaction reference")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing transaction reference"))
		return
	}

	status, err := h.service.HandleCallback(r.Context(), txRef)
	if err != nil {
		if errors.Is(err, registration.ErrRegistrationNotFound) {
			log.Warn("unknown transaction reference", slog.String("trx_ref", txRef))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("unknown transaction reference"))
			return
		}
		// Verification failed; the registration is marked failed and the
		// payer still lands on the thank-you page with that status.
		log.Error("settlement failed", sl.Err(err))
		status = models.PaymentFailed
	}

	http.Redirect(w, r, fmt.Sprintf("%s?status=%s", h.thankYouURL, status), http.StatusFound)
}
