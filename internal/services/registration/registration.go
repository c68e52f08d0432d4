// Package registration contains the core pipeline of the system: creating
// a registration from submitted form answers, initiating the payment
// gateway checkout for paid events, and settling the registration from the
// gateway callback.
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/natiberk/ministry-hub/internal/chapa"
	"github.com/natiberk/ministry-hub/internal/config"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/metrics"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/storage/repository"
)

var (
	// ErrEventNotFound reports an unknown event ID.
	ErrEventNotFound = errors.New("event not found")
	// ErrRegistrationNotFound reports an unknown registration / tx_ref.
	ErrRegistrationNotFound = errors.New("registration not found")
)

// MissingFieldsError lists the required form-field labels that were left
// without an answer.
type MissingFieldsError struct {
	Labels []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Labels, ", ")
}

// Storage is the repository contract of the registration service.
type Storage interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateRegistration(ctx context.Context, reg models.Registration) (string, error)
	GetRegistration(ctx context.Context, id string) (*models.Registration, error)
	ListRegistrationsByEvent(ctx context.Context, eventID string, limit, offset int) ([]*models.Registration, error)
	UpdatePaymentResult(ctx context.Context, id, status, paymentType, transactionID string, amountPaid float64) (int, error)
}

// Gateway is the payment gateway contract.
type Gateway interface {
	InitializeTransaction(ctx context.Context, req chapa.InitializeRequest) (*chapa.InitializeResponse, error)
	VerifyTransaction(ctx context.Context, txRef string) (*chapa.VerifyResponse, error)
}

// RegisterRequest is the input of Register.
type RegisterRequest struct {
	EventID string
	Answers map[string]string
	IsGuest bool
	Email   string
	Amount  float64
}

// RegisterResult is the output of Register. CheckoutURL is empty for free
// events.
type RegisterResult struct {
	RegistrationID string
	CheckoutURL    string
}

// RegistrationService implements the register/payment/receipt pipeline.
type RegistrationService struct {
	storage Storage
	gateway Gateway
	cfg     config.Chapa
	log     *slog.Logger
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(storage Storage, gateway Gateway, cfg config.Chapa, log *slog.Logger) *RegistrationService {
	return &RegistrationService{
		storage: storage,
		gateway: gateway,
		cfg:     cfg,
		log:     log,
	}
}

// Register validates the answers against the event's required fields,
// persists the registration, and for paid events obtains a hosted checkout
// URL from the gateway. The registration is always persisted before the
// gateway is contacted; a gateway failure leaves it pending with no
// rollback and no reconciliation job (accepted inconsistency, logged).
func (s *RegistrationService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	const op = "registration.Register"

	event, err := s.storage.GetEvent(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if missing := missingRequiredLabels(event.FormFields, req.Answers); len(missing) > 0 {
		return nil, &MissingFieldsError{Labels: missing}
	}

	reg := models.Registration{
		ID:      uuid.New().String(),
		EventID: event.ID,
		Answers: req.Answers,
		IsGuest: req.IsGuest,
		Email:   req.Email,
	}
	if event.IsPaid {
		reg.PaymentStatus = models.PaymentPending
	} else {
		// Free events settle synchronously; there is nothing to pay.
		reg.PaymentStatus = models.PaymentCompleted
	}

	if _, err := s.storage.CreateRegistration(ctx, reg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !event.IsPaid {
		metrics.RegistrationsCreated.WithLabelValues("free").Inc()
		return &RegisterResult{RegistrationID: reg.ID}, nil
	}

	metrics.RegistrationsCreated.WithLabelValues("paid").Inc()

	firstName, lastName := splitName(reg.AttendeeName(""))
	initResp, err := s.gateway.InitializeTransaction(ctx, chapa.InitializeRequest{
		Amount:      strconv.FormatFloat(req.Amount, 'f', -1, 64),
		Currency:    s.cfg.Currency,
		Email:       req.Email,
		FirstName:   firstName,
		LastName:    lastName,
		TxRef:       reg.ID,
		CallbackURL: s.cfg.CallbackURL,
	})
	if err != nil {
		s.log.Warn("payment initialize failed, registration left pending",
			slog.String("registration_id", reg.ID), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RegisterResult{
		RegistrationID: reg.ID,
		CheckoutURL:    initResp.Data.CheckoutURL,
	}, nil
}

// HandleCallback settles a registration from a gateway callback. The
// callback's own status parameter is never trusted: the outcome always
// comes from a fresh server-to-server verify call, which makes redelivery
// idempotent. Returns the final payment status for the thank-you redirect.
func (s *RegistrationService) HandleCallback(ctx context.Context, txRef string) (string, error) {
	const op = "registration.HandleCallback"

	reg, err := s.storage.GetRegistration(ctx, txRef)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrRegistrationNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	verifyResp, err := s.gateway.VerifyTransaction(ctx, txRef)
	if err != nil {
		// Verification unreachable: record the failure but keep a
		// completed registration completed (guard in the repository).
		if _, uerr := s.storage.UpdatePaymentResult(ctx, reg.ID, models.PaymentFailed, "", "", 0); uerr != nil {
			s.log.Error("failed to record payment failure", sl.Err(uerr))
		}
		metrics.PaymentCallbacks.WithLabelValues(models.PaymentFailed).Inc()
		return models.PaymentFailed, fmt.Errorf("%s: %w", op, err)
	}

	status := models.PaymentFailed
	paymentType, transactionID := "", ""
	var amount float64
	if verifyResp.Succeeded() {
		status = models.PaymentCompleted
		paymentType = verifyResp.Data.PaymentType
		transactionID = verifyResp.Data.ID
		amount = verifyResp.Data.Amount
	}

	if _, err := s.storage.UpdatePaymentResult(ctx, reg.ID, status, paymentType, transactionID, amount); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	metrics.PaymentCallbacks.WithLabelValues(status).Inc()
	s.log.Info("payment callback settled",
		slog.String("registration_id", reg.ID),
		slog.String("status", status))
	return status, nil
}

// Get returns a registration by ID.
func (s *RegistrationService) Get(ctx context.Context, id string) (*models.Registration, error) {
	reg, err := s.storage.GetRegistration(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

// ListByEvent returns an event's registrations, newest first.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID string, limit, offset int) ([]*models.Registration, error) {
	const op = "registration.ListByEvent"

	regs, err := s.storage.ListRegistrationsByEvent(ctx, eventID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return regs, nil
}

// GetEvent returns the event a registration belongs to.
func (s *RegistrationService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.storage.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func missingRequiredLabels(fields []models.FormField, answers map[string]string) []string {
	var missing []string
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if strings.TrimSpace(answers[f.Label]) == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

func splitName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
