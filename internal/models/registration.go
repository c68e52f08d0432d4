package models

import "time"

// Payment states of a registration. PaymentPending only ever moves to
// PaymentCompleted or PaymentFailed; PaymentCompleted is terminal.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Registration is one attendee's submission for one event. The registration
// ID doubles as the payment gateway correlation reference (tx_ref).
// Answers maps form-field labels to the submitted answer strings.
type Registration struct {
	ID            string            `json:"id"`
	EventID       string            `json:"event_id"`
	Answers       map[string]string `json:"answers"`
	IsGuest       bool              `json:"is_guest"`
	Email         string            `json:"email"`
	PaymentStatus string            `json:"payment_status"`
	PaymentType   string            `json:"payment_type,omitempty"`
	TransactionID string            `json:"transaction_id,omitempty"`
	AmountPaid    float64           `json:"amount_paid"`
	CreatedAt     time.Time         `json:"created_at"`
}

// AttendeeName resolves the display name of the registrant: the "Full Name"
// answer when present, otherwise the given fallback (the account name).
func (r *Registration) AttendeeName(fallback string) string {
	if name, ok := r.Answers["Full Name"]; ok && name != "" {
		return name
	}
	return fallback
}
