package models

import "time"

// Material is a downloadable ministry resource managed from the admin panel.
type Material struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileURL     string    `json:"file_url"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// Newsletter states.
const (
	NewsletterDraft = "draft"
	NewsletterSent  = "sent"
)

// Newsletter is an e-mail bulletin authored in the admin panel and
// dispatched to all subscribers through the send queue.
type Newsletter struct {
	ID        string     `json:"id"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Status    string     `json:"status"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Subscriber is one newsletter recipient address.
type Subscriber struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewsletterJob is the message published to the send queue, one per
// subscriber.
type NewsletterJob struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
