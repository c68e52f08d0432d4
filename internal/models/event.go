// Package models contains the domain structures shared by services and the
// storage layer: events with their registration form, registrations with
// their payment sub-state, administrative users, materials, newsletters and
// newsletter subscribers.
package models

import "time"

// Form field types accepted in an event's registration form.
const (
	FieldText     = "text"
	FieldEmail    = "email"
	FieldNumber   = "number"
	FieldTextarea = "textarea"
	FieldSelect   = "select"
	FieldCheckbox = "checkbox"
)

// FormField is one typed question of an event's registration form.
// Labels are unique within a single event; the label is the key of the
// registration's answer map.
type FormField struct {
	Label    string   `json:"label" validate:"required"`
	Type     string   `json:"type" validate:"required,oneof=text email number textarea select checkbox"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"` // select/checkbox choices
}

// Event is a ministry event open for registration. FormFields keeps its
// order as authored by the admin.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Location    string      `json:"location"`
	IsPaid      bool        `json:"is_paid"`
	Price       float64     `json:"price"`
	FormFields  []FormField `json:"form_fields"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
