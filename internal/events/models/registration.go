package models

import (
	"strings"
	"time"

	id "lankaconnect/pkg/domain"
	dErrors "lankaconnect/pkg/domain-errors"
	"lankaconnect/pkg/money"
)

// Contact is optional contact information shared by all attendees of a
// registration.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Registration is a user's sign-up for an event. It belongs to exactly one
// Event and one User; quantity is the attendee count. Registrations are soft
// entities: cancellation and refunds flip Status, nothing is deleted.
type Registration struct {
	ID            id.RegistrationID  `json:"id"`
	EventID       id.EventID         `json:"event_id"`
	UserID        id.UserID          `json:"user_id"`
	Quantity      int                `json:"quantity"`
	Status        RegistrationStatus `json:"status"`
	Contact       *Contact           `json:"contact,omitempty"`
	PaymentStatus PaymentStatus      `json:"payment_status"`
	AmountPaid    *money.Money       `json:"amount_paid,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func newRegistration(eventID id.EventID, userID id.UserID, quantity int, now time.Time) *Registration {
	return &Registration{
		ID:            id.NewRegistrationID(),
		EventID:       eventID,
		UserID:        userID,
		Quantity:      quantity,
		Status:        RegistrationConfirmed,
		PaymentStatus: PaymentNotRequired,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SetContact validates and attaches contact details.
func (r *Registration) SetContact(c Contact, now time.Time) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return dErrors.New(dErrors.CodeInvalidInput, "contact email is not valid")
	}
	r.Contact = &c
	r.UpdatedAt = now
	return nil
}

func (r *Registration) updateQuantity(quantity int, now time.Time) {
	r.Quantity = quantity
	r.UpdatedAt = now
}

func (r *Registration) cancel(now time.Time) {
	r.Status = RegistrationCancelled
	r.UpdatedAt = now
}

// IsActive reports whether the registration currently holds seats.
func (r *Registration) IsActive() bool {
	return r.Status.CountsTowardCapacity()
}
