package handler

import (
	"strings"
	"time"

	id "lankaconnect/pkg/domain"
	dErrors "lankaconnect/pkg/domain-errors"
	"lankaconnect/pkg/money"
)

// CreateEventRequest is the HTTP request body for POST /events.
type CreateEventRequest struct {
	OrganizerID string      `json:"organizer_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartAt     time.Time   `json:"start_at"`
	EndAt       time.Time   `json:"end_at"`
	Capacity    int         `json:"capacity"`
	TicketPrice *PriceInput `json:"ticket_price,omitempty"`

	parsedOrganizerID id.UserID
	parsedPrice       *money.Money
}

// PriceInput is a money amount in minor units plus its ISO currency.
type PriceInput struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Validate validates and parses the request.
func (r *CreateEventRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}

	organizerID, err := id.ParseUserID(strings.TrimSpace(r.OrganizerID))
	if err != nil {
		return err
	}
	r.parsedOrganizerID = organizerID

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "title is required")
	}

	if r.TicketPrice != nil {
		price, err := money.New(r.TicketPrice.Amount, r.TicketPrice.Currency)
		if err != nil {
			return err
		}
		r.parsedPrice = &price
	}
	return nil
}

// ParsedOrganizerID returns the validated organizer ID.
func (r *CreateEventRequest) ParsedOrganizerID() id.UserID { return r.parsedOrganizerID }

// ParsedPrice returns the validated ticket price, nil for free events.
func (r *CreateEventRequest) ParsedPrice() *money.Money { return r.parsedPrice }

// ReviewRequest carries the reviewing admin for approve/reject.
type ReviewRequest struct {
	AdminID string `json:"admin_id"`
	Reason  string `json:"reason,omitempty"`

	parsedAdminID id.UserID
}

func (r *ReviewRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	adminID, err := id.ParseUserID(strings.TrimSpace(r.AdminID))
	if err != nil {
		return err
	}
	r.parsedAdminID = adminID
	return nil
}

func (r *ReviewRequest) ParsedAdminID() id.UserID { return r.parsedAdminID }

// ReasonRequest carries the mandatory reason for cancel/postpone.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

func (r *ReasonRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "reason is required")
	}
	return nil
}

// RegisterRequest is the body for POST /events/{eventID}/registrations.
type RegisterRequest struct {
	UserID   string `json:"user_id"`
	Quantity int    `json:"quantity"`

	parsedUserID id.UserID
}

func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	userID, err := id.ParseUserID(strings.TrimSpace(r.UserID))
	if err != nil {
		return err
	}
	r.parsedUserID = userID
	if r.Quantity <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "quantity must be positive")
	}
	return nil
}

func (r *RegisterRequest) ParsedUserID() id.UserID { return r.parsedUserID }

// QuantityRequest is the body for registration quantity updates.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (r *QuantityRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	if r.Quantity <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "quantity must be positive")
	}
	return nil
}

// CapacityRequest is the body for PUT /events/{eventID}/capacity.
type CapacityRequest struct {
	Capacity int `json:"capacity"`
}

func (r *CapacityRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	if r.Capacity <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "capacity must be positive")
	}
	return nil
}

// WaitlistRequest is the body for waiting list joins, leaves, and promotions.
type WaitlistRequest struct {
	UserID string `json:"user_id"`

	parsedUserID id.UserID
}

func (r *WaitlistRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	userID, err := id.ParseUserID(strings.TrimSpace(r.UserID))
	if err != nil {
		return err
	}
	r.parsedUserID = userID
	return nil
}

func (r *WaitlistRequest) ParsedUserID() id.UserID { return r.parsedUserID }

// AddPassRequest is the body for POST /events/{eventID}/passes.
type AddPassRequest struct {
	Name  string     `json:"name"`
	Price PriceInput `json:"price"`
	Total int        `json:"total"`

	parsedPrice money.Money
}

func (r *AddPassRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	price, err := money.New(r.Price.Amount, r.Price.Currency)
	if err != nil {
		return err
	}
	r.parsedPrice = price
	if r.Total <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "total must be positive")
	}
	return nil
}

func (r *AddPassRequest) ParsedPrice() money.Money { return r.parsedPrice }

// PassQuantityRequest is the body for pass reserve/release.
type PassQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (r *PassQuantityRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	if r.Quantity <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "quantity must be positive")
	}
	return nil
}

// AddSignUpListRequest is the body for POST /events/{eventID}/signup-lists.
// An empty items list creates an open list where members bring anything.
type AddSignUpListRequest struct {
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Items       []string `json:"items,omitempty"`
}

func (r *AddSignUpListRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	r.Category = strings.TrimSpace(r.Category)
	if r.Category == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "category is required")
	}
	return nil
}

// CommitRequest is the body for POST /signup-lists/{listID}/commitments.
type CommitRequest struct {
	UserID   string `json:"user_id"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`

	parsedUserID id.UserID
}

func (r *CommitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	userID, err := id.ParseUserID(strings.TrimSpace(r.UserID))
	if err != nil {
		return err
	}
	r.parsedUserID = userID
	if r.Quantity <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "quantity must be positive")
	}
	return nil
}

func (r *CommitRequest) ParsedUserID() id.UserID { return r.parsedUserID }

// AssignBadgeRequest is the body for POST /events/{eventID}/badges.
type AssignBadgeRequest struct {
	BadgeID      string `json:"badge_id"`
	DurationDays *int   `json:"duration_days,omitempty"`

	parsedBadgeID id.BadgeID
}

func (r *AssignBadgeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	badgeID, err := id.ParseBadgeID(strings.TrimSpace(r.BadgeID))
	if err != nil {
		return err
	}
	r.parsedBadgeID = badgeID
	if r.DurationDays != nil && *r.DurationDays <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "duration_days must be positive when set")
	}
	return nil
}

func (r *AssignBadgeRequest) ParsedBadgeID() id.BadgeID { return r.parsedBadgeID }
