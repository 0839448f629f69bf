package models

import (
	"strings"
	"time"

	id "lankaconnect/pkg/domain"
	dErrors "lankaconnect/pkg/domain-errors"
)

// SignUpList is a volunteer/item sign-up sheet attached to an event, such as a
// food list where attendees commit to bringing dishes. A list is either open
// (free-text items) or restricted to a set of predefined items. Each user
// holds at most one commitment per list.
type SignUpList struct {
	ID          id.SignUpListID
	EventID     id.EventID
	Category    string
	Description string
	Items       []string
	Commitments []*SignUpCommitment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SignUpCommitment is one user's pledge on a sign-up list.
type SignUpCommitment struct {
	ListID    id.SignUpListID
	UserID    id.UserID
	Item      string
	Quantity  int
	CreatedAt time.Time
}

// NewSignUpList validates and builds a sign-up list. A non-empty items slice
// restricts commitments to those items; an empty slice leaves the list open.
func NewSignUpList(eventID id.EventID, category, description string, items []string, now time.Time) (*SignUpList, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "sign-up list category is required")
	}
	if len(category) > 128 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "sign-up list category must be 128 characters or less")
	}
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "predefined items must not be blank")
		}
		cleaned = append(cleaned, item)
	}
	return &SignUpList{
		ID:          id.NewSignUpListID(),
		EventID:     eventID,
		Category:    category,
		Description: strings.TrimSpace(description),
		Items:       cleaned,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// HasCommitments reports whether any user has committed to this list.
// Lists with commitments cannot be removed from their event.
func (l *SignUpList) HasCommitments() bool { return len(l.Commitments) > 0 }

func (l *SignUpList) commitment(userID id.UserID) *SignUpCommitment {
	for _, c := range l.Commitments {
		if c.UserID == userID {
			return c
		}
	}
	return nil
}

func (l *SignUpList) allowsItem(item string) bool {
	if len(l.Items) == 0 {
		return true
	}
	for _, candidate := range l.Items {
		if strings.EqualFold(candidate, item) {
			return true
		}
	}
	return false
}

// AddCommitment records a user's pledge. On a predefined-item list the item
// must match one of the list's items (case-insensitive).
func (l *SignUpList) AddCommitment(userID id.UserID, item string, quantity int, now time.Time) error {
	if userID.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "item description is required")
	}
	if quantity <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "quantity must be greater than 0")
	}
	if l.commitment(userID) != nil {
		return dErrors.New(dErrors.CodeConflict, "user already has a commitment on this sign-up list")
	}
	if !l.allowsItem(item) {
		return dErrors.Newf(dErrors.CodeInvalidInput,
			"item %q is not on the predefined list for %q", item, l.Category)
	}
	l.Commitments = append(l.Commitments, &SignUpCommitment{
		ListID:    l.ID,
		UserID:    userID,
		Item:      item,
		Quantity:  quantity,
		CreatedAt: now,
	})
	l.UpdatedAt = now
	return nil
}

// CancelCommitment withdraws a user's pledge. Cancelling a commitment that
// does not exist fails.
func (l *SignUpList) CancelCommitment(userID id.UserID, now time.Time) error {
	for i, c := range l.Commitments {
		if c.UserID == userID {
			l.Commitments = append(l.Commitments[:i], l.Commitments[i+1:]...)
			l.UpdatedAt = now
			return nil
		}
	}
	return dErrors.New(dErrors.CodeNotFound, "user has no commitment on this sign-up list")
}
