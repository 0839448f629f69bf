package models

import (
	dErrors "lankaconnect/pkg/domain-errors"
)

// EventStatus is the lifecycle state of an Event.
//
// The numeric values are persisted; do not reorder.
type EventStatus int

const (
	StatusDraft       EventStatus = 0
	StatusPublished   EventStatus = 1
	StatusActive      EventStatus = 2
	StatusPostponed   EventStatus = 3
	StatusCancelled   EventStatus = 4
	StatusCompleted   EventStatus = 5
	StatusArchived    EventStatus = 6
	StatusUnderReview EventStatus = 7
)

func (s EventStatus) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusPublished:
		return "published"
	case StatusActive:
		return "active"
	case StatusPostponed:
		return "postponed"
	case StatusCancelled:
		return "cancelled"
	case StatusCompleted:
		return "completed"
	case StatusArchived:
		return "archived"
	case StatusUnderReview:
		return "under_review"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further lifecycle transitions are allowed,
// except Archive from Completed/Cancelled.
func (s EventStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusArchived
}

// AcceptsRegistrations reports whether end users may register or join the
// waiting list in this status.
func (s EventStatus) AcceptsRegistrations() bool {
	return s == StatusPublished || s == StatusActive
}

// ParseEventStatus converts a persisted numeric value back to a status.
func ParseEventStatus(v int) (EventStatus, error) {
	s := EventStatus(v)
	if s < StatusDraft || s > StatusUnderReview {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "unknown event status %d", v)
	}
	return s, nil
}

// RegistrationStatus is the lifecycle state of a Registration. Registrations
// are never hard-deleted; cancellation and refunds are status transitions.
type RegistrationStatus int

const (
	RegistrationPending    RegistrationStatus = 0
	RegistrationConfirmed  RegistrationStatus = 1
	RegistrationWaitlisted RegistrationStatus = 2
	RegistrationCheckedIn  RegistrationStatus = 3
	RegistrationCompleted  RegistrationStatus = 4
	RegistrationCancelled  RegistrationStatus = 5
	RegistrationRefunded   RegistrationStatus = 6
)

func (s RegistrationStatus) String() string {
	switch s {
	case RegistrationPending:
		return "pending"
	case RegistrationConfirmed:
		return "confirmed"
	case RegistrationWaitlisted:
		return "waitlisted"
	case RegistrationCheckedIn:
		return "checked_in"
	case RegistrationCompleted:
		return "completed"
	case RegistrationCancelled:
		return "cancelled"
	case RegistrationRefunded:
		return "refunded"
	default:
		return "unknown"
	}
}

// CountsTowardCapacity reports whether a registration in this status occupies
// seats. Cancelled and refunded registrations release theirs.
func (s RegistrationStatus) CountsTowardCapacity() bool {
	switch s {
	case RegistrationConfirmed, RegistrationCheckedIn, RegistrationCompleted:
		return true
	default:
		return false
	}
}

// PaymentStatus tracks payment state on paid events. The payment flow itself
// lives outside this system; the status is carried for the Unpublish guard and
// reporting.
type PaymentStatus int

const (
	PaymentNotRequired PaymentStatus = 0
	PaymentPending     PaymentStatus = 1
	PaymentPaid        PaymentStatus = 2
	PaymentRefunded    PaymentStatus = 3
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentNotRequired:
		return "not_required"
	case PaymentPending:
		return "pending"
	case PaymentPaid:
		return "paid"
	case PaymentRefunded:
		return "refunded"
	default:
		return "unknown"
	}
}

// IsSettled reports whether money has actually moved for this registration.
// Settled registrations block Unpublish so reversal never orphans them.
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentPaid || s == PaymentRefunded
}
