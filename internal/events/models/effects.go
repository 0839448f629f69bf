package models

import (
	"time"

	id "lankaconnect/pkg/domain"
)

// EffectKind tags an effect descriptor returned by aggregate methods.
type EffectKind string

const (
	EffectEventPublished        EffectKind = "event_published"
	EffectEventCancelled        EffectKind = "event_cancelled"
	EffectEventPostponed        EffectKind = "event_postponed"
	EffectEventActivated        EffectKind = "event_activated"
	EffectEventCompleted        EffectKind = "event_completed"
	EffectEventArchived         EffectKind = "event_archived"
	EffectEventSubmitted        EffectKind = "event_submitted_for_review"
	EffectEventApproved         EffectKind = "event_approved"
	EffectEventRejected         EffectKind = "event_rejected"
	EffectEventUnpublished      EffectKind = "event_unpublished"
	EffectCapacityUpdated       EffectKind = "event_capacity_updated"
	EffectRegistrationConfirmed EffectKind = "registration_confirmed"
	EffectRegistrationCancelled EffectKind = "registration_cancelled"
	EffectRegistrationUpdated   EffectKind = "registration_quantity_updated"
	EffectWaitlistJoined        EffectKind = "waitlist_joined"
	EffectWaitlistLeft          EffectKind = "waitlist_left"
	EffectWaitlistPromoted      EffectKind = "waitlist_promoted"
	EffectWaitlistSpotAvailable EffectKind = "waitlist_spot_available"
	EffectPassAdded             EffectKind = "pass_added"
	EffectPassRemoved           EffectKind = "pass_removed"
	EffectBadgeAssigned         EffectKind = "badge_assigned"
	EffectBadgeRemoved          EffectKind = "badge_removed"
	EffectSignUpListAdded       EffectKind = "signup_list_added"
	EffectSignUpListRemoved     EffectKind = "signup_list_removed"
	EffectSignUpCommitted       EffectKind = "signup_commitment_added"
	EffectSignUpCancelled       EffectKind = "signup_commitment_cancelled"
)

// Effect is a tagged descriptor of a side effect the caller should dispatch
// after a successful commit (notification e-mails, feed updates, and so on).
// The aggregate never talks to messaging directly; it only describes what
// happened. Delivery is at-least-once, handled downstream.
type Effect struct {
	Kind         EffectKind      `json:"kind"`
	EventID      id.EventID      `json:"event_id"`
	UserID       id.UserID       `json:"user_id,omitempty"`
	PassID       id.PassID       `json:"pass_id,omitempty"`
	BadgeID      id.BadgeID      `json:"badge_id,omitempty"`
	SignUpListID id.SignUpListID `json:"sign_up_list_id,omitempty"`
	Category     string          `json:"category,omitempty"`
	Item         string          `json:"item,omitempty"`
	Reason       string          `json:"reason,omitempty"`
	Quantity     int             `json:"quantity,omitempty"`
	Position     int             `json:"position,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

func effect(kind EffectKind, eventID id.EventID, at time.Time) Effect {
	return Effect{Kind: kind, EventID: eventID, OccurredAt: at}
}
