package models

import (
	"time"

	id "lankaconnect/pkg/domain"
)

// EventBadge is a time-bounded assignment of a promotional badge to an event.
// A nil ExpiresAt means the assignment never expires.
type EventBadge struct {
	EventID    id.EventID `json:"event_id"`
	BadgeID    id.BadgeID `json:"badge_id"`
	AssignedAt time.Time  `json:"assigned_at"`
	// DurationDays is the requested lifetime at assignment time, kept for
	// display; ExpiresAt is the authoritative deadline.
	DurationDays *int       `json:"duration_days,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// IsExpired reports whether the assignment has passed its deadline at now.
func (b *EventBadge) IsExpired(now time.Time) bool {
	return b.ExpiresAt != nil && b.ExpiresAt.Before(now)
}
