package models

import (
	"time"

	id "lankaconnect/pkg/domain"
)

// WaitingListEntry is one user's place in an event's waiting list.
//
// Invariant: within an event, positions are unique and contiguous starting at
// 1 after every mutation. The aggregate resequences on removal; entries never
// renumber themselves.
type WaitingListEntry struct {
	EventID  id.EventID `json:"event_id"`
	UserID   id.UserID  `json:"user_id"`
	Position int        `json:"position"`
	JoinedAt time.Time  `json:"joined_at"`
}
