// Package event provides the persistence implementations for the Event
// aggregate: an in-memory store for tests and dev mode, and a PostgreSQL
// store for production.
package event

import (
	"context"
	"sync"
	"time"

	"lankaconnect/internal/events/models"
	id "lankaconnect/pkg/domain"
	"lankaconnect/pkg/platform/sentinel"
)

// InMemory stores aggregates in a map. Aggregates are deep-copied on the way
// in and out so callers can never mutate stored state outside a transaction.
type InMemory struct {
	mu     sync.RWMutex
	events map[id.EventID]*models.Event
}

// NewInMemory constructs an empty in-memory event store.
func NewInMemory() *InMemory {
	return &InMemory{events: make(map[id.EventID]*models.Event)}
}

func (s *InMemory) Create(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.events[event.ID]; exists {
		return sentinel.ErrConflict
	}
	s.events[event.ID] = cloneEvent(event)
	return nil
}

func (s *InMemory) GetByID(_ context.Context, eventID id.EventID) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[eventID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneEvent(event), nil
}

func (s *InMemory) Update(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.events[event.ID] = cloneEvent(event)
	return nil
}

func (s *InMemory) Delete(_ context.Context, eventID id.EventID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[eventID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.events, eventID)
	return nil
}

func (s *InMemory) ListWithExpiredBadges(_ context.Context, now time.Time) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Event
	for _, event := range s.events {
		if len(event.ExpiredBadges(now)) > 0 {
			out = append(out, cloneEvent(event))
		}
	}
	return out, nil
}

func cloneEvent(e *models.Event) *models.Event {
	c := *e
	if e.TicketPrice != nil {
		price := *e.TicketPrice
		c.TicketPrice = &price
	}
	c.Registrations = make([]*models.Registration, len(e.Registrations))
	for i, r := range e.Registrations {
		reg := *r
		if r.Contact != nil {
			contact := *r.Contact
			reg.Contact = &contact
		}
		if r.AmountPaid != nil {
			amount := *r.AmountPaid
			reg.AmountPaid = &amount
		}
		c.Registrations[i] = &reg
	}
	c.WaitingList = make([]*models.WaitingListEntry, len(e.WaitingList))
	for i, w := range e.WaitingList {
		entry := *w
		c.WaitingList[i] = &entry
	}
	c.Passes = make([]*models.Pass, len(e.Passes))
	for i, p := range e.Passes {
		pass := *p
		c.Passes[i] = &pass
	}
	c.SignUpLists = make([]*models.SignUpList, len(e.SignUpLists))
	for i, l := range e.SignUpLists {
		list := *l
		list.Items = append([]string(nil), l.Items...)
		list.Commitments = make([]*models.SignUpCommitment, len(l.Commitments))
		for j, commit := range l.Commitments {
			pledge := *commit
			list.Commitments[j] = &pledge
		}
		c.SignUpLists[i] = &list
	}
	c.Badges = make([]*models.EventBadge, len(e.Badges))
	for i, b := range e.Badges {
		badge := *b
		if b.ExpiresAt != nil {
			expires := *b.ExpiresAt
			badge.ExpiresAt = &expires
		}
		if b.DurationDays != nil {
			days := *b.DurationDays
			badge.DurationDays = &days
		}
		c.Badges[i] = &badge
	}
	return &c
}
