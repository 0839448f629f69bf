package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"lankaconnect/internal/events/models"
	id "lankaconnect/pkg/domain"
	"lankaconnect/pkg/platform/sentinel"
)

type EventStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func (s *EventStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestEventStoreSuite(t *testing.T) {
	suite.Run(t, new(EventStoreSuite))
}

func (s *EventStoreSuite) newEvent(capacity int) *models.Event {
	e, err := models.NewEvent(id.UserID(uuid.New()), "Kandy Perahera", "Annual procession",
		s.now.Add(24*time.Hour), s.now.Add(48*time.Hour), capacity, nil, s.now)
	s.Require().NoError(err)
	return e
}

// TestCreationAndLookups verifies the store correctly creates and retrieves events.
func (s *EventStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds event by ID", func() {
		e := s.newEvent(10)
		s.Require().NoError(s.store.Create(s.ctx, e))

		found, err := s.store.GetByID(s.ctx, e.ID)
		s.Require().NoError(err)
		s.Equal(e.Title, found.Title)
		s.Equal(models.StatusDraft, found.Status)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.GetByID(s.ctx, id.EventID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate create", func() {
		e := s.newEvent(10)
		s.Require().NoError(s.store.Create(s.ctx, e))
		s.Require().ErrorIs(s.store.Create(s.ctx, e), sentinel.ErrConflict)
	})
}

// TestIsolation verifies stored aggregates cannot be mutated from outside.
func (s *EventStoreSuite) TestIsolation() {
	e := s.newEvent(10)
	_, err := e.Publish(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, e))

	// Mutating the loaded copy must not leak into the store.
	loaded, err := s.store.GetByID(s.ctx, e.ID)
	s.Require().NoError(err)
	_, err = loaded.Register(id.UserID(uuid.New()), 3, s.now)
	s.Require().NoError(err)

	fresh, err := s.store.GetByID(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Equal(0, fresh.ConfirmedCount())
}

// TestUpdates verifies persisted child collections round-trip.
func (s *EventStoreSuite) TestUpdates() {
	e := s.newEvent(2)
	_, err := e.Publish(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, e))

	user := id.UserID(uuid.New())
	waiting := id.UserID(uuid.New())
	_, err = e.Register(user, 2, s.now)
	s.Require().NoError(err)
	_, err = e.AddToWaitingList(waiting, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Update(s.ctx, e))

	found, err := s.store.GetByID(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Equal(2, found.ConfirmedCount())
	s.Equal(1, found.WaitingListPosition(waiting))

	s.Run("returns ErrNotFound for non-existent event", func() {
		ghost := s.newEvent(5)
		s.Require().ErrorIs(s.store.Update(s.ctx, ghost), sentinel.ErrNotFound)
	})
}

// TestDelete verifies removal and its not-found contract.
func (s *EventStoreSuite) TestDelete() {
	e := s.newEvent(5)
	s.Require().NoError(s.store.Create(s.ctx, e))
	s.Require().NoError(s.store.Delete(s.ctx, e.ID))

	_, err := s.store.GetByID(s.ctx, e.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	s.Require().ErrorIs(s.store.Delete(s.ctx, e.ID), sentinel.ErrNotFound)
}

// TestListWithExpiredBadges verifies the sweep query contract.
func (s *EventStoreSuite) TestListWithExpiredBadges() {
	days := 7

	expired := s.newEvent(5)
	_, err := expired.AssignBadge(id.BadgeID(uuid.New()), &days, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, expired))

	fresh := s.newEvent(5)
	_, err = fresh.AssignBadge(id.BadgeID(uuid.New()), nil, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, fresh))

	later := s.now.AddDate(0, 0, 8)
	list, err := s.store.ListWithExpiredBadges(s.ctx, later)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(expired.ID, list[0].ID)

	list, err = s.store.ListWithExpiredBadges(s.ctx, s.now)
	s.Require().NoError(err)
	s.Empty(list)
}
