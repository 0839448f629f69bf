package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "lankaconnect/pkg/domain"
	dErrors "lankaconnect/pkg/domain-errors"
)

var (
	testNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testStart = testNow.Add(24 * time.Hour)
	testEnd   = testNow.Add(48 * time.Hour)
)

func newTestEvent(t *testing.T, capacity int) *Event {
	t.Helper()
	e, err := NewEvent(id.UserID(uuid.New()), "Avurudu Festival", "New year celebration",
		testStart, testEnd, capacity, nil, testNow)
	require.NoError(t, err)
	return e
}

func publishedEvent(t *testing.T, capacity int) *Event {
	t.Helper()
	e := newTestEvent(t, capacity)
	_, err := e.Publish(testNow)
	require.NoError(t, err)
	return e
}

func TestNewEvent_Validation(t *testing.T) {
	organizer := id.UserID(uuid.New())

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewEvent(organizer, "  ", "desc", testStart, testEnd, 10, nil, testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects start date in the past", func(t *testing.T) {
		_, err := NewEvent(organizer, "T", "desc", testNow.Add(-time.Hour), testEnd, 10, nil, testNow)
		require.Error(t, err)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := NewEvent(organizer, "T", "desc", testStart, testStart.Add(-time.Minute), 10, nil, testNow)
		require.Error(t, err)
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		_, err := NewEvent(organizer, "T", "desc", testStart, testEnd, 0, nil, testNow)
		require.Error(t, err)
	})

	t.Run("starts in draft", func(t *testing.T) {
		e := newTestEvent(t, 10)
		assert.Equal(t, StatusDraft, e.Status)
		assert.Equal(t, 0, e.ConfirmedCount())
	})
}

func TestLifecycleTransitions(t *testing.T) {
	t.Run("draft submits for review then approve publishes", func(t *testing.T) {
		e := newTestEvent(t, 10)
		_, err := e.SubmitForReview(testNow)
		require.NoError(t, err)
		assert.Equal(t, StatusUnderReview, e.Status)

		effects, err := e.Approve(id.UserID(uuid.New()), testNow)
		require.NoError(t, err)
		assert.Equal(t, StatusPublished, e.Status)
		assert.Len(t, effects, 2)
	})

	t.Run("submit fails when not draft", func(t *testing.T) {
		e := publishedEvent(t, 10)
		_, err := e.SubmitForReview(testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("reject returns event to draft with reason", func(t *testing.T) {
		e := newTestEvent(t, 10)
		_, err := e.SubmitForReview(testNow)
		require.NoError(t, err)
		_, err = e.Reject(id.UserID(uuid.New()), "incomplete details", testNow)
		require.NoError(t, err)
		assert.Equal(t, StatusDraft, e.Status)
		assert.Equal(t, "incomplete details", e.StatusReason)
	})

	t.Run("publish from cancelled always fails", func(t *testing.T) {
		e := newTestEvent(t, 10)
		_, err := e.Cancel("no longer needed", testNow)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, e.Status)

		_, err = e.Publish(testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("archive from draft always fails", func(t *testing.T) {
		e := newTestEvent(t, 10)
		_, err := e.Archive(testNow)
		require.Error(t, err)
	})

	t.Run("archive allowed from completed and cancelled", func(t *testing.T) {
		e := publishedEvent(t, 10)
		_, err := e.Complete(testEnd.Add(time.Hour))
		require.NoError(t, err)
		_, err = e.Archive(testEnd.Add(2 * time.Hour))
		require.NoError(t, err)
		assert.Equal(t, StatusArchived, e.Status)

		e2 := newTestEvent(t, 10)
		_, err = e2.Cancel("rained out", testNow)
		require.NoError(t, err)
		_, err = e2.Archive(testNow)
		require.NoError(t, err)
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		e := publishedEvent(t, 10)
		_, err := e.Cancel("   ", testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("cancel and postpone fail on terminal statuses", func(t *testing.T) {
		e := newTestEvent(t, 10)
		_, err := e.Cancel("done", testNow)
		require.NoError(t, err)
		_, err = e.Cancel("again", testNow)
		require.Error(t, err)
		_, err = e.Postpone("again", testNow)
		require.Error(t, err)
	})

	t.Run("activate requires published and start reached", func(t *testing.T) {
		e := publishedEvent(t, 10)
		_, err := e.Activate(testNow)
		require.Error(t, err)

		_, err = e.Activate(testStart)
		require.NoError(t, err)
		assert.Equal(t, StatusActive, e.Status)
	})

	t.Run("complete requires end date passed", func(t *testing.T) {
		e := publishedEvent(t, 10)
		_, err := e.Complete(testStart)
		require.Error(t, err)
		_, err = e.Complete(testEnd.Add(time.Minute))
		require.NoError(t, err)
	})

	t.Run("unpublish reverses publish but not paid registrations", func(t *testing.T) {
		e := publishedEvent(t, 10)
		_, err := e.Register(id.UserID(uuid.New()), 1, testNow)
		require.NoError(t, err)

		_, err = e.Unpublish(testNow)
		require.NoError(t, err)
		assert.Equal(t, StatusDraft, e.Status)

		e2 := publishedEvent(t, 10)
		payer := id.UserID(uuid.New())
		_, err = e2.Register(payer, 1, testNow)
		require.NoError(t, err)
		e2.Registrations[0].PaymentStatus = PaymentPaid
		_, err = e2.Unpublish(testNow)
		require.Error(t, err)
		assert.Equal(t, StatusPublished, e2.Status)
	})
}

func TestRegisterAndCapacity(t *testing.T) {
	t.Run("cannot register on draft event", func(t *testing.T) {
		e := newTestEvent(t, 5)
		_, err := e.Register(id.UserID(uuid.New()), 1, testNow)
		require.Error(t, err)
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		e := publishedEvent(t, 5)
		user := id.UserID(uuid.New())
		_, err := e.Register(user, 2, testNow)
		require.NoError(t, err)
		_, err = e.Register(user, 1, testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("capacity is never exceeded", func(t *testing.T) {
		e := publishedEvent(t, 3)
		_, err := e.Register(id.UserID(uuid.New()), 2, testNow)
		require.NoError(t, err)
		_, err = e.Register(id.UserID(uuid.New()), 2, testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeCapacityExceeded))
		assert.Equal(t, 2, e.ConfirmedCount())
	})

	t.Run("cancelled registrations release seats", func(t *testing.T) {
		e := publishedEvent(t, 2)
		user := id.UserID(uuid.New())
		_, err := e.Register(user, 2, testNow)
		require.NoError(t, err)
		assert.True(t, e.IsAtCapacity())

		_, err = e.CancelRegistration(user, testNow)
		require.NoError(t, err)
		assert.Equal(t, 0, e.ConfirmedCount())
		assert.False(t, e.IsUserRegistered(user))
	})

	t.Run("cancelling frees spot and notifies waiting list head", func(t *testing.T) {
		e := publishedEvent(t, 1)
		registered := id.UserID(uuid.New())
		waiting := id.UserID(uuid.New())
		_, err := e.Register(registered, 1, testNow)
		require.NoError(t, err)
		_, err = e.AddToWaitingList(waiting, testNow)
		require.NoError(t, err)

		effects, err := e.CancelRegistration(registered, testNow)
		require.NoError(t, err)
		require.Len(t, effects, 2)
		assert.Equal(t, EffectWaitlistSpotAvailable, effects[1].Kind)
		assert.Equal(t, waiting, effects[1].UserID)
	})
}

func TestUpdateRegistration(t *testing.T) {
	t.Run("fails when user not registered", func(t *testing.T) {
		e := publishedEvent(t, 5)
		_, err := e.UpdateRegistration(id.UserID(uuid.New()), 2, testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("rejects zero and negative quantity", func(t *testing.T) {
		e := publishedEvent(t, 5)
		user := id.UserID(uuid.New())
		_, err := e.Register(user, 1, testNow)
		require.NoError(t, err)
		_, err = e.UpdateRegistration(user, 0, testNow)
		require.Error(t, err)
		_, err = e.UpdateRegistration(user, -3, testNow)
		require.Error(t, err)
	})

	t.Run("full event rejects increase and keeps count", func(t *testing.T) {
		e := publishedEvent(t, 5)
		user := id.UserID(uuid.New())
		_, err := e.Register(user, 5, testNow)
		require.NoError(t, err)

		_, err = e.UpdateRegistration(user, 6, testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeCapacityExceeded))
		assert.Equal(t, 5, e.ConfirmedCount())
	})

	t.Run("applies delta within capacity in both directions", func(t *testing.T) {
		e := publishedEvent(t, 5)
		user := id.UserID(uuid.New())
		_, err := e.Register(user, 3, testNow)
		require.NoError(t, err)

		_, err = e.UpdateRegistration(user, 5, testNow)
		require.NoError(t, err)
		assert.Equal(t, 5, e.ConfirmedCount())

		_, err = e.UpdateRegistration(user, 1, testNow)
		require.NoError(t, err)
		assert.Equal(t, 1, e.ConfirmedCount())
	})
}

func TestWaitingList(t *testing.T) {
	t.Run("rejected while capacity remains", func(t *testing.T) {
		e := publishedEvent(t, 2)
		_, err := e.AddToWaitingList(id.UserID(uuid.New()), testNow)
		require.Error(t, err)
	})

	t.Run("positions are contiguous and removal resequences", func(t *testing.T) {
		e := publishedEvent(t, 2)
		_, err := e.Register(id.UserID(uuid.New()), 2, testNow)
		require.NoError(t, err)

		userC := id.UserID(uuid.New())
		userD := id.UserID(uuid.New())
		_, err = e.AddToWaitingList(userC, testNow)
		require.NoError(t, err)
		assert.Equal(t, 1, e.WaitingListPosition(userC))

		_, err = e.AddToWaitingList(userD, testNow)
		require.NoError(t, err)
		assert.Equal(t, 2, e.WaitingListPosition(userD))

		_, err = e.RemoveFromWaitingList(userC, testNow)
		require.NoError(t, err)
		assert.Equal(t, 1, e.WaitingListPosition(userD))
		requireContiguousPositions(t, e)
	})

	t.Run("rejected once the event stops accepting registrations", func(t *testing.T) {
		e := publishedEvent(t, 1)
		_, err := e.Register(id.UserID(uuid.New()), 1, testNow)
		require.NoError(t, err)
		_, err = e.Postpone("venue unavailable", testNow)
		require.NoError(t, err)

		_, err = e.AddToWaitingList(id.UserID(uuid.New()), testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("duplicate join fails", func(t *testing.T) {
		e := publishedEvent(t, 1)
		_, err := e.Register(id.UserID(uuid.New()), 1, testNow)
		require.NoError(t, err)
		user := id.UserID(uuid.New())
		_, err = e.AddToWaitingList(user, testNow)
		require.NoError(t, err)
		_, err = e.AddToWaitingList(user, testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("registered user cannot join", func(t *testing.T) {
		e := publishedEvent(t, 1)
		user := id.UserID(uuid.New())
		_, err := e.Register(user, 1, testNow)
		require.NoError(t, err)
		_, err = e.AddToWaitingList(user, testNow)
		require.Error(t, err)
	})

	t.Run("double removal fails", func(t *testing.T) {
		e := publishedEvent(t, 1)
		_, err := e.Register(id.UserID(uuid.New()), 1, testNow)
		require.NoError(t, err)
		user := id.UserID(uuid.New())
		_, err = e.AddToWaitingList(user, testNow)
		require.NoError(t, err)
		_, err = e.RemoveFromWaitingList(user, testNow)
		require.NoError(t, err)
		_, err = e.RemoveFromWaitingList(user, testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestPromoteFromWaitingList(t *testing.T) {
	t.Run("fails while event is full", func(t *testing.T) {
		e := publishedEvent(t, 1)
		_, err := e.Register(id.UserID(uuid.New()), 1, testNow)
		require.NoError(t, err)
		user := id.UserID(uuid.New())
		_, err = e.AddToWaitingList(user, testNow)
		require.NoError(t, err)

		_, err = e.PromoteFromWaitingList(user, testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeCapacityExceeded))
	})

	t.Run("fails when user not waiting", func(t *testing.T) {
		e := publishedEvent(t, 2)
		_, err := e.PromoteFromWaitingList(id.UserID(uuid.New()), testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("promotion registers one seat and resequences", func(t *testing.T) {
		e := publishedEvent(t, 2)
		registered := id.UserID(uuid.New())
		_, err := e.Register(registered, 2, testNow)
		require.NoError(t, err)

		userC := id.UserID(uuid.New())
		userD := id.UserID(uuid.New())
		_, err = e.AddToWaitingList(userC, testNow)
		require.NoError(t, err)
		_, err = e.AddToWaitingList(userD, testNow)
		require.NoError(t, err)

		_, err = e.CancelRegistration(registered, testNow)
		require.NoError(t, err)

		effects, err := e.PromoteFromWaitingList(userC, testNow)
		require.NoError(t, err)
		assert.True(t, e.IsUserRegistered(userC))
		assert.Equal(t, 1, e.ConfirmedCount())
		assert.Equal(t, 1, e.WaitingListPosition(userD))
		requireContiguousPositions(t, e)
		assert.Equal(t, EffectWaitlistPromoted, effects[len(effects)-1].Kind)

		// promote then remove is not idempotent: the user already left the list
		_, err = e.RemoveFromWaitingList(userC, testNow)
		require.Error(t, err)
	})

	t.Run("capacity holds across arbitrary successful sequences", func(t *testing.T) {
		e := publishedEvent(t, 4)
		users := make([]id.UserID, 8)
		for i := range users {
			users[i] = id.UserID(uuid.New())
		}
		for _, u := range users {
			if _, err := e.Register(u, 2, testNow); err == nil {
				continue
			}
			_, _ = e.AddToWaitingList(u, testNow)
		}
		require.LessOrEqual(t, e.ConfirmedCount(), e.Capacity)

		_, err := e.CancelRegistration(users[0], testNow)
		require.NoError(t, err)
		for _, u := range users {
			_, _ = e.PromoteFromWaitingList(u, testNow)
			require.LessOrEqual(t, e.ConfirmedCount(), e.Capacity)
		}
		requireContiguousPositions(t, e)
	})
}

func TestUpdateCapacity(t *testing.T) {
	e := publishedEvent(t, 5)
	user := id.UserID(uuid.New())
	_, err := e.Register(user, 4, testNow)
	require.NoError(t, err)

	_, err = e.UpdateCapacity(3, testNow)
	require.Error(t, err)
	assert.Equal(t, 5, e.Capacity)

	_, err = e.UpdateCapacity(10, testNow)
	require.NoError(t, err)
	assert.Equal(t, 10, e.Capacity)
}

func TestBadges(t *testing.T) {
	days := 30

	t.Run("assignment computes expiry from duration", func(t *testing.T) {
		e := newTestEvent(t, 5)
		badge := id.BadgeID(uuid.New())
		_, err := e.AssignBadge(badge, &days, testNow)
		require.NoError(t, err)
		require.Len(t, e.Badges, 1)
		require.NotNil(t, e.Badges[0].ExpiresAt)
		assert.Equal(t, testNow.AddDate(0, 0, 30), *e.Badges[0].ExpiresAt)

		assert.False(t, e.Badges[0].IsExpired(testNow))
		assert.True(t, e.Badges[0].IsExpired(testNow.AddDate(0, 0, 31)))
	})

	t.Run("no expiry without duration", func(t *testing.T) {
		e := newTestEvent(t, 5)
		_, err := e.AssignBadge(id.BadgeID(uuid.New()), nil, testNow)
		require.NoError(t, err)
		assert.False(t, e.Badges[0].IsExpired(testNow.AddDate(10, 0, 0)))
	})

	t.Run("duplicate assignment fails", func(t *testing.T) {
		e := newTestEvent(t, 5)
		badge := id.BadgeID(uuid.New())
		_, err := e.AssignBadge(badge, nil, testNow)
		require.NoError(t, err)
		_, err = e.AssignBadge(badge, nil, testNow)
		require.Error(t, err)
	})

	t.Run("expired enumeration and removal", func(t *testing.T) {
		e := newTestEvent(t, 5)
		expired := id.BadgeID(uuid.New())
		fresh := id.BadgeID(uuid.New())
		_, err := e.AssignBadge(expired, &days, testNow)
		require.NoError(t, err)
		_, err = e.AssignBadge(fresh, nil, testNow)
		require.NoError(t, err)

		later := testNow.AddDate(0, 0, 31)
		list := e.ExpiredBadges(later)
		require.Len(t, list, 1)
		assert.Equal(t, expired, list[0].BadgeID)

		_, err = e.RemoveBadge(expired, later)
		require.NoError(t, err)
		assert.Len(t, e.Badges, 1)

		_, err = e.RemoveBadge(expired, later)
		require.Error(t, err)
	})
}

func TestOverlapsWith(t *testing.T) {
	a := newTestEvent(t, 5)
	b := newTestEvent(t, 5)
	assert.True(t, a.OverlapsWith(b))

	c, err := NewEvent(id.UserID(uuid.New()), "Later", "desc",
		testEnd.Add(time.Hour), testEnd.Add(2*time.Hour), 5, nil, testNow)
	require.NoError(t, err)
	assert.False(t, a.OverlapsWith(c))
	assert.False(t, a.OverlapsWith(nil))
}

func requireContiguousPositions(t *testing.T, e *Event) {
	t.Helper()
	seen := make(map[int]bool, len(e.WaitingList))
	for _, w := range e.WaitingList {
		require.False(t, seen[w.Position], "duplicate position %d", w.Position)
		seen[w.Position] = true
	}
	for i := 1; i <= len(e.WaitingList); i++ {
		require.True(t, seen[i], "missing position %d", i)
	}
}
