// Package service orchestrates the event aggregate: each operation loads the
// aggregate inside a transaction, applies exactly one domain method, persists
// the result, and dispatches the returned effect descriptors after commit.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	eventmetrics "lankaconnect/internal/events/metrics"
	"lankaconnect/internal/events/models"
	id "lankaconnect/pkg/domain"
	dErrors "lankaconnect/pkg/domain-errors"
	"lankaconnect/pkg/money"
	"lankaconnect/pkg/platform/sentinel"
	"lankaconnect/pkg/requestcontext"
)

// EventStore is the persistence collaborator for Event aggregates. Load and
// save must be called inside the same StoreTx run; implementations translate
// storage facts into sentinel errors.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, eventID id.EventID) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, eventID id.EventID) error
	ListWithExpiredBadges(ctx context.Context, now time.Time) ([]*models.Event, error)
}

// EffectPublisher dispatches effect descriptors after a successful commit.
// Delivery is at-least-once; publish failures are logged, never rolled back.
type EffectPublisher interface {
	Publish(ctx context.Context, effects []models.Effect) error
}

// EventService is the application entry point for all event operations.
type EventService struct {
	store     EventStore
	tx        StoreTx
	publisher EffectPublisher
	logger    *slog.Logger
	metrics   *eventmetrics.Metrics
}

type Option func(s *EventService)

func WithLogger(logger *slog.Logger) Option {
	return func(s *EventService) { s.logger = logger }
}

func WithMetrics(m *eventmetrics.Metrics) Option {
	return func(s *EventService) { s.metrics = m }
}

func WithPublisher(p EffectPublisher) Option {
	return func(s *EventService) { s.publisher = p }
}

func WithTx(tx StoreTx) Option {
	return func(s *EventService) { s.tx = tx }
}

// NewEventService constructs an EventService. Without options it runs with an
// in-memory transaction boundary, a discarding logger, and no publisher.
func NewEventService(store EventStore, opts ...Option) *EventService {
	s := &EventService{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = NewMemoryTx()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// CreateEventParams carries the validated-at-the-domain inputs for CreateEvent.
type CreateEventParams struct {
	OrganizerID id.UserID
	Title       string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	Capacity    int
	TicketPrice *money.Money
}

// CreateEvent builds a draft event and persists it.
func (s *EventService) CreateEvent(ctx context.Context, p CreateEventParams) (*models.Event, error) {
	event, err := models.NewEvent(p.OrganizerID, p.Title, p.Description,
		p.StartAt, p.EndAt, p.Capacity, p.TicketPrice, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, event); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "event already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create event")
	}
	s.logger.InfoContext(ctx, "event created",
		"event_id", event.ID.String(), "organizer_id", p.OrganizerID.String())
	return event, nil
}

// GetEvent loads a single aggregate outside any transaction.
func (s *EventService) GetEvent(ctx context.Context, eventID id.EventID) (*models.Event, error) {
	start := time.Now()
	defer s.observeGetEvent(start)

	event, err := s.store.GetByID(ctx, eventID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return event, nil
}

// mutate runs one aggregate method transactionally and publishes its effects
// after commit. All lifecycle and registration operations funnel through here.
func (s *EventService) mutate(ctx context.Context, eventID id.EventID, op string,
	fn func(event *models.Event, now time.Time) ([]models.Effect, error)) error {

	if eventID.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "event id is required")
	}

	var effects []models.Effect
	err := s.tx.RunInTx(ctx, eventID, func(txCtx context.Context) error {
		event, err := s.store.GetByID(txCtx, eventID)
		if err != nil {
			return translateStoreErr(err)
		}
		effects, err = fn(event, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.store.Update(txCtx, event); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist event")
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, op, eventID, err)
		return err
	}

	s.publishEffects(ctx, op, effects)
	s.countEffects(effects)
	return nil
}

// -----------------------------------------------------------------------------
// Lifecycle operations
// -----------------------------------------------------------------------------

func (s *EventService) SubmitForReview(ctx context.Context, eventID id.EventID) error {
	return s.mutate(ctx, eventID, "submit_for_review",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.SubmitForReview(now)
		})
}

func (s *EventService) Approve(ctx context.Context, eventID id.EventID, adminID id.UserID) error {
	return s.mutate(ctx, eventID, "approve",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.Approve(adminID, now)
		})
}

func (s *EventService) Reject(ctx context.Context, eventID id.EventID, adminID id.UserID, reason string) error {
	return s.mutate(ctx, eventID, "reject",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.Reject(adminID, reason, now)
		})
}

func (s *EventService) Publish(ctx context.Context, eventID id.EventID) error {
	return s.mutate(ctx, eventID, "publish",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.Publish(now)
		})
}

func (s *EventService) Unpublish(ctx context.Context, eventID id.EventID) error {
	return s.mutate(ctx, eventID, "unpublish",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.Unpublish(now)
		})
}

func (s *EventService) Activate(ctx context.Context, eventID id.EventID) error {
	return s.mutate(ctx, eventID, "activate",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.Activate(now)
		})
}

func (s *EventService) Cancel(ctx context.Context, eventID id.EventID, reason string) error {
	return s.mutate(ctx, eventID, "cancel",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.Cancel(reason, now)
		})
}

func (s *EventService) Postpone(ctx context.Context, eventID id.EventID, reason string) error {
	return s.mutate(ctx, eventID, "postpone",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.Postpone(reason, now)
		})
}

func (s *EventService) Complete(ctx context.Context, eventID id.EventID) error {
	return s.mutate(ctx, eventID, "complete",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.Complete(now)
		})
}

func (s *EventService) Archive(ctx context.Context, eventID id.EventID) error {
	return s.mutate(ctx, eventID, "archive",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.Archive(now)
		})
}

func (s *EventService) UpdateCapacity(ctx context.Context, eventID id.EventID, capacity int) error {
	return s.mutate(ctx, eventID, "update_capacity",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.UpdateCapacity(capacity, now)
		})
}

// -----------------------------------------------------------------------------
// Registrations and waiting list
// -----------------------------------------------------------------------------

func (s *EventService) Register(ctx context.Context, eventID id.EventID, userID id.UserID, quantity int) error {
	start := time.Now()
	defer s.observeRegister(start)
	return s.mutate(ctx, eventID, "register",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.Register(userID, quantity, now)
		})
}

func (s *EventService) CancelRegistration(ctx context.Context, eventID id.EventID, userID id.UserID) error {
	return s.mutate(ctx, eventID, "cancel_registration",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.CancelRegistration(userID, now)
		})
}

func (s *EventService) UpdateRegistration(ctx context.Context, eventID id.EventID, userID id.UserID, quantity int) error {
	start := time.Now()
	defer s.observeRegister(start)
	return s.mutate(ctx, eventID, "update_registration",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.UpdateRegistration(userID, quantity, now)
		})
}

func (s *EventService) AddToWaitingList(ctx context.Context, eventID id.EventID, userID id.UserID) error {
	return s.mutate(ctx, eventID, "add_to_waiting_list",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.AddToWaitingList(userID, now)
		})
}

func (s *EventService) RemoveFromWaitingList(ctx context.Context, eventID id.EventID, userID id.UserID) error {
	return s.mutate(ctx, eventID, "remove_from_waiting_list",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.RemoveFromWaitingList(userID, now)
		})
}

func (s *EventService) PromoteFromWaitingList(ctx context.Context, eventID id.EventID, userID id.UserID) error {
	return s.mutate(ctx, eventID, "promote_from_waiting_list",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.PromoteFromWaitingList(userID, now)
		})
}

// -----------------------------------------------------------------------------
// Passes and badges
// -----------------------------------------------------------------------------

// AddPassParams carries the inputs for AddPass.
type AddPassParams struct {
	Name  string
	Price money.Money
	Total int
}

func (s *EventService) AddPass(ctx context.Context, eventID id.EventID, p AddPassParams) (id.PassID, error) {
	var passID id.PassID
	err := s.mutate(ctx, eventID, "add_pass",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			pass, err := models.NewPass(eventID, p.Name, p.Price, p.Total, now)
			if err != nil {
				return nil, err
			}
			passID = pass.ID
			return e.AddPass(pass, now)
		})
	return passID, err
}

func (s *EventService) RemovePass(ctx context.Context, eventID id.EventID, passID id.PassID) error {
	return s.mutate(ctx, eventID, "remove_pass",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.RemovePass(passID, now)
		})
}

func (s *EventService) ReservePass(ctx context.Context, eventID id.EventID, passID id.PassID, qty int) error {
	return s.mutate(ctx, eventID, "reserve_pass",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.ReservePass(passID, qty, now)
		})
}

func (s *EventService) ReleasePass(ctx context.Context, eventID id.EventID, passID id.PassID, qty int) error {
	return s.mutate(ctx, eventID, "release_pass",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.ReleasePass(passID, qty, now)
		})
}

// -----------------------------------------------------------------------------
// Sign-up lists
// -----------------------------------------------------------------------------

// AddSignUpListParams carries the inputs for AddSignUpList. An empty Items
// slice leaves the list open to free-text commitments.
type AddSignUpListParams struct {
	Category    string
	Description string
	Items       []string
}

func (s *EventService) AddSignUpList(ctx context.Context, eventID id.EventID, p AddSignUpListParams) (id.SignUpListID, error) {
	var listID id.SignUpListID
	err := s.mutate(ctx, eventID, "add_signup_list",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			list, err := models.NewSignUpList(eventID, p.Category, p.Description, p.Items, now)
			if err != nil {
				return nil, err
			}
			listID = list.ID
			return e.AddSignUpList(list, now)
		})
	return listID, err
}

func (s *EventService) RemoveSignUpList(ctx context.Context, eventID id.EventID, listID id.SignUpListID) error {
	return s.mutate(ctx, eventID, "remove_signup_list",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.RemoveSignUpList(listID, now)
		})
}

func (s *EventService) CommitToSignUpList(ctx context.Context, eventID id.EventID, listID id.SignUpListID, userID id.UserID, item string, quantity int) error {
	return s.mutate(ctx, eventID, "add_signup_commitment",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.CommitToSignUpList(listID, userID, item, quantity, now)
		})
}

func (s *EventService) CancelSignUpCommitment(ctx context.Context, eventID id.EventID, listID id.SignUpListID, userID id.UserID) error {
	return s.mutate(ctx, eventID, "cancel_signup_commitment",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.CancelSignUpCommitment(listID, userID, now)
		})
}

func (s *EventService) AssignBadge(ctx context.Context, eventID id.EventID, badgeID id.BadgeID, durationDays *int) error {
	return s.mutate(ctx, eventID, "assign_badge",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.AssignBadge(badgeID, durationDays, now)
		})
}

func (s *EventService) RemoveBadge(ctx context.Context, eventID id.EventID, badgeID id.BadgeID) error {
	return s.mutate(ctx, eventID, "remove_badge",
		func(e *models.Event, now time.Time) ([]models.Effect, error) {
			return e.RemoveBadge(badgeID, now)
		})
}

// -----------------------------------------------------------------------------
// Internals
// -----------------------------------------------------------------------------

func (s *EventService) publishEffects(ctx context.Context, op string, effects []models.Effect) {
	if s.publisher == nil || len(effects) == 0 {
		return
	}
	// Post-commit: a publish failure must not fail the committed operation.
	if err := s.publisher.Publish(ctx, effects); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish effects",
			"operation", op, "effect_count", len(effects), "error", err.Error())
	}
}

func (s *EventService) countEffects(effects []models.Effect) {
	if s.metrics == nil {
		return
	}
	for _, ef := range effects {
		switch ef.Kind {
		case models.EffectRegistrationConfirmed:
			s.metrics.RegistrationsConfirmed.Inc()
		case models.EffectRegistrationCancelled:
			s.metrics.RegistrationsCancelled.Inc()
		case models.EffectWaitlistJoined:
			s.metrics.WaitlistJoins.Inc()
		case models.EffectWaitlistPromoted:
			s.metrics.WaitlistPromotions.Inc()
		}
	}
}

func (s *EventService) logFailure(ctx context.Context, op string, eventID id.EventID, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeInternal || code == dErrors.CodeUnavailable {
		s.logger.ErrorContext(ctx, "event operation failed",
			"operation", op, "event_id", eventID.String(), "error", err.Error())
		return
	}
	if code == dErrors.CodeCapacityExceeded && s.metrics != nil {
		s.metrics.CapacityRejections.Inc()
	}
	s.logger.DebugContext(ctx, "event operation rejected",
		"operation", op, "event_id", eventID.String(), "code", string(code))
}

func (s *EventService) observeRegister(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveRegister(start)
	}
}

func (s *EventService) observeGetEvent(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveGetEvent(start)
	}
}

func translateStoreErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "event not found")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "event store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load event")
	}
}
