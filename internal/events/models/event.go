package models

import (
	"sort"
	"strings"
	"time"

	id "lankaconnect/pkg/domain"
	dErrors "lankaconnect/pkg/domain-errors"
	"lankaconnect/pkg/money"
)

// Event is the aggregate root for event registration and capacity management.
// It owns its registrations, waiting list, passes, and badge assignments; all
// mutations go through aggregate methods so the invariants below hold after
// every call that returns nil.
//
// Invariants:
//   - ConfirmedCount() <= Capacity whenever Status accepts registrations
//   - waiting-list positions are unique and contiguous starting at 1
//   - at most one active registration and one waiting-list entry per user
//   - pass inventory: Available + Reserved <= Total, none negative
//   - status transitions follow the lifecycle in status.go; terminal statuses
//     only allow Archive (from Completed/Cancelled)
//
// Mutating methods return the effect descriptors the caller should dispatch
// after commit, and a domain error on any rule violation. State is never
// partially mutated on failure.
type Event struct {
	ID           id.EventID
	OrganizerID  id.UserID
	Title        string
	Description  string
	Status       EventStatus
	StatusReason string
	Capacity     int
	StartAt      time.Time
	EndAt        time.Time
	TicketPrice  *money.Money

	Registrations []*Registration
	WaitingList   []*WaitingListEntry
	Passes        []*Pass
	Badges        []*EventBadge
	SignUpLists   []*SignUpList

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEvent validates and builds a draft event.
func NewEvent(organizerID id.UserID, title, description string, startAt, endAt time.Time, capacity int, ticketPrice *money.Money, now time.Time) (*Event, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "title is required")
	}
	if len(title) > 200 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "title must be 200 characters or less")
	}
	if description == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "description is required")
	}
	if organizerID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "organizer id is required")
	}
	if !startAt.After(now) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "start date cannot be in the past")
	}
	if !endAt.After(startAt) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "end date must be after start date")
	}
	if capacity <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "capacity must be greater than 0")
	}
	return &Event{
		ID:          id.NewEventID(),
		OrganizerID: organizerID,
		Title:       title,
		Description: description,
		Status:      StatusDraft,
		Capacity:    capacity,
		StartAt:     startAt,
		EndAt:       endAt,
		TicketPrice: ticketPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ConfirmedCount is the number of seats held by active registrations.
func (e *Event) ConfirmedCount() int {
	total := 0
	for _, r := range e.Registrations {
		if r.IsActive() {
			total += r.Quantity
		}
	}
	return total
}

// IsAtCapacity reports whether no seats remain.
func (e *Event) IsAtCapacity() bool { return e.ConfirmedCount() >= e.Capacity }

// HasCapacityFor reports whether qty more seats fit.
func (e *Event) HasCapacityFor(qty int) bool { return e.ConfirmedCount()+qty <= e.Capacity }

func (e *Event) activeRegistration(userID id.UserID) *Registration {
	for _, r := range e.Registrations {
		if r.UserID == userID && r.IsActive() {
			return r
		}
	}
	return nil
}

// IsUserRegistered reports whether the user holds an active registration.
func (e *Event) IsUserRegistered(userID id.UserID) bool {
	return e.activeRegistration(userID) != nil
}

// -----------------------------------------------------------------------------
// Lifecycle transitions
// -----------------------------------------------------------------------------

// SubmitForReview moves a draft into the review queue.
func (e *Event) SubmitForReview(now time.Time) ([]Effect, error) {
	if e.Status != StatusDraft {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"only draft events can be submitted for review, event is %s", e.Status)
	}
	e.Status = StatusUnderReview
	e.touch(now)
	return []Effect{effect(EffectEventSubmitted, e.ID, now)}, nil
}

// Approve publishes an event that passed review.
func (e *Event) Approve(adminID id.UserID, now time.Time) ([]Effect, error) {
	if adminID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "admin id is required")
	}
	if e.Status != StatusUnderReview {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"only events under review can be approved, event is %s", e.Status)
	}
	e.Status = StatusPublished
	e.touch(now)
	approved := effect(EffectEventApproved, e.ID, now)
	approved.UserID = adminID
	return []Effect{approved, effect(EffectEventPublished, e.ID, now)}, nil
}

// Reject returns an event under review to draft with a mandatory reason.
func (e *Event) Reject(adminID id.UserID, reason string, now time.Time) ([]Effect, error) {
	if adminID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "admin id is required")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "rejection reason is required")
	}
	if e.Status != StatusUnderReview {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"only events under review can be rejected, event is %s", e.Status)
	}
	e.Status = StatusDraft
	e.StatusReason = reason
	e.touch(now)
	rejected := effect(EffectEventRejected, e.ID, now)
	rejected.UserID = adminID
	rejected.Reason = reason
	return []Effect{rejected}, nil
}

// Publish makes a draft or reviewed event visible and open for registration.
func (e *Event) Publish(now time.Time) ([]Effect, error) {
	if e.Status == StatusPublished {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "event is already published")
	}
	if e.Status != StatusDraft && e.Status != StatusUnderReview {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"only draft or under-review events can be published, event is %s", e.Status)
	}
	e.Status = StatusPublished
	e.touch(now)
	return []Effect{effect(EffectEventPublished, e.ID, now)}, nil
}

// Unpublish reverses a publish back to draft. It is a guarded reversal, not a
// wipe: any registration with settled payment blocks it.
func (e *Event) Unpublish(now time.Time) ([]Effect, error) {
	if e.Status != StatusPublished {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"only published events can be unpublished, event is %s", e.Status)
	}
	for _, r := range e.Registrations {
		if r.PaymentStatus.IsSettled() {
			return nil, dErrors.New(dErrors.CodeInvariantViolation,
				"cannot unpublish an event with paid registrations")
		}
	}
	e.Status = StatusDraft
	e.touch(now)
	return []Effect{effect(EffectEventUnpublished, e.ID, now)}, nil
}

// Activate marks a published event as running. Allowed only at or after the
// scheduled start.
func (e *Event) Activate(now time.Time) ([]Effect, error) {
	if e.Status != StatusPublished {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"only published events can be activated, event is %s", e.Status)
	}
	if now.Before(e.StartAt) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			"event cannot be activated before its start date")
	}
	e.Status = StatusActive
	e.touch(now)
	return []Effect{effect(EffectEventActivated, e.ID, now)}, nil
}

// Cancel moves any non-terminal event to Cancelled with a mandatory reason.
func (e *Event) Cancel(reason string, now time.Time) ([]Effect, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "cancellation reason is required")
	}
	if e.Status.IsTerminal() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"cannot cancel an event that is %s", e.Status)
	}
	e.Status = StatusCancelled
	e.StatusReason = reason
	e.touch(now)
	cancelled := effect(EffectEventCancelled, e.ID, now)
	cancelled.Reason = reason
	return []Effect{cancelled}, nil
}

// Postpone moves any non-terminal event to Postponed with a mandatory reason.
func (e *Event) Postpone(reason string, now time.Time) ([]Effect, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "postponement reason is required")
	}
	if e.Status.IsTerminal() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"cannot postpone an event that is %s", e.Status)
	}
	e.Status = StatusPostponed
	e.StatusReason = reason
	e.touch(now)
	postponed := effect(EffectEventPostponed, e.ID, now)
	postponed.Reason = reason
	return []Effect{postponed}, nil
}

// Complete closes out a published or active event after its end date.
func (e *Event) Complete(now time.Time) ([]Effect, error) {
	if e.Status != StatusPublished && e.Status != StatusActive {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"only published or active events can be completed, event is %s", e.Status)
	}
	if !now.After(e.EndAt) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			"event cannot be completed before its end date")
	}
	e.Status = StatusCompleted
	e.touch(now)
	return []Effect{effect(EffectEventCompleted, e.ID, now)}, nil
}

// Archive retires a completed or cancelled event.
func (e *Event) Archive(now time.Time) ([]Effect, error) {
	if e.Status != StatusCompleted && e.Status != StatusCancelled {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"only completed or cancelled events can be archived, event is %s", e.Status)
	}
	e.Status = StatusArchived
	e.touch(now)
	return []Effect{effect(EffectEventArchived, e.ID, now)}, nil
}

// UpdateCapacity changes the seat count. Capacity can never drop below the
// seats already held.
func (e *Event) UpdateCapacity(newCapacity int, now time.Time) ([]Effect, error) {
	if newCapacity <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "capacity must be greater than 0")
	}
	if newCapacity < e.ConfirmedCount() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			"cannot reduce capacity below current registrations")
	}
	e.Capacity = newCapacity
	e.touch(now)
	updated := effect(EffectCapacityUpdated, e.ID, now)
	updated.Quantity = newCapacity
	return []Effect{updated}, nil
}

// OverlapsWith reports whether two events overlap in time. Used by the
// scheduling-conflict query; not a mutation.
func (e *Event) OverlapsWith(other *Event) bool {
	if other == nil {
		return false
	}
	return !e.StartAt.After(other.EndAt) && !other.StartAt.After(e.EndAt)
}

// -----------------------------------------------------------------------------
// Registrations and capacity
// -----------------------------------------------------------------------------

// Register signs a user up with the given seat quantity.
func (e *Event) Register(userID id.UserID, quantity int, now time.Time) ([]Effect, error) {
	if userID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	if quantity <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "quantity must be greater than 0")
	}
	if !e.Status.AcceptsRegistrations() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"event is not open for registration, event is %s", e.Status)
	}
	if e.IsUserRegistered(userID) {
		return nil, dErrors.New(dErrors.CodeConflict, "user is already registered for this event")
	}
	if !e.HasCapacityFor(quantity) {
		return nil, dErrors.New(dErrors.CodeCapacityExceeded, "event is at full capacity")
	}
	e.Registrations = append(e.Registrations, newRegistration(e.ID, userID, quantity, now))
	e.touch(now)
	confirmed := effect(EffectRegistrationConfirmed, e.ID, now)
	confirmed.UserID = userID
	confirmed.Quantity = quantity
	return []Effect{confirmed}, nil
}

// CancelRegistration releases a user's seats. When a spot frees up and the
// waiting list is non-empty, the head entry is notified; promotion stays an
// explicit separate operation.
func (e *Event) CancelRegistration(userID id.UserID, now time.Time) ([]Effect, error) {
	reg := e.activeRegistration(userID)
	if reg == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "user is not registered for this event")
	}
	reg.cancel(now)
	e.touch(now)

	cancelled := effect(EffectRegistrationCancelled, e.ID, now)
	cancelled.UserID = userID
	effects := []Effect{cancelled}

	if !e.IsAtCapacity() && len(e.WaitingList) > 0 {
		head := e.waitingListHead()
		spot := effect(EffectWaitlistSpotAvailable, e.ID, now)
		spot.UserID = head.UserID
		spot.Position = head.Position
		effects = append(effects, spot)
	}
	return effects, nil
}

// UpdateRegistration changes a registration's seat quantity in place. Zero or
// negative quantities are rejected; cancellation is its own operation.
func (e *Event) UpdateRegistration(userID id.UserID, newQuantity int, now time.Time) ([]Effect, error) {
	if userID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	if newQuantity <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "quantity must be greater than 0")
	}
	reg := e.activeRegistration(userID)
	if reg == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "user is not registered for this event")
	}
	delta := newQuantity - reg.Quantity
	if delta > 0 && !e.HasCapacityFor(delta) {
		return nil, dErrors.New(dErrors.CodeCapacityExceeded,
			"insufficient capacity to increase registration quantity")
	}
	reg.updateQuantity(newQuantity, now)
	e.touch(now)
	updated := effect(EffectRegistrationUpdated, e.ID, now)
	updated.UserID = userID
	updated.Quantity = newQuantity
	return []Effect{updated}, nil
}

// -----------------------------------------------------------------------------
// Waiting list
// -----------------------------------------------------------------------------

// AddToWaitingList appends a user to the waiting list. The list only accepts
// entries while the event is full and open for registration: a Postponed or
// unpublished event rejects joins even when full, the same guard Register
// applies.
func (e *Event) AddToWaitingList(userID id.UserID, now time.Time) ([]Effect, error) {
	if userID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	if !e.Status.AcceptsRegistrations() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation,
			"event is not open for registration, event is %s", e.Status)
	}
	if !e.IsAtCapacity() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "event still has available capacity")
	}
	if e.IsUserRegistered(userID) {
		return nil, dErrors.New(dErrors.CodeConflict, "user is already registered for this event")
	}
	if e.waitingListEntry(userID) != nil {
		return nil, dErrors.New(dErrors.CodeConflict, "user is already on the waiting list")
	}
	position := len(e.WaitingList) + 1
	e.WaitingList = append(e.WaitingList, &WaitingListEntry{
		EventID:  e.ID,
		UserID:   userID,
		Position: position,
		JoinedAt: now,
	})
	e.touch(now)
	joined := effect(EffectWaitlistJoined, e.ID, now)
	joined.UserID = userID
	joined.Position = position
	return []Effect{joined}, nil
}

// RemoveFromWaitingList drops a user and closes the gap in positions. Double
// removal fails; removal is not idempotent.
func (e *Event) RemoveFromWaitingList(userID id.UserID, now time.Time) ([]Effect, error) {
	entry := e.waitingListEntry(userID)
	if entry == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "user is not on the waiting list")
	}
	e.dropWaitingListEntry(userID)
	e.resequenceWaitingList()
	e.touch(now)
	left := effect(EffectWaitlistLeft, e.ID, now)
	left.UserID = userID
	return []Effect{left}, nil
}

// PromoteFromWaitingList turns a waiting-list entry into a confirmed
// single-seat registration once capacity allows.
func (e *Event) PromoteFromWaitingList(userID id.UserID, now time.Time) ([]Effect, error) {
	if userID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	if !e.HasCapacityFor(1) {
		return nil, dErrors.New(dErrors.CodeCapacityExceeded, "no capacity available to promote user")
	}
	entry := e.waitingListEntry(userID)
	if entry == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "user is not on the waiting list")
	}
	registerEffects, err := e.Register(userID, 1, now)
	if err != nil {
		return nil, err
	}
	e.dropWaitingListEntry(userID)
	e.resequenceWaitingList()
	e.touch(now)
	promoted := effect(EffectWaitlistPromoted, e.ID, now)
	promoted.UserID = userID
	return append(registerEffects, promoted), nil
}

// WaitingListPosition returns the user's 1-based position, or 0 if absent.
func (e *Event) WaitingListPosition(userID id.UserID) int {
	if entry := e.waitingListEntry(userID); entry != nil {
		return entry.Position
	}
	return 0
}

func (e *Event) waitingListEntry(userID id.UserID) *WaitingListEntry {
	for _, w := range e.WaitingList {
		if w.UserID == userID {
			return w
		}
	}
	return nil
}

func (e *Event) waitingListHead() *WaitingListEntry {
	head := e.WaitingList[0]
	for _, w := range e.WaitingList[1:] {
		if w.Position < head.Position {
			head = w
		}
	}
	return head
}

func (e *Event) dropWaitingListEntry(userID id.UserID) {
	for i, w := range e.WaitingList {
		if w.UserID == userID {
			e.WaitingList = append(e.WaitingList[:i], e.WaitingList[i+1:]...)
			return
		}
	}
}

func (e *Event) resequenceWaitingList() {
	sort.SliceStable(e.WaitingList, func(i, j int) bool {
		return e.WaitingList[i].Position < e.WaitingList[j].Position
	})
	for i, w := range e.WaitingList {
		w.Position = i + 1
	}
}

// -----------------------------------------------------------------------------
// Passes
// -----------------------------------------------------------------------------

// AddPass attaches a ticket tier. Names are unique per event, case-insensitive.
func (e *Event) AddPass(pass *Pass, now time.Time) ([]Effect, error) {
	if pass == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "pass is required")
	}
	for _, p := range e.Passes {
		if strings.EqualFold(p.Name, pass.Name) {
			return nil, dErrors.Newf(dErrors.CodeConflict,
				"a pass with the name %q already exists", pass.Name)
		}
	}
	e.Passes = append(e.Passes, pass)
	e.touch(now)
	added := effect(EffectPassAdded, e.ID, now)
	added.PassID = pass.ID
	return []Effect{added}, nil
}

// RemovePass detaches a ticket tier. Tiers with reserved or sold units stay to
// avoid orphaning purchases.
func (e *Event) RemovePass(passID id.PassID, now time.Time) ([]Effect, error) {
	idx := -1
	for i, p := range e.Passes {
		if p.ID == passID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, dErrors.New(dErrors.CodeNotFound, "pass not found")
	}
	if e.Passes[idx].HasOutstandingUnits() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			"cannot remove a pass with reserved or sold units")
	}
	e.Passes = append(e.Passes[:idx], e.Passes[idx+1:]...)
	e.touch(now)
	removed := effect(EffectPassRemoved, e.ID, now)
	removed.PassID = passID
	return []Effect{removed}, nil
}

// Pass returns the tier with the given ID, or nil.
func (e *Event) Pass(passID id.PassID) *Pass {
	for _, p := range e.Passes {
		if p.ID == passID {
			return p
		}
	}
	return nil
}

// ReservePass reserves qty units on the named tier.
func (e *Event) ReservePass(passID id.PassID, qty int, now time.Time) ([]Effect, error) {
	pass := e.Pass(passID)
	if pass == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "pass not found")
	}
	if err := pass.Reserve(qty, now); err != nil {
		return nil, err
	}
	e.touch(now)
	return nil, nil
}

// ReleasePass returns qty reserved units on the named tier.
func (e *Event) ReleasePass(passID id.PassID, qty int, now time.Time) ([]Effect, error) {
	pass := e.Pass(passID)
	if pass == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "pass not found")
	}
	if err := pass.Release(qty, now); err != nil {
		return nil, err
	}
	e.touch(now)
	return nil, nil
}

// -----------------------------------------------------------------------------
// Sign-up lists
// -----------------------------------------------------------------------------

// AddSignUpList attaches a volunteer/item sign-up sheet. Categories are unique
// per event, case-insensitive.
func (e *Event) AddSignUpList(list *SignUpList, now time.Time) ([]Effect, error) {
	if list == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "sign-up list is required")
	}
	for _, l := range e.SignUpLists {
		if strings.EqualFold(l.Category, list.Category) {
			return nil, dErrors.Newf(dErrors.CodeConflict,
				"a sign-up list with category %q already exists", list.Category)
		}
	}
	e.SignUpLists = append(e.SignUpLists, list)
	e.touch(now)
	added := effect(EffectSignUpListAdded, e.ID, now)
	added.SignUpListID = list.ID
	added.Category = list.Category
	return []Effect{added}, nil
}

// RemoveSignUpList detaches a sign-up sheet. Lists with commitments stay so
// pledged users are never silently dropped.
func (e *Event) RemoveSignUpList(listID id.SignUpListID, now time.Time) ([]Effect, error) {
	idx := -1
	for i, l := range e.SignUpLists {
		if l.ID == listID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, dErrors.New(dErrors.CodeNotFound, "sign-up list not found")
	}
	if e.SignUpLists[idx].HasCommitments() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			"cannot remove a sign-up list with existing commitments")
	}
	e.SignUpLists = append(e.SignUpLists[:idx], e.SignUpLists[idx+1:]...)
	e.touch(now)
	removed := effect(EffectSignUpListRemoved, e.ID, now)
	removed.SignUpListID = listID
	return []Effect{removed}, nil
}

// SignUpList returns the list with the given ID, or nil.
func (e *Event) SignUpList(listID id.SignUpListID) *SignUpList {
	for _, l := range e.SignUpLists {
		if l.ID == listID {
			return l
		}
	}
	return nil
}

// SignUpListByCategory returns the list with the given category
// (case-insensitive), or nil.
func (e *Event) SignUpListByCategory(category string) *SignUpList {
	for _, l := range e.SignUpLists {
		if strings.EqualFold(l.Category, category) {
			return l
		}
	}
	return nil
}

// CommitToSignUpList records a user's pledge on the named list.
func (e *Event) CommitToSignUpList(listID id.SignUpListID, userID id.UserID, item string, quantity int, now time.Time) ([]Effect, error) {
	list := e.SignUpList(listID)
	if list == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "sign-up list not found")
	}
	if err := list.AddCommitment(userID, item, quantity, now); err != nil {
		return nil, err
	}
	e.touch(now)
	committed := effect(EffectSignUpCommitted, e.ID, now)
	committed.SignUpListID = listID
	committed.UserID = userID
	committed.Item = strings.TrimSpace(item)
	committed.Quantity = quantity
	return []Effect{committed}, nil
}

// CancelSignUpCommitment withdraws a user's pledge from the named list.
func (e *Event) CancelSignUpCommitment(listID id.SignUpListID, userID id.UserID, now time.Time) ([]Effect, error) {
	list := e.SignUpList(listID)
	if list == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "sign-up list not found")
	}
	if err := list.CancelCommitment(userID, now); err != nil {
		return nil, err
	}
	e.touch(now)
	cancelled := effect(EffectSignUpCancelled, e.ID, now)
	cancelled.SignUpListID = listID
	cancelled.UserID = userID
	return []Effect{cancelled}, nil
}

// -----------------------------------------------------------------------------
// Badges
// -----------------------------------------------------------------------------

// AssignBadge attaches a badge, optionally expiring after durationDays.
func (e *Event) AssignBadge(badgeID id.BadgeID, durationDays *int, now time.Time) ([]Effect, error) {
	if badgeID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "badge id is required")
	}
	if durationDays != nil && *durationDays <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "badge duration must be greater than 0 days")
	}
	for _, b := range e.Badges {
		if b.BadgeID == badgeID {
			return nil, dErrors.New(dErrors.CodeConflict, "badge is already assigned to this event")
		}
	}
	assignment := &EventBadge{
		EventID:      e.ID,
		BadgeID:      badgeID,
		AssignedAt:   now,
		DurationDays: durationDays,
	}
	if durationDays != nil {
		expires := now.AddDate(0, 0, *durationDays)
		assignment.ExpiresAt = &expires
	}
	e.Badges = append(e.Badges, assignment)
	e.touch(now)
	assigned := effect(EffectBadgeAssigned, e.ID, now)
	assigned.BadgeID = badgeID
	return []Effect{assigned}, nil
}

// RemoveBadge detaches a badge assignment.
func (e *Event) RemoveBadge(badgeID id.BadgeID, now time.Time) ([]Effect, error) {
	for i, b := range e.Badges {
		if b.BadgeID == badgeID {
			e.Badges = append(e.Badges[:i], e.Badges[i+1:]...)
			e.touch(now)
			removed := effect(EffectBadgeRemoved, e.ID, now)
			removed.BadgeID = badgeID
			return []Effect{removed}, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "badge is not assigned to this event")
}

// ExpiredBadges returns the assignments past their deadline at now.
func (e *Event) ExpiredBadges(now time.Time) []*EventBadge {
	var expired []*EventBadge
	for _, b := range e.Badges {
		if b.IsExpired(now) {
			expired = append(expired, b)
		}
	}
	return expired
}

func (e *Event) touch(now time.Time) { e.UpdatedAt = now }
