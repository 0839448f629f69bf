// Package domain defines the typed identifiers shared across modules.
//
// Each ID is a distinct named UUID type so the compiler rejects cross-type
// assignment (an EventID can never be passed where a UserID is expected).
// Parse functions enforce the trust-boundary invariant: IDs must be valid,
// non-empty, non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "lankaconnect/pkg/domain-errors"
)

type (
	// EventID identifies an Event aggregate.
	EventID uuid.UUID
	// UserID identifies a platform user.
	UserID uuid.UUID
	// RegistrationID identifies a registration within an event.
	RegistrationID uuid.UUID
	// PassID identifies a ticket tier within an event.
	PassID uuid.UUID
	// BadgeID identifies a promotional badge.
	BadgeID uuid.UUID
	// SignUpListID identifies a volunteer/item sign-up list within an event.
	SignUpListID uuid.UUID
)

func (id EventID) String() string        { return uuid.UUID(id).String() }
func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id RegistrationID) String() string { return uuid.UUID(id).String() }
func (id PassID) String() string         { return uuid.UUID(id).String() }
func (id BadgeID) String() string        { return uuid.UUID(id).String() }
func (id SignUpListID) String() string   { return uuid.UUID(id).String() }

// MarshalText renders IDs as canonical UUID strings in JSON and text encodings.
func (id EventID) MarshalText() ([]byte, error)        { return []byte(id.String()), nil }
func (id UserID) MarshalText() ([]byte, error)         { return []byte(id.String()), nil }
func (id RegistrationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id PassID) MarshalText() ([]byte, error)         { return []byte(id.String()), nil }
func (id BadgeID) MarshalText() ([]byte, error)        { return []byte(id.String()), nil }
func (id SignUpListID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }

func (id *EventID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = EventID(u)
	return err
}

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = UserID(u)
	return err
}

func (id *RegistrationID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = RegistrationID(u)
	return err
}

func (id *PassID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = PassID(u)
	return err
}

func (id *BadgeID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = BadgeID(u)
	return err
}

func (id *SignUpListID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = SignUpListID(u)
	return err
}

func (id EventID) IsZero() bool      { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsZero() bool       { return uuid.UUID(id) == uuid.Nil }
func (id PassID) IsZero() bool       { return uuid.UUID(id) == uuid.Nil }
func (id BadgeID) IsZero() bool      { return uuid.UUID(id) == uuid.Nil }
func (id SignUpListID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// NewEventID returns a fresh random EventID.
func NewEventID() EventID { return EventID(uuid.New()) }

// NewRegistrationID returns a fresh random RegistrationID.
func NewRegistrationID() RegistrationID { return RegistrationID(uuid.New()) }

// NewPassID returns a fresh random PassID.
func NewPassID() PassID { return PassID(uuid.New()) }

// NewSignUpListID returns a fresh random SignUpListID.
func NewSignUpListID() SignUpListID { return SignUpListID(uuid.New()) }

// ParseEventID parses and validates an event ID from its string form.
func ParseEventID(raw string) (EventID, error) {
	u, err := parseUUID(raw, "event id")
	return EventID(u), err
}

// ParseUserID parses and validates a user ID from its string form.
func ParseUserID(raw string) (UserID, error) {
	u, err := parseUUID(raw, "user id")
	return UserID(u), err
}

// ParsePassID parses and validates a pass ID from its string form.
func ParsePassID(raw string) (PassID, error) {
	u, err := parseUUID(raw, "pass id")
	return PassID(u), err
}

// ParseBadgeID parses and validates a badge ID from its string form.
func ParseBadgeID(raw string) (BadgeID, error) {
	u, err := parseUUID(raw, "badge id")
	return BadgeID(u), err
}

// ParseSignUpListID parses and validates a sign-up list ID from its string form.
func ParseSignUpListID(raw string) (SignUpListID, error) {
	u, err := parseUUID(raw, "sign-up list id")
	return SignUpListID(u), err
}

func parseUUID(raw, what string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" is required")
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" is not a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" must not be the nil UUID")
	}
	return u, nil
}
