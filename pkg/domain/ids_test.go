package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "lankaconnect/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseEventID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseEventID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseEventID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		eventID, err := ParseEventID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, EventID(validUUID), eventID)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety.
func TestTypeDistinction(t *testing.T) {
	eventID := EventID(uuid.New())
	userID := UserID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ EventID = userID   // compile error
	// var _ UserID = eventID   // compile error

	// Verify they're distinct at runtime too
	assert.NotEqual(t, uuid.UUID(eventID), uuid.UUID(userID))
}

// TestParseID_TrustBoundary validates parsing rules at API entry points.
func TestParseID_TrustBoundary(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// Attack vectors
		{"SQL injection attempt", "'; DROP TABLE events;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "550e8400​-e29b-41d4-a716-446655440000", true},

		// Edge cases
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},

		// Valid
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUserID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestAllIDTypes_ConsistentBehavior ensures all ID types parse identically.
func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()
	invalidInputs := []string{"", "invalid", uuid.Nil.String()}

	t.Run("all accept valid UUID", func(t *testing.T) {
		_, errEvent := ParseEventID(validUUID)
		_, errUser := ParseUserID(validUUID)
		_, errPass := ParsePassID(validUUID)
		_, errBadge := ParseBadgeID(validUUID)

		require.NoError(t, errEvent)
		require.NoError(t, errUser)
		require.NoError(t, errPass)
		require.NoError(t, errBadge)
	})

	for _, input := range invalidInputs {
		t.Run("all reject: "+input, func(t *testing.T) {
			_, errEvent := ParseEventID(input)
			_, errUser := ParseUserID(input)
			_, errPass := ParsePassID(input)
			_, errBadge := ParseBadgeID(input)

			require.Error(t, errEvent)
			require.Error(t, errUser)
			require.Error(t, errPass)
			require.Error(t, errBadge)
		})
	}
}

// TestMarshalText ensures IDs render as canonical UUID strings in JSON.
func TestMarshalText(t *testing.T) {
	u := uuid.New()
	eventID := EventID(u)

	text, err := eventID.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, u.String(), string(text))

	var decoded EventID
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, eventID, decoded)
}
