package event

import (
	"context"
	"database/sql"
	"fmt"
)

const createEventsTableSQL = `
CREATE TABLE IF NOT EXISTS events (
    id UUID PRIMARY KEY,
    organizer_id UUID NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status INTEGER NOT NULL,
    status_reason TEXT NOT NULL DEFAULT '',
    capacity INTEGER NOT NULL,
    start_at TIMESTAMP WITH TIME ZONE NOT NULL,
    end_at TIMESTAMP WITH TIME ZONE NOT NULL,
    price_amount BIGINT,
    price_currency TEXT,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL
);`

const createRegistrationsTableSQL = `
CREATE TABLE IF NOT EXISTS registrations (
    id UUID PRIMARY KEY,
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    user_id UUID NOT NULL,
    quantity INTEGER NOT NULL,
    status INTEGER NOT NULL,
    contact_name TEXT,
    contact_email TEXT,
    contact_phone TEXT,
    payment_status INTEGER NOT NULL,
    paid_amount BIGINT,
    paid_currency TEXT,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_registrations_event ON registrations (event_id);`

const createWaitingListTableSQL = `
CREATE TABLE IF NOT EXISTS waiting_list_entries (
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    user_id UUID NOT NULL,
    position INTEGER NOT NULL,
    joined_at TIMESTAMP WITH TIME ZONE NOT NULL,
    PRIMARY KEY (event_id, user_id)
);`

const createPassesTableSQL = `
CREATE TABLE IF NOT EXISTS passes (
    id UUID PRIMARY KEY,
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    price_amount BIGINT NOT NULL,
    price_currency TEXT NOT NULL,
    total_quantity INTEGER NOT NULL,
    available_quantity INTEGER NOT NULL,
    reserved_quantity INTEGER NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL
);`

const createSignUpListsTableSQL = `
CREATE TABLE IF NOT EXISTS sign_up_lists (
    id UUID PRIMARY KEY,
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    category TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    items JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sign_up_lists_event ON sign_up_lists (event_id);`

const createSignUpCommitmentsTableSQL = `
CREATE TABLE IF NOT EXISTS sign_up_commitments (
    list_id UUID NOT NULL REFERENCES sign_up_lists(id) ON DELETE CASCADE,
    user_id UUID NOT NULL,
    item TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL,
    PRIMARY KEY (list_id, user_id)
);`

const createEventBadgesTableSQL = `
CREATE TABLE IF NOT EXISTS event_badges (
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    badge_id UUID NOT NULL,
    assigned_at TIMESTAMP WITH TIME ZONE NOT NULL,
    duration_days INTEGER,
    expires_at TIMESTAMP WITH TIME ZONE,
    PRIMARY KEY (event_id, badge_id)
);
CREATE INDEX IF NOT EXISTS idx_event_badges_expires ON event_badges (expires_at) WHERE expires_at IS NOT NULL;`

// EnsureSchema creates the event tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		createEventsTableSQL,
		createRegistrationsTableSQL,
		createWaitingListTableSQL,
		createPassesTableSQL,
		createSignUpListsTableSQL,
		createSignUpCommitmentsTableSQL,
		createEventBadgesTableSQL,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply event schema: %w", err)
		}
	}
	return nil
}
