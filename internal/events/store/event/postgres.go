package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lankaconnect/internal/events/models"
	id "lankaconnect/pkg/domain"
	"lankaconnect/pkg/money"
	"lankaconnect/pkg/platform/sentinel"
	"lankaconnect/pkg/platform/tx"
)

// Postgres persists Event aggregates across seven tables: events,
// registrations, waiting_list_entries, passes, sign_up_lists,
// sign_up_commitments, and event_badges.
//
// When called inside a transaction (pkg/platform/tx), GetByID locks the event
// row with FOR UPDATE. That lock is what serializes concurrent
// check-then-act capacity mutations of the same event; callers that mutate
// must load and save within one transaction.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed event store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, event *models.Event) error {
	q := tx.Resolve(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO events (id, organizer_id, title, description, status, status_reason,
			capacity, start_at, end_at, price_amount, price_currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, uuid.UUID(event.ID), uuid.UUID(event.OrganizerID), event.Title, event.Description,
		int(event.Status), event.StatusReason, event.Capacity, event.StartAt, event.EndAt,
		nullPriceAmount(event.TicketPrice), nullPriceCurrency(event.TicketPrice),
		event.CreatedAt, event.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return s.writeChildren(ctx, event)
}

func (s *Postgres) GetByID(ctx context.Context, eventID id.EventID) (*models.Event, error) {
	q := tx.Resolve(ctx, s.db)

	query := `
		SELECT id, organizer_id, title, description, status, status_reason,
			capacity, start_at, end_at, price_amount, price_currency, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	// Row lock only makes sense inside a transaction.
	if _, inTx := tx.From(ctx); inTx {
		query += " FOR UPDATE"
	}

	event := &models.Event{}
	var (
		eID, organizerID uuid.UUID
		status           int
		priceAmount      sql.NullInt64
		priceCurrency    sql.NullString
	)
	err := q.QueryRowContext(ctx, query, uuid.UUID(eventID)).Scan(
		&eID, &organizerID, &event.Title, &event.Description, &status, &event.StatusReason,
		&event.Capacity, &event.StartAt, &event.EndAt, &priceAmount, &priceCurrency,
		&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("select event: %w", err)
	}
	event.ID = id.EventID(eID)
	event.OrganizerID = id.UserID(organizerID)
	event.Status = models.EventStatus(status)
	if priceAmount.Valid && priceCurrency.Valid {
		price := money.Money{Amount: priceAmount.Int64, Currency: priceCurrency.String}
		event.TicketPrice = &price
	}

	if err := s.loadChildren(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Postgres) Update(ctx context.Context, event *models.Event) error {
	q := tx.Resolve(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE events
		SET title = $2, description = $3, status = $4, status_reason = $5,
			capacity = $6, start_at = $7, end_at = $8,
			price_amount = $9, price_currency = $10, updated_at = $11
		WHERE id = $1
	`, uuid.UUID(event.ID), event.Title, event.Description, int(event.Status),
		event.StatusReason, event.Capacity, event.StartAt, event.EndAt,
		nullPriceAmount(event.TicketPrice), nullPriceCurrency(event.TicketPrice),
		event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}

	// Child rows are rewritten wholesale; registrations are upserted because
	// they are never hard-deleted.
	if _, err := q.ExecContext(ctx,
		`DELETE FROM waiting_list_entries WHERE event_id = $1`, uuid.UUID(event.ID)); err != nil {
		return fmt.Errorf("clear waiting list: %w", err)
	}
	if _, err := q.ExecContext(ctx,
		`DELETE FROM passes WHERE event_id = $1`, uuid.UUID(event.ID)); err != nil {
		return fmt.Errorf("clear passes: %w", err)
	}
	// Commitments cascade from their list.
	if _, err := q.ExecContext(ctx,
		`DELETE FROM sign_up_lists WHERE event_id = $1`, uuid.UUID(event.ID)); err != nil {
		return fmt.Errorf("clear sign-up lists: %w", err)
	}
	if _, err := q.ExecContext(ctx,
		`DELETE FROM event_badges WHERE event_id = $1`, uuid.UUID(event.ID)); err != nil {
		return fmt.Errorf("clear badges: %w", err)
	}
	return s.writeChildren(ctx, event)
}

func (s *Postgres) Delete(ctx context.Context, eventID id.EventID) error {
	q := tx.Resolve(ctx, s.db)
	res, err := q.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, uuid.UUID(eventID))
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) ListWithExpiredBadges(ctx context.Context, now time.Time) ([]*models.Event, error) {
	q := tx.Resolve(ctx, s.db)
	rows, err := q.QueryContext(ctx, `
		SELECT DISTINCT event_id FROM event_badges
		WHERE expires_at IS NOT NULL AND expires_at < $1
	`, now)
	if err != nil {
		return nil, fmt.Errorf("list events with expired badges: %w", err)
	}
	defer rows.Close()

	var ids []id.EventID
	for rows.Next() {
		var eID uuid.UUID
		if err := rows.Scan(&eID); err != nil {
			return nil, fmt.Errorf("scan event id: %w", err)
		}
		ids = append(ids, id.EventID(eID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events with expired badges: %w", err)
	}

	events := make([]*models.Event, 0, len(ids))
	for _, eventID := range ids {
		event, err := s.GetByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func (s *Postgres) writeChildren(ctx context.Context, event *models.Event) error {
	q := tx.Resolve(ctx, s.db)

	for _, r := range event.Registrations {
		var contactName, contactEmail, contactPhone sql.NullString
		if r.Contact != nil {
			contactName = sql.NullString{String: r.Contact.Name, Valid: true}
			contactEmail = sql.NullString{String: r.Contact.Email, Valid: true}
			contactPhone = sql.NullString{String: r.Contact.Phone, Valid: r.Contact.Phone != ""}
		}
		_, err := q.ExecContext(ctx, `
			INSERT INTO registrations (id, event_id, user_id, quantity, status,
				contact_name, contact_email, contact_phone,
				payment_status, paid_amount, paid_currency, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (id) DO UPDATE SET
				quantity = EXCLUDED.quantity,
				status = EXCLUDED.status,
				contact_name = EXCLUDED.contact_name,
				contact_email = EXCLUDED.contact_email,
				contact_phone = EXCLUDED.contact_phone,
				payment_status = EXCLUDED.payment_status,
				paid_amount = EXCLUDED.paid_amount,
				paid_currency = EXCLUDED.paid_currency,
				updated_at = EXCLUDED.updated_at
		`, uuid.UUID(r.ID), uuid.UUID(r.EventID), uuid.UUID(r.UserID), r.Quantity,
			int(r.Status), contactName, contactEmail, contactPhone,
			int(r.PaymentStatus), nullPriceAmount(r.AmountPaid), nullPriceCurrency(r.AmountPaid),
			r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("upsert registration: %w", err)
		}
	}

	for _, w := range event.WaitingList {
		_, err := q.ExecContext(ctx, `
			INSERT INTO waiting_list_entries (event_id, user_id, position, joined_at)
			VALUES ($1, $2, $3, $4)
		`, uuid.UUID(w.EventID), uuid.UUID(w.UserID), w.Position, w.JoinedAt)
		if err != nil {
			return fmt.Errorf("insert waiting list entry: %w", err)
		}
	}

	for _, p := range event.Passes {
		_, err := q.ExecContext(ctx, `
			INSERT INTO passes (id, event_id, name, price_amount, price_currency,
				total_quantity, available_quantity, reserved_quantity, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, uuid.UUID(p.ID), uuid.UUID(p.EventID), p.Name, p.Price.Amount, p.Price.Currency,
			p.Total, p.Available, p.Reserved, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert pass: %w", err)
		}
	}

	for _, l := range event.SignUpLists {
		items, err := json.Marshal(l.Items)
		if err != nil {
			return fmt.Errorf("encode sign-up list items: %w", err)
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO sign_up_lists (id, event_id, category, description, items, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.UUID(l.ID), uuid.UUID(l.EventID), l.Category, l.Description, items,
			l.CreatedAt, l.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert sign-up list: %w", err)
		}
		for _, commit := range l.Commitments {
			_, err := q.ExecContext(ctx, `
				INSERT INTO sign_up_commitments (list_id, user_id, item, quantity, created_at)
				VALUES ($1, $2, $3, $4, $5)
			`, uuid.UUID(commit.ListID), uuid.UUID(commit.UserID), commit.Item,
				commit.Quantity, commit.CreatedAt)
			if err != nil {
				return fmt.Errorf("insert sign-up commitment: %w", err)
			}
		}
	}

	for _, b := range event.Badges {
		var days sql.NullInt32
		if b.DurationDays != nil {
			days = sql.NullInt32{Int32: int32(*b.DurationDays), Valid: true}
		}
		_, err := q.ExecContext(ctx, `
			INSERT INTO event_badges (event_id, badge_id, assigned_at, duration_days, expires_at)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.UUID(b.EventID), uuid.UUID(b.BadgeID), b.AssignedAt, days, nullTime(b.ExpiresAt))
		if err != nil {
			return fmt.Errorf("insert event badge: %w", err)
		}
	}
	return nil
}

func (s *Postgres) loadChildren(ctx context.Context, event *models.Event) error {
	q := tx.Resolve(ctx, s.db)
	eventID := uuid.UUID(event.ID)

	rows, err := q.QueryContext(ctx, `
		SELECT id, user_id, quantity, status, contact_name, contact_email, contact_phone,
			payment_status, paid_amount, paid_currency, created_at, updated_at
		FROM registrations WHERE event_id = $1 ORDER BY created_at
	`, eventID)
	if err != nil {
		return fmt.Errorf("select registrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		r := &models.Registration{EventID: event.ID}
		var (
			rID, userID                           uuid.UUID
			status, paymentStatus                 int
			contactName, contactEmail, contactTel sql.NullString
			paidAmount                            sql.NullInt64
			paidCurrency                          sql.NullString
		)
		if err := rows.Scan(&rID, &userID, &r.Quantity, &status,
			&contactName, &contactEmail, &contactTel,
			&paymentStatus, &paidAmount, &paidCurrency, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return fmt.Errorf("scan registration: %w", err)
		}
		r.ID = id.RegistrationID(rID)
		r.UserID = id.UserID(userID)
		r.Status = models.RegistrationStatus(status)
		r.PaymentStatus = models.PaymentStatus(paymentStatus)
		if contactName.Valid || contactEmail.Valid {
			r.Contact = &models.Contact{
				Name:  contactName.String,
				Email: contactEmail.String,
				Phone: contactTel.String,
			}
		}
		if paidAmount.Valid && paidCurrency.Valid {
			amount := money.Money{Amount: paidAmount.Int64, Currency: paidCurrency.String}
			r.AmountPaid = &amount
		}
		event.Registrations = append(event.Registrations, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("select registrations: %w", err)
	}

	wlRows, err := q.QueryContext(ctx, `
		SELECT user_id, position, joined_at
		FROM waiting_list_entries WHERE event_id = $1 ORDER BY position
	`, eventID)
	if err != nil {
		return fmt.Errorf("select waiting list: %w", err)
	}
	defer wlRows.Close()
	for wlRows.Next() {
		w := &models.WaitingListEntry{EventID: event.ID}
		var userID uuid.UUID
		if err := wlRows.Scan(&userID, &w.Position, &w.JoinedAt); err != nil {
			return fmt.Errorf("scan waiting list entry: %w", err)
		}
		w.UserID = id.UserID(userID)
		event.WaitingList = append(event.WaitingList, w)
	}
	if err := wlRows.Err(); err != nil {
		return fmt.Errorf("select waiting list: %w", err)
	}

	passRows, err := q.QueryContext(ctx, `
		SELECT id, name, price_amount, price_currency,
			total_quantity, available_quantity, reserved_quantity, created_at, updated_at
		FROM passes WHERE event_id = $1 ORDER BY created_at
	`, eventID)
	if err != nil {
		return fmt.Errorf("select passes: %w", err)
	}
	defer passRows.Close()
	for passRows.Next() {
		p := &models.Pass{EventID: event.ID}
		var pID uuid.UUID
		if err := passRows.Scan(&pID, &p.Name, &p.Price.Amount, &p.Price.Currency,
			&p.Total, &p.Available, &p.Reserved, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("scan pass: %w", err)
		}
		p.ID = id.PassID(pID)
		event.Passes = append(event.Passes, p)
	}
	if err := passRows.Err(); err != nil {
		return fmt.Errorf("select passes: %w", err)
	}

	listRows, err := q.QueryContext(ctx, `
		SELECT id, category, description, items, created_at, updated_at
		FROM sign_up_lists WHERE event_id = $1 ORDER BY created_at
	`, eventID)
	if err != nil {
		return fmt.Errorf("select sign-up lists: %w", err)
	}
	defer listRows.Close()
	for listRows.Next() {
		l := &models.SignUpList{EventID: event.ID}
		var (
			listID uuid.UUID
			items  []byte
		)
		if err := listRows.Scan(&listID, &l.Category, &l.Description, &items,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return fmt.Errorf("scan sign-up list: %w", err)
		}
		l.ID = id.SignUpListID(listID)
		if err := json.Unmarshal(items, &l.Items); err != nil {
			return fmt.Errorf("decode sign-up list items: %w", err)
		}
		event.SignUpLists = append(event.SignUpLists, l)
	}
	if err := listRows.Err(); err != nil {
		return fmt.Errorf("select sign-up lists: %w", err)
	}
	for _, l := range event.SignUpLists {
		if err := s.loadCommitments(ctx, l); err != nil {
			return err
		}
	}

	badgeRows, err := q.QueryContext(ctx, `
		SELECT badge_id, assigned_at, duration_days, expires_at
		FROM event_badges WHERE event_id = $1 ORDER BY assigned_at
	`, eventID)
	if err != nil {
		return fmt.Errorf("select event badges: %w", err)
	}
	defer badgeRows.Close()
	for badgeRows.Next() {
		b := &models.EventBadge{EventID: event.ID}
		var (
			badgeID   uuid.UUID
			days      sql.NullInt32
			expiresAt sql.NullTime
		)
		if err := badgeRows.Scan(&badgeID, &b.AssignedAt, &days, &expiresAt); err != nil {
			return fmt.Errorf("scan event badge: %w", err)
		}
		b.BadgeID = id.BadgeID(badgeID)
		if days.Valid {
			d := int(days.Int32)
			b.DurationDays = &d
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			b.ExpiresAt = &t
		}
		event.Badges = append(event.Badges, b)
	}
	if err := badgeRows.Err(); err != nil {
		return fmt.Errorf("select event badges: %w", err)
	}
	return nil
}

func (s *Postgres) loadCommitments(ctx context.Context, list *models.SignUpList) error {
	q := tx.Resolve(ctx, s.db)
	rows, err := q.QueryContext(ctx, `
		SELECT user_id, item, quantity, created_at
		FROM sign_up_commitments WHERE list_id = $1 ORDER BY created_at
	`, uuid.UUID(list.ID))
	if err != nil {
		return fmt.Errorf("select sign-up commitments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		c := &models.SignUpCommitment{ListID: list.ID}
		var userID uuid.UUID
		if err := rows.Scan(&userID, &c.Item, &c.Quantity, &c.CreatedAt); err != nil {
			return fmt.Errorf("scan sign-up commitment: %w", err)
		}
		c.UserID = id.UserID(userID)
		list.Commitments = append(list.Commitments, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("select sign-up commitments: %w", err)
	}
	return nil
}

func nullPriceAmount(m *money.Money) sql.NullInt64 {
	if m == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: m.Amount, Valid: true}
}

func nullPriceCurrency(m *money.Money) sql.NullString {
	if m == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: m.Currency, Valid: true}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}

// isUniqueViolation matches PostgreSQL error 23505 without depending on the
// driver's error type here.
func isUniqueViolation(err error) bool {
	type coder interface{ SQLState() string }
	var c coder
	return errors.As(err, &c) && c.SQLState() == "23505"
}
