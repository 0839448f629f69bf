package service

import (
	"context"
	"database/sql"
	"time"

	id "lankaconnect/pkg/domain"
	dErrors "lankaconnect/pkg/domain-errors"
	"lankaconnect/pkg/platform/tx"
)

// StoreTx provides the transactional boundary for aggregate mutations. The
// capacity check-then-act sequence is only safe when load and save happen
// inside one RunInTx call; the implementation decides how that is serialized.
type StoreTx interface {
	RunInTx(ctx context.Context, eventID id.EventID, fn func(txCtx context.Context) error) error
}

// defaultTxTimeout bounds how long a single aggregate mutation may run.
const defaultTxTimeout = 5 * time.Second

// sqlStoreTx opens a database transaction and carries it through context so
// the Postgres store joins it. The store's FOR UPDATE load serializes
// concurrent mutations of the same event at the row level.
type sqlStoreTx struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQLTx builds a StoreTx over a live database handle.
func NewSQLTx(db *sql.DB) StoreTx {
	return &sqlStoreTx{db: db, timeout: defaultTxTimeout}
}

func (t *sqlStoreTx) RunInTx(ctx context.Context, _ id.EventID, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	dbTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "begin transaction")
	}
	if err := fn(tx.WithTx(ctx, dbTx)); err != nil {
		_ = dbTx.Rollback()
		return err
	}
	if err := dbTx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "commit transaction")
	}
	return nil
}

// shardedMemoryTx serializes in-memory mutations with sharded mutexes keyed by
// event ID, giving the memory store the same per-event serialization the
// Postgres row lock gives the SQL store.
const numEventShards = 128

type shardedMemoryTx struct {
	shards  [numEventShards]chan struct{}
	timeout time.Duration
}

// NewMemoryTx builds the in-memory StoreTx used in tests and dev mode.
func NewMemoryTx() StoreTx {
	t := &shardedMemoryTx{timeout: defaultTxTimeout}
	for i := range t.shards {
		t.shards[i] = make(chan struct{}, 1)
	}
	return t
}

func (t *shardedMemoryTx) RunInTx(ctx context.Context, eventID id.EventID, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	shard := t.shards[shardIndex(eventID)]
	select {
	case shard <- struct{}{}:
		defer func() { <-shard }()
	case <-ctx.Done():
		return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(ctx)
}

// shardIndex hashes an event ID onto a shard with FNV-1a.
func shardIndex(eventID id.EventID) int {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	s := eventID.String()
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return int(h % numEventShards)
}
