package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/abhisek/studyhub/internal/progress"
)

// sqliteTimeLayout matches strftime('%Y-%m-%dT%H:%M:%fZ','now').
const sqliteTimeLayout = "2006-01-02T15:04:05.999Z"

// recordRepo implements RecordRepo over a single-row-per-owner JSON table.
type recordRepo struct {
	db *sql.DB
}

func (r *recordRepo) Get(ctx context.Context, ownerID string) (progress.Record, bool, error) {
	if err := authorize(ctx, ownerID); err != nil {
		return progress.Empty(), false, err
	}

	query, args, err := sq.Select("data", "last_updated").
		From("progress_records").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return progress.Empty(), false, fmt.Errorf("build query: %w", err)
	}

	var data, lastUpdated string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&data, &lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.Empty(), false, nil
	}
	if err != nil {
		return progress.Empty(), false, mapDBErr("get record", err)
	}

	rec, err := decodeRecord(data, lastUpdated)
	if err != nil {
		return progress.Empty(), false, err
	}
	return rec, true, nil
}

func (r *recordRepo) AtomicUpdate(ctx context.Context, ownerID string, fn progress.Mutator) (progress.Record, error) {
	if err := authorize(ctx, ownerID); err != nil {
		return progress.Empty(), err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return progress.Empty(), mapDBErr("begin update", err)
	}
	defer tx.Rollback()

	// The mutator always runs against the freshly read row, never a cached
	// client copy; concurrent writers serialize on the row transaction.
	rec := progress.Empty()
	var data, lastUpdated string
	err = tx.QueryRowContext(ctx,
		`SELECT data, last_updated FROM progress_records WHERE owner_id = ?`,
		ownerID).Scan(&data, &lastUpdated)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Lazily created on first write.
	case err != nil:
		return progress.Empty(), mapDBErr("read record", err)
	default:
		rec, err = decodeRecord(data, lastUpdated)
		if err != nil {
			return progress.Empty(), err
		}
	}

	next, err := fn(rec)
	if err != nil {
		// Mutator rejection: nothing was written.
		return progress.Empty(), err
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return progress.Empty(), fmt.Errorf("encode record: %w", err)
	}

	// last_updated comes from the database clock so ordering across
	// clients is authoritative.
	var stamped string
	err = tx.QueryRowContext(ctx, `
INSERT INTO progress_records (owner_id, data, last_updated)
VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
ON CONFLICT(owner_id) DO UPDATE SET
	data = excluded.data,
	last_updated = excluded.last_updated
RETURNING last_updated
`, ownerID, string(encoded)).Scan(&stamped)
	if err != nil {
		return progress.Empty(), mapDBErr("write record", err)
	}

	if err := tx.Commit(); err != nil {
		return progress.Empty(), mapDBErr("commit update", err)
	}

	ts, err := time.Parse(sqliteTimeLayout, stamped)
	if err != nil {
		return progress.Empty(), fmt.Errorf("parse last_updated %q: %w", stamped, err)
	}
	next.LastUpdated = ts
	return next, nil
}

func decodeRecord(data, lastUpdated string) (progress.Record, error) {
	var rec progress.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return progress.Empty(), fmt.Errorf("decode record: %w", err)
	}
	ts, err := time.Parse(sqliteTimeLayout, lastUpdated)
	if err != nil {
		return progress.Empty(), fmt.Errorf("parse last_updated %q: %w", lastUpdated, err)
	}
	rec.LastUpdated = ts
	return rec, nil
}
