package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/abhisek/studyhub/internal/profile"
)

// profileRepo implements ProfileRepo.
type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Get(ctx context.Context, uid string) (*profile.Profile, error) {
	if err := authorize(ctx, uid); err != nil {
		return nil, err
	}
	return getProfile(ctx, r.db, uid)
}

func (r *profileRepo) Create(ctx context.Context, p profile.Profile) error {
	if err := authorize(ctx, p.UID); err != nil {
		return err
	}

	query, args, err := sq.Insert("profiles").
		Columns("uid", "name", "email", "avatar_url", "school_board", "grade", "join_date").
		Values(p.UID, p.Name, p.Email, p.AvatarURL, p.SchoolBoard, p.Grade,
			p.JoinedAt.UTC().Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		// The uid primary key makes a double create a constraint
		// violation, not a transport failure.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("profile %s: %w", p.UID, ErrProfileExists)
		}
		return mapDBErr("create profile", err)
	}
	return nil
}

func (r *profileRepo) Update(ctx context.Context, uid string, upd profile.Update) (*profile.Profile, error) {
	if err := authorize(ctx, uid); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapDBErr("begin update", err)
	}
	defer tx.Rollback()

	current, err := getProfile(ctx, tx, uid)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("profile %s: %w", uid, ErrProfileNotFound)
	}

	merged, err := profile.Apply(*current, upd)
	if err != nil {
		return nil, err
	}

	query, args, err := sq.Update("profiles").
		Set("name", merged.Name).
		Set("avatar_url", merged.AvatarURL).
		Set("school_board", merged.SchoolBoard).
		Set("grade", merged.Grade).
		Where(sq.Eq{"uid": uid}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, mapDBErr("update profile", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, mapDBErr("commit update", err)
	}
	return &merged, nil
}

// querier lets getProfile run against the pool or a transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getProfile(ctx context.Context, q querier, uid string) (*profile.Profile, error) {
	query, args, err := sq.Select("uid", "name", "email", "avatar_url", "school_board", "grade", "join_date").
		From("profiles").
		Where(sq.Eq{"uid": uid}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p profile.Profile
	var joined string
	err = q.QueryRowContext(ctx, query, args...).
		Scan(&p.UID, &p.Name, &p.Email, &p.AvatarURL, &p.SchoolBoard, &p.Grade, &joined)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapDBErr("get profile", err)
	}

	p.JoinedAt, err = time.Parse(time.RFC3339, joined)
	if err != nil {
		return nil, fmt.Errorf("parse join_date %q: %w", joined, err)
	}
	return &p, nil
}
