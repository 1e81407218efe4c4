package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// eventRepo implements EventRepo.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args, err := sq.Insert("llm_events").
		Columns("provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message").
		Values(data.Provider, data.Model, data.Purpose, data.InputTokens,
			data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapDBErr("append llm event", err)
	}
	return nil
}

func (r *eventRepo) UsageSince(ctx context.Context, from time.Time) ([]LLMUsage, error) {
	query, args, err := sq.Select(
		"model",
		"COUNT(*)",
		"SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END)",
		"COALESCE(SUM(input_tokens), 0)",
		"COALESCE(SUM(output_tokens), 0)",
	).
		From("llm_events").
		Where(sq.GtOrEq{"timestamp": from.UTC().Format(sqliteTimeLayout)}).
		GroupBy("model").
		OrderBy("model").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapDBErr("query llm usage", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Model, &u.Requests, &u.Failures, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, mapDBErr("scan llm usage", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
