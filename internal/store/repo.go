package store

import (
	"context"
	"time"

	"github.com/abhisek/studyhub/internal/profile"
	"github.com/abhisek/studyhub/internal/progress"
)

// RecordRepo is the record store adapter: it reads and atomically updates
// one student's aggregate progress record.
type RecordRepo interface {
	// Get returns the owner's record. A missing record is returned as an
	// empty one with found=false; that is not an error.
	Get(ctx context.Context, ownerID string) (rec progress.Record, found bool, err error)

	// AtomicUpdate reads the current record (empty default when missing),
	// applies fn, and writes the result in a single transaction. It fails
	// entirely on a mutator error, a permission failure, or a store
	// failure; no partial write is ever visible. last_updated is stamped
	// with the database clock, not the caller's, so ordering across
	// clients is authoritative. The returned record is the persisted one.
	AtomicUpdate(ctx context.Context, ownerID string, fn progress.Mutator) (progress.Record, error)
}

// ProfileRepo manages student profiles.
type ProfileRepo interface {
	// Get returns the profile or nil if none exists.
	Get(ctx context.Context, uid string) (*profile.Profile, error)

	// Create inserts a new profile.
	Create(ctx context.Context, p profile.Profile) error

	// Update applies a partial-field merge inside a transaction. Fails
	// with profile.ErrEmailImmutable when the update carries an email.
	Update(ctx context.Context, uid string, upd profile.Update) (*profile.Profile, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsage aggregates recorded LLM traffic for one model.
type LLMUsage struct {
	Model        string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// UsageSince aggregates usage per model for events at or after from.
	UsageSince(ctx context.Context, from time.Time) ([]LLMUsage, error)
}
