// Package optimistic implements the optimistic-update state machine that
// sits between the view layer and the record store adapter. A mutation is
// applied to the local view state immediately, then persisted; on store
// failure the view state is restored to the exact pre-mutation snapshot.
package optimistic

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/studyhub/internal/progress"
	"github.com/abhisek/studyhub/internal/store"
)

// ErrMutationPending means another mutation on this record is still in
// flight. The view layer disables its submit controls while pending, so
// hitting this means a race the guard is there to stop: two optimistic
// updates must never stack on one base snapshot.
var ErrMutationPending = errors.New("a mutation is already pending")

// State is the lifecycle phase of the most recent mutation.
type State int

const (
	// StateIdle means no mutation has run yet or the last one settled
	// long enough ago that its outcome was consumed.
	StateIdle State = iota

	// StatePending means the local view state holds an optimistic result
	// that the store has not confirmed.
	StatePending

	// StateCommitted means the store accepted the last mutation; local
	// state matches the persisted record.
	StateCommitted

	// StateRolledBack means the store rejected the last mutation and the
	// local state was reverted to the pre-mutation snapshot.
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return "idle"
	}
}

// Snapshot is the view-facing container: the data to render, the mutation
// phase, and the last error (set only in StateRolledBack).
type Snapshot struct {
	Data  progress.Record
	State State
	Err   error
}

// Listener receives every state transition. Called synchronously with the
// controller's lock released.
type Listener func(Snapshot)

// Controller owns one student's view state and runs mutations through the
// Idle -> Pending -> Committed|RolledBack machine. All view-state changes
// go through Mutate; nothing else may touch the record ad hoc.
type Controller struct {
	repo    store.RecordRepo
	ownerID string

	mu       sync.Mutex
	data     progress.Record
	state    State
	lastErr  error
	listener Listener
}

// New creates a controller for one owner's record.
func New(repo store.RecordRepo, ownerID string) *Controller {
	return &Controller{repo: repo, ownerID: ownerID}
}

// SetListener registers the transition listener (at most one; the view
// layer fans out itself).
func (c *Controller) SetListener(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = fn
}

// Load fetches the current record into the view state. A missing record
// loads as empty.
func (c *Controller) Load(ctx context.Context) error {
	rec, _, err := c.repo.Get(ctx, c.ownerID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data = rec
	c.state = StateIdle
	c.lastErr = nil
	c.mu.Unlock()
	return nil
}

// Snapshot returns the current view state. The record is cloned so callers
// cannot alias the controller's copy.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Data: c.data.Clone(), State: c.state, Err: c.lastErr}
}

// Mutate runs one optimistic mutation to completion:
//
//  1. Apply fn to the local snapshot and publish the result immediately
//     (Pending) so the view renders without waiting on the network.
//  2. Persist through the store adapter, which re-applies fn against the
//     freshly read record inside the atomic update.
//  3. On success adopt the persisted record (it carries the server-stamped
//     lastUpdated) and publish Committed. On failure restore the exact
//     pre-mutation snapshot and publish RolledBack with the error.
//
// A second Mutate while one is pending is rejected with ErrMutationPending
// and leaves all state untouched. The error from a rolled-back mutation is
// returned; retries are the caller's decision, never automatic.
func (c *Controller) Mutate(ctx context.Context, fn progress.Mutator) error {
	c.mu.Lock()
	if c.state == StatePending {
		c.mu.Unlock()
		return ErrMutationPending
	}

	before := c.data.Clone()
	next, err := fn(c.data)
	if err != nil {
		// Mutator rejection is settled locally; the store never sees it
		// and the view state is unchanged.
		c.state = StateRolledBack
		c.lastErr = err
		snap := Snapshot{Data: c.data.Clone(), State: c.state, Err: err}
		c.mu.Unlock()
		c.notify(snap)
		return err
	}

	c.data = next
	c.state = StatePending
	c.lastErr = nil
	pendingSnap := Snapshot{Data: c.data.Clone(), State: StatePending}
	c.mu.Unlock()
	c.notify(pendingSnap)

	persisted, err := c.repo.AtomicUpdate(ctx, c.ownerID, fn)

	c.mu.Lock()
	if err != nil {
		c.data = before
		c.state = StateRolledBack
		c.lastErr = err
	} else {
		c.data = persisted
		c.state = StateCommitted
		c.lastErr = nil
	}
	snap := Snapshot{Data: c.data.Clone(), State: c.state, Err: c.lastErr}
	c.mu.Unlock()
	c.notify(snap)
	return err
}

func (c *Controller) notify(snap Snapshot) {
	c.mu.Lock()
	fn := c.listener
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
