package optimistic

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/abhisek/studyhub/internal/progress"
)

// fakeRepo implements store.RecordRepo in memory with injectable failures.
type fakeRepo struct {
	mu      sync.Mutex
	rec     progress.Record
	found   bool
	failure error

	block   chan struct{} // when set, AtomicUpdate waits on it
	updates int
}

func (f *fakeRepo) Get(_ context.Context, _ string) (progress.Record, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rec.Clone(), f.found, nil
}

func (f *fakeRepo) AtomicUpdate(_ context.Context, _ string, fn progress.Mutator) (progress.Record, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.failure != nil {
		return progress.Empty(), f.failure
	}
	next, err := fn(f.rec)
	if err != nil {
		return progress.Empty(), err
	}
	f.rec = next
	f.found = true
	return next.Clone(), nil
}

func addTask(t *testing.T, name string) progress.Mutator {
	t.Helper()
	d, err := progress.ParseDay("2024-05-01")
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	return func(rec progress.Record) (progress.Record, error) {
		return progress.AddStudyTask(rec, progress.StudyTask{Date: d, Task: name})
	}
}

func TestMutateCommits(t *testing.T) {
	repo := &fakeRepo{}
	c := New(repo, "student-1")
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	var states []State
	c.SetListener(func(s Snapshot) { states = append(states, s.State) })

	if err := c.Mutate(context.Background(), addTask(t, "Read Ch.5")); err != nil {
		t.Fatalf("mutate: %v", err)
	}

	snap := c.Snapshot()
	if snap.State != StateCommitted {
		t.Errorf("state = %v, want committed", snap.State)
	}
	if len(snap.Data.StudyPlanner) != 1 {
		t.Errorf("planner length = %d, want 1", len(snap.Data.StudyPlanner))
	}
	if len(states) != 2 || states[0] != StatePending || states[1] != StateCommitted {
		t.Errorf("transitions = %v, want [pending committed]", states)
	}
}

func TestMutateRollsBackOnStoreFailure(t *testing.T) {
	repo := &fakeRepo{}
	c := New(repo, "student-1")
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.Mutate(context.Background(), addTask(t, "keep-me")); err != nil {
		t.Fatalf("seed mutate: %v", err)
	}

	unavailable := errors.New("store unavailable")
	repo.failure = unavailable

	var pendingLen int
	c.SetListener(func(s Snapshot) {
		if s.State == StatePending {
			pendingLen = len(s.Data.StudyPlanner)
		}
	})

	err := c.Mutate(context.Background(), addTask(t, "lost-task"))
	if !errors.Is(err, unavailable) {
		t.Fatalf("err = %v, want store failure", err)
	}

	// The optimistic apply was visible while pending...
	if pendingLen != 2 {
		t.Errorf("pending planner length = %d, want 2", pendingLen)
	}

	// ...and the rollback restored the exact pre-mutation contents.
	snap := c.Snapshot()
	if snap.State != StateRolledBack {
		t.Errorf("state = %v, want rolled_back", snap.State)
	}
	if !errors.Is(snap.Err, unavailable) {
		t.Errorf("snapshot err = %v", snap.Err)
	}
	if len(snap.Data.StudyPlanner) != 1 || snap.Data.StudyPlanner[0].Task != "keep-me" {
		t.Errorf("planner after rollback = %+v", snap.Data.StudyPlanner)
	}

	// The user may retry the same action manually.
	repo.failure = nil
	if err := c.Mutate(context.Background(), addTask(t, "retried")); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := c.Snapshot(); len(got.Data.StudyPlanner) != 2 {
		t.Errorf("planner after retry = %+v", got.Data.StudyPlanner)
	}
}

func TestMutateMutatorRejectionSkipsStore(t *testing.T) {
	repo := &fakeRepo{}
	c := New(repo, "student-1")
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	err := c.Mutate(context.Background(), func(rec progress.Record) (progress.Record, error) {
		return progress.AddStudyTask(rec, progress.StudyTask{}) // empty task
	})
	if !errors.Is(err, progress.ErrEmptyTask) {
		t.Fatalf("err = %v, want ErrEmptyTask", err)
	}
	if repo.updates != 0 {
		t.Errorf("store was called %d times for a local rejection", repo.updates)
	}
	if snap := c.Snapshot(); snap.State != StateRolledBack || len(snap.Data.StudyPlanner) != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestPendingGuardRejectsOverlap(t *testing.T) {
	repo := &fakeRepo{block: make(chan struct{})}
	c := New(repo, "student-1")
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- c.Mutate(context.Background(), addTask(t, "first")) }()

	// Wait until the first mutation is visibly pending.
	for c.Snapshot().State != StatePending {
	}

	if err := c.Mutate(context.Background(), addTask(t, "second")); !errors.Is(err, ErrMutationPending) {
		t.Errorf("err = %v, want ErrMutationPending", err)
	}

	close(repo.block)
	if err := <-done; err != nil {
		t.Fatalf("first mutate: %v", err)
	}
	if snap := c.Snapshot(); len(snap.Data.StudyPlanner) != 1 {
		t.Errorf("planner = %+v", snap.Data.StudyPlanner)
	}
}
