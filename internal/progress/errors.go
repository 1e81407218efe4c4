package progress

import "errors"

var (
	// ErrDuplicateQuiz means a quiz with the same ID was already submitted.
	// Double-submits are rejected without touching the record.
	ErrDuplicateQuiz = errors.New("quiz result already submitted")

	// ErrTaskNotFound means the planner entry was deleted out from under
	// the caller (stale UI editing a removed task).
	ErrTaskNotFound = errors.New("study task not found")

	// ErrItemNotFound means a homework or exam entry is absent.
	ErrItemNotFound = errors.New("scheduled item not found")

	// ErrInvalidQuiz means the quiz result violates its own invariants
	// (answer count mismatch or score out of range).
	ErrInvalidQuiz = errors.New("invalid quiz result")

	// ErrInvalidTimeRange means a task's start time is after its end time.
	ErrInvalidTimeRange = errors.New("start time is after end time")

	// ErrEmptyTask means a planner entry has no task description.
	ErrEmptyTask = errors.New("task description is empty")

	// ErrInvalidProgress means a mastery progress value is outside 0-100.
	ErrInvalidProgress = errors.New("progress out of range")
)
