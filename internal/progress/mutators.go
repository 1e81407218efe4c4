package progress

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Mutator computes the next record state from the current one. A mutator
// may run twice per change: once by the optimistic controller against the
// local snapshot, and once by the store against the freshly read record
// inside the atomic update. The store's result is authoritative; the local
// application only exists so the view renders without waiting. Mutators
// must never modify their argument.
type Mutator func(Record) (Record, error)

// AppendQuizResult appends a completed quiz to the history. A result whose
// QuizID already exists is rejected unchanged, which makes double-submits
// from a stale form idempotent-safe.
func AppendQuizResult(rec Record, result QuizResult) (Record, error) {
	if len(result.UserAnswers) != len(result.Questions) || len(result.Questions) != result.TotalQuestions {
		return rec, fmt.Errorf("%w: %d questions, %d answers, totalQuestions=%d",
			ErrInvalidQuiz, len(result.Questions), len(result.UserAnswers), result.TotalQuestions)
	}
	if result.Score < 0 || result.Score > result.TotalQuestions {
		return rec, fmt.Errorf("%w: score %d of %d", ErrInvalidQuiz, result.Score, result.TotalQuestions)
	}
	for _, q := range rec.QuizHistory {
		if q.QuizID == result.QuizID {
			return rec, ErrDuplicateQuiz
		}
	}

	next := rec.Clone()
	next.QuizHistory = append(next.QuizHistory, result.clone())
	return next, nil
}

// AddStudyTask inserts a new planner entry. The entry gets a fresh unique ID
// and starts incomplete regardless of what the caller set; the planner is
// re-sorted after insertion.
func AddStudyTask(rec Record, task StudyTask) (Record, error) {
	if task.Task == "" {
		return rec, ErrEmptyTask
	}
	if err := validateTimeRange(task); err != nil {
		return rec, err
	}

	task.ID = uuid.NewString()
	task.Completed = false

	next := rec.Clone()
	next.StudyPlanner = append(next.StudyPlanner, task.clone())
	sortPlanner(next.StudyPlanner)
	return next, nil
}

// UpdateStudyTask replaces the fields of an existing planner entry, keeping
// its ID and completion state. Editing a task that was deleted concurrently
// fails with ErrTaskNotFound.
func UpdateStudyTask(rec Record, updated StudyTask) (Record, error) {
	if updated.Task == "" {
		return rec, ErrEmptyTask
	}
	if err := validateTimeRange(updated); err != nil {
		return rec, err
	}

	idx := findTask(rec.StudyPlanner, updated.ID)
	if idx < 0 {
		return rec, ErrTaskNotFound
	}

	next := rec.Clone()
	updated.Completed = next.StudyPlanner[idx].Completed
	next.StudyPlanner[idx] = updated.clone()
	sortPlanner(next.StudyPlanner)
	return next, nil
}

// DeleteStudyTask removes a planner entry by ID. Deleting an absent ID is a
// no-op, not an error, so a double-delete from a stale list succeeds.
func DeleteStudyTask(rec Record, id string) (Record, error) {
	idx := findTask(rec.StudyPlanner, id)
	if idx < 0 {
		return rec, nil
	}
	next := rec.Clone()
	next.StudyPlanner = append(next.StudyPlanner[:idx], next.StudyPlanner[idx+1:]...)
	return next, nil
}

// ToggleStudyTask flips the completion flag of a planner entry.
func ToggleStudyTask(rec Record, id string) (Record, error) {
	idx := findTask(rec.StudyPlanner, id)
	if idx < 0 {
		return rec, ErrTaskNotFound
	}
	next := rec.Clone()
	next.StudyPlanner[idx].Completed = !next.StudyPlanner[idx].Completed
	return next, nil
}

// UpsertSubjectMastery sets a subject's mastery progress, adding the subject
// if it is not tracked yet. now is the caller's clock so the function stays
// deterministic under test.
func UpsertSubjectMastery(rec Record, subjectID, subjectName string, pct int, now time.Time) (Record, error) {
	if pct < 0 || pct > 100 {
		return rec, fmt.Errorf("%w: %d", ErrInvalidProgress, pct)
	}

	next := rec.Clone()
	for i := range next.SubjectMastery {
		if next.SubjectMastery[i].SubjectID == subjectID {
			next.SubjectMastery[i].Progress = pct
			next.SubjectMastery[i].LastUpdated = now
			if subjectName != "" {
				next.SubjectMastery[i].SubjectName = subjectName
			}
			return next, nil
		}
	}
	next.SubjectMastery = append(next.SubjectMastery, SubjectMastery{
		SubjectID:   subjectID,
		SubjectName: subjectName,
		Progress:    pct,
		LastUpdated: now,
	})
	return next, nil
}

// AddHomework inserts an upcoming homework item with a fresh ID, keeping the
// list ordered by due date.
func AddHomework(rec Record, item ScheduledItem) (Record, error) {
	next := rec.Clone()
	next.Homework = addScheduled(next.Homework, item)
	return next, nil
}

// CompleteHomework marks a homework item done.
func CompleteHomework(rec Record, id string) (Record, error) {
	next := rec.Clone()
	ok := completeScheduled(next.Homework, id)
	if !ok {
		return rec, ErrItemNotFound
	}
	return next, nil
}

// DeleteHomework removes a homework item; absent IDs are a no-op.
func DeleteHomework(rec Record, id string) (Record, error) {
	next := rec.Clone()
	next.Homework = deleteScheduled(next.Homework, id)
	return next, nil
}

// AddExam inserts an upcoming exam with a fresh ID, ordered by date.
func AddExam(rec Record, item ScheduledItem) (Record, error) {
	next := rec.Clone()
	next.Exams = addScheduled(next.Exams, item)
	return next, nil
}

// CompleteExam marks an exam as done.
func CompleteExam(rec Record, id string) (Record, error) {
	next := rec.Clone()
	ok := completeScheduled(next.Exams, id)
	if !ok {
		return rec, ErrItemNotFound
	}
	return next, nil
}

// DeleteExam removes an exam; absent IDs are a no-op.
func DeleteExam(rec Record, id string) (Record, error) {
	next := rec.Clone()
	next.Exams = deleteScheduled(next.Exams, id)
	return next, nil
}

// SetRecommendations replaces the AI recommendation list wholesale.
func SetRecommendations(rec Record, recs []Recommendation) (Record, error) {
	next := rec.Clone()
	next.Recommendations = append([]Recommendation(nil), recs...)
	return next, nil
}

func validateTimeRange(t StudyTask) error {
	if t.StartTime != nil && t.EndTime != nil && *t.StartTime > *t.EndTime {
		return fmt.Errorf("%w: %s > %s", ErrInvalidTimeRange, *t.StartTime, *t.EndTime)
	}
	return nil
}

func findTask(tasks []StudyTask, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// sortPlanner orders entries by date, then start time ascending. Entries
// without a start time sort after all timed entries on the same day,
// keeping their insertion order (the sort is stable).
func sortPlanner(tasks []StudyTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].Date.Equal(tasks[j].Date) {
			return tasks[i].Date.Before(tasks[j].Date)
		}
		switch {
		case tasks[i].StartTime == nil && tasks[j].StartTime == nil:
			return false
		case tasks[i].StartTime == nil:
			return false
		case tasks[j].StartTime == nil:
			return true
		default:
			return *tasks[i].StartTime < *tasks[j].StartTime
		}
	})
}

func addScheduled(items []ScheduledItem, item ScheduledItem) []ScheduledItem {
	item.ID = uuid.NewString()
	item.Completed = false
	items = append(items, item)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.Before(items[j].Date)
	})
	return items
}

func completeScheduled(items []ScheduledItem, id string) bool {
	for i := range items {
		if items[i].ID == id {
			items[i].Completed = true
			return true
		}
	}
	return false
}

func deleteScheduled(items []ScheduledItem, id string) []ScheduledItem {
	for i := range items {
		if items[i].ID == id {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
