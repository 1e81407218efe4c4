package progress

import (
	"errors"
	"testing"
	"time"
)

func clockPtr(s string, t *testing.T) *Clock {
	t.Helper()
	c, err := ParseClock(s)
	if err != nil {
		t.Fatalf("parse clock %q: %v", s, err)
	}
	return &c
}

func day(s string, t *testing.T) Day {
	t.Helper()
	d, err := ParseDay(s)
	if err != nil {
		t.Fatalf("parse day %q: %v", s, err)
	}
	return d
}

func validQuiz(id string, score int) QuizResult {
	return QuizResult{
		QuizID:      id,
		GeneratedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Questions: []QuizQuestion{
			{Text: "q1", Options: []string{"a", "b", "c", "d"}, Answer: "a"},
			{Text: "q2", Options: []string{"a", "b", "c", "d"}, Answer: "b"},
			{Text: "q3", Options: []string{"a", "b", "c", "d"}, Answer: "c"},
			{Text: "q4", Options: []string{"a", "b", "c", "d"}, Answer: "d"},
			{Text: "q5", Options: []string{"a", "b", "c", "d"}, Answer: "a"},
		},
		UserAnswers:    []string{"a", "b", "c", "a", "b"},
		Score:          score,
		TotalQuestions: 5,
		Difficulty:     "medium",
	}
}

func TestAppendQuizResult(t *testing.T) {
	rec := Empty()

	next, err := AppendQuizResult(rec, validQuiz("quiz-1", 3))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(next.QuizHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(next.QuizHistory))
	}
	if next.QuizHistory[0].QuizID != "quiz-1" || next.QuizHistory[0].Score != 3 {
		t.Errorf("appended quiz = %+v", next.QuizHistory[0])
	}
	if len(rec.QuizHistory) != 0 {
		t.Error("input record was mutated")
	}
}

func TestAppendQuizResultDuplicateRejected(t *testing.T) {
	rec, err := AppendQuizResult(Empty(), validQuiz("quiz-1", 3))
	if err != nil {
		t.Fatalf("first append: %v", err)
	}

	// Same quizId, different score: must be rejected and leave score=3.
	_, err = AppendQuizResult(rec, validQuiz("quiz-1", 5))
	if !errors.Is(err, ErrDuplicateQuiz) {
		t.Fatalf("err = %v, want ErrDuplicateQuiz", err)
	}
	if rec.QuizHistory[0].Score != 3 {
		t.Errorf("score = %d, want 3", rec.QuizHistory[0].Score)
	}
}

func TestAppendQuizResultInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mangle func(*QuizResult)
	}{
		{"answer count mismatch", func(q *QuizResult) { q.UserAnswers = q.UserAnswers[:3] }},
		{"total mismatch", func(q *QuizResult) { q.TotalQuestions = 4 }},
		{"score negative", func(q *QuizResult) { q.Score = -1 }},
		{"score above total", func(q *QuizResult) { q.Score = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuiz("quiz-x", 3)
			tt.mangle(&q)
			_, err := AppendQuizResult(Empty(), q)
			if !errors.Is(err, ErrInvalidQuiz) {
				t.Errorf("err = %v, want ErrInvalidQuiz", err)
			}
		})
	}
}

func TestAddStudyTask(t *testing.T) {
	rec, err := AddStudyTask(Empty(), StudyTask{
		Date:      day("2024-05-01", t),
		Task:      "Read Ch.5",
		StartTime: clockPtr("14:00", t),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(rec.StudyPlanner) != 1 {
		t.Fatalf("planner length = %d, want 1", len(rec.StudyPlanner))
	}
	got := rec.StudyPlanner[0]
	if got.ID == "" {
		t.Error("expected a fresh id")
	}
	if got.Completed {
		t.Error("new task must start incomplete")
	}
	if got.Task != "Read Ch.5" {
		t.Errorf("task = %q", got.Task)
	}
}

func TestAddStudyTaskSortsByDateAndStart(t *testing.T) {
	rec := Empty()
	add := func(date, start, name string) {
		task := StudyTask{Date: day(date, t), Task: name}
		if start != "" {
			task.StartTime = clockPtr(start, t)
		}
		var err error
		rec, err = AddStudyTask(rec, task)
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	add("2024-05-02", "09:00", "later-day")
	add("2024-05-01", "", "untimed-a")
	add("2024-05-01", "16:00", "afternoon")
	add("2024-05-01", "", "untimed-b")
	add("2024-05-01", "08:30", "morning")

	var got []string
	for _, task := range rec.StudyPlanner {
		got = append(got, task.Task)
	}
	want := []string{"morning", "afternoon", "untimed-a", "untimed-b", "later-day"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestAddStudyTaskRejectsInvertedRange(t *testing.T) {
	_, err := AddStudyTask(Empty(), StudyTask{
		Date:      day("2024-05-01", t),
		Task:      "x",
		StartTime: clockPtr("15:00", t),
		EndTime:   clockPtr("14:00", t),
	})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("err = %v, want ErrInvalidTimeRange", err)
	}
}

func TestUpdateStudyTask(t *testing.T) {
	rec, _ := AddStudyTask(Empty(), StudyTask{Date: day("2024-05-01", t), Task: "old"})
	id := rec.StudyPlanner[0].ID

	// Completion survives an edit.
	rec, err := ToggleStudyTask(rec, id)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}

	rec, err = UpdateStudyTask(rec, StudyTask{ID: id, Date: day("2024-05-03", t), Task: "new", Notes: "moved"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got := rec.StudyPlanner[0]
	if got.ID != id || got.Task != "new" || got.Notes != "moved" {
		t.Errorf("updated task = %+v", got)
	}
	if !got.Completed {
		t.Error("completion flag was lost on update")
	}

	_, err = UpdateStudyTask(rec, StudyTask{ID: "missing", Date: day("2024-05-03", t), Task: "x"})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteStudyTaskAbsentIsNoop(t *testing.T) {
	rec, _ := AddStudyTask(Empty(), StudyTask{Date: day("2024-05-01", t), Task: "keep"})

	next, err := DeleteStudyTask(rec, "never-existed")
	if err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if len(next.StudyPlanner) != 1 {
		t.Errorf("planner length = %d, want 1", len(next.StudyPlanner))
	}

	next, err = DeleteStudyTask(next, rec.StudyPlanner[0].ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(next.StudyPlanner) != 0 {
		t.Errorf("planner length = %d, want 0", len(next.StudyPlanner))
	}
}

func TestToggleStudyTaskDoubleToggle(t *testing.T) {
	rec, _ := AddStudyTask(Empty(), StudyTask{Date: day("2024-05-01", t), Task: "x"})
	id := rec.StudyPlanner[0].ID

	once, err := ToggleStudyTask(rec, id)
	if err != nil {
		t.Fatalf("toggle 1: %v", err)
	}
	if !once.StudyPlanner[0].Completed {
		t.Error("first toggle should complete the task")
	}

	twice, err := ToggleStudyTask(once, id)
	if err != nil {
		t.Fatalf("toggle 2: %v", err)
	}
	if twice.StudyPlanner[0].Completed != rec.StudyPlanner[0].Completed {
		t.Error("double toggle should restore the original value")
	}

	if _, err := ToggleStudyTask(rec, "missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestUpsertSubjectMastery(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rec, err := UpsertSubjectMastery(Empty(), "math", "Mathematics", 40, now)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	rec, err = UpsertSubjectMastery(rec, "math", "", 55, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(rec.SubjectMastery) != 1 {
		t.Fatalf("mastery length = %d, want 1", len(rec.SubjectMastery))
	}
	got := rec.SubjectMastery[0]
	if got.Progress != 55 || got.SubjectName != "Mathematics" {
		t.Errorf("mastery = %+v", got)
	}

	if _, err := UpsertSubjectMastery(rec, "math", "", 101, now); !errors.Is(err, ErrInvalidProgress) {
		t.Errorf("err = %v, want ErrInvalidProgress", err)
	}
}

func TestScheduledItems(t *testing.T) {
	rec, err := AddHomework(Empty(), ScheduledItem{
		SubjectID: "sci", SubjectName: "Science", Title: "Lab report", Date: day("2024-05-10", t),
	})
	if err != nil {
		t.Fatalf("add homework: %v", err)
	}
	rec, err = AddHomework(rec, ScheduledItem{
		SubjectID: "math", SubjectName: "Mathematics", Title: "Worksheet", Date: day("2024-05-03", t),
	})
	if err != nil {
		t.Fatalf("add homework: %v", err)
	}
	if rec.Homework[0].Title != "Worksheet" {
		t.Errorf("homework not sorted by date: %+v", rec.Homework)
	}

	id := rec.Homework[0].ID
	rec, err = CompleteHomework(rec, id)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !rec.Homework[0].Completed {
		t.Error("homework not marked complete")
	}

	if _, err := CompleteHomework(rec, "missing"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}

	rec, err = DeleteHomework(rec, "missing")
	if err != nil {
		t.Fatalf("delete absent homework: %v", err)
	}
	if len(rec.Homework) != 2 {
		t.Errorf("homework length = %d, want 2", len(rec.Homework))
	}
}

func TestSetRecommendationsReplacesList(t *testing.T) {
	rec, _ := SetRecommendations(Empty(), []Recommendation{
		{ID: "r1", Type: "review", Title: "Review fractions", Priority: "high"},
		{ID: "r2", Type: "practice", Title: "Practice algebra", Priority: "low"},
	})
	rec, err := SetRecommendations(rec, []Recommendation{
		{ID: "r3", Type: "schedule", Title: "Plan exam prep", Priority: "medium"},
	})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if len(rec.Recommendations) != 1 || rec.Recommendations[0].ID != "r3" {
		t.Errorf("recommendations = %+v", rec.Recommendations)
	}
}
