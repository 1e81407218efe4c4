// Package progress defines the per-student aggregate progress record and the
// pure mutators that compute its next state. Mutators never touch the store;
// they take the current record and a change and return a new record, which
// makes every list operation unit-testable without a database.
package progress

import "time"

// Record is the single aggregate document holding one student's mastery,
// quiz history, planner, scheduled work, and AI recommendations. One record
// exists per owner; it is created lazily on first write and mutated only
// through the functions in this package, applied inside an atomic store
// update.
type Record struct {
	SubjectMastery  []SubjectMastery `json:"subjectMastery"`
	QuizHistory     []QuizResult     `json:"quizHistory"`
	StudyPlanner    []StudyTask      `json:"studyPlanner"`
	Homework        []ScheduledItem  `json:"upcomingHomework"`
	Exams           []ScheduledItem  `json:"upcomingExams"`
	Recommendations []Recommendation `json:"studyRecommendations"`

	// LastUpdated is stamped by the store's clock on every successful
	// atomic update. Mutators leave it untouched.
	LastUpdated time.Time `json:"lastUpdated"`
}

// Empty returns a fresh record with no entries. A missing record in the
// store is indistinguishable from an empty one to callers.
func Empty() Record {
	return Record{}
}

// SubjectMastery tracks one subject's mastery percentage. SubjectID is
// unique within the list.
type SubjectMastery struct {
	SubjectID   string    `json:"subjectId"`
	SubjectName string    `json:"subjectName"`
	Progress    int       `json:"progress"` // 0-100
	LastUpdated time.Time `json:"lastUpdated"`
}

// QuizQuestion is one question of a generated quiz, kept with the result so
// past quizzes can be reviewed.
type QuizQuestion struct {
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// QuizResult is one completed quiz attempt. QuizHistory is append-only and
// QuizID is unique within it.
//
// Invariants: len(UserAnswers) == len(Questions) == TotalQuestions and
// 0 <= Score <= TotalQuestions.
type QuizResult struct {
	QuizID         string         `json:"quizId"`
	GeneratedAt    time.Time      `json:"generatedDate"`
	SourceExcerpt  string         `json:"sourceContentExcerpt"`
	Questions      []QuizQuestion `json:"questions"`
	UserAnswers    []string       `json:"userAnswers"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	Difficulty     string         `json:"difficulty"`
	Grade          string         `json:"grade,omitempty"`
}

// StudyTask is one study planner entry.
//
// Invariant: when both StartTime and EndTime are set, StartTime <= EndTime.
type StudyTask struct {
	ID        string `json:"id"`
	Date      Day    `json:"date"`
	Task      string `json:"task"`
	SubjectID string `json:"subjectId,omitempty"`
	StartTime *Clock `json:"startTime,omitempty"`
	EndTime   *Clock `json:"endTime,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Completed bool   `json:"completed"`
}

// ScheduledItem is an upcoming homework assignment or exam.
type ScheduledItem struct {
	ID          string `json:"id"`
	SubjectID   string `json:"subjectId"`
	SubjectName string `json:"subjectName"`
	Title       string `json:"title"`
	Date        Day    `json:"date"`
	Completed   bool   `json:"completed,omitempty"`
}

// Recommendation is an AI-suggested study action. The list is informational:
// it is replaced wholesale when regenerated, never edited entry by entry.
type Recommendation struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // "review", "practice", "schedule"
	SubjectID   string    `json:"subjectId,omitempty"`
	Title       string    `json:"title"`
	Reason      string    `json:"reason"`
	Priority    string    `json:"priority"` // "high", "medium", "low"
	GeneratedAt time.Time `json:"generatedDate"`
}

// Clone returns a deep copy of the record. Mutators clone before modifying
// so the caller's snapshot is never aliased; the optimistic controller
// relies on this for exact rollback.
func (r Record) Clone() Record {
	out := r
	out.SubjectMastery = append([]SubjectMastery(nil), r.SubjectMastery...)
	out.QuizHistory = make([]QuizResult, len(r.QuizHistory))
	for i, q := range r.QuizHistory {
		out.QuizHistory[i] = q.clone()
	}
	out.StudyPlanner = make([]StudyTask, len(r.StudyPlanner))
	for i, t := range r.StudyPlanner {
		out.StudyPlanner[i] = t.clone()
	}
	out.Homework = append([]ScheduledItem(nil), r.Homework...)
	out.Exams = append([]ScheduledItem(nil), r.Exams...)
	out.Recommendations = append([]Recommendation(nil), r.Recommendations...)
	return out
}

func (q QuizResult) clone() QuizResult {
	out := q
	out.Questions = make([]QuizQuestion, len(q.Questions))
	for i, qq := range q.Questions {
		out.Questions[i] = qq
		out.Questions[i].Options = append([]string(nil), qq.Options...)
	}
	out.UserAnswers = append([]string(nil), q.UserAnswers...)
	return out
}

func (t StudyTask) clone() StudyTask {
	out := t
	if t.StartTime != nil {
		c := *t.StartTime
		out.StartTime = &c
	}
	if t.EndTime != nil {
		c := *t.EndTime
		out.EndTime = &c
	}
	return out
}
