// Package analytics derives progress statistics from a record. All
// computations are pure: they read a record snapshot and return values,
// never touching the store.
package analytics

import (
	"sort"
	"time"

	"github.com/abhisek/studyhub/internal/progress"
)

// Bucket selects the granularity of a score trend.
type Bucket string

const (
	BucketDay  Bucket = "day"
	BucketWeek Bucket = "week"
)

// TrendPoint is the average quiz performance within one calendar bucket.
type TrendPoint struct {
	// Start is the first day of the bucket (the day itself, or the
	// Monday of the week).
	Start progress.Day `json:"start"`

	// AveragePercent is the mean score across the bucket's quizzes,
	// as a percentage of the maximum.
	AveragePercent float64 `json:"averagePercent"`

	// Quizzes is how many attempts fall in the bucket.
	Quizzes int `json:"quizzes"`
}

// ScoreTrend buckets quiz history by calendar day or ISO week and returns
// points in chronological order. Quizzes with zero questions are skipped.
func ScoreTrend(rec progress.Record, bucket Bucket) []TrendPoint {
	type acc struct {
		sum   float64
		count int
	}
	byStart := make(map[time.Time]*acc)

	for _, q := range rec.QuizHistory {
		if q.TotalQuestions <= 0 {
			continue
		}
		start := bucketStart(q.GeneratedAt, bucket)
		a := byStart[start]
		if a == nil {
			a = &acc{}
			byStart[start] = a
		}
		a.sum += float64(q.Score) / float64(q.TotalQuestions) * 100
		a.count++
	}

	points := make([]TrendPoint, 0, len(byStart))
	for start, a := range byStart {
		points = append(points, TrendPoint{
			Start:          progress.DayOf(start),
			AveragePercent: a.sum / float64(a.count),
			Quizzes:        a.count,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Start.Before(points[j].Start)
	})
	return points
}

func bucketStart(t time.Time, bucket Bucket) time.Time {
	day := progress.DayOf(t).Time()
	if bucket != BucketWeek {
		return day
	}
	// Back up to Monday.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// AverageScore returns the mean quiz score as a percentage, and the number
// of quizzes it covers. Zero quizzes yields (0, 0).
func AverageScore(rec progress.Record) (float64, int) {
	var sum float64
	var count int
	for _, q := range rec.QuizHistory {
		if q.TotalQuestions <= 0 {
			continue
		}
		sum += float64(q.Score) / float64(q.TotalQuestions) * 100
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return sum / float64(count), count
}

// SubjectAverage is a subject's tracked mastery level.
type SubjectAverage struct {
	SubjectID   string  `json:"subjectId"`
	SubjectName string  `json:"subjectName"`
	Percent     float64 `json:"percent"`
}

// SubjectAverages returns mastery per subject, strongest first. Quiz
// attempts carry no subject tag, so mastery is the per-subject signal.
func SubjectAverages(rec progress.Record) []SubjectAverage {
	out := make([]SubjectAverage, 0, len(rec.SubjectMastery))
	for _, sm := range rec.SubjectMastery {
		out = append(out, SubjectAverage{
			SubjectID:   sm.SubjectID,
			SubjectName: sm.SubjectName,
			Percent:     float64(sm.Progress),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percent > out[j].Percent
	})
	return out
}

// PlannerCompletion returns the fraction of planner tasks marked done in
// [from, to] inclusive, plus the completed and total counts. An empty
// range yields (0, 0, 0).
func PlannerCompletion(rec progress.Record, from, to progress.Day) (rate float64, completed, total int) {
	for _, task := range rec.StudyPlanner {
		if task.Date.Before(from) || to.Before(task.Date) {
			continue
		}
		total++
		if task.Completed {
			completed++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	return float64(completed) / float64(total), completed, total
}

// Summary bundles the dashboard numbers computed from one snapshot.
type Summary struct {
	AveragePercent  float64          `json:"averagePercent"`
	QuizzesTaken    int              `json:"quizzesTaken"`
	DailyTrend      []TrendPoint     `json:"dailyTrend"`
	WeeklyTrend     []TrendPoint     `json:"weeklyTrend"`
	Subjects        []SubjectAverage `json:"subjects"`
	PlannerRate     float64          `json:"plannerRate"`
	PlannerDone     int              `json:"plannerDone"`
	PlannerTotal    int              `json:"plannerTotal"`
	PendingHomework int              `json:"pendingHomework"`
	UpcomingExams   int              `json:"upcomingExams"`
}

// Summarize computes the full dashboard summary. The planner window is the
// 28 days up to and including today.
func Summarize(rec progress.Record, today progress.Day) Summary {
	avg, taken := AverageScore(rec)
	rate, done, total := PlannerCompletion(rec, today.AddDays(-27), today)

	s := Summary{
		AveragePercent: avg,
		QuizzesTaken:   taken,
		DailyTrend:     ScoreTrend(rec, BucketDay),
		WeeklyTrend:    ScoreTrend(rec, BucketWeek),
		Subjects:       SubjectAverages(rec),
		PlannerRate:    rate,
		PlannerDone:    done,
		PlannerTotal:   total,
	}
	for _, hw := range rec.Homework {
		if !hw.Completed && !hw.Date.Before(today) {
			s.PendingHomework++
		}
	}
	for _, ex := range rec.Exams {
		if !ex.Date.Before(today) {
			s.UpcomingExams++
		}
	}
	return s
}
