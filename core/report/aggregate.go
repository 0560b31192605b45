// Package report derives the figures of a student's report from the subject scores.
package report

import (
	"math"
	"strconv"

	"github.com/bantalo/reportcard/core/grading"
)

// round2 rounds half away from zero to 2 decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TotalScore is the sum of the scores.
func TotalScore(scores []grading.SubjectScore) float64 {
	var total float64
	for _, s := range scores {
		total += s.Score
	}
	return total
}

// AverageScore is the arithmetic mean of the scores, 0 when there are none.
func AverageScore(scores []grading.SubjectScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	return TotalScore(scores) / float64(len(scores))
}

// FormatScore renders a score with 2 decimals, e.g. "72.50".
func FormatScore(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}

// ComputeGPA is the mean grade point of the scores, rounded to 2 decimals. 0 when there are none.
// An unparsable grade token counts as 0.
func ComputeGPA(scores []grading.SubjectScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		gp, _ := grading.GradePoint(s.Grade)
		sum += gp
	}
	return round2(sum / float64(len(scores)))
}

// Summary holds the figures shown on top of a report.
type Summary struct {
	Average     float64 `json:"average"`
	AverageText string  `json:"averageText"`
	GPA         float64 `json:"gpa"`
	TotalScore  float64 `json:"totalScore"`
	Strongest   string  `json:"strongest,omitempty"` // subject with the highest score, first one on ties
	Weakest     string  `json:"weakest,omitempty"`   // subject with the lowest score, first one on ties
}

func Summarize(scores []grading.SubjectScore) Summary {
	avg := AverageScore(scores)
	sum := Summary{
		Average:     round2(avg),
		AverageText: FormatScore(avg),
		GPA:         ComputeGPA(scores),
		TotalScore:  round2(TotalScore(scores)),
	}
	if len(scores) == 0 {
		return sum
	}

	strongest, weakest := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s.Score > strongest.Score {
			strongest = s
		}
		if s.Score < weakest.Score {
			weakest = s
		}
	}
	sum.Strongest = strongest.SubjectName
	sum.Weakest = weakest.SubjectName
	return sum
}
