// Package grading converts raw subject scores to Thai grade points and classifies subjects.
package grading

import (
	"math"
	"strconv"
	"strings"
)

// Grade tokens of the 8-band Thai school scale.
const (
	Grade4   = "4"
	Grade3_5 = "3.5"
	Grade3   = "3"
	Grade2_5 = "2.5"
	Grade2   = "2"
	Grade1_5 = "1.5"
	Grade1   = "1"
	Grade0   = "0"
)

// DefaultFullScore is the full score of a subject unless stated otherwise.
const DefaultFullScore = 100

type band struct {
	min   float64 // inclusive
	token string
}

// bands are closed-open: [min, next band min).
var bands = []band{
	{80, Grade4},
	{75, Grade3_5},
	{70, Grade3},
	{65, Grade2_5},
	{60, Grade2},
	{55, Grade1_5},
	{50, Grade1},
}

// GradeOf maps a score in [0, 100] to its grade token.
// Callers clamp the score first (see ClampScore).
func GradeOf(score float64) string {
	for _, b := range bands {
		if score >= b.min {
			return b.token
		}
	}
	return Grade0
}

// Tokens returns the canonical grade tokens, highest first.
func Tokens() []string {
	return []string{Grade4, Grade3_5, Grade3, Grade2_5, Grade2, Grade1_5, Grade1, Grade0}
}

// GradePoint parses a grade token to its numeric grade point.
func GradePoint(token string) (float64, bool) {
	gp, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil || math.IsNaN(gp) || gp < 0 || gp > 4 {
		return 0, false
	}
	return gp, true
}

// ClampFullScore keeps a full score in (0, DefaultFullScore]: scores never exceed 100.
// A non positive or NaN full score falls back to DefaultFullScore.
func ClampFullScore(full float64) float64 {
	if math.IsNaN(full) || full <= 0 || full > DefaultFullScore {
		return DefaultFullScore
	}
	return full
}

// ClampScore clamps v into [0, full]. A non positive full score falls back to DefaultFullScore.
func ClampScore(v, full float64) float64 {
	full = ClampFullScore(full)
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > full:
		return full
	default:
		return v
	}
}

// ParseScore reads a score typed in by a teacher: anything that is not a number counts as 0.
func ParseScore(s string, full float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		v = 0
	}
	return ClampScore(v, full)
}

// Band is the colour band a score is reported in.
type Band string

const (
	BandExcellent Band = "excellent" // >= 80
	BandGood      Band = "good"      // >= 60
	BandFair      Band = "fair"      // >= 50
	BandPoor      Band = "poor"
)

func BandOf(score float64) Band {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 50:
		return BandFair
	default:
		return BandPoor
	}
}
