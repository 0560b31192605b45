package student

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// GradePrefix extracts the numeric part of a grade level: "ป.1" => "1".
func GradePrefix(gradeLevel string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, gradeLevel)
}

// sequenceOf returns the sequence number following prefix in id, 0 when id is not prefixed or not numeric.
func sequenceOf(id, prefix string) int {
	if !strings.HasPrefix(id, prefix) {
		return 0
	}
	seq, err := strconv.Atoi(id[len(prefix):])
	if err != nil || seq < 0 {
		return 0
	}
	return seq
}

// NextID derives the next display id of the (gradeLevel, academicYear) cohort:
// the grade prefix followed by max(sequence)+1 padded to 2 digits, e.g. "103".
//
// NextID is pure: two calls on the same roster return the same id.
// Concurrent enrolments must be serialised by the caller (see Service.Enroll).
func NextID(roster []Student, gradeLevel, academicYear string) string {
	prefix := GradePrefix(gradeLevel)
	var maxSeq int
	for _, s := range roster {
		if s.Class != gradeLevel || s.AcademicYear != academicYear {
			continue
		}
		if seq := sequenceOf(s.ID, prefix); seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("%s%02d", prefix, maxSeq+1)
}
