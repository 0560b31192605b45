package student

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradePrefix(t *testing.T) {
	assert.Equal(t, "1", GradePrefix("ป.1"))
	assert.Equal(t, "6", GradePrefix("ป.6"))
	assert.Equal(t, "12", GradePrefix("ม.12"))
	assert.Equal(t, "", GradePrefix("อนุบาล"))
}

func TestNextID(t *testing.T) {
	cohort := []Student{
		newStudent("101", "a", "a", "ป.1", "2568"),
		newStudent("103", "b", "b", "ป.1", "2568"),
		newStudent("102", "c", "c", "ป.1", "2568"),
		newStudent("109", "d", "d", "ป.1", "2567"),  // other year
		newStudent("201", "e", "e", "ป.2", "2568"),  // other grade
		newStudent("S-07", "f", "f", "ป.1", "2568"), // not prefixed
		newStudent("1abc", "g", "g", "ป.1", "2568"), // not numeric
	}

	tests := []struct {
		name  string
		class string
		year  string
		want  string
	}{
		{"cohort", "ป.1", "2568", "104"},
		{"other year", "ป.1", "2567", "110"},
		{"single", "ป.2", "2568", "202"},
		{"empty cohort", "ป.3", "2568", "301"},
		{"empty year", "ป.1", "2569", "101"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(cohort, tt.class, tt.year))
		})
	}
}

func TestNextID_strictlyGreater(t *testing.T) {
	var cohort []Student
	for i := 0; i < 120; i++ {
		id := NextID(cohort, "ป.4", "2568")
		seq, err := strconv.Atoi(id[1:])
		if err != nil {
			t.Fatalf("NextID() = %q, not prefixed sequence", id)
		}
		for _, s := range cohort {
			if prev := sequenceOf(s.ID, "4"); prev >= seq {
				t.Fatalf("NextID() = %q, not greater than %q", id, s.ID)
			}
		}
		cohort = append(cohort, newStudent(id, "x", "y", "ป.4", "2568"))
	}
	assert.Equal(t, "4120", cohort[len(cohort)-1].ID, "sequence grows past 2 digits")
}

func TestNextID_collidesWithoutSave(t *testing.T) {
	cohort := []Student{newStudent("501", "a", "a", "ป.5", "2568")}

	first := NextID(cohort, "ป.5", "2568")
	second := NextID(cohort, "ป.5", "2568")
	assert.Equal(t, "502", first)
	assert.Equal(t, first, second, "NextID is pure, callers serialise allocation")
}
