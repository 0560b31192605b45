package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue(t *testing.T) {
	c := DefaultCatalogue
	assert.Equal(t, []string{"ป.1", "ป.2", "ป.3", "ป.4", "ป.5", "ป.6"}, c.GradeLevels())
	assert.True(t, c.HasGradeLevel("ป.4"))
	assert.False(t, c.HasGradeLevel("ม.1"))

	sheet := c.NewScoreSheet("ป.1")
	require.Len(t, sheet, len(primarySubjects))
	for i, ss := range sheet {
		assert.Equal(t, primarySubjects[i], ss.SubjectName)
		assert.Equal(t, float64(0), ss.Score)
		assert.Equal(t, float64(100), ss.FullScore)
		assert.Equal(t, "0", ss.Grade)
		assert.True(t, ss.Category.Valid(), ss.SubjectName)
	}
	assert.Empty(t, c.NewScoreSheet("ม.1"))

	// callers cannot alter the catalogue through the returned slice
	teachers := c.Teachers("ป.1")
	teachers[0] = "x"
	assert.Equal(t, "นางสาวนูรีซัน สาและ", c.Teachers("ป.1")[0])
}

func TestYearOptions(t *testing.T) {
	tests := []struct {
		name    string
		current string
		n       int
		want    []string
	}{
		{name: "three years", current: "2568", n: 3, want: []string{"2568", "2567", "2566"}},
		{name: "not a year", current: "abc", n: 3, want: []string{"abc"}},
		{name: "none", current: "2568", n: 0, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YearOptions(tt.current, tt.n))
		})
	}
	assert.Equal(t, "1/2568", DefaultSemester("2568"))
}
