package sqlxrepos_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/student"
	"github.com/bantalo/reportcard/storage/database"
	. "github.com/bantalo/reportcard/storage/database/sqlx"
)

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(&core.Config{Database: core.DatabaseConfig{Engine: "sqlite", DSN: ":memory:"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func newStudent(uid, id, first, year string) student.Student {
	now := time.Date(2025, 5, 16, 8, 30, 0, 0, time.UTC)
	s := student.Student{
		UID:          uid,
		ID:           id,
		FirstName:    first,
		LastName:     "ใจดี",
		Class:        "ป.1",
		Semester:     student.DefaultSemester(year),
		AcademicYear: year,
		Scores: []student.SubjectScore{
			student.NewSubjectScore("คณิตศาสตร์", 85, 100),
			student.NewSubjectScore("ภาษาไทย", 72, 100),
		},
		Teachers:  []string{"นางสาวนูรีซัน สาและ"},
		Director:  "นายมะยูโซะ ตาเยะ",
		CreatedAt: now,
		UpdatedAt: now,
	}
	student.Recalculate(&s)
	return s
}

func TestStudentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(openDB(t))

	somchai := newStudent("u1", "101", "สมชาย", "2568")
	somsri := newStudent("u2", "101", "สมศรี", "2567")
	somsri.Image = "https://example.com/somsri.png"
	somsri.Director = ""
	mana := newStudent("u3", "102", "มานะ", "2568")
	for _, s := range []student.Student{somchai, somsri, mana} {
		require.NoError(t, repo.Put(ctx, s))
	}

	t.Run("Get", func(t *testing.T) {
		got, err := repo.Get(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, somsri, got)

		_, err = repo.Get(ctx, "nope")
		assert.Equal(t, student.ErrNotFound, err)
	})

	t.Run("List keeps insertion order", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"u1", "u2", "u3"}, []string{all[0].UID, all[1].UID, all[2].UID})

		year, err := repo.ListByYear(ctx, "2568")
		require.NoError(t, err)
		assert.Equal(t, []student.Student{somchai, mana}, year)

		none, err := repo.ListByYear(ctx, "2500")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Put replaces in place", func(t *testing.T) {
		edited := somchai
		edited.FirstName = "สมชัย"
		edited.Scores = edited.Scores[:1]
		student.Recalculate(&edited)
		require.NoError(t, repo.Put(ctx, edited))

		got, err := repo.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "สมชัย", got.FirstName)
		assert.Len(t, got.Scores, 1)
		assert.Equal(t, 4.0, got.GPA)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, "u1", all[0].UID)
	})

	t.Run("display ids are unique within a year", func(t *testing.T) {
		dup := newStudent("u4", "101", "ซ้ำ", "2568")
		assert.Error(t, repo.Put(ctx, dup))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "u2"))
		require.NoError(t, repo.Delete(ctx, "u2"))
		_, err := repo.Get(ctx, "u2")
		assert.Equal(t, student.ErrNotFound, err)
	})
}

func TestStudentRepository_emptySheet(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(openDB(t))

	s := newStudent("u1", "101", "สมชาย", "2568")
	s.Scores, s.Teachers = nil, nil
	require.NoError(t, repo.Put(ctx, s))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []student.SubjectScore{}, got.Scores)
	assert.Equal(t, []string{}, got.Teachers)
}

func TestStudentRepository_clampsStoredScores(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(openDB(t))

	s := newStudent("u1", "101", "สมชาย", "2568")
	s.Scores[0].Score, s.Scores[0].FullScore, s.Scores[0].Grade = 150, 200, "3.5"
	require.NoError(t, repo.Put(ctx, s))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.Scores[0].FullScore)
	assert.Equal(t, 100.0, got.Scores[0].Score)
	assert.Equal(t, "4", got.Scores[0].Grade)
}
