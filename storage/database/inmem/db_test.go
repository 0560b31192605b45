package inmemdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/student"
)

func TestStudentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(Open())

	somchai := student.Student{UID: "u1", ID: "101", FirstName: "สมชาย", AcademicYear: "2568",
		Scores: []student.SubjectScore{student.NewSubjectScore("คณิตศาสตร์", 80, 100)}}
	somsri := student.Student{UID: "u2", ID: "102", FirstName: "สมศรี", AcademicYear: "2567"}
	require.NoError(t, repo.Put(ctx, somchai))
	require.NoError(t, repo.Put(ctx, somsri))

	_, err := repo.Get(ctx, "nope")
	assert.Equal(t, student.ErrNotFound, err)

	// returned students do not share memory with the table
	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	got.Scores[0].Score = 0
	got, _ = repo.Get(ctx, "u1")
	assert.Equal(t, float64(80), got.Scores[0].Score)

	// replacing keeps the insertion order
	somchai.FirstName = "สมชาย ใหม่"
	require.NoError(t, repo.Put(ctx, somchai))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "สมชาย ใหม่", all[0].FirstName)
	assert.Equal(t, "u2", all[1].UID)

	byYear, err := repo.ListByYear(ctx, "2567")
	require.NoError(t, err)
	require.Len(t, byYear, 1)
	assert.Equal(t, "u2", byYear[0].UID)

	require.NoError(t, repo.Delete(ctx, "u1"))
	require.NoError(t, repo.Delete(ctx, "u1"))
	all, _ = repo.List(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "u2", all[0].UID)
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	kv := NewKVStore(Open())

	_, err := kv.Get(ctx, "recentSearches")
	assert.Equal(t, core.ErrKeyNotFound, err)

	require.NoError(t, kv.Set(ctx, "recentSearches", `["สมชาย ใจดี"]`))
	val, err := kv.Get(ctx, "recentSearches")
	require.NoError(t, err)
	assert.Equal(t, `["สมชาย ใจดี"]`, val)

	require.NoError(t, kv.Delete(ctx, "recentSearches"))
	require.NoError(t, kv.Delete(ctx, "recentSearches"))
	_, err = kv.Get(ctx, "recentSearches")
	assert.Equal(t, core.ErrKeyNotFound, err)
}
