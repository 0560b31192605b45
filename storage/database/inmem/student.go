package inmemdb

import (
	"context"

	"github.com/bantalo/reportcard/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

// clone copies the slices so that callers never share memory with the table.
func clone(s student.Student) student.Student {
	s.Scores = append([]student.SubjectScore(nil), s.Scores...)
	s.Teachers = append([]string(nil), s.Teachers...)
	return s
}

func (repo *studentRepository) query(keep func(s *student.Student) bool) []student.Student {
	students := make([]student.Student, 0, len(repo.db.order))
	for _, uid := range repo.db.order {
		if s := repo.db.table[uid]; keep(s) {
			students = append(students, clone(*s))
		}
	}
	return students
}

func (repo *studentRepository) List(_ context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(*student.Student) bool { return true }), nil
}

func (repo *studentRepository) ListByYear(_ context.Context, academicYear string) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(s *student.Student) bool { return s.AcademicYear == academicYear }), nil
}

func (repo *studentRepository) Get(_ context.Context, uid string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.table[uid]; ok {
		return clone(*s), nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) Put(_ context.Context, s student.Student) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[s.UID]; !ok {
		repo.db.order = append(repo.db.order, s.UID)
	}
	s = clone(s)
	repo.db.table[s.UID] = &s
	return nil
}

func (repo *studentRepository) Delete(_ context.Context, uid string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[uid]; !ok {
		return nil
	}
	delete(repo.db.table, uid)
	for i, id := range repo.db.order {
		if id == uid {
			repo.db.order = append(repo.db.order[:i], repo.db.order[i+1:]...)
			break
		}
	}
	return nil
}
