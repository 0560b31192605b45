package student

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when no student has the requested uid.
var ErrNotFound = errors.New("student not found")

// Repository is the roster store. List and ListByYear return students in insertion order,
// which is the order Find breaks ties with.
type Repository interface {
	List(ctx context.Context) ([]Student, error)
	ListByYear(ctx context.Context, academicYear string) ([]Student, error)
	Get(ctx context.Context, uid string) (Student, error)
	// Put inserts or replaces the student with the same UID.
	Put(ctx context.Context, s Student) error
	Delete(ctx context.Context, uid string) error
}
