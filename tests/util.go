package testutil

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/student"
	logsvc "github.com/bantalo/reportcard/services/logger"
)

// NewLogger returns a logger that reports nowhere.
func NewLogger() core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "TEST : ", 0), &core.Config{Env: "TEST"})
	logger.Enable(false)
	return logger
}

// NewValidator returns a validator with every custom validator registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)
	return validate, translator
}

// CreateStudent saves a graded student straight into repo, bypassing id allocation.
// scores are "subject", score pairs.
func CreateStudent(
	t *testing.T,
	repo student.Repository,
	id, firstName, lastName, class, year string,
	scores ...interface{},
) student.Student {
	t.Helper()

	if len(scores)%2 != 0 {
		t.Fatalf("CreateStudent() scores must be subject, score pairs")
	}
	now := time.Now().UTC()
	s := student.Student{
		UID:          fmt.Sprintf("%s-%s-%s", year, class, id),
		ID:           id,
		FirstName:    firstName,
		LastName:     lastName,
		Class:        class,
		Semester:     student.DefaultSemester(year),
		AcademicYear: year,
		Teachers:     student.DefaultCatalogue.Teachers(class),
		Director:     student.DefaultCatalogue.Director,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i := 0; i < len(scores); i += 2 {
		name, _ := scores[i].(string)
		var val float64
		switch v := scores[i+1].(type) {
		case int:
			val = float64(v)
		case float64:
			val = v
		}
		s.Scores = append(s.Scores, student.NewSubjectScore(name, val, 100))
	}
	student.Recalculate(&s)

	if err := repo.Put(context.Background(), s); err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}
