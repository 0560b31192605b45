package student

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/grading"
)

// SubjectScore is the graded result of one subject, see grading.SubjectScore.
type SubjectScore = grading.SubjectScore

// NewSubjectScore returns a graded SubjectScore, clamping the score into [0, fullScore].
func NewSubjectScore(subjectName string, score, fullScore float64) SubjectScore {
	return grading.NewSubjectScore(subjectName, score, fullScore)
}

type Student struct {
	UID          string         `json:"uid"` // storage key
	ID           string         `json:"id"`  // display id, unique within AcademicYear
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Class        string         `json:"class"` // grade level, e.g. "ป.1"
	Semester     string         `json:"semester"`
	AcademicYear string         `json:"academicYear"`
	Image        string         `json:"image"`
	Scores       []SubjectScore `json:"scores"`
	GPA          float64        `json:"gpa"`
	Teachers     []string       `json:"teachers"`
	Director     string         `json:"director"`
	CreatedAt    time.Time      `json:"createdAt"` // UTC
	UpdatedAt    time.Time      `json:"updatedAt"` // UTC
}

// FullName is the display name pushed into the recent searches.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// NewStudent contains information needed to enrol a new Student.
type NewStudent struct {
	FirstName    string       `json:"firstName" validate:"required,notblank"`
	LastName     string       `json:"lastName" validate:"required,notblank"`
	Class        string       `json:"class" validate:"required,gradelevel"`
	AcademicYear string       `json:"academicYear" validate:"required,academicyear"`
	Semester     string       `json:"semester"`
	Image        string       `json:"image" validate:"omitempty,url"`
	Scores       []ScoreInput `json:"scores" validate:"omitempty,dive"`
	Teachers     []string     `json:"teachers" validate:"omitempty,max=2"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Class = core.CleanString(ns.Class)
	ns.AcademicYear = core.CleanString(ns.AcademicYear)
	ns.Semester = core.CleanString(ns.Semester)
	return validate.Struct(ns)
}

// ScoreInput is one subject line of an enrolment or an edit.
// Score is clamped, not rejected, when out of range.
type ScoreInput struct {
	SubjectName string  `json:"subjectName" validate:"required,notblank"`
	Score       float64 `json:"score"`
	FullScore   float64 `json:"fullScore" validate:"omitempty,gt=0,lte=100"`
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Scores, when set, replace the whole score sheet. RemoveSubjects (indexes into the sheet,
// after any replacement) are then dropped and AddSubjects empty subjects appended.
type UpdateStudent struct {
	FirstName      *string      `json:"firstName" validate:"omitempty,notblank"`
	LastName       *string      `json:"lastName" validate:"omitempty,notblank"`
	Semester       *string      `json:"semester"`
	Image          *string      `json:"image" validate:"omitempty,url"`
	Scores         []ScoreInput `json:"scores" validate:"omitempty,dive"`
	RemoveSubjects []int        `json:"removeSubjects" validate:"omitempty,dive,min=0"`
	AddSubjects    int          `json:"addSubjects" validate:"min=0,max=20"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	for _, fld := range []*string{us.FirstName, us.LastName, us.Semester} {
		if fld != nil {
			*fld = core.CleanString(*fld)
		}
	}
	return validate.Struct(us)
}

// IsEmpty tells whether the update carries no change at all.
func (us *UpdateStudent) IsEmpty() bool {
	return us.FirstName == nil && us.LastName == nil && us.Semester == nil && us.Image == nil && us.Scores == nil &&
		len(us.RemoveSubjects) == 0 && us.AddSubjects == 0
}

// QueryFilter filters the roster shown on the grading portal.
type QueryFilter struct {
	Class        string `query:"class"`
	AcademicYear string `query:"year"`
	Search       string `query:"search"`
	Ordering     string `query:"ordering"` // e.g. "class,-gpa", see SortCohort
}

func (qf *QueryFilter) Clean() {
	qf.Class = core.CleanString(qf.Class)
	qf.AcademicYear = core.CleanString(qf.AcademicYear)
	qf.Search = core.CleanString(qf.Search)
	qf.Ordering = core.CleanString(qf.Ordering)
}
