package student

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/grading"
	"github.com/bantalo/reportcard/core/report"
)

// NewSubjectName is the placeholder name of a subject added from the score editor.
const NewSubjectName = "วิชาใหม่ (แก้ไขได้)"

var (
	NowFunc = time.Now       // mockable
	newUID  = uuid.NewString // mockable
)

// RecentSearches records successful searches.
type RecentSearches interface {
	Push(ctx context.Context, name string) ([]string, error)
}

type Service struct {
	repo      Repository
	recent    RecentSearches
	validate  *validator.Validate
	log       core.Logger
	catalogue *Catalogue

	// allocMu serialises display id allocation: NextID + Put.
	allocMu sync.Mutex
}

func NewService(repo Repository, recent RecentSearches, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{
		repo:      repo,
		recent:    recent,
		validate:  validate,
		log:       logger,
		catalogue: DefaultCatalogue,
	}
}

// Recalculate re-derives every grade and category, then the gpa. Run before every save.
func Recalculate(s *Student) {
	for i := range s.Scores {
		s.Scores[i].Regrade()
	}
	s.GPA = report.ComputeGPA(s.Scores)
}

// AddSubject appends an empty, renamable subject to the score sheet.
func (s *Student) AddSubject() {
	s.Scores = append(s.Scores, NewSubjectScore(NewSubjectName, 0, grading.DefaultFullScore))
}

// RemoveSubject drops the i-th subject of the score sheet.
func (s *Student) RemoveSubject(i int) error {
	if i < 0 || i >= len(s.Scores) {
		return core.NewFieldError("scores", "no such subject")
	}
	s.Scores = append(s.Scores[:i:i], s.Scores[i+1:]...)
	return nil
}

// removeSubjects drops the subjects at the given indexes, highest first so that the
// remaining indexes stay valid. Duplicates count once.
func (s *Student) removeSubjects(indexes []int) error {
	idx := append([]int(nil), indexes...)
	sort.Sort(sort.Reverse(sort.IntSlice(idx)))
	for i, at := range idx {
		if i > 0 && at == idx[i-1] {
			continue
		}
		if err := s.RemoveSubject(at); err != nil {
			return err
		}
	}
	return nil
}

func scoresFromInput(inputs []ScoreInput) []SubjectScore {
	scores := make([]SubjectScore, 0, len(inputs))
	for _, in := range inputs {
		scores = append(scores, NewSubjectScore(core.CleanString(in.SubjectName), in.Score, in.FullScore))
	}
	return scores
}

// Search finds the student of academicYear matching the trimmed query and records the hit in the recent searches.
// A miss is reported as a *NoMatchError.
func (svc *Service) Search(ctx context.Context, query, academicYear string) (Student, error) {
	query = core.CleanString(query)
	roster, err := svc.repo.ListByYear(ctx, academicYear)
	if err != nil {
		return Student{}, errors.Wrap(err, "listing roster")
	}

	s, err := Find(roster, query, academicYear)
	if err != nil {
		return Student{}, err
	}

	if svc.recent != nil {
		if _, err = svc.recent.Push(ctx, s.FullName()); err != nil {
			svc.log.Warn("could not record recent search", err, s)
		}
	}
	return s, nil
}

// NextID previews the display id the next enrolment in the cohort would get.
func (svc *Service) NextID(ctx context.Context, class, academicYear string) (string, error) {
	roster, err := svc.repo.ListByYear(ctx, academicYear)
	if err != nil {
		return "", errors.Wrap(err, "listing roster")
	}
	return NextID(roster, class, academicYear), nil
}

// Enroll creates a roster entry with the next display id of its cohort.
// Scores default to the empty score sheet of the grade level, teachers to its homeroom teachers.
func (svc *Service) Enroll(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, err
	}

	now := NowFunc().UTC()
	s := Student{
		UID:          newUID(),
		FirstName:    ns.FirstName,
		LastName:     ns.LastName,
		Class:        ns.Class,
		Semester:     ns.Semester,
		AcademicYear: ns.AcademicYear,
		Image:        ns.Image,
		Teachers:     ns.Teachers,
		Director:     svc.catalogue.Director,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if s.Semester == "" {
		s.Semester = DefaultSemester(s.AcademicYear)
	}
	if len(s.Teachers) == 0 {
		s.Teachers = svc.catalogue.Teachers(s.Class)
	}
	if ns.Scores != nil {
		s.Scores = scoresFromInput(ns.Scores)
	} else {
		s.Scores = svc.catalogue.NewScoreSheet(s.Class)
	}
	Recalculate(&s)

	svc.allocMu.Lock()
	defer svc.allocMu.Unlock()

	roster, err := svc.repo.ListByYear(ctx, s.AcademicYear)
	if err != nil {
		return Student{}, errors.Wrap(err, "listing roster")
	}
	s.ID = NextID(roster, s.Class, s.AcademicYear)

	if err = svc.repo.Put(ctx, s); err != nil {
		return Student{}, errors.Wrap(err, "saving student")
	}
	return s, nil
}

func (svc *Service) Get(ctx context.Context, uid string) (Student, error) {
	return svc.repo.Get(ctx, uid)
}

// Update commits an edit draft: names, semester, image and the whole score sheet.
// Scores are clamped and regraded and the gpa recomputed before saving.
func (svc *Service) Update(ctx context.Context, uid string, us UpdateStudent) (Student, error) {
	if err := us.Validate(svc.validate); err != nil {
		return Student{}, err
	}

	s, err := svc.repo.Get(ctx, uid)
	if err != nil {
		return Student{}, err
	}
	if us.IsEmpty() {
		return s, nil
	}

	if us.FirstName != nil {
		s.FirstName = *us.FirstName
	}
	if us.LastName != nil {
		s.LastName = *us.LastName
	}
	if us.Semester != nil {
		s.Semester = *us.Semester
	}
	if us.Image != nil {
		s.Image = *us.Image
	}
	if us.Scores != nil {
		s.Scores = scoresFromInput(us.Scores)
	}
	if err = s.removeSubjects(us.RemoveSubjects); err != nil {
		return Student{}, err
	}
	for i := 0; i < us.AddSubjects; i++ {
		s.AddSubject()
	}
	Recalculate(&s)
	s.UpdatedAt = NowFunc().UTC()

	if err = svc.repo.Put(ctx, s); err != nil {
		return Student{}, errors.Wrap(err, "saving student")
	}
	return s, nil
}

func (svc *Service) Delete(ctx context.Context, uid string) error {
	if _, err := svc.repo.Get(ctx, uid); err != nil {
		return err
	}
	return svc.repo.Delete(ctx, uid)
}

// Cohort lists the roster shown on the grading portal.
func (svc *Service) Cohort(ctx context.Context, filter QueryFilter) ([]Student, error) {
	filter.Clean()

	var (
		roster []Student
		err    error
	)
	if filter.AcademicYear != "" {
		roster, err = svc.repo.ListByYear(ctx, filter.AcademicYear)
	} else {
		roster, err = svc.repo.List(ctx)
	}
	if err != nil {
		return nil, errors.Wrap(err, "listing roster")
	}
	students := FilterCohort(roster, filter)
	SortCohort(students, core.ParseOrderings(filter.Ordering))
	return students, nil
}
