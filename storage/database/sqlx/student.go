package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/bantalo/reportcard/core/student"
)

// studentRow is a student as stored: scores and teachers are JSON encoded.
type studentRow struct {
	UID          string      `db:"uid"`
	ID           string      `db:"id"`
	FirstName    string      `db:"first_name"`
	LastName     string      `db:"last_name"`
	Class        string      `db:"class"`
	Semester     string      `db:"semester"`
	AcademicYear string      `db:"academic_year"`
	Image        null.String `db:"image"`
	Scores       string      `db:"scores"`
	GPA          float64     `db:"gpa"`
	Teachers     string      `db:"teachers"`
	Director     null.String `db:"director"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

const studentColumns = `uid, id, first_name, last_name, class, semester, academic_year,
	image, scores, gpa, teachers, director, created_at, updated_at`

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo studentRepository) row(s student.Student) (studentRow, error) {
	scores := s.Scores
	if scores == nil {
		scores = []student.SubjectScore{}
	}
	teachers := s.Teachers
	if teachers == nil {
		teachers = []string{}
	}
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return studentRow{}, errors.Wrap(err, "encoding scores")
	}
	teachersJSON, err := json.Marshal(teachers)
	if err != nil {
		return studentRow{}, errors.Wrap(err, "encoding teachers")
	}
	return studentRow{
		UID:          s.UID,
		ID:           s.ID,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Class:        s.Class,
		Semester:     s.Semester,
		AcademicYear: s.AcademicYear,
		Image:        null.NewString(s.Image, s.Image != ""),
		Scores:       string(scoresJSON),
		GPA:          s.GPA,
		Teachers:     string(teachersJSON),
		Director:     null.NewString(s.Director, s.Director != ""),
		CreatedAt:    s.CreatedAt.UTC(),
		UpdatedAt:    s.UpdatedAt.UTC(),
	}, nil
}

func (repo studentRepository) student(r studentRow) (student.Student, error) {
	s := student.Student{
		UID:          r.UID,
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Class:        r.Class,
		Semester:     r.Semester,
		AcademicYear: r.AcademicYear,
		Image:        r.Image.String,
		GPA:          r.GPA,
		Director:     r.Director.String,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
	if err := json.Unmarshal([]byte(r.Scores), &s.Scores); err != nil {
		return student.Student{}, errors.Wrapf(err, "decoding scores of %s", r.UID)
	}
	for i := range s.Scores {
		s.Scores[i].Regrade() // rows written by older builds may hold unclamped scores
	}
	if err := json.Unmarshal([]byte(r.Teachers), &s.Teachers); err != nil {
		return student.Student{}, errors.Wrapf(err, "decoding teachers of %s", r.UID)
	}
	return s, nil
}

func (repo studentRepository) query(ctx context.Context, query string, args ...interface{}) ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, r := range rows {
		s, err := repo.student(r)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, nil
}

func (repo studentRepository) List(ctx context.Context) ([]student.Student, error) {
	return repo.query(ctx, `SELECT `+studentColumns+` FROM student ORDER BY position`)
}

func (repo studentRepository) ListByYear(ctx context.Context, academicYear string) ([]student.Student, error) {
	return repo.query(ctx, `SELECT `+studentColumns+` FROM student WHERE academic_year = ? ORDER BY position`, academicYear)
}

func (repo studentRepository) Get(ctx context.Context, uid string) (student.Student, error) {
	var r studentRow
	query := repo.db.Rebind(`SELECT ` + studentColumns + ` FROM student WHERE uid = ?`)
	if err := repo.db.GetContext(ctx, &r, query, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "selecting student")
	}
	return repo.student(r)
}

// Put upserts by uid. A new row is appended at the end of the roster order, an existing one keeps its place.
func (repo studentRepository) Put(ctx context.Context, s student.Student) error {
	r, err := repo.row(s)
	if err != nil {
		return err
	}
	query := `INSERT INTO student (position, ` + studentColumns + `)
	VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM student),
		:uid, :id, :first_name, :last_name, :class, :semester, :academic_year,
		:image, :scores, :gpa, :teachers, :director, :created_at, :updated_at)
	ON CONFLICT (uid) DO UPDATE SET
		id = excluded.id,
		first_name = excluded.first_name,
		last_name = excluded.last_name,
		class = excluded.class,
		semester = excluded.semester,
		academic_year = excluded.academic_year,
		image = excluded.image,
		scores = excluded.scores,
		gpa = excluded.gpa,
		teachers = excluded.teachers,
		director = excluded.director,
		updated_at = excluded.updated_at`
	if _, err = repo.db.NamedExecContext(ctx, query, r); err != nil {
		return errors.Wrap(err, "upserting student")
	}
	return nil
}

func (repo studentRepository) Delete(ctx context.Context, uid string) error {
	if _, err := repo.db.ExecContext(ctx, repo.db.Rebind(`DELETE FROM student WHERE uid = ?`), uid); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return nil
}
