package xlsxsvc

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/bantalo/reportcard/core"
	"github.com/bantalo/reportcard/core/grading"
	"github.com/bantalo/reportcard/core/student"
)

// RosterRow is one student line of a roster workbook.
type RosterRow struct {
	Line      int // 1-based, as shown by spreadsheet programs
	FirstName string
	LastName  string
	Scores    []student.ScoreInput // nil when the sheet has no subject column
}

// ReadRoster reads the first sheet of a roster workbook.
// The header row is skipped; its labels name the subjects of the score columns found after
// the first name and last name columns. The id, class and gpa columns WriteRoster adds are ignored,
// and so are lines without any name.
func ReadRoster(r io.Reader) ([]RosterRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening workbook")
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheet")
	}
	lines, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %s", sheet)
	}
	if len(lines) == 0 {
		return []RosterRow{}, nil
	}

	subjects := make(map[int]string)
	for i, label := range lines[0] {
		label = core.CleanString(label)
		if i < 2 || label == "" {
			continue
		}
		switch label {
		case colID, colClass, colGPA:
			continue
		}
		subjects[i] = label
	}

	rows := make([]RosterRow, 0, len(lines)-1)
	for i, line := range lines[1:] {
		row := RosterRow{Line: i + 2, FirstName: cellAt(line, 0), LastName: cellAt(line, 1)}
		if row.FirstName == "" && row.LastName == "" {
			continue
		}
		if len(subjects) > 0 {
			row.Scores = make([]student.ScoreInput, 0, len(subjects))
			for col := range lines[0] {
				subject, ok := subjects[col]
				if !ok {
					continue
				}
				row.Scores = append(row.Scores, student.ScoreInput{
					SubjectName: subject,
					Score:       grading.ParseScore(cellAt(line, col), grading.DefaultFullScore),
					FullScore:   grading.DefaultFullScore,
				})
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cellAt(line []string, col int) string {
	if col < len(line) {
		return core.CleanString(line[col])
	}
	return ""
}

// Enroller is satisfied by *student.Service.
type Enroller interface {
	Enroll(ctx context.Context, ns student.NewStudent) (student.Student, error)
}

type (
	SkippedRow struct {
		Line   int    `json:"line"`
		Reason string `json:"reason"`
	}

	ImportResult struct {
		Enrolled []student.Student `json:"enrolled"`
		Skipped  []SkippedRow      `json:"skipped"`
	}
)

// Importer enrols the students of a roster workbook into one cohort.
type Importer struct {
	svc Enroller
	log core.Logger
}

func NewImporter(svc Enroller, logger core.Logger) *Importer {
	return &Importer{svc: svc, log: logger}
}

// Import enrols every line of the workbook into class and academicYear, in sheet order.
// Lines failing validation are skipped and reported; any other failure stops the import,
// keeping what was enrolled so far.
func (imp *Importer) Import(ctx context.Context, r io.Reader, class, academicYear string) (ImportResult, error) {
	res := ImportResult{Enrolled: make([]student.Student, 0), Skipped: make([]SkippedRow, 0)}

	rows, err := ReadRoster(r)
	if err != nil {
		return res, err
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		s, err := imp.svc.Enroll(ctx, student.NewStudent{
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			Class:        class,
			AcademicYear: academicYear,
			Scores:       row.Scores,
		})
		if err != nil {
			if reason, ok := validationReason(err); ok {
				res.Skipped = append(res.Skipped, SkippedRow{Line: row.Line, Reason: reason})
				continue
			}
			return res, errors.Wrapf(err, "enrolling line %d", row.Line)
		}
		res.Enrolled = append(res.Enrolled, s)
	}

	imp.log.Info(fmt.Sprintf("imported %d students into %s/%s", len(res.Enrolled), class, academicYear),
		map[string]interface{}{"skipped": len(res.Skipped)})
	return res, nil
}

func validationReason(err error) (string, bool) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		names := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			names = append(names, fe.Field())
		}
		return "invalid " + strings.Join(names, ", "), true
	}
	var valErr *core.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error(), true
	}
	return "", false
}
