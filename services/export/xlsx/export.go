// Package xlsxsvc writes report cards and rosters to excel workbooks and reads rosters back.
package xlsxsvc

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/bantalo/reportcard/core/grading"
	"github.com/bantalo/reportcard/core/report"
	"github.com/bantalo/reportcard/core/report/document"
	"github.com/bantalo/reportcard/core/student"
)

const (
	ReportSheet = "รายงานผลการเรียน"
	RosterSheet = "รายชื่อนักเรียน"
)

// bandFills are the cell colours of the score bands.
var bandFills = map[grading.Band]string{
	grading.BandExcellent: "#C6EFCE",
	grading.BandGood:      "#DDEBF7",
	grading.BandFair:      "#FFEB9C",
	grading.BandPoor:      "#FFC7CE",
}

var categoryNames = map[grading.Category]string{
	grading.CategoryScience:  "วิทยาศาสตร์และเทคโนโลยี",
	grading.CategoryMath:     "คณิตศาสตร์",
	grading.CategoryLanguage: "ภาษา",
	grading.CategorySocial:   "สังคมศึกษา",
	grading.CategoryArt:      "ศิลปะ สุขศึกษา และการงาน",
	grading.CategoryActivity: "กิจกรรม",
}

// sheetWriter writes a sheet line by line. The first error sticks and turns later calls into no-ops.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	bold  int
	bands map[grading.Band]int
	err   error
}

func newSheetWriter(sheet string) (*sheetWriter, error) {
	f := excelize.NewFile()
	w := &sheetWriter{f: f, sheet: sheet, row: 1, bands: make(map[grading.Band]int, len(bandFills))}
	w.err = f.SetSheetName(f.GetSheetName(0), sheet)
	if w.err == nil {
		w.bold, w.err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	}
	for band, colour := range bandFills {
		if w.err != nil {
			break
		}
		w.bands[band], w.err = f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colour}},
		})
	}
	if w.err != nil {
		_ = f.Close()
		return nil, w.err
	}
	return w, nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row) // col and row are always >= 1
	return name
}

// line writes values on the current row and moves to the next one.
func (w *sheetWriter) line(values ...interface{}) {
	if w.err == nil && len(values) > 0 {
		w.err = w.f.SetSheetRow(w.sheet, cellName(1, w.row), &values)
	}
	w.row++
}

// header writes a bold line.
func (w *sheetWriter) header(values ...interface{}) {
	w.line(values...)
	if w.err == nil {
		w.err = w.f.SetCellStyle(w.sheet, cellName(1, w.row-1), cellName(len(values), w.row-1), w.bold)
	}
}

// fill colours the cell in column col of the previous line after the band.
func (w *sheetWriter) fill(col int, band grading.Band) {
	if w.err == nil {
		cell := cellName(col, w.row-1)
		w.err = w.f.SetCellStyle(w.sheet, cell, cell, w.bands[band])
	}
}

func (w *sheetWriter) widen(firstCol, lastCol string, width float64) {
	if w.err == nil {
		w.err = w.f.SetColWidth(w.sheet, firstCol, lastCol, width)
	}
}

// flush writes the workbook to out unless an earlier call failed.
func (w *sheetWriter) flush(out io.Writer) error {
	defer func() { _ = w.f.Close() }()
	if w.err != nil {
		return errors.Wrap(w.err, "writing sheet")
	}
	return errors.Wrap(w.f.Write(out), "writing workbook")
}

// WriteDocument renders a report card to a single sheet workbook.
func WriteDocument(out io.Writer, doc document.Document) error {
	w, err := newSheetWriter(ReportSheet)
	if err != nil {
		return errors.Wrap(err, "creating workbook")
	}

	w.header(doc.School)
	w.line(fmt.Sprintf("รายงานผลการเรียน ภาคเรียนที่ %s ปีการศึกษา %s", doc.Semester, doc.AcademicYear))
	w.line("ชื่อ-สกุล", doc.StudentName, "เลขประจำตัว", doc.ID)
	w.line("ชั้น", doc.Class, "เลขที่", doc.Number)
	w.line()

	w.header("ลำดับ", "รายวิชา", "กลุ่มสาระ", "คะแนนเต็ม", "คะแนนที่ได้", "ระดับผลการเรียน")
	for i, row := range doc.Rows {
		w.line(i+1, row.Subject, categoryNames[row.Category], row.FullScore, row.Score, row.Grade)
		w.fill(5, row.Band)
	}
	w.line()
	w.line("คะแนนรวม", report.FormatScore(doc.Summary.TotalScore))
	w.line("คะแนนเฉลี่ย", doc.Summary.AverageText)
	w.line("เกรดเฉลี่ย", fmt.Sprintf("%.2f", doc.Summary.GPA))
	w.line()

	w.header("กลุ่มสาระ", "จำนวนวิชา", "คะแนนเฉลี่ย")
	for _, cat := range doc.Categories {
		w.line(categoryNames[cat.Category], cat.Subjects, report.FormatScore(cat.Average))
		w.fill(3, grading.BandOf(cat.Average))
	}
	w.line()

	for _, sig := range doc.Teachers {
		w.line("ลงชื่อ", "("+sig.SignatureName+")", "ครูประจำชั้น")
	}
	if doc.Director.Name != "" {
		w.line("ลงชื่อ", "("+doc.Director.SignatureName+")", "ผู้อำนวยการโรงเรียน")
	}
	w.widen("B", "C", 30)
	return w.flush(out)
}

// roster columns that are not subjects
const (
	colFirstName = "ชื่อ"
	colLastName  = "นามสกุล"
	colID        = "เลขประจำตัว"
	colClass     = "ชั้น"
	colGPA       = "เกรดเฉลี่ย"
)

// WriteRoster lists a cohort, one student per row, in a layout ReadRoster reads back.
// The score columns follow the subjects of the first student.
func WriteRoster(out io.Writer, students []student.Student) error {
	w, err := newSheetWriter(RosterSheet)
	if err != nil {
		return errors.Wrap(err, "creating workbook")
	}

	var subjects []string
	if len(students) > 0 {
		for _, ss := range students[0].Scores {
			subjects = append(subjects, ss.SubjectName)
		}
	}

	header := []interface{}{colFirstName, colLastName, colID, colClass, colGPA}
	for _, subject := range subjects {
		header = append(header, subject)
	}
	w.header(header...)

	for _, s := range students {
		values := []interface{}{s.FirstName, s.LastName, s.ID, s.Class, s.GPA}
		scores := make(map[string]float64, len(s.Scores))
		for _, ss := range s.Scores {
			scores[ss.SubjectName] = ss.Score
		}
		for _, subject := range subjects {
			if score, ok := scores[subject]; ok {
				values = append(values, score)
			} else {
				values = append(values, "")
			}
		}
		w.line(values...)
	}
	w.widen("A", "B", 20)
	return w.flush(out)
}
