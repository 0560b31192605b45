// Package document assembles what a renderer needs to print a student's report card.
package document

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bantalo/reportcard/core/grading"
	"github.com/bantalo/reportcard/core/report"
	"github.com/bantalo/reportcard/core/student"
)

const (
	chartLabelRunes = 8
	defaultAdvisor  = "ครูแนะแนว AI อัจฉริยะ"
)

// honorifics are stripped from signature names, in this order.
var honorifics = []string{"ว่าที่ร้อยตรี", "ว่าที่ร.ต.", "นางสาว", "นาง", "นาย", "ดร.", "ผอ.", "ครู"}

type (
	Row struct {
		Subject    string           `json:"subject"`
		ChartLabel string           `json:"chartLabel"`
		Category   grading.Category `json:"category"`
		Score      float64          `json:"score"`
		FullScore  float64          `json:"fullScore"`
		Grade      string           `json:"grade"`
		Band       grading.Band     `json:"band"`
	}

	CategoryRow struct {
		Category grading.Category `json:"category"`
		Average  float64          `json:"average"`
		Subjects int              `json:"subjects"`
	}

	Signature struct {
		Name          string `json:"name"`          // as registered, with honorific
		SignatureName string `json:"signatureName"` // printed under the signature line
	}

	Document struct {
		School       string         `json:"school"`
		StudentName  string         `json:"studentName"`
		ID           string         `json:"id"`
		Number       int            `json:"number"` // seat number, the last 2 digits of ID
		Class        string         `json:"class"`
		Semester     string         `json:"semester"`
		AcademicYear string         `json:"academicYear"`
		Image        string         `json:"image,omitempty"`
		Rows         []Row          `json:"rows"`
		Categories   []CategoryRow  `json:"categories"`
		Summary      report.Summary `json:"summary"`
		Teachers     []Signature    `json:"teachers"`
		Director     Signature      `json:"director"`
		AdvisorTitle string         `json:"advisorTitle"`
	}
)

// Build assembles the report card of s.
func Build(s student.Student, school string) Document {
	doc := Document{
		School:       school,
		StudentName:  s.FullName(),
		ID:           s.ID,
		Number:       SeatNumber(s.ID),
		Class:        s.Class,
		Semester:     s.Semester,
		AcademicYear: s.AcademicYear,
		Image:        s.Image,
		Rows:         make([]Row, 0, len(s.Scores)),
		Summary:      report.Summarize(s.Scores),
		Teachers:     make([]Signature, 0, len(s.Teachers)),
		Director:     NewSignature(s.Director),
		AdvisorTitle: AdvisorTitle(s.Teachers),
	}
	for _, ss := range s.Scores {
		doc.Rows = append(doc.Rows, Row{
			Subject:    ss.SubjectName,
			ChartLabel: ChartLabel(ss.SubjectName),
			Category:   ss.Category,
			Score:      ss.Score,
			FullScore:  ss.FullScore,
			Grade:      ss.Grade,
			Band:       grading.BandOf(ss.Percent()),
		})
	}
	doc.Categories = categoryRows(s.Scores)
	for _, teacher := range s.Teachers {
		doc.Teachers = append(doc.Teachers, NewSignature(teacher))
	}
	return doc
}

func categoryRows(scores []grading.SubjectScore) []CategoryRow {
	byCategory := make(map[grading.Category][]grading.SubjectScore)
	for _, ss := range scores {
		byCategory[ss.Category] = append(byCategory[ss.Category], ss)
	}
	rows := make([]CategoryRow, 0, len(byCategory))
	for _, cat := range grading.Categories {
		if css, ok := byCategory[cat]; ok {
			rows = append(rows, CategoryRow{
				Category: cat,
				Average:  report.Summarize(css).Average,
				Subjects: len(css),
			})
		}
	}
	return rows
}

// ChartLabel shortens a subject name for chart axes:
// the name before any "(", "และ" read as a word break, first word, at most 8 runes, then "..".
func ChartLabel(subject string) string {
	label := strings.SplitN(subject, "(", 2)[0]
	label = strings.Replace(label, "และ", " ", 1)
	label = strings.TrimSpace(strings.SplitN(label, " ", 2)[0])
	if utf8.RuneCountInString(label) > chartLabelRunes {
		label = string([]rune(label)[:chartLabelRunes])
	}
	return label + ".."
}

// SignatureName strips the honorifics heading a name, e.g. "นางสาวนูรีซัน สาและ" => "นูรีซัน สาและ".
func SignatureName(name string) string {
	name = strings.TrimSpace(name)
	for _, title := range honorifics {
		if strings.HasPrefix(name, title) {
			name = strings.TrimSpace(strings.TrimPrefix(name, title))
		}
	}
	return name
}

func NewSignature(name string) Signature {
	return Signature{Name: name, SignatureName: SignatureName(name)}
}

// SeatNumber reads the number of a student in class from the last 2 digits of the id, 0 if there are none.
func SeatNumber(id string) int {
	if len(id) > 2 {
		id = id[len(id)-2:]
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0
	}
	return n
}

// AdvisorTitle titles the AI analysis after the first homeroom teacher.
func AdvisorTitle(teachers []string) string {
	if len(teachers) == 0 || strings.TrimSpace(teachers[0]) == "" {
		return defaultAdvisor
	}
	return "คำแนะนำจาก" + strings.Fields(teachers[0])[0] + " (AI)"
}
