package student

import (
	"sort"
	"strconv"

	"github.com/bantalo/reportcard/core/grading"
)

// GradeConfig is the default score sheet and homeroom of a grade level.
type GradeConfig struct {
	Subjects []string `json:"subjects"`
	Teachers []string `json:"teachers"`
}

// Catalogue describes the school: its grade levels, director and selectable academic years.
type Catalogue struct {
	Grades   map[string]GradeConfig
	Director string
}

var primarySubjects = []string{
	"ภาษาไทย",
	"คณิตศาสตร์",
	"วิทยาศาสตร์และเทคโนโลยี",
	"สังคมศึกษา ศาสนาและวัฒนธรรม",
	"ประวัติศาสตร์",
	"สุขศึกษาและพลศึกษา",
	"ศิลปะ",
	"การงานอาชีพ",
	"ภาษาอังกฤษ",
	"ภาษามลายู",
	"กิจกรรมพัฒนาผู้เรียน",
}

// DefaultCatalogue is the catalogue of the school the application ships for.
var DefaultCatalogue = &Catalogue{
	Grades: map[string]GradeConfig{
		"ป.1": {Subjects: primarySubjects, Teachers: []string{"นางสาวนูรีซัน สาและ", "นางรอฮานี ยูโซะ"}},
		"ป.2": {Subjects: primarySubjects, Teachers: []string{"นางสาวซูไรดา มะแซ"}},
		"ป.3": {Subjects: primarySubjects, Teachers: []string{"นายอับดุลเลาะ หะยีดาโอะ"}},
		"ป.4": {Subjects: primarySubjects, Teachers: []string{"นางสาวอัสมะ เจ๊ะแว", "ว่าที่ร้อยตรีฮาฟิซ สะมะแอ"}},
		"ป.5": {Subjects: primarySubjects, Teachers: []string{"นางแวนูรี แวหะยี"}},
		"ป.6": {Subjects: primarySubjects, Teachers: []string{"นายมูฮัมหมัด ดอเลาะ"}},
	},
	Director: "นายมะยูโซะ ตาเยะ",
}

// GradeLevels returns the known grade levels in order.
func (c *Catalogue) GradeLevels() []string {
	levels := make([]string, 0, len(c.Grades))
	for level := range c.Grades {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	return levels
}

func (c *Catalogue) HasGradeLevel(class string) bool {
	_, ok := c.Grades[class]
	return ok
}

// NewScoreSheet seeds the empty scores of a new roster entry of the given grade level.
func (c *Catalogue) NewScoreSheet(class string) []SubjectScore {
	conf := c.Grades[class]
	scores := make([]SubjectScore, 0, len(conf.Subjects))
	for _, subject := range conf.Subjects {
		scores = append(scores, NewSubjectScore(subject, 0, grading.DefaultFullScore))
	}
	return scores
}

// Teachers returns the homeroom teachers of a grade level.
func (c *Catalogue) Teachers(class string) []string {
	teachers := c.Grades[class].Teachers
	return append(make([]string, 0, len(teachers)), teachers...)
}

// YearOptions returns the selectable academic years, current year first.
func YearOptions(currentYear string, n int) []string {
	year, err := strconv.Atoi(currentYear)
	if err != nil {
		return []string{currentYear}
	}
	opts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		opts = append(opts, strconv.Itoa(year-i))
	}
	return opts
}

// DefaultSemester is the first semester of the academic year, e.g. "1/2568".
func DefaultSemester(year string) string {
	return "1/" + year
}
