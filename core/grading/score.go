package grading

// SubjectScore is a student's result in one subject.
// Grade is derived from Score by GradeOf and is never set on its own.
type SubjectScore struct {
	SubjectName string   `json:"subjectName"`
	Score       float64  `json:"score"`
	FullScore   float64  `json:"fullScore"`
	Grade       string   `json:"grade"`
	Category    Category `json:"category"`
}

// NewSubjectScore returns a graded SubjectScore, clamping the score into [0, fullScore].
// fullScore is itself kept in (0, DefaultFullScore].
func NewSubjectScore(subjectName string, score, fullScore float64) SubjectScore {
	ss := SubjectScore{
		SubjectName: subjectName,
		FullScore:   ClampFullScore(fullScore),
		Category:    CategoryOf(subjectName),
	}
	ss.SetScore(score)
	return ss
}

// SetScore clamps and stores the score, then re-derives the grade.
func (ss *SubjectScore) SetScore(score float64) {
	ss.FullScore = ClampFullScore(ss.FullScore)
	ss.Score = ClampScore(score, ss.FullScore)
	ss.Grade = GradeOf(ss.Percent())
}

// Percent is the score on a 100 scale.
func (ss SubjectScore) Percent() float64 {
	if ss.FullScore == DefaultFullScore {
		return ss.Score
	}
	return ss.Score * 100 / ss.FullScore
}

// Regrade re-derives the grade and the category, e.g. after a rename or a load from storage.
func (ss *SubjectScore) Regrade() {
	ss.Category = CategoryOf(ss.SubjectName)
	ss.SetScore(ss.Score)
}
