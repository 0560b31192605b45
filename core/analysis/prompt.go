package analysis

import (
	"fmt"
	"strings"

	"github.com/bantalo/reportcard/core/report"
	"github.com/bantalo/reportcard/core/student"
)

// Prompt asks for a short Thai analysis of the strengths and weaknesses of s, with a study plan.
// Only the names, the class and the scores are sent.
func Prompt(s student.Student) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ในฐานะครูแนะแนว ช่วยวิเคราะห์ผลการเรียนของนักเรียนชื่อ %s ชั้น %s\n", s.FullName(), s.Class)
	b.WriteString("คะแนนรายวิชา:\n")
	for _, ss := range s.Scores {
		fmt.Fprintf(&b, "- %s: %s/%s (เกรด %s)\n",
			ss.SubjectName, report.FormatScore(ss.Score), report.FormatScore(ss.FullScore), ss.Grade)
	}
	sum := report.Summarize(s.Scores)
	fmt.Fprintf(&b, "คะแนนเฉลี่ย %s เกรดเฉลี่ย %.2f\n", sum.AverageText, sum.GPA)
	b.WriteString("สรุปจุดแข็ง จุดที่ควรพัฒนา และแนะนำแผนการเรียนที่เหมาะสม ")
	b.WriteString("ใช้ภาษาที่สุภาพ เข้าใจง่ายสำหรับนักเรียนและผู้ปกครอง ความยาวไม่เกิน 200 คำ")
	return b.String()
}
