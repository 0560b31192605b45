package analysissvc

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bantalo/reportcard/core/analysis"
	"github.com/bantalo/reportcard/core/grading"
	"github.com/bantalo/reportcard/core/report"
	"github.com/bantalo/reportcard/core/student"
)

var (
	// Prompts holds every prompt the console analyzer received.
	Prompts = make([]string, 0)
	mu      sync.Mutex
)

// consoleAnalyzer answers without calling any model: the prompt is written to out
// and the analysis is derived from the score bands. Meant for local development.
type consoleAnalyzer struct {
	out           io.Writer
	disableOutput bool
}

var _ analysis.Analyzer = (*consoleAnalyzer)(nil)

func NewConsoleAnalyzer(out io.Writer) analysis.Analyzer {
	return &consoleAnalyzer{out: out}
}

// NewConsoleAnalyzerMock records prompts without printing them.
func NewConsoleAnalyzerMock() analysis.Analyzer {
	return &consoleAnalyzer{disableOutput: true}
}

func (a consoleAnalyzer) Analyze(ctx context.Context, s student.Student) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prompt := analysis.Prompt(s)
	mu.Lock()
	Prompts = append(Prompts, prompt)
	mu.Unlock()
	if !a.disableOutput {
		_, _ = fmt.Fprintf(a.out, "---------- analysis prompt ----------\n%s\n-------------------------------------\n", prompt)
	}
	return bandAnalysis(s), nil
}

func bandAnalysis(s student.Student) string {
	if len(s.Scores) == 0 {
		return fmt.Sprintf("%s ยังไม่มีคะแนนรายวิชาให้วิเคราะห์", s.FullName())
	}

	var strong, weak []string
	for _, ss := range s.Scores {
		switch grading.BandOf(ss.Percent()) {
		case grading.BandExcellent:
			strong = append(strong, ss.SubjectName)
		case grading.BandPoor:
			weak = append(weak, ss.SubjectName)
		}
	}
	sum := report.Summarize(s.Scores)

	var b strings.Builder
	fmt.Fprintf(&b, "%s มีคะแนนเฉลี่ย %s และเกรดเฉลี่ย %.2f\n", s.FullName(), sum.AverageText, sum.GPA)
	if len(strong) > 0 {
		fmt.Fprintf(&b, "จุดแข็ง: %s\n", strings.Join(strong, ", "))
	} else {
		fmt.Fprintf(&b, "วิชาที่ทำได้ดีที่สุด: %s\n", sum.Strongest)
	}
	if len(weak) > 0 {
		fmt.Fprintf(&b, "ควรพัฒนา: %s ควรทบทวนบทเรียนสม่ำเสมอและขอคำแนะนำจากครูประจำวิชา", strings.Join(weak, ", "))
	} else {
		fmt.Fprintf(&b, "ควรรักษามาตรฐานและเสริมวิชา%sให้ดียิ่งขึ้น", sum.Weakest)
	}
	return b.String()
}
