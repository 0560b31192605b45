package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/bantalo/reportcard/core/report"
	"github.com/bantalo/reportcard/core/student"
)

// search prints the report card figures of the matching student, or the suggestions of a miss.
func (cli *commandLine) search(query, year string) error {
	s, err := cli.svc.Search(context.Background(), query, year)
	if err != nil {
		var noMatch *student.NoMatchError
		if errors.As(err, &noMatch) && len(noMatch.Suggestions) > 0 {
			fmt.Fprintf(cli.out, "did you mean: %v\n", noMatch.Suggestions)
		}
		return err
	}

	sum := report.Summarize(s.Scores)
	fmt.Fprintf(cli.out, "%s %s (%s) %s\n", s.ID, s.FullName(), s.Class, s.Semester)
	for _, ss := range s.Scores {
		fmt.Fprintf(cli.out, "  %-40s %6s/%-6s %s\n",
			ss.SubjectName, report.FormatScore(ss.Score), report.FormatScore(ss.FullScore), ss.Grade)
	}
	fmt.Fprintf(cli.out, "average %s gpa %.2f\n", sum.AverageText, sum.GPA)
	return nil
}

func (cli *commandLine) nextID(class, year string) error {
	if !student.DefaultCatalogue.HasGradeLevel(class) {
		return errors.Errorf("unknown grade level %q", class)
	}
	id, err := cli.svc.NextID(context.Background(), class, year)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, id)
	return nil
}

func (cli *commandLine) importRoster(path, class, year string) error {
	if !student.DefaultCatalogue.HasGradeLevel(class) {
		return errors.Errorf("unknown grade level %q", class)
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening roster")
	}
	defer func() { _ = f.Close() }()

	res, err := cli.importer.Import(context.Background(), f, class, year)
	for _, s := range res.Enrolled {
		fmt.Fprintf(cli.out, "enrolled %s %s\n", s.ID, s.FullName())
	}
	for _, skipped := range res.Skipped {
		fmt.Fprintf(cli.out, "skipped line %d: %s\n", skipped.Line, skipped.Reason)
	}
	return err
}

type demoStudent struct {
	firstName, lastName, class string
	base                       float64 // scores spread around it
}

var demoCohort = []demoStudent{
	{"สมชาย", "ใจดี", "ป.1", 78},
	{"สมหญิง", "รักเรียน", "ป.1", 88},
	{"อาหมัด", "สาและ", "ป.1", 61},
	{"ฟาตีมะ", "ดอเลาะ", "ป.2", 83},
	{"นูรุล", "ฮูดา", "ป.2", 52},
	{"มานะ", "อดทน", "ป.3", 70},
}

// seed enrols the demo cohort with scores spread around each student's base score.
func (cli *commandLine) seed(year string) error {
	ctx := context.Background()
	for _, demo := range demoCohort {
		subjects := student.DefaultCatalogue.Grades[demo.class].Subjects
		scores := make([]student.ScoreInput, 0, len(subjects))
		for i, subject := range subjects {
			scores = append(scores, student.ScoreInput{
				SubjectName: subject,
				Score:       demo.base + float64(i%5*4-8), // -8..+8
				FullScore:   100,
			})
		}

		s, err := cli.svc.Enroll(ctx, student.NewStudent{
			FirstName:    demo.firstName,
			LastName:     demo.lastName,
			Class:        demo.class,
			AcademicYear: year,
			Scores:       scores,
		})
		if err != nil {
			return errors.Wrapf(err, "enrolling %s %s", demo.firstName, demo.lastName)
		}
		fmt.Fprintf(cli.out, "enrolled %s %s gpa %.2f\n", s.ID, s.FullName(), s.GPA)
	}
	return nil
}

func (cli *commandLine) clearRecent() error {
	return cli.recent.Clear(context.Background())
}
