package student

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/bantalo/reportcard/core"
)

// ErrNoMatch is the cause of every *NoMatchError.
var ErrNoMatch = errors.New("no matching student")

var (
	maxSuggestions     = 3
	suggestionMinRatio = .5
	noMatchMessageThai = `ไม่พบข้อมูลนักเรียน: "%s" ในปีการศึกษา %s`
)

// NoMatchError is the "no match" result of Find. It is an expected outcome, not a failure.
type NoMatchError struct {
	Query       string
	Year        string
	Suggestions []string // display names of the same year that look like Query
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf(noMatchMessageThai, e.Query, e.Year)
}

func (e *NoMatchError) Is(target error) bool {
	return target == ErrNoMatch
}

// nameKey is the lower-cased, whitespace free first+last name.
func nameKey(s Student) string {
	return core.NormalizeQuery(s.FirstName + s.LastName)
}

func (s Student) matchesName(normalized string) bool {
	return strings.Contains(nameKey(s), normalized) ||
		strings.Contains(strings.ToLower(s.FirstName), normalized) ||
		strings.Contains(strings.ToLower(s.LastName), normalized)
}

// Find returns the first student of academicYear matching query.
//
// An exact (verbatim) id match wins over any name match. Otherwise the first record, in roster order,
// whose first+last name, first name or last name contains the normalized query is returned.
// When nothing matches, the error is a *NoMatchError.
func Find(roster []Student, query, academicYear string) (Student, error) {
	normalized := core.NormalizeQuery(query)

	for _, s := range roster {
		if s.AcademicYear == academicYear && s.ID == query {
			return s, nil
		}
	}
	if normalized != "" {
		for _, s := range roster {
			if s.AcademicYear == academicYear && s.matchesName(normalized) {
				return s, nil
			}
		}
	}

	return Student{}, &NoMatchError{
		Query:       query,
		Year:        academicYear,
		Suggestions: suggest(roster, normalized, academicYear),
	}
}

// suggest ranks the display names of the year by similarity with the normalized query.
func suggest(roster []Student, normalized, academicYear string) []string {
	if normalized == "" {
		return nil
	}

	type candidate struct {
		name  string
		ratio float64
	}
	query := strings.Split(normalized, "")
	var candidates []candidate
	for _, s := range roster {
		if s.AcademicYear != academicYear {
			continue
		}
		ratio := difflib.NewMatcher(query, strings.Split(nameKey(s), "")).Ratio()
		if ratio >= suggestionMinRatio {
			candidates = append(candidates, candidate{name: s.FullName(), ratio: ratio})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].ratio > candidates[j].ratio })

	suggestions := make([]string, 0, maxSuggestions)
	for _, c := range candidates {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, c.name)
	}
	return suggestions
}

// FilterCohort lists the students of a (class, academicYear) cohort, in roster order,
// whose first or last name contains search. Empty filters match everything.
func FilterCohort(roster []Student, filter QueryFilter) []Student {
	search := strings.ToLower(filter.Search)
	students := make([]Student, 0)
	for _, s := range roster {
		if filter.Class != "" && s.Class != filter.Class {
			continue
		}
		if filter.AcademicYear != "" && s.AcademicYear != filter.AcademicYear {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(s.FirstName), search) &&
			!strings.Contains(strings.ToLower(s.LastName), search) {
			continue
		}
		students = append(students, s)
	}
	return students
}

// cohortFields are the fields a cohort can be sorted by.
var cohortFields = map[string]func(a, b Student) int{
	"id":        func(a, b Student) int { return strings.Compare(a.ID, b.ID) },
	"firstName": func(a, b Student) int { return strings.Compare(a.FirstName, b.FirstName) },
	"lastName":  func(a, b Student) int { return strings.Compare(a.LastName, b.LastName) },
	"class":     func(a, b Student) int { return strings.Compare(a.Class, b.Class) },
	"gpa": func(a, b Student) int {
		switch {
		case a.GPA < b.GPA:
			return -1
		case a.GPA > b.GPA:
			return 1
		}
		return 0
	},
}

// SortCohort sorts students in place by the orderings, keeping the roster order on ties.
// Unknown fields are ignored.
func SortCohort(students []Student, orderings []core.Ordering) {
	if len(orderings) == 0 {
		return
	}
	sort.SliceStable(students, func(i, j int) bool {
		for _, ord := range orderings {
			cmp, ok := cohortFields[ord.Field]
			if !ok {
				continue
			}
			c := cmp(students[i], students[j])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}
