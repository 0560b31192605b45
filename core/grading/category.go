package grading

import "strings"

// Category groups subjects on the report.
type Category string

const (
	CategoryScience  Category = "Science"
	CategoryMath     Category = "Math"
	CategoryLanguage Category = "Language"
	CategorySocial   Category = "Social"
	CategoryArt      Category = "Art"
	CategoryActivity Category = "Activity"
)

var Categories = []Category{
	CategoryScience, CategoryMath, CategoryLanguage, CategorySocial, CategoryArt, CategoryActivity,
}

func (c Category) Valid() bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

type categoryRule struct {
	keywords []string
	category Category
}

// rules are checked in order, first keyword hit wins.
// "วิทยาการคำนวณ" (computing) sits under Science in the Thai core curriculum.
var categoryRules = []categoryRule{
	{[]string{"คณิต", "math"}, CategoryMath},
	{[]string{"วิทยาศาสตร์", "วิทยาการคำนวณ", "เทคโนโลยี", "science", "computing"}, CategoryScience},
	{[]string{"ภาษา", "อังกฤษ", "มลายู", "อาหรับ", "จีน", "english", "language"}, CategoryLanguage},
	{[]string{"สังคม", "ประวัติศาสตร์", "ศาสนา", "หน้าที่พลเมือง", "อิสลามศึกษา", "social", "history"}, CategorySocial},
	{[]string{"ศิลปะ", "ดนตรี", "นาฏศิลป์", "สุขศึกษา", "พลศึกษา", "การงาน", "อาชีพ", "art", "music", "health"}, CategoryArt},
}

// CategoryOf classifies a subject by name. Unknown subjects are activities.
func CategoryOf(subjectName string) Category {
	name := strings.ToLower(strings.TrimSpace(subjectName))
	if name == "" {
		return CategoryActivity
	}
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return CategoryActivity
}
