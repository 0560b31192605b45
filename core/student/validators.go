package student

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/bantalo/reportcard/core"
)

var (
	gradeLevelTag  = "gradelevel"
	gradeLevelText = "unknown grade level, expected one of " + strings.Join(DefaultCatalogue.GradeLevels(), ", ")

	teachersTag  = "teachers"
	teachersText = "a class has 1 or 2 homeroom teachers"
)

// InitValidators registers the student validators. core.InitValidators must run first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gradeLevelTag, gradeLevelValidation)
	core.RegisterCustomTranslation(validate, translator, gradeLevelTag, gradeLevelText)

	validate.RegisterStructValidation(newStudentStructValidation, NewStudent{})
	core.RegisterCustomTranslation(validate, translator, teachersTag, teachersText)
}

// gradeLevelValidation checks that the class is a grade level of the DefaultCatalogue.
func gradeLevelValidation(fl validator.FieldLevel) bool {
	return DefaultCatalogue.HasGradeLevel(fl.Field().String())
}

// newStudentStructValidation rejects blank homeroom teacher names.
func newStudentStructValidation(sl validator.StructLevel) {
	ns, ok := sl.Current().Interface().(NewStudent)
	if !ok {
		return
	}
	for _, teacher := range ns.Teachers {
		if strings.TrimSpace(teacher) == "" {
			sl.ReportError(ns.Teachers, "teachers", "Teachers", teachersTag, "")
			return
		}
	}
}
