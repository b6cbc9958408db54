package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validMinimalSchema() *ProfileSchema {
	return &ProfileSchema{
		SubjectsPerDay: 1,
		Weekdays: []WeekdayImport{
			{Weekday: "monday", DailyMin: 120, Theory: true},
		},
		Subjects: []SubjectImport{
			{Name: "Constitutional Law", TheoryMin: 600},
		},
	}
}

func errorsContain(errs []error, substr string) bool {
	for _, err := range errs {
		if strings.Contains(err.Error(), substr) {
			return true
		}
	}
	return false
}

func TestValidateProfileSchema_ValidMinimal(t *testing.T) {
	errs := ValidateProfileSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidateProfileSchema_Empty(t *testing.T) {
	errs := ValidateProfileSchema(&ProfileSchema{})
	assert.Empty(t, errs)
}

func TestValidateProfileSchema_Weekdays(t *testing.T) {
	schema := validMinimalSchema()
	schema.Weekdays = append(schema.Weekdays,
		WeekdayImport{Weekday: "Mon", DailyMin: 30},
		WeekdayImport{Weekday: "funday", DailyMin: 30},
		WeekdayImport{Weekday: "friday", DailyMin: 1441},
		WeekdayImport{DailyMin: 10},
	)

	errs := ValidateProfileSchema(schema)
	assert.True(t, errorsContain(errs, `weekdays[1].weekday: "Mon" repeats "monday"`))
	assert.True(t, errorsContain(errs, `weekdays[2].weekday: unknown day "funday"`))
	assert.True(t, errorsContain(errs, "weekdays[3].daily_min: failed max=1440"))
	assert.True(t, errorsContain(errs, "weekdays[4].weekday: failed required"))
}

func TestValidateProfileSchema_AutoReview(t *testing.T) {
	schema := validMinimalSchema()
	schema.AutoReview = &AutoReviewImport{Enabled: true, ReserveTimeBlock: true}

	errs := ValidateProfileSchema(schema)
	assert.Len(t, errs, 3)
	assert.True(t, errorsContain(errs, "auto_review.frequency_days must be >= 1"))
	assert.True(t, errorsContain(errs, "auto_review.duration_min must be >= 1"))
	assert.True(t, errorsContain(errs, "auto_review.reserved_min must be >= 1"))
}

func TestValidateProfileSchema_DisabledAutoReviewNeedsNothing(t *testing.T) {
	schema := validMinimalSchema()
	schema.AutoReview = &AutoReviewImport{}
	assert.Empty(t, ValidateProfileSchema(schema))
}

func TestValidateProfileSchema_RestPeriods(t *testing.T) {
	schema := validMinimalSchema()
	schema.RestPeriods = []RestPeriodImport{
		{From: "2026-12-26", To: "2026-12-24", Label: "backwards"},
		{From: "2026-02-30", To: "2026-03-01"},
		{From: "", To: "2026-03-01"},
	}

	errs := ValidateProfileSchema(schema)
	assert.True(t, errorsContain(errs, "rest_periods[0]: from 2026-12-26 is after to 2026-12-24"))
	assert.True(t, errorsContain(errs, "rest_periods[1].from"))
	assert.True(t, errorsContain(errs, "rest_periods[2].from: failed required"))
}

func TestValidateProfileSchema_DuplicateSubjects(t *testing.T) {
	schema := validMinimalSchema()
	schema.Subjects = append(schema.Subjects,
		SubjectImport{Name: "  constitutional law ", TheoryMin: 10},
		SubjectImport{Name: "Tax Law", TheoryMin: -5},
	)

	errs := ValidateProfileSchema(schema)
	assert.True(t, errorsContain(errs, `subjects[1].name: duplicate subject`))
	assert.True(t, errorsContain(errs, "subjects[2].theory_min: failed min=0"))
}

func TestValidateProfileSchema_SubjectsPerDayBounds(t *testing.T) {
	schema := validMinimalSchema()
	schema.SubjectsPerDay = 21
	errs := ValidateProfileSchema(schema)
	assert.True(t, errorsContain(errs, "subjects_per_day: failed max=20"))
}
