package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/go-playground/validator/v10"
)

var weekdayNumbers = map[string]int{
	"monday": 1, "tuesday": 2, "wednesday": 3, "thursday": 4,
	"friday": 5, "saturday": 6, "sunday": 7,
	"mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6, "sun": 7,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// WeekdayNumber returns the ISO weekday of an English day name.
func WeekdayNumber(name string) (int, bool) {
	n, ok := weekdayNumbers[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}

// ValidateProfileSchema checks the schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateProfileSchema(schema *ProfileSchema) []error {
	var errs []error

	errs = append(errs, validateTags(schema)...)
	errs = append(errs, validateWeekdays(schema.Weekdays)...)
	errs = append(errs, validateAutoReview(schema.AutoReview)...)
	errs = append(errs, validateRestPeriods(schema.RestPeriods)...)
	errs = append(errs, validateSubjects(schema.Subjects)...)

	return errs
}

func validateTags(schema *ProfileSchema) []error {
	err := validate.Struct(schema)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "ProfileSchema.")
		if fe.Param() != "" {
			errs = append(errs, fmt.Errorf("%s: failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			errs = append(errs, fmt.Errorf("%s: failed %s", field, fe.Tag()))
		}
	}
	return errs
}

func validateWeekdays(weekdays []WeekdayImport) []error {
	var errs []error
	seen := make(map[int]string)
	for i, w := range weekdays {
		if w.Weekday == "" {
			continue
		}
		n, ok := WeekdayNumber(w.Weekday)
		if !ok {
			errs = append(errs, fmt.Errorf("weekdays[%d].weekday: unknown day %q", i, w.Weekday))
			continue
		}
		if prev, dup := seen[n]; dup {
			errs = append(errs, fmt.Errorf("weekdays[%d].weekday: %q repeats %q", i, w.Weekday, prev))
			continue
		}
		seen[n] = w.Weekday
	}
	return errs
}

func validateAutoReview(a *AutoReviewImport) []error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.Enabled {
		if a.FrequencyDays < 1 {
			errs = append(errs, fmt.Errorf("auto_review.frequency_days must be >= 1 when enabled"))
		}
		if a.DurationMin < 1 {
			errs = append(errs, fmt.Errorf("auto_review.duration_min must be >= 1 when enabled"))
		}
	}
	if a.ReserveTimeBlock && a.ReservedMin < 1 {
		errs = append(errs, fmt.Errorf("auto_review.reserved_min must be >= 1 when reserve_time_block is set"))
	}
	return errs
}

func validateRestPeriods(periods []RestPeriodImport) []error {
	var errs []error
	for i, rp := range periods {
		from, fromErr := domain.ParseDate(rp.From)
		to, toErr := domain.ParseDate(rp.To)
		if rp.From != "" && fromErr != nil {
			errs = append(errs, fmt.Errorf("rest_periods[%d].from: %v", i, fromErr))
		}
		if rp.To != "" && toErr != nil {
			errs = append(errs, fmt.Errorf("rest_periods[%d].to: %v", i, toErr))
		}
		if fromErr == nil && toErr == nil && from.After(to) {
			errs = append(errs, fmt.Errorf("rest_periods[%d]: from %s is after to %s", i, rp.From, rp.To))
		}
	}
	return errs
}

func validateSubjects(subjects []SubjectImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, s := range subjects {
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if key == "" {
			continue
		}
		if seen[key] {
			errs = append(errs, fmt.Errorf("subjects[%d].name: duplicate subject %q", i, s.Name))
		}
		seen[key] = true
	}
	return errs
}
