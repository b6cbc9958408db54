package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/google/uuid"
)

// ConvertedSubject is a subject declaration ready to be created or updated.
type ConvertedSubject struct {
	Name      string
	TheoryMin int
	Active    bool
}

// ConvertedProfile is the result of Convert.
type ConvertedProfile struct {
	Profile  *domain.StudyProfile
	Subjects []ConvertedSubject
}

// Convert transforms a validated ProfileSchema into domain objects ready for persistence.
// Call ValidateProfileSchema first; Convert assumes the schema is valid, but
// the resulting profile is still checked by its own Validate.
func Convert(schema *ProfileSchema, userID string) (*ConvertedProfile, error) {
	now := time.Now().UTC()

	perDay := schema.SubjectsPerDay
	if perDay == 0 {
		perDay = 1
	}

	profile := &domain.StudyProfile{
		UserID:         userID,
		SubjectsPerDay: perDay,
		WeekdayRules:   make(map[int]domain.WeekdayRule, len(schema.Weekdays)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	for _, w := range schema.Weekdays {
		n, ok := WeekdayNumber(w.Weekday)
		if !ok {
			return nil, fmt.Errorf("weekday %q: unknown day", w.Weekday)
		}
		profile.WeekdayRules[n] = domain.WeekdayRule{
			Weekday:             n,
			DailyMin:            w.DailyMin,
			TheoryEnabled:       w.Theory,
			QuestionsEnabled:    w.Questions,
			InformativesEnabled: w.Informatives,
			LeiSecaEnabled:      w.LeiSeca,
		}
	}

	if schema.Extras != nil {
		profile.Extras = domain.ExtrasDurations{
			QuestionsMin:    schema.Extras.QuestionsMin,
			InformativesMin: schema.Extras.InformativesMin,
			LeiSecaMin:      schema.Extras.LeiSecaMin,
		}
	}

	if a := schema.AutoReview; a != nil {
		profile.AutoReview = domain.AutoReviewPolicy{
			Enabled:          a.Enabled,
			FrequencyDays:    a.FrequencyDays,
			DurationMin:      a.DurationMin,
			ReserveTimeBlock: a.ReserveTimeBlock,
			ReservedMin:      a.ReservedMin,
		}
	}

	for _, rp := range schema.RestPeriods {
		rng, err := domain.ParseDateRange(rp.From, rp.To)
		if err != nil {
			return nil, fmt.Errorf("rest period %q: %w", rp.Label, err)
		}
		profile.RestPeriods = append(profile.RestPeriods, domain.RestPeriod{
			ID:    uuid.New().String(),
			Range: rng,
			Label: rp.Label,
		})
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	subjects := make([]ConvertedSubject, 0, len(schema.Subjects))
	for _, s := range schema.Subjects {
		subjects = append(subjects, ConvertedSubject{
			Name:      strings.TrimSpace(s.Name),
			TheoryMin: s.TheoryMin,
			Active:    !s.Inactive,
		})
	}

	return &ConvertedProfile{Profile: profile, Subjects: subjects}, nil
}
