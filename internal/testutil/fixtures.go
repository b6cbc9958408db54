package testutil

import (
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/google/uuid"
)

// Profile options
type ProfileOption func(*domain.StudyProfile)

func WithWeekdayRule(rule domain.WeekdayRule) ProfileOption {
	return func(p *domain.StudyProfile) {
		p.WeekdayRules[rule.Weekday] = rule
	}
}

// WithDailyMinutes sets a theory-only rule of minutes for each weekday.
func WithDailyMinutes(minutes int, weekdays ...int) ProfileOption {
	return func(p *domain.StudyProfile) {
		for _, wd := range weekdays {
			p.WeekdayRules[wd] = domain.WeekdayRule{Weekday: wd, DailyMin: minutes, TheoryEnabled: true}
		}
	}
}

func WithAutoReview(frequencyDays, durationMin int) ProfileOption {
	return func(p *domain.StudyProfile) {
		p.AutoReview.Enabled = true
		p.AutoReview.FrequencyDays = frequencyDays
		p.AutoReview.DurationMin = durationMin
	}
}

func WithReserveBlock(minutes int) ProfileOption {
	return func(p *domain.StudyProfile) {
		p.AutoReview.ReserveTimeBlock = true
		p.AutoReview.ReservedMin = minutes
	}
}

func WithExtrasDurations(questions, informatives, leiSeca int) ProfileOption {
	return func(p *domain.StudyProfile) {
		p.Extras = domain.ExtrasDurations{QuestionsMin: questions, InformativesMin: informatives, LeiSecaMin: leiSeca}
	}
}

func WithRestPeriod(from, to, label string) ProfileOption {
	return func(p *domain.StudyProfile) {
		p.RestPeriods = append(p.RestPeriods, domain.RestPeriod{
			Range: domain.DateRange{From: domain.MustParseDate(from), To: domain.MustParseDate(to)},
			Label: label,
		})
	}
}

func WithSubjectsPerDay(n int) ProfileOption {
	return func(p *domain.StudyProfile) {
		p.SubjectsPerDay = n
	}
}

// NewTestProfile returns a profile with no weekday rules, one subject per
// day and auto review disabled. Options fill in the rest.
func NewTestProfile(userID string, opts ...ProfileOption) *domain.StudyProfile {
	p := &domain.StudyProfile{
		UserID:         userID,
		SubjectsPerDay: 1,
		WeekdayRules:   map[int]domain.WeekdayRule{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subject options
type SubjectOption func(*domain.Subject)

func WithRemainingTheory(minutes int) SubjectOption {
	return func(s *domain.Subject) {
		s.RemainingTheoryMin = minutes
	}
}

func WithPosition(pos int) SubjectOption {
	return func(s *domain.Subject) {
		s.Position = pos
	}
}

func WithInactive() SubjectOption {
	return func(s *domain.Subject) {
		s.Active = false
	}
}

func NewTestSubject(name string, opts ...SubjectOption) *domain.Subject {
	now := time.Now().UTC()
	s := &domain.Subject{
		ID:                 uuid.New().String(),
		Name:               name,
		RemainingTheoryMin: 600,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTestReview returns a SCHEDULED entry for subject due on scheduled,
// with its origin a week earlier.
func NewTestReview(subject *domain.Subject, scheduled string, minutes int) *domain.ReviewEntry {
	due := domain.MustParseDate(scheduled)
	origin, err := due.AddDays(-7)
	if err != nil {
		panic(err)
	}
	now := time.Now().UTC()
	return &domain.ReviewEntry{
		ID:            uuid.New().String(),
		SubjectID:     subject.ID,
		SubjectName:   subject.Name,
		OriginDate:    origin,
		ScheduledDate: due,
		Duration:      domain.Minutes(minutes),
		Status:        domain.ReviewScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
