package domain

import "time"

// WeekdayRule is the study budget for one ISO weekday (Monday=1..Sunday=7).
type WeekdayRule struct {
	Weekday             int
	DailyMin            int
	QuestionsEnabled    bool
	InformativesEnabled bool
	LeiSecaEnabled      bool
	TheoryEnabled       bool
}

// ExtrasEnabled reports whether extras type t is switched on for the day.
func (w WeekdayRule) ExtrasEnabled(t TaskType) bool {
	switch t {
	case TaskQuestions:
		return w.QuestionsEnabled
	case TaskInformatives:
		return w.InformativesEnabled
	case TaskLeiSeca:
		return w.LeiSecaEnabled
	}
	return false
}

// ExtrasDurations holds the fixed duration of each extras activity.
type ExtrasDurations struct {
	QuestionsMin    int
	InformativesMin int
	LeiSecaMin      int
}

// For returns the configured minutes for extras type t.
func (e ExtrasDurations) For(t TaskType) int {
	switch t {
	case TaskQuestions:
		return e.QuestionsMin
	case TaskInformatives:
		return e.InformativesMin
	case TaskLeiSeca:
		return e.LeiSecaMin
	}
	return 0
}

// AutoReviewPolicy governs how theory completions spawn reviews.
type AutoReviewPolicy struct {
	Enabled       bool
	FrequencyDays int
	DurationMin   int
	// ReserveTimeBlock holds ReservedMin for the review layer on days that
	// also have theory enabled.
	ReserveTimeBlock bool
	ReservedMin      int
}

// RestPeriod is an inclusive span of dates with no study.
type RestPeriod struct {
	ID    string
	Range DateRange
	Label string
}

// StudyProfile is a user's standing study configuration.
type StudyProfile struct {
	UserID         string
	SubjectsPerDay int
	WeekdayRules   map[int]WeekdayRule
	Extras         ExtrasDurations
	AutoReview     AutoReviewPolicy
	RestPeriods    []RestPeriod
	Revision       int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RuleFor returns the weekday rule for d. A weekday without a rule is a
// zero-minute day.
func (p *StudyProfile) RuleFor(d CalendarDate) WeekdayRule {
	wd := d.Weekday()
	if rule, ok := p.WeekdayRules[wd]; ok {
		return rule
	}
	return WeekdayRule{Weekday: wd}
}

// WeeklyBudgetMin sums the daily budgets of all weekdays.
func (p *StudyProfile) WeeklyBudgetMin() int {
	total := 0
	for _, rule := range p.WeekdayRules {
		total += rule.DailyMin
	}
	return total
}

// Validate checks the profile's ranges and references.
func (p *StudyProfile) Validate() error {
	if p.UserID == "" {
		return Errorf(CodeDomainViolation, "profile user id is required")
	}
	if p.SubjectsPerDay < 1 {
		return Errorf(CodeDomainViolation, "subjects per day must be >= 1, got %d", p.SubjectsPerDay)
	}
	for wd, rule := range p.WeekdayRules {
		if wd < 1 || wd > 7 || rule.Weekday != wd {
			return Errorf(CodeDomainViolation, "weekday rule keyed %d has weekday %d", wd, rule.Weekday)
		}
		if rule.DailyMin < 0 || rule.DailyMin > MaxDayMinutes {
			return Errorf(CodeDomainViolation, "weekday %d: daily minutes %d out of range 0..%d", wd, rule.DailyMin, MaxDayMinutes)
		}
	}
	for _, t := range ExtrasTypes {
		if m := p.Extras.For(t); m < 0 || m > MaxDayMinutes {
			return Errorf(CodeDomainViolation, "%s duration %d out of range 0..%d", t, m, MaxDayMinutes)
		}
	}
	if p.AutoReview.Enabled {
		if p.AutoReview.FrequencyDays < 1 {
			return Errorf(CodeDomainViolation, "review frequency must be >= 1 day, got %d", p.AutoReview.FrequencyDays)
		}
		if p.AutoReview.DurationMin < 1 || p.AutoReview.DurationMin > MaxDayMinutes {
			return Errorf(CodeDomainViolation, "review duration %d out of range 1..%d", p.AutoReview.DurationMin, MaxDayMinutes)
		}
	}
	if p.AutoReview.ReservedMin < 0 || p.AutoReview.ReservedMin > MaxDayMinutes {
		return Errorf(CodeDomainViolation, "reserved review minutes %d out of range 0..%d", p.AutoReview.ReservedMin, MaxDayMinutes)
	}
	for _, rp := range p.RestPeriods {
		if rp.Range.From.IsZero() || rp.Range.To.IsZero() || rp.Range.From.After(rp.Range.To) {
			return Errorf(CodeDomainViolation, "rest period %q has an invalid range", rp.Label)
		}
	}
	return nil
}
