package scheduler

import (
	"testing"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/stretchr/testify/require"
)

// monday is 2026-10-19, an ISO weekday 1.
var monday = domain.MustParseDate("2026-10-19")

func reviewTask(t *testing.T, id string, minutes int, origin string) domain.PlannedTask {
	t.Helper()
	o := domain.MustParseDate(origin)
	due, err := o.AddDays(7)
	require.NoError(t, err)
	task, err := domain.NewPlannedTask(id, domain.TaskReview, domain.Minutes(minutes), "Review", &domain.ReviewLink{
		ReviewID:   id,
		SubjectID:  "s1",
		OriginDate: o,
		DueDate:    due,
	})
	require.NoError(t, err)
	return task
}

type contextOption func(*domain.PlanningContext)

func withRule(rule domain.WeekdayRule) contextOption {
	return func(pc *domain.PlanningContext) { pc.Profile.WeekdayRules[rule.Weekday] = rule }
}

func withSubjects(subjects ...domain.Subject) contextOption {
	return func(pc *domain.PlanningContext) { pc.Subjects = subjects }
}

func withReviews(tasks ...domain.PlannedTask) contextOption {
	return func(pc *domain.PlanningContext) { pc.DueReviewTasks = tasks }
}

func withExtras(e domain.ExtrasDurations) contextOption {
	return func(pc *domain.PlanningContext) { pc.Profile.Extras = e }
}

func withAutoReview(p domain.AutoReviewPolicy) contextOption {
	return func(pc *domain.PlanningContext) { pc.Profile.AutoReview = p }
}

func withRestPeriod(from, to string) contextOption {
	return func(pc *domain.PlanningContext) {
		pc.Profile.RestPeriods = append(pc.Profile.RestPeriods, domain.RestPeriod{
			ID:    "rp-" + from,
			Range: domain.DateRange{From: domain.MustParseDate(from), To: domain.MustParseDate(to)},
		})
	}
}

func newContext(date domain.CalendarDate, opts ...contextOption) *domain.PlanningContext {
	pc := &domain.PlanningContext{
		UserID: "u1",
		Date:   date,
		Today:  date,
		Profile: domain.StudyProfile{
			UserID:         "u1",
			SubjectsPerDay: 1,
			WeekdayRules:   map[int]domain.WeekdayRule{},
			Revision:       1,
		},
	}
	for _, opt := range opts {
		opt(pc)
	}
	return pc
}

func subject(id string, position, remaining int) domain.Subject {
	return domain.Subject{ID: id, Name: "Subject " + id, Position: position, RemainingTheoryMin: remaining, Active: true}
}

func itemSummary(plan *domain.DailyPlan) []string {
	var out []string
	for _, it := range plan.Items() {
		out = append(out, string(it.Task.Type)+"("+it.Task.Duration.String()+")")
	}
	return out
}
