package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pauta/internal/contract"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

var today = domain.MustParseDate("2026-10-14")

func mustItem(t *testing.T, id string, typ domain.TaskType, minutes, order int, link *domain.ReviewLink) domain.DailyPlanItem {
	t.Helper()
	task, err := domain.NewPlannedTask(id, typ, domain.Minutes(minutes), "", link)
	require.NoError(t, err)
	switch typ {
	case domain.TaskReview:
		task.Label = "Review: Civil Law"
	case domain.TaskTheory:
		task.Label = "Penal Law"
	}
	item, err := domain.NewDailyPlanItem(task, order)
	require.NoError(t, err)
	return item
}

func mondayPlan(t *testing.T) *domain.DailyPlan {
	t.Helper()
	link := &domain.ReviewLink{
		ReviewID:   "r1",
		OriginDate: domain.MustParseDate("2026-10-12"),
		DueDate:    domain.MustParseDate("2026-10-19"),
	}
	plan, err := domain.NewDailyPlan(domain.MustParseDate("2026-10-19"), domain.PlanPlanned, domain.Minutes(120), []domain.DailyPlanItem{
		mustItem(t, "r1", domain.TaskReview, 30, 0, link),
		mustItem(t, "q", domain.TaskQuestions, 30, 0, nil),
		mustItem(t, "th", domain.TaskTheory, 45, 0, nil),
	})
	require.NoError(t, err)
	return plan
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"}, {-5, "0m"}, {45, "45m"}, {60, "1h"}, {90, "1h 30m"}, {1440, "24h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in))
	}
}

func TestRelativeDays(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-10-14", "today"},
		{"2026-10-17", "in 3d"},
		{"2026-11-11", "in 4w"},
		{"2026-10-12", "2d ago"},
		{"2026-09-16", "4w ago"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDays(domain.MustParseDate(tt.date), today))
		})
	}
}

func TestHumanDate(t *testing.T) {
	assert.Equal(t, "Today", HumanDate(today, today))
	assert.Equal(t, "Tomorrow", HumanDate(domain.MustParseDate("2026-10-15"), today))
	assert.Equal(t, "Yesterday", HumanDate(domain.MustParseDate("2026-10-13"), today))
	assert.Equal(t, "Mon 2026-10-19", HumanDate(domain.MustParseDate("2026-10-19"), today))
}

func TestTable_AlignsVisibleWidth(t *testing.T) {
	out := stripANSI(Table{
		Headers: []string{"NAME", "MIN"},
		Rows:    [][]string{{StyleGreen.Render("a"), "5"}, {"longer", "120"}},
		Right:   []int{1},
	}.Render())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME    MIN", lines[0])
	assert.Equal(t, "a         5", lines[2])
	assert.Equal(t, "longer  120", lines[3])
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderBudget(t *testing.T) {
	assert.Equal(t, "[████░░░░] 60m/120m", stripANSI(RenderBudget(60, 120, 8)))
	assert.Equal(t, "[████████] 120m/120m", stripANSI(RenderBudget(150, 120, 8)))
	assert.Equal(t, "[░░░░] rest", stripANSI(RenderBudget(0, 0, 4)))
}

func TestFormatDailyPlan(t *testing.T) {
	out := stripANSI(FormatDailyPlan(&contract.DailyPlanResponse{
		Plan:       mondayPlan(t),
		SnapshotID: "profile:ana:r3",
		Reused:     true,
	}, today))

	assert.Contains(t, out, "PLAN FOR MON 2026-10-19")
	assert.Contains(t, out, "Planned  in 5d  stored")
	assert.Regexp(t, `1\s+REVIEW\s+Review: Civil Law from 2026-10-12\s+30m`, out)
	assert.Regexp(t, `2\s+QUESTIONS\s+questions\s+30m`, out)
	assert.Regexp(t, `3\s+THEORY\s+Penal Law\s+45m`, out)
	assert.Contains(t, out, "105m/120m")
	assert.Contains(t, out, "15m free")
	assert.NotContains(t, out, "held for reviews")
	assert.Contains(t, out, "snapshot profile:ana:r3")

	held, err := mondayPlan(t).WithReserve(domain.Minutes(10))
	require.NoError(t, err)
	out = stripANSI(FormatDailyPlan(&contract.DailyPlanResponse{Plan: held}, today))
	assert.Contains(t, out, "5m free, 10m held for reviews")
}

func TestFormatDailyPlan_RestDay(t *testing.T) {
	rest, err := domain.NewRestDayPlan(domain.MustParseDate("2026-10-18"))
	require.NoError(t, err)
	out := stripANSI(FormatDailyPlan(&contract.DailyPlanResponse{Plan: rest}, today))
	assert.Contains(t, out, "Rest day")
	assert.Contains(t, out, "Enjoy the day off")
	assert.NotContains(t, out, "snapshot")
}

func TestFormatProjection(t *testing.T) {
	rest, err := domain.NewRestDayPlan(domain.MustParseDate("2026-10-20"))
	require.NoError(t, err)
	rng, err := domain.ParseDateRange("2026-10-19", "2026-10-20")
	require.NoError(t, err)
	proj, err := domain.NewCalendarProjection(rng, []*domain.DailyPlan{rest, mondayPlan(t)}, "profile:ana:r3")
	require.NoError(t, err)

	out := stripANSI(FormatProjection(&contract.CalendarProjectionResponse{
		Projection:     proj,
		PersistedDates: []domain.CalendarDate{domain.MustParseDate("2026-10-19")},
	}, today))

	assert.Contains(t, out, "CALENDAR 2026-10-19 → 2026-10-20")
	assert.Regexp(t, `Mon 2026-10-19\s+S\s+30m\s+30m\s+45m\s+1h 45m`, out)
	assert.Regexp(t, `Tue 2026-10-20\s+rest`, out)
	assert.Contains(t, out, "1h 45m planned over 2 days, 1 rest")
	assert.Contains(t, out, "snapshot profile:ana:r3")
}

func TestFormatReviewTasks(t *testing.T) {
	entry := &domain.ReviewEntry{
		ID:            "r1",
		SubjectName:   "Civil Law",
		OriginDate:    domain.MustParseDate("2026-10-09"),
		ScheduledDate: domain.MustParseDate("2026-10-16"),
		Duration:      domain.Minutes(30),
		Status:        domain.ReviewScheduled,
	}
	missed := &domain.ReviewEntry{ID: "r0", Status: domain.ReviewMissed}
	task, err := entry.Task()
	require.NoError(t, err)
	rng, err := domain.ParseDateRange("2026-10-14", "2026-10-20")
	require.NoError(t, err)

	out := stripANSI(FormatReviewTasks(&contract.ComputeReviewTasksResponse{
		Range:        rng,
		Tasks:        []domain.PlannedTask{task},
		Entries:      []*domain.ReviewEntry{entry, missed},
		MarkedMissed: 1,
	}, today))
	assert.Regexp(t, `Fri 2026-10-16\s+in 2d\s+Review: Civil Law\s+30m`, out)
	assert.Contains(t, out, "1 pending  0 executed  1 missed")
	assert.Contains(t, out, "1 lapsed review(s) closed as missed just now")
}

func TestFormatProfile(t *testing.T) {
	p := &domain.StudyProfile{
		UserID:         "ana",
		SubjectsPerDay: 2,
		WeekdayRules: map[int]domain.WeekdayRule{
			1: {Weekday: 1, DailyMin: 120, TheoryEnabled: true, QuestionsEnabled: true},
		},
		Extras:     domain.ExtrasDurations{QuestionsMin: 30},
		AutoReview: domain.AutoReviewPolicy{Enabled: true, FrequencyDays: 7, DurationMin: 30},
		Revision:   4,
	}
	out := stripANSI(FormatProfile(p))
	assert.Regexp(t, `Monday\s+2h\s+QUESTIONS THEORY`, out)
	assert.Regexp(t, `Sunday\s+rest`, out)
	assert.Contains(t, out, "Weekly budget 2h, 2 subject(s) per day")
	assert.Contains(t, out, "Auto review: 30m, 7 day(s) after theory")
	assert.Contains(t, out, "revision 4")
}

func TestFormatSubjectList(t *testing.T) {
	out := stripANSI(FormatSubjectList([]domain.Subject{
		{Name: "Civil Law", Position: 0, RemainingTheoryMin: 90, Active: true},
		{Name: "Penal Law", Position: 1, RemainingTheoryMin: 0, Active: true},
		{Name: "Tax Law", Position: 2, RemainingTheoryMin: 30, Active: false},
	}))
	assert.Regexp(t, `1\s+Civil Law\s+1h 30m\s+● Active`, out)
	assert.Regexp(t, `2\s+Penal Law\s+0m\s+✔ Theory done`, out)
	assert.Regexp(t, `3\s+Tax Law\s+30m\s+✖ Inactive`, out)
}

func TestFormatExecution(t *testing.T) {
	exec, err := domain.NewExecutedDay("e1", today, []domain.ExecutedItem{
		{TaskID: "th", Type: domain.TaskTheory, Label: "Civil Law", Actual: domain.Minutes(50), Completed: true},
		{TaskID: "q", Type: domain.TaskQuestions, Label: "Questions", Actual: domain.Minutes(10)},
	}, time.Date(2026, 10, 14, 21, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	out := stripANSI(FormatExecution(&contract.RecordExecutionResponse{
		Execution: exec,
		ScheduledReviews: []*domain.ReviewEntry{
			{SubjectName: "Civil Law", ScheduledDate: domain.MustParseDate("2026-10-21")},
		},
		LapsedReviews: []string{"r0"},
	}))
	assert.Contains(t, out, "RECORDED 2026-10-14")
	assert.Regexp(t, `✔\s+THEORY\s+Civil Law\s+50m`, out)
	assert.Regexp(t, `·\s+QUESTIONS\s+Questions\s+10m`, out)
	assert.Contains(t, out, "Studied 1h")
	assert.Contains(t, out, "Review of Civil Law scheduled for 2026-10-21")
	assert.Contains(t, out, "1 review(s) had already lapsed")
	assert.NotContains(t, out, "review(s) done")
}
