package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/contract"
	"github.com/alexanderramin/pauta/internal/domain"
)

const calendarBarWidth = 8

// LayerMinutes splits a plan's required minutes by layer.
func LayerMinutes(plan *domain.DailyPlan) (review, extras, theory int) {
	for _, item := range plan.Items() {
		m := item.Task.Duration.Minutes()
		switch item.Layer {
		case domain.LayerReview:
			review += m
		case domain.LayerExtras:
			extras += m
		case domain.LayerTheory:
			theory += m
		}
	}
	return review, extras, theory
}

func minutesCell(m int) string {
	if m == 0 {
		return Dim("-")
	}
	return FormatMinutes(m)
}

// FormatProjection renders one row per projected date with per-layer
// minutes, then the range totals.
func FormatProjection(resp *contract.CalendarProjectionResponse, today domain.CalendarDate) string {
	proj := resp.Projection
	persisted := dateSet(resp.PersistedDates)
	executed := dateSet(resp.ExecutedDates)

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Calendar %s → %s", proj.From(), proj.To())))
	b.WriteString("\n")

	rows := make([][]string, 0, len(proj.Plans()))
	var sumReview, sumExtras, sumTheory int
	for _, plan := range proj.Plans() {
		d := plan.Date()
		day := ShortWeekday(d) + " " + d.String()
		if d.Equal(today) {
			day = StyleHeader.Render(day)
		}
		marks := ""
		if persisted[d] {
			marks += StyleBlue.Render("S")
		}
		if executed[d] {
			marks += StyleGreen.Render("✔")
		}

		if plan.IsRestDay() {
			rows = append(rows, []string{day, marks, Dim("rest"), "", "", "", ""})
			continue
		}
		review, extras, theory := LayerMinutes(plan)
		sumReview += review
		sumExtras += extras
		sumTheory += theory
		rows = append(rows, []string{
			day,
			marks,
			minutesCell(review),
			minutesCell(extras),
			minutesCell(theory),
			FormatMinutes(plan.Required().Minutes()),
			RenderBudget(plan.Required().Minutes(), plan.Available().Minutes(), calendarBarWidth),
		})
	}
	b.WriteString(Table{
		Headers: []string{"DATE", "", "REVIEW", "EXTRAS", "THEORY", "TOTAL", "BUDGET"},
		Rows:    rows,
		Right:   []int{2, 3, 4, 5},
	}.Render())

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s planned over %d days, %d rest\n",
		Bold(FormatMinutes(proj.TotalRequired())), len(proj.Plans()), proj.RestDays()))
	b.WriteString(Dim(fmt.Sprintf("review %s · extras %s · theory %s · snapshot %s",
		FormatMinutes(sumReview), FormatMinutes(sumExtras), FormatMinutes(sumTheory), proj.SnapshotID())))
	b.WriteString("\n")
	return b.String()
}

func dateSet(dates []domain.CalendarDate) map[domain.CalendarDate]bool {
	set := make(map[domain.CalendarDate]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}
