package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pauta/internal/contract"
	"github.com/alexanderramin/pauta/internal/domain"
)

const planBudgetBarWidth = 16

// FormatDailyPlan renders one day's plan: a header, the ordered items and
// the budget line. Item numbers are the ones `execute --done` accepts.
func FormatDailyPlan(resp *contract.DailyPlanResponse, today domain.CalendarDate) string {
	plan := resp.Plan
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Plan for %s %s", ShortWeekday(plan.Date()), plan.Date())))
	b.WriteString("\n")
	b.WriteString(PlanStatusPill(plan.Status()) + "  " + Dim(RelativeDays(plan.Date(), today)))
	switch {
	case resp.Replaced:
		b.WriteString("  " + Dim("replaced stored plan"))
	case resp.Reused:
		b.WriteString("  " + Dim("stored"))
	}
	b.WriteString("\n\n")

	if plan.IsRestDay() {
		b.WriteString(Dim("Nothing to study. Enjoy the day off."))
		b.WriteString("\n")
		return b.String()
	}
	if len(plan.Items()) == 0 {
		b.WriteString(Dim("No tasks fit this day."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(planItemsTable(plan.Items()))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%s  %s free",
		RenderBudget(plan.Required().Minutes(), plan.Available().Minutes(), planBudgetBarWidth),
		FormatMinutes(plan.Remaining().Minutes())))
	if !plan.Reserved().IsZero() {
		b.WriteString(Dim(fmt.Sprintf(", %s held for reviews", FormatMinutes(plan.Reserved().Minutes()))))
	}
	b.WriteString("\n")
	if resp.SnapshotID != "" {
		b.WriteString(Dim("snapshot " + resp.SnapshotID))
		b.WriteString("\n")
	}
	return b.String()
}

func planItemsTable(items []domain.DailyPlanItem) string {
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			TaskBadge(item.Task.Type),
			taskLabel(item.Task),
			FormatMinutes(item.Task.Duration.Minutes()),
		})
	}
	return Table{
		Headers: []string{"#", "TYPE", "TASK", "TIME"},
		Rows:    rows,
		Right:   []int{0, 3},
	}.Render()
}

func taskLabel(task domain.PlannedTask) string {
	label := task.Label
	if label == "" {
		label = strings.ToLower(string(task.Type))
	}
	if task.ReviewLink != nil {
		label += " " + Dim("from "+task.ReviewLink.OriginDate.String())
	}
	return StyleFg.Render(label)
}
