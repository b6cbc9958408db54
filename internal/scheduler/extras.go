package scheduler

import (
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
)

var extrasLabels = map[domain.TaskType]string{
	domain.TaskQuestions:    "Questions",
	domain.TaskInformatives: "Informatives",
	domain.TaskLeiSeca:      "Lei seca",
}

// ExtrasTaskID is the stable id of an extras activity on date.
func ExtrasTaskID(t domain.TaskType, date domain.CalendarDate) string {
	return strings.ReplaceAll(strings.ToLower(string(t)), "_", "-") + "-" + date.String()
}

// AllocateExtras places one fixed-duration item per enabled extras type in
// placement order. A type that does not fit is omitted; extras never fail
// the plan.
func AllocateExtras(date domain.CalendarDate, rule domain.WeekdayRule, durations domain.ExtrasDurations, remaining domain.PlannedDuration) ([]domain.DailyPlanItem, domain.PlannedDuration, error) {
	var items []domain.DailyPlanItem
	for i, t := range domain.ExtrasTypes {
		if !rule.ExtrasEnabled(t) {
			continue
		}
		minutes := durations.For(t)
		if minutes <= 0 || minutes > remaining.Minutes() {
			continue
		}
		d, err := domain.NewPlannedDuration(minutes)
		if err != nil {
			return nil, remaining, err
		}
		task, err := domain.NewPlannedTask(ExtrasTaskID(t, date), t, d, extrasLabels[t], nil)
		if err != nil {
			return nil, remaining, err
		}
		item, err := domain.NewDailyPlanItem(task, i)
		if err != nil {
			return nil, remaining, err
		}
		remaining, err = remaining.Sub(d)
		if err != nil {
			return nil, remaining, err
		}
		items = append(items, item)
	}
	return items, remaining, nil
}
