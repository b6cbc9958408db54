package scheduler

import (
	"github.com/alexanderramin/pauta/internal/domain"
)

// AllocateReviews places every due review. Reviews are not optional once
// due, so when they do not all fit the whole run fails with
// INFEASIBLE_PLAN instead of returning a truncated layer.
func AllocateReviews(due []domain.PlannedTask, capacity domain.PlannedDuration) ([]domain.DailyPlanItem, domain.PlannedDuration, error) {
	tasks := make([]domain.PlannedTask, len(due))
	copy(tasks, due)
	SortReviewTasks(tasks)

	items := make([]domain.DailyPlanItem, 0, len(tasks))
	remaining := capacity
	needed := 0
	for _, t := range tasks {
		needed += t.Duration.Minutes()
	}
	if needed > capacity.Minutes() {
		return nil, capacity, domain.Errorf(domain.CodeInfeasiblePlan,
			"%d due reviews need %d min but the day has %d min", len(tasks), needed, capacity.Minutes())
	}

	for i, t := range tasks {
		if t.Type != domain.TaskReview {
			return nil, capacity, domain.Errorf(domain.CodeDomainViolation, "task %s of type %s is not a review", t.ID, t.Type)
		}
		item, err := domain.NewDailyPlanItem(t, i)
		if err != nil {
			return nil, capacity, err
		}
		remaining, err = remaining.Sub(t.Duration)
		if err != nil {
			return nil, capacity, err
		}
		items = append(items, item)
	}
	return items, remaining, nil
}

// ReserveReviewBlock holds part of the remaining capacity for the review
// layer. The block applies only when auto review asks for it and the day
// also has theory enabled; it tops placed review minutes up to ReservedMin
// and is never handed to later layers.
func ReserveReviewBlock(policy domain.AutoReviewPolicy, rule domain.WeekdayRule, placedMin int, remaining domain.PlannedDuration) (held, left domain.PlannedDuration) {
	if !policy.Enabled || !policy.ReserveTimeBlock || !rule.TheoryEnabled {
		return domain.PlannedDuration{}, remaining
	}
	want := clamp(policy.ReservedMin-placedMin, 0, remaining.Minutes())
	held = domain.Minutes(want)
	left, _ = remaining.Sub(held)
	return held, left
}
