package scheduler

import (
	"github.com/alexanderramin/pauta/internal/domain"
)

// ComposeDailyPlan derives the plan for pc.Date. It reads nothing but pc.
//
// The run is strictly sequential: rest-day check, reviews, the optional
// review reserve, extras, then theory. Each layer consumes what its
// predecessor left. Allocator errors are returned unchanged, and the final
// plan goes through domain.NewDailyPlan so layer order and capacity are
// checked again independently of the allocators.
func ComposeDailyPlan(pc *domain.PlanningContext) (*domain.DailyPlan, error) {
	if pc == nil || pc.Date.IsZero() {
		return nil, domain.Errorf(domain.CodeDomainViolation, "planning context has no date")
	}
	profile := pc.Profile
	rule := profile.RuleFor(pc.Date)

	if IsRestDay(pc.Date, rule, profile.RestPeriods) {
		return domain.NewRestDayPlan(pc.Date)
	}

	capacity, err := domain.NewPlannedDuration(rule.DailyMin)
	if err != nil {
		return nil, err
	}

	reviews, remaining, err := AllocateReviews(pc.DueReviewTasks, capacity)
	if err != nil {
		return nil, err
	}
	held, remaining := ReserveReviewBlock(profile.AutoReview, rule, capacity.Minutes()-remaining.Minutes(), remaining)

	extras, remaining, err := AllocateExtras(pc.Date, rule, profile.Extras, remaining)
	if err != nil {
		return nil, err
	}

	var theory []domain.DailyPlanItem
	if rule.TheoryEnabled {
		if !remaining.IsZero() && !hasActiveSubject(pc.Subjects) {
			return nil, domain.Errorf(domain.CodeMissingSubjects, "theory is enabled on %s but no active subject exists", pc.Date)
		}
		theory, _, err = AllocateTheory(pc.Date, pc.Subjects, profile.SubjectsPerDay, remaining)
		if err != nil {
			return nil, err
		}
	}

	items := make([]domain.DailyPlanItem, 0, len(reviews)+len(extras)+len(theory))
	items = append(items, reviews...)
	items = append(items, extras...)
	items = append(items, theory...)
	plan, err := domain.NewDailyPlan(pc.Date, domain.PlanPlanned, capacity, items)
	if err != nil {
		return nil, err
	}
	return plan.WithReserve(held)
}

func hasActiveSubject(subjects []domain.Subject) bool {
	for _, s := range subjects {
		if s.Active {
			return true
		}
	}
	return false
}
