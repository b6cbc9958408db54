package domain

import "sort"

// DailyPlan is the derived, regenerable plan for one date. It can only be
// built through NewDailyPlan, which enforces the rest-day, layer-precedence
// and capacity invariants.
type DailyPlan struct {
	date      CalendarDate
	status    PlanStatus
	available PlannedDuration
	required  PlannedDuration
	reserved  PlannedDuration
	items     []DailyPlanItem
}

// NewDailyPlan validates and sorts items by (layer rank, order, task id).
// Capacity overflow is INFEASIBLE_PLAN; every other violation is
// DOMAIN_VIOLATION.
func NewDailyPlan(date CalendarDate, status PlanStatus, available PlannedDuration, items []DailyPlanItem) (*DailyPlan, error) {
	if date.IsZero() {
		return nil, Errorf(CodeDomainViolation, "plan date is required")
	}
	switch status {
	case PlanPlanned, PlanRestDay, PlanExecuted:
	default:
		return nil, Errorf(CodeDomainViolation, "unknown plan status %q", status)
	}
	if status == PlanRestDay && len(items) > 0 {
		return nil, Errorf(CodeDomainViolation, "rest day %s cannot hold %d items", date, len(items))
	}

	sorted := make([]DailyPlanItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Layer.Rank() != b.Layer.Rank() {
			return a.Layer.Rank() < b.Layer.Rank()
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Task.ID < b.Task.ID
	})

	seen := make(map[string]bool, len(sorted))
	total := 0
	prevRank := 0
	for _, item := range sorted {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if seen[item.Task.ID] {
			return nil, Errorf(CodeDomainViolation, "duplicate task id %s in plan %s", item.Task.ID, date)
		}
		seen[item.Task.ID] = true
		if item.Layer.Rank() < prevRank {
			return nil, Errorf(CodeDomainViolation, "layer regression at task %s in plan %s", item.Task.ID, date)
		}
		prevRank = item.Layer.Rank()
		total += item.Task.Duration.Minutes()
	}

	if total > available.Minutes() {
		return nil, Errorf(CodeInfeasiblePlan, "plan %s requires %d min but only %d min are available",
			date, total, available.Minutes())
	}

	return &DailyPlan{
		date:      date,
		status:    status,
		available: available,
		required:  PlannedDuration{min: total},
		items:     sorted,
	}, nil
}

// NewRestDayPlan returns the empty REST_DAY plan for date.
func NewRestDayPlan(date CalendarDate) (*DailyPlan, error) {
	return NewDailyPlan(date, PlanRestDay, PlannedDuration{}, nil)
}

func (p *DailyPlan) Date() CalendarDate         { return p.date }
func (p *DailyPlan) Status() PlanStatus         { return p.status }
func (p *DailyPlan) Available() PlannedDuration { return p.available }
func (p *DailyPlan) Required() PlannedDuration  { return p.required }
func (p *DailyPlan) Reserved() PlannedDuration  { return p.reserved }
func (p *DailyPlan) IsRestDay() bool            { return p.status == PlanRestDay }

// Remaining is available minus required and reserved minutes; it is never
// negative.
func (p *DailyPlan) Remaining() PlannedDuration {
	return PlannedDuration{min: p.available.min - p.required.min - p.reserved.min}
}

// WithReserve returns a copy of the plan holding d minutes for reviews
// that no item occupies.
func (p *DailyPlan) WithReserve(d PlannedDuration) (*DailyPlan, error) {
	if d.min > 0 && p.status == PlanRestDay {
		return nil, Errorf(CodeDomainViolation, "rest day %s cannot hold reserved time", p.date)
	}
	if p.required.min+d.min > p.available.min {
		return nil, Errorf(CodeInfeasiblePlan, "plan %s cannot reserve %d min with %d of %d min required",
			p.date, d.min, p.required.min, p.available.min)
	}
	out := *p
	out.reserved = d
	return &out, nil
}

// Items returns a copy of the sorted items.
func (p *DailyPlan) Items() []DailyPlanItem {
	out := make([]DailyPlanItem, len(p.items))
	copy(out, p.items)
	return out
}

// ItemsInLayer returns the items of one layer in plan order.
func (p *DailyPlan) ItemsInLayer(l Layer) []DailyPlanItem {
	var out []DailyPlanItem
	for _, item := range p.items {
		if item.Layer == l {
			out = append(out, item)
		}
	}
	return out
}

// FindTask looks up an item by task id.
func (p *DailyPlan) FindTask(id string) (DailyPlanItem, bool) {
	for _, item := range p.items {
		if item.Task.ID == id {
			return item, true
		}
	}
	return DailyPlanItem{}, false
}

// CanRegenerate reports whether the plan may be replaced wholesale.
func (p *DailyPlan) CanRegenerate(hasExecution bool) bool {
	return p.status != PlanExecuted && !hasExecution
}

// MarkExecuted returns a copy of the plan with status EXECUTED. Rest days
// cannot be executed.
func (p *DailyPlan) MarkExecuted() (*DailyPlan, error) {
	if p.status == PlanRestDay {
		return nil, Errorf(CodeCannotExecuteRestDay, "%s is a rest day", p.date)
	}
	executed, err := NewDailyPlan(p.date, PlanExecuted, p.available, p.items)
	if err != nil {
		return nil, err
	}
	return executed.WithReserve(p.reserved)
}
