package domain

import "sort"

// CalendarProjection is an ordered, deduplicated run of plans over an
// inclusive range. It is always regenerable and never persisted.
type CalendarProjection struct {
	rng        DateRange
	plans      []*DailyPlan
	snapshotID string
}

// NewCalendarProjection sorts plans by date and rejects duplicates and
// plans outside the range.
func NewCalendarProjection(rng DateRange, plans []*DailyPlan, snapshotID string) (*CalendarProjection, error) {
	if _, err := NewDateRange(rng.From, rng.To); err != nil {
		return nil, err
	}
	sorted := make([]*DailyPlan, 0, len(plans))
	for _, p := range plans {
		if p == nil {
			return nil, Errorf(CodeDomainViolation, "projection contains a nil plan")
		}
		if !rng.Contains(p.Date()) {
			return nil, Errorf(CodeDomainViolation, "plan %s is outside %s..%s", p.Date(), rng.From, rng.To)
		}
		sorted = append(sorted, p)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date().Before(sorted[j].Date())
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Date().Equal(sorted[i-1].Date()) {
			return nil, Errorf(CodeDomainViolation, "projection holds two plans for %s", sorted[i].Date())
		}
	}
	return &CalendarProjection{rng: rng, plans: sorted, snapshotID: snapshotID}, nil
}

func (c *CalendarProjection) From() CalendarDate { return c.rng.From }
func (c *CalendarProjection) To() CalendarDate   { return c.rng.To }
func (c *CalendarProjection) Range() DateRange   { return c.rng }
func (c *CalendarProjection) SnapshotID() string { return c.snapshotID }

// Plans returns the plans in ascending date order.
func (c *CalendarProjection) Plans() []*DailyPlan {
	out := make([]*DailyPlan, len(c.plans))
	copy(out, c.plans)
	return out
}

// PlanFor returns the plan for d, if the projection has one.
func (c *CalendarProjection) PlanFor(d CalendarDate) (*DailyPlan, bool) {
	i := sort.Search(len(c.plans), func(i int) bool { return !c.plans[i].Date().Before(d) })
	if i < len(c.plans) && c.plans[i].Date().Equal(d) {
		return c.plans[i], true
	}
	return nil, false
}

// TotalRequired sums the required minutes of every plan.
func (c *CalendarProjection) TotalRequired() int {
	total := 0
	for _, p := range c.plans {
		total += p.Required().Minutes()
	}
	return total
}

// RestDays counts the REST_DAY plans.
func (c *CalendarProjection) RestDays() int {
	n := 0
	for _, p := range c.plans {
		if p.IsRestDay() {
			n++
		}
	}
	return n
}
