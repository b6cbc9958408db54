package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pauta/internal/app"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/ledger"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/alexanderramin/pauta/internal/scheduler"
)

// DefaultProjectionMaxDays bounds a projection when none is configured.
const DefaultProjectionMaxDays = 92

type projectionService struct {
	profiles   repository.ProfileRepo
	subjects   repository.SubjectRepo
	reviews    repository.ReviewLedgerRepo
	plans      repository.DailyPlanRepo
	executions repository.ExecutionRepo
	clock      Clock
	maxDays    int
	observer   UseCaseObserver
}

// NewProjectionService builds the calendar projection use case. It only
// reads; callers are expected to back the repositories with db.ReadOnly.
func NewProjectionService(
	profiles repository.ProfileRepo,
	subjects repository.SubjectRepo,
	reviews repository.ReviewLedgerRepo,
	plans repository.DailyPlanRepo,
	executions repository.ExecutionRepo,
	clock Clock,
	maxDays int,
	observers ...UseCaseObserver,
) ProjectionService {
	if maxDays <= 0 {
		maxDays = DefaultProjectionMaxDays
	}
	return &projectionService{
		profiles:   profiles,
		subjects:   subjects,
		reviews:    reviews,
		plans:      plans,
		executions: executions,
		clock:      clock,
		maxDays:    maxDays,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Project composes one plan per date in the range without writing
// anything. Theory consumed on one simulated day is no longer available on
// the next. Stored plans are reused only when the request allows it.
func (s *projectionService) Project(ctx context.Context, req app.CalendarProjectionRequest) (resp *app.CalendarProjectionResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"from": req.From, "to": req.To, "include_persisted": req.IncludePersistedPlans}
	defer func() {
		if resp != nil {
			fields["days"] = len(resp.Projection.Plans())
			fields["required_min"] = resp.Projection.TotalRequired()
			fields["rest_days"] = resp.Projection.RestDays()
		}
		observe(ctx, s.observer, "calendar-projection", startedAt, fields, err)
	}()

	rng, err := domain.ParseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}
	if rng.Days() > s.maxDays {
		return nil, domain.Errorf(domain.CodeInvalidDateRange, "range of %d days exceeds the limit of %d", rng.Days(), s.maxDays)
	}

	profile, err := loadProfile(ctx, s.profiles, req.UserID)
	if err != nil {
		return nil, err
	}
	subjects, err := s.subjects.List(ctx, req.UserID, false)
	if err != nil {
		return nil, fmt.Errorf("loading subjects: %w", err)
	}
	entries, err := s.reviews.ListInRange(ctx, req.UserID, rng)
	if err != nil {
		return nil, fmt.Errorf("loading review ledger: %w", err)
	}
	executedDates, err := s.executions.ListDatesInRange(ctx, req.UserID, rng)
	if err != nil {
		return nil, fmt.Errorf("loading executions: %w", err)
	}
	executed := make(map[domain.CalendarDate]bool, len(executedDates))
	for _, d := range executedDates {
		executed[d] = true
	}

	stored := map[domain.CalendarDate]*repository.StoredPlan{}
	if req.IncludePersistedPlans {
		list, err := s.plans.ListInRange(ctx, req.UserID, rng)
		if err != nil {
			return nil, fmt.Errorf("loading stored plans: %w", err)
		}
		for _, sp := range list {
			stored[sp.Plan.Date()] = sp
		}
	}

	today := s.clock.Today()
	sim := newTheorySimulation(subjects)
	plans := make([]*domain.DailyPlan, 0, rng.Days())
	var persisted []domain.CalendarDate

	for _, date := range rng.Dates() {
		if sp, ok := stored[date]; ok {
			plans = append(plans, sp.Plan)
			persisted = append(persisted, date)
			sim.consume(sp.Plan)
			continue
		}

		due, err := ledger.Tasks(ledger.DueOn(entries, date, today))
		if err != nil {
			return nil, fmt.Errorf("projecting %s: %w", date, err)
		}
		pc := &domain.PlanningContext{
			UserID:              req.UserID,
			Date:                date,
			Today:               today,
			Profile:             *profile,
			Subjects:            sim.subjects(),
			DueReviewTasks:      due,
			HasExecutionForDate: executed[date],
		}
		plan, err := scheduler.ComposeDailyPlan(pc)
		if err != nil {
			return nil, fmt.Errorf("projecting %s: %w", date, err)
		}
		plans = append(plans, plan)
		sim.consume(plan)
	}

	projection, err := domain.NewCalendarProjection(rng, plans, domain.ProfileSnapshotID(*profile))
	if err != nil {
		return nil, err
	}
	return &app.CalendarProjectionResponse{
		Projection:     projection,
		PersistedDates: persisted,
		ExecutedDates:  executedDates,
	}, nil
}

// theorySimulation tracks remaining theory over a projection on a private
// copy of the subjects.
type theorySimulation struct {
	list  []domain.Subject
	index map[string]int
}

func newTheorySimulation(subjects []domain.Subject) *theorySimulation {
	sim := &theorySimulation{
		list:  make([]domain.Subject, len(subjects)),
		index: make(map[string]int, len(subjects)),
	}
	copy(sim.list, subjects)
	for i, s := range sim.list {
		sim.index[s.ID] = i
	}
	return sim
}

func (t *theorySimulation) subjects() []domain.Subject {
	out := make([]domain.Subject, len(t.list))
	copy(out, t.list)
	return out
}

func (t *theorySimulation) consume(plan *domain.DailyPlan) {
	for _, item := range plan.ItemsInLayer(domain.LayerTheory) {
		i, ok := t.index[item.Task.SubjectID]
		if !ok {
			continue
		}
		t.list[i].RemainingTheoryMin = max(t.list[i].RemainingTheoryMin-item.Task.Duration.Minutes(), 0)
	}
}
