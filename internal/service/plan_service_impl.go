package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pauta/internal/app"
	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/alexanderramin/pauta/internal/scheduler"
)

type planService struct {
	plans    repository.DailyPlanRepo
	uow      db.UnitOfWork
	clock    Clock
	observer UseCaseObserver
}

func NewPlanService(plans repository.DailyPlanRepo, uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) PlanService {
	return &planService{
		plans:    plans,
		uow:      uow,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Generate returns the stored plan for the date, or composes and stores
// one. A date that was executed without a stored plan cannot get a new one.
func (s *planService) Generate(ctx context.Context, req app.GenerateDailyPlanRequest) (resp *app.DailyPlanResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": req.Date}
	defer func() {
		if resp != nil {
			planFields(fields, resp.Plan)
			fields["reused"] = resp.Reused
		}
		observe(ctx, s.observer, "generate-daily-plan", startedAt, fields, err)
	}()

	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	stored, err := s.plans.GetByDate(ctx, req.UserID, date)
	if err == nil {
		return &app.DailyPlanResponse{Plan: stored.Plan, SnapshotID: stored.SnapshotID, Reused: true}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading stored plan: %w", err)
	}

	today := s.clock.Today()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		pc, err := newSQLiteContextLoader(tx).Load(ctx, req.UserID, date, today)
		if err != nil {
			return err
		}
		if pc.HasExecutionForDate {
			return domain.Errorf(domain.CodeExecutionAlreadyExists, "%s was already executed", date)
		}
		plan, err := scheduler.ComposeDailyPlan(pc)
		if err != nil {
			return err
		}
		if err := repository.NewSQLiteDailyPlanRepo(tx).Upsert(ctx, req.UserID, plan, pc.SnapshotID()); err != nil {
			return err
		}
		resp = &app.DailyPlanResponse{Plan: plan, SnapshotID: pc.SnapshotID()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Regenerate replaces the plan of a date after today. The guards run in a
// fixed order: an execution blocks everything, then the date must be in the
// future, then the caller must confirm.
func (s *planService) Regenerate(ctx context.Context, req app.RegenerateDailyPlanRequest) (resp *app.DailyPlanResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": req.Date, "confirmed": req.ConfirmApply}
	defer func() {
		if resp != nil {
			planFields(fields, resp.Plan)
			fields["replaced"] = resp.Replaced
		}
		observe(ctx, s.observer, "regenerate-daily-plan", startedAt, fields, err)
	}()

	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLiteDailyPlanRepo(tx)
		replaced, err := checkReplaceable(ctx, tx, plans, req.UserID, date, today, req.ConfirmApply)
		if err != nil {
			return err
		}
		pc, err := newSQLiteContextLoader(tx).Load(ctx, req.UserID, date, today)
		if err != nil {
			return err
		}
		plan, err := scheduler.ComposeDailyPlan(pc)
		if err != nil {
			return err
		}
		if err := plans.Upsert(ctx, req.UserID, plan, pc.SnapshotID()); err != nil {
			return err
		}
		resp = &app.DailyPlanResponse{Plan: plan, SnapshotID: pc.SnapshotID(), Replaced: replaced}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Discard deletes the stored plan of a future date under the same guards
// as Regenerate.
func (s *planService) Discard(ctx context.Context, req app.DiscardDailyPlanRequest) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": req.Date, "confirmed": req.ConfirmApply}
	defer func() {
		observe(ctx, s.observer, "discard-daily-plan", startedAt, fields, err)
	}()

	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}

	today := s.clock.Today()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLiteDailyPlanRepo(tx)
		if _, err := checkReplaceable(ctx, tx, plans, req.UserID, date, today, req.ConfirmApply); err != nil {
			return err
		}
		return plans.DeleteByDate(ctx, req.UserID, date)
	})
}

// checkReplaceable enforces the regeneration policy and reports whether a
// stored plan exists.
func checkReplaceable(ctx context.Context, tx db.DBTX, plans repository.DailyPlanRepo, userID string, date, today domain.CalendarDate, confirmed bool) (bool, error) {
	executed, err := repository.NewSQLiteExecutionRepo(tx).Exists(ctx, userID, date)
	if err != nil {
		return false, fmt.Errorf("checking execution: %w", err)
	}
	if executed {
		return false, domain.Errorf(domain.CodeExecutionAlreadyExists, "%s was already executed", date)
	}
	if !date.After(today) {
		return false, domain.Errorf(domain.CodeForbiddenRegeneration, "%s is not after today (%s)", date, today)
	}
	if !confirmed {
		return false, domain.Errorf(domain.CodeForbiddenRegeneration, "replacing the plan for %s needs confirmation", date)
	}

	stored, err := plans.GetByDate(ctx, userID, date)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading stored plan: %w", err)
	}
	if !stored.Plan.CanRegenerate(executed) {
		return false, domain.Errorf(domain.CodeExecutionAlreadyExists, "the plan for %s is marked executed", date)
	}
	return true, nil
}
