package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/pauta/internal/app"
	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/ledger"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/alexanderramin/pauta/internal/scheduler"
	"github.com/google/uuid"
)

type executionService struct {
	executions repository.ExecutionRepo
	uow        db.UnitOfWork
	clock      Clock
	observer   UseCaseObserver
}

func NewExecutionService(executions repository.ExecutionRepo, uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) ExecutionService {
	return &executionService{
		executions: executions,
		uow:        uow,
		clock:      clock,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Record stores the factual execution of a date against the plan it was
// executed from. The record is inserted once and never updated; a second
// attempt fails with EXECUTION_ALREADY_EXISTS, or CONCURRENCY_CONFLICT when
// another writer wins the insert race.
func (s *executionService) Record(ctx context.Context, req app.RecordExecutionRequest) (resp *app.RecordExecutionResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": req.Date, "completed": len(req.CompletedTaskIDs)}
	defer func() {
		if resp != nil {
			fields["total_min"] = resp.Execution.Total().Minutes()
			fields["scheduled_reviews"] = len(resp.ScheduledReviews)
		}
		observe(ctx, s.observer, "record-execution", startedAt, fields, err)
	}()

	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()
	if date.After(today) {
		return nil, domain.Errorf(domain.CodeDomainViolation, "cannot record an execution for %s before it happens (today is %s)", date, today)
	}

	exists, err := s.executions.Exists(ctx, req.UserID, date)
	if err != nil {
		return nil, fmt.Errorf("checking execution: %w", err)
	}
	if exists {
		return nil, domain.Errorf(domain.CodeExecutionAlreadyExists, "%s was already executed", date)
	}

	now := s.clock.Now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLiteDailyPlanRepo(tx)
		plan, snapshotID, err := snapshotPlan(ctx, tx, plans, req.UserID, date, today)
		if err != nil {
			return err
		}
		if plan.IsRestDay() {
			return domain.Errorf(domain.CodeCannotExecuteRestDay, "%s is a rest day", date)
		}

		items, err := executedItems(plan, req.CompletedTaskIDs, req.ActualMinByTask)
		if err != nil {
			return err
		}
		exec, err := domain.NewExecutedDay(uuid.New().String(), date, items, now)
		if err != nil {
			return err
		}
		if err := repository.NewSQLiteExecutionRepo(tx).Insert(ctx, req.UserID, exec); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return domain.Errorf(domain.CodeConcurrencyConflict, "another execution for %s was recorded concurrently", date)
			}
			return err
		}

		resp = &app.RecordExecutionResponse{Execution: exec, SnapshotID: snapshotID}
		if err := applyReviews(ctx, tx, req.UserID, exec, today, now, resp); err != nil {
			return err
		}
		if err := applyTheory(ctx, tx, req.UserID, exec, now, resp); err != nil {
			return err
		}

		executed, err := plan.MarkExecuted()
		if err != nil {
			return err
		}
		return plans.Upsert(ctx, req.UserID, executed, snapshotID)
	})
	if errors.Is(err, db.ErrBusy) {
		return nil, domain.Errorf(domain.CodeConcurrencyConflict, "another writer held the database while recording %s", date)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *executionService) GetByDate(ctx context.Context, userID, date string) (*domain.ExecutedDay, error) {
	d, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}
	return s.executions.GetByDate(ctx, userID, d)
}

// snapshotPlan returns the stored plan of date, composing one when none
// was stored.
func snapshotPlan(ctx context.Context, tx db.DBTX, plans repository.DailyPlanRepo, userID string, date, today domain.CalendarDate) (*domain.DailyPlan, string, error) {
	stored, err := plans.GetByDate(ctx, userID, date)
	if err == nil {
		return stored.Plan, stored.SnapshotID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("loading stored plan: %w", err)
	}
	pc, err := newSQLiteContextLoader(tx).Load(ctx, userID, date, today)
	if err != nil {
		return nil, "", err
	}
	plan, err := scheduler.ComposeDailyPlan(pc)
	if err != nil {
		return nil, "", err
	}
	return plan, pc.SnapshotID(), nil
}

// executedItems turns the plan into factual items. Completed items default
// to their planned minutes, the others to zero.
func executedItems(plan *domain.DailyPlan, completedIDs []string, actualMin map[string]int) ([]domain.ExecutedItem, error) {
	completed := make(map[string]bool, len(completedIDs))
	for _, id := range completedIDs {
		if _, ok := plan.FindTask(id); !ok {
			return nil, domain.Errorf(domain.CodeDomainViolation, "task %s is not in the plan for %s", id, plan.Date())
		}
		completed[id] = true
	}
	ids := make([]string, 0, len(actualMin))
	for id := range actualMin {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, ok := plan.FindTask(id); !ok {
			return nil, domain.Errorf(domain.CodeDomainViolation, "task %s is not in the plan for %s", id, plan.Date())
		}
	}

	items := make([]domain.ExecutedItem, 0, len(plan.Items()))
	for _, pi := range plan.Items() {
		t := pi.Task
		minutes := 0
		if completed[t.ID] {
			minutes = t.Duration.Minutes()
		}
		if m, ok := actualMin[t.ID]; ok {
			minutes = m
		}
		actual, err := domain.NewPlannedDuration(minutes)
		if err != nil {
			return nil, domain.Errorf(domain.CodeDomainViolation, "task %s: %v", t.ID, err)
		}
		item := domain.ExecutedItem{
			TaskID:    t.ID,
			Type:      t.Type,
			Label:     t.Label,
			SubjectID: t.SubjectID,
			Actual:    actual,
			Completed: completed[t.ID],
		}
		if t.ReviewLink != nil {
			item.ReviewID = t.ReviewLink.ReviewID
		}
		items = append(items, item)
	}
	return items, nil
}

// applyReviews closes the ledger entries of completed reviews. An entry
// whose date is before today is judged lapsed first, exactly as the missed
// sweep would, so a late recording ends the same way whether or not a sweep
// already ran. Lapsed entries stay missed and are reported as such.
func applyReviews(ctx context.Context, tx db.DBTX, userID string, exec *domain.ExecutedDay, today domain.CalendarDate, now time.Time, resp *app.RecordExecutionResponse) error {
	reviews := repository.NewSQLiteReviewLedgerRepo(tx)
	for _, item := range exec.CompletedOfType(domain.TaskReview) {
		entry, err := reviews.GetByID(ctx, userID, item.ReviewID)
		if err != nil {
			return fmt.Errorf("loading review %s: %w", item.ReviewID, err)
		}
		for _, swept := range ledger.Sweep([]*domain.ReviewEntry{entry}, today, now) {
			if err := reviews.MarkMissed(ctx, userID, swept.ID, now); err != nil {
				return err
			}
		}
		if entry.Status == domain.ReviewMissed {
			resp.LapsedReviews = append(resp.LapsedReviews, entry.ID)
			continue
		}
		if err := entry.MarkExecuted(exec.Date(), now); err != nil {
			return err
		}
		if err := reviews.MarkExecuted(ctx, userID, entry.ID, exec.Date(), now); err != nil {
			return err
		}
		resp.ExecutedReviews = append(resp.ExecutedReviews, entry.ID)
	}
	return nil
}

// applyTheory consumes studied theory from each subject and schedules one
// review per completed theory item when auto review is on.
func applyTheory(ctx context.Context, tx db.DBTX, userID string, exec *domain.ExecutedDay, now time.Time, resp *app.RecordExecutionResponse) error {
	profile, err := loadProfile(ctx, repository.NewSQLiteProfileRepo(tx), userID)
	if err != nil {
		return err
	}
	subjects := repository.NewSQLiteSubjectRepo(tx)
	reviews := repository.NewSQLiteReviewLedgerRepo(tx)

	for _, item := range exec.Items() {
		if item.Type != domain.TaskTheory || item.SubjectID == "" {
			continue
		}
		if item.Actual.IsZero() && !item.Completed {
			continue
		}
		subject, err := subjects.GetByID(ctx, userID, item.SubjectID)
		if err != nil {
			return fmt.Errorf("loading subject %s: %w", item.SubjectID, err)
		}

		if item.Completed && profile.AutoReview.Enabled {
			entry, err := ledger.Schedule(uuid.New().String(), *subject, exec.Date(), profile.AutoReview, now)
			if err != nil {
				return err
			}
			created, err := reviews.UpsertScheduled(ctx, userID, entry)
			if err != nil {
				return err
			}
			if created {
				resp.ScheduledReviews = append(resp.ScheduledReviews, entry)
			}
		}

		subject.RemainingTheoryMin = max(subject.RemainingTheoryMin-item.Actual.Minutes(), 0)
		subject.UpdatedAt = now
		if err := subjects.Update(ctx, userID, subject); err != nil {
			return err
		}
	}
	return nil
}
