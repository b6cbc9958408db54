package service

import (
	"context"
	"time"

	"github.com/alexanderramin/pauta/internal/app"
	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/ledger"
	"github.com/alexanderramin/pauta/internal/repository"
)

type reviewService struct {
	uow      db.UnitOfWork
	clock    Clock
	observer UseCaseObserver
}

func NewReviewService(uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) ReviewService {
	return &reviewService{uow: uow, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

// Compute lists the review tasks still owed inside the range. Before
// listing, every scheduled entry dated before today is closed as MISSED;
// a missed entry is never offered again.
func (s *reviewService) Compute(ctx context.Context, req app.ComputeReviewTasksRequest) (resp *app.ComputeReviewTasksResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"from": req.From, "to": req.To}
	defer func() {
		if resp != nil {
			fields["items"] = len(resp.Tasks)
			fields["marked_missed"] = resp.MarkedMissed
		}
		observe(ctx, s.observer, "compute-review-tasks", startedAt, fields, err)
	}()

	rng, err := domain.ParseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	now := s.clock.Now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		reviews := repository.NewSQLiteReviewLedgerRepo(tx)

		stale, err := reviews.ListScheduledBefore(ctx, req.UserID, today)
		if err != nil {
			return err
		}
		missed := ledger.Sweep(stale, today, now)
		for _, e := range missed {
			if err := reviews.MarkMissed(ctx, req.UserID, e.ID, now); err != nil {
				return err
			}
		}

		entries, err := reviews.ListInRange(ctx, req.UserID, rng)
		if err != nil {
			return err
		}
		pending := ledger.Pending(entries, rng, today)
		tasks, err := ledger.Tasks(pending)
		if err != nil {
			return err
		}
		resp = &app.ComputeReviewTasksResponse{
			Range:        rng,
			Tasks:        tasks,
			Entries:      entries,
			MarkedMissed: len(missed),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
