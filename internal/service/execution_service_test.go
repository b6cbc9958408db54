package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/pauta/internal/app"
	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/scheduler"
	"github.com/alexanderramin/pauta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wednesdayProfile studies 120 theory minutes on Wednesdays with weekly reviews.
func wednesdayProfile(h *harness) {
	h.saveProfile(testutil.WithDailyMinutes(120, 3), testutil.WithAutoReview(7, 30))
}

func theoryID(date string, s *domain.Subject) string {
	return scheduler.TheoryTaskID(domain.MustParseDate(date), s.ID)
}

func TestRecordExecution_TheorySchedulesOneReview(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	wednesdayProfile(h)
	civil := h.addSubject("Civil Law")

	_, err := h.plans.Generate(ctx, app.NewGenerateDailyPlanRequest(testUser, testToday))
	require.NoError(t, err)

	req := app.NewRecordExecutionRequest(testUser, testToday)
	req.CompletedTaskIDs = []string{theoryID(testToday, civil)}
	resp, err := h.executions.Record(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, 120, resp.Execution.Total().Minutes())
	assert.Equal(t, "profile:ana:r1", resp.SnapshotID)
	require.Len(t, resp.ScheduledReviews, 1)
	review := resp.ScheduledReviews[0]
	assert.Equal(t, "2026-10-21", review.ScheduledDate.String())
	assert.Equal(t, testToday, review.OriginDate.String())
	assert.Equal(t, 30, review.Duration.Minutes())
	assert.Equal(t, civil.ID, review.SubjectID)

	subject, err := h.subjectsDB.GetByID(ctx, testUser, civil.ID)
	require.NoError(t, err)
	assert.Equal(t, 480, subject.RemainingTheoryMin)

	stored, err := h.plansDB.GetByDate(ctx, testUser, domain.MustParseDate(testToday))
	require.NoError(t, err)
	assert.Equal(t, domain.PlanExecuted, stored.Plan.Status())
}

func TestRecordExecution_SecondAttemptFailsAndKeepsFirst(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	wednesdayProfile(h)
	civil := h.addSubject("Civil Law")

	req := app.NewRecordExecutionRequest(testUser, testToday)
	req.CompletedTaskIDs = []string{theoryID(testToday, civil)}
	req.ActualMinByTask[theoryID(testToday, civil)] = 100
	first, err := h.executions.Record(ctx, req)
	require.NoError(t, err)

	again := app.NewRecordExecutionRequest(testUser, testToday)
	_, err = h.executions.Record(ctx, again)
	requireCode(t, err, domain.CodeExecutionAlreadyExists)

	stored, err := h.executions.GetByDate(ctx, testUser, testToday)
	require.NoError(t, err)
	assert.Equal(t, first.Execution.ID(), stored.ID())
	assert.Equal(t, 100, stored.Total().Minutes())
	assert.True(t, first.Execution.RecordedAt().Equal(stored.RecordedAt()))
	assert.Equal(t, 1, h.countRows("executed_days"))
	assert.Equal(t, 1, h.countRows("review_ledger"))
}

func TestRecordExecution_WithoutStoredPlanUsesComposedSnapshot(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	wednesdayProfile(h)
	civil := h.addSubject("Civil Law")

	req := app.NewRecordExecutionRequest(testUser, testToday)
	req.ActualMinByTask[theoryID(testToday, civil)] = 45
	resp, err := h.executions.Record(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, 45, resp.Execution.Total().Minutes())
	assert.Empty(t, resp.ScheduledReviews, "theory that was not completed spawns no review")

	subject, err := h.subjectsDB.GetByID(ctx, testUser, civil.ID)
	require.NoError(t, err)
	assert.Equal(t, 555, subject.RemainingTheoryMin)
	assert.Equal(t, 1, h.countRows("daily_plans"))
}

func TestRecordExecution_Rejections(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	wednesdayProfile(h)
	h.addSubject("Civil Law")

	_, err := h.executions.Record(ctx, app.NewRecordExecutionRequest(testUser, "2026-10-15"))
	requireCode(t, err, domain.CodeDomainViolation)

	// Tuesday has no rule.
	_, err = h.executions.Record(ctx, app.NewRecordExecutionRequest(testUser, "2026-10-13"))
	requireCode(t, err, domain.CodeCannotExecuteRestDay)

	unknown := app.NewRecordExecutionRequest(testUser, testToday)
	unknown.CompletedTaskIDs = []string{"not-planned"}
	_, err = h.executions.Record(ctx, unknown)
	requireCode(t, err, domain.CodeDomainViolation)

	tooLong := app.NewRecordExecutionRequest(testUser, testToday)
	for _, item := range mustPlanFor(t, h, testToday).Items() {
		tooLong.ActualMinByTask[item.Task.ID] = 2000
	}
	_, err = h.executions.Record(ctx, tooLong)
	requireCode(t, err, domain.CodeDomainViolation)

	assert.Equal(t, 0, h.countRows("executed_days"))
}

func mustPlanFor(t *testing.T, h *harness, date string) *domain.DailyPlan {
	t.Helper()
	resp, err := h.plans.Generate(context.Background(), app.NewGenerateDailyPlanRequest(testUser, date))
	require.NoError(t, err)
	return resp.Plan
}

func TestRecordExecution_CompletedReviewIsExecuted(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	wednesdayProfile(h)
	civil := h.addSubject("Civil Law")
	review := h.addReview(civil, testToday, 30)

	plan := mustPlanFor(t, h, testToday)
	assert.Equal(t, []itemView{{domain.TaskReview, 30}, {domain.TaskTheory, 90}}, itemsOf(plan))

	req := app.NewRecordExecutionRequest(testUser, testToday)
	req.CompletedTaskIDs = []string{review.ID}
	resp, err := h.executions.Record(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{review.ID}, resp.ExecutedReviews)
	assert.Equal(t, 30, resp.Execution.Total().Minutes())

	entry, err := h.reviewsDB.GetByID(ctx, testUser, review.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewExecuted, entry.Status)
	assert.Equal(t, testToday, entry.ExecutedOn.String())
}

func TestRecordExecution_ConcurrentInsertIsConflict(t *testing.T) {
	database := testutil.NewTestDB(t)
	inserted := false
	uow := &testutil.HookBeforeTxUoW{
		DB: database,
		Hook: func(ctx context.Context, conn db.DBTX) error {
			if inserted {
				return nil
			}
			inserted = true
			_, err := conn.ExecContext(ctx, `INSERT INTO executed_days (id, user_id, exec_date, total_min, recorded_at)
				VALUES ('competitor', ?, ?, 0, ?)`, testUser, testToday, time.Now().UTC().Format(time.RFC3339Nano))
			return err
		},
	}
	h := newHarnessWithUoW(t, database, testutil.NewTestUoW(database))
	wednesdayProfile(h)
	civil := h.addSubject("Civil Law")

	racing := NewExecutionService(h.execsDB, uow, h.clock)
	req := app.NewRecordExecutionRequest(testUser, testToday)
	req.CompletedTaskIDs = []string{theoryID(testToday, civil)}
	_, err := racing.Record(context.Background(), req)
	requireCode(t, err, domain.CodeConcurrencyConflict)

	stored, err := h.executions.GetByDate(context.Background(), testUser, testToday)
	require.NoError(t, err)
	assert.Equal(t, "competitor", stored.ID())
	assert.Equal(t, 0, h.countRows("review_ledger"), "the losing attempt leaves no side effects")
}

func TestRecordExecution_RollsBackOnLateFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	h := newHarnessWithUoW(t, database, testutil.NewTestUoW(database))
	wednesdayProfile(h)
	civil := h.addSubject("Civil Law")
	mustPlanFor(t, h, testToday)

	injected := errors.New("disk full")
	// Writes: execution header, its item, the review, then the subject update.
	failing := &testutil.FailOnNthExecUoW{DB: database, FailOn: 4, Err: injected}
	svc := NewExecutionService(h.execsDB, failing, h.clock)

	req := app.NewRecordExecutionRequest(testUser, testToday)
	req.CompletedTaskIDs = []string{theoryID(testToday, civil)}
	_, err := svc.Record(context.Background(), req)
	require.ErrorIs(t, err, injected)

	assert.Equal(t, 0, h.countRows("executed_days"))
	assert.Equal(t, 0, h.countRows("review_ledger"))
	subject, err := h.subjectsDB.GetByID(context.Background(), testUser, civil.ID)
	require.NoError(t, err)
	assert.Equal(t, 600, subject.RemainingTheoryMin)
}

func TestRecordExecution_LateReviewLapsesRegardlessOfSweep(t *testing.T) {
	ctx := context.Background()

	record := func(t *testing.T, sweepFirst bool) {
		h := newHarness(t)
		wednesdayProfile(h)
		civil := h.addSubject("Civil Law")
		review := h.addReview(civil, testToday, 30)
		mustPlanFor(t, h, testToday)

		h.clock.set("2026-10-15")
		if sweepFirst {
			_, err := h.reviews.Compute(ctx, app.NewComputeReviewTasksRequest(testUser, testToday, "2026-10-20"))
			require.NoError(t, err)
		}

		req := app.NewRecordExecutionRequest(testUser, testToday)
		req.CompletedTaskIDs = []string{review.ID}
		resp, err := h.executions.Record(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, resp.ExecutedReviews)
		assert.Equal(t, []string{review.ID}, resp.LapsedReviews)

		entry, err := h.reviewsDB.GetByID(ctx, testUser, review.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewMissed, entry.Status)
		assert.True(t, entry.ExecutedOn.IsZero())
	}

	t.Run("sweep first", func(t *testing.T) { record(t, true) })
	t.Run("no sweep", func(t *testing.T) { record(t, false) })
}
