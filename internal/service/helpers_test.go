package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/alexanderramin/pauta/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testUser = "ana"

// Wednesday. The first Monday after it is 2026-10-19.
const testToday = "2026-10-14"

type testClock struct {
	mu    sync.Mutex
	today domain.CalendarDate
	now   time.Time
}

func newTestClock(today string) *testClock {
	return &testClock{today: domain.MustParseDate(today), now: time.Date(2026, 10, 14, 21, 0, 0, 0, time.UTC)}
}

func (c *testClock) Today() domain.CalendarDate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.today
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) set(today string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = domain.MustParseDate(today)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

// harness wires every use case against one in-memory database.
type harness struct {
	t     *testing.T
	db    *sql.DB
	uow   db.UnitOfWork
	clock *testClock
	obs   *recordingObserver

	profiles   *repository.SQLiteProfileRepo
	subjectsDB *repository.SQLiteSubjectRepo
	reviewsDB  *repository.SQLiteReviewLedgerRepo
	plansDB    *repository.SQLiteDailyPlanRepo
	execsDB    *repository.SQLiteExecutionRepo

	plans      PlanService
	executions ExecutionService
	reviews    ReviewService
	projection ProjectionService
	profileSvc ProfileService
	subjects   SubjectService
	imports    ImportService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newHarnessWithUoW(t, database, testutil.NewTestUoW(database))
}

func newHarnessWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *harness {
	t.Helper()
	h := &harness{
		t:          t,
		db:         database,
		uow:        uow,
		clock:      newTestClock(testToday),
		obs:        &recordingObserver{},
		profiles:   repository.NewSQLiteProfileRepo(database),
		subjectsDB: repository.NewSQLiteSubjectRepo(database),
		reviewsDB:  repository.NewSQLiteReviewLedgerRepo(database),
		plansDB:    repository.NewSQLiteDailyPlanRepo(database),
		execsDB:    repository.NewSQLiteExecutionRepo(database),
	}

	ro := db.ReadOnly(database)
	h.plans = NewPlanService(h.plansDB, uow, h.clock, h.obs)
	h.executions = NewExecutionService(h.execsDB, uow, h.clock, h.obs)
	h.reviews = NewReviewService(uow, h.clock, h.obs)
	h.projection = NewProjectionService(
		repository.NewSQLiteProfileRepo(ro),
		repository.NewSQLiteSubjectRepo(ro),
		repository.NewSQLiteReviewLedgerRepo(ro),
		repository.NewSQLiteDailyPlanRepo(ro),
		repository.NewSQLiteExecutionRepo(ro),
		h.clock, 31, h.obs,
	)
	h.profileSvc = NewProfileService(h.profiles, uow, h.obs)
	h.subjects = NewSubjectService(h.subjectsDB, uow)
	h.imports = NewImportService(uow)
	return h
}

func (h *harness) saveProfile(opts ...testutil.ProfileOption) *domain.StudyProfile {
	h.t.Helper()
	p := testutil.NewTestProfile(testUser, opts...)
	require.NoError(h.t, h.profileSvc.Save(context.Background(), p))
	return p
}

func (h *harness) addSubject(name string, opts ...testutil.SubjectOption) *domain.Subject {
	h.t.Helper()
	ctx := context.Background()
	pos, err := h.subjectsDB.NextPosition(ctx, testUser)
	require.NoError(h.t, err)
	s := testutil.NewTestSubject(name, append([]testutil.SubjectOption{testutil.WithPosition(pos)}, opts...)...)
	require.NoError(h.t, h.subjectsDB.Create(ctx, testUser, s))
	return s
}

func (h *harness) addReview(subject *domain.Subject, scheduled string, minutes int) *domain.ReviewEntry {
	h.t.Helper()
	e := testutil.NewTestReview(subject, scheduled, minutes)
	created, err := h.reviewsDB.UpsertScheduled(context.Background(), testUser, e)
	require.NoError(h.t, err)
	require.True(h.t, created)
	return e
}

func (h *harness) countRows(table string) int {
	h.t.Helper()
	var n int
	require.NoError(h.t, h.db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

type itemView struct {
	Type    domain.TaskType
	Minutes int
}

func itemsOf(plan *domain.DailyPlan) []itemView {
	out := make([]itemView, 0, len(plan.Items()))
	for _, item := range plan.Items() {
		out = append(out, itemView{Type: item.Task.Type, Minutes: item.Task.Duration.Minutes()})
	}
	return out
}

func requireCode(t *testing.T, err error, code domain.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, domain.CodeOf(err), "error: %v", err)
}
