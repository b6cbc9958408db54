package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/alexanderramin/pauta/internal/app"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskIDs(tasks []domain.PlannedTask) []string {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestComputeReviewTasks_SweepsLapsedEntriesOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	civil := h.addSubject("Civil Law")
	penal := h.addSubject("Penal Law")
	lapsed := h.addReview(civil, "2026-10-12", 30)
	todays := h.addReview(penal, testToday, 20)
	upcoming := h.addReview(civil, "2026-10-16", 30)

	req := app.NewComputeReviewTasksRequest(testUser, "2026-10-01", "2026-10-31")
	resp, err := h.reviews.Compute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.MarkedMissed)
	assert.Equal(t, []string{todays.ID, upcoming.ID}, taskIDs(resp.Tasks))
	assert.Len(t, resp.Entries, 3)

	entry, err := h.reviewsDB.GetByID(ctx, testUser, lapsed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewMissed, entry.Status)

	again, err := h.reviews.Compute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0, again.MarkedMissed)
	assert.Equal(t, taskIDs(resp.Tasks), taskIDs(again.Tasks))
}

func TestComputeReviewTasks_InvalidRange(t *testing.T) {
	h := newHarness(t)

	for _, rng := range [][2]string{{"2026-10-20", "2026-10-19"}, {"2026-13-01", "2026-12-01"}, {"", "2026-10-19"}} {
		_, err := h.reviews.Compute(context.Background(), app.NewComputeReviewTasksRequest(testUser, rng[0], rng[1]))
		requireCode(t, err, domain.CodeInvalidDateRange)
	}
}

func TestComputeReviewTasks_MissedNeverReturns(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.saveProfile(testutil.WithDailyMinutes(240, 1, 2, 3, 4, 5, 6, 7))
	rng := rand.New(rand.NewSource(42))

	var subjects []*domain.Subject
	for _, name := range []string{"Civil Law", "Penal Law", "Tax Law", "Labor Law"} {
		subjects = append(subjects, h.addSubject(name))
	}
	for i := 0; i < 40; i++ {
		s := subjects[rng.Intn(len(subjects))]
		day, err := domain.MustParseDate("2026-10-10").AddDays(rng.Intn(30))
		require.NoError(t, err)
		e := testutil.NewTestReview(s, day.String(), 10+rng.Intn(20))
		_, err = h.reviewsDB.UpsertScheduled(ctx, testUser, e)
		require.NoError(t, err)
	}

	missed := map[string]bool{}
	today := domain.MustParseDate("2026-10-10")
	for step := 0; step < 35; step++ {
		h.clock.set(today.String())
		repeats := 1 + rng.Intn(3)
		for r := 0; r < repeats; r++ {
			resp, err := h.reviews.Compute(ctx, app.NewComputeReviewTasksRequest(testUser, "2026-10-01", "2026-12-31"))
			require.NoError(t, err)
			for _, id := range taskIDs(resp.Tasks) {
				assert.False(t, missed[id], "missed review %s offered again on %s", id, today)
			}
			for _, task := range resp.Tasks {
				assert.False(t, task.ReviewLink.DueDate.Before(today), "lapsed review %s offered on %s", task.ID, today)
			}
			for _, e := range resp.Entries {
				if e.Status == domain.ReviewMissed {
					missed[e.ID] = true
				}
			}
		}

		plan, err := h.plans.Generate(ctx, app.NewGenerateDailyPlanRequest(testUser, today.String()))
		require.NoError(t, err)
		for _, item := range plan.Plan.ItemsInLayer(domain.LayerReview) {
			assert.False(t, missed[item.Task.ID], "missed review %s placed on %s", item.Task.ID, today)
		}

		today, _ = today.AddDays(1)
	}
	assert.NotEmpty(t, missed)
}
