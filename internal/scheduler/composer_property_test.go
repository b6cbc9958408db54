package scheduler

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComposeDailyPlan_Invariants property-tests composition over random
// profiles: the plan never exceeds capacity, layers never regress, and
// every due review is either placed or the run fails as infeasible.
func TestComposeDailyPlan_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 300; trial++ {
		date, err := monday.AddDays(rng.Intn(28))
		require.NoError(t, err)
		rule := domain.WeekdayRule{
			Weekday:             date.Weekday(),
			DailyMin:            rng.Intn(300),
			QuestionsEnabled:    rng.Intn(2) == 1,
			InformativesEnabled: rng.Intn(2) == 1,
			LeiSecaEnabled:      rng.Intn(2) == 1,
			TheoryEnabled:       rng.Intn(2) == 1,
		}

		var reviews []domain.PlannedTask
		reviewMin := 0
		numReviews := rng.Intn(5)
		for i := 0; i < numReviews; i++ {
			m := rng.Intn(60) + 1
			reviewMin += m
			reviews = append(reviews, reviewTask(t, "rev-"+strconv.Itoa(i), m, "2026-10-01"))
		}
		var subjects []domain.Subject
		numSubjects := rng.Intn(4) + 1
		for i := 0; i < numSubjects; i++ {
			subjects = append(subjects, subject("s"+strconv.Itoa(i), i, rng.Intn(200)))
		}

		pc := newContext(date,
			withRule(rule),
			withReviews(reviews...),
			withSubjects(subjects...),
			withExtras(domain.ExtrasDurations{QuestionsMin: rng.Intn(60), InformativesMin: rng.Intn(60), LeiSecaMin: rng.Intn(60)}),
			withAutoReview(domain.AutoReviewPolicy{Enabled: true, FrequencyDays: 7, DurationMin: 30, ReserveTimeBlock: rng.Intn(2) == 1, ReservedMin: rng.Intn(90)}),
		)
		pc.Profile.SubjectsPerDay = rng.Intn(3) + 1

		plan, err := ComposeDailyPlan(pc)
		if rule.DailyMin == 0 {
			require.NoError(t, err)
			assert.True(t, plan.IsRestDay(), "trial %d", trial)
			continue
		}
		if reviewMin > rule.DailyMin {
			assert.ErrorIs(t, err, domain.ErrInfeasiblePlan, "trial %d", trial)
			continue
		}
		require.NoError(t, err, "trial %d", trial)

		assert.LessOrEqual(t, plan.Required().Minutes(), rule.DailyMin, "trial %d", trial)
		assert.Len(t, plan.ItemsInLayer(domain.LayerReview), len(reviews), "trial %d: every review placed", trial)
		items := plan.Items()
		for i := 1; i < len(items); i++ {
			assert.LessOrEqual(t, items[i-1].Layer.Rank(), items[i].Layer.Rank(), "trial %d", trial)
		}
		if !rule.TheoryEnabled {
			assert.Empty(t, plan.ItemsInLayer(domain.LayerTheory), "trial %d", trial)
		}
	}
}
