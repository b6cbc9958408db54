package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepo_Get_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)

	_, err := repo.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepo_SaveAndGet_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProfile("u1",
		testutil.WithWeekdayRule(domain.WeekdayRule{Weekday: 1, DailyMin: 120, TheoryEnabled: true, QuestionsEnabled: true}),
		testutil.WithWeekdayRule(domain.WeekdayRule{Weekday: 7, DailyMin: 0}),
		testutil.WithExtrasDurations(30, 15, 20),
		testutil.WithAutoReview(7, 30),
		testutil.WithReserveBlock(45),
		testutil.WithRestPeriod("2026-12-24", "2026-12-26", "Holidays"),
		testutil.WithSubjectsPerDay(2),
	)
	require.NoError(t, repo.Save(ctx, p))
	assert.Equal(t, 1, p.Revision)
	assert.NotEmpty(t, p.RestPeriods[0].ID, "rest period gets an id")

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.SubjectsPerDay)
	assert.Equal(t, p.WeekdayRules, got.WeekdayRules)
	assert.Equal(t, p.Extras, got.Extras)
	assert.Equal(t, p.AutoReview, got.AutoReview)
	require.Len(t, got.RestPeriods, 1)
	assert.Equal(t, "2026-12-24", got.RestPeriods[0].Range.From.String())
	assert.Equal(t, "Holidays", got.RestPeriods[0].Label)
	assert.Equal(t, 1, got.Revision)
}

func TestProfileRepo_Save_ReplacesRulesAndBumpsRevision(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProfile("u1", testutil.WithDailyMinutes(60, 1, 2, 3))
	require.NoError(t, repo.Save(ctx, p))
	created := p.CreatedAt

	p.WeekdayRules = map[int]domain.WeekdayRule{5: {Weekday: 5, DailyMin: 90}}
	require.NoError(t, repo.Save(ctx, p))
	assert.Equal(t, 2, p.Revision)

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got.WeekdayRules, 1, "rules are replaced, not merged")
	assert.Equal(t, 90, got.WeekdayRules[5].DailyMin)
	assert.Equal(t, 2, got.Revision)
	assert.True(t, created.Equal(got.CreatedAt), "creation time is kept")
}

func TestProfileRepo_ProfilesAreUserScoped(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutil.NewTestProfile("u1", testutil.WithDailyMinutes(60, 1))))
	require.NoError(t, repo.Save(ctx, testutil.NewTestProfile("u2", testutil.WithDailyMinutes(90, 2))))

	got, err := repo.Get(ctx, "u2")
	require.NoError(t, err)
	_, hasMonday := got.WeekdayRules[1]
	assert.False(t, hasMonday)
	assert.Equal(t, 90, got.WeekdayRules[2].DailyMin)
}
