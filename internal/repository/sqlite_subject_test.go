package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/pauta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectRepo_CreateListOrdering(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", testutil.NewTestSubject("Tax Law", testutil.WithPosition(1))))
	require.NoError(t, repo.Create(ctx, "u1", testutil.NewTestSubject("Civil Law", testutil.WithPosition(0))))
	require.NoError(t, repo.Create(ctx, "u1", testutil.NewTestSubject("Old", testutil.WithPosition(2), testutil.WithInactive())))
	require.NoError(t, repo.Create(ctx, "u2", testutil.NewTestSubject("Other user")))

	active, err := repo.List(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Civil Law", active[0].Name)
	assert.Equal(t, "Tax Law", active[1].Name)

	all, err := repo.List(ctx, "u1", true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	next, err := repo.NextPosition(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	next, err = repo.NextPosition(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, next)
}

func TestSubjectRepo_DuplicateName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", testutil.NewTestSubject("Civil Law")))
	err := repo.Create(ctx, "u1", testutil.NewTestSubject("Civil Law"))
	assert.ErrorIs(t, err, ErrDuplicate)

	assert.NoError(t, repo.Create(ctx, "u2", testutil.NewTestSubject("Civil Law")), "names are unique per user")
}

func TestSubjectRepo_UpdateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSubject("Civil Law", testutil.WithRemainingTheory(300))
	require.NoError(t, repo.Create(ctx, "u1", s))

	s.RemainingTheoryMin = 210
	s.Active = false
	require.NoError(t, repo.Update(ctx, "u1", s))

	got, err := repo.GetByID(ctx, "u1", s.ID)
	require.NoError(t, err)
	assert.Equal(t, 210, got.RemainingTheoryMin)
	assert.False(t, got.Active)

	byName, err := repo.GetByName(ctx, "u1", "Civil Law")
	require.NoError(t, err)
	assert.Equal(t, s.ID, byName.ID)

	_, err = repo.GetByID(ctx, "u2", s.ID)
	assert.ErrorIs(t, err, ErrNotFound, "other users cannot see the subject")

	missing := testutil.NewTestSubject("Ghost")
	assert.ErrorIs(t, repo.Update(ctx, "u1", missing), ErrNotFound)
}
