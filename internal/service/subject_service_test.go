package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectService_AddAppendsToRotation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	civil, err := h.subjects.Add(ctx, testUser, "  Civil Law ", 600)
	require.NoError(t, err)
	penal, err := h.subjects.Add(ctx, testUser, "Penal Law", 0)
	require.NoError(t, err)

	assert.Equal(t, "Civil Law", civil.Name)
	assert.Equal(t, 0, civil.Position)
	assert.Equal(t, 1, penal.Position)
	assert.True(t, penal.Active)

	list, err := h.subjects.List(ctx, testUser, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, civil.ID, list[0].ID)
}

func TestSubjectService_AddRejects(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.subjects.Add(ctx, testUser, "   ", 60)
	requireCode(t, err, domain.CodeDomainViolation)
	_, err = h.subjects.Add(ctx, testUser, "Civil Law", -1)
	requireCode(t, err, domain.CodeDomainViolation)

	_, err = h.subjects.Add(ctx, testUser, "Civil Law", 60)
	require.NoError(t, err)
	_, err = h.subjects.Add(ctx, testUser, "Civil Law", 60)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.Equal(t, 1, h.countRows("subjects"))
}

func TestSubjectService_Deactivate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	civil := h.addSubject("Civil Law")
	h.addReview(civil, "2026-10-16", 30)

	_, err := h.subjects.Deactivate(ctx, testUser, "Tax Law")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := h.subjects.Deactivate(ctx, testUser, "Civil Law")
	require.NoError(t, err)
	assert.False(t, got.Active)

	again, err := h.subjects.Deactivate(ctx, testUser, "Civil Law")
	require.NoError(t, err)
	assert.False(t, again.Active)

	active, err := h.subjects.List(ctx, testUser, false)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := h.subjects.List(ctx, testUser, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.Equal(t, 1, h.countRows("review_ledger"), "reviews outlive their subject's rotation")
}
