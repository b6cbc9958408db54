package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduledEntry() *ReviewEntry {
	return &ReviewEntry{
		ID:            "rev-1",
		SubjectID:     "s1",
		SubjectName:   "Constitutional Law",
		OriginDate:    MustParseDate("2026-10-05"),
		ScheduledDate: MustParseDate("2026-10-12"),
		Duration:      Minutes(30),
		Status:        ReviewScheduled,
	}
}

func TestReviewEntry_DueAndLapsed(t *testing.T) {
	r := scheduledEntry()
	assert.True(t, r.IsDueOn(MustParseDate("2026-10-12")))
	assert.False(t, r.IsDueOn(MustParseDate("2026-10-13")))
	assert.False(t, r.IsLapsed(MustParseDate("2026-10-12")))
	assert.True(t, r.IsLapsed(MustParseDate("2026-10-13")))
}

func TestReviewEntry_MissedIsTerminal(t *testing.T) {
	r := scheduledEntry()
	require.NoError(t, r.MarkMissed(time.Now()))
	assert.Equal(t, ReviewMissed, r.Status)

	assert.False(t, r.IsDueOn(r.ScheduledDate), "missed entries are never due")
	assert.False(t, r.IsLapsed(MustParseDate("2030-01-01")))
	assert.ErrorIs(t, r.MarkExecuted(r.ScheduledDate, time.Now()), ErrDomainViolation)
	assert.ErrorIs(t, r.MarkMissed(time.Now()), ErrDomainViolation)
}

func TestReviewEntry_ExecuteOnlyOnScheduledDate(t *testing.T) {
	r := scheduledEntry()
	assert.ErrorIs(t, r.MarkExecuted(MustParseDate("2026-10-13"), time.Now()), ErrDomainViolation)
	require.NoError(t, r.MarkExecuted(MustParseDate("2026-10-12"), time.Now()))
	assert.Equal(t, ReviewExecuted, r.Status)
	assert.Equal(t, "2026-10-12", r.ExecutedOn.String())
}

func TestReviewEntry_Task(t *testing.T) {
	task, err := scheduledEntry().Task()
	require.NoError(t, err)
	assert.Equal(t, TaskReview, task.Type)
	assert.Equal(t, "Review: Constitutional Law", task.Label)
	require.NotNil(t, task.ReviewLink)
	assert.Equal(t, "2026-10-12", task.ReviewLink.DueDate.String())
	assert.Equal(t, "s1", task.SubjectID)
}

func TestError_FormatAndMatching(t *testing.T) {
	err := Errorf(CodeInfeasiblePlan, "needs %d", 150)
	assert.Equal(t, "INFEASIBLE_PLAN: needs 150", err.Error())
	assert.ErrorIs(t, err, ErrInfeasiblePlan)
	assert.NotErrorIs(t, err, ErrDomainViolation)
	assert.Equal(t, CodeInfeasiblePlan, CodeOf(err))
	assert.Equal(t, ErrorCode(""), CodeOf(assert.AnError))
}
