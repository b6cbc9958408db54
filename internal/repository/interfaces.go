package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
)

// StoredPlan is a persisted daily plan with its storage metadata.
type StoredPlan struct {
	ID         string
	Plan       *domain.DailyPlan
	SnapshotID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ProfileRepo interface {
	Get(ctx context.Context, userID string) (*domain.StudyProfile, error)
	// Save replaces the profile, its weekday rules and rest periods, and
	// advances p.Revision.
	Save(ctx context.Context, p *domain.StudyProfile) error
}

type SubjectRepo interface {
	Create(ctx context.Context, userID string, s *domain.Subject) error
	GetByID(ctx context.Context, userID, id string) (*domain.Subject, error)
	GetByName(ctx context.Context, userID, name string) (*domain.Subject, error)
	List(ctx context.Context, userID string, includeInactive bool) ([]domain.Subject, error)
	Update(ctx context.Context, userID string, s *domain.Subject) error
	NextPosition(ctx context.Context, userID string) (int, error)
}

// ReviewLedgerRepo stores review obligations. Entries are created once and
// only move forward: SCHEDULED to EXECUTED or SCHEDULED to MISSED.
type ReviewLedgerRepo interface {
	ListInRange(ctx context.Context, userID string, rng domain.DateRange) ([]*domain.ReviewEntry, error)
	ListScheduledBefore(ctx context.Context, userID string, date domain.CalendarDate) ([]*domain.ReviewEntry, error)
	GetByID(ctx context.Context, userID, id string) (*domain.ReviewEntry, error)
	// UpsertScheduled inserts e unless an entry already exists for the same
	// (user, subject, origin date). It reports whether a row was created.
	UpsertScheduled(ctx context.Context, userID string, e *domain.ReviewEntry) (bool, error)
	MarkExecuted(ctx context.Context, userID, id string, on domain.CalendarDate, now time.Time) error
	MarkMissed(ctx context.Context, userID, id string, now time.Time) error
}

type DailyPlanRepo interface {
	Upsert(ctx context.Context, userID string, plan *domain.DailyPlan, snapshotID string) error
	GetByDate(ctx context.Context, userID string, date domain.CalendarDate) (*StoredPlan, error)
	ListInRange(ctx context.Context, userID string, rng domain.DateRange) ([]*StoredPlan, error)
	DeleteByDate(ctx context.Context, userID string, date domain.CalendarDate) error
}

// ExecutionRepo has no update method: an executed day is written once.
type ExecutionRepo interface {
	Insert(ctx context.Context, userID string, e *domain.ExecutedDay) error
	GetByDate(ctx context.Context, userID string, date domain.CalendarDate) (*domain.ExecutedDay, error)
	Exists(ctx context.Context, userID string, date domain.CalendarDate) (bool, error)
	ListDatesInRange(ctx context.Context, userID string, rng domain.DateRange) ([]domain.CalendarDate, error)
}
