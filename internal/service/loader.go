package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/ledger"
	"github.com/alexanderramin/pauta/internal/repository"
)

// ContextLoader assembles the PlanningContext of one (user, date).
type ContextLoader struct {
	profiles   repository.ProfileRepo
	subjects   repository.SubjectRepo
	reviews    repository.ReviewLedgerRepo
	executions repository.ExecutionRepo
}

func NewContextLoader(
	profiles repository.ProfileRepo,
	subjects repository.SubjectRepo,
	reviews repository.ReviewLedgerRepo,
	executions repository.ExecutionRepo,
) *ContextLoader {
	return &ContextLoader{
		profiles:   profiles,
		subjects:   subjects,
		reviews:    reviews,
		executions: executions,
	}
}

// newSQLiteContextLoader builds a loader whose repositories all run on conn.
func newSQLiteContextLoader(conn db.DBTX) *ContextLoader {
	return NewContextLoader(
		repository.NewSQLiteProfileRepo(conn),
		repository.NewSQLiteSubjectRepo(conn),
		repository.NewSQLiteReviewLedgerRepo(conn),
		repository.NewSQLiteExecutionRepo(conn),
	)
}

// Load reads the profile, the active subjects, the reviews still owed on
// date and whether the date was already executed. A missing profile is
// MISSING_PROFILE; no defaults are invented.
func (cl *ContextLoader) Load(ctx context.Context, userID string, date, today domain.CalendarDate) (*domain.PlanningContext, error) {
	profile, err := loadProfile(ctx, cl.profiles, userID)
	if err != nil {
		return nil, err
	}

	subjects, err := cl.subjects.List(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("loading subjects: %w", err)
	}

	entries, err := cl.reviews.ListInRange(ctx, userID, domain.DateRange{From: date, To: date})
	if err != nil {
		return nil, fmt.Errorf("loading review ledger: %w", err)
	}
	due, err := ledger.Tasks(ledger.DueOn(entries, date, today))
	if err != nil {
		return nil, err
	}

	executed, err := cl.executions.Exists(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("checking execution: %w", err)
	}

	return &domain.PlanningContext{
		UserID:              userID,
		Date:                date,
		Today:               today,
		Profile:             *profile,
		Subjects:            subjects,
		DueReviewTasks:      due,
		HasExecutionForDate: executed,
	}, nil
}

func loadProfile(ctx context.Context, profiles repository.ProfileRepo, userID string) (*domain.StudyProfile, error) {
	profile, err := profiles.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Errorf(domain.CodeMissingProfile, "no study profile for user %q", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return profile, nil
}

func parseDate(field, s string) (domain.CalendarDate, error) {
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.CalendarDate{}, domain.Errorf(domain.CodeDomainViolation, "%s: %v", field, err)
	}
	return d, nil
}
