package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/google/uuid"
)

type subjectService struct {
	subjects repository.SubjectRepo
	uow      db.UnitOfWork
}

func NewSubjectService(subjects repository.SubjectRepo, uow db.UnitOfWork) SubjectService {
	return &subjectService{subjects: subjects, uow: uow}
}

// Add creates an active subject at the end of the rotation order.
func (s *subjectService) Add(ctx context.Context, userID, name string, theoryMin int) (*domain.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Errorf(domain.CodeDomainViolation, "subject name is required")
	}
	if theoryMin < 0 {
		return nil, domain.Errorf(domain.CodeDomainViolation, "theory minutes must be >= 0, got %d", theoryMin)
	}

	now := time.Now().UTC()
	subject := &domain.Subject{
		ID:                 uuid.New().String(),
		Name:               name,
		RemainingTheoryMin: theoryMin,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		subjects := repository.NewSQLiteSubjectRepo(tx)
		pos, err := subjects.NextPosition(ctx, userID)
		if err != nil {
			return err
		}
		subject.Position = pos
		return subjects.Create(ctx, userID, subject)
	})
	if err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) List(ctx context.Context, userID string, includeInactive bool) ([]domain.Subject, error) {
	return s.subjects.List(ctx, userID, includeInactive)
}

// Deactivate removes a subject from theory allocation. Its reviews stay in
// the ledger.
func (s *subjectService) Deactivate(ctx context.Context, userID, name string) (*domain.Subject, error) {
	subject, err := s.subjects.GetByName(ctx, userID, strings.TrimSpace(name))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("no subject named %q: %w", name, err)
	}
	if err != nil {
		return nil, err
	}
	if !subject.Active {
		return subject, nil
	}
	subject.Active = false
	subject.UpdatedAt = time.Now().UTC()
	if err := s.subjects.Update(ctx, userID, subject); err != nil {
		return nil, err
	}
	return subject, nil
}
