package service

import (
	"context"
	"time"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/repository"
)

type profileService struct {
	profiles repository.ProfileRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProfileService(profiles repository.ProfileRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProfileService {
	return &profileService{profiles: profiles, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *profileService) Get(ctx context.Context, userID string) (*domain.StudyProfile, error) {
	return loadProfile(ctx, s.profiles, userID)
}

// Save validates and stores p, advancing its revision.
func (s *profileService) Save(ctx context.Context, p *domain.StudyProfile) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": p.UserID}
	defer func() {
		fields["revision"] = p.Revision
		observe(ctx, s.observer, "save-profile", startedAt, fields, err)
	}()

	if err := p.Validate(); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProfileRepo(tx).Save(ctx, p)
	})
}
