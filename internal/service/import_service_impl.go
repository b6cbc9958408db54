package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pauta/internal/app"
	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/importer"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	uow db.UnitOfWork
}

func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

func (s *importService) ImportProfile(ctx context.Context, userID, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadProfileSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, userID, schema)
}

func (s *importService) ImportProfileFromSchema(ctx context.Context, userID string, schema *importer.ProfileSchema) (*app.ImportResult, error) {
	return s.importSchema(ctx, userID, schema)
}

// importSchema replaces the profile and creates or updates the declared
// subjects in one transaction.
func (s *importService) importSchema(ctx context.Context, userID string, schema *importer.ProfileSchema) (*app.ImportResult, error) {
	if errs := importer.ValidateProfileSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(schema, userID)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	result := &app.ImportResult{Profile: converted.Profile, SubjectCount: len(converted.Subjects)}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProfileRepo(tx).Save(ctx, converted.Profile); err != nil {
			return fmt.Errorf("saving profile: %w", err)
		}

		subjects := repository.NewSQLiteSubjectRepo(tx)
		now := time.Now().UTC()
		for _, cs := range converted.Subjects {
			existing, err := subjects.GetByName(ctx, userID, cs.Name)
			switch {
			case err == nil:
				existing.RemainingTheoryMin = cs.TheoryMin
				existing.Active = cs.Active
				existing.UpdatedAt = now
				if err := subjects.Update(ctx, userID, existing); err != nil {
					return fmt.Errorf("updating subject %q: %w", cs.Name, err)
				}
				result.Updated++
			case errors.Is(err, repository.ErrNotFound):
				pos, err := subjects.NextPosition(ctx, userID)
				if err != nil {
					return err
				}
				subject := &domain.Subject{
					ID:                 uuid.New().String(),
					Name:               cs.Name,
					Position:           pos,
					RemainingTheoryMin: cs.TheoryMin,
					Active:             cs.Active,
					CreatedAt:          now,
					UpdatedAt:          now,
				}
				if err := subjects.Create(ctx, userID, subject); err != nil {
					return fmt.Errorf("creating subject %q: %w", cs.Name, err)
				}
				result.Created++
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
