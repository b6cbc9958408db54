package service

import (
	"context"

	"github.com/alexanderramin/pauta/internal/app"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/importer"
)

type PlanService interface {
	Generate(ctx context.Context, req app.GenerateDailyPlanRequest) (*app.DailyPlanResponse, error)
	Regenerate(ctx context.Context, req app.RegenerateDailyPlanRequest) (*app.DailyPlanResponse, error)
	Discard(ctx context.Context, req app.DiscardDailyPlanRequest) error
}

type ExecutionService interface {
	Record(ctx context.Context, req app.RecordExecutionRequest) (*app.RecordExecutionResponse, error)
	GetByDate(ctx context.Context, userID, date string) (*domain.ExecutedDay, error)
}

type ReviewService interface {
	Compute(ctx context.Context, req app.ComputeReviewTasksRequest) (*app.ComputeReviewTasksResponse, error)
}

type ProjectionService interface {
	Project(ctx context.Context, req app.CalendarProjectionRequest) (*app.CalendarProjectionResponse, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.StudyProfile, error)
	Save(ctx context.Context, p *domain.StudyProfile) error
}

type SubjectService interface {
	Add(ctx context.Context, userID, name string, theoryMin int) (*domain.Subject, error)
	List(ctx context.Context, userID string, includeInactive bool) ([]domain.Subject, error)
	Deactivate(ctx context.Context, userID, name string) (*domain.Subject, error)
}

type ImportService interface {
	ImportProfile(ctx context.Context, userID, filePath string) (*app.ImportResult, error)
	ImportProfileFromSchema(ctx context.Context, userID string, schema *importer.ProfileSchema) (*app.ImportResult, error)
}

var (
	_ app.GenerateDailyPlanUseCase   = PlanService(nil)
	_ app.RegenerateDailyPlanUseCase = PlanService(nil)
	_ app.RecordExecutionUseCase     = ExecutionService(nil)
	_ app.ComputeReviewTasksUseCase  = ReviewService(nil)
	_ app.CalendarProjectionUseCase  = ProjectionService(nil)
	_ app.ImportProfileUseCase       = ImportService(nil)
)
