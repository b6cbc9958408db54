package app

import (
	"context"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/importer"
)

type GenerateDailyPlanUseCase interface {
	Generate(ctx context.Context, req GenerateDailyPlanRequest) (*DailyPlanResponse, error)
}

type RegenerateDailyPlanUseCase interface {
	Regenerate(ctx context.Context, req RegenerateDailyPlanRequest) (*DailyPlanResponse, error)
}

type RecordExecutionUseCase interface {
	Record(ctx context.Context, req RecordExecutionRequest) (*RecordExecutionResponse, error)
}

type ComputeReviewTasksUseCase interface {
	Compute(ctx context.Context, req ComputeReviewTasksRequest) (*ComputeReviewTasksResponse, error)
}

type CalendarProjectionUseCase interface {
	Project(ctx context.Context, req CalendarProjectionRequest) (*CalendarProjectionResponse, error)
}

type ImportResult struct {
	Profile      *domain.StudyProfile
	SubjectCount int
	Created      int
	Updated      int
}

type ImportProfileUseCase interface {
	ImportProfile(ctx context.Context, userID, filePath string) (*ImportResult, error)
	ImportProfileFromSchema(ctx context.Context, userID string, schema *importer.ProfileSchema) (*ImportResult, error)
}
