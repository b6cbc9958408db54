package app

import "github.com/alexanderramin/pauta/internal/domain"

type ComputeReviewTasksRequest struct {
	UserID string
	From   string
	To     string
}

func NewComputeReviewTasksRequest(userID, from, to string) ComputeReviewTasksRequest {
	return ComputeReviewTasksRequest{UserID: userOrDefault(userID), From: from, To: to}
}

type ComputeReviewTasksResponse struct {
	Range   domain.DateRange
	Tasks   []domain.PlannedTask
	Entries []*domain.ReviewEntry
	// MarkedMissed counts entries closed as missed by this call.
	MarkedMissed int
}
