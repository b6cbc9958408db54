package contract

import "github.com/alexanderramin/pauta/internal/app"

type ComputeReviewTasksRequest = app.ComputeReviewTasksRequest

func NewComputeReviewTasksRequest(userID, from, to string) ComputeReviewTasksRequest {
	return app.NewComputeReviewTasksRequest(userID, from, to)
}

type ComputeReviewTasksResponse = app.ComputeReviewTasksResponse
