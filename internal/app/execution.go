package app

import "github.com/alexanderramin/pauta/internal/domain"

// RecordExecutionRequest reports what was actually studied on Date.
// Completed items without an entry in ActualMinByTask count their planned
// minutes; items not completed count zero unless given.
type RecordExecutionRequest struct {
	UserID           string
	Date             string
	CompletedTaskIDs []string
	ActualMinByTask  map[string]int
}

func NewRecordExecutionRequest(userID, date string) RecordExecutionRequest {
	return RecordExecutionRequest{
		UserID:          userOrDefault(userID),
		Date:            date,
		ActualMinByTask: map[string]int{},
	}
}

type RecordExecutionResponse struct {
	Execution  *domain.ExecutedDay
	SnapshotID string
	// ScheduledReviews are the ledger entries created by completed theory.
	ScheduledReviews []*domain.ReviewEntry
	ExecutedReviews  []string
	// LapsedReviews were completed but had already been closed as missed.
	LapsedReviews []string
}
