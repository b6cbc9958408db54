package app

import "github.com/alexanderramin/pauta/internal/domain"

// CalendarProjectionRequest asks for a simulated plan per date. Persisted
// plans are only reused when IncludePersistedPlans is set.
type CalendarProjectionRequest struct {
	UserID                string
	From                  string
	To                    string
	IncludePersistedPlans bool
}

func NewCalendarProjectionRequest(userID, from, to string) CalendarProjectionRequest {
	return CalendarProjectionRequest{UserID: userOrDefault(userID), From: from, To: to}
}

type CalendarProjectionResponse struct {
	Projection     *domain.CalendarProjection
	PersistedDates []domain.CalendarDate
	ExecutedDates  []domain.CalendarDate
}
