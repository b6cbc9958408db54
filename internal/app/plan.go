package app

import "github.com/alexanderramin/pauta/internal/domain"

// DefaultUserID is used when a request does not name a user.
const DefaultUserID = "default"

type GenerateDailyPlanRequest struct {
	UserID string
	Date   string // YYYY-MM-DD
}

func NewGenerateDailyPlanRequest(userID, date string) GenerateDailyPlanRequest {
	return GenerateDailyPlanRequest{UserID: userOrDefault(userID), Date: date}
}

// RegenerateDailyPlanRequest replaces the stored plan of a future date.
// ConfirmApply must be set explicitly by the caller.
type RegenerateDailyPlanRequest struct {
	UserID       string
	Date         string
	ConfirmApply bool
}

func NewRegenerateDailyPlanRequest(userID, date string) RegenerateDailyPlanRequest {
	return RegenerateDailyPlanRequest{UserID: userOrDefault(userID), Date: date}
}

type DiscardDailyPlanRequest struct {
	UserID       string
	Date         string
	ConfirmApply bool
}

func NewDiscardDailyPlanRequest(userID, date string) DiscardDailyPlanRequest {
	return DiscardDailyPlanRequest{UserID: userOrDefault(userID), Date: date}
}

type DailyPlanResponse struct {
	Plan       *domain.DailyPlan
	SnapshotID string
	// Reused is true when a previously persisted plan was returned as is.
	Reused bool
	// Replaced is true when regeneration overwrote an existing plan.
	Replaced bool
}

func userOrDefault(userID string) string {
	if userID == "" {
		return DefaultUserID
	}
	return userID
}
