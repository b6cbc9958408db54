package contract

import "github.com/alexanderramin/pauta/internal/app"

const DefaultUserID = app.DefaultUserID

type GenerateDailyPlanRequest = app.GenerateDailyPlanRequest

func NewGenerateDailyPlanRequest(userID, date string) GenerateDailyPlanRequest {
	return app.NewGenerateDailyPlanRequest(userID, date)
}

type RegenerateDailyPlanRequest = app.RegenerateDailyPlanRequest

func NewRegenerateDailyPlanRequest(userID, date string) RegenerateDailyPlanRequest {
	return app.NewRegenerateDailyPlanRequest(userID, date)
}

type DiscardDailyPlanRequest = app.DiscardDailyPlanRequest

func NewDiscardDailyPlanRequest(userID, date string) DiscardDailyPlanRequest {
	return app.NewDiscardDailyPlanRequest(userID, date)
}

type DailyPlanResponse = app.DailyPlanResponse
