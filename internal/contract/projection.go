package contract

import "github.com/alexanderramin/pauta/internal/app"

type CalendarProjectionRequest = app.CalendarProjectionRequest

func NewCalendarProjectionRequest(userID, from, to string) CalendarProjectionRequest {
	return app.NewCalendarProjectionRequest(userID, from, to)
}

type CalendarProjectionResponse = app.CalendarProjectionResponse

type ImportResult = app.ImportResult
