package contract

import "github.com/alexanderramin/pauta/internal/app"

type RecordExecutionRequest = app.RecordExecutionRequest

func NewRecordExecutionRequest(userID, date string) RecordExecutionRequest {
	return app.NewRecordExecutionRequest(userID, date)
}

type RecordExecutionResponse = app.RecordExecutionResponse
