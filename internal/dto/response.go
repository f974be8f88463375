package dto

import (
	"time"

	apperrors "snowrent/internal/errors"
)

type ErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationErrorResponse struct {
	TraceID string                       `json:"traceId,omitempty"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func NewErrorResponse(traceID string, status int, code, message string) ErrorResponse {
	return ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Message:   message,
		Code:      code,
		Timestamp: time.Now().UTC(),
	}
}

func NewValidationErrorResponse(traceID, message string, details ...apperrors.ValidationDetail) ValidationErrorResponse {
	if details == nil {
		details = []apperrors.ValidationDetail{}
	}
	return ValidationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	}
}
