package dto

import "time"

// Error-kind labels surfaced in the "exception" field so clients can
// branch on the category without parsing messages.
const (
	ExceptionValidation = "VALIDATION"
	ExceptionNotFound   = "NOT_FOUND"
	ExceptionConflict   = "CONFLICT"
	ExceptionBusiness   = "BUSINESS"
	ExceptionInternal   = "INTERNAL"
)

const (
	TitleBadRequest = "Bad Request! Consult the documentation"
	TitleConflict   = "Conflict! Consult the documentation"
	TitleInternal   = "Internal Server Error! Consult the documentation"
)

type ErrorResponse struct {
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Exception string    `json:"exception"`
	Details   []string  `json:"details"`
}

func NewErrorResponse(title string, status int, exception string, details []string) ErrorResponse {
	if len(details) == 0 {
		details = []string{"no further details"}
	}
	return ErrorResponse{
		Title:     title,
		Timestamp: time.Now().UTC(),
		Status:    status,
		Exception: exception,
		Details:   details,
	}
}
