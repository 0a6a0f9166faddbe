package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"credit-system/internal/api/handler/dto"
	"credit-system/internal/pkg/apperrors"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondValidation answers a request whose payload failed validation,
// listing every failed field in the details.
func respondValidation(w http.ResponseWriter, details []string) {
	resp := dto.NewErrorResponse(dto.TitleBadRequest, http.StatusBadRequest, dto.ExceptionValidation, details)
	respondJSON(w, http.StatusBadRequest, resp)
}

// respondError translates a domain error into the error envelope. Missing
// identities answer 400 rather than 404: the id is treated as bad client
// input, not as an unroutable resource.
func respondError(w http.ResponseWriter, err error) {
	var (
		status    = http.StatusInternalServerError
		title     = dto.TitleInternal
		exception = dto.ExceptionInternal
		details   = []string{"An unexpected error occurred."}
	)

	var notFoundErr *apperrors.NotFoundError
	var businessErr *apperrors.BusinessError
	var validationErr *apperrors.ValidationError

	switch {
	case errors.As(err, &notFoundErr):
		status, title, exception = http.StatusBadRequest, dto.TitleBadRequest, dto.ExceptionNotFound
		details = []string{notFoundErr.Message}
	case errors.Is(err, apperrors.ErrNotFound):
		status, title, exception = http.StatusBadRequest, dto.TitleBadRequest, dto.ExceptionNotFound
		details = []string{err.Error()}
	case errors.Is(err, apperrors.ErrConflict):
		status, title, exception = http.StatusConflict, dto.TitleConflict, dto.ExceptionConflict
		details = []string{err.Error()}
	case errors.As(err, &businessErr):
		status, title, exception = http.StatusBadRequest, dto.TitleBadRequest, dto.ExceptionBusiness
		details = []string{businessErr.Message}
	case errors.Is(err, apperrors.ErrBusiness):
		status, title, exception = http.StatusBadRequest, dto.TitleBadRequest, dto.ExceptionBusiness
		details = []string{err.Error()}
	case errors.As(err, &validationErr):
		status, title, exception = http.StatusBadRequest, dto.TitleBadRequest, dto.ExceptionValidation
		details = []string{validationErr.Message}
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidArgument):
		status, title, exception = http.StatusBadRequest, dto.TitleBadRequest, dto.ExceptionValidation
		details = []string{err.Error()}
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.NewErrorResponse(title, status, exception, details)
	respondJSON(w, status, resp)
}
