package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"credit-system/internal/api/handler/dto"
	"credit-system/internal/domain/credit"
	"credit-system/internal/pkg/apperrors"
)

type CreditHandler struct {
	service credit.CreditService
	logger  *slog.Logger
}

func NewCreditHandler(s credit.CreditService, l *slog.Logger) *CreditHandler {
	if s == nil {
		panic("credit service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CreditHandler{
		service: s,
		logger:  l.With("component", "CreditHandler"),
	}
}

func getCreditCodeFromURL(r *http.Request) (uuid.UUID, error) {
	codeStr := chi.URLParam(r, "creditCode")
	if codeStr == "" {
		return uuid.Nil, fmt.Errorf("%w: creditCode not found in URL path", apperrors.ErrInvalidArgument)
	}
	code, err := uuid.Parse(codeStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid creditCode format in URL path: %s", apperrors.ErrInvalidArgument, codeStr)
	}
	return code, nil
}

// IssueCredit handles POST /credits
// @Summary Request a new credit
// @Description Issues a new credit for an existing customer. The first installment must fall within the configured horizon from today.
// @Tags Credits
// @Accept json
// @Produce json
// @Param request body dto.CreditRequest true "Credit request payload"
// @Success 201 {object} dto.CreditResponse "Credit successfully issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload, unknown customer, or first installment out of range"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credits [post]
// @Security BearerAuth
func (h *CreditHandler) IssueCredit(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received issue credit request")

	var req dto.CreditRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if details := req.Validate(); len(details) > 0 {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("details", details))
		respondValidation(w, details)
		return
	}
	h.logger.DebugContext(r.Context(), "Request validation passed")

	issued, err := h.service.Issue(r.Context(), req.ToIssueInput())
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrBusiness) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to issue credit", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCreditResponse(issued)
	h.logger.InfoContext(r.Context(), "Credit issued successfully", slog.String("creditCode", resp.CreditCode.String()))
	respondJSON(w, http.StatusCreated, resp)
}

// ListCreditsByCustomer handles GET /credits?customerId=N
// @Summary List credits of a customer
// @Description Lists all credits issued to a customer, in issuance order. Unknown customers yield an empty list.
// @Tags Credits
// @Produce json
// @Param customerId query int true "Customer ID" Minimum(1)
// @Success 200 {array} dto.CreditSummaryResponse "List of credit summaries"
// @Failure 400 {object} dto.ErrorResponse "Invalid or missing customerId query parameter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credits [get]
// @Security BearerAuth
func (h *CreditHandler) ListCreditsByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromQuery(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from query", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received list credits request", slog.Int64("customerID", customerID))

	credits, err := h.service.FindAllByCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list credits", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.CreditSummaryResponse, len(credits))
	for i, cr := range credits {
		resp[i] = dto.NewCreditSummaryResponse(cr)
	}

	h.logger.InfoContext(r.Context(), "Credits listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// GetCreditByCode handles GET /credits/{creditCode}?customerId=N
// @Summary Retrieve a credit by its code
// @Description Retrieves a single credit by its credit code, scoped to the requesting customer.
// @Tags Credits
// @Produce json
// @Param creditCode path string true "Credit code (UUID)"
// @Param customerId query int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.CreditResponse "Credit details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters, unknown credit code, or credit owned by another customer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credits/{creditCode} [get]
// @Security BearerAuth
func (h *CreditHandler) GetCreditByCode(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromQuery(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from query", slog.Any("error", err))
		respondError(w, err)
		return
	}

	creditCode, err := getCreditCodeFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get credit code from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received get credit by code request",
		slog.Int64("customerID", customerID),
		slog.String("creditCode", creditCode.String()))

	detail, err := h.service.FindByCreditCode(r.Context(), customerID, creditCode)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrBusiness) && !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get credit by code", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCreditResponse(detail)
	h.logger.InfoContext(r.Context(), "Credit retrieved successfully", slog.String("creditCode", resp.CreditCode.String()))
	respondJSON(w, http.StatusOK, resp)
}
