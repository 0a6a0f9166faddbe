package credit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"credit-system/internal/domain/customer"
	"credit-system/internal/event"
	"credit-system/internal/infrastructure/monitoring"
	"credit-system/internal/pkg/apperrors"
)

type IssueInput struct {
	CreditValue          decimal.Decimal
	DayFirstInstallment  time.Time
	NumberOfInstallments int
	CustomerID           int64
}

// CreditDetail pairs a credit with its owning customer for views that
// surface customer attributes next to the credit.
type CreditDetail struct {
	Credit   *Credit
	Customer *customer.Customer
}

type CreditService interface {
	Issue(ctx context.Context, input IssueInput) (*CreditDetail, error)

	FindAllByCustomer(ctx context.Context, customerID int64) ([]*Credit, error)

	FindByCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*CreditDetail, error)
}

var _ CreditService = (*creditService)(nil)

type creditService struct {
	repo            CreditRepository
	customerService customer.CustomerService
	pub             event.Publisher
	horizonMonths   int
	logger          *slog.Logger
}

func NewCreditService(repo CreditRepository, cs customer.CustomerService, pub event.Publisher, horizonMonths int, logger *slog.Logger) CreditService {
	if repo == nil {
		panic("credit repository cannot be nil")
	}
	if cs == nil {
		panic("customer service cannot be nil")
	}
	if horizonMonths <= 0 {
		horizonMonths = DefaultFirstInstallmentHorizonMonths
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCreditService, using default stderr handler")
	}

	return &creditService{
		repo:            repo,
		customerService: cs,
		pub:             pub,
		horizonMonths:   horizonMonths,
		logger:          logger.With(slog.String("component", "creditService")),
	}
}

func (s *creditService) Issue(ctx context.Context, input IssueInput) (*CreditDetail, error) {
	logCtx := s.logger.With(slog.Int64("customerID", input.CustomerID))
	logCtx.InfoContext(ctx, "Attempting to issue new credit")

	if !FirstInstallmentWithinHorizon(input.DayFirstInstallment, s.horizonMonths, time.Now()) {
		logCtx.WarnContext(ctx, "Business rule failed: first installment date beyond horizon",
			slog.Time("dayFirstInstallment", input.DayFirstInstallment),
			slog.Int("horizonMonths", s.horizonMonths))
		monitoring.RecordCreditIssued("rejected_date")
		return nil, apperrors.NewBusinessError("Invalid Date")
	}

	cust, err := s.customerService.FindByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found for credit issuance", slog.Any("error", err))
			monitoring.RecordCreditIssued("customer_not_found")
			return nil, err
		}
		logCtx.ErrorContext(ctx, "Failed to resolve owning customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}

	cr := NewCredit(input.CreditValue, input.DayFirstInstallment, input.NumberOfInstallments, cust.ID)

	if err := s.repo.Save(ctx, cr); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save credit", slog.Any("error", err))
		monitoring.RecordCreditIssued("failure_internal")
		return nil, fmt.Errorf("failed to save credit: %w", err)
	}

	monitoring.RecordCreditIssued("success")
	logCtx.InfoContext(ctx, "Credit issued successfully",
		slog.Int64("creditID", cr.ID),
		slog.String("creditCode", cr.CreditCode.String()))

	s.publishCreditIssued(ctx, cr, cust)
	return &CreditDetail{Credit: cr, Customer: cust}, nil
}

func (s *creditService) FindAllByCustomer(ctx context.Context, customerID int64) ([]*Credit, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.DebugContext(ctx, "Listing credits by customer")

	credits, err := s.repo.FindAllByCustomerID(ctx, customerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error listing credits", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list credits for customer %d: %w", customerID, err)
	}

	logCtx.DebugContext(ctx, "Successfully listed credits", slog.Int("count", len(credits)))
	return credits, nil
}

func (s *creditService) FindByCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*CreditDetail, error) {
	logCtx := s.logger.With(
		slog.Int64("customerID", customerID),
		slog.String("creditCode", creditCode.String()))
	logCtx.DebugContext(ctx, "Looking up credit by code")

	cr, err := s.repo.FindByCreditCode(ctx, creditCode)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Credit code not found")
			return nil, apperrors.NewBusinessError("Creditcode %s not found", creditCode)
		}
		logCtx.ErrorContext(ctx, "Repository error finding credit by code", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get credit by code %s: %w", creditCode, err)
	}

	if !cr.OwnedBy(customerID) {
		// Deliberately vague: another customer's credit must not be
		// confirmed to exist by a plain not-found.
		logCtx.WarnContext(ctx, "Credit code belongs to a different customer")
		return nil, apperrors.NewBusinessError("Contact admin")
	}

	cust, err := s.customerService.FindByID(ctx, cr.CustomerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to resolve owning customer for credit", slog.Any("error", err))
		return nil, fmt.Errorf("failed to resolve customer %d for credit %s: %w", cr.CustomerID, creditCode, err)
	}

	logCtx.DebugContext(ctx, "Successfully retrieved credit by code")
	return &CreditDetail{Credit: cr, Customer: cust}, nil
}

func (s *creditService) publishCreditIssued(ctx context.Context, cr *Credit, cust *customer.Customer) {
	if s.pub == nil {
		return
	}
	evt := event.NewCreditIssuedEvent(cr.ID, cr.CreditCode.String(), cust.ID, cr.CreditValue.String())
	if err := s.pub.PublishCreditIssued(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Credit issued, but FAILED to publish issuance event", slog.Any("error", err))
	}
}
