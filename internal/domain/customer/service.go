package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"credit-system/internal/event"
	"credit-system/internal/infrastructure/monitoring"
	"credit-system/internal/pkg/apperrors"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	CPF       string
	Email     string
	Password  string
	Income    decimal.Decimal
	ZipCode   string
	Street    string
}

// UpdateInput carries the mutable fields only; everything else is frozen at
// registration.
type UpdateInput struct {
	FirstName string
	LastName  string
	ZipCode   string
	Street    string
	Income    decimal.Decimal
}

type CustomerService interface {
	Register(ctx context.Context, input RegisterInput) (*Customer, error)

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	Update(ctx context.Context, customerID int64, input UpdateInput) (*Customer, error)

	Delete(ctx context.Context, customerID int64) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.Publisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, pub event.Publisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) Register(ctx context.Context, input RegisterInput) (*Customer, error) {
	logCtx := s.logger.With(slog.String("cpf", input.CPF))
	logCtx.InfoContext(ctx, "Attempting to register new customer")

	cust := NewCustomer(input.FirstName, input.LastName, input.CPF, input.Email, input.Password, input.Income, Address{
		ZipCode: input.ZipCode,
		Street:  input.Street,
	})

	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// CPF uniqueness is enforced by the store; pass the conflict
			// through untouched.
			logCtx.WarnContext(ctx, "CPF already registered", slog.Any("error", err))
			return nil, err
		}
		logCtx.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	monitoring.RecordCustomerRegistered()
	logCtx = logCtx.With(slog.Int64("customerID", cust.ID))
	logCtx.InfoContext(ctx, "Successfully registered new customer")

	s.publishCustomerCreated(ctx, cust)
	return cust, nil
}

func (s *customerService) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.DebugContext(ctx, "Attempting to find customer by ID")

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by repository")
			return nil, apperrors.NewNotFoundError("Id %d not found", customerID)
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	logCtx.DebugContext(ctx, "Successfully retrieved customer")
	return cust, nil
}

func (s *customerService) Update(ctx context.Context, customerID int64, input UpdateInput) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	cust, err := s.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cust.ApplyUpdate(input.FirstName, input.LastName, input.ZipCode, input.Street, input.Income)

	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			logCtx.ErrorContext(ctx, "Customer disappeared before save completed")
			return nil, apperrors.NewNotFoundError("Id %d not found", customerID)
		}
		logCtx.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save updated customer %d: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Successfully updated customer")
	return cust, nil
}

func (s *customerService) Delete(ctx context.Context, customerID int64) error {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to delete customer")

	cust, err := s.FindByID(ctx, customerID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer disappeared before delete completed")
			return apperrors.NewNotFoundError("Id %d not found", customerID)
		}
		logCtx.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Successfully deleted customer and owned credits")

	s.publishCustomerDeleted(ctx, cust)
	return nil
}

func (s *customerService) publishCustomerCreated(ctx context.Context, cust *Customer) {
	if s.pub == nil {
		return
	}
	evt := event.NewCustomerCreatedEvent(cust.ID, cust.CPF, cust.Email)
	if err := s.pub.PublishCustomerCreated(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Customer registered, but FAILED to publish creation event", slog.Any("error", err))
	}
}

func (s *customerService) publishCustomerDeleted(ctx context.Context, cust *Customer) {
	if s.pub == nil {
		return
	}
	evt := event.NewCustomerDeletedEvent(cust.ID, cust.CPF)
	if err := s.pub.PublishCustomerDeleted(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Customer deleted, but FAILED to publish deletion event", slog.Any("error", err))
	}
}
