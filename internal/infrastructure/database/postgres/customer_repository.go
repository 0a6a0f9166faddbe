package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"credit-system/internal/domain/customer"
	"credit-system/internal/infrastructure/monitoring"
	"credit-system/internal/pkg/apperrors"
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	if cust.ID == 0 {
		return r.createCustomer(ctx, cust)
	}
	return r.updateCustomer(ctx, cust)
}

func (r *CustomerRepository) createCustomer(ctx context.Context, cust *customer.Customer) error {
	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("cpf", cust.CPF))
	start := time.Now()

	query := `
        INSERT INTO customers (first_name, last_name, cpf, email, password, income, zip_code, street, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		cust.FirstName,
		cust.LastName,
		cust.CPF,
		cust.Email,
		cust.Password,
		numericFromDecimal(cust.Income),
		cust.Address.ZipCode,
		cust.Address.Street,
	).Scan(
		&cust.ID,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)

	if err != nil {
		monitoring.RecordDBQuery("customer_insert", "failure", time.Since(start))
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrConflict) {
			r.logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation", slog.String("cpf", cust.CPF))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("customer_insert", "success", time.Since(start))
	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) updateCustomer(ctx context.Context, cust *customer.Customer) error {
	r.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", cust.ID))
	start := time.Now()

	// CPF, email and password are immutable post-registration and stay out
	// of the update statement.
	query := `
        UPDATE customers
        SET first_name = $1,
            last_name = $2,
            income = $3,
            zip_code = $4,
            street = $5,
            updated_at = NOW()
        WHERE id = $6`

	cmdTag, err := r.db.Exec(ctx, query,
		cust.FirstName,
		cust.LastName,
		numericFromDecimal(cust.Income),
		cust.Address.ZipCode,
		cust.Address.Street,
		cust.ID,
	)

	if err != nil {
		monitoring.RecordDBQuery("customer_update", "failure", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	monitoring.RecordDBQuery("customer_update", "success", time.Since(start))
	r.logger.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	r.logger.DebugContext(ctx, "Attempting to find customer by ID", slog.Int64("customerID", customerID))
	start := time.Now()

	query := `
        SELECT id, first_name, last_name, cpf, email, password, income, zip_code, street, created_at, updated_at
        FROM customers
        WHERE id = $1`

	var cust customer.Customer
	var income pgtype.Numeric
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&cust.ID,
		&cust.FirstName,
		&cust.LastName,
		&cust.CPF,
		&cust.Email,
		&cust.Password,
		&income,
		&cust.Address.ZipCode,
		&cust.Address.Street,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)

	if err != nil {
		monitoring.RecordDBQuery("customer_find_by_id", "failure", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}

	cust.Income, err = decimalFromNumeric(income)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to convert income column", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to convert income: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("customer_find_by_id", "success", time.Since(start))
	r.logger.DebugContext(ctx, "Customer found successfully")
	return &cust, nil
}

// Delete removes the customer together with its credits. The original system
// relied on the mapping layer's cascade; here the cascade is explicit and
// transactional.
func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete customer and owned credits", slog.Int64("customerID", customerID))
	start := time.Now()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", rbErr))
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM credits WHERE customer_id = $1`, customerID); err != nil {
		monitoring.RecordDBQuery("customer_delete", "failure", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to delete owned credits", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete credits of customer: %w", apperrors.ErrDatabase, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		monitoring.RecordDBQuery("customer_delete", "failure", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		monitoring.RecordDBQuery("customer_delete", "failure", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("customer_delete", "success", time.Since(start))
	r.logger.InfoContext(ctx, "Customer deleted successfully")
	return nil
}
