package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"credit-system/internal/domain/credit"
	"credit-system/internal/infrastructure/monitoring"
	"credit-system/internal/pkg/apperrors"
)

type CreditRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ credit.CreditRepository = (*CreditRepository)(nil)

func NewCreditRepository(db DBPool, logger *slog.Logger) *CreditRepository {
	if db == nil {
		panic("DBPool cannot be nil for CreditRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCreditRepository, using default stderr handler")
	}
	return &CreditRepository{
		db:     db,
		logger: logger.With("component", "CreditRepository"),
	}
}

func (r *CreditRepository) Save(ctx context.Context, cr *credit.Credit) error {
	if cr == nil {
		return fmt.Errorf("%w: credit cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new credit",
		slog.String("creditCode", cr.CreditCode.String()),
		slog.Int64("customerID", cr.CustomerID))
	start := time.Now()

	query := `
        INSERT INTO credits (credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		cr.CreditCode,
		numericFromDecimal(cr.CreditValue),
		cr.DayFirstInstallment,
		cr.NumberOfInstallments,
		string(cr.Status),
		cr.CustomerID,
	).Scan(
		&cr.ID,
		&cr.CreatedAt,
		&cr.UpdatedAt,
	)

	if err != nil {
		monitoring.RecordDBQuery("credit_insert", "failure", time.Since(start))
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrConflict) {
			r.logger.WarnContext(ctx, "Failed to insert credit due to unique constraint violation",
				slog.String("creditCode", cr.CreditCode.String()))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert credit", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert credit: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("credit_insert", "success", time.Since(start))
	r.logger.InfoContext(ctx, "Credit inserted successfully", slog.Int64("creditID", cr.ID))
	return nil
}

func (r *CreditRepository) FindByCreditCode(ctx context.Context, creditCode uuid.UUID) (*credit.Credit, error) {
	r.logger.DebugContext(ctx, "Attempting to find credit by code", slog.String("creditCode", creditCode.String()))
	start := time.Now()

	query := `
        SELECT id, credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at
        FROM credits
        WHERE credit_code = $1`

	cr, err := r.scanCredit(r.db.QueryRow(ctx, query, creditCode))
	if err != nil {
		monitoring.RecordDBQuery("credit_find_by_code", "failure", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Credit not found by code")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan credit by code", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get credit by code: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("credit_find_by_code", "success", time.Since(start))
	r.logger.DebugContext(ctx, "Credit found successfully")
	return cr, nil
}

func (r *CreditRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]*credit.Credit, error) {
	r.logger.DebugContext(ctx, "Attempting to find credits by customer ID", slog.Int64("customerID", customerID))
	start := time.Now()

	query := `
        SELECT id, credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at
        FROM credits
        WHERE customer_id = $1
        ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		monitoring.RecordDBQuery("credit_find_all_by_customer", "failure", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to query credits", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query credits: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	credits := make([]*credit.Credit, 0)
	for rows.Next() {
		cr, err := r.scanCredit(rows)
		if err != nil {
			monitoring.RecordDBQuery("credit_find_all_by_customer", "failure", time.Since(start))
			r.logger.ErrorContext(ctx, "Failed to scan credit row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan credit row: %w", apperrors.ErrDatabase, err)
		}
		credits = append(credits, cr)
	}

	if err = rows.Err(); err != nil {
		monitoring.RecordDBQuery("credit_find_all_by_customer", "failure", time.Since(start))
		r.logger.ErrorContext(ctx, "Error iterating credit rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating credit rows: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("credit_find_all_by_customer", "success", time.Since(start))
	r.logger.DebugContext(ctx, "Finished finding credits", slog.Int("count", len(credits)))
	return credits, nil
}

// CountOverdueInProgress counts credits still IN_PROGRESS whose first
// installment day has already passed. Used by the overdue review batch job.
func (r *CreditRepository) CountOverdueInProgress(ctx context.Context, asOf time.Time) (int, error) {
	r.logger.DebugContext(ctx, "Counting overdue in-progress credits")
	start := time.Now()

	query := `SELECT COUNT(*) FROM credits WHERE status = $1 AND day_first_installment < $2`

	var count int
	err := r.db.QueryRow(ctx, query, string(credit.StatusInProgress), asOf).Scan(&count)
	if err != nil {
		monitoring.RecordDBQuery("credit_count_overdue", "failure", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to count overdue credits", slog.Any("error", err))
		return 0, fmt.Errorf("%w: failed to count overdue credits: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("credit_count_overdue", "success", time.Since(start))
	return count, nil
}

func (r *CreditRepository) scanCredit(row pgx.Row) (*credit.Credit, error) {
	var cr credit.Credit
	var value pgtype.Numeric
	var status string

	err := row.Scan(
		&cr.ID,
		&cr.CreditCode,
		&value,
		&cr.DayFirstInstallment,
		&cr.NumberOfInstallments,
		&status,
		&cr.CustomerID,
		&cr.CreatedAt,
		&cr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	cr.CreditValue, err = decimalFromNumeric(value)
	if err != nil {
		return nil, fmt.Errorf("failed to convert credit_value column: %w", err)
	}
	cr.Status = credit.Status(status)

	return &cr, nil
}
