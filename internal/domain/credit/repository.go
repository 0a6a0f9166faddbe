package credit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("credit not found")

type CreditRepository interface {
	Save(ctx context.Context, credit *Credit) error

	// FindByCreditCode looks up a credit by its generated code, regardless
	// of owner. Ownership scoping is the service's concern.
	FindByCreditCode(ctx context.Context, creditCode uuid.UUID) (*Credit, error)

	// FindAllByCustomerID returns the customer's credits in insertion
	// order. Empty slice, not an error, when none exist.
	FindAllByCustomerID(ctx context.Context, customerID int64) ([]*Credit, error)

	// CountOverdueInProgress counts credits still IN_PROGRESS whose first
	// installment day precedes asOf.
	CountOverdueInProgress(ctx context.Context, asOf time.Time) (int, error)
}
