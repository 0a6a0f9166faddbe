package credit

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// MaxInstallments is the ceiling on the installment schedule length.
	MaxInstallments = 48

	// DefaultFirstInstallmentHorizonMonths bounds how far in the future the
	// first installment may fall. The boundary is inclusive.
	DefaultFirstInstallmentHorizonMonths = 3
)

type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
)

type Credit struct {
	ID                   int64           `json:"id"`
	CreditCode           uuid.UUID       `json:"creditCode"`
	CreditValue          decimal.Decimal `json:"creditValue"`
	DayFirstInstallment  time.Time       `json:"dayFirstInstallment"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
	Status               Status          `json:"status"`
	CustomerID           int64           `json:"customerId"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// NewCredit builds a credit with a freshly generated code and status
// IN_PROGRESS. The code, not the numeric id, is the external-facing reference.
func NewCredit(creditValue decimal.Decimal, dayFirstInstallment time.Time, numberOfInstallments int, customerID int64) *Credit {
	now := time.Now()
	return &Credit{
		CreditCode:           uuid.New(),
		CreditValue:          creditValue,
		DayFirstInstallment:  dayFirstInstallment,
		NumberOfInstallments: numberOfInstallments,
		Status:               StatusInProgress,
		CustomerID:           customerID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// FirstInstallmentWithinHorizon reports whether the first-installment date
// falls on or before today plus the given number of months. Both sides are
// treated as calendar dates in the local clock.
func FirstInstallmentWithinHorizon(dayFirstInstallment time.Time, horizonMonths int, now time.Time) bool {
	limit := toDate(now).AddDate(0, horizonMonths, 0)
	return !toDate(dayFirstInstallment).After(limit)
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (c *Credit) OwnedBy(customerID int64) bool {
	return c.CustomerID == customerID
}
