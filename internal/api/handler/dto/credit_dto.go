package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"credit-system/internal/domain/credit"
)

const dateLayout = "2006-01-02"

type CreditRequest struct {
	CreditValue          decimal.Decimal `json:"creditValue"`
	DayFirstInstallment  string          `json:"dayFirstOfInstallment"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
	CustomerID           int64           `json:"customerId"`
}

func (r *CreditRequest) Validate() []string {
	var details []string
	if !r.CreditValue.IsPositive() {
		details = append(details, "creditValue must be greater than zero")
	}
	if strings.TrimSpace(r.DayFirstInstallment) == "" {
		details = append(details, "dayFirstOfInstallment must not be empty")
	} else if _, err := time.Parse(dateLayout, r.DayFirstInstallment); err != nil {
		details = append(details, fmt.Sprintf("dayFirstOfInstallment %s is not a valid date: expected format %s", r.DayFirstInstallment, dateLayout))
	}
	if r.NumberOfInstallments < 1 || r.NumberOfInstallments > credit.MaxInstallments {
		details = append(details, fmt.Sprintf("numberOfInstallments must be between 1 and %d", credit.MaxInstallments))
	}
	if r.CustomerID <= 0 {
		details = append(details, "customerId must be a positive number")
	}
	return details
}

// ToIssueInput assumes Validate has already accepted the payload.
func (r *CreditRequest) ToIssueInput() credit.IssueInput {
	day, _ := time.Parse(dateLayout, r.DayFirstInstallment)
	return credit.IssueInput{
		CreditValue:          r.CreditValue,
		DayFirstInstallment:  day,
		NumberOfInstallments: r.NumberOfInstallments,
		CustomerID:           r.CustomerID,
	}
}

// CreditSummaryResponse is the list projection: enough to pick a credit
// without exposing its full state.
type CreditSummaryResponse struct {
	CreditCode           uuid.UUID       `json:"creditCode"`
	CreditValue          decimal.Decimal `json:"creditValue"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
}

func NewCreditSummaryResponse(c *credit.Credit) CreditSummaryResponse {
	if c == nil {
		return CreditSummaryResponse{}
	}
	return CreditSummaryResponse{
		CreditCode:           c.CreditCode,
		CreditValue:          c.CreditValue,
		NumberOfInstallments: c.NumberOfInstallments,
	}
}

type CreditResponse struct {
	CreditCode           uuid.UUID       `json:"creditCode"`
	CreditValue          decimal.Decimal `json:"creditValue"`
	DayFirstInstallment  string          `json:"dayFirstOfInstallment"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
	Status               string          `json:"status"`
	IncomeCustomer       decimal.Decimal `json:"incomeCustomer"`
	EmailCustomer        string          `json:"emailCustomer"`
}

func NewCreditResponse(d *credit.CreditDetail) CreditResponse {
	if d == nil || d.Credit == nil {
		return CreditResponse{}
	}
	resp := CreditResponse{
		CreditCode:           d.Credit.CreditCode,
		CreditValue:          d.Credit.CreditValue,
		DayFirstInstallment:  d.Credit.DayFirstInstallment.Format(dateLayout),
		NumberOfInstallments: d.Credit.NumberOfInstallments,
		Status:               string(d.Credit.Status),
	}
	if d.Customer != nil {
		resp.IncomeCustomer = d.Customer.Income
		resp.EmailCustomer = d.Customer.Email
	}
	return resp
}
