package dto

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"credit-system/internal/domain/customer"
)

var (
	cpfPattern   = regexp.MustCompile(`^[0-9]{11}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type CustomerRequest struct {
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	CPF       string          `json:"cpf"`
	Income    decimal.Decimal `json:"income"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	ZipCode   string          `json:"zipCode"`
	Street    string          `json:"street"`
}

// Validate returns one message per failed field so the response can list
// every problem at once instead of stopping at the first.
func (r *CustomerRequest) Validate() []string {
	var details []string
	if strings.TrimSpace(r.FirstName) == "" {
		details = append(details, "firstName must not be empty")
	}
	if strings.TrimSpace(r.LastName) == "" {
		details = append(details, "lastName must not be empty")
	}
	if strings.TrimSpace(r.CPF) == "" {
		details = append(details, "cpf must not be empty")
	} else if !cpfPattern.MatchString(r.CPF) {
		details = append(details, fmt.Sprintf("cpf %s is not a valid CPF: must contain exactly 11 digits", r.CPF))
	}
	if r.Income.IsNegative() {
		details = append(details, "income must be greater than or equal to zero")
	}
	if strings.TrimSpace(r.Email) == "" {
		details = append(details, "email must not be empty")
	} else if !emailPattern.MatchString(r.Email) {
		details = append(details, fmt.Sprintf("email %s is not a valid email address", r.Email))
	}
	if strings.TrimSpace(r.Password) == "" {
		details = append(details, "password must not be empty")
	}
	if strings.TrimSpace(r.ZipCode) == "" {
		details = append(details, "zipCode must not be empty")
	}
	if strings.TrimSpace(r.Street) == "" {
		details = append(details, "street must not be empty")
	}
	return details
}

func (r *CustomerRequest) ToRegisterInput() customer.RegisterInput {
	return customer.RegisterInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		CPF:       r.CPF,
		Income:    r.Income,
		Email:     r.Email,
		Password:  r.Password,
		ZipCode:   r.ZipCode,
		Street:    r.Street,
	}
}

type CustomerUpdateRequest struct {
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Income    decimal.Decimal `json:"income"`
	ZipCode   string          `json:"zipCode"`
	Street    string          `json:"street"`
}

func (r *CustomerUpdateRequest) Validate() []string {
	var details []string
	if strings.TrimSpace(r.FirstName) == "" {
		details = append(details, "firstName must not be empty")
	}
	if strings.TrimSpace(r.LastName) == "" {
		details = append(details, "lastName must not be empty")
	}
	if r.Income.IsNegative() {
		details = append(details, "income must be greater than or equal to zero")
	}
	if strings.TrimSpace(r.ZipCode) == "" {
		details = append(details, "zipCode must not be empty")
	}
	if strings.TrimSpace(r.Street) == "" {
		details = append(details, "street must not be empty")
	}
	return details
}

func (r *CustomerUpdateRequest) ToUpdateInput() customer.UpdateInput {
	return customer.UpdateInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Income:    r.Income,
		ZipCode:   r.ZipCode,
		Street:    r.Street,
	}
}

type CustomerResponse struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	CPF       string          `json:"cpf"`
	Email     string          `json:"email"`
	Income    decimal.Decimal `json:"income"`
	ZipCode   string          `json:"zipCode"`
	Street    string          `json:"street"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:        cust.ID,
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		CPF:       cust.CPF,
		Email:     cust.Email,
		Income:    cust.Income,
		ZipCode:   cust.Address.ZipCode,
		Street:    cust.Address.Street,
		CreatedAt: cust.CreatedAt,
		UpdatedAt: cust.UpdatedAt,
	}
}
