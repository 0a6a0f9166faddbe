package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

type Address struct {
	ZipCode string `json:"zipCode"`
	Street  string `json:"street"`
}

type Customer struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	CPF       string          `json:"cpf"`
	Email     string          `json:"email"`
	Password  string          `json:"-"`
	Income    decimal.Decimal `json:"income"`
	Address   Address         `json:"address"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewCustomer(firstName, lastName, cpf, email, password string, income decimal.Decimal, address Address) *Customer {
	now := time.Now()
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		CPF:       cpf,
		Email:     email,
		Password:  password,
		Income:    income,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyUpdate overwrites the mutable fields only. CPF, email and password are
// immutable after registration.
func (c *Customer) ApplyUpdate(firstName, lastName, zipCode, street string, income decimal.Decimal) {
	c.FirstName = firstName
	c.LastName = lastName
	c.Address.ZipCode = zipCode
	c.Address.Street = street
	c.Income = income
	c.UpdatedAt = time.Now()
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
