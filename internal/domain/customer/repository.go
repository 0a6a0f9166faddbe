package customer

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("customer not found")

	ErrDuplicateCPF = errors.New("cpf already registered")
)

type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	// Delete removes the customer and every credit it owns in one
	// transaction.
	Delete(ctx context.Context, customerID int64) error
}
