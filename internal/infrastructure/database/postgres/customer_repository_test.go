package postgres

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"credit-system/internal/domain/customer"
	"credit-system/internal/pkg/apperrors"
)

const pgxmockExpectationsNotMetMsg = "pgxmock expectations not met"

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

func testCustomer() *customer.Customer {
	return &customer.Customer{
		FirstName: "Layin",
		LastName:  "Costa",
		CPF:       "91852114789",
		Email:     "me@layin.net",
		Password:  "12345",
		Income:    decimal.NewFromInt(1000),
		Address:   customer.Address{ZipCode: "00101", Street: "Neko Street"},
	}
}

func setupCustomerRepo(t *testing.T) (context.Context, *CustomerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewCustomerRepository(mockPool, logger)

	return ctx, repo, mockPool
}

func TestCreateCustomerWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := testCustomer()
	query := `
        INSERT INTO customers (first_name, last_name, cpf, email, password, income, zip_code, street, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	now := time.Now()
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		cust.FirstName,
		cust.LastName,
		cust.CPF,
		cust.Email,
		cust.Password,
		numericFromDecimal(cust.Income),
		cust.Address.ZipCode,
		cust.Address.Street,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow(int64(1), now, now))

	err := repo.Save(ctx, cust)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), cust.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreateCustomerWhenDuplicateCPF(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := testCustomer()
	mockPool.ExpectQuery(regexp.QuoteMeta(`INSERT INTO customers`)).WithArgs(
		cust.FirstName,
		cust.LastName,
		cust.CPF,
		cust.Email,
		cust.Password,
		numericFromDecimal(cust.Income),
		cust.Address.ZipCode,
		cust.Address.Street,
	).WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "customers_cpf_key"})

	err := repo.Save(ctx, cust)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateCustomerWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := testCustomer()
	cust.ID = 1
	query := `
        UPDATE customers
        SET first_name = $1,
            last_name = $2,
            income = $3,
            zip_code = $4,
            street = $5,
            updated_at = NOW()
        WHERE id = $6`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(
		cust.FirstName,
		cust.LastName,
		numericFromDecimal(cust.Income),
		cust.Address.ZipCode,
		cust.Address.Street,
		cust.ID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Save(ctx, cust)

	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateCustomerWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := testCustomer()
	cust.ID = 42

	mockPool.ExpectExec(regexp.QuoteMeta(`UPDATE customers`)).WithArgs(
		cust.FirstName,
		cust.LastName,
		numericFromDecimal(cust.Income),
		cust.Address.ZipCode,
		cust.Address.Street,
		cust.ID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Save(ctx, cust)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCustomerByIDWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	now := time.Now()
	query := `
        SELECT id, first_name, last_name, cpf, email, password, income, zip_code, street, created_at, updated_at
        FROM customers
        WHERE id = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "first_name", "last_name", "cpf", "email", "password", "income", "zip_code", "street", "created_at", "updated_at",
		}).AddRow(
			int64(1), "Layin", "Costa", "91852114789", "me@layin.net", "12345",
			numericFromDecimal(decimal.NewFromInt(1000)), "00101", "Neko Street", now, now,
		))

	found, err := repo.FindByID(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, "91852114789", found.CPF)
	assert.Equal(t, "Neko Street", found.Address.Street)
	assert.True(t, found.Income.Equal(decimal.NewFromInt(1000)))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCustomerByIDWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(`SELECT id, first_name`)).WithArgs(int64(2)).
		WillReturnError(pgx.ErrNoRows)

	found, err := repo.FindByID(ctx, 2)

	assert.Nil(t, found)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteCustomerWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM credits WHERE customer_id = $1`)).WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM customers WHERE id = $1`)).WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mockPool.ExpectCommit()
	mockPool.ExpectRollback()

	err := repo.Delete(ctx, 1)

	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteCustomerWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM credits WHERE customer_id = $1`)).WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM customers WHERE id = $1`)).WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mockPool.ExpectRollback()

	err := repo.Delete(ctx, 10)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
