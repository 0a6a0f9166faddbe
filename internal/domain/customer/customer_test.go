package customer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewCustomer(t *testing.T) {
	cust := NewCustomer("Layin", "Costa", "91852114789", "me@layin.net", "12345",
		decimal.NewFromInt(1000), Address{ZipCode: "00101", Street: "Neko Street"})

	assert.Equal(t, int64(0), cust.ID)
	assert.Equal(t, "Layin", cust.FirstName)
	assert.Equal(t, "91852114789", cust.CPF)
	assert.Equal(t, "Neko Street", cust.Address.Street)
	assert.False(t, cust.CreatedAt.IsZero())
	assert.Equal(t, cust.CreatedAt, cust.UpdatedAt)
}

func TestApplyUpdate(t *testing.T) {
	cust := NewCustomer("Layin", "Costa", "91852114789", "me@layin.net", "12345",
		decimal.NewFromInt(1000), Address{ZipCode: "00101", Street: "Neko Street"})
	before := cust.UpdatedAt
	time.Sleep(time.Millisecond)

	cust.ApplyUpdate("Aliny", "Costta", "857452", "Inu Street", decimal.NewFromInt(5000))

	assert.Equal(t, "Aliny", cust.FirstName)
	assert.Equal(t, "Costta", cust.LastName)
	assert.Equal(t, "857452", cust.Address.ZipCode)
	assert.Equal(t, "Inu Street", cust.Address.Street)
	assert.True(t, cust.Income.Equal(decimal.NewFromInt(5000)))
	assert.True(t, cust.UpdatedAt.After(before))

	assert.Equal(t, "91852114789", cust.CPF)
	assert.Equal(t, "me@layin.net", cust.Email)
	assert.Equal(t, "12345", cust.Password)
}

func TestFullName(t *testing.T) {
	cust := &Customer{FirstName: "Layin", LastName: "Costa"}
	assert.Equal(t, "Layin Costa", cust.FullName())
}
