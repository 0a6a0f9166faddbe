package event

import "time"

type CustomerCreatedEvent struct {
	CustomerID int64     `json:"customerId"`
	CPF        string    `json:"cpf"`
	Email      string    `json:"email"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewCustomerCreatedEvent(customerID int64, cpf, email string) CustomerCreatedEvent {
	return CustomerCreatedEvent{
		CustomerID: customerID,
		CPF:        cpf,
		Email:      email,
		Timestamp:  time.Now(),
	}
}

type CustomerDeletedEvent struct {
	CustomerID int64     `json:"customerId"`
	CPF        string    `json:"cpf"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewCustomerDeletedEvent(customerID int64, cpf string) CustomerDeletedEvent {
	return CustomerDeletedEvent{
		CustomerID: customerID,
		CPF:        cpf,
		Timestamp:  time.Now(),
	}
}

type CreditIssuedEvent struct {
	CreditID    int64     `json:"creditId"`
	CreditCode  string    `json:"creditCode"`
	CustomerID  int64     `json:"customerId"`
	CreditValue string    `json:"creditValue"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewCreditIssuedEvent(creditID int64, creditCode string, customerID int64, creditValue string) CreditIssuedEvent {
	return CreditIssuedEvent{
		CreditID:    creditID,
		CreditCode:  creditCode,
		CustomerID:  customerID,
		CreditValue: creditValue,
		Timestamp:   time.Now(),
	}
}
