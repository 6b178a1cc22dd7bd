package model

import "time"

type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpensePaid     ExpenseStatus = "paid"
)

func (s ExpenseStatus) Valid() bool {
	switch s {
	case ExpensePending, ExpenseApproved, ExpensePaid:
		return true
	default:
		return false
	}
}

// Expense is a cost entry booked against a provider.
type Expense struct {
	ID            string        `json:"id"`
	Description   string        `json:"description"`
	Category      string        `json:"category,omitempty"`
	ProviderID    *string       `json:"provider_id,omitempty"`
	InvoiceNumber string        `json:"invoice_number,omitempty"`
	AmountCents   int64         `json:"amount_cents"`
	Currency      string        `json:"currency"`
	ExpenseDate   time.Time     `json:"expense_date"`
	Status        ExpenseStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	CreatedBy     string        `json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ExpensePatch carries a partial update; nil fields are left untouched.
type ExpensePatch struct {
	Description   *string        `json:"description"`
	Category      *string        `json:"category"`
	ProviderID    *string        `json:"provider_id"`
	InvoiceNumber *string        `json:"invoice_number"`
	AmountCents   *int64         `json:"amount_cents"`
	Currency      *string        `json:"currency"`
	ExpenseDate   *time.Time     `json:"expense_date"`
	Status        *ExpenseStatus `json:"status"`
	Notes         *string        `json:"notes"`
}

// ExpenseQuery narrows and pages an expense listing.
type ExpenseQuery struct {
	Search     string
	Status     string
	Category   string
	ProviderID string
	From       string
	To         string
	Page       int
	Limit      int
}
