package model

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Email     string         `json:"email"`
	Password  string         `json:"password"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	UserType  string         `json:"userType"` // optional; defaults to standard
	Metadata  map[string]any `json:"metadata"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

type CreateExpenseRequest struct {
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	ProviderID    *string   `json:"provider_id"`
	InvoiceNumber string    `json:"invoice_number"`
	AmountCents   int64     `json:"amount_cents"`
	Currency      string    `json:"currency"`
	ExpenseDate   time.Time `json:"expense_date"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
}

type CreateOrderRequest struct {
	ClientID    string    `json:"client_id"`
	Campaign    string    `json:"campaign"`
	Medium      string    `json:"medium"`
	Placement   string    `json:"placement"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
}

type CreatePartyRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
