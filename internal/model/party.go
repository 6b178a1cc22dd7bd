package model

import "time"

// PartyKind distinguishes the two counterparty directories. Clients buy ad
// space; providers invoice expenses.
type PartyKind string

const (
	PartyClient   PartyKind = "client"
	PartyProvider PartyKind = "provider"
)

type Party struct {
	ID        string    `json:"id"`
	Kind      PartyKind `json:"kind"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartyPatch carries a partial update; nil fields are left untouched.
type PartyPatch struct {
	Name   *string `json:"name"`
	TaxID  *string `json:"tax_id"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Active *bool   `json:"active"`
}
