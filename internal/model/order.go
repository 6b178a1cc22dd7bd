package model

import "time"

type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderConfirmed OrderStatus = "confirmed"
	OrderBilled    OrderStatus = "billed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderDraft, OrderConfirmed, OrderBilled, OrderCancelled:
		return true
	default:
		return false
	}
}

type Medium string

const (
	MediumPrint   Medium = "print"
	MediumRadio   Medium = "radio"
	MediumDigital Medium = "digital"
	MediumTV      Medium = "tv"
)

func (m Medium) Valid() bool {
	switch m {
	case MediumPrint, MediumRadio, MediumDigital, MediumTV:
		return true
	default:
		return false
	}
}

// AdOrder is a booked advertising insertion for a client campaign.
type AdOrder struct {
	ID          string      `json:"id"`
	ClientID    string      `json:"client_id"`
	Campaign    string      `json:"campaign"`
	Medium      Medium      `json:"medium"`
	Placement   string      `json:"placement,omitempty"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	AmountCents int64       `json:"amount_cents"`
	Currency    string      `json:"currency"`
	Status      OrderStatus `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	CreatedBy   string      `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// AdOrderPatch carries a partial update; nil fields are left untouched.
type AdOrderPatch struct {
	ClientID    *string      `json:"client_id"`
	Campaign    *string      `json:"campaign"`
	Medium      *Medium      `json:"medium"`
	Placement   *string      `json:"placement"`
	StartDate   *time.Time   `json:"start_date"`
	EndDate     *time.Time   `json:"end_date"`
	AmountCents *int64       `json:"amount_cents"`
	Currency    *string      `json:"currency"`
	Status      *OrderStatus `json:"status"`
	Notes       *string      `json:"notes"`
}

// AdOrderQuery narrows and pages an order listing.
type AdOrderQuery struct {
	Search   string
	Status   string
	Medium   string
	ClientID string
	From     string
	To       string
	Page     int
	Limit    int
}
