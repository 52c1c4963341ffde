package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientStatus tells whether a client is still being billed.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

// Client is an entry of the client directory.
type Client struct {
	ID            string          `json:"id"` // e.g. CLI-001
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Location      string          `json:"location"`
	Status        ClientStatus    `json:"status"`
	TotalInvoices int             `json:"total_invoices"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LastInvoice   time.Time       `json:"last_invoice"`
}

// IsActive reports whether the client is active.
func (c *Client) IsActive() bool {
	return c.Status == ClientActive
}
