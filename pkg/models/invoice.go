package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the collection state of an issued invoice.
type InvoiceStatus string

const (
	StatusPaid    InvoiceStatus = "paid"
	StatusPending InvoiceStatus = "pending"
	StatusOverdue InvoiceStatus = "overdue"
)

// InvoiceStatuses lists the statuses in display order.
var InvoiceStatuses = []InvoiceStatus{StatusPaid, StatusPending, StatusOverdue}

// Title returns the status with its first letter capitalized ("Paid").
func (s InvoiceStatus) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Invoice is an issued invoice as shown in the invoice history.
type Invoice struct {
	// Core identifiers
	ID       string `json:"id"`        // Human-readable invoice number, e.g. INV-001
	ClientID string `json:"client_id"` // Directory ID of the billed client
	Client   string `json:"client"`    // Client display name

	// Amounts
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`

	// Status
	Status InvoiceStatus `json:"status"`

	// Dates
	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`
}

// IsOverdue reports whether the invoice is unpaid past its due date at t.
func (inv *Invoice) IsOverdue(t time.Time) bool {
	return inv.Status != StatusPaid && t.After(inv.DueDate)
}
