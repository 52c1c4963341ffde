package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusTitle(t *testing.T) {
	assert.Equal(t, "Paid", StatusPaid.Title())
	assert.Equal(t, "Overdue", StatusOverdue.Title())
	assert.Equal(t, "", InvoiceStatus("").Title())
}

func TestInvoiceIsOverdue(t *testing.T) {
	due := time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)
	inv := Invoice{Status: StatusPending, DueDate: due}

	assert.False(t, inv.IsOverdue(due))
	assert.True(t, inv.IsOverdue(due.AddDate(0, 0, 1)))

	inv.Status = StatusPaid
	assert.False(t, inv.IsOverdue(due.AddDate(0, 0, 1)))
}

func TestClientIsActive(t *testing.T) {
	assert.True(t, (&Client{Status: ClientActive}).IsActive())
	assert.False(t, (&Client{Status: ClientInactive}).IsActive())
}
