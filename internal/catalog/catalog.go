// Package catalog serves the built-in client directory and invoice history.
// The data is static and read-only; every accessor returns copies.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// Catalog holds clients and invoices in display order.
type Catalog struct {
	clients  []models.Client
	invoices []models.Invoice
	log      zerolog.Logger
}

// ClientSummary aggregates the client directory.
type ClientSummary struct {
	TotalClients      int             `json:"total_clients"`
	ActiveClients     int             `json:"active_clients"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// InvoiceSummary aggregates the invoice history.
type InvoiceSummary struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"` // paid invoices only
	TotalInvoices   int             `json:"total_invoices"`
	PendingInvoices int             `json:"pending_invoices"` // pending and overdue
	PaidInvoices    int             `json:"paid_invoices"`
}

// New returns a catalog loaded with the sample data.
func New() *Catalog {
	return NewCatalog(SampleClients(), SampleInvoices())
}

// NewCatalog returns a catalog over the given records.
func NewCatalog(clients []models.Client, invoices []models.Invoice) *Catalog {
	c := &Catalog{
		clients:  append([]models.Client(nil), clients...),
		invoices: append([]models.Invoice(nil), invoices...),
		log:      logger.WithComponent("catalog"),
	}
	c.log.Debug().
		Int("clients", len(c.clients)).
		Int("invoices", len(c.invoices)).
		Msg("Catalog loaded")
	return c
}

// Clients returns every client.
func (c *Catalog) Clients() []models.Client {
	return append([]models.Client(nil), c.clients...)
}

// Client looks a client up by directory ID ("CLI-003") or by its bare
// number ("3"), case-insensitively.
func (c *Catalog) Client(id string) (*models.Client, bool) {
	want := canonicalClientID(id)
	for i := range c.clients {
		if strings.EqualFold(c.clients[i].ID, want) {
			client := c.clients[i]
			return &client, true
		}
	}
	return nil, false
}

// FindClients returns the clients whose name, email or location contains
// query, case-insensitively. An empty query matches everyone.
func (c *Catalog) FindClients(query string) []models.Client {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Clients()
	}

	var out []models.Client
	for _, client := range c.clients {
		if strings.Contains(strings.ToLower(client.Name), q) ||
			strings.Contains(strings.ToLower(client.Email), q) ||
			strings.Contains(strings.ToLower(client.Location), q) {
			out = append(out, client)
		}
	}

	c.log.Debug().
		Str("query", query).
		Int("matches", len(out)).
		Msg("Client search completed")
	return out
}

// ClientSummary aggregates the directory. The average order value is the
// total spent divided by the number of invoices, rounded to cents.
func (c *Catalog) ClientSummary() ClientSummary {
	s := ClientSummary{
		TotalClients:      len(c.clients),
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}

	invoices := 0
	for _, client := range c.clients {
		if client.IsActive() {
			s.ActiveClients++
		}
		s.TotalRevenue = s.TotalRevenue.Add(client.TotalSpent)
		invoices += client.TotalInvoices
	}
	if invoices > 0 {
		s.AverageOrderValue = s.TotalRevenue.Div(decimal.NewFromInt(int64(invoices))).Round(2)
	}
	return s
}

// Invoices returns the whole invoice history.
func (c *Catalog) Invoices() []models.Invoice {
	return append([]models.Invoice(nil), c.invoices...)
}

// Invoice returns the invoice with the given number.
func (c *Catalog) Invoice(id string) (*models.Invoice, bool) {
	for i := range c.invoices {
		if strings.EqualFold(c.invoices[i].ID, strings.TrimSpace(id)) {
			inv := c.invoices[i]
			return &inv, true
		}
	}
	return nil, false
}

// InvoicesByStatus returns the invoices with the given status. An empty
// status returns every invoice.
func (c *Catalog) InvoicesByStatus(status models.InvoiceStatus) []models.Invoice {
	if status == "" {
		return c.Invoices()
	}

	var out []models.Invoice
	for _, inv := range c.invoices {
		if inv.Status == status {
			out = append(out, inv)
		}
	}
	return out
}

// InvoiceSummary aggregates the invoice history.
func (c *Catalog) InvoiceSummary() InvoiceSummary {
	s := InvoiceSummary{
		TotalRevenue:  decimal.Zero,
		TotalInvoices: len(c.invoices),
	}
	for _, inv := range c.invoices {
		switch inv.Status {
		case models.StatusPaid:
			s.PaidInvoices++
			s.TotalRevenue = s.TotalRevenue.Add(inv.Amount)
		case models.StatusPending, models.StatusOverdue:
			s.PendingInvoices++
		}
	}
	return s
}

// ParseStatus matches an invoice status case-insensitively.
func ParseStatus(s string) (models.InvoiceStatus, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, status := range models.InvoiceStatuses {
		if string(status) == want {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown invoice status %q (expected paid, pending or overdue)", s)
}

// canonicalClientID turns a bare number into a directory ID.
func canonicalClientID(id string) string {
	id = strings.TrimSpace(id)
	if n, err := strconv.Atoi(id); err == nil && n > 0 {
		return fmt.Sprintf("CLI-%03d", n)
	}
	return id
}
