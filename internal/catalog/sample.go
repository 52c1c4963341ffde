package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"invoicer/pkg/models"
)

// SampleClients returns the built-in client directory.
func SampleClients() []models.Client {
	return []models.Client{
		{
			ID:            "CLI-001",
			Name:          "Acme Corporation",
			Email:         "contact@acme.com",
			Phone:         "+1 (555) 123-4567",
			Location:      "New York, NY",
			Status:        models.ClientActive,
			TotalInvoices: 12,
			TotalSpent:    decimal.NewFromInt(25000),
			LastInvoice:   day("2024-01-15"),
		},
		{
			ID:            "CLI-002",
			Name:          "Tech Solutions Inc",
			Email:         "hello@techsolutions.com",
			Phone:         "+1 (555) 987-6543",
			Location:      "San Francisco, CA",
			Status:        models.ClientActive,
			TotalInvoices: 8,
			TotalSpent:    decimal.NewFromInt(18000),
			LastInvoice:   day("2024-01-20"),
		},
		{
			ID:            "CLI-003",
			Name:          "Design Studio LLC",
			Email:         "info@designstudio.com",
			Phone:         "+1 (555) 456-7890",
			Location:      "Los Angeles, CA",
			Status:        models.ClientActive,
			TotalInvoices: 15,
			TotalSpent:    decimal.NewFromInt(32000),
			LastInvoice:   day("2024-01-18"),
		},
		{
			ID:            "CLI-004",
			Name:          "Marketing Agency",
			Email:         "team@marketing.com",
			Phone:         "+1 (555) 321-0987",
			Location:      "Chicago, IL",
			Status:        models.ClientInactive,
			TotalInvoices: 3,
			TotalSpent:    decimal.NewFromInt(4500),
			LastInvoice:   day("2023-12-10"),
		},
		{
			ID:            "CLI-005",
			Name:          "Consulting Firm",
			Email:         "contact@consulting.com",
			Phone:         "+1 (555) 654-3210",
			Location:      "Boston, MA",
			Status:        models.ClientActive,
			TotalInvoices: 6,
			TotalSpent:    decimal.NewFromInt(12000),
			LastInvoice:   day("2024-01-22"),
		},
	}
}

// SampleInvoices returns the built-in invoice history.
func SampleInvoices() []models.Invoice {
	return []models.Invoice{
		{ID: "INV-001", ClientID: "CLI-001", Client: "Acme Corporation", Amount: decimal.NewFromInt(2500), Currency: "USD", Status: models.StatusPaid, IssueDate: day("2024-01-15"), DueDate: day("2024-02-15")},
		{ID: "INV-002", ClientID: "CLI-002", Client: "Tech Solutions Inc", Amount: decimal.NewFromInt(1800), Currency: "USD", Status: models.StatusPending, IssueDate: day("2024-01-20"), DueDate: day("2024-02-20")},
		{ID: "INV-003", ClientID: "CLI-003", Client: "Design Studio LLC", Amount: decimal.NewFromInt(3200), Currency: "USD", Status: models.StatusPaid, IssueDate: day("2024-01-18"), DueDate: day("2024-02-18")},
		{ID: "INV-004", ClientID: "CLI-004", Client: "Marketing Agency", Amount: decimal.NewFromInt(950), Currency: "USD", Status: models.StatusOverdue, IssueDate: day("2024-01-10"), DueDate: day("2024-01-25")},
		{ID: "INV-005", ClientID: "CLI-005", Client: "Consulting Firm", Amount: decimal.NewFromInt(4200), Currency: "USD", Status: models.StatusPaid, IssueDate: day("2024-01-22"), DueDate: day("2024-02-22")},
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
