// Package reports derives the reporting figures (revenue, status mix,
// monthly revenue, top clients, recent activity) from invoice history.
package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// Period is a reporting window ending at the report date.
type Period string

const (
	Last7Days  Period = "7d"
	Last30Days Period = "30d"
	Last90Days Period = "90d"
	LastYear   Period = "1y"
)

// Periods lists the supported windows in display order.
var Periods = []Period{Last7Days, Last30Days, Last90Days, LastYear}

// ParsePeriod matches a period case-insensitively. Empty text selects the
// 30 day window.
func ParsePeriod(s string) (Period, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	if want == "" {
		return Last30Days, nil
	}
	for _, p := range Periods {
		if string(p) == want {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown report period %q (expected 7d, 30d, 90d or 1y)", s)
}

// Start returns the first day covered by the window ending at asOf.
func (p Period) Start(asOf time.Time) time.Time {
	end := truncateDay(asOf)
	switch p {
	case Last7Days:
		return end.AddDate(0, 0, -7)
	case Last90Days:
		return end.AddDate(0, 0, -90)
	case LastYear:
		return end.AddDate(-1, 0, 0)
	default:
		return end.AddDate(0, 0, -30)
	}
}

// StatusShare is one row of the status breakdown.
type StatusShare struct {
	Status     models.InvoiceStatus `json:"status"`
	Count      int                  `json:"count"`
	Percentage decimal.Decimal      `json:"percentage"` // one decimal place
}

// MonthRevenue is the paid revenue of one calendar month.
type MonthRevenue struct {
	Month    string          `json:"month"` // "Jan 2024"
	Revenue  decimal.Decimal `json:"revenue"`
	Invoices int             `json:"invoices"`
}

// ClientRevenue ranks a client by paid revenue.
type ClientRevenue struct {
	ClientID string          `json:"client_id"`
	Name     string          `json:"name"`
	Revenue  decimal.Decimal `json:"revenue"`
	Invoices int             `json:"invoices"`
}

// ActivityType classifies a recent activity entry.
type ActivityType string

const (
	ActivityInvoiceCreated ActivityType = "invoice_created"
	ActivityInvoiceOverdue ActivityType = "invoice_overdue"
)

// Activity is a dated event derived from the invoice history.
type Activity struct {
	Type        ActivityType    `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	At          time.Time       `json:"at"`
}

// Overview is the report for one period.
type Overview struct {
	Period Period    `json:"period"`
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`

	TotalRevenue        decimal.Decimal `json:"total_revenue"` // paid invoices
	TotalInvoices       int             `json:"total_invoices"`
	PaidInvoices        int             `json:"paid_invoices"`
	PendingInvoices     int             `json:"pending_invoices"`
	OverdueInvoices     int             `json:"overdue_invoices"`
	AverageInvoiceValue decimal.Decimal `json:"average_invoice_value"`

	StatusBreakdown []StatusShare   `json:"status_breakdown"`
	MonthlyRevenue  []MonthRevenue  `json:"monthly_revenue"`
	TopClients      []ClientRevenue `json:"top_clients"`
	RecentActivity  []Activity      `json:"recent_activity"`
}

// Builder assembles overviews.
type Builder struct {
	// TopClients limits the client ranking. Zero means five.
	TopClients int

	// RecentActivity limits the activity feed. Zero means five.
	RecentActivity int

	log zerolog.Logger
}

// NewBuilder creates a builder with the default limits.
func NewBuilder() *Builder {
	return &Builder{
		TopClients:     5,
		RecentActivity: 5,
		log:            logger.WithComponent("reports"),
	}
}

// Build reports on the invoices issued within period, up to and including
// asOf.
func (b *Builder) Build(invoices []models.Invoice, period Period, asOf time.Time) Overview {
	to := truncateDay(asOf)
	from := period.Start(asOf)

	o := Overview{
		Period:              period,
		From:                from,
		To:                  to,
		TotalRevenue:        decimal.Zero,
		AverageInvoiceValue: decimal.Zero,
	}

	var inRange []models.Invoice
	for _, inv := range invoices {
		issued := truncateDay(inv.IssueDate)
		if issued.Before(from) || issued.After(to) {
			continue
		}
		inRange = append(inRange, inv)
	}

	billed := decimal.Zero
	for _, inv := range inRange {
		billed = billed.Add(inv.Amount)
		switch inv.Status {
		case models.StatusPaid:
			o.PaidInvoices++
			o.TotalRevenue = o.TotalRevenue.Add(inv.Amount)
		case models.StatusPending:
			o.PendingInvoices++
		case models.StatusOverdue:
			o.OverdueInvoices++
		}
	}
	o.TotalInvoices = len(inRange)
	if o.TotalInvoices > 0 {
		o.AverageInvoiceValue = billed.Div(decimal.NewFromInt(int64(o.TotalInvoices))).Round(2)
	}

	o.StatusBreakdown = statusBreakdown(o)
	o.MonthlyRevenue = monthlyRevenue(inRange)
	o.TopClients = topClients(inRange, limitOr(b.TopClients, 5))
	o.RecentActivity = recentActivity(inRange, to, limitOr(b.RecentActivity, 5))

	b.log.Debug().
		Str("period", string(period)).
		Time("from", from).
		Time("to", to).
		Int("invoices", o.TotalInvoices).
		Str("revenue", o.TotalRevenue.StringFixed(2)).
		Msg("Report built")

	return o
}

func statusBreakdown(o Overview) []StatusShare {
	counts := map[models.InvoiceStatus]int{
		models.StatusPaid:    o.PaidInvoices,
		models.StatusPending: o.PendingInvoices,
		models.StatusOverdue: o.OverdueInvoices,
	}

	shares := make([]StatusShare, 0, len(models.InvoiceStatuses))
	for _, status := range models.InvoiceStatuses {
		pct := decimal.Zero
		if o.TotalInvoices > 0 {
			pct = decimal.NewFromInt(int64(counts[status] * 100)).
				Div(decimal.NewFromInt(int64(o.TotalInvoices))).
				Round(1)
		}
		shares = append(shares, StatusShare{Status: status, Count: counts[status], Percentage: pct})
	}
	return shares
}

func monthlyRevenue(invoices []models.Invoice) []MonthRevenue {
	type bucket struct {
		start time.Time
		MonthRevenue
	}
	byMonth := map[string]*bucket{}

	for _, inv := range invoices {
		start := time.Date(inv.IssueDate.Year(), inv.IssueDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		key := start.Format("2006-01")
		bk, ok := byMonth[key]
		if !ok {
			bk = &bucket{start: start, MonthRevenue: MonthRevenue{Month: start.Format("Jan 2006"), Revenue: decimal.Zero}}
			byMonth[key] = bk
		}
		bk.Invoices++
		if inv.Status == models.StatusPaid {
			bk.Revenue = bk.Revenue.Add(inv.Amount)
		}
	}

	buckets := make([]*bucket, 0, len(byMonth))
	for _, bk := range byMonth {
		buckets = append(buckets, bk)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].start.Before(buckets[j].start) })

	out := make([]MonthRevenue, 0, len(buckets))
	for _, bk := range buckets {
		out = append(out, bk.MonthRevenue)
	}
	return out
}

func topClients(invoices []models.Invoice, limit int) []ClientRevenue {
	var order []string
	byClient := map[string]*ClientRevenue{}

	for _, inv := range invoices {
		key := inv.ClientID
		if key == "" {
			key = inv.Client
		}
		cr, ok := byClient[key]
		if !ok {
			cr = &ClientRevenue{ClientID: inv.ClientID, Name: inv.Client, Revenue: decimal.Zero}
			byClient[key] = cr
			order = append(order, key)
		}
		cr.Invoices++
		if inv.Status == models.StatusPaid {
			cr.Revenue = cr.Revenue.Add(inv.Amount)
		}
	}

	out := make([]ClientRevenue, 0, len(order))
	for _, key := range order {
		out = append(out, *byClient[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func recentActivity(invoices []models.Invoice, asOf time.Time, limit int) []Activity {
	var events []Activity
	for _, inv := range invoices {
		events = append(events, Activity{
			Type:        ActivityInvoiceCreated,
			Description: fmt.Sprintf("New invoice #%s created for %s", inv.ID, inv.Client),
			Amount:      inv.Amount,
			At:          inv.IssueDate,
		})
		if inv.Status == models.StatusOverdue && !inv.DueDate.After(asOf) {
			events = append(events, Activity{
				Type:        ActivityInvoiceOverdue,
				Description: fmt.Sprintf("Invoice #%s is now overdue", inv.ID),
				Amount:      inv.Amount,
				At:          inv.DueDate,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].At.After(events[j].At) })
	if len(events) > limit {
		events = events[:limit]
	}
	return events
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func limitOr(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}
