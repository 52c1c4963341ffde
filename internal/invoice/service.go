// Package invoice provides the invoice draft model and its totals.
//
// A draft holds an ordered list of line items and an ordered list of
// payments. All monetary figures are derived on demand:
//
//	itemSubtotal   = price * quantity
//	discountAmount = itemSubtotal * discount / 100
//	taxAmount      = (itemSubtotal - discountAmount) * tax / 100
//	totalAmount    = Σ itemSubtotal - Σ discountAmount + Σ taxAmount
//	balance        = totalAmount - Σ payment.amount
//
// Tax is charged per line item on the amount left after that item's
// discount, never on the aggregate subtotal.
//
// Draft Rules:
//   - A draft always holds at least one line item; removing the last one is ignored
//   - Payments have no minimum count
//   - Updates to unknown IDs are ignored
//   - The calculator does not validate input; use Validator for range checks
package invoice

import (
	"github.com/shopspring/decimal"
)

// ItemSummary pairs a line item with its computed figures.
type ItemSummary struct {
	LineItem
	Breakdown Breakdown `json:"breakdown"`
}

// Summary is a snapshot of a draft and its totals.
type Summary struct {
	ClientID string        `json:"client_id,omitempty"`
	Paid     bool          `json:"paid"`
	Items    []ItemSummary `json:"items"`
	Payments []Payment     `json:"payments"`
	Totals   Totals        `json:"totals"`
	Settled  bool          `json:"settled"`
}

// Summarize captures the current state of d.
func Summarize(d *Draft) Summary {
	items := make([]ItemSummary, 0, len(d.items))
	for _, item := range d.items {
		items = append(items, ItemSummary{LineItem: item, Breakdown: ItemBreakdown(item)})
	}

	totals := d.Totals()
	return Summary{
		ClientID: d.clientID,
		Paid:     d.paid,
		Items:    items,
		Payments: append([]Payment{}, d.payments...),
		Totals:   totals,
		Settled:  totals.Settled(),
	}
}

// PaidShare returns the fraction of the total amount covered by payments,
// or zero when the total amount is zero.
func (s Summary) PaidShare() decimal.Decimal {
	if s.Totals.TotalAmount.IsZero() {
		return decimal.Zero
	}
	return s.Totals.TotalPayments.Div(s.Totals.TotalAmount)
}
