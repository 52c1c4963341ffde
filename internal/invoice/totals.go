package invoice

import (
	"github.com/shopspring/decimal"
)

// Breakdown holds the per line item figures.
type Breakdown struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	AfterDiscount decimal.Decimal `json:"after_discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

// Totals holds the derived monetary figures of a draft.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalPayments decimal.Decimal `json:"total_payments"`
	Balance       decimal.Decimal `json:"balance"`
}

// ItemBreakdown computes the figures of a single line item. Tax applies to
// the amount left after the item's own discount.
func ItemBreakdown(item LineItem) Breakdown {
	subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	discount := percentOf(subtotal, item.Discount)
	afterDiscount := subtotal.Sub(discount)
	tax := percentOf(afterDiscount, item.Tax)

	return Breakdown{
		Subtotal:      subtotal,
		Discount:      discount,
		AfterDiscount: afterDiscount,
		Tax:           tax,
		Total:         afterDiscount.Add(tax),
	}
}

// Calculate derives the draft totals from its line items and payments.
// Inputs are not validated; negative or out of range values are used as
// given.
func Calculate(items []LineItem, payments []Payment) Totals {
	t := Totals{
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		TotalTax:      decimal.Zero,
		TotalPayments: decimal.Zero,
	}

	for _, item := range items {
		b := ItemBreakdown(item)
		t.Subtotal = t.Subtotal.Add(b.Subtotal)
		t.TotalDiscount = t.TotalDiscount.Add(b.Discount)
		t.TotalTax = t.TotalTax.Add(b.Tax)
	}
	t.TotalAmount = t.Subtotal.Sub(t.TotalDiscount).Add(t.TotalTax)

	for _, p := range payments {
		t.TotalPayments = t.TotalPayments.Add(p.Amount)
	}
	t.Balance = t.TotalAmount.Sub(t.TotalPayments)

	return t
}

// Settled reports whether the payments cover the total amount.
func (t Totals) Settled() bool {
	return t.Balance.LessThanOrEqual(decimal.Zero)
}

// Rounded returns a copy with every figure rounded half away from zero to
// the given number of decimal places.
func (t Totals) Rounded(places int32) Totals {
	return Totals{
		Subtotal:      t.Subtotal.Round(places),
		TotalDiscount: t.TotalDiscount.Round(places),
		TotalTax:      t.TotalTax.Round(places),
		TotalAmount:   t.TotalAmount.Round(places),
		TotalPayments: t.TotalPayments.Round(places),
		Balance:       t.Balance.Round(places),
	}
}

// percentOf returns amount * pct / 100 without rounding.
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Shift(-2)
}
