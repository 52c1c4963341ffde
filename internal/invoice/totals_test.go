package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field ...string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%v: want %s, got %s", field, want, got.String())
}

func item(price string, qty int, discount, tax string) LineItem {
	li := newLineItem("")
	li.Price = dec(price)
	li.Quantity = qty
	li.Discount = dec(discount)
	li.Tax = dec(tax)
	return li
}

func payment(amount string) Payment {
	p := newPayment("")
	p.Amount = dec(amount)
	return p
}

func TestItemBreakdown(t *testing.T) {
	b := ItemBreakdown(item("100", 2, "10", "5"))

	assertDecimal(t, "200", b.Subtotal)
	assertDecimal(t, "20", b.Discount)
	assertDecimal(t, "180", b.AfterDiscount)
	assertDecimal(t, "9", b.Tax)
	assertDecimal(t, "189", b.Total)
}

func TestCalculateEmpty(t *testing.T) {
	totals := Calculate(nil, nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TotalDiscount.IsZero())
	assert.True(t, totals.TotalTax.IsZero())
	assert.True(t, totals.TotalAmount.IsZero())
	assert.True(t, totals.TotalPayments.IsZero())
	assert.True(t, totals.Balance.IsZero())
	assert.True(t, totals.Settled())
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		items    []LineItem
		payments []Payment
		want     Totals
	}{
		{
			name:  "single item without payments",
			items: []LineItem{item("100", 2, "10", "5")},
			want: Totals{
				Subtotal: dec("200"), TotalDiscount: dec("20"), TotalTax: dec("9"),
				TotalAmount: dec("189"), TotalPayments: dec("0"), Balance: dec("189"),
			},
		},
		{
			name:     "fully paid",
			items:    []LineItem{item("100", 2, "10", "5")},
			payments: []Payment{payment("189")},
			want: Totals{
				Subtotal: dec("200"), TotalDiscount: dec("20"), TotalTax: dec("9"),
				TotalAmount: dec("189"), TotalPayments: dec("189"), Balance: dec("0"),
			},
		},
		{
			name:     "partially paid",
			items:    []LineItem{item("100", 2, "10", "5")},
			payments: []Payment{payment("100")},
			want: Totals{
				Subtotal: dec("200"), TotalDiscount: dec("20"), TotalTax: dec("9"),
				TotalAmount: dec("189"), TotalPayments: dec("100"), Balance: dec("89"),
			},
		},
		{
			name:     "overpaid",
			items:    []LineItem{item("50", 1, "0", "0")},
			payments: []Payment{payment("30"), payment("30")},
			want: Totals{
				Subtotal: dec("50"), TotalDiscount: dec("0"), TotalTax: dec("0"),
				TotalAmount: dec("50"), TotalPayments: dec("60"), Balance: dec("-10"),
			},
		},
		{
			name: "several items",
			items: []LineItem{
				item("19.99", 3, "0", "20"),
				item("250", 1, "15", "0"),
				item("0.10", 7, "50", "10"),
			},
			want: Totals{
				Subtotal: dec("310.67"), TotalDiscount: dec("37.85"), TotalTax: dec("12.0290"),
				TotalAmount: dec("284.849"), TotalPayments: dec("0"), Balance: dec("284.849"),
			},
		},
		{
			name:  "out of range values are used as given",
			items: []LineItem{item("-10", 0, "150", "-5")},
			want: Totals{
				Subtotal: dec("0"), TotalDiscount: dec("0"), TotalTax: dec("0"),
				TotalAmount: dec("0"), TotalPayments: dec("0"), Balance: dec("0"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.items, tt.payments)
			assertDecimal(t, tt.want.Subtotal.String(), got.Subtotal, "subtotal")
			assertDecimal(t, tt.want.TotalDiscount.String(), got.TotalDiscount, "discount")
			assertDecimal(t, tt.want.TotalTax.String(), got.TotalTax, "tax")
			assertDecimal(t, tt.want.TotalAmount.String(), got.TotalAmount, "amount")
			assertDecimal(t, tt.want.TotalPayments.String(), got.TotalPayments, "payments")
			assertDecimal(t, tt.want.Balance.String(), got.Balance, "balance")
		})
	}
}

func TestCalculateNegativeDiscountIncreasesTotal(t *testing.T) {
	totals := Calculate([]LineItem{item("100", 1, "-10", "0")}, nil)
	assertDecimal(t, "-10", totals.TotalDiscount)
	assertDecimal(t, "110", totals.TotalAmount)
}

func TestTaxAppliesAfterDiscount(t *testing.T) {
	totals := Calculate([]LineItem{item("100", 2, "10", "5")}, nil)

	// Charging 5% on the undiscounted 200 would give 10.
	assertDecimal(t, "9", totals.TotalTax)
	assert.False(t, dec("10").Equal(totals.TotalTax))
}

func TestTaxIsPerItem(t *testing.T) {
	items := []LineItem{
		item("100", 1, "0", "20"),
		item("100", 1, "0", "0"),
	}
	totals := Calculate(items, nil)

	assertDecimal(t, "20", totals.TotalTax)
	assertDecimal(t, "220", totals.TotalAmount)
}

func TestCalculateIgnoresOrder(t *testing.T) {
	a := item("12.50", 4, "5", "7.5")
	b := item("99.99", 1, "0", "19")
	c := item("3", 10, "100", "10")
	p1, p2 := payment("40"), payment("0.01")

	forward := Calculate([]LineItem{a, b, c}, []Payment{p1, p2})
	reversed := Calculate([]LineItem{c, b, a}, []Payment{p2, p1})

	assert.True(t, forward.TotalAmount.Equal(reversed.TotalAmount))
	assert.True(t, forward.Balance.Equal(reversed.Balance))
	assert.True(t, forward.TotalTax.Equal(reversed.TotalTax))
}

func TestCalculateIsExact(t *testing.T) {
	totals := Calculate([]LineItem{item("0.10", 3, "0", "0")}, []Payment{payment("0.30")})
	assert.True(t, totals.Balance.IsZero(), totals.Balance.String())
}

func TestTotalsRounded(t *testing.T) {
	totals := Calculate([]LineItem{item("10.005", 1, "0", "0")}, nil).Rounded(2)
	assert.Equal(t, "10.01", totals.TotalAmount.StringFixed(2))
}

func TestSettled(t *testing.T) {
	items := []LineItem{item("10", 1, "0", "0")}

	assert.False(t, Calculate(items, nil).Settled())
	assert.True(t, Calculate(items, []Payment{payment("10")}).Settled())
	assert.True(t, Calculate(items, []Payment{payment("15")}).Settled())
}

func TestPercentOf(t *testing.T) {
	require.True(t, percentOf(dec("333.33"), dec("12.5")).Equal(dec("41.66625")))
	require.True(t, percentOf(dec("0"), dec("100")).IsZero())
}
