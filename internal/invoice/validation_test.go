package invoice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLineItem(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateLineItem(newLineItem("ok")))

	bad := item("-1", 0, "101", "-2")
	bad.ID = "bad"
	bad.Time = TimeAllocation{Unit: "weeks", Value: 0}

	errs := v.ValidateLineItem(bad)
	fields := map[string]string{}
	for _, e := range errs {
		assert.Equal(t, "bad", e.Entry)
		fields[e.Field] = e.Message
	}

	assert.Equal(t, "must be at least 0", fields["price"])
	assert.Equal(t, "must be at least 1", fields["quantity"])
	assert.Equal(t, "must be at most 100", fields["discount"])
	assert.Equal(t, "must be at least 0", fields["tax"])
	assert.Equal(t, "must be one of days hours", fields["time.unit"])
	assert.Equal(t, "must be at least 1", fields["time.value"])
}

func TestValidateLineItemBoundaries(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.ValidateLineItem(item("0", 1, "100", "0")))
	assert.Empty(t, v.ValidateLineItem(item("0", 1, "0", "250")))
}

func TestValidateLineItemComparesDecimalsExactly(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateLineItem(item("10", 1, "100.0000000000000001", "0"))
	require.Len(t, errs, 1)
	assert.Equal(t, "discount", errs[0].Field)
	assert.Equal(t, "must be at most 100", errs[0].Message)
	assert.Equal(t, "100.0000000000000001", errs[0].Value)

	errs = v.ValidateLineItem(item("-0.0000000000000001", 1, "0", "0"))
	require.Len(t, errs, 1)
	assert.Equal(t, "price", errs[0].Field)
}

func TestValidatePayment(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidatePayment(newPayment("p")))

	errs := v.ValidatePayment(Payment{ID: "p", Type: "Crypto"})
	require.Len(t, errs, 1)
	assert.Equal(t, "type", errs[0].Field)
	assert.Contains(t, errs[0].Message, "must be one of")
}

func TestValidateDraft(t *testing.T) {
	v := NewValidator()
	d := newTestDraft()
	require.NoError(t, v.ValidateDraft(d))

	d.UpdateLineItem("id-1", SetItemDiscount(dec("120")))
	pid := d.AddPayment()
	d.UpdatePayment(pid, SetPaymentType("Barter"))

	err := v.ValidateDraft(d)
	require.Error(t, err)

	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 2)
	assert.Equal(t, "id-1", errs[0].Entry)
	assert.Equal(t, pid, errs[1].Entry)
	assert.Contains(t, err.Error(), "(and 1 more)")

	// Totals are still computed for an invalid draft.
	assertDecimal(t, "0", d.Totals().TotalAmount)
}
