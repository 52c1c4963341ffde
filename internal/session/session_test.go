package session

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"invoicer/internal/catalog"
	"invoicer/internal/invoice"
)

func newTestSession() *Session {
	return New(
		WithDirectory(catalog.New()),
		WithDraft(invoice.NewDraft(invoice.WithIDGenerator(invoice.SequenceGenerator("e")))),
	)
}

func run(t *testing.T, s *Session, script string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, s.Run(context.Background(), strings.NewReader(script), &out))
	return out.String()
}

func TestRunComputesTotals(t *testing.T) {
	s := newTestSession()
	out := run(t, s, `
set-item #1 name Web design
set-item #1 price 100
set-item #1 quantity 2
set-item #1 discount 10
set-item #1 tax 5
totals
add-payment
set-payment #1 amount 100
totals
`)

	assert.Contains(t, out, `item e1 name = "Web design"`)
	assert.Contains(t, out, "added payment e2")
	assert.Contains(t, out, "payment e2 amount = $100.00")
	assert.Contains(t, out, "$189.00")
	assert.Contains(t, out, "-$20.00")
	assert.Contains(t, out, "$9.00")
	assert.Contains(t, out, "Balance")
	assert.Contains(t, out, "$89.00")

	totals := s.Draft().Totals()
	assert.Equal(t, "89", totals.Balance.String())
}

func TestTotalsOmitPaymentLinesWithoutPayments(t *testing.T) {
	out := run(t, newTestSession(), "totals\n")
	assert.Contains(t, out, "Total Amount")
	assert.NotContains(t, out, "Balance")
	assert.NotContains(t, out, "Total Paid")
}

func TestRemoveLastItemIsKept(t *testing.T) {
	s := newTestSession()
	out := run(t, s, "remove-item e1\nadd-item\nremove-item #1\n")

	assert.Contains(t, out, "kept item e1")
	assert.Contains(t, out, "added item e2")
	assert.Contains(t, out, "removed item e1")

	items := s.Draft().Items()
	require.Len(t, items, 1)
	assert.Equal(t, "e2", items[0].ID)
}

func TestFormInputFallsBack(t *testing.T) {
	s := newTestSession()
	run(t, s, "set-item #1 price abc\nset-item #1 quantity -3\nset-item #1 time x\n")

	item := s.Draft().Items()[0]
	assert.True(t, item.Price.IsZero())
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 1, item.Time.Value)
}

func TestSetItemTimeAndDescription(t *testing.T) {
	s := newTestSession()
	out := run(t, s, "set-item e1 unit h\nset-item e1 time 6\nset-item e1 description Sprint two\n")

	assert.Contains(t, out, "item e1 time = 6 hours")
	item := s.Draft().Items()[0]
	assert.Equal(t, invoice.TimeAllocation{Unit: invoice.Hours, Value: 6}, item.Time)
	assert.Equal(t, "Sprint two", item.Description)
}

func TestPaymentCommands(t *testing.T) {
	s := newTestSession()
	out := run(t, s, `add-payment
set-payment e2 type bank transfer
set-payment e2 reference TX-9
set-payment e2 reference
remove-payment #1
`)

	assert.Contains(t, out, "payment e2 type = Bank Transfer")
	assert.Contains(t, out, `payment e2 reference = "TX-9"`)
	assert.Contains(t, out, `payment e2 reference = ""`)
	assert.Contains(t, out, "removed payment e2")
	assert.Empty(t, s.Draft().Payments())
}

func TestSelectClient(t *testing.T) {
	s := newTestSession()
	out := run(t, s, "client 3\nclient CLI-042\n")

	assert.Contains(t, out, "client CLI-003 selected: Design Studio LLC - info@designstudio.com")
	assert.Contains(t, out, "error: unknown client")
	assert.Equal(t, "CLI-003", s.Draft().ClientID())
}

func TestSelectClientWithoutDirectory(t *testing.T) {
	s := New()
	_, err := s.Exec("client anyone", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "anyone", s.Draft().ClientID())
}

func TestMarkPaid(t *testing.T) {
	s := newTestSession()
	out := run(t, s, "paid on\n")
	assert.Contains(t, out, "invoice marked as paid")
	assert.True(t, s.Draft().Paid())

	_, err := s.Exec("paid maybe", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUsage)
}

func TestValidate(t *testing.T) {
	s := newTestSession()

	out := run(t, s, "validate\nset-item #1 discount 150\nvalidate\n")
	assert.Contains(t, out, "draft is valid")
	assert.Contains(t, out, "invalid: validation error for e1 field 'discount'")
}

func TestExecErrors(t *testing.T) {
	s := newTestSession()
	var out bytes.Buffer

	tests := []struct {
		line string
		want error
	}{
		{line: "frobnicate", want: ErrUnknownCommand},
		{line: "set-item #1 colour red", want: ErrUnknownField},
		{line: "set-item #1 unit weeks", want: invoice.ErrUnknownTimeUnit},
		{line: "set-item #7 price 1", want: ErrUnknownEntry},
		{line: "set-item nope price 1", want: ErrUnknownEntry},
		{line: "set-item #1", want: ErrUsage},
		{line: "remove-payment #1", want: ErrUnknownEntry},
		{line: "remove-item", want: ErrUsage},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := s.Exec(tt.line, &out)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// Rejected commands leave the draft untouched.
	assert.Len(t, s.Draft().Items(), 1)
	assert.Empty(t, s.Draft().Payments())
}

func TestRunReportsErrorsAndContinues(t *testing.T) {
	s := newTestSession()
	out := run(t, s, "bogus\n# a comment\n\nadd-item\n")

	assert.Contains(t, out, "error: unknown command")
	assert.Len(t, s.Draft().Items(), 2)
}

func TestQuitStopsReading(t *testing.T) {
	s := newTestSession()
	run(t, s, "quit\nadd-item\n")
	assert.Len(t, s.Draft().Items(), 1)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestSession().Run(ctx, strings.NewReader("add-item\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShowAndHelp(t *testing.T) {
	s := newTestSession()
	out := run(t, s, "help\nadd-payment\nshow\n")

	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "REFERENCE")
	assert.Contains(t, out, "Credit Card")
}

func TestPrompt(t *testing.T) {
	s := New(WithPrompt("> "))
	var out bytes.Buffer
	require.NoError(t, s.Run(context.Background(), strings.NewReader("show\n"), &out))
	assert.True(t, strings.HasPrefix(out.String(), "> "))
}
