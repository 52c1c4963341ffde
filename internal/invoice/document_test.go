package invoice

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonDocument = `{
  "client": "CLI-002",
  "items": [
    {"name": "Web design", "price": 100, "quantity": "2", "discount": 10, "tax": "5",
     "time": {"unit": "hours", "value": 16}},
    {"name": "Hosting", "price": "n/a", "quantity": 0}
  ],
  "payments": [
    {"type": "bank-transfer", "amount": "100", "reference": "TX-42"}
  ]
}`

const yamlDocument = `client: CLI-002
items:
  - name: Web design
    price: 100
    quantity: 2
    discount: 10
    tax: "5"
    time:
      unit: hours
      value: 16
  - name: Hosting
    price: n/a
    quantity: 0
payments:
  - type: Bank Transfer
    amount: 100
    reference: TX-42
`

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		format Format
		body   string
	}{
		{format: FormatJSON, body: jsonDocument},
		{format: FormatYAML, body: yamlDocument},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			doc, err := DecodeDocument(strings.NewReader(tt.body), tt.format)
			require.NoError(t, err)

			d, err := doc.Draft(WithIDGenerator(SequenceGenerator("doc-")))
			require.NoError(t, err)
			assert.Equal(t, "CLI-002", d.ClientID())

			items := d.Items()
			require.Len(t, items, 2)
			assert.Equal(t, "Web design", items[0].Name)
			assert.Equal(t, 2, items[0].Quantity)
			assert.Equal(t, TimeAllocation{Unit: Hours, Value: 16}, items[0].Time)

			// Unparseable numbers take the form defaults.
			assert.True(t, items[1].Price.IsZero())
			assert.Equal(t, 1, items[1].Quantity)
			assert.Equal(t, TimeAllocation{Unit: Days, Value: 1}, items[1].Time)

			payments := d.Payments()
			require.Len(t, payments, 1)
			assert.Equal(t, BankTransfer, payments[0].Type)
			assert.Equal(t, "TX-42", payments[0].Reference)

			totals := d.Totals()
			assertDecimal(t, "189", totals.TotalAmount)
			assertDecimal(t, "89", totals.Balance)
		})
	}
}

func TestDecodeDocumentRejectsUnknownFields(t *testing.T) {
	_, err := DecodeDocument(strings.NewReader(`{"items": [], "colour": "red"}`), FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidDraft)

	_, err = DecodeDocument(strings.NewReader("items: []\ncolour: red\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidDraft)

	_, err = DecodeDocument(strings.NewReader(`{}`), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeEmptyYAMLDocument(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)

	d, err := doc.Draft()
	require.NoError(t, err)
	assert.Len(t, d.Items(), 1)
}

func TestDocumentDraftRejectsUnknownKinds(t *testing.T) {
	doc := &Document{Items: []DocumentItem{{Time: DocumentTime{Unit: "weeks"}}}}
	_, err := doc.Draft()
	assert.ErrorIs(t, err, ErrUnknownTimeUnit)

	var de *DraftError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "item 1", de.Details)

	doc = &Document{Payments: []DocumentPayment{{Type: "IOU"}}}
	_, err = doc.Draft()
	assert.ErrorIs(t, err, ErrUnknownPaymentType)
}

func TestNumberTextYAMLRejectsMappings(t *testing.T) {
	_, err := DecodeDocument(strings.NewReader("items:\n  - price:\n      amount: 3\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidDraft)
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDocument), 0o600))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Len(t, doc.Items, 2)

	_, err = LoadDocument(filepath.Join(dir, "draft.txt"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadDocument(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSummaryJSON(t *testing.T) {
	d := newTestDraft()
	d.UpdateLineItem("id-1", SetItemPrice(dec("10")))

	data, err := json.Marshal(Summarize(d))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []interface{}{}, decoded["payments"])
	assert.Equal(t, false, decoded["settled"])

	items := decoded["items"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "id-1", first["id"])
	assert.Equal(t, "10", first["price"])
	assert.Contains(t, first, "breakdown")
}

func TestPaidShare(t *testing.T) {
	d := newTestDraft()
	assert.True(t, Summarize(d).PaidShare().IsZero())

	d.UpdateLineItem("id-1", SetItemPrice(dec("200")))
	pid := d.AddPayment()
	d.UpdatePayment(pid, SetPaymentAmount(dec("50")))
	assertDecimal(t, "0.25", Summarize(d).PaidShare())
}
