package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a draft document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Document is the file representation of a draft. Numeric fields hold
// text so that malformed values fall back to form defaults instead of
// failing the whole document.
type Document struct {
	Client   string            `json:"client" yaml:"client"`
	Paid     bool              `json:"paid" yaml:"paid"`
	Items    []DocumentItem    `json:"items" yaml:"items"`
	Payments []DocumentPayment `json:"payments" yaml:"payments"`
}

type DocumentItem struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Price       NumberText   `json:"price" yaml:"price"`
	Quantity    NumberText   `json:"quantity" yaml:"quantity"`
	Discount    NumberText   `json:"discount" yaml:"discount"`
	Tax         NumberText   `json:"tax" yaml:"tax"`
	Time        DocumentTime `json:"time" yaml:"time"`
	Description string       `json:"description" yaml:"description"`
}

type DocumentTime struct {
	Unit  string     `json:"unit" yaml:"unit"`
	Value NumberText `json:"value" yaml:"value"`
}

type DocumentPayment struct {
	ID        string     `json:"id" yaml:"id"`
	Type      string     `json:"type" yaml:"type"`
	Amount    NumberText `json:"amount" yaml:"amount"`
	Reference string     `json:"reference" yaml:"reference"`
}

// NumberText is a number kept as written. It decodes from both JSON
// numbers and strings.
type NumberText string

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumberText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumberText(s)
		return nil
	}
	*n = NumberText(data)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *NumberText) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number, got a %s", node.Line, kindName(node.Kind))
	}
	*n = NumberText(node.Value)
	return nil
}

// DecodeDocument reads a draft document in the given format.
func DecodeDocument(r io.Reader, format Format) (*Document, error) {
	const op = "DecodeDocument"

	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, NewDraftError(op, fmt.Errorf("%w: %v", ErrInvalidDraft, err), "json")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, NewDraftError(op, fmt.Errorf("%w: %v", ErrInvalidDraft, err), "yaml")
		}
	default:
		return nil, NewDraftError(op, ErrUnsupportedFormat, string(format))
	}
	return &doc, nil
}

// LoadDocument reads a draft document from disk.
func LoadDocument(path string) (*Document, error) {
	const op = "LoadDocument"

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, NewDraftError(op, err, "")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, NewDraftError(op, err, path)
	}
	defer f.Close()

	return DecodeDocument(f, format)
}

// Draft converts the document into a draft. Unparseable numbers take the
// form defaults; unknown time units and payment types are errors.
func (doc *Document) Draft(opts ...DraftOption) (*Draft, error) {
	const op = "Document.Draft"

	items := make([]LineItem, 0, len(doc.Items))
	for i, di := range doc.Items {
		unit := Days
		if strings.TrimSpace(di.Time.Unit) != "" {
			u, err := ParseTimeUnit(di.Time.Unit)
			if err != nil {
				return nil, NewDraftError(op, err, fmt.Sprintf("item %d", i+1))
			}
			unit = u
		}
		items = append(items, LineItem{
			ID:          di.ID,
			Name:        di.Name,
			Price:       ParsePrice(string(di.Price)),
			Quantity:    ParseQuantity(string(di.Quantity)),
			Discount:    ParsePercent(string(di.Discount)),
			Tax:         ParsePercent(string(di.Tax)),
			Time:        TimeAllocation{Unit: unit, Value: ParseTimeValue(string(di.Time.Value))},
			Description: di.Description,
		})
	}

	payments := make([]Payment, 0, len(doc.Payments))
	for i, dp := range doc.Payments {
		pt := CreditCard
		if strings.TrimSpace(dp.Type) != "" {
			t, err := ParsePaymentType(dp.Type)
			if err != nil {
				return nil, NewDraftError(op, err, fmt.Sprintf("payment %d", i+1))
			}
			pt = t
		}
		payments = append(payments, Payment{
			ID:        dp.ID,
			Type:      pt,
			Amount:    ParseAmount(string(dp.Amount)),
			Reference: dp.Reference,
		})
	}

	d := RestoreDraft(items, payments, opts...)
	if doc.Client != "" {
		d.SelectClient(doc.Client)
	}
	d.MarkPaid(doc.Paid)
	return d, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	}
	return "node"
}
