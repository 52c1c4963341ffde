package invoice

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator returns identifiers that are unique for the lifetime of a
// draft.
type IDGenerator func() string

// UUIDGenerator is the default IDGenerator.
func UUIDGenerator() string {
	return uuid.NewString()
}

// SequenceGenerator returns an IDGenerator yielding prefix1, prefix2, ...
func SequenceGenerator(prefix string) IDGenerator {
	var n int
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

// Draft is an invoice being composed. It always holds at least one line
// item. A Draft is not safe for concurrent use.
type Draft struct {
	items    []LineItem
	payments []Payment
	clientID string
	paid     bool
	newID    IDGenerator
}

// DraftOption configures a Draft.
type DraftOption func(*Draft)

// WithIDGenerator replaces the identifier source.
func WithIDGenerator(gen IDGenerator) DraftOption {
	return func(d *Draft) {
		if gen != nil {
			d.newID = gen
		}
	}
}

// WithClient preselects the client.
func WithClient(clientID string) DraftOption {
	return func(d *Draft) {
		d.clientID = clientID
	}
}

// NewDraft returns a draft holding a single default line item.
func NewDraft(opts ...DraftOption) *Draft {
	d := &Draft{newID: UUIDGenerator}
	for _, opt := range opts {
		opt(d)
	}
	d.items = []LineItem{newLineItem(d.newID())}
	return d
}

// RestoreDraft builds a draft from existing entries. Entries without an ID
// get one. An empty item list is replaced by a single default item.
func RestoreDraft(items []LineItem, payments []Payment, opts ...DraftOption) *Draft {
	d := &Draft{newID: UUIDGenerator}
	for _, opt := range opts {
		opt(d)
	}

	d.items = make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			item.ID = d.newID()
		}
		d.items = append(d.items, item)
	}
	if len(d.items) == 0 {
		d.items = append(d.items, newLineItem(d.newID()))
	}

	d.payments = make([]Payment, 0, len(payments))
	for _, p := range payments {
		if p.ID == "" {
			p.ID = d.newID()
		}
		d.payments = append(d.payments, p)
	}
	return d
}

// Items returns a copy of the line items in order.
func (d *Draft) Items() []LineItem {
	return append([]LineItem(nil), d.items...)
}

// Payments returns a copy of the payments in order.
func (d *Draft) Payments() []Payment {
	return append([]Payment(nil), d.payments...)
}

// Item returns the line item with the given ID.
func (d *Draft) Item(id string) (LineItem, bool) {
	if i := d.itemIndex(id); i >= 0 {
		return d.items[i], true
	}
	return LineItem{}, false
}

// Payment returns the payment with the given ID.
func (d *Draft) Payment(id string) (Payment, bool) {
	if i := d.paymentIndex(id); i >= 0 {
		return d.payments[i], true
	}
	return Payment{}, false
}

// AddLineItem appends a default line item and returns its ID.
func (d *Draft) AddLineItem() string {
	item := newLineItem(d.newID())
	d.items = append(d.items, item)
	return item.ID
}

// RemoveLineItem deletes the line item with the given ID. The last
// remaining item is never removed. It reports whether an item was removed.
func (d *Draft) RemoveLineItem(id string) bool {
	if len(d.items) <= 1 {
		return false
	}
	i := d.itemIndex(id)
	if i < 0 {
		return false
	}
	d.items = append(d.items[:i], d.items[i+1:]...)
	return true
}

// UpdateLineItem applies u to the line item with the given ID and reports
// whether such an item exists.
func (d *Draft) UpdateLineItem(id string, u ItemUpdate) bool {
	i := d.itemIndex(id)
	if i < 0 || u == nil {
		return false
	}
	u.applyItem(&d.items[i])
	return true
}

// AddPayment appends an empty payment and returns its ID.
func (d *Draft) AddPayment() string {
	p := newPayment(d.newID())
	d.payments = append(d.payments, p)
	return p.ID
}

// RemovePayment deletes the payment with the given ID. Unlike line items,
// payments can all be removed.
func (d *Draft) RemovePayment(id string) bool {
	i := d.paymentIndex(id)
	if i < 0 {
		return false
	}
	d.payments = append(d.payments[:i], d.payments[i+1:]...)
	return true
}

// UpdatePayment applies u to the payment with the given ID and reports
// whether such a payment exists.
func (d *Draft) UpdatePayment(id string, u PaymentUpdate) bool {
	i := d.paymentIndex(id)
	if i < 0 || u == nil {
		return false
	}
	u.applyPayment(&d.payments[i])
	return true
}

func (d *Draft) SelectClient(clientID string) { d.clientID = clientID }

func (d *Draft) ClientID() string { return d.clientID }

func (d *Draft) MarkPaid(paid bool) { d.paid = paid }

func (d *Draft) Paid() bool { return d.paid }

// Totals computes the current totals.
func (d *Draft) Totals() Totals {
	return Calculate(d.items, d.payments)
}

func (d *Draft) itemIndex(id string) int {
	for i := range d.items {
		if d.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Draft) paymentIndex(id string) int {
	for i := range d.payments {
		if d.payments[i].ID == id {
			return i
		}
	}
	return -1
}
