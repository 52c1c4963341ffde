package invoice

import (
	"github.com/shopspring/decimal"
)

// ItemUpdate changes one field of a line item.
type ItemUpdate interface {
	applyItem(item *LineItem)
	Field() string
}

// PaymentUpdate changes one field of a payment.
type PaymentUpdate interface {
	applyPayment(p *Payment)
	Field() string
}

type SetItemName string

func (u SetItemName) applyItem(item *LineItem) { item.Name = string(u) }
func (SetItemName) Field() string { return "name" }

type SetItemPrice decimal.Decimal

func (u SetItemPrice) applyItem(item *LineItem) { item.Price = decimal.Decimal(u) }
func (SetItemPrice) Field() string { return "price" }

type SetItemQuantity int

func (u SetItemQuantity) applyItem(item *LineItem) { item.Quantity = int(u) }
func (SetItemQuantity) Field() string { return "quantity" }

// SetItemDiscount sets the discount percentage.
type SetItemDiscount decimal.Decimal

func (u SetItemDiscount) applyItem(item *LineItem) { item.Discount = decimal.Decimal(u) }
func (SetItemDiscount) Field() string { return "discount" }

// SetItemTax sets the tax percentage.
type SetItemTax decimal.Decimal

func (u SetItemTax) applyItem(item *LineItem) { item.Tax = decimal.Decimal(u) }
func (SetItemTax) Field() string { return "tax" }

type SetItemTimeUnit TimeUnit

func (u SetItemTimeUnit) applyItem(item *LineItem) { item.Time.Unit = TimeUnit(u) }
func (SetItemTimeUnit) Field() string { return "unit" }

type SetItemTimeValue int

func (u SetItemTimeValue) applyItem(item *LineItem) { item.Time.Value = int(u) }
func (SetItemTimeValue) Field() string { return "time" }

type SetItemDescription string

func (u SetItemDescription) applyItem(item *LineItem) { item.Description = string(u) }
func (SetItemDescription) Field() string { return "description" }

type SetPaymentType PaymentType

func (u SetPaymentType) applyPayment(p *Payment) { p.Type = PaymentType(u) }
func (SetPaymentType) Field() string { return "type" }

type SetPaymentAmount decimal.Decimal

func (u SetPaymentAmount) applyPayment(p *Payment) { p.Amount = decimal.Decimal(u) }
func (SetPaymentAmount) Field() string { return "amount" }

type SetPaymentReference string

func (u SetPaymentReference) applyPayment(p *Payment) { p.Reference = string(u) }
func (SetPaymentReference) Field() string { return "reference" }
