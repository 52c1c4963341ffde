package invoice

import (
	"github.com/shopspring/decimal"
)

// TimeUnit is the unit of a line item's time allocation.
type TimeUnit string

const (
	Days  TimeUnit = "days"
	Hours TimeUnit = "hours"
)

// TimeUnits lists the accepted time units in display order.
var TimeUnits = []TimeUnit{Days, Hours}

// PaymentType is the method a payment was made with.
type PaymentType string

const (
	CreditCard   PaymentType = "Credit Card"
	BankTransfer PaymentType = "Bank Transfer"
	Cash         PaymentType = "Cash"
	Check        PaymentType = "Check"
	Other        PaymentType = "Other"
)

// PaymentTypes lists the accepted payment types in display order.
var PaymentTypes = []PaymentType{CreditCard, BankTransfer, Cash, Check, Other}

// TimeAllocation is how much time a line item covers.
type TimeAllocation struct {
	Unit  TimeUnit `json:"unit" yaml:"unit" validate:"oneof=days hours"`
	Value int      `json:"value" yaml:"value" validate:"gte=1"`
}

// LineItem is a single billable entry on an invoice draft.
type LineItem struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Price       decimal.Decimal `json:"price" yaml:"price" validate:"decimal_gte=0"`
	Quantity    int             `json:"quantity" yaml:"quantity" validate:"gte=1"`
	Discount    decimal.Decimal `json:"discount" yaml:"discount" validate:"decimal_gte=0,decimal_lte=100"` // percent
	Tax         decimal.Decimal `json:"tax" yaml:"tax" validate:"decimal_gte=0"`                           // percent
	Time        TimeAllocation  `json:"time" yaml:"time"`
	Description string          `json:"description" yaml:"description"`
}

// Payment is a payment recorded against an invoice draft.
type Payment struct {
	ID        string          `json:"id" yaml:"id"`
	Type      PaymentType     `json:"type" yaml:"type" validate:"oneof='Credit Card' 'Bank Transfer' Cash Check Other"`
	Amount    decimal.Decimal `json:"amount" yaml:"amount"`
	Reference string          `json:"reference" yaml:"reference"`
}

// newLineItem returns a line item carrying the form defaults.
func newLineItem(id string) LineItem {
	return LineItem{
		ID:       id,
		Price:    decimal.Zero,
		Quantity: 1,
		Discount: decimal.Zero,
		Tax:      decimal.Zero,
		Time:     TimeAllocation{Unit: Days, Value: 1},
	}
}

func newPayment(id string) Payment {
	return Payment{
		ID:     id,
		Type:   CreditCard,
		Amount: decimal.Zero,
	}
}
