package session

import (
	"fmt"
	"strconv"

	"invoicer/internal/invoice"
)

// itemUpdate turns a field name and raw text into a typed update. Numbers
// that do not parse take the form defaults.
func itemUpdate(field, value string) (invoice.ItemUpdate, error) {
	switch field {
	case "name":
		return invoice.SetItemName(value), nil
	case "price":
		return invoice.SetItemPrice(invoice.ParsePrice(value)), nil
	case "quantity", "qty":
		return invoice.SetItemQuantity(invoice.ParseQuantity(value)), nil
	case "discount":
		return invoice.SetItemDiscount(invoice.ParsePercent(value)), nil
	case "tax":
		return invoice.SetItemTax(invoice.ParsePercent(value)), nil
	case "unit":
		unit, err := invoice.ParseTimeUnit(value)
		if err != nil {
			return nil, err
		}
		return invoice.SetItemTimeUnit(unit), nil
	case "time":
		return invoice.SetItemTimeValue(invoice.ParseTimeValue(value)), nil
	case "description":
		return invoice.SetItemDescription(value), nil
	}
	return nil, fmt.Errorf("%w %q for items (name price quantity discount tax unit time description)", ErrUnknownField, field)
}

func paymentUpdate(field, value string) (invoice.PaymentUpdate, error) {
	switch field {
	case "type":
		pt, err := invoice.ParsePaymentType(value)
		if err != nil {
			return nil, err
		}
		return invoice.SetPaymentType(pt), nil
	case "amount":
		return invoice.SetPaymentAmount(invoice.ParseAmount(value)), nil
	case "reference", "ref":
		return invoice.SetPaymentReference(value), nil
	}
	return nil, fmt.Errorf("%w %q for payments (type amount reference)", ErrUnknownField, field)
}

func itemFieldValue(item invoice.LineItem, field string) string {
	switch field {
	case "name":
		return strconv.Quote(item.Name)
	case "price":
		return item.Price.String()
	case "quantity":
		return strconv.Itoa(item.Quantity)
	case "discount":
		return item.Discount.String() + "%"
	case "tax":
		return item.Tax.String() + "%"
	case "unit":
		return string(item.Time.Unit)
	case "time":
		return fmt.Sprintf("%d %s", item.Time.Value, item.Time.Unit)
	case "description":
		return strconv.Quote(item.Description)
	}
	return ""
}

func (s *Session) paymentFieldValue(p invoice.Payment, field string) string {
	switch field {
	case "type":
		return string(p.Type)
	case "amount":
		return s.formatter.Format(p.Amount)
	case "reference":
		return strconv.Quote(p.Reference)
	}
	return ""
}
