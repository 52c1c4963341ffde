package invoice

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts as currency strings. Digit grouping and the
// decimal separator follow the locale; the symbol always leads ("€1.234,50"
// for de-DE), as golang.org/x/text exposes no locale symbol placement.
type Formatter struct {
	unit       currency.Unit
	printer    *message.Printer
	decimalSep string
}

// NewFormatter creates a formatter for an ISO 4217 currency code and a BCP
// 47 locale tag, e.g. "USD" and "en-US".
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency code %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return newFormatter(unit, tag), nil
}

// DefaultFormatter formats US dollars for the en-US locale.
func DefaultFormatter() *Formatter {
	return newFormatter(currency.USD, language.AmericanEnglish)
}

func newFormatter(unit currency.Unit, tag language.Tag) *Formatter {
	printer := message.NewPrinter(tag)

	// The separator is whatever the locale puts between the digits of 1.5.
	sep := strings.TrimFunc(printer.Sprint(number.Decimal(1.5, number.Scale(1))), unicode.IsDigit)
	if sep == "" {
		sep = "."
	}

	return &Formatter{
		unit:       unit,
		printer:    printer,
		decimalSep: sep,
	}
}

var maxWholeUnits = decimal.NewFromInt(math.MaxInt64)

// Format renders amount rounded to two places with the currency symbol in
// front and the sign before the symbol, e.g. "$1,234.50" or "-$20.00".
// The digits are exact for any amount.
func (f *Formatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	symbol := f.printer.Sprint(currency.Symbol(f.unit))
	return sign + symbol + f.digits(rounded)
}

// digits formats a non-negative amount with two fraction digits.
func (f *Formatter) digits(v decimal.Decimal) string {
	whole := v.Truncate(0)
	if whole.GreaterThan(maxWholeUnits) {
		return v.StringFixed(2)
	}
	cents := v.Sub(whole).Shift(2).IntPart()
	return f.printer.Sprint(number.Decimal(whole.IntPart())) +
		f.decimalSep +
		f.printer.Sprint(number.Decimal(cents, number.MinIntegerDigits(2)))
}

// Currency returns the ISO code the formatter renders.
func (f *Formatter) Currency() string {
	return f.unit.String()
}
