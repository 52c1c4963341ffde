package invoice

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice parses a unit price, returning 0 when the text is not a number.
func ParsePrice(s string) decimal.Decimal {
	return parseDecimalOr(s, decimal.Zero)
}

// ParsePercent parses a discount or tax percentage, returning 0 when the
// text is not a number.
func ParsePercent(s string) decimal.Decimal {
	return parseDecimalOr(s, decimal.Zero)
}

// ParseAmount parses a payment amount, returning 0 when the text is not a
// number. Negative amounts are kept.
func ParseAmount(s string) decimal.Decimal {
	return parseDecimalOr(s, decimal.Zero)
}

// ParseQuantity parses a quantity, returning 1 when the text is not a
// positive integer.
func ParseQuantity(s string) int {
	return parseIntOr(s, 1)
}

// ParseTimeValue parses a time allocation value, returning 1 when the text
// is not a positive integer.
func ParseTimeValue(s string) int {
	return parseIntOr(s, 1)
}

// ParseTimeUnit matches a time unit case-insensitively. Singular forms are
// accepted.
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "days", "day", "d":
		return Days, nil
	case "hours", "hour", "h":
		return Hours, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeUnit, s)
}

// ParsePaymentType matches a payment type case-insensitively, ignoring
// spaces, dashes and underscores ("bank-transfer" matches Bank Transfer).
func ParsePaymentType(s string) (PaymentType, error) {
	key := normalizeKey(s)
	for _, pt := range PaymentTypes {
		if normalizeKey(string(pt)) == key {
			return pt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentType, s)
}

func normalizeKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// maxFormInt bounds quantities and time values; larger input falls back.
const maxFormInt = math.MaxInt32

func parseIntOr(s string, fallback int) int {
	cleaned := strings.TrimSpace(s)
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		// Accept "2.0" style input by truncating a parsed decimal.
		d, derr := decimal.NewFromString(cleaned)
		if derr != nil || d.LessThan(decimal.NewFromInt(1)) || d.GreaterThan(decimal.NewFromInt(maxFormInt)) {
			return fallback
		}
		n = int(d.IntPart())
	}
	if n < 1 || n > maxFormInt {
		return fallback
	}
	return n
}

func parseDecimalOr(s string, fallback decimal.Decimal) decimal.Decimal {
	d, err := parseDecimal(s)
	if err != nil {
		return fallback
	}
	return d
}

// parseDecimal accepts plain ("1234.56") and grouped ("1,234.56",
// "1.234,56") numbers with an optional currency symbol.
func parseDecimal(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	negative := strings.HasPrefix(cleaned, "-")
	if negative {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "-"))
	}

	cleaned = strings.ReplaceAll(cleaned, " ", "")
	for _, sym := range []string{"$", "€", "£", "USD", "EUR", "GBP"} {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		// Whichever separator comes last is the decimal separator.
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		parts := strings.Split(cleaned, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unable to parse amount: %s (cleaned: %s)", s, cleaned)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
