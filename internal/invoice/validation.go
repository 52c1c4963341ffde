package invoice

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"invoicer/internal/logger"
)

// Validator checks line items and payments against the ranges the invoice
// form enforces. Totals are computed regardless of the outcome.
type Validator struct {
	validate *validator.Validate
	log      zerolog.Logger
}

// NewValidator creates a new draft validator
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Hand decimals to the validators as exact strings; the decimal_gte and
	// decimal_lte tags compare them without going through float64.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	mustRegister(v, "decimal_gte", decimalBound(func(d, bound decimal.Decimal) bool {
		return d.GreaterThanOrEqual(bound)
	}))
	mustRegister(v, "decimal_lte", decimalBound(func(d, bound decimal.Decimal) bool {
		return d.LessThanOrEqual(bound)
	}))

	// Report JSON field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validate: v,
		log:      logger.WithComponent("draft-validation"),
	}
}

// ValidateLineItem returns every out of range field of item.
func (v *Validator) ValidateLineItem(item LineItem) ValidationErrors {
	return v.check(item.ID, item)
}

// ValidatePayment returns every out of range field of p.
func (v *Validator) ValidatePayment(p Payment) ValidationErrors {
	return v.check(p.ID, p)
}

// ValidateDraft checks every entry of d. It returns nil when the draft is
// valid and a ValidationErrors otherwise.
func (v *Validator) ValidateDraft(d *Draft) error {
	var errs ValidationErrors
	for _, item := range d.items {
		errs = append(errs, v.ValidateLineItem(item)...)
	}
	for _, p := range d.payments {
		errs = append(errs, v.ValidatePayment(p)...)
	}

	if len(errs) == 0 {
		return nil
	}

	v.log.Debug().
		Int("items", len(d.items)).
		Int("payments", len(d.payments)).
		Int("violations", len(errs)).
		Msg("Draft validation found violations")

	return errs
}

func (v *Validator) check(entry string, s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{NewValidationError(entry, "", s, err.Error())}
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, NewValidationError(entry, fieldPath(fe), fe.Value(), describe(fe)))
	}
	return out
}

// fieldPath drops the top level struct name from the namespace
// ("LineItem.time.value" becomes "time.value").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte", "decimal_gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte", "decimal_lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// decimalBound builds a validation comparing a decimal field with the tag
// parameter. Unparseable values fail.
func decimalBound(cmp func(d, bound decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(d, bound)
	}
}
