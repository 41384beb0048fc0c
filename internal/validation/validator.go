// Package validation checks resolver arguments before they reach a store.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/orders"
)

// Validator wraps a configured go-playground validator.
type Validator struct {
	v *validatorv10.Validate
}

// New returns a Validator that reports fields by their JSON names and
// checks that an order's totalAmount matches its lines.
func New() *Validator {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterStructValidation(createOrderStructValidation, orders.CreateInput{})
	return &Validator{v: v}
}

// Struct validates s and returns an invalid-input *apperr.Error describing
// every rejected field, or nil.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	fields := Fields(err)
	if len(fields) == 0 {
		return apperr.Invalid("Invalid input: %s", err.Error())
	}
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	e := apperr.Invalid("Invalid input: %s", strings.Join(msgs, "; "))
	e.Err = err
	return e
}

// Fields flattens validator errors into FieldErrors. It returns nil for
// errors the validator did not produce.
func Fields(err error) []FieldError {
	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		out = append(out, FieldError{Field: field, Rule: fe.Tag(), Message: describe(field, fe)})
	}
	return out
}

func describe(field string, fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "email":
		return field + " must be an email address"
	case tagAmountMatchesItems:
		return fe.Param()
	}
	return field + " is invalid"
}

const tagAmountMatchesItems = "amount_match_items"

// createOrderStructValidation verifies the aggregated total of items equals
// totalAmount to the cent.
func createOrderStructValidation(sl validatorv10.StructLevel) {
	in := sl.Current().Interface().(orders.CreateInput)

	var sumCents int64
	for _, it := range in.Items {
		sumCents += int64(math.Round(orders.LineTotal(it.Quantity, it.UnitPrice) * 100))
	}
	amountCents := int64(math.Round(in.TotalAmount * 100))
	if sumCents != amountCents {
		sl.ReportError(in.TotalAmount, "totalAmount", "TotalAmount", tagAmountMatchesItems,
			fmt.Sprintf("totalAmount %.2f does not match items sum %.2f", in.TotalAmount, float64(sumCents)/100))
	}
}
