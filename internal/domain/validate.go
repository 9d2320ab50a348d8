package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"

	"service-dispatch/internal/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateAddress checks that every required delivery-address field is present
// and that the postal code has six digits.
func ValidateAddress(a Address) error {
	if err := validate.Struct(a); err != nil {
		return describe("delivery_address", err)
	}
	return nil
}

// ValidatePoint checks longitude/latitude bounds.
func ValidatePoint(p orb.Point) error {
	if p.Lon() < -180 || p.Lon() > 180 || p.Lat() < -90 || p.Lat() > 90 {
		return fmt.Errorf("%w: coordinates out of range", apperr.ErrInvalid)
	}
	return nil
}

// ValidateCreate checks a create request before any catalog lookup.
func ValidateCreate(in CreateInput) error {
	if err := validate.Struct(in); err != nil {
		return describe("broadcast", err)
	}
	if !in.PaymentMethod.Valid() {
		return fmt.Errorf("%w: payment_method %q", apperr.ErrInvalid, in.PaymentMethod)
	}
	if err := ValidatePoint(in.Origin); err != nil {
		return err
	}
	return nil
}

// ValidateItems checks priced items before persisting.
func ValidateItems(items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: items must not be empty", apperr.ErrInvalid)
	}
	for i := range items {
		if err := validate.Struct(items[i]); err != nil {
			return describe(fmt.Sprintf("items[%d]", i), err)
		}
	}
	return nil
}

func describe(scope string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s: %v", apperr.ErrInvalid, scope, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Namespace())+" "+fe.Tag())
	}
	return fmt.Errorf("%w: %s", apperr.ErrInvalid, strings.Join(fields, ", "))
}
