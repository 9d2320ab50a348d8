package domain

import (
	"fmt"
	"math"

	"service-dispatch/internal/apperr"
)

// MaxQuantity caps a single order line.
const MaxQuantity = 10000

// Money is an amount in minor currency units (cents).
type Money int64

func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}

// Pricing holds the fixed constants applied to every broadcast at creation.
type Pricing struct {
	TaxRate     float64
	DeliveryFee Money
}

var errOverflow = fmt.Errorf("%w: order total out of range", apperr.ErrInvalid)

// Subtotal sums quantity*unit price over items. Negative inputs and totals
// that do not fit in Money are rejected with apperr.ErrInvalid.
func Subtotal(items []Item) (Money, error) {
	var total Money
	for _, it := range items {
		if it.Quantity < 0 || it.UnitPrice < 0 {
			return 0, fmt.Errorf("%w: negative quantity or price for %s", apperr.ErrInvalid, it.ProductID)
		}
		line, ok := mulMoney(Money(it.Quantity), it.UnitPrice)
		if !ok {
			return 0, errOverflow
		}
		if total, ok = addMoney(total, line); !ok {
			return 0, errOverflow
		}
	}
	return total, nil
}

// Totals returns subtotal and grand total for items.
// Tax is rounded half away from zero to the nearest cent.
func (p Pricing) Totals(items []Item) (subtotal, grand Money, err error) {
	subtotal, err = Subtotal(items)
	if err != nil {
		return 0, 0, err
	}
	taxf := math.Round(float64(subtotal) * p.TaxRate)
	if math.IsNaN(taxf) || taxf < 0 || taxf >= math.MaxInt64 {
		return 0, 0, errOverflow
	}
	grand, ok := addMoney(subtotal, Money(taxf))
	if !ok {
		return 0, 0, errOverflow
	}
	if grand, ok = addMoney(grand, p.DeliveryFee); !ok {
		return 0, 0, errOverflow
	}
	return subtotal, grand, nil
}

// both operands are non-negative
func mulMoney(a, b Money) (Money, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}

func addMoney(a, b Money) (Money, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}
