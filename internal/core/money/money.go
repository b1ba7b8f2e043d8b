// Package money holds the decimal arithmetic shared by the installment
// engine and the statement builder. Amounts carry two fractional digits.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits of the currency minor unit.
const Places = 2

var ErrInvalidShareCount = errors.New("share count must be at least 1")

var hundred = decimal.NewFromInt(100)

// Round normalizes an amount to the currency precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Split divides total into count shares. Every share but the last is
// total/count floored to the minor unit; the last share absorbs the
// remainder so the shares always sum to total exactly.
func Split(total decimal.Decimal, count int) ([]decimal.Decimal, error) {
	if count < 1 {
		return nil, ErrInvalidShareCount
	}

	cents := Round(total).Shift(Places)
	n := decimal.NewFromInt(int64(count))
	base := cents.Div(n).Floor()

	shares := make([]decimal.Decimal, count)
	allocated := decimal.Zero
	for i := 0; i < count-1; i++ {
		shares[i] = base.Shift(-Places)
		allocated = allocated.Add(base)
	}
	shares[count-1] = cents.Sub(allocated).Shift(-Places)

	return shares, nil
}

// Sum adds amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Percentage returns part/whole*100 rounded to two places, or zero when
// whole is zero.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(Places)
}
