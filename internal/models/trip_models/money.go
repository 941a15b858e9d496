package trip_models

import (
	"strings"

	"tripsmith/pkg/utils"
)

// Money is an amount in a single ISO 4217 currency. A nil *Money means
// "unknown": missing fares stay nil instead of pretending to be zero.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// NewMoney builds a Money value, or nil when the currency is unknown.
func NewMoney(amount float64, currency string) *Money {
	if currency == "" {
		return nil
	}
	return &Money{Amount: utils.Round2(amount), Currency: strings.ToUpper(currency)}
}

// AddMoney adds two amounts when their currencies match. On a mismatch it
// keeps the first operand unchanged. That is a known limitation carried for
// output compatibility, not a conversion: a multi-currency accumulator would
// be the correct successor.
func AddMoney(a, b *Money) *Money {
	if a == nil && b == nil {
		return nil
	}
	if b == nil {
		return &Money{Amount: utils.Round2(a.Amount), Currency: a.Currency}
	}
	if a == nil {
		return &Money{Amount: utils.Round2(b.Amount), Currency: b.Currency}
	}
	if a.Currency == b.Currency {
		return &Money{Amount: utils.Round2(a.Amount + b.Amount), Currency: a.Currency}
	}
	return &Money{Amount: utils.Round2(a.Amount), Currency: a.Currency}
}

// SumMoney folds a list with AddMoney, skipping unknowns.
func SumMoney(items ...*Money) *Money {
	var out *Money
	for _, m := range items {
		if m != nil {
			out = AddMoney(out, m)
		}
	}
	return out
}

// Amt returns the amount and whether it is known.
func (m *Money) Amt() (float64, bool) {
	if m == nil {
		return 0, false
	}
	return m.Amount, true
}
