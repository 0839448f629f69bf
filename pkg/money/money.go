// Package money provides the currency-tagged amount value object used for
// pass prices and registration payment amounts. Amounts are integral minor
// units (cents) so arithmetic stays exact.
package money

import (
	"fmt"
	"strings"

	dErrors "lankaconnect/pkg/domain-errors"
)

// Money is an immutable amount in a single currency.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// New validates and builds a Money value. Currency is a 3-letter ISO code,
// normalized to upper case. Negative amounts are rejected; the domain never
// deals in negative prices.
func New(amount int64, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if amount < 0 {
		return Money{}, dErrors.New(dErrors.CodeInvalidInput, "amount must not be negative")
	}
	if len(currency) != 3 {
		return Money{}, dErrors.New(dErrors.CodeInvalidInput, "currency must be a 3-letter code")
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return Money{Amount: 0, Currency: strings.ToUpper(strings.TrimSpace(currency))}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.Amount == 0 }

// Add returns m + other, failing on currency mismatch.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"cannot add %s to %s", other.Currency, m.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// MultiplyQuantity returns the total for qty units at price m.
func (m Money) MultiplyQuantity(qty int) (Money, error) {
	if qty < 0 {
		return Money{}, dErrors.New(dErrors.CodeInvalidInput, "quantity must not be negative")
	}
	return Money{Amount: m.Amount * int64(qty), Currency: m.Currency}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.Amount/100, m.Amount%100, m.Currency)
}
