package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	CNY Currency = "CNY" // Chinese Yuan (purchase side)
	USD Currency = "USD" // US Dollar (default sell side)
	EUR Currency = "EUR"
	HKD Currency = "HKD"
)

// DefaultCurrency is the currency purchase orders are booked in
const DefaultCurrency = CNY

// MoneyPlaces is the display precision for monetary amounts
const MoneyPlaces int32 = 2

// ErrCurrencyMismatch is returned when combining amounts of different currencies
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ParseCurrency normalizes a currency code, falling back to DefaultCurrency
// when the code is blank.
func ParseCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return Currency(code)
}

// Money is a value object representing monetary amounts.
// It is immutable; all operations return new Money instances.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewMoneyCNY creates Money in CNY
func NewMoneyCNY(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: CNY}
}

// Zero returns a zero-value Money in the specified currency
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add returns the sum of both amounts
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add %s to %s: %w", other.currency, m.currency, ErrCurrencyMismatch)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Convert multiplies the amount by rate (units of target per one unit of this
// currency) and relabels it as target.
func (m Money) Convert(rate decimal.Decimal, target Currency) (Money, error) {
	if !rate.IsPositive() {
		return Money{}, fmt.Errorf("exchange rate must be positive, got %s", rate)
	}
	return Money{amount: m.amount.Mul(rate), currency: target}, nil
}

// Round returns a new Money rounded half away from zero
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places), currency: m.currency}
}

// String returns a string representation of the Money
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(MoneyPlaces), m.currency)
}

// StringFixed returns the amount as a string with fixed decimal places
func (m Money) StringFixed(places int32) string {
	return m.amount.StringFixed(places)
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string   `json:"amount"`
		Currency Currency `json:"currency"`
	}{
		Amount:   m.amount.String(),
		Currency: m.currency,
	})
}

// Sum adds amounts of one currency. An empty slice sums to zero in currency.
func Sum(currency Currency, values ...Money) (Money, error) {
	total := Zero(currency)
	for _, v := range values {
		var err error
		if total, err = total.Add(v); err != nil {
			return Money{}, err
		}
	}
	return total, nil
}
