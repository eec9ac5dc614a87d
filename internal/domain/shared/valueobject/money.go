package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	BRL Currency = "BRL" // Brazilian Real (default)
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = BRL

// Money is a value object representing monetary amounts.
// Amounts are stored as integer minor units (cents) so that arithmetic is
// exact; decimal is used at the edges for parsing and display.
// It is immutable - all operations return new Money instances.
type Money struct {
	cents    int64
	currency Currency
}

// NewMoney creates a new Money from integer minor units
func NewMoney(cents int64, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{cents: cents, currency: currency}, nil
}

// NewMoneyBRL creates Money in BRL from integer minor units
func NewMoneyBRL(cents int64) Money {
	return Money{cents: cents, currency: BRL}
}

// NewMoneyFromDecimal creates Money from a decimal major-unit amount,
// rounding half-up to the nearest cent
func NewMoneyFromDecimal(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0)
	return Money{cents: cents.IntPart(), currency: currency}, nil
}

// NewMoneyFromString creates Money from a string major-unit representation
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoneyFromDecimal(d, currency)
}

// Cents returns the amount in integer minor units
func (m Money) Cents() int64 {
	return m.cents
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// Decimal returns the amount in major units as a decimal
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.cents).Div(decimal.NewFromInt(100))
}

// Add returns a new Money with the sum of both amounts
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{cents: m.cents + other.cents, currency: m.currency}, nil
}

// Sub returns a new Money with the difference of both amounts
func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{cents: m.cents - other.cents, currency: m.currency}, nil
}

// MulInt returns a new Money multiplied by an integer factor
func (m Money) MulInt(factor int64) Money {
	return Money{cents: m.cents * factor, currency: m.currency}
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// Equal returns true if both amount and currency match
func (m Money) Equal(other Money) bool {
	return m.cents == other.cents && m.currency == other.currency
}

// String returns a human-readable representation, e.g. "BRL 12.34"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.Decimal().StringFixed(2))
}

// moneyJSON is the JSON wire representation of Money
type moneyJSON struct {
	Cents    int64    `json:"cents"`
	Currency Currency `json:"currency"`
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Cents: m.cents, Currency: m.currency})
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Currency == "" {
		raw.Currency = DefaultCurrency
	}
	m.cents = raw.Cents
	m.currency = raw.Currency
	return nil
}

// Value implements driver.Valuer, persisting the amount as integer minor units
func (m Money) Value() (driver.Value, error) {
	return m.cents, nil
}

// Scan implements sql.Scanner
func (m *Money) Scan(value interface{}) error {
	if value == nil {
		m.cents = 0
		m.currency = DefaultCurrency
		return nil
	}
	switch v := value.(type) {
	case int64:
		m.cents = v
	case int:
		m.cents = int64(v)
	default:
		return fmt.Errorf("cannot scan %T into Money", value)
	}
	m.currency = DefaultCurrency
	return nil
}
