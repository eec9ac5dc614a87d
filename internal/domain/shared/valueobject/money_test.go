package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := NewMoney(1234, BRL)
		require.NoError(t, err)
		assert.Equal(t, int64(1234), m.Cents())
		assert.Equal(t, BRL, m.Currency())
	})

	t.Run("empty currency", func(t *testing.T) {
		_, err := NewMoney(100, "")
		assert.Error(t, err)
	})
}

func TestNewMoneyFromDecimal(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected int64
	}{
		{"whole amount", "12.00", 1200},
		{"with cents", "12.34", 1234},
		{"rounds half up", "0.005", 1},
		{"rounds down", "0.004", 0},
		{"negative", "-3.50", -350},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.amount)
			require.NoError(t, err)
			m, err := NewMoneyFromDecimal(d, BRL)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.Cents())
		})
	}
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("99.90", BRL)
	require.NoError(t, err)
	assert.Equal(t, int64(9990), m.Cents())

	_, err = NewMoneyFromString("not-a-number", BRL)
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyBRL(1000)
	b := NewMoneyBRL(250)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1250), sum.Cents())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(750), diff.Cents())

	assert.Equal(t, int64(3000), a.MulInt(3).Cents())

	// Operands are untouched
	assert.Equal(t, int64(1000), a.Cents())
	assert.Equal(t, int64(250), b.Cents())
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	brl := NewMoneyBRL(100)
	usd, err := NewMoney(100, USD)
	require.NoError(t, err)

	_, err = brl.Add(usd)
	assert.Error(t, err)

	_, err = brl.Sub(usd)
	assert.Error(t, err)
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, NewMoneyBRL(0).IsZero())
	assert.False(t, NewMoneyBRL(1).IsZero())
	assert.True(t, NewMoneyBRL(-1).IsNegative())
	assert.False(t, NewMoneyBRL(0).IsNegative())
	assert.True(t, NewMoneyBRL(100).Equal(NewMoneyBRL(100)))
	usd, _ := NewMoney(100, USD)
	assert.False(t, NewMoneyBRL(100).Equal(usd))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "BRL 12.34", NewMoneyBRL(1234).String())
	assert.Equal(t, "BRL 0.05", NewMoneyBRL(5).String())
	assert.Equal(t, "BRL -1.00", NewMoneyBRL(-100).String())
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(NewMoneyBRL(1234))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cents":1234,"currency":"BRL"}`, string(data))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`{"cents":500,"currency":"USD"}`), &m))
	assert.Equal(t, int64(500), m.Cents())
	assert.Equal(t, USD, m.Currency())

	// Missing currency falls back to the default
	var d Money
	require.NoError(t, json.Unmarshal([]byte(`{"cents":42}`), &d))
	assert.Equal(t, DefaultCurrency, d.Currency())
}

func TestMoney_SQL(t *testing.T) {
	v, err := NewMoneyBRL(990).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(990), v)

	var m Money
	require.NoError(t, m.Scan(int64(1500)))
	assert.Equal(t, int64(1500), m.Cents())
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan("not supported"))
}
