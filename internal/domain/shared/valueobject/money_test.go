package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency_IsValid(t *testing.T) {
	tests := []struct {
		currency Currency
		isValid  bool
	}{
		{USD, true},
		{KRW, true},
		{CNY, true},
		{VND, true},
		{THB, true},
		{IDR, true},
		{Currency("EUR"), false},
		{Currency(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.currency), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.currency.IsValid())
		})
	}
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency("VND")
	require.NoError(t, err)
	assert.Equal(t, VND, c)

	_, err = ParseCurrency("JPY")
	assert.Error(t, err)
}

func TestNewMoney_RejectsUnsupportedCurrency(t *testing.T) {
	_, err := NewMoney(decimal.NewFromInt(100), Currency("EUR"))
	assert.Error(t, err)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyUSDFromFloat(100)
	b := NewMoneyUSDFromFloat(25.5)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "125.50 USD", sum.String())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "74.50 USD", diff.String())

	krw, err := NewMoneyFromFloat(1000, KRW)
	require.NoError(t, err)
	_, err = a.Add(krw)
	assert.Error(t, err)
}

func TestMoney_ToUSD(t *testing.T) {
	vnd, err := NewMoneyFromFloat(26000000, VND)
	require.NoError(t, err)

	usd, err := vnd.ToUSD(decimal.NewFromInt(26000))
	require.NoError(t, err)
	assert.Equal(t, USD, usd.Currency())
	assert.True(t, usd.Amount().Equal(decimal.NewFromInt(1000)))

	// USD is already base; rate is ignored
	same, err := NewMoneyUSDFromFloat(5).ToUSD(decimal.Zero)
	require.NoError(t, err)
	assert.True(t, same.Amount().Equal(decimal.NewFromInt(5)))

	_, err = vnd.ToUSD(decimal.Zero)
	assert.Error(t, err)
}

func TestMoney_FromUSD(t *testing.T) {
	usd := NewMoneyUSDFromFloat(10)

	thb, err := usd.FromUSD(THB, decimal.NewFromFloat(35.5))
	require.NoError(t, err)
	assert.Equal(t, THB, thb.Currency())
	assert.True(t, thb.Amount().Equal(decimal.NewFromFloat(355)))

	krw, _ := NewMoneyFromFloat(100, KRW)
	_, err = krw.FromUSD(THB, decimal.NewFromInt(35))
	assert.Error(t, err)
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m, err := NewMoneyFromString("1234.56", CNY)
	require.NoError(t, err)

	data, err := m.MarshalJSON()
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.True(t, m.Equals(decoded))
}
