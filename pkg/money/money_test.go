package money

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "integer", in: "1500", want: "1500"},
		{name: "fraction", in: "2.5", want: "2.5"},
		{name: "surrounding space", in: "  800 ", want: "800"},
		{name: "grouping commas", in: "1,234.50", want: "1234.5"},
		{name: "peso sign", in: "₱3,000", want: "3000"},
		{name: "negative", in: "-5", want: "-5"},
		{name: "blank", in: "", want: "0"},
		{name: "whitespace only", in: "   ", want: "0"},
		{name: "garbage", in: "abc", want: "0"},
		{name: "trailing garbage", in: "12abc", want: "0"},
		{name: "small exponent", in: "1.5e3", want: "1500"},
		{name: "sub-centavo kept", in: "0.0004", want: "0.0004"},
		{name: "largest amount", in: "9,999,999,999.99", want: "9999999999.99"},
		{name: "above largest amount", in: "10000000000", want: "0"},
		{name: "negative above largest amount", in: "-1e11", want: "0"},
		{name: "huge exponent", in: "1e60000000", want: "0"},
		{name: "tiny exponent", in: "1e-60000000", want: "0"},
		{name: "too long", in: "0.000000000000000000000000000000001", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Parse(tt.in)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestPeso(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "₱0.00"},
		{in: "800", want: "₱800.00"},
		{in: "1234.5", want: "₱1,234.50"},
		{in: "1000000", want: "₱1,000,000.00"},
		{in: "3800.005", want: "₱3,800.01"},
		{in: "-200", want: "₱-200.00"},
		{in: "999", want: "₱999.00"},
		{in: "9999999999.99", want: "₱9,999,999,999.99"},
		{in: "123456789012345678901.23", want: "₱123,456,789,012,345,678,901.23"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Peso(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestParseHugeExponentReturnsPromptly(t *testing.T) {
	t.Parallel()

	done := make(chan decimal.Decimal, 1)
	go func() {
		done <- Parse("1e60000000").Round(3)
	}()

	select {
	case got := <-done:
		assert.True(t, got.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("Parse did not return for a huge exponent")
	}
}

func TestHasPlaces(t *testing.T) {
	t.Parallel()

	assert.True(t, HasPlaces(decimal.RequireFromString("2.5"), QuantityPlaces))
	assert.True(t, HasPlaces(decimal.RequireFromString("0.125"), QuantityPlaces))
	assert.False(t, HasPlaces(decimal.RequireFromString("0.0004"), QuantityPlaces))
	assert.True(t, HasPlaces(decimal.RequireFromString("10.50"), AmountPlaces))
	assert.False(t, HasPlaces(decimal.RequireFromString("10.005"), AmountPlaces))
}

func TestIsSettled(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSettled(decimal.Zero))
	assert.True(t, IsSettled(decimal.RequireFromString("0.001")))
	assert.True(t, IsSettled(decimal.RequireFromString("-200")))
	assert.False(t, IsSettled(decimal.RequireFromString("0.01")))
	assert.False(t, IsSettled(decimal.RequireFromString("800")))
}

func TestInputUnmarshal(t *testing.T) {
	t.Parallel()

	var body struct {
		A Input `json:"a"`
		B Input `json:"b"`
		C Input `json:"c"`
		D Input `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12.5, "b": "3000", "c": null, "d": "oops"}`), &body))

	assert.Equal(t, "12.5", body.A.Decimal().String())
	assert.Equal(t, "3000", body.B.Decimal().String())
	assert.True(t, body.C.Decimal().IsZero())
	assert.True(t, body.D.Decimal().IsZero())
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(map[string]decimal.Decimal{"total": decimal.RequireFromString("3800.00")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 3800}`, string(b))
}
