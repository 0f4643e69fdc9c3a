package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPeriodConversions(t *testing.T) {
	annual := decimal.NewFromInt(1200)
	assert.True(t, Monthly(annual).Equal(decimal.NewFromInt(100)))
	assert.True(t, Annual(Monthly(annual)).Equal(annual))

	rate := decimal.NewFromFloat(0.06)
	assert.True(t, Monthly(rate).Equal(decimal.NewFromFloat(0.005)))
}

func TestRounding(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"-2.345", "-2.35"},
	}
	for _, c := range cases {
		d, _ := decimal.NewFromString(c.in)
		assert.Equal(t, c.out, Round(d).StringFixed(2), "round(%s)", c.in)
	}
}

func TestClampZero(t *testing.T) {
	assert.True(t, ClampZero(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, ClampZero(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromFloat(1234.56), "$1,234.56"},
		{decimal.NewFromInt(0), "$0.00"},
		{decimal.NewFromFloat(1000000.005), "$1,000,000.01"},
		{decimal.NewFromFloat(-250.5), "-$250.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in))
	}
	assert.Equal(t, "$12.50", FormatFloat(12.5))
	assert.Equal(t, "4.00%", FormatRate(decimal.NewFromFloat(0.04)))
}
