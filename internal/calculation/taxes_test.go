package calculation

import (
	"testing"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxesForPeriod(t *testing.T) {
	dividends := equityDescriptor("brokerage", "12000", domain.AllocStock)
	dividends.Equity.DividendYield = d("0.12")
	benefit := salaryDescriptor("pension", "6000", "2020-01-01", "2060-01-01")
	benefit.TaxClass = domain.TaxClassSocialSecurity

	assets := activate(t,
		salaryDescriptor("paycheck", "120000", "2020-01-01", "2060-01-01"),
		dividends,
		benefit,
	)
	rates := domain.TaxRates{
		domain.TaxClassIncome:      d("0.2"),
		domain.TaxClassCapitalGain: d("0.15"),
	}

	got := TaxesForPeriod(assets, d("500"), rates)

	// (10000 + 500) * 0.2 + 120 * 0.15; social security has no rate
	assert.True(t, got.Total.Equal(d("2118")), "total %s", got.Total)
	assert.True(t, got.ByClass[domain.TaxClassIncome].Income.Equal(d("10500")))
	assert.True(t, got.ByClass[domain.TaxClassCapitalGain].Tax.Equal(d("18")))
	assert.True(t, got.ByClass[domain.TaxClassSocialSecurity].Income.Equal(d("500")))
	assert.True(t, got.ByClass[domain.TaxClassSocialSecurity].Tax.IsZero())
}

func TestTaxesForPeriodWithdrawalOnly(t *testing.T) {
	got := TaxesForPeriod(nil, d("1000"), domain.TaxRates{domain.TaxClassIncome: d("0.1")})
	assert.True(t, got.Total.Equal(d("100")))

	none := TaxesForPeriod(nil, decimal.Zero, domain.TaxRates{})
	assert.True(t, none.Total.IsZero())
}
