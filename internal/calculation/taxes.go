package calculation

import (
	"github.com/rpgo/networth-projector/internal/asset"
	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX ASSUMPTIONS:
//
// 1. Every tax class is taxed at one flat rate; there are no brackets,
//    deductions or phase-ins.
// 2. The base for a class is the sum of the current "income" field of the
//    assets in that class. Portfolio withdrawals count as ordinary income.
// 3. Taxes are the sum of the per-class products. A class with no configured
//    rate is untaxed.

// ClassTax is the income and tax for one tax class in one period
type ClassTax struct {
	Income decimal.Decimal `json:"income"`
	Rate   decimal.Decimal `json:"rate"`
	Tax    decimal.Decimal `json:"tax"`
}

// TaxBreakdown is the per-class result of a period's tax aggregation
type TaxBreakdown struct {
	ByClass map[domain.TaxClass]ClassTax `json:"by_class"`
	Total   decimal.Decimal              `json:"total"`
}

// TaxesForPeriod partitions assets by tax class, sums each class's income,
// adds withdrawal to the income class and applies each class's rate.
func TaxesForPeriod(assets []asset.Asset, withdrawal decimal.Decimal, rates domain.TaxRates) TaxBreakdown {
	totals := make(map[domain.TaxClass]decimal.Decimal, len(domain.TaxClasses))
	for _, a := range assets {
		totals[a.TaxClass()] = totals[a.TaxClass()].Add(a.Income())
	}
	totals[domain.TaxClassIncome] = totals[domain.TaxClassIncome].Add(withdrawal)

	breakdown := TaxBreakdown{ByClass: make(map[domain.TaxClass]ClassTax, len(totals))}
	for class, income := range totals {
		rate := rates.Rate(class)
		tax := income.Mul(rate)
		breakdown.ByClass[class] = ClassTax{Income: income, Rate: rate, Tax: tax}
		breakdown.Total = breakdown.Total.Add(tax)
	}
	return breakdown
}
