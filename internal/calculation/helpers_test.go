package calculation

import (
	"testing"
	"time"

	"github.com/rpgo/networth-projector/internal/asset"
	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rpgo/networth-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time { return dateutil.MustParseDate(s) }

func equityDescriptor(name, value string, tags ...domain.AllocationTag) domain.AssetDescriptor {
	return domain.AssetDescriptor{
		Name:       name,
		Kind:       domain.KindEquity,
		StartDate:  domain.LiteralDate(day("2020-01-01")),
		EndDate:    domain.LiteralDate(day("2060-01-01")),
		TaxClass:   domain.TaxClassCapitalGain,
		Allocation: tags,
		Equity:     &domain.EquityParams{InitialValue: d(value)},
	}
}

func salaryDescriptor(name, annual, start, end string) domain.AssetDescriptor {
	return domain.AssetDescriptor{
		Name:      name,
		Kind:      domain.KindSalary,
		StartDate: domain.LiteralDate(day(start)),
		EndDate:   domain.LiteralDate(day(end)),
		TaxClass:  domain.TaxClassIncome,
		Salary:    &domain.SalaryParams{Salary: d(annual)},
	}
}

// activate builds the descriptors and advances them into their first active period.
func activate(t *testing.T, descs ...domain.AssetDescriptor) []asset.Asset {
	t.Helper()
	assets, err := asset.NewAll(descs, "", 1)
	require.NoError(t, err)
	for _, a := range assets {
		require.NoError(t, a.BindDates(domain.Bindings{}))
		_, err := a.PeriodUpdate(0, day("2020-01-01"))
		require.NoError(t, err)
	}
	return assets
}

func values(assets []asset.Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.Value().String()
	}
	return out
}
