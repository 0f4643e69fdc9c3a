package calculation

import (
	"github.com/rpgo/networth-projector/internal/asset"
	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Tagged returns the assets carrying tag, in their original order.
func Tagged(assets []asset.Asset, tag domain.AllocationTag) []asset.Asset {
	var out []asset.Asset
	for _, a := range assets {
		if a.HasTag(tag) {
			out = append(out, a)
		}
	}
	return out
}

// Allocate spreads amount evenly over the assets tagged with tag and returns
// the total actually applied. Positive amounts invest, negative amounts
// withdraw. When an asset cannot absorb its share the per-share target for
// the remaining assets becomes 2*share - actual, so earlier assets in
// configuration order absorb shortfalls first. No matching assets is a
// no-op that returns zero.
func Allocate(assets []asset.Asset, tag domain.AllocationTag, amount decimal.Decimal) decimal.Decimal {
	targets := Tagged(assets, tag)
	if len(targets) == 0 || amount.IsZero() {
		return decimal.Zero
	}

	m := decimal.NewFromInt(int64(len(targets)))
	share := amount.Div(m)
	// division rounds; the last asset takes the residue so full shares sum to amount
	residue := amount.Sub(share.Mul(m))
	total := decimal.Zero
	for i, a := range targets {
		request := share
		if i == len(targets)-1 {
			request = share.Add(residue)
		}
		actual := a.ApplyInvestment(request)
		total = total.Add(actual)
		if !actual.Equal(request) {
			share = request.Mul(decimal.NewFromInt(2)).Sub(actual)
		}
	}
	return total
}

// AllocateSplit divides amount between the stock and bond subsets by the
// given fractions and returns the total applied to both.
func AllocateSplit(assets []asset.Asset, amount, stockFraction, bondFraction decimal.Decimal) decimal.Decimal {
	stocks := Allocate(assets, domain.AllocStock, amount.Mul(stockFraction))
	bonds := Allocate(assets, domain.AllocBond, amount.Mul(bondFraction))
	return stocks.Add(bonds)
}
