package asset

import (
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
)

// ReturnSampler yields one monthly return per call.
type ReturnSampler interface {
	Next() decimal.Decimal
}

type fixedReturn struct {
	rate decimal.Decimal
}

func (f fixedReturn) Next() decimal.Decimal { return f.rate }

// normalReturn draws from Normal(mean, stddev).
type normalReturn struct {
	mean   float64
	stddev float64
	rng    *rand.Rand
}

func (n normalReturn) Next() decimal.Decimal {
	return decimal.NewFromFloat(n.mean + n.stddev*n.rng.NormFloat64())
}

// historicalReturn draws uniformly from observed monthly returns.
type historicalReturn struct {
	returns []decimal.Decimal
	rng     *rand.Rand
}

func (h historicalReturn) Next() decimal.Decimal {
	return h.returns[h.rng.Intn(len(h.returns))]
}

// monthlyVolatility converts an annual standard deviation to monthly.
func monthlyVolatility(annual decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(annual.InexactFloat64() / math.Sqrt(12))
}

// newSampler picks the return model: historical observations take
// precedence, then a normal draw when volatility is positive, else the
// deterministic rate.
func newSampler(rate, volatility decimal.Decimal, historical []decimal.Decimal, rng *rand.Rand) ReturnSampler {
	switch {
	case len(historical) > 0:
		return historicalReturn{returns: historical, rng: rng}
	case volatility.IsPositive():
		return normalReturn{mean: rate.InexactFloat64(), stddev: volatility.InexactFloat64(), rng: rng}
	default:
		return fixedReturn{rate: rate}
	}
}
