package asset

import (
	"math/rand"
	"time"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rpgo/networth-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// Equity is a brokerage or retirement account
type Equity struct {
	lifecycle
	params domain.EquityParams
	rng    *rand.Rand

	sampler    ReturnSampler
	incomeRate decimal.Decimal
	costBasis  decimal.Decimal
	// realized gains accumulate on withdrawal and are reported once in the
	// next period's taxable income
	realizedGains decimal.Decimal
	lastReturn    decimal.Decimal
}

// NewEquity builds a dormant account. rng drives stochastic and historical
// returns; nil falls back to a fixed source so runs stay reproducible.
func NewEquity(desc domain.AssetDescriptor, rng *rand.Rand) *Equity {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Equity{lifecycle: newLifecycle(desc), params: *desc.Equity, rng: rng}
}

func (e *Equity) setup(time.Time) error {
	p := e.params
	e.value = p.InitialValue
	e.costBasis = p.InitialValue
	if p.CostBasis != nil {
		e.costBasis = *p.CostBasis
	}
	e.growthRate = money.Monthly(p.AppreciationRate)
	e.volatility = monthlyVolatility(p.Volatility)
	if len(p.HistoricalReturns) > 0 {
		e.volatility = decimal.Zero
	}
	e.expenseRate = money.Monthly(p.ExpenseRatio)
	e.incomeRate = money.Monthly(p.DividendYield)
	e.income = decimal.Zero
	e.expenses = decimal.Zero
	e.sampler = newSampler(e.growthRate, e.volatility, p.HistoricalReturns, e.rng)
	return nil
}

func (e *Equity) PeriodUpdate(period int, date time.Time) (domain.PeriodMetrics, error) {
	m := domain.PeriodMetrics{Period: period, Date: date}
	active, err := e.enter(date, e.setup)
	if err != nil || !active {
		if e.state == domain.StateRetired {
			e.costBasis = decimal.Zero
			e.realizedGains = decimal.Zero
		}
		return m, err
	}

	// dividends are paid on the value before this period's return
	e.income = e.value.Mul(e.incomeRate)

	e.lastReturn = e.sampler.Next()
	m.Appreciation = e.value.Mul(e.lastReturn)
	e.value = money.ClampZero(e.value.Add(m.Appreciation))

	m.OperatingExpense = e.value.Mul(e.expenseRate).Add(e.expenses)
	m.CashFlow = e.income.Sub(m.OperatingExpense)
	m.TaxableIncome = e.income.Sub(e.expenses).Add(e.realizedGains)
	e.realizedGains = decimal.Zero
	return m, nil
}

// ApplyInvestment adds contributions to the cost basis and realizes gains
// pro rata on withdrawals.
func (e *Equity) ApplyInvestment(amount decimal.Decimal) decimal.Decimal {
	before := e.value
	actual := e.applyToValue(amount)
	switch {
	case actual.IsPositive():
		e.costBasis = e.costBasis.Add(actual)
	case actual.IsNegative() && before.IsPositive():
		fraction := actual.Neg().Div(before)
		basis := e.costBasis.Mul(fraction)
		e.realizedGains = e.realizedGains.Add(actual.Neg().Sub(basis))
		e.costBasis = e.costBasis.Sub(basis)
	}
	return actual
}

// CostBasis returns the remaining cost basis.
func (e *Equity) CostBasis() decimal.Decimal { return e.costBasis }

// PendingGains returns gains realized since the last period update.
func (e *Equity) PendingGains() decimal.Decimal { return e.realizedGains }

// LastReturn returns the monthly return applied in the most recent active period.
func (e *Equity) LastReturn() decimal.Decimal { return e.lastReturn }
