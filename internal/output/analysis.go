package output

import (
	"time"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Milestones collects the headline facts of a projection.
// Dates are nil when the event never happens inside the horizon.
type Milestones struct {
	StartNetWorth   decimal.Decimal
	FinalNetWorth   decimal.Decimal
	PeakNetWorth    decimal.Decimal
	PeakDate        time.Time
	RetirementDate  *time.Time
	FirstWithdrawal decimal.Decimal
	DebtFreeDate    *time.Time
	DepletionDate   *time.Time
	Totals          domain.PeriodRow
}

// AnalyzeProjection derives the milestones the console summary reports.
func AnalyzeProjection(p *domain.Projection) Milestones {
	var m Milestones
	if p == nil || len(p.Periods) == 0 {
		return m
	}
	m.StartNetWorth = p.Periods[0].NetWorth
	m.FinalNetWorth = p.FinalNetWorth()
	if peak, row := p.PeakNetWorth(); row != nil {
		m.PeakNetWorth = peak
		m.PeakDate = row.Date
	}
	m.Totals = p.Totals()

	retiredAt := -1
	if row := p.FirstRetiredRow(); row != nil {
		d := row.Date
		m.RetirementDate = &d
		m.FirstWithdrawal = row.Withdrawal
		retiredAt = row.Period
	}

	hadDebt := false
	for i := range p.Periods {
		r := p.Periods[i]
		if r.Debt.IsPositive() {
			hadDebt = true
		} else if hadDebt && m.DebtFreeDate == nil {
			d := r.Date
			m.DebtFreeDate = &d
		}
		if retiredAt >= 0 && r.Period > retiredAt && !r.NetWorth.IsPositive() && m.DepletionDate == nil {
			d := r.Date
			m.DepletionDate = &d
		}
	}
	return m
}

// FinalAssetStates returns the last snapshot of each asset in configuration order.
func FinalAssetStates(p *domain.Projection) []domain.AssetSnapshot {
	if p == nil {
		return nil
	}
	out := make([]domain.AssetSnapshot, 0, len(p.AssetOrder))
	for _, name := range p.AssetOrder {
		trace := p.AssetTraces[name]
		if len(trace) == 0 {
			continue
		}
		out = append(out, trace[len(trace)-1])
	}
	return out
}
