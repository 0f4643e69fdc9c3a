package domain

import (
	"strconv"
	"time"

	"github.com/rpgo/networth-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// PeriodMetrics are the derived metrics an asset reports for one period.
// All are zero unless the asset is active.
type PeriodMetrics struct {
	Period           int             `json:"period"`
	Date             time.Time       `json:"date"`
	Appreciation     decimal.Decimal `json:"appreciation"`
	CashFlow         decimal.Decimal `json:"cash_flow"`
	OperatingExpense decimal.Decimal `json:"operating_expense"`
	TaxableIncome    decimal.Decimal `json:"taxable_income"`
}

// AssetSnapshot is one row of an asset's trace
type AssetSnapshot struct {
	Period      int             `json:"period"`
	Date        time.Time       `json:"date"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Debt        decimal.Decimal `json:"debt"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`

	Appreciation     decimal.Decimal `json:"appreciation"`
	CashFlow         decimal.Decimal `json:"cash_flow"`
	OperatingExpense decimal.Decimal `json:"operating_expense"`
	TaxableIncome    decimal.Decimal `json:"taxable_income"`
	State            string          `json:"state"`
}

// AssetSnapshotHeader names the columns of AssetSnapshot.Record.
var AssetSnapshotHeader = []string{
	"Period", "Date", "Name", "Description", "Value", "Debt", "Income", "Expenses",
	"Appreciation", "CashFlow", "OperatingExpense", "TaxableIncome", "State",
}

// Record renders the snapshot as a fixed-width string record.
func (s AssetSnapshot) Record() []string {
	return []string{
		strconv.Itoa(s.Period),
		s.Date.Format(dateutil.DateLayout),
		s.Name,
		s.Description,
		s.Value.StringFixed(2),
		s.Debt.StringFixed(2),
		s.Income.StringFixed(2),
		s.Expenses.StringFixed(2),
		s.Appreciation.StringFixed(2),
		s.CashFlow.StringFixed(2),
		s.OperatingExpense.StringFixed(2),
		s.TaxableIncome.StringFixed(2),
		s.State,
	}
}

// PeriodRow is one row of the model-level trace
type PeriodRow struct {
	Period            int             `json:"period"`
	Date              time.Time       `json:"date"`
	Age               float64         `json:"age"`
	SpouseAge         float64         `json:"spouse_age,omitempty"`
	Withdrawal        decimal.Decimal `json:"withdrawal"`
	NetWorth          decimal.Decimal `json:"net_worth"`
	Debt              decimal.Decimal `json:"debt"`
	TaxableIncome     decimal.Decimal `json:"taxable_income"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	TaxesPaid         decimal.Decimal `json:"taxes_paid"`
	FreeCashFlow      decimal.Decimal `json:"free_cash_flow"`
	Investment        decimal.Decimal `json:"investment"`
	UnallocatedCash   decimal.Decimal `json:"unallocated_cash"`
}

// PeriodRowHeader names the columns of PeriodRow.Record.
var PeriodRowHeader = []string{
	"Period", "Date", "Age", "SpouseAge", "Withdrawal", "NetWorth", "Debt", "TaxableIncome",
	"OperatingExpenses", "TaxesPaid", "FreeCashFlow", "Investment", "UnallocatedCash",
}

// Record renders the row as a fixed-width string record.
func (r PeriodRow) Record() []string {
	return []string{
		strconv.Itoa(r.Period),
		r.Date.Format(dateutil.DateLayout),
		strconv.FormatFloat(r.Age, 'f', 2, 64),
		strconv.FormatFloat(r.SpouseAge, 'f', 2, 64),
		r.Withdrawal.StringFixed(2),
		r.NetWorth.StringFixed(2),
		r.Debt.StringFixed(2),
		r.TaxableIncome.StringFixed(2),
		r.OperatingExpenses.StringFixed(2),
		r.TaxesPaid.StringFixed(2),
		r.FreeCashFlow.StringFixed(2),
		r.Investment.StringFixed(2),
		r.UnallocatedCash.StringFixed(2),
	}
}

// Projection is the output of a single engine run
type Projection struct {
	RunID       string                     `json:"run_id"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Scenario    string                     `json:"scenario"`
	Seed        int64                      `json:"seed"`
	Periods     []PeriodRow                `json:"periods"`
	AssetOrder  []string                   `json:"asset_order"`
	AssetTraces map[string][]AssetSnapshot `json:"asset_traces"`
}

// FinalNetWorth returns the net worth of the last period, zero for an empty run.
func (p *Projection) FinalNetWorth() decimal.Decimal {
	if len(p.Periods) == 0 {
		return decimal.Zero
	}
	return p.Periods[len(p.Periods)-1].NetWorth
}

// PeakNetWorth returns the highest recorded net worth and the row it occurred in.
func (p *Projection) PeakNetWorth() (decimal.Decimal, *PeriodRow) {
	var peak *PeriodRow
	for i := range p.Periods {
		if peak == nil || p.Periods[i].NetWorth.GreaterThan(peak.NetWorth) {
			peak = &p.Periods[i]
		}
	}
	if peak == nil {
		return decimal.Zero, nil
	}
	return peak.NetWorth, peak
}

// FirstRetiredRow returns the first period with a withdrawal, or nil when the
// projection never draws on the retirement portfolio.
func (p *Projection) FirstRetiredRow() *PeriodRow {
	for i := range p.Periods {
		if p.Periods[i].Withdrawal.IsPositive() {
			return &p.Periods[i]
		}
	}
	return nil
}

// Totals sums the flow columns over the whole projection.
func (p *Projection) Totals() PeriodRow {
	var t PeriodRow
	for _, r := range p.Periods {
		t.Withdrawal = t.Withdrawal.Add(r.Withdrawal)
		t.TaxableIncome = t.TaxableIncome.Add(r.TaxableIncome)
		t.OperatingExpenses = t.OperatingExpenses.Add(r.OperatingExpenses)
		t.TaxesPaid = t.TaxesPaid.Add(r.TaxesPaid)
		t.FreeCashFlow = t.FreeCashFlow.Add(r.FreeCashFlow)
		t.Investment = t.Investment.Add(r.Investment)
		t.UnallocatedCash = t.UnallocatedCash.Add(r.UnallocatedCash)
	}
	return t
}

// MonteCarloResult summarizes many seeded projections of one configuration
type MonteCarloResult struct {
	Scenario         string            `json:"scenario"`
	NumSimulations   int               `json:"num_simulations"`
	BaseSeed         int64             `json:"base_seed"`
	SuccessRate      decimal.Decimal   `json:"success_rate"`
	MedianNetWorth   decimal.Decimal   `json:"median_net_worth"`
	PercentileRanges PercentileRanges  `json:"percentile_ranges"`
	FinalNetWorths   []decimal.Decimal `json:"final_net_worths"`
	Seeds            []int64           `json:"seeds"`
}

// PercentileRanges represents percentile ranges for Monte Carlo results
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}
