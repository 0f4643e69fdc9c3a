package calculation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/networth-projector/internal/asset"
	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rpgo/networth-projector/pkg/dateutil"
	"github.com/rpgo/networth-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// ErrNoTimeline is returned when the scenario's start date is after its end date.
var ErrNoTimeline = errors.New("scenario has no simulation periods")

// Engine drives a monthly projection of a configuration's assets
type Engine struct {
	scenario    domain.Scenario
	descriptors []domain.AssetDescriptor
	timeline    []time.Time
	bindings    domain.Bindings

	seed    int64
	filter  string
	baseDir string
	returns *ReturnSeriesCache
	Logger  Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger; nil keeps the no-op logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) { e.SetLogger(l) }
}

// WithSeed overrides the scenario seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithAssetFilter keeps only assets whose name contains filter.
func WithAssetFilter(filter string) Option {
	return func(e *Engine) { e.filter = filter }
}

// WithBaseDir resolves relative historical return files against dir.
func WithBaseDir(dir string) Option {
	return func(e *Engine) { e.baseDir = dir }
}

// WithReturnCache shares loaded return series between engines.
func WithReturnCache(c *ReturnSeriesCache) Option {
	return func(e *Engine) { e.returns = c }
}

// NewEngine prepares a projection of cfg. It builds the timeline, loads any
// historical return files and checks that every descriptor can be built.
func NewEngine(cfg *domain.Configuration, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	e := &Engine{
		scenario: cfg.Scenario,
		seed:     cfg.Scenario.Seed,
		Logger:   NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.returns == nil {
		e.returns = NewReturnSeriesCache()
	}
	if e.seed == 0 {
		e.seed = seedFunc()
	}

	start, end := e.scenario.StartDate.Time(), e.scenario.EndDate.Time()
	timeline, err := dateutil.MonthlySequence(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTimeline, err)
	}
	e.timeline = timeline
	e.bindings = e.scenario.Bindings()

	descs, err := e.resolveReturnFiles(cfg.Assets)
	if err != nil {
		return nil, err
	}
	e.descriptors = descs

	if _, err := e.buildAssets(e.seed); err != nil {
		return nil, err
	}
	return e, nil
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Seed returns the seed Run uses.
func (e *Engine) Seed() int64 { return e.seed }

// Timeline returns the simulated period dates.
func (e *Engine) Timeline() []time.Time { return e.timeline }

// resolveReturnFiles copies descriptors, replacing historical_returns_file
// references with the loaded returns. Inline returns win over a file.
func (e *Engine) resolveReturnFiles(in []domain.AssetDescriptor) ([]domain.AssetDescriptor, error) {
	out := make([]domain.AssetDescriptor, len(in))
	copy(out, in)
	for i := range out {
		eq := out[i].Equity
		if eq == nil || eq.HistoricalReturnsFile == "" || len(eq.HistoricalReturns) > 0 {
			continue
		}
		path := eq.HistoricalReturnsFile
		if !filepath.IsAbs(path) && e.baseDir != "" {
			path = filepath.Join(e.baseDir, path)
		}
		series, err := e.returns.Load(path)
		if err != nil {
			return nil, fmt.Errorf("asset %s: failed to load historical returns: %w", out[i].Name, err)
		}
		clone := *eq
		clone.HistoricalReturns = series.Returns()
		out[i].Equity = &clone
		e.Logger.Debugf("asset %s: loaded %d historical returns from %s (mean %s)",
			out[i].Name, series.Statistics.Count, path, series.Statistics.Mean.StringFixed(4))
	}
	return out, nil
}

// buildAssets instantiates a fresh, date-bound asset set.
func (e *Engine) buildAssets(seed int64) ([]asset.Asset, error) {
	assets, err := asset.NewAll(e.descriptors, e.filter, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to build assets: %w", err)
	}
	for _, a := range assets {
		if err := a.BindDates(e.bindings); err != nil {
			return nil, err
		}
	}
	return assets, nil
}

// Run projects the configuration with the engine's seed.
func (e *Engine) Run(ctx context.Context) (*domain.Projection, error) {
	return e.RunWithSeed(ctx, e.seed)
}

// RunWithSeed projects the configuration over fresh assets seeded with seed.
// Runs never share state, so an engine may be run repeatedly.
func (e *Engine) RunWithSeed(ctx context.Context, seed int64) (*domain.Projection, error) {
	assets, err := e.buildAssets(seed)
	if err != nil {
		return nil, err
	}

	p := &domain.Projection{
		RunID:       uuid.NewString(),
		GeneratedAt: nowFunc(),
		Scenario:    e.scenario.Name,
		Seed:        seed,
		Periods:     make([]domain.PeriodRow, 0, len(e.timeline)),
		AssetOrder:  make([]string, 0, len(assets)),
		AssetTraces: make(map[string][]domain.AssetSnapshot, len(assets)),
	}
	for _, a := range assets {
		p.AssetOrder = append(p.AssetOrder, a.Name())
		p.AssetTraces[a.Name()] = make([]domain.AssetSnapshot, 0, len(e.timeline))
	}

	e.Logger.Infof("projection %s: %d assets, %d periods, seed %d", p.RunID, len(assets), len(e.timeline), seed)
	for period, date := range e.timeline {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := e.step(assets, p, period, date)
		if err != nil {
			return nil, err
		}
		p.Periods = append(p.Periods, row)
	}
	e.Logger.Infof("projection %s: final net worth %s", p.RunID, money.Format(p.FinalNetWorth()))
	return p, nil
}

// step advances every asset one period and folds the results into a row.
func (e *Engine) step(assets []asset.Asset, p *domain.Projection, period int, date time.Time) (domain.PeriodRow, error) {
	sc := &e.scenario
	var taxable, operating, cashFlow decimal.Decimal
	for _, a := range assets {
		m, err := a.PeriodUpdate(period, date)
		if err != nil {
			return domain.PeriodRow{}, fmt.Errorf("period %d (%s): %w", period, date.Format(dateutil.DateLayout), err)
		}
		p.AssetTraces[a.Name()] = append(p.AssetTraces[a.Name()], a.Snapshot(period, date, m))
		taxable = taxable.Add(m.TaxableIncome)
		operating = operating.Add(m.OperatingExpense)
		cashFlow = cashFlow.Add(m.CashFlow)
	}

	var totalValue, totalDebt decimal.Decimal
	for _, a := range assets {
		totalValue = totalValue.Add(a.Value())
		totalDebt = totalDebt.Add(a.Debt())
	}

	row := domain.PeriodRow{
		Period:   period,
		Date:     date,
		Age:      dateutil.FractionalAge(sc.BirthDate.Time(), date),
		NetWorth: totalValue.Sub(totalDebt),
		Debt:     totalDebt,
	}
	if !sc.SpouseBirthDate.IsZero() {
		row.SpouseAge = dateutil.FractionalAge(sc.SpouseBirthDate.Time(), date)
	}
	retired := row.Age >= float64(sc.RetirementAge)

	if retired {
		row.Withdrawal = e.withdraw(assets, period)
	}

	row.TaxableIncome = taxable.Add(row.Withdrawal)
	row.OperatingExpenses = operating
	row.TaxesPaid = TaxesForPeriod(assets, row.Withdrawal, sc.TaxRates).Total
	row.FreeCashFlow = row.TaxableIncome.Add(cashFlow).Sub(row.TaxesPaid)

	if !retired && row.FreeCashFlow.IsPositive() {
		target := sc.SavingsRate.Mul(row.FreeCashFlow)
		row.Investment = AllocateSplit(assets, target, sc.StockAllocation, sc.BondAllocation)
		if !row.Investment.Equal(target) {
			e.Logger.Debugf("period %d: invested %s of %s target", period, row.Investment.StringFixed(2), target.StringFixed(2))
		}
	}
	row.UnallocatedCash = row.FreeCashFlow.Sub(row.Investment)
	return row, nil
}

// withdraw draws the monthly share of the retirement portfolio from the
// stock and bond subsets and returns the amount actually withdrawn.
func (e *Engine) withdraw(assets []asset.Asset, period int) decimal.Decimal {
	sc := &e.scenario
	var portfolio decimal.Decimal
	for _, a := range Tagged(assets, domain.AllocRetirement) {
		portfolio = portfolio.Add(a.Value().Sub(a.Debt()))
	}
	target := money.ClampZero(money.Monthly(sc.WithdrawalRate.Mul(portfolio)))
	if target.IsZero() {
		return decimal.Zero
	}
	withdrawn := AllocateSplit(assets, target.Neg(), sc.StockAllocation, sc.BondAllocation).Neg()
	if withdrawn.LessThan(target) {
		e.Logger.Warnf("period %d: withdrew %s of %s target", period, money.Format(withdrawn), money.Format(target))
	}
	return withdrawn
}
