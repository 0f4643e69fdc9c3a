// Package asset implements the per-asset financial state machine: a
// date-gated lifecycle shared by every kind plus the real estate, equity and
// salary mathematics applied while an asset is active.
package asset

import (
	"errors"
	"fmt"
	"time"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnresolvedDate is returned when a lifecycle bound still holds a
	// symbolic token at the time a period is simulated.
	ErrUnresolvedDate = errors.New("unresolved symbolic date")
	// ErrAlreadyBound is returned by a second BindDates call.
	ErrAlreadyBound = errors.New("dates already bound")
	// ErrUnknownKind is returned by the factory for an unsupported kind.
	ErrUnknownKind = errors.New("unknown asset kind")
)

// Asset is a financial entity simulated one period at a time
type Asset interface {
	Name() string
	Description() string
	Kind() domain.AssetKind
	TaxClass() domain.TaxClass
	Allocation() []domain.AllocationTag
	HasTag(tag domain.AllocationTag) bool
	State() domain.AssetState

	// BindDates replaces symbolic lifecycle bounds with concrete values. It
	// must be called exactly once, before the first PeriodUpdate.
	BindDates(b domain.Bindings) error
	// PeriodUpdate advances the asset one period and returns its derived
	// metrics, all zero unless the asset is active on date.
	PeriodUpdate(period int, date time.Time) (domain.PeriodMetrics, error)
	// Snapshot returns the trace record for a period without mutating state.
	Snapshot(period int, date time.Time, m domain.PeriodMetrics) domain.AssetSnapshot
	// ApplyInvestment adds amount to the value and returns what was actually
	// applied. A withdrawal larger than the value empties it and returns the
	// smaller magnitude.
	ApplyInvestment(amount decimal.Decimal) decimal.Decimal

	Value() decimal.Decimal
	Debt() decimal.Decimal
	Income() decimal.Decimal
	Expenses() decimal.Decimal
	GrowthRate() decimal.Decimal
	ExpenseRate() decimal.Decimal
}

// lifecycle holds the state every kind shares. Kinds embed it and supply
// their own setup and per-period math.
type lifecycle struct {
	desc  domain.AssetDescriptor
	start domain.DateRef
	end   domain.DateRef

	bound      bool
	state      domain.AssetState
	setupRun   bool
	setupCount int

	value       decimal.Decimal
	debt        decimal.Decimal
	income      decimal.Decimal
	expenses    decimal.Decimal
	growthRate  decimal.Decimal
	volatility  decimal.Decimal
	expenseRate decimal.Decimal
}

func newLifecycle(desc domain.AssetDescriptor) lifecycle {
	start, end := desc.StartDate, desc.EndDate
	if start.IsZero() {
		start = domain.SymbolicDate(domain.TokenFirstDate)
	}
	if end.IsZero() {
		end = domain.SymbolicDate(domain.TokenEndDate)
	}
	return lifecycle{desc: desc, start: start, end: end}
}

func (l *lifecycle) Name() string                       { return l.desc.Name }
func (l *lifecycle) Description() string                { return l.desc.Description }
func (l *lifecycle) Kind() domain.AssetKind             { return l.desc.Kind }
func (l *lifecycle) TaxClass() domain.TaxClass          { return l.desc.TaxClass }
func (l *lifecycle) Allocation() []domain.AllocationTag { return l.desc.Allocation }
func (l *lifecycle) State() domain.AssetState           { return l.state }
func (l *lifecycle) Value() decimal.Decimal             { return l.value }
func (l *lifecycle) Debt() decimal.Decimal              { return l.debt }
func (l *lifecycle) Income() decimal.Decimal            { return l.income }
func (l *lifecycle) Expenses() decimal.Decimal          { return l.expenses }
func (l *lifecycle) GrowthRate() decimal.Decimal        { return l.growthRate }
func (l *lifecycle) ExpenseRate() decimal.Decimal       { return l.expenseRate }

func (l *lifecycle) HasTag(tag domain.AllocationTag) bool { return l.desc.HasTag(tag) }

// StartDate and EndDate expose the (possibly still symbolic) bounds.
func (l *lifecycle) StartDate() domain.DateRef { return l.start }
func (l *lifecycle) EndDate() domain.DateRef   { return l.end }

func (l *lifecycle) BindDates(b domain.Bindings) error {
	if l.bound {
		return fmt.Errorf("asset %s: %w", l.desc.Name, ErrAlreadyBound)
	}
	l.start = l.start.Resolve(b.Dates)
	l.end = l.end.Resolve(b.Dates)
	l.bound = true
	return nil
}

// enter evaluates the lifecycle state for date. It runs setup the first
// time the asset becomes active and reports whether the asset is active.
func (l *lifecycle) enter(date time.Time, setup func(time.Time) error) (bool, error) {
	if l.state == domain.StateRetired {
		return false, nil
	}
	if !l.start.IsResolved() || !l.end.IsResolved() {
		return false, fmt.Errorf("asset %s: start %q, end %q: %w", l.desc.Name, l.start, l.end, ErrUnresolvedDate)
	}
	switch {
	case date.Before(l.start.Date):
		l.state = domain.StateDormant
		return false, nil
	case !date.Before(l.end.Date):
		l.retire()
		return false, nil
	}
	l.state = domain.StateActive
	if !l.setupRun {
		if err := setup(date); err != nil {
			return false, fmt.Errorf("asset %s: setup: %w", l.desc.Name, err)
		}
		l.setupRun = true
		l.setupCount++
	}
	return true, nil
}

func (l *lifecycle) retire() {
	l.state = domain.StateRetired
	l.value = decimal.Zero
	l.debt = decimal.Zero
	l.income = decimal.Zero
	l.expenses = decimal.Zero
	l.growthRate = decimal.Zero
	l.volatility = decimal.Zero
	l.expenseRate = decimal.Zero
}

func (l *lifecycle) Snapshot(period int, date time.Time, m domain.PeriodMetrics) domain.AssetSnapshot {
	return domain.AssetSnapshot{
		Period:           period,
		Date:             date,
		Name:             l.desc.Name,
		Description:      l.desc.Description,
		Value:            l.value,
		Debt:             l.debt,
		Income:           l.income,
		Expenses:         l.expenses,
		Appreciation:     m.Appreciation,
		CashFlow:         m.CashFlow,
		OperatingExpense: m.OperatingExpense,
		TaxableIncome:    m.TaxableIncome,
		State:            l.state.String(),
	}
}

// applyToValue is the value-clamping investment shared by kinds that hold value.
func (l *lifecycle) applyToValue(amount decimal.Decimal) decimal.Decimal {
	if l.state != domain.StateActive {
		return decimal.Zero
	}
	next := l.value.Add(amount)
	if next.IsNegative() {
		actual := l.value.Neg()
		l.value = decimal.Zero
		return actual
	}
	l.value = next
	return amount
}
