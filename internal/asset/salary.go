package asset

import (
	"fmt"
	"time"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rpgo/networth-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// Salary is employment income or an age-indexed benefit. It never holds
// value, debt or expenses.
type Salary struct {
	lifecycle
	params   domain.SalaryParams
	claimAge domain.AgeRef
	first    bool
}

// NewSalary builds a dormant income stream. A benefit table without an
// explicit claim age is looked up at the retirement age.
func NewSalary(desc domain.AssetDescriptor) *Salary {
	s := &Salary{lifecycle: newLifecycle(desc), params: *desc.Salary}
	switch {
	case desc.Salary.ClaimAge != nil:
		s.claimAge = *desc.Salary.ClaimAge
	default:
		s.claimAge = domain.AgeRef{Token: domain.TokenRetirementAge}
	}
	return s
}

func (s *Salary) BindDates(b domain.Bindings) error {
	if err := s.lifecycle.BindDates(b); err != nil {
		return err
	}
	s.claimAge = s.claimAge.Resolve(b.Ages)
	return nil
}

func (s *Salary) setup(time.Time) error {
	s.growthRate = money.Monthly(s.params.COLA)
	s.income = money.Monthly(s.params.Salary)
	if len(s.params.BenefitTable) > 0 {
		if !s.claimAge.IsResolved() {
			return fmt.Errorf("claim age %q: %w", s.claimAge, ErrUnresolvedDate)
		}
		annual, _ := s.params.BenefitFor(s.claimAge.Age)
		s.income = money.Monthly(annual)
	}
	s.first = true
	return nil
}

func (s *Salary) PeriodUpdate(period int, date time.Time) (domain.PeriodMetrics, error) {
	m := domain.PeriodMetrics{Period: period, Date: date}
	active, err := s.enter(date, s.setup)
	if err != nil || !active {
		return m, err
	}
	if s.first {
		s.first = false
	} else {
		s.income = s.income.Mul(decimal.NewFromInt(1).Add(s.growthRate))
	}
	m.CashFlow = s.income
	m.TaxableIncome = s.income
	return m, nil
}

// ApplyInvestment is a no-op: an income stream cannot hold investments.
func (s *Salary) ApplyInvestment(decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

// ClaimAge returns the (possibly unresolved) age the benefit table is read at.
func (s *Salary) ClaimAge() domain.AgeRef { return s.claimAge }
