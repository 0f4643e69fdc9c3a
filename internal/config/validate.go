package config

import (
	"fmt"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateScenario(&config.Scenario); err != nil {
		return fmt.Errorf("scenario validation failed: %w", err)
	}

	seen := make(map[string]bool, len(config.Assets))
	for i := range config.Assets {
		desc := &config.Assets[i]
		if desc.Name == "" {
			return fmt.Errorf("asset %d: name is required", i)
		}
		if seen[desc.Name] {
			return fmt.Errorf("asset %d: duplicate asset name %q", i, desc.Name)
		}
		seen[desc.Name] = true
		if err := ip.validateAsset(desc); err != nil {
			return fmt.Errorf("asset %s validation failed: %w", desc.Name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateScenario(s *domain.Scenario) error {
	if s.BirthDate.IsZero() {
		return fmt.Errorf("birth date is required")
	}
	if s.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if s.EndDate.IsZero() {
		return fmt.Errorf("end date is required")
	}
	if s.EndDate.Time().Before(s.StartDate.Time()) {
		return fmt.Errorf("end date (%s) cannot be before start date (%s)", s.EndDate, s.StartDate)
	}
	if s.StartDate.Time().Before(s.BirthDate.Time()) {
		return fmt.Errorf("start date (%s) cannot be before birth date (%s)", s.StartDate, s.BirthDate)
	}
	if s.RetirementAge <= 0 || s.RetirementAge > 120 {
		return fmt.Errorf("retirement age must be between 1 and 120, got %d", s.RetirementAge)
	}
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"withdrawal rate", s.WithdrawalRate},
		{"savings rate", s.SavingsRate},
		{"stock allocation", s.StockAllocation},
		{"bond allocation", s.BondAllocation},
	} {
		if err := fraction(f.name, f.value); err != nil {
			return err
		}
	}
	if s.StockAllocation.Add(s.BondAllocation).GreaterThan(one) {
		return fmt.Errorf("stock and bond allocation cannot exceed 100%%, got %s", s.StockAllocation.Add(s.BondAllocation))
	}
	for class, rate := range s.TaxRates {
		if !class.Valid() {
			return fmt.Errorf("unknown tax class %q in tax rates", class)
		}
		if err := fraction(fmt.Sprintf("%s tax rate", class), rate); err != nil {
			return err
		}
	}
	return nil
}

func (ip *InputParser) validateAsset(desc *domain.AssetDescriptor) error {
	if !desc.TaxClass.Valid() {
		return fmt.Errorf("tax class must be income, capital_gain or social_security, got %q", desc.TaxClass)
	}
	for _, tag := range desc.Allocation {
		if !tag.Valid() {
			return fmt.Errorf("allocation tag must be stock, bond or retirement, got %q", tag)
		}
	}
	if desc.StartDate.IsResolved() && desc.EndDate.IsResolved() && !desc.StartDate.Date.Before(desc.EndDate.Date) {
		return fmt.Errorf("start date (%s) must be before end date (%s)", desc.StartDate, desc.EndDate)
	}

	blocks := 0
	for _, set := range []bool{desc.RealEstate != nil, desc.Equity != nil, desc.Salary != nil} {
		if set {
			blocks++
		}
	}
	if blocks != 1 {
		return fmt.Errorf("exactly one of real_estate, equity or salary must be set, found %d", blocks)
	}

	switch desc.Kind {
	case domain.KindRealEstate:
		if desc.RealEstate == nil {
			return fmt.Errorf("kind real_estate requires a real_estate block")
		}
		return validateRealEstate(desc.RealEstate)
	case domain.KindEquity:
		if desc.Equity == nil {
			return fmt.Errorf("kind equity requires an equity block")
		}
		return validateEquity(desc.Equity)
	case domain.KindSalary:
		if desc.Salary == nil {
			return fmt.Errorf("kind salary requires a salary block")
		}
		return validateSalary(desc.Salary)
	default:
		return fmt.Errorf("kind must be real_estate, equity or salary, got %q", desc.Kind)
	}
}

func validateRealEstate(p *domain.RealEstateParams) error {
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"initial value", p.InitialValue},
		{"initial debt", p.InitialDebt},
		{"property tax rate", p.PropertyTaxRate},
		{"insurance cost", p.InsuranceCost},
		{"interest rate", p.InterestRate},
		{"monthly payment", p.MonthlyPayment},
		{"monthly rental income", p.MonthlyRentalIncome},
		{"management fee", p.ManagementFee},
		{"rental expense rate", p.RentalExpenseRate},
	} {
		if f.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", f.name)
		}
	}
	if p.InitialDebt.IsPositive() && p.MonthlyPayment.IsZero() {
		return fmt.Errorf("monthly payment is required when initial debt is set")
	}
	for i, step := range p.RentalSchedule {
		if step.From.IsZero() {
			return fmt.Errorf("rental schedule entry %d: from date is required", i)
		}
		if step.MonthlyIncome.IsNegative() {
			return fmt.Errorf("rental schedule entry %d: monthly income cannot be negative", i)
		}
	}
	return nil
}

func validateEquity(p *domain.EquityParams) error {
	if p.InitialValue.IsNegative() {
		return fmt.Errorf("initial value cannot be negative")
	}
	if p.CostBasis != nil && p.CostBasis.IsNegative() {
		return fmt.Errorf("cost basis cannot be negative")
	}
	if p.Volatility.IsNegative() {
		return fmt.Errorf("volatility cannot be negative")
	}
	if p.ExpenseRatio.IsNegative() || p.DividendYield.IsNegative() {
		return fmt.Errorf("expense ratio and dividend yield cannot be negative")
	}
	for i, r := range p.HistoricalReturns {
		if r.LessThanOrEqual(one.Neg()) {
			return fmt.Errorf("historical return %d (%s) must be greater than -100%%", i, r)
		}
	}
	return nil
}

func validateSalary(p *domain.SalaryParams) error {
	if p.Salary.IsNegative() {
		return fmt.Errorf("salary cannot be negative")
	}
	ages := make(map[int]bool, len(p.BenefitTable))
	for _, step := range p.BenefitTable {
		if step.Age < 0 || step.Age > 120 {
			return fmt.Errorf("benefit table age %d out of range", step.Age)
		}
		if ages[step.Age] {
			return fmt.Errorf("benefit table has duplicate age %d", step.Age)
		}
		ages[step.Age] = true
		if step.Annual.IsNegative() {
			return fmt.Errorf("benefit at age %d cannot be negative", step.Age)
		}
	}
	if p.ClaimAge != nil && len(p.BenefitTable) == 0 {
		return fmt.Errorf("claim age requires a benefit table")
	}
	return nil
}

func fraction(name string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(one) {
		return fmt.Errorf("%s must be between 0 and 1, got %s", name, v)
	}
	return nil
}
