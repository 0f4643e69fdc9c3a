package config

import (
	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rpgo/networth-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

func date(s string) domain.Date { return domain.NewDate(dateutil.MustParseDate(s)) }

func literal(s string) domain.DateRef { return domain.LiteralDate(dateutil.MustParseDate(s)) }

func token(t string) domain.DateRef { return domain.SymbolicDate(t) }

func pct(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func usd(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

// CreateExampleConfiguration creates an example configuration: a two-earner
// household with a mortgage, a rental, retirement accounts and a benefit
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	brokerageBasis := usd(40000)
	claimAge := domain.AgeRef{Token: domain.TokenRetirementAge}

	return &domain.Configuration{
		Scenario: domain.Scenario{
			Name:            "Example household",
			BirthDate:       date("1975-06-15"),
			SpouseBirthDate: date("1977-03-02"),
			StartDate:       date("2025-01-01"),
			EndDate:         date("2065-01-01"),
			RetirementAge:   62,
			WithdrawalRate:  pct(0.04),
			SavingsRate:     pct(0.30),
			StockAllocation: pct(0.60),
			BondAllocation:  pct(0.40),
			TaxRates: domain.TaxRates{
				domain.TaxClassIncome:         pct(0.22),
				domain.TaxClassCapitalGain:    pct(0.15),
				domain.TaxClassSocialSecurity: pct(0.12),
			},
			Seed: 20250101,
		},
		Assets: []domain.AssetDescriptor{
			{
				Name:        "Primary salary",
				Description: "Employment income until retirement",
				Kind:        domain.KindSalary,
				StartDate:   token(domain.TokenFirstDate),
				EndDate:     token(domain.TokenRetirement),
				TaxClass:    domain.TaxClassIncome,
				Salary: &domain.SalaryParams{
					Salary: usd(95000),
					COLA:   pct(0.025),
				},
			},
			{
				Name:        "Social Security",
				Description: "Benefit claimed at retirement",
				Kind:        domain.KindSalary,
				StartDate:   token(domain.TokenRetirement),
				EndDate:     token(domain.TokenEndDate),
				TaxClass:    domain.TaxClassSocialSecurity,
				Salary: &domain.SalaryParams{
					COLA: pct(0.02),
					BenefitTable: []domain.BenefitStep{
						{Age: 62, Annual: usd(20160)},
						{Age: 67, Annual: usd(28800)},
						{Age: 70, Annual: usd(35712)},
					},
					ClaimAge: &claimAge,
				},
			},
			{
				Name:        "Home",
				Description: "Primary residence with a 30-year mortgage",
				Kind:        domain.KindRealEstate,
				StartDate:   token(domain.TokenFirstDate),
				EndDate:     token(domain.TokenEndDate),
				TaxClass:    domain.TaxClassIncome,
				RealEstate: &domain.RealEstateParams{
					InitialValue:     usd(450000),
					InitialDebt:      usd(210000),
					AppreciationRate: pct(0.035),
					PropertyTaxRate:  pct(0.012),
					InsuranceCost:    usd(1800),
					InterestRate:     pct(0.045),
					MonthlyPayment:   usd(1850),
				},
			},
			{
				Name:        "Rental condo",
				Description: "Leased unit, rent steps up in 2030",
				Kind:        domain.KindRealEstate,
				StartDate:   literal("2025-01-01"),
				EndDate:     literal("2045-01-01"),
				TaxClass:    domain.TaxClassIncome,
				RealEstate: &domain.RealEstateParams{
					InitialValue:        usd(240000),
					InitialDebt:         usd(120000),
					AppreciationRate:    pct(0.03),
					PropertyTaxRate:     pct(0.011),
					InsuranceCost:       usd(900),
					InterestRate:        pct(0.055),
					MonthlyPayment:      usd(1100),
					MonthlyRentalIncome: usd(2100),
					ManagementFee:       pct(0.08),
					RentalExpenseRate:   pct(0.05),
					RentalSchedule: []domain.RentStep{
						{From: date("2030-01-01"), MonthlyIncome: usd(2400)},
					},
				},
			},
			{
				Name:        "401k stock fund",
				Description: "Employer plan, equity index",
				Kind:        domain.KindEquity,
				StartDate:   token(domain.TokenFirstDate),
				EndDate:     token(domain.TokenEndDate),
				TaxClass:    domain.TaxClassCapitalGain,
				Allocation:  []domain.AllocationTag{domain.AllocStock, domain.AllocRetirement},
				Equity: &domain.EquityParams{
					InitialValue:     usd(350000),
					AppreciationRate: pct(0.07),
					Volatility:       pct(0.15),
					ExpenseRatio:     pct(0.0005),
					DividendYield:    pct(0.015),
				},
			},
			{
				Name:        "401k bond fund",
				Description: "Employer plan, aggregate bond index",
				Kind:        domain.KindEquity,
				StartDate:   token(domain.TokenFirstDate),
				EndDate:     token(domain.TokenEndDate),
				TaxClass:    domain.TaxClassCapitalGain,
				Allocation:  []domain.AllocationTag{domain.AllocBond, domain.AllocRetirement},
				Equity: &domain.EquityParams{
					InitialValue:     usd(120000),
					AppreciationRate: pct(0.035),
					Volatility:       pct(0.05),
					ExpenseRatio:     pct(0.0005),
					DividendYield:    pct(0.03),
				},
			},
			{
				Name:        "Taxable brokerage",
				Description: "After-tax index fund",
				Kind:        domain.KindEquity,
				StartDate:   token(domain.TokenFirstDate),
				EndDate:     token(domain.TokenEndDate),
				TaxClass:    domain.TaxClassCapitalGain,
				Allocation:  []domain.AllocationTag{domain.AllocStock},
				Equity: &domain.EquityParams{
					InitialValue:     usd(60000),
					CostBasis:        &brokerageBasis,
					AppreciationRate: pct(0.07),
					Volatility:       pct(0.15),
					DividendYield:    pct(0.015),
				},
			},
		},
	}
}
