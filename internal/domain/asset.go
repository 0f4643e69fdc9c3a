package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AssetKind tags the concrete asset variant
type AssetKind string

const (
	KindRealEstate AssetKind = "real_estate"
	KindEquity     AssetKind = "equity"
	KindSalary     AssetKind = "salary"
)

var kindAliases = map[string]AssetKind{
	"real_estate": KindRealEstate,
	"realestate":  KindRealEstate,
	"re":          KindRealEstate,
	"equity":      KindEquity,
	"salary":      KindSalary,
	"benefit":     KindSalary,
}

// ParseAssetKind normalizes a kind name, accepting the short aliases "re" and "benefit".
func ParseAssetKind(s string) (AssetKind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown asset kind %q (want real_estate, equity or salary)", s)
}

func (k *AssetKind) UnmarshalText(text []byte) error {
	parsed, err := ParseAssetKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// TaxClass buckets asset income for flat-rate taxation
type TaxClass string

const (
	TaxClassIncome         TaxClass = "income"
	TaxClassCapitalGain    TaxClass = "capital_gain"
	TaxClassSocialSecurity TaxClass = "social_security"
)

// TaxClasses lists the classes in reporting order.
var TaxClasses = []TaxClass{TaxClassIncome, TaxClassCapitalGain, TaxClassSocialSecurity}

// Valid reports whether the class is one of the known tax classes.
func (c TaxClass) Valid() bool {
	for _, tc := range TaxClasses {
		if c == tc {
			return true
		}
	}
	return false
}

// AllocationTag marks an asset as a target for investment, withdrawal or
// retirement-portfolio valuation.
type AllocationTag string

const (
	AllocStock      AllocationTag = "stock"
	AllocBond       AllocationTag = "bond"
	AllocRetirement AllocationTag = "retirement"
)

// Valid reports whether the tag is known.
func (t AllocationTag) Valid() bool {
	return t == AllocStock || t == AllocBond || t == AllocRetirement
}

// AssetState is the lifecycle state of an asset in a given period
type AssetState int

const (
	StateDormant AssetState = iota
	StateActive
	StateRetired
)

func (s AssetState) String() string {
	switch s {
	case StateDormant:
		return "dormant"
	case StateActive:
		return "active"
	case StateRetired:
		return "retired"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// AssetDescriptor is the typed configuration for one asset. Exactly one of the
// kind blocks must be set, matching Kind. An omitted start or end date means
// the start or end of the simulation.
type AssetDescriptor struct {
	Name        string          `yaml:"name" json:"name" toml:"name"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Kind        AssetKind       `yaml:"kind" json:"kind" toml:"kind"`
	StartDate   DateRef         `yaml:"start_date,omitempty" json:"start_date,omitempty" toml:"start_date"`
	EndDate     DateRef         `yaml:"end_date,omitempty" json:"end_date,omitempty" toml:"end_date"`
	TaxClass    TaxClass        `yaml:"tax_class" json:"tax_class" toml:"tax_class"`
	Allocation  []AllocationTag `yaml:"allocation,omitempty" json:"allocation,omitempty" toml:"allocation,omitempty"`

	RealEstate *RealEstateParams `yaml:"real_estate,omitempty" json:"real_estate,omitempty" toml:"real_estate,omitempty"`
	Equity     *EquityParams     `yaml:"equity,omitempty" json:"equity,omitempty" toml:"equity,omitempty"`
	Salary     *SalaryParams     `yaml:"salary,omitempty" json:"salary,omitempty" toml:"salary,omitempty"`
}

// HasTag reports whether the descriptor carries an allocation tag.
func (d *AssetDescriptor) HasTag(tag AllocationTag) bool {
	for _, t := range d.Allocation {
		if t == tag {
			return true
		}
	}
	return false
}

// RealEstateParams configures a property. Rates and insurance are annual;
// payment and rent are monthly.
type RealEstateParams struct {
	InitialValue        decimal.Decimal `yaml:"initial_value" json:"initial_value" toml:"initial_value"`
	InitialDebt         decimal.Decimal `yaml:"initial_debt" json:"initial_debt" toml:"initial_debt"`
	AppreciationRate    decimal.Decimal `yaml:"appreciation_rate" json:"appreciation_rate" toml:"appreciation_rate"`
	PropertyTaxRate     decimal.Decimal `yaml:"property_tax_rate" json:"property_tax_rate" toml:"property_tax_rate"`
	InsuranceCost       decimal.Decimal `yaml:"insurance_cost" json:"insurance_cost" toml:"insurance_cost"`
	InterestRate        decimal.Decimal `yaml:"interest_rate" json:"interest_rate" toml:"interest_rate"`
	MonthlyPayment      decimal.Decimal `yaml:"monthly_payment" json:"monthly_payment" toml:"monthly_payment"`
	MonthlyRentalIncome decimal.Decimal `yaml:"monthly_rental_income" json:"monthly_rental_income" toml:"monthly_rental_income"`
	ManagementFee       decimal.Decimal `yaml:"management_fee" json:"management_fee" toml:"management_fee"`
	RentalExpenseRate   decimal.Decimal `yaml:"rental_expense_rate" json:"rental_expense_rate" toml:"rental_expense_rate"`
	RentalSchedule      []RentStep      `yaml:"rental_schedule,omitempty" json:"rental_schedule,omitempty" toml:"rental_schedule,omitempty"`
}

// RentStep changes the monthly rent from a given date onward.
type RentStep struct {
	From          Date            `yaml:"from" json:"from" toml:"from"`
	MonthlyIncome decimal.Decimal `yaml:"monthly_income" json:"monthly_income" toml:"monthly_income"`
}

// EquityParams configures a brokerage or retirement account. Rates are annual;
// historical returns are monthly observations.
type EquityParams struct {
	InitialValue          decimal.Decimal   `yaml:"initial_value" json:"initial_value" toml:"initial_value"`
	CostBasis             *decimal.Decimal  `yaml:"cost_basis,omitempty" json:"cost_basis,omitempty" toml:"cost_basis,omitempty"`
	AppreciationRate      decimal.Decimal   `yaml:"appreciation_rate" json:"appreciation_rate" toml:"appreciation_rate"`
	Volatility            decimal.Decimal   `yaml:"volatility,omitempty" json:"volatility,omitempty" toml:"volatility,omitempty"`
	ExpenseRatio          decimal.Decimal   `yaml:"expense_ratio,omitempty" json:"expense_ratio,omitempty" toml:"expense_ratio,omitempty"`
	DividendYield         decimal.Decimal   `yaml:"dividend_yield,omitempty" json:"dividend_yield,omitempty" toml:"dividend_yield,omitempty"`
	HistoricalReturns     []decimal.Decimal `yaml:"historical_returns,omitempty" json:"historical_returns,omitempty" toml:"historical_returns,omitempty"`
	HistoricalReturnsFile string            `yaml:"historical_returns_file,omitempty" json:"historical_returns_file,omitempty" toml:"historical_returns_file,omitempty"`
}

// SalaryParams configures employment income or an age-indexed benefit.
// Salary and table amounts are annual; COLA is an annual rate.
type SalaryParams struct {
	Salary       decimal.Decimal `yaml:"salary" json:"salary" toml:"salary"`
	COLA         decimal.Decimal `yaml:"cola" json:"cola" toml:"cola"`
	BenefitTable []BenefitStep   `yaml:"benefit_table,omitempty" json:"benefit_table,omitempty" toml:"benefit_table,omitempty"`
	ClaimAge     *AgeRef         `yaml:"claim_age,omitempty" json:"claim_age,omitempty" toml:"claim_age,omitempty"`
}

// BenefitStep is the annual benefit when claiming at a given age.
type BenefitStep struct {
	Age    int             `yaml:"age" json:"age" toml:"age"`
	Annual decimal.Decimal `yaml:"annual" json:"annual" toml:"annual"`
}

// BenefitFor returns the annual benefit for a claim age: the entry with the
// greatest age not above claimAge, or the youngest entry when claimAge precedes
// the whole table. The second result is false for an empty table.
func (p *SalaryParams) BenefitFor(claimAge int) (decimal.Decimal, bool) {
	if len(p.BenefitTable) == 0 {
		return decimal.Zero, false
	}
	youngest := p.BenefitTable[0]
	var best *BenefitStep
	for i := range p.BenefitTable {
		step := &p.BenefitTable[i]
		if step.Age < youngest.Age {
			youngest = *step
		}
		if step.Age <= claimAge && (best == nil || step.Age > best.Age) {
			best = step
		}
	}
	if best == nil {
		return youngest.Annual, true
	}
	return best.Annual, true
}

// RentAt returns the monthly rent effective at date: the latest schedule step
// starting on or before date, or the base rent.
func (p *RealEstateParams) RentAt(date time.Time) decimal.Decimal {
	rent := p.MonthlyRentalIncome
	var latest time.Time
	for _, step := range p.RentalSchedule {
		from := step.From.Time()
		if !from.After(date) && !from.Before(latest) {
			rent = step.MonthlyIncome
			latest = from
		}
	}
	return rent
}
