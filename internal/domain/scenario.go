package domain

import (
	"time"

	"github.com/rpgo/networth-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Scenario holds the household and policy parameters for one projection
type Scenario struct {
	Name            string          `yaml:"name" json:"name" toml:"name"`
	BirthDate       Date            `yaml:"birth_date" json:"birth_date" toml:"birth_date"`
	SpouseBirthDate Date            `yaml:"spouse_birth_date,omitempty" json:"spouse_birth_date,omitempty" toml:"spouse_birth_date"`
	StartDate       Date            `yaml:"start_date" json:"start_date" toml:"start_date"`
	EndDate         Date            `yaml:"end_date" json:"end_date" toml:"end_date"`
	RetirementAge   int             `yaml:"retirement_age" json:"retirement_age" toml:"retirement_age"`
	WithdrawalRate  decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawal_rate" toml:"withdrawal_rate"`
	SavingsRate     decimal.Decimal `yaml:"savings_rate" json:"savings_rate" toml:"savings_rate"`
	StockAllocation decimal.Decimal `yaml:"stock_allocation" json:"stock_allocation" toml:"stock_allocation"`
	BondAllocation  decimal.Decimal `yaml:"bond_allocation" json:"bond_allocation" toml:"bond_allocation"`
	TaxRates        TaxRates        `yaml:"tax_rates" json:"tax_rates" toml:"tax_rates"`
	// Seed drives stochastic equity returns; zero picks a time-based seed.
	Seed int64 `yaml:"seed,omitempty" json:"seed,omitempty" toml:"seed,omitempty"`
}

// TaxRates maps each tax class to its flat rate.
type TaxRates map[TaxClass]decimal.Decimal

// Rate returns the configured rate for a class, zero when absent.
func (tr TaxRates) Rate(class TaxClass) decimal.Decimal {
	if r, ok := tr[class]; ok {
		return r
	}
	return decimal.Zero
}

// RetirementDate is the birth date plus the retirement age in whole years.
func (s *Scenario) RetirementDate() time.Time {
	return s.BirthDate.Time().AddDate(s.RetirementAge, 0, 0)
}

// Bindings returns the token bindings every asset descriptor is resolved against.
// first_date is the first timeline period and end_date the month after the
// last one, so an asset bounded by both is active in every period.
func (s *Scenario) Bindings() Bindings {
	retirement := s.RetirementDate()
	return Bindings{
		Dates: map[string]time.Time{
			TokenFirstDate:      dateutil.FirstOfMonth(s.StartDate.Time()),
			TokenRetirement:     retirement,
			TokenRetirementDate: retirement,
			TokenEndDate:        dateutil.AddMonths(dateutil.FirstOfMonth(s.EndDate.Time()), 1),
		},
		Ages: map[string]int{
			TokenRetirementAge: s.RetirementAge,
		},
	}
}

// Configuration is a complete projection input: scenario plus asset descriptors.
type Configuration struct {
	Scenario Scenario          `yaml:"scenario" json:"scenario" toml:"scenario"`
	Assets   []AssetDescriptor `yaml:"assets,omitempty" json:"assets,omitempty" toml:"assets,omitempty"`
	// AssetDir names a directory of single-descriptor files, relative to the
	// configuration file. Its assets are appended after Assets.
	AssetDir string `yaml:"asset_dir,omitempty" json:"asset_dir,omitempty" toml:"asset_dir,omitempty"`
}
