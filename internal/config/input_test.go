package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `scenario:
  name: "Test household"
  birth_date: 1980-04-01
  spouse_birth_date: "1982-09-30"
  start_date: 2025-01-01
  end_date: 2055-01-01
  retirement_age: 60
  withdrawal_rate: 0.04
  savings_rate: 0.25
  stock_allocation: 0.7
  bond_allocation: 0.3
  tax_rates:
    income: 0.22
    capital_gain: 0.15
  seed: 99
assets:
  - name: Paycheck
    kind: salary
    start_date: first_date
    end_date: retirement
    tax_class: income
    salary:
      salary: 85000
      cola: 0.02
  - name: Index fund
    kind: equity
    tax_class: capital_gain
    allocation: [stock, retirement]
    equity:
      initial_value: 150000
      appreciation_rate: 0.07
      volatility: 0.15
      historical_returns_file: data/returns.csv
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "household.yaml", yamlConfig)

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	s := config.Scenario
	assert.Equal(t, "Test household", s.Name)
	assert.Equal(t, "1980-04-01", s.BirthDate.String())
	assert.Equal(t, "1982-09-30", s.SpouseBirthDate.String())
	assert.Equal(t, 60, s.RetirementAge)
	assert.True(t, s.StockAllocation.Equal(decimal.NewFromFloat(0.7)))
	assert.True(t, s.TaxRates.Rate(domain.TaxClassCapitalGain).Equal(decimal.NewFromFloat(0.15)))
	assert.Equal(t, int64(99), s.Seed)

	require.Len(t, config.Assets, 2)
	pay := config.Assets[0]
	assert.Equal(t, domain.KindSalary, pay.Kind)
	assert.Equal(t, domain.TokenRetirement, pay.EndDate.Token)
	assert.True(t, pay.Salary.Salary.Equal(decimal.NewFromInt(85000)))

	fund := config.Assets[1]
	assert.True(t, fund.HasTag(domain.AllocRetirement))
	assert.True(t, fund.StartDate.IsZero(), "omitted bounds stay open")
	assert.Equal(t, filepath.Join(dir, "data", "returns.csv"), fund.Equity.HistoricalReturnsFile)
}

func TestLoadFromFile_JSON(t *testing.T) {
	src := `{
  "scenario": {
    "birth_date": "1970-01-01",
    "start_date": "2025-01-01",
    "end_date": "2030-01-01",
    "retirement_age": 65,
    "withdrawal_rate": "0.04",
    "savings_rate": 0.1,
    "stock_allocation": 1,
    "bond_allocation": 0
  },
  "assets": [
    {"name": "cash", "kind": "equity", "tax_class": "capital_gain",
     "start_date": "2025-01-01", "end_date": "end_date",
     "equity": {"initial_value": 5000, "appreciation_rate": 0.01}}
  ]
}`
	path := writeFile(t, t.TempDir(), "plan.json", src)

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, config.Scenario.WithdrawalRate.Equal(decimal.NewFromFloat(0.04)))
	require.Len(t, config.Assets, 1)
	assert.True(t, config.Assets[0].StartDate.IsResolved())
	assert.Equal(t, domain.TokenEndDate, config.Assets[0].EndDate.Token)
}

func TestLoadFromFile_TOML(t *testing.T) {
	src := `asset_dir = "assets"

[scenario]
name = "toml"
birth_date = 1975-01-01
start_date = "2025-01-01"
end_date = "2045-01-01"
retirement_age = 62
withdrawal_rate = 0.035
savings_rate = 0.2
stock_allocation = 0.5
bond_allocation = 0.5

[scenario.tax_rates]
income = 0.2

[[assets]]
name = "Rental"
kind = "re"
tax_class = "income"
start_date = "first_date"
end_date = "2040-01-01"

[assets.real_estate]
initial_value = 300000
initial_debt = 100000
appreciation_rate = 0.03
interest_rate = 0.05
monthly_payment = 900
monthly_rental_income = 1800

[[assets.real_estate.rental_schedule]]
from = 2030-01-01
monthly_income = 2000
`
	dir := t.TempDir()
	path := writeFile(t, dir, "plan.toml", src)
	writeFile(t, dir, "assets/b_pension.yaml", "name: Pension\nkind: benefit\ntax_class: social_security\nstart_date: retirement\nsalary:\n  benefit_table:\n    - {age: 62, annual: 18000}\n")
	writeFile(t, dir, "assets/a_bonds.toml", "name = \"Bonds\"\nkind = \"equity\"\ntax_class = \"capital_gain\"\nallocation = [\"bond\"]\n[equity]\ninitial_value = 40000\nhistorical_returns_file = \"bonds.csv\"\n")
	writeFile(t, dir, "assets/README.md", "ignored")

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "1975-01-01", config.Scenario.BirthDate.String())
	require.Len(t, config.Assets, 3)
	assert.Equal(t, []string{"Rental", "Bonds", "Pension"}, []string{config.Assets[0].Name, config.Assets[1].Name, config.Assets[2].Name})

	rental := config.Assets[0].RealEstate
	require.NotNil(t, rental)
	require.Len(t, rental.RentalSchedule, 1)
	assert.Equal(t, "2030-01-01", rental.RentalSchedule[0].From.String())

	assert.Equal(t, filepath.Join(dir, "assets", "bonds.csv"), config.Assets[1].Equity.HistoricalReturnsFile)
	assert.Equal(t, domain.KindSalary, config.Assets[2].Kind)
}

func TestLoadFromFile_RejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name string
		file string
		src  string
	}{
		{"yaml", "bad.yaml", "scenario:\n  birth_date: 1980-01-01\n  favourite_colour: blue\n"},
		{"toml", "bad.toml", "[scenario]\nbirth_date = \"1980-01-01\"\nfavourite_colour = \"blue\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.src)
			_, err := NewInputParser().LoadFromFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "favourite_colour")
		})
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()
	dir := t.TempDir()

	_, err := parser.LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = parser.LoadFromFile(writeFile(t, dir, "plan.ini", "x=1"))
	assert.True(t, errors.Is(err, ErrUnsupportedFileType))

	_, err = parser.LoadFromFile(writeFile(t, dir, "empty.yaml", ""))
	assert.Contains(t, err.Error(), "file is empty")

	_, err = parser.LoadFromFile(writeFile(t, dir, "bad_date.yaml", "scenario:\n  birth_date: yesterday\n"))
	assert.Contains(t, err.Error(), "invalid date")

	_, err = parser.LoadFromFile(writeFile(t, dir, "bad_kind.yaml", "assets:\n  - name: x\n    kind: crypto\n"))
	assert.Contains(t, err.Error(), "unknown asset kind")

	_, err = parser.LoadFromFile(writeFile(t, dir, "no_dir.yaml", yamlConfig+"asset_dir: nowhere\n"))
	assert.Contains(t, err.Error(), "failed to read asset directory")
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *domain.Configuration)
		wantErr string
	}{
		{"example is valid", func(c *domain.Configuration) {}, ""},
		{"missing birth date", func(c *domain.Configuration) { c.Scenario.BirthDate = domain.Date{} }, "birth date is required"},
		{"reversed window", func(c *domain.Configuration) { c.Scenario.EndDate = date("2020-01-01") }, "cannot be before start date"},
		{"retirement age", func(c *domain.Configuration) { c.Scenario.RetirementAge = 0 }, "retirement age"},
		{"savings rate", func(c *domain.Configuration) { c.Scenario.SavingsRate = pct(1.5) }, "savings rate must be between 0 and 1"},
		{"allocation sum", func(c *domain.Configuration) { c.Scenario.StockAllocation = pct(0.8) }, "cannot exceed 100%"},
		{"tax class", func(c *domain.Configuration) { c.Scenario.TaxRates["estate"] = pct(0.4) }, "unknown tax class"},
		{"duplicate name", func(c *domain.Configuration) { c.Assets[1].Name = c.Assets[0].Name }, "duplicate asset name"},
		{"missing name", func(c *domain.Configuration) { c.Assets[0].Name = "" }, "name is required"},
		{"asset tax class", func(c *domain.Configuration) { c.Assets[0].TaxClass = "" }, "tax class must be"},
		{"allocation tag", func(c *domain.Configuration) {
			c.Assets[4].Allocation = append(c.Assets[4].Allocation, "crypto")
		}, "allocation tag"},
		{"two blocks", func(c *domain.Configuration) { c.Assets[0].Equity = &domain.EquityParams{} }, "exactly one of"},
		{"block mismatch", func(c *domain.Configuration) { c.Assets[0].Kind = domain.KindEquity }, "requires an equity block"},
		{"literal window", func(c *domain.Configuration) { c.Assets[3].EndDate = literal("2024-01-01") }, "must be before end date"},
		{"negative debt", func(c *domain.Configuration) { c.Assets[2].RealEstate.InitialDebt = usd(-1) }, "initial debt cannot be negative"},
		{"debt without payment", func(c *domain.Configuration) { c.Assets[2].RealEstate.MonthlyPayment = decimal.Zero }, "monthly payment is required"},
		{"negative volatility", func(c *domain.Configuration) { c.Assets[4].Equity.Volatility = pct(-0.1) }, "volatility cannot be negative"},
		{"impossible return", func(c *domain.Configuration) {
			c.Assets[4].Equity.HistoricalReturns = []decimal.Decimal{pct(-1.2)}
		}, "greater than -100%"},
		{"duplicate benefit age", func(c *domain.Configuration) {
			c.Assets[1].Salary.BenefitTable = append(c.Assets[1].Salary.BenefitTable, domain.BenefitStep{Age: 62, Annual: usd(1)})
		}, "duplicate age 62"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := parser.CreateExampleConfiguration()
			tt.mutate(config)
			err := parser.ValidateConfiguration(config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveToFileRoundTrip(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()

	for _, name := range []string{"example.yaml", "example.json", "example.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, parser.SaveToFile(example, path))

			loaded, err := parser.LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, example.Scenario.Name, loaded.Scenario.Name)
			assert.Equal(t, example.Scenario.BirthDate.String(), loaded.Scenario.BirthDate.String())
			assert.Equal(t, example.Scenario.SpouseBirthDate.String(), loaded.Scenario.SpouseBirthDate.String())
			assert.True(t, example.Scenario.WithdrawalRate.Equal(loaded.Scenario.WithdrawalRate))
			require.Len(t, loaded.Assets, len(example.Assets))
			for i := range example.Assets {
				assert.Equal(t, example.Assets[i].Name, loaded.Assets[i].Name)
				assert.Equal(t, example.Assets[i].StartDate.String(), loaded.Assets[i].StartDate.String())
				assert.Equal(t, example.Assets[i].EndDate.String(), loaded.Assets[i].EndDate.String())
				assert.Equal(t, example.Assets[i].Kind, loaded.Assets[i].Kind)
			}
			assert.Equal(t, "retirement_age", loaded.Assets[1].Salary.ClaimAge.String())
			assert.Equal(t, "2025-01-01", loaded.Assets[3].StartDate.String(), "literal bounds survive the round trip")
			assert.Equal(t, "2030-01-01", loaded.Assets[3].RealEstate.RentalSchedule[0].From.String())
		})
	}

	err := parser.SaveToFile(example, filepath.Join(t.TempDir(), "example.txt"))
	assert.True(t, errors.Is(err, ErrUnsupportedFileType))
}
