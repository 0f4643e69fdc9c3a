package asset

import (
	"time"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rpgo/networth-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// RealEstate is a property with an amortizing mortgage and optional rent
type RealEstate struct {
	lifecycle
	params domain.RealEstateParams

	insurance         decimal.Decimal // monthly
	interestRate      decimal.Decimal // monthly
	incomeExpenseRate decimal.Decimal
	payment           decimal.Decimal

	// last period's split of the payment, kept for reporting
	interest  decimal.Decimal
	principal decimal.Decimal
}

// NewRealEstate builds a dormant property from its descriptor.
func NewRealEstate(desc domain.AssetDescriptor) *RealEstate {
	return &RealEstate{lifecycle: newLifecycle(desc), params: *desc.RealEstate}
}

func (re *RealEstate) setup(time.Time) error {
	p := re.params
	re.value = p.InitialValue
	re.debt = p.InitialDebt
	re.growthRate = money.Monthly(p.AppreciationRate)
	re.expenseRate = money.Monthly(p.PropertyTaxRate)
	re.insurance = money.Monthly(p.InsuranceCost)
	re.interestRate = money.Monthly(p.InterestRate)
	re.incomeExpenseRate = p.ManagementFee.Add(p.RentalExpenseRate)
	re.payment = p.MonthlyPayment
	re.expenses = re.insurance
	return nil
}

func (re *RealEstate) PeriodUpdate(period int, date time.Time) (domain.PeriodMetrics, error) {
	m := domain.PeriodMetrics{Period: period, Date: date}
	active, err := re.enter(date, re.setup)
	if err != nil || !active {
		return m, err
	}

	re.income = re.params.RentAt(date)

	m.Appreciation = re.value.Mul(re.growthRate)
	re.value = re.value.Add(m.Appreciation)

	re.interest = re.debt.Mul(re.interestRate)
	payment := decimal.Min(re.payment, re.debt.Add(re.interest))
	re.principal = payment.Sub(re.interest)
	re.debt = money.ClampZero(re.debt.Sub(re.principal))

	incomeExpenses := re.income.Mul(re.incomeExpenseRate)
	re.expenses = re.insurance.Add(re.interest).Add(incomeExpenses).Add(payment)

	propertyTax := re.value.Mul(re.expenseRate)
	m.OperatingExpense = propertyTax.Add(re.expenses)
	m.CashFlow = re.income.Sub(m.OperatingExpense)
	m.TaxableIncome = re.income.Sub(re.insurance.Add(re.interest).Add(incomeExpenses).Add(propertyTax))
	return m, nil
}

func (re *RealEstate) ApplyInvestment(amount decimal.Decimal) decimal.Decimal {
	return re.applyToValue(amount)
}

// LastPayment returns the interest and principal portions of the most recent payment.
func (re *RealEstate) LastPayment() (interest, principal decimal.Decimal) {
	return re.interest, re.principal
}
