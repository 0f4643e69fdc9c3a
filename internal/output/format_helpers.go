package output

import (
	"time"

	"github.com/rpgo/networth-projector/pkg/dateutil"
	"github.com/rpgo/networth-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD with thousands separators.
func FormatCurrency(amount decimal.Decimal) string { return money.Format(amount) }

// FormatPercentage formats a fraction as a percentage with 2 decimals.
func FormatPercentage(fraction decimal.Decimal) string { return money.FormatRate(fraction) }

func formatDate(t time.Time) string { return t.Format(dateutil.DateLayout) }

func formatOptionalDate(t *time.Time, none string) string {
	if t == nil {
		return none
	}
	return formatDate(*t)
}
