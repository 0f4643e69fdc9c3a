package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/rpgo/networth-projector/internal/domain"
)

// ConsoleFormatter renders a plain-text summary of a projection.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(p *domain.Projection) ([]byte, error) {
	if p == nil {
		return nil, errNilProjection
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "NET WORTH PROJECTION: %s\n", p.Scenario)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Run: %s  Seed: %d\n", p.RunID, p.Seed)
	if len(p.Periods) == 0 {
		fmt.Fprintln(&buf, "No periods projected.")
		return buf.Bytes(), nil
	}
	first, last := p.Periods[0], p.Periods[len(p.Periods)-1]
	fmt.Fprintf(&buf, "Horizon: %s to %s (%d periods)\n\n", formatDate(first.Date), formatDate(last.Date), len(p.Periods))

	m := AnalyzeProjection(p)
	fmt.Fprintf(&buf, "Starting net worth:  %s\n", FormatCurrency(m.StartNetWorth))
	fmt.Fprintf(&buf, "Final net worth:     %s\n", FormatCurrency(m.FinalNetWorth))
	fmt.Fprintf(&buf, "Peak net worth:      %s (%s)\n", FormatCurrency(m.PeakNetWorth), formatDate(m.PeakDate))
	if m.RetirementDate != nil {
		fmt.Fprintf(&buf, "Withdrawals begin:   %s (first %s)\n", formatDate(*m.RetirementDate), FormatCurrency(m.FirstWithdrawal))
	} else {
		fmt.Fprintln(&buf, "Withdrawals begin:   never")
	}
	fmt.Fprintf(&buf, "Debt free:           %s\n", formatOptionalDate(m.DebtFreeDate, "n/a"))
	fmt.Fprintf(&buf, "Portfolio depleted:  %s\n", formatOptionalDate(m.DepletionDate, "never"))

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Totals")
	fmt.Fprintf(&buf, "  Taxable income:    %s\n", FormatCurrency(m.Totals.TaxableIncome))
	fmt.Fprintf(&buf, "  Taxes paid:        %s\n", FormatCurrency(m.Totals.TaxesPaid))
	fmt.Fprintf(&buf, "  Withdrawals:       %s\n", FormatCurrency(m.Totals.Withdrawal))
	fmt.Fprintf(&buf, "  Invested:          %s\n", FormatCurrency(m.Totals.Investment))
	fmt.Fprintf(&buf, "  Unallocated cash:  %s\n", FormatCurrency(m.Totals.UnallocatedCash))

	assets := FinalAssetStates(p)
	if len(assets) == 0 {
		return buf.Bytes(), nil
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Assets at %s\n", formatDate(last.Date))
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Name\tState\tValue\tDebt\t")
	for _, s := range assets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", s.Name, s.State, FormatCurrency(s.Value), FormatCurrency(s.Debt))
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
