package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rpgo/networth-projector/internal/domain"
)

// MonteCarloCSVFormat is the format name accepted by the montecarlo command.
const MonteCarloCSVFormat = "montecarlo-csv"

var errNilMonteCarlo = errors.New("monte carlo result is nil")

// MonteCarloCSVReport generates CSV exports for Monte Carlo results
type MonteCarloCSVReport struct {
	Result *domain.MonteCarloResult
}

// SummaryCSV renders aggregate statistics as Metric,Value,Description rows.
func (m *MonteCarloCSVReport) SummaryCSV() ([]byte, error) {
	if m.Result == nil {
		return nil, errNilMonteCarlo
	}
	r := m.Result
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Metric", "Value", "Description"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	rows := [][]string{
		{"Success Rate", FormatPercentage(r.SuccessRate), "Share of runs ending with positive net worth"},
		{"Median Final Net Worth", r.MedianNetWorth.StringFixed(2), "Median net worth at the end of the horizon"},
		{"10th Percentile", r.PercentileRanges.P10.StringFixed(2), "10th percentile of final net worth"},
		{"25th Percentile", r.PercentileRanges.P25.StringFixed(2), "25th percentile of final net worth"},
		{"50th Percentile", r.PercentileRanges.P50.StringFixed(2), "50th percentile of final net worth"},
		{"75th Percentile", r.PercentileRanges.P75.StringFixed(2), "75th percentile of final net worth"},
		{"90th Percentile", r.PercentileRanges.P90.StringFixed(2), "90th percentile of final net worth"},
		{"Number of Simulations", strconv.Itoa(r.NumSimulations), "Total number of simulations run"},
		{"Base Seed", strconv.FormatInt(r.BaseSeed, 10), "Run i is seeded with base seed + i"},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write data row: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// RunsCSV renders one row per simulation with its seed and final net worth.
func (m *MonteCarloCSVReport) RunsCSV() ([]byte, error) {
	if m.Result == nil {
		return nil, errNilMonteCarlo
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"SimulationID", "Seed", "FinalNetWorth", "Success"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, nw := range m.Result.FinalNetWorths {
		seed := ""
		if i < len(m.Result.Seeds) {
			seed = strconv.FormatInt(m.Result.Seeds[i], 10)
		}
		row := []string{
			strconv.Itoa(i + 1),
			seed,
			nw.StringFixed(2),
			strconv.FormatBool(nw.IsPositive()),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write data row: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// WriteFiles writes the summary and per-run CSVs into dir and returns their paths.
func (m *MonteCarloCSVReport) WriteFiles(dir string, at time.Time) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	stamp := at.Format("20060102_150405")
	outputs := []struct {
		suffix string
		render func() ([]byte, error)
	}{
		{"summary", m.SummaryCSV},
		{"runs", m.RunsCSV},
	}
	var paths []string
	for _, o := range outputs {
		data, err := o.render()
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, fmt.Sprintf("networth_montecarlo_%s_%s.csv", o.suffix, stamp))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("failed to create CSV file: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FormatMonteCarloSummary renders a short console summary of a Monte Carlo result.
func FormatMonteCarloSummary(r *domain.MonteCarloResult) string {
	if r == nil {
		return ""
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "MONTE CARLO: %s\n", r.Scenario)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Simulations:   %d (base seed %d)\n", r.NumSimulations, r.BaseSeed)
	fmt.Fprintf(&buf, "Success rate:  %s\n", FormatPercentage(r.SuccessRate))
	fmt.Fprintf(&buf, "Median final:  %s\n", FormatCurrency(r.MedianNetWorth))
	fmt.Fprintf(&buf, "P10 / P90:     %s / %s\n", FormatCurrency(r.PercentileRanges.P10), FormatCurrency(r.PercentileRanges.P90))
	fmt.Fprintf(&buf, "P25 / P75:     %s / %s\n", FormatCurrency(r.PercentileRanges.P25), FormatCurrency(r.PercentileRanges.P75))
	return buf.String()
}
