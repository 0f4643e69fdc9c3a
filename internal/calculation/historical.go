package calculation

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rpgo/networth-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ReturnPoint is one observed monthly return
type ReturnPoint struct {
	Date   time.Time       `json:"date"`
	Return decimal.Decimal `json:"return"`
}

// ReturnSeries is an ordered set of monthly returns loaded from CSV
type ReturnSeries struct {
	Source     string           `json:"source"`
	Points     []ReturnPoint    `json:"points"`
	Statistics ReturnStatistics `json:"statistics"`
}

// ReturnStatistics provides a statistical summary of a series
type ReturnStatistics struct {
	Mean          decimal.Decimal `json:"mean"`
	Median        decimal.Decimal `json:"median"`
	StdDev        decimal.Decimal `json:"std_dev"`
	Min           decimal.Decimal `json:"min"`
	Max           decimal.Decimal `json:"max"`
	Count         int             `json:"count"`
	MissingMonths []time.Time     `json:"missing_months"`
}

// Returns returns the observed values in date order.
func (rs *ReturnSeries) Returns() []decimal.Decimal {
	out := make([]decimal.Decimal, len(rs.Points))
	for i, p := range rs.Points {
		out[i] = p.Return
	}
	return out
}

// LoadReturnSeries reads a "date,return" CSV with a header row. Rows are
// sorted by date; a malformed row is an error rather than skipped so a
// typo cannot silently bias the sample.
func LoadReturnSeries(path string) (*ReturnSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()
	return ParseReturnSeries(file, path)
}

// ParseReturnSeries is LoadReturnSeries over an arbitrary reader.
func ParseReturnSeries(r io.Reader, source string) (*ReturnSeries, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 || !strings.EqualFold(header[0], "date") || !strings.EqualFold(header[1], "return") {
		return nil, fmt.Errorf("invalid CSV header %v: expected date,return", header)
	}

	var points []ReturnPoint
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		date, err := dateutil.ParseDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", source, line, err)
		}
		value, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: invalid return %q", source, line, record[1])
		}
		points = append(points, ReturnPoint{Date: dateutil.FirstOfMonth(date), Return: value})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no valid data points found in %s", source)
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return &ReturnSeries{
		Source:     source,
		Points:     points,
		Statistics: calculateStatistics(points),
	}, nil
}

func calculateStatistics(points []ReturnPoint) ReturnStatistics {
	if len(points) == 0 {
		return ReturnStatistics{}
	}
	values := make([]decimal.Decimal, len(points))
	for i, p := range points {
		values[i] = p.Return
	}

	count := decimal.NewFromInt(int64(len(values)))
	mean := decimal.Sum(values[0], values[1:]...).Div(count)

	var varianceSum decimal.Decimal
	for _, v := range values {
		diff := v.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	variance := varianceSum.Div(count)
	stdDev := decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))

	sorted := append([]decimal.Decimal(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		median = sorted[len(sorted)/2-1].Add(sorted[len(sorted)/2]).Div(decimal.NewFromInt(2))
	}

	var missing []time.Time
	for i := 1; i < len(points); i++ {
		for m := points[i-1].Date.AddDate(0, 1, 0); m.Before(points[i].Date); m = m.AddDate(0, 1, 0) {
			missing = append(missing, m)
		}
	}

	return ReturnStatistics{
		Mean:          mean,
		Median:        median,
		StdDev:        stdDev,
		Min:           sorted[0],
		Max:           sorted[len(sorted)-1],
		Count:         len(values),
		MissingMonths: missing,
	}
}

// ReturnSeriesCache loads each series file once and shares it between runs.
type ReturnSeriesCache struct {
	mu     sync.Mutex
	series map[string]*ReturnSeries
}

// NewReturnSeriesCache creates an empty cache
func NewReturnSeriesCache() *ReturnSeriesCache {
	return &ReturnSeriesCache{series: make(map[string]*ReturnSeries)}
}

// Load returns the cached series for path, reading it on first use.
func (c *ReturnSeriesCache) Load(path string) (*ReturnSeries, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rs, ok := c.series[path]; ok {
		return rs, nil
	}
	rs, err := LoadReturnSeries(path)
	if err != nil {
		return nil, err
	}
	c.series[path] = rs
	return rs, nil
}
