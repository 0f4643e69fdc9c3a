package calculation

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultMonteCarloWorkers bounds concurrent projections when no limit is set.
const DefaultMonteCarloWorkers = 10

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	NumSimulations int
	// BaseSeed seeds run i with BaseSeed+i; zero uses the engine seed.
	BaseSeed int64
	Workers  int
}

// MonteCarloSimulator runs many independently seeded projections of one engine
type MonteCarloSimulator struct {
	Engine *Engine
	Config MonteCarloConfig
}

// NewMonteCarloSimulator creates a new Monte Carlo simulator
func NewMonteCarloSimulator(engine *Engine, config MonteCarloConfig) *MonteCarloSimulator {
	if config.BaseSeed == 0 {
		config.BaseSeed = engine.Seed()
	}
	if config.Workers <= 0 {
		config.Workers = DefaultMonteCarloWorkers
	}
	return &MonteCarloSimulator{Engine: engine, Config: config}
}

// Run executes the simulations on a bounded worker pool. Each run builds its
// own assets, so results depend only on the seed, not on scheduling.
func (mcs *MonteCarloSimulator) Run(ctx context.Context) (*domain.MonteCarloResult, error) {
	n := mcs.Config.NumSimulations
	if n <= 0 {
		return nil, fmt.Errorf("number of simulations must be positive, got %d", n)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	finals := make([]decimal.Decimal, n)
	seeds := make([]int64, n)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	semaphore := make(chan struct{}, mcs.Config.Workers)

	for i := 0; i < n; i++ {
		seeds[i] = mcs.Config.BaseSeed + int64(i)
		wg.Add(1)
		go func(simIndex int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire semaphore
			defer func() { <-semaphore }() // Release semaphore

			p, err := mcs.Engine.RunWithSeed(ctx, seeds[simIndex])
			if err != nil {
				once.Do(func() {
					firstErr = fmt.Errorf("simulation %d (seed %d): %w", simIndex, seeds[simIndex], err)
					cancel()
				})
				return
			}
			finals[simIndex] = p.FinalNetWorth()
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	mcs.Engine.Logger.Infof("monte carlo: %d runs from seed %d", n, mcs.Config.BaseSeed)
	ranges := calculatePercentileRanges(finals)
	return &domain.MonteCarloResult{
		Scenario:         mcs.Engine.scenario.Name,
		NumSimulations:   n,
		BaseSeed:         mcs.Config.BaseSeed,
		SuccessRate:      calculateSuccessRate(finals),
		MedianNetWorth:   ranges.P50,
		PercentileRanges: ranges,
		FinalNetWorths:   finals,
		Seeds:            seeds,
	}, nil
}

// calculateSuccessRate is the fraction of runs ending with positive net worth
func calculateSuccessRate(finals []decimal.Decimal) decimal.Decimal {
	successCount := 0
	for _, f := range finals {
		if f.IsPositive() {
			successCount++
		}
	}
	return decimal.NewFromInt(int64(successCount)).Div(decimal.NewFromInt(int64(len(finals))))
}

// calculatePercentileRanges picks nearest-rank percentiles of the final values
func calculatePercentileRanges(finals []decimal.Decimal) domain.PercentileRanges {
	sorted := append([]decimal.Decimal(nil), finals...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	n := len(sorted)
	if n == 0 {
		return domain.PercentileRanges{}
	}
	return domain.PercentileRanges{
		P10: sorted[n/10],
		P25: sorted[n/4],
		P50: sorted[n/2],
		P75: sorted[3*n/4],
		P90: sorted[9*n/10],
	}
}
