// Copyright 2022
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/penny-vault/stock-metrics/common"
	"github.com/penny-vault/stock-metrics/data"
	"github.com/penny-vault/stock-metrics/metrics"
	"github.com/penny-vault/stock-metrics/observability/opentelemetry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Pipeline runs the fetch-then-compute sequence for every ticker in a
// universe and accumulates the resulting rows into a Dataset. Tickers are
// processed by a bounded worker pool; each worker owns its ticker's fetched
// data exclusively and a failure in one worker never cancels its siblings.
type Pipeline struct {
	provider data.Provider
	calc     *metrics.Calculator
	workers  int

	// Now is the clock used to stamp rows and judge year completeness.
	// Overridable in tests.
	Now func() time.Time
}

// New creates a pipeline around the given provider. Worker count and the
// trading-day constant come from configuration; a worker count below 1 runs
// the reference sequential behavior.
func New(provider data.Provider) *Pipeline {
	workers := viper.GetInt("pipeline.workers")
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		provider: provider,
		calc:     metrics.NewCalculator(common.TradingDaysPerYear()),
		workers:  workers,
		Now:      time.Now,
	}
}

// RunHistory computes one full-history metric row per ticker.
func (p *Pipeline) RunHistory(ctx context.Context, universe *data.Universe, start time.Time) *metrics.Dataset {
	return p.run(ctx, universe, start, nil)
}

// RunYearly computes one metric row per ticker per calendar year in
// [beginYear, endYear].
func (p *Pipeline) RunYearly(ctx context.Context, universe *data.Universe, start time.Time, beginYear, endYear int) *metrics.Dataset {
	years := make([]int, 0, endYear-beginYear+1)
	for year := beginYear; year <= endYear; year++ {
		years = append(years, year)
	}
	return p.run(ctx, universe, start, years)
}

// run fans the universe out to the worker pool. Results land in a slot
// indexed by universe position and are flattened afterwards, so dataset
// order is universe order (ascending year within a ticker) regardless of
// worker interleaving.
func (p *Pipeline) run(ctx context.Context, universe *data.Universe, start time.Time, years []int) *metrics.Dataset {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "pipeline.run")
	defer span.End()
	span.SetAttributes(attribute.Int("UniverseSize", universe.Len()))

	tickers := universe.Tickers()
	computedAt := p.Now()
	results := make([][]*metrics.MetricsResult, len(tickers))

	work := make(chan int)
	var wg sync.WaitGroup
	for ii := 0; ii < p.workers; ii++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = p.processTicker(ctx, tickers[idx], start, years, computedAt)
			}
		}()
	}

	for idx := range tickers {
		work <- idx
	}
	close(work)
	wg.Wait()

	dataset := metrics.NewDataset()
	skipped := 0
	for _, rows := range results {
		if len(rows) == 0 {
			skipped++
			continue
		}
		dataset.Append(rows...)
	}

	log.Info().Int("Rows", dataset.Len()).Int("Tickers", universe.Len()).Int("SkippedTickers", skipped).Msg("metrics computation finished")
	return dataset
}

// processTicker runs fetch, normalization and metric computation for one
// ticker. Any fetch failure or data gap results in a nil row set; omissions
// are informational, never run failures.
func (p *Pipeline) processTicker(ctx context.Context, ticker string, start time.Time, years []int, computedAt time.Time) []*metrics.MetricsResult {
	subLog := log.With().Str("Ticker", ticker).Logger()
	subLog.Info().Msg("downloading price history")

	prices, err := p.provider.DailyPrices(ctx, ticker, start)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not fetch daily prices; skipping ticker")
		return nil
	}

	series, err := metrics.NormalizeSeries(ticker, prices)
	if err != nil {
		subLog.Info().Msg("no price data for ticker; skipping")
		return nil
	}

	dividends, err := p.provider.Dividends(ctx, ticker)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not fetch dividends; skipping ticker")
		return nil
	}

	profile, err := p.provider.Profile(ctx, ticker)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not fetch security profile; skipping ticker")
		return nil
	}
	if profile == nil {
		profile = &data.SecurityProfile{Ticker: ticker}
	}

	if years == nil {
		return p.historyRows(series, dividends, profile, computedAt)
	}
	return p.yearRows(series, dividends, profile, years, computedAt)
}

func (p *Pipeline) historyRows(series *metrics.PriceSeries, dividends []data.DividendRow, profile *data.SecurityProfile, computedAt time.Time) []*metrics.MetricsResult {
	subLog := log.With().Str("Ticker", series.Ticker).Logger()

	dividendSum := metrics.SumDividends(dividends, series.First().Date, series.Last().Date)
	snap, err := p.calc.FullHistory(series, dividendSum, profile.SharesOutstanding)
	if err != nil {
		subLog.Info().Err(err).Msg("cannot compute full-history metrics; skipping")
		return nil
	}

	subLog.Info().Str("CompanyName", profile.CompanyName).Msg("computed full-history metrics")
	return []*metrics.MetricsResult{metrics.BuildHistoryRecord(profile, snap, computedAt)}
}

func (p *Pipeline) yearRows(series *metrics.PriceSeries, dividends []data.DividendRow, profile *data.SecurityProfile, years []int, computedAt time.Time) []*metrics.MetricsResult {
	subLog := log.With().Str("Ticker", series.Ticker).Logger()
	tz := common.GetTimezone()

	rows := make([]*metrics.MetricsResult, 0, len(years))
	for _, year := range years {
		slice, err := metrics.YearSliceFor(series, dividends, year, tz)
		if err != nil {
			subLog.Info().Int("Year", year).Msg("insufficient data for year; skipping")
			continue
		}

		snap, err := p.calc.CalendarYear(slice, profile.SharesOutstanding)
		if err != nil {
			subLog.Info().Int("Year", year).Err(err).Msg("cannot compute metrics for year; skipping")
			continue
		}

		rows = append(rows, metrics.BuildYearRecord(profile, year, snap, computedAt))
	}

	if len(rows) > 0 {
		subLog.Info().Str("CompanyName", profile.CompanyName).Int("Years", len(rows)).Msg("computed yearly metrics")
	}
	return rows
}
