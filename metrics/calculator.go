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

package metrics

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Calculator computes the metric set for a price slice. It is a pure
// function of its inputs: no I/O, no shared mutable state, safe for
// concurrent use across tickers.
type Calculator struct {
	// TradingDaysPerYear rescales daily statistics to annual figures.
	TradingDaysPerYear int
}

// Snapshot is the raw calculator output for one price slice before it is
// assembled into an output row. Nil pointer fields are undefined metrics:
// a zero denominator or missing input yields nil, never a sentinel zero,
// and nil propagates through dependent formulas.
type Snapshot struct {
	FirstClose           float64
	LastClose            float64
	TradingDays          int
	PeriodReturn         float64
	AnnualizedReturn     *float64 // full-history mode only
	DailyVolatility      float64
	AnnualizedVolatility float64
	SharpeRatio          *float64
	MaxDailyProfit       *float64
	MaxDailyProfitDate   *time.Time
	MinDailyProfit       *float64
	MinDailyProfitDate   *time.Time
	MaxDrawdown          *float64 // full-history mode only
	MeanAbsDailyChange   *float64 // full-history mode only
	MarketCap            *float64
}

func NewCalculator(tradingDaysPerYear int) *Calculator {
	return &Calculator{TradingDaysPerYear: tradingDaysPerYear}
}

// FullHistory computes the metric set over a ticker's entire observed
// history. The period return is annualized by rescaling to the standard
// trading-day year; max drawdown and mean absolute daily change are only
// meaningful over the full history and are computed here.
func (calc *Calculator) FullHistory(series *PriceSeries, dividendSum float64, sharesOutstanding *int64) (*Snapshot, error) {
	snap, returns, err := calc.compute(series, dividendSum, sharesOutstanding)
	if err != nil {
		return nil, err
	}

	annualized := math.Pow(1+snap.PeriodReturn, float64(calc.TradingDaysPerYear)/float64(snap.TradingDays)) - 1
	snap.AnnualizedReturn = &annualized
	snap.SharpeRatio = sharpe(annualized, snap.AnnualizedVolatility)
	snap.MaxDrawdown = maxDrawdown(returns)
	snap.MeanAbsDailyChange = meanAbsDailyChange(series)

	return snap, nil
}

// CalendarYear computes the metric set for a single-year slice. The year's
// period return is reported directly as TSR; annualizing a calendar year
// onto itself is deliberately not performed.
func (calc *Calculator) CalendarYear(slice *YearSlice, sharesOutstanding *int64) (*Snapshot, error) {
	snap, _, err := calc.compute(slice.Series, slice.DividendSum, sharesOutstanding)
	if err != nil {
		return nil, err
	}

	snap.SharpeRatio = sharpe(snap.PeriodReturn, snap.AnnualizedVolatility)
	return snap, nil
}

// compute derives the metrics shared by both modes.
func (calc *Calculator) compute(series *PriceSeries, dividendSum float64, sharesOutstanding *int64) (*Snapshot, []DailyReturn, error) {
	if series == nil || series.Len() == 0 {
		return nil, nil, ErrEmptySeries
	}
	if series.Len() < 2 {
		return nil, nil, ErrInsufficientData
	}

	first := series.First().Close
	last := series.Last().Close
	if first == 0 {
		return nil, nil, ErrDegenerateSeries
	}

	snap := &Snapshot{
		FirstClose:  first,
		LastClose:   last,
		TradingDays: series.Len(),
	}

	snap.PeriodReturn = ((last - first) + dividendSum) / first

	returns := series.DailyReturns()
	if len(returns) >= 2 {
		values := make([]float64, len(returns))
		for idx, ret := range returns {
			values[idx] = ret.Return
		}
		snap.DailyVolatility = stat.StdDev(values, nil)
	}
	snap.AnnualizedVolatility = snap.DailyVolatility * math.Sqrt(float64(calc.TradingDaysPerYear))

	if len(returns) > 0 {
		maxRet := returns[0]
		minRet := returns[0]
		for _, ret := range returns[1:] {
			// strict comparisons so ties resolve to the earliest date
			if ret.Return > maxRet.Return {
				maxRet = ret
			}
			if ret.Return < minRet.Return {
				minRet = ret
			}
		}
		snap.MaxDailyProfit = &maxRet.Return
		snap.MaxDailyProfitDate = &maxRet.Date
		snap.MinDailyProfit = &minRet.Return
		snap.MinDailyProfitDate = &minRet.Date
	}

	if sharesOutstanding != nil && *sharesOutstanding > 0 {
		marketCap := float64(*sharesOutstanding) * last
		snap.MarketCap = &marketCap
	}

	return snap, returns, nil
}

// sharpe is return per unit of volatility; a riskless series has no
// meaningful risk-adjusted return so a zero volatility yields nil.
func sharpe(ret float64, annualizedVolatility float64) *float64 {
	if annualizedVolatility == 0 {
		return nil
	}
	ratio := ret / annualizedVolatility
	return &ratio
}

// maxDrawdown finds the largest peak-to-trough decline of the cumulative
// growth series built from daily returns. The result is non-positive; 0
// means the series never fell below a prior peak.
func maxDrawdown(returns []DailyReturn) *float64 {
	if len(returns) == 0 {
		return nil
	}

	cumulative := 1.0
	var peak float64
	var worst float64
	for idx, ret := range returns {
		cumulative *= 1 + ret.Return
		if idx == 0 || cumulative > peak {
			peak = cumulative
		}
		drawdown := (cumulative - peak) / peak
		if drawdown < worst {
			worst = drawdown
		}
	}
	return &worst
}

// meanAbsDailyChange is the average absolute dollar move between consecutive
// closes; often more intuitive than volatility for end users.
func meanAbsDailyChange(series *PriceSeries) *float64 {
	if series.Len() < 2 {
		return nil
	}

	var total float64
	for idx := 1; idx < series.Len(); idx++ {
		total += math.Abs(series.Observations[idx].Close - series.Observations[idx-1].Close)
	}
	mean := total / float64(series.Len()-1)
	return &mean
}
