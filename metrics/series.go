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
	"sort"
	"time"

	"github.com/penny-vault/stock-metrics/data"
)

// PriceObservation is one daily close in a normalized series.
type PriceObservation struct {
	Date  time.Time
	Close float64
}

// PriceSeries is an ordered daily closing-price series for one ticker.
// Invariant: strictly increasing dates. Construct through NormalizeSeries;
// a PriceSeries is never mutated after construction.
type PriceSeries struct {
	Ticker       string
	Observations []PriceObservation
}

// DailyReturn is the simple percentage change between two consecutive
// closes, stamped with the date of the later close.
type DailyReturn struct {
	Date   time.Time
	Return float64
}

// NormalizeSeries converts raw provider rows into a clean PriceSeries:
// ascending date order with duplicate dates collapsed keeping the last row.
// Zero rows yield ErrEmptySeries and the caller skips the ticker.
func NormalizeSeries(ticker string, rows []data.PriceRow) (*PriceSeries, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySeries
	}

	sorted := make([]data.PriceRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	observations := make([]PriceObservation, 0, len(sorted))
	for _, row := range sorted {
		obs := PriceObservation{Date: row.Date, Close: row.Close}
		if n := len(observations); n > 0 && observations[n-1].Date.Equal(row.Date) {
			observations[n-1] = obs
			continue
		}
		observations = append(observations, obs)
	}

	return &PriceSeries{Ticker: ticker, Observations: observations}, nil
}

func (series *PriceSeries) Len() int {
	return len(series.Observations)
}

func (series *PriceSeries) First() PriceObservation {
	return series.Observations[0]
}

func (series *PriceSeries) Last() PriceObservation {
	return series.Observations[len(series.Observations)-1]
}

// DailyReturns derives the daily-return series. The first observation has no
// prior close and is excluded, so the result has Len()-1 entries.
func (series *PriceSeries) DailyReturns() []DailyReturn {
	if series.Len() < 2 {
		return nil
	}

	returns := make([]DailyReturn, 0, series.Len()-1)
	for idx := 1; idx < series.Len(); idx++ {
		prev := series.Observations[idx-1]
		curr := series.Observations[idx]
		if prev.Close == 0 {
			// cannot compute a percentage change from a zero base
			continue
		}
		returns = append(returns, DailyReturn{
			Date:   curr.Date,
			Return: (curr.Close - prev.Close) / prev.Close,
		})
	}
	return returns
}
