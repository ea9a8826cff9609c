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
	"time"

	"github.com/penny-vault/stock-metrics/data"
)

// YearSlice is a ticker's price history restricted to one calendar year plus
// that year's aggregated dividends. Slices are transient: built, computed
// and discarded within a single ticker's processing.
type YearSlice struct {
	Year        int
	Series      *PriceSeries
	DividendSum float64
}

// YearSliceFor extracts the calendar-year sub-sequence of a full-history
// series together with the dividend sum for the same year. A year with fewer
// than 2 observations yields ErrInsufficientData and the caller skips the
// (ticker, year) unit; a single observation has no first/last distinction
// and a year with zero observations is outside the ticker's trading history.
func YearSliceFor(series *PriceSeries, dividends []data.DividendRow, year int, tz *time.Location) (*YearSlice, error) {
	observations := make([]PriceObservation, 0, series.Len())
	for _, obs := range series.Observations {
		if obs.Date.In(tz).Year() == year {
			observations = append(observations, obs)
		}
	}

	if len(observations) < 2 {
		return nil, ErrInsufficientData
	}

	yearBegin := time.Date(year, time.January, 1, 0, 0, 0, 0, tz)
	yearEnd := time.Date(year, time.December, 31, 23, 59, 59, 0, tz)

	return &YearSlice{
		Year: year,
		Series: &PriceSeries{
			Ticker:       series.Ticker,
			Observations: observations,
		},
		DividendSum: SumDividends(dividends, yearBegin, yearEnd),
	}, nil
}
