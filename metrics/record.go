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

// MetricsResult is one output row: the computed metric set for a
// (ticker, optional year) unit combined with the security's descriptive
// attributes and the run's computation timestamp. Immutable once built.
type MetricsResult struct {
	Ticker               string
	Year                 *int
	CompanyName          string
	Sector               string
	Industry             string
	FirstClose           float64
	LastClose            float64
	PeriodReturn         float64
	AnnualizedReturn     *float64
	DailyVolatility      float64
	AnnualizedVolatility float64
	SharpeRatio          *float64
	MaxDailyProfit       *float64
	MaxDailyProfitDate   *time.Time
	MinDailyProfit       *float64
	MinDailyProfitDate   *time.Time
	MaxDrawdown          *float64
	MeanAbsDailyChange   *float64
	MarketCap            *float64
	IsPeriodComplete     *bool
	ComputedAt           time.Time
}

// BuildHistoryRecord assembles a full-history row. No computation happens
// here beyond field assembly; what was computed stays isolated from what is
// reported.
func BuildHistoryRecord(profile *data.SecurityProfile, snap *Snapshot, computedAt time.Time) *MetricsResult {
	record := newRecord(profile, snap, computedAt)
	return record
}

// BuildYearRecord assembles a year-partitioned row. The requested year is
// marked complete only when it is strictly before the calendar year of the
// computation timestamp; the in-progress year is always incomplete no
// matter how many observations it has.
func BuildYearRecord(profile *data.SecurityProfile, year int, snap *Snapshot, computedAt time.Time) *MetricsResult {
	record := newRecord(profile, snap, computedAt)
	record.Year = &year
	complete := year < computedAt.Year()
	record.IsPeriodComplete = &complete
	return record
}

func newRecord(profile *data.SecurityProfile, snap *Snapshot, computedAt time.Time) *MetricsResult {
	return &MetricsResult{
		Ticker:               profile.Ticker,
		CompanyName:          profile.CompanyName,
		Sector:               profile.Sector,
		Industry:             profile.Industry,
		FirstClose:           snap.FirstClose,
		LastClose:            snap.LastClose,
		PeriodReturn:         snap.PeriodReturn,
		AnnualizedReturn:     snap.AnnualizedReturn,
		DailyVolatility:      snap.DailyVolatility,
		AnnualizedVolatility: snap.AnnualizedVolatility,
		SharpeRatio:          snap.SharpeRatio,
		MaxDailyProfit:       snap.MaxDailyProfit,
		MaxDailyProfitDate:   snap.MaxDailyProfitDate,
		MinDailyProfit:       snap.MinDailyProfit,
		MinDailyProfitDate:   snap.MinDailyProfitDate,
		MaxDrawdown:          snap.MaxDrawdown,
		MeanAbsDailyChange:   snap.MeanAbsDailyChange,
		MarketCap:            snap.MarketCap,
		ComputedAt:           computedAt,
	}
}
