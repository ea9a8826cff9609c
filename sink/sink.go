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

// Package sink persists a computed Dataset. A sink failure is the only
// run-aborting error class in the system: partial, un-persisted results
// have no value.
package sink

import (
	"context"
	"strconv"
	"time"

	"github.com/penny-vault/stock-metrics/metrics"
)

// Mode selects which metric set a run produced; it picks the output table
// and file names.
type Mode string

const (
	ModeHistory Mode = "history"
	ModeYearly  Mode = "yearly"
)

// Sink accepts a Dataset and persists it, one row per MetricsResult.
type Sink interface {
	Name() string
	Write(ctx context.Context, dataset *metrics.Dataset) error
}

// Columns is the canonical output column set shared by the CSV and Postgres
// sinks. Order matters: downstream consumers rely on it.
var Columns = []string{
	"ticker",
	"year",
	"company_name",
	"sector",
	"industry",
	"first_close",
	"last_close",
	"period_return",
	"annualized_return",
	"daily_volatility",
	"annualized_volatility",
	"sharpe_ratio",
	"max_daily_profit",
	"max_daily_profit_date",
	"min_daily_profit",
	"min_daily_profit_date",
	"max_drawdown",
	"mean_abs_daily_change",
	"market_cap",
	"is_period_complete",
	"computed_at",
}

const dateFormat = "2006-01-02"

// timeNow is indirected so tests can pin file timestamps.
var timeNow = time.Now

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'g', -1, 64)
}

func formatFloatPtr(val *float64) string {
	if val == nil {
		return ""
	}
	return formatFloat(*val)
}

func formatDatePtr(val *time.Time) string {
	if val == nil {
		return ""
	}
	return val.Format(dateFormat)
}
