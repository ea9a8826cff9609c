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

package data

import (
	"context"
	"time"
)

// PriceRow is a single raw daily observation as returned by a provider.
// Rows may arrive unordered and with duplicate dates; the metrics package
// normalizes them before any statistic is computed.
type PriceRow struct {
	Date  time.Time
	Close float64
}

// DividendRow is a single cash dividend event.
type DividendRow struct {
	Date   time.Time
	Amount float64
}

// SecurityProfile holds the static descriptive attributes of a ticker. It is
// fetched once per ticker per run and shared read-only by every year slice
// computed for that ticker. SharesOutstanding is nil when the provider does
// not report it.
type SecurityProfile struct {
	Ticker            string
	CompanyName       string
	Sector            string
	Industry          string
	SharesOutstanding *int64
}

// Provider retrieves quotes, dividend events and fundamentals for a security.
// Implementations may return empty slices for unknown or delisted tickers;
// callers treat an empty or failed fetch as a per-ticker skip, never as a
// run-aborting error.
type Provider interface {
	DailyPrices(ctx context.Context, ticker string, start time.Time) ([]PriceRow, error)
	Dividends(ctx context.Context, ticker string) ([]DividendRow, error)
	Profile(ctx context.Context, ticker string) (*SecurityProfile, error)
}
