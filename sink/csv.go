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

package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/penny-vault/stock-metrics/metrics"
	"github.com/rs/zerolog/log"
)

// CSV writes the dataset to a timestamped flat file, one row per
// MetricsResult, columns exactly the MetricsResult fields. Each run creates
// a new file; nothing is ever overwritten.
type CSV struct {
	outputDir string
	mode      Mode
	clock     func() string
}

func NewCSV(outputDir string, mode Mode) *CSV {
	return &CSV{
		outputDir: outputDir,
		mode:      mode,
		clock:     defaultTimestamp,
	}
}

func (c *CSV) Name() string {
	return "csv"
}

func (c *CSV) Write(ctx context.Context, dataset *metrics.Dataset) error {
	fn := filepath.Join(c.outputDir, fmt.Sprintf("stock_metrics_%s_%s.csv", c.mode, c.clock()))
	subLog := log.With().Str("FileName", fn).Logger()

	fh, err := os.Create(fn)
	if err != nil {
		subLog.Error().Err(err).Msg("could not create csv file")
		return err
	}
	defer fh.Close()

	writer := csv.NewWriter(fh)
	if err := writer.Write(Columns); err != nil {
		return err
	}

	for _, row := range dataset.Rows() {
		if err := writer.Write(csvRecord(row)); err != nil {
			subLog.Error().Err(err).Str("Ticker", row.Ticker).Msg("could not write csv row")
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		subLog.Error().Err(err).Msg("could not flush csv file")
		return err
	}

	subLog.Info().Int("Rows", dataset.Len()).Msg("wrote csv file")
	return nil
}

func csvRecord(row *metrics.MetricsResult) []string {
	year := ""
	if row.Year != nil {
		year = strconv.Itoa(*row.Year)
	}
	complete := ""
	if row.IsPeriodComplete != nil {
		complete = strconv.FormatBool(*row.IsPeriodComplete)
	}

	return []string{
		row.Ticker,
		year,
		row.CompanyName,
		row.Sector,
		row.Industry,
		formatFloat(row.FirstClose),
		formatFloat(row.LastClose),
		formatFloat(row.PeriodReturn),
		formatFloatPtr(row.AnnualizedReturn),
		formatFloat(row.DailyVolatility),
		formatFloat(row.AnnualizedVolatility),
		formatFloatPtr(row.SharpeRatio),
		formatFloatPtr(row.MaxDailyProfit),
		formatDatePtr(row.MaxDailyProfitDate),
		formatFloatPtr(row.MinDailyProfit),
		formatDatePtr(row.MinDailyProfitDate),
		formatFloatPtr(row.MaxDrawdown),
		formatFloatPtr(row.MeanAbsDailyChange),
		formatFloatPtr(row.MarketCap),
		complete,
		row.ComputedAt.Format("2006-01-02 15:04:05"),
	}
}

func defaultTimestamp() string {
	return timeNow().Format("20060102_150405")
}
