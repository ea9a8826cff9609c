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
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/penny-vault/stock-metrics/metrics"
)

// Console renders a compact summary table of the dataset to the terminal.
// It is a reporting convenience, not a persistence sink; it never fails the
// run short of a broken output stream.
type Console struct {
	out io.Writer
}

func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

func (c *Console) Name() string {
	return "console"
}

func (c *Console) Write(ctx context.Context, dataset *metrics.Dataset) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(c.out)
	tw.AppendHeader(table.Row{"TICKER", "YEAR", "COMPANY", "TSR", "ANN VOL", "SHARPE", "MARKET CAP"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	for _, row := range dataset.Rows() {
		year := ""
		if row.Year != nil {
			year = fmt.Sprintf("%d", *row.Year)
		}
		tw.AppendRow(table.Row{
			row.Ticker,
			year,
			row.CompanyName,
			fmt.Sprintf("%.2f%%", row.PeriodReturn*100),
			fmt.Sprintf("%.2f%%", row.AnnualizedVolatility*100),
			formatRatio(row.SharpeRatio),
			formatMarketCap(row.MarketCap),
		})
	}

	tw.Render()
	return nil
}

func formatRatio(val *float64) string {
	if val == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *val)
}

func formatMarketCap(val *float64) string {
	if val == nil {
		return "-"
	}
	switch {
	case *val >= 1e12:
		return fmt.Sprintf("%.2fT", *val/1e12)
	case *val >= 1e9:
		return fmt.Sprintf("%.2fB", *val/1e9)
	case *val >= 1e6:
		return fmt.Sprintf("%.2fM", *val/1e6)
	}
	return fmt.Sprintf("%.0f", *val)
}
