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

	"github.com/penny-vault/stock-metrics/database"
	"github.com/penny-vault/stock-metrics/metrics"
	"github.com/rs/zerolog/log"
)

// Postgres loads the dataset into a relational table with replace-on-rerun
// semantics: each run truncates the table and reloads every row inside a
// single transaction, mirroring the flat-file sink's fresh-snapshot model.
type Postgres struct {
	mode Mode
}

func NewPostgres(mode Mode) *Postgres {
	return &Postgres{mode: mode}
}

func (p *Postgres) Name() string {
	return "postgres"
}

func (p *Postgres) tableName() string {
	return fmt.Sprintf("stock_metrics_%s", p.mode)
}

func (p *Postgres) Write(ctx context.Context, dataset *metrics.Dataset) error {
	table := p.tableName()
	subLog := log.With().Str("Table", table).Logger()

	trx, err := database.Trx(ctx)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not begin transaction")
		return err
	}

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	ticker TEXT NOT NULL,
	year INT,
	company_name TEXT,
	sector TEXT,
	industry TEXT,
	first_close DOUBLE PRECISION NOT NULL,
	last_close DOUBLE PRECISION NOT NULL,
	period_return DOUBLE PRECISION NOT NULL,
	annualized_return DOUBLE PRECISION,
	daily_volatility DOUBLE PRECISION NOT NULL,
	annualized_volatility DOUBLE PRECISION NOT NULL,
	sharpe_ratio DOUBLE PRECISION,
	max_daily_profit DOUBLE PRECISION,
	max_daily_profit_date DATE,
	min_daily_profit DOUBLE PRECISION,
	min_daily_profit_date DATE,
	max_drawdown DOUBLE PRECISION,
	mean_abs_daily_change DOUBLE PRECISION,
	market_cap DOUBLE PRECISION,
	is_period_complete BOOLEAN,
	computed_at TIMESTAMP NOT NULL
)`, table)
	if _, err := trx.Exec(ctx, createSQL); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not create metrics table")
		if err := trx.Rollback(ctx); err != nil {
			subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
		}
		return err
	}

	if _, err := trx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not truncate metrics table")
		if err := trx.Rollback(ctx); err != nil {
			subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
		}
		return err
	}

	insertSQL := fmt.Sprintf(`INSERT INTO %s (
	ticker, year, company_name, sector, industry,
	first_close, last_close, period_return, annualized_return,
	daily_volatility, annualized_volatility, sharpe_ratio,
	max_daily_profit, max_daily_profit_date, min_daily_profit, min_daily_profit_date,
	max_drawdown, mean_abs_daily_change, market_cap, is_period_complete, computed_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
	$12, $13, $14, $15, $16, $17, $18, $19, $20, $21
)`, table)

	for _, row := range dataset.Rows() {
		_, err := trx.Exec(ctx, insertSQL,
			row.Ticker, row.Year, row.CompanyName, row.Sector, row.Industry,
			row.FirstClose, row.LastClose, row.PeriodReturn, row.AnnualizedReturn,
			row.DailyVolatility, row.AnnualizedVolatility, row.SharpeRatio,
			row.MaxDailyProfit, row.MaxDailyProfitDate, row.MinDailyProfit, row.MinDailyProfitDate,
			row.MaxDrawdown, row.MeanAbsDailyChange, row.MarketCap, row.IsPeriodComplete, row.ComputedAt)
		if err != nil {
			subLog.Error().Stack().Err(err).Str("Ticker", row.Ticker).Msg("could not insert metrics row")
			if err := trx.Rollback(ctx); err != nil {
				subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
			}
			return err
		}
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit transaction")
		return err
	}

	subLog.Info().Int("Rows", dataset.Len()).Msg("loaded metrics table")
	return nil
}
