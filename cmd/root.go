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

package cmd

import (
	"os"

	"github.com/penny-vault/stock-metrics/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "stock-metrics",
	Short: "Compute per-security performance metrics from daily price and dividend history",
	Long: `stock-metrics downloads daily price history, dividend events and company
fundamentals for a configured ticker universe and computes total shareholder
return, volatility, Sharpe ratio, market capitalization and related metrics.
Results are written to a timestamped CSV file and, when a database is
configured, to a Postgres table that is replaced on each run.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "logging level: trace, debug, info, warning, error")
	rootCmd.PersistentFlags().Bool("log-pretty", true, "pretty print log output")
	rootCmd.PersistentFlags().Int("workers", 1, "number of concurrent ticker workers")
	rootCmd.PersistentFlags().String("output-dir", ".", "directory csv files are written to")
	rootCmd.PersistentFlags().String("database-url", "", "postgres connection url; empty disables the database sink")
	rootCmd.PersistentFlags().StringSlice("tickers", nil, "ticker universe (overrides the configuration file)")

	if err := viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("pipeline.workers", rootCmd.PersistentFlags().Lookup("workers")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("csv.output_dir", rootCmd.PersistentFlags().Lookup("output-dir")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("database.url", rootCmd.PersistentFlags().Lookup("database-url")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("tickers", rootCmd.PersistentFlags().Lookup("tickers")); err != nil {
		panic(err)
	}

	viper.SetDefault("metrics.trading_days_per_year", common.DefaultTradingDaysPerYear)
	viper.SetDefault("history.start_date", "2020-01-01")
	viper.SetDefault("yearly.begin", 2020)
	viper.SetDefault("yearly.end", 2025)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
