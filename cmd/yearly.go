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
	"context"
	"errors"

	"github.com/penny-vault/stock-metrics/sink"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errInvalidYearRange = errors.New("begin-year must not be after end-year")

var yearlyCmd = &cobra.Command{
	Use:   "yearly",
	Short: "Compute one metric row per ticker per calendar year",
	Long: `yearly partitions each ticker's price history into calendar-year slices
and computes an independent metric set for every year in the configured
range. Years with fewer than two price observations are skipped. The
current, still-in-progress year is always marked incomplete.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetInt("yearly.begin") > viper.GetInt("yearly.end") {
			return errInvalidYearRange
		}
		return runMetrics(context.Background(), sink.ModeYearly)
	},
}

func init() {
	yearlyCmd.Flags().Int("begin-year", 2020, "first calendar year to compute metrics for")
	yearlyCmd.Flags().Int("end-year", 2025, "last calendar year to compute metrics for")
	if err := viper.BindPFlag("yearly.begin", yearlyCmd.Flags().Lookup("begin-year")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("yearly.end", yearlyCmd.Flags().Lookup("end-year")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(yearlyCmd)
}
