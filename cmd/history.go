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

	"github.com/penny-vault/stock-metrics/sink"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Compute one metric row per ticker over its full observed history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMetrics(context.Background(), sink.ModeHistory)
	},
}

func init() {
	historyCmd.Flags().String("start", "2020-01-01", "first date of history retrieval (YYYY-MM-DD)")
	if err := viper.BindPFlag("history.start_date", historyCmd.Flags().Lookup("start")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(historyCmd)
}
