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
	"time"

	"github.com/penny-vault/stock-metrics/common"
	"github.com/penny-vault/stock-metrics/data"
	"github.com/penny-vault/stock-metrics/database"
	"github.com/penny-vault/stock-metrics/metrics"
	"github.com/penny-vault/stock-metrics/observability/opentelemetry"
	"github.com/penny-vault/stock-metrics/pipeline"
	"github.com/penny-vault/stock-metrics/sink"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// runMetrics executes the full pipeline for one mode and persists the
// result. A failing sink is the only condition that aborts the run; data
// gaps and fetch failures have already been handled as per-unit skips.
func runMetrics(ctx context.Context, mode sink.Mode) error {
	shutdown, err := opentelemetry.Setup()
	if err != nil {
		log.Warn().Err(err).Msg("could not setup tracing; continuing without it")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Warn().Err(err).Msg("could not shut down tracing")
			}
		}()
	}

	universe, err := data.UniverseFromConfig()
	if err != nil {
		return err
	}

	start, err := startDate()
	if err != nil {
		return err
	}

	pipe := pipeline.New(data.NewYahoo())

	var dataset *metrics.Dataset
	switch mode {
	case sink.ModeYearly:
		dataset = pipe.RunYearly(ctx, universe, start, viper.GetInt("yearly.begin"), viper.GetInt("yearly.end"))
	default:
		dataset = pipe.RunHistory(ctx, universe, start)
	}

	sinks := []sink.Sink{
		sink.NewConsole(),
		sink.NewCSV(viper.GetString("csv.output_dir"), mode),
	}
	if viper.GetString("database.url") != "" {
		if err := database.Connect(ctx); err != nil {
			log.Error().Err(err).Str("Sink", "postgres").Msg("sink unavailable; aborting run")
			return err
		}
		sinks = append(sinks, sink.NewPostgres(mode))
	}

	for _, s := range sinks {
		if err := s.Write(ctx, dataset); err != nil {
			log.Error().Err(err).Str("Sink", s.Name()).Msg("sink failed; aborting run")
			return err
		}
	}

	log.Info().Int("Rows", dataset.Len()).Str("Mode", string(mode)).Msg("run complete")
	return nil
}

func startDate() (time.Time, error) {
	tz := common.GetTimezone()
	return time.ParseInLocation("2006-01-02", viper.GetString("history.start_date"), tz)
}
