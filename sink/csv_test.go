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
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/stock-metrics/metrics"
)

var _ = Describe("CSV sink", func() {
	var (
		outputDir string
		dataset   *metrics.Dataset
	)

	BeforeEach(func() {
		var err error
		outputDir, err = os.MkdirTemp("", "stock-metrics-test")
		Expect(err).To(BeNil())

		timeNow = func() time.Time {
			return time.Date(2025, time.June, 1, 9, 30, 15, 0, time.UTC)
		}

		dataset = metrics.NewDataset()
		dataset.Append(fullRow(), sparseRow())
	})

	AfterEach(func() {
		timeNow = time.Now
		os.RemoveAll(outputDir)
	})

	It("names the file after the mode and run timestamp", func() {
		sink := NewCSV(outputDir, ModeYearly)
		Expect(sink.Write(context.Background(), dataset)).To(Succeed())

		_, err := os.Stat(filepath.Join(outputDir, "stock_metrics_yearly_20250601_093015.csv"))
		Expect(err).To(BeNil())
	})

	It("writes the canonical header and one record per row", func() {
		sink := NewCSV(outputDir, ModeHistory)
		Expect(sink.Write(context.Background(), dataset)).To(Succeed())

		fh, err := os.Open(filepath.Join(outputDir, "stock_metrics_history_20250601_093015.csv"))
		Expect(err).To(BeNil())
		defer fh.Close()

		records, err := csv.NewReader(fh).ReadAll()
		Expect(err).To(BeNil())
		Expect(records).To(HaveLen(3))
		Expect(records[0]).To(Equal(Columns))

		full := records[1]
		Expect(full[0]).To(Equal("MSFT"))
		Expect(full[1]).To(Equal("2021"))
		Expect(full[2]).To(Equal("Microsoft Corporation"))
		Expect(full[13]).To(Equal("2021-03-09"))
		Expect(full[19]).To(Equal("true"))
		Expect(full[20]).To(Equal("2025-06-01 09:30:00"))
	})

	It("renders undefined metrics as empty cells", func() {
		sink := NewCSV(outputDir, ModeHistory)
		Expect(sink.Write(context.Background(), dataset)).To(Succeed())

		fh, err := os.Open(filepath.Join(outputDir, "stock_metrics_history_20250601_093015.csv"))
		Expect(err).To(BeNil())
		defer fh.Close()

		records, err := csv.NewReader(fh).ReadAll()
		Expect(err).To(BeNil())

		sparse := records[2]
		Expect(sparse[0]).To(Equal("NOVOL"))
		Expect(sparse[1]).To(Equal("")) // year
		Expect(sparse[8]).To(Equal("")) // annualized_return
		Expect(sparse[11]).To(Equal("")) // sharpe_ratio
		Expect(sparse[13]).To(Equal("")) // max_daily_profit_date
		Expect(sparse[18]).To(Equal("")) // market_cap
		Expect(sparse[19]).To(Equal("")) // is_period_complete
	})

	It("fails when the output directory does not exist", func() {
		sink := NewCSV(filepath.Join(outputDir, "missing"), ModeHistory)
		Expect(sink.Write(context.Background(), dataset)).NotTo(Succeed())
	})
})
