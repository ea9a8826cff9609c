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

package metrics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/stock-metrics/data"
	"github.com/penny-vault/stock-metrics/metrics"
)

var _ = Describe("NormalizeSeries", func() {
	It("sorts observations into ascending date order", func() {
		rows := []data.PriceRow{
			{Date: marketDate(2021, 1, 6), Close: 103},
			{Date: marketDate(2021, 1, 4), Close: 100},
			{Date: marketDate(2021, 1, 5), Close: 101},
		}
		series, err := metrics.NormalizeSeries("TEST", rows)
		Expect(err).To(BeNil())
		Expect(series.Len()).To(Equal(3))
		Expect(series.First().Close).To(Equal(100.0))
		Expect(series.Last().Close).To(Equal(103.0))
		Expect(series.Observations[1].Date.Before(series.Observations[2].Date)).To(BeTrue())
	})

	It("collapses duplicate dates keeping the last row", func() {
		rows := []data.PriceRow{
			{Date: marketDate(2021, 1, 4), Close: 100},
			{Date: marketDate(2021, 1, 5), Close: 101},
			{Date: marketDate(2021, 1, 5), Close: 102},
		}
		series, err := metrics.NormalizeSeries("TEST", rows)
		Expect(err).To(BeNil())
		Expect(series.Len()).To(Equal(2))
		Expect(series.Last().Close).To(Equal(102.0))
	})

	It("rejects an empty row set", func() {
		_, err := metrics.NormalizeSeries("TEST", nil)
		Expect(err).To(MatchError(metrics.ErrEmptySeries))
	})

	It("keeps the ticker on the series", func() {
		rows := []data.PriceRow{{Date: marketDate(2021, 1, 4), Close: 100}}
		series, err := metrics.NormalizeSeries("msft", rows)
		Expect(err).To(BeNil())
		Expect(series.Ticker).To(Equal("msft"))
	})
})

var _ = Describe("DailyReturns", func() {
	It("excludes the first observation from the return series", func() {
		series := buildSeries("TEST", marketDate(2021, 1, 4), 100, 110, 99)
		returns := series.DailyReturns()
		Expect(returns).To(HaveLen(2))
		Expect(returns[0].Return).To(BeNumerically("~", 0.10, 1e-9))
		Expect(returns[0].Date.Equal(marketDate(2021, 1, 5))).To(BeTrue())
		Expect(returns[1].Return).To(BeNumerically("~", -0.10, 1e-9))
	})

	It("skips returns with a zero base price", func() {
		series := buildSeries("TEST", marketDate(2021, 1, 4), 100, 0, 50)
		returns := series.DailyReturns()
		Expect(returns).To(HaveLen(1))
		Expect(returns[0].Return).To(BeNumerically("~", -1.0, 1e-9))
	})

	It("is empty for a single observation", func() {
		series := buildSeries("TEST", marketDate(2021, 1, 4), 100)
		Expect(series.DailyReturns()).To(BeEmpty())
	})
})
