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

package data_test

import (
	"context"
	"time"

	"github.com/jarcoal/httpmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/stock-metrics/common"
	"github.com/penny-vault/stock-metrics/data"
)

// epochs land on 2021-01-04 through 2021-01-06, 14:30 New York
const chartJSON = `{
	"chart": {
		"result": [{
			"timestamp": [1609788600, 1609875000, 1609961400],
			"events": {
				"dividends": {
					"1609875000": {"amount": 0.56, "date": 1609875000},
					"1609788600": {"amount": 0.51, "date": 1609788600}
				}
			},
			"indicators": {
				"quote": [{
					"close": [133.52, null, 126.60]
				}]
			}
		}],
		"error": null
	}
}`

const notFoundJSON = `{
	"chart": {
		"result": null,
		"error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
	}
}`

const quoteSummaryJSON = `{
	"quoteSummary": {
		"result": [{
			"price": {"longName": "Apple Inc.", "shortName": "Apple"},
			"summaryProfile": {"sector": "Technology", "industry": "Consumer Electronics"},
			"defaultKeyStatistics": {"sharesOutstanding": {"raw": 16406400000, "fmt": "16.41B"}}
		}],
		"error": null
	}
}`

const quoteSummaryErrJSON = `{
	"quoteSummary": {
		"result": null,
		"error": {"code": "Not Found", "description": "Quote not found for ticker symbol"}
	}
}`

var _ = Describe("Yahoo provider", func() {
	var provider data.Provider

	BeforeEach(func() {
		httpmock.Activate()
		provider = data.NewYahoo()
	})

	AfterEach(func() {
		httpmock.DeactivateAndReset()
	})

	Describe("DailyPrices", func() {
		It("parses daily bars and skips unpriced days", func() {
			httpmock.RegisterResponder("GET", `=~^https://query1\.finance\.yahoo\.com/v8/finance/chart/AAPL`,
				httpmock.NewStringResponder(200, chartJSON))

			start := time.Date(2021, time.January, 1, 0, 0, 0, 0, common.GetTimezone())
			rows, err := provider.DailyPrices(context.Background(), "AAPL", start)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(2))

			tz := common.GetTimezone()
			Expect(rows[0].Date.Equal(time.Date(2021, time.January, 4, 16, 0, 0, 0, tz))).To(BeTrue())
			Expect(rows[0].Close).To(Equal(133.52))
			Expect(rows[1].Date.Equal(time.Date(2021, time.January, 6, 16, 0, 0, 0, tz))).To(BeTrue())
			Expect(rows[1].Close).To(Equal(126.60))
		})

		It("returns no rows for an unknown ticker", func() {
			httpmock.RegisterResponder("GET", `=~^https://query1\.finance\.yahoo\.com/v8/finance/chart/BOGUS`,
				httpmock.NewStringResponder(200, notFoundJSON))

			rows, err := provider.DailyPrices(context.Background(), "BOGUS", time.Now().AddDate(-1, 0, 0))
			Expect(err).To(BeNil())
			Expect(rows).To(BeEmpty())
		})

		It("treats a 404 like an empty result set", func() {
			httpmock.RegisterResponder("GET", `=~^https://query1\.finance\.yahoo\.com/v8/finance/chart/GONE`,
				httpmock.NewStringResponder(404, "not found"))

			rows, err := provider.DailyPrices(context.Background(), "GONE", time.Now().AddDate(-1, 0, 0))
			Expect(err).To(BeNil())
			Expect(rows).To(BeEmpty())
		})

		It("fails on a server error", func() {
			httpmock.RegisterResponder("GET", `=~^https://query1\.finance\.yahoo\.com/v8/finance/chart/AAPL`,
				httpmock.NewStringResponder(500, "internal server error"))

			_, err := provider.DailyPrices(context.Background(), "AAPL", time.Now().AddDate(-1, 0, 0))
			Expect(err).To(MatchError(data.ErrInvalidStatusCode))
		})

		It("fails on malformed json", func() {
			httpmock.RegisterResponder("GET", `=~^https://query1\.finance\.yahoo\.com/v8/finance/chart/AAPL`,
				httpmock.NewStringResponder(200, "<html>rate limited</html>"))

			_, err := provider.DailyPrices(context.Background(), "AAPL", time.Now().AddDate(-1, 0, 0))
			Expect(err).To(MatchError(data.ErrInvalidResponse))
		})
	})

	Describe("Dividends", func() {
		It("parses dividend events in ascending date order", func() {
			httpmock.RegisterResponder("GET", `=~^https://query1\.finance\.yahoo\.com/v8/finance/chart/AAPL`,
				httpmock.NewStringResponder(200, chartJSON))

			rows, err := provider.Dividends(context.Background(), "AAPL")
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Amount).To(Equal(0.51))
			Expect(rows[1].Amount).To(Equal(0.56))
			Expect(rows[0].Date.Before(rows[1].Date)).To(BeTrue())
		})

		It("returns no events for an unknown ticker", func() {
			httpmock.RegisterResponder("GET", `=~^https://query1\.finance\.yahoo\.com/v8/finance/chart/BOGUS`,
				httpmock.NewStringResponder(200, notFoundJSON))

			rows, err := provider.Dividends(context.Background(), "BOGUS")
			Expect(err).To(BeNil())
			Expect(rows).To(BeEmpty())
		})
	})

	Describe("Profile", func() {
		It("parses company name, classification and shares outstanding", func() {
			httpmock.RegisterResponder("GET", `=~^https://query1\.finance\.yahoo\.com/v10/finance/quoteSummary/AAPL`,
				httpmock.NewStringResponder(200, quoteSummaryJSON))

			profile, err := provider.Profile(context.Background(), "AAPL")
			Expect(err).To(BeNil())
			Expect(profile.Ticker).To(Equal("AAPL"))
			Expect(profile.CompanyName).To(Equal("Apple Inc."))
			Expect(profile.Sector).To(Equal("Technology"))
			Expect(profile.Industry).To(Equal("Consumer Electronics"))
			Expect(profile.SharesOutstanding).NotTo(BeNil())
			Expect(*profile.SharesOutstanding).To(Equal(int64(16406400000)))
		})

		It("returns a bare profile for an unknown ticker", func() {
			httpmock.RegisterResponder("GET", `=~^https://query1\.finance\.yahoo\.com/v10/finance/quoteSummary/BOGUS`,
				httpmock.NewStringResponder(200, quoteSummaryErrJSON))

			profile, err := provider.Profile(context.Background(), "BOGUS")
			Expect(err).To(BeNil())
			Expect(profile.Ticker).To(Equal("BOGUS"))
			Expect(profile.CompanyName).To(Equal(""))
			Expect(profile.SharesOutstanding).To(BeNil())
		})
	})
})
