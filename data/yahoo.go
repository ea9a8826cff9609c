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

package data

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/penny-vault/stock-metrics/common"
	"github.com/penny-vault/stock-metrics/observability/opentelemetry"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var yahooAPI = "https://query1.finance.yahoo.com"

// marketCloseHour is the hour-of-day (New York) assigned to normalized
// observation dates so they compare equal across chart and dividend feeds.
const marketCloseHour = 16

type yahoo struct {
}

// NewYahoo creates a Yahoo Finance data provider. Yahoo serves daily OHLC
// bars and dividend events through the v8 chart API and company fundamentals
// through the v10 quoteSummary API.
func NewYahoo() *yahoo {
	return &yahoo{}
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp []int64 `json:"timestamp"`
			Events    struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooRawFmt struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type yahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				LongName  string `json:"longName"`
				ShortName string `json:"shortName"`
			} `json:"price"`
			SummaryProfile *struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"summaryProfile"`
			DefaultKeyStatistics *struct {
				SharesOutstanding yahooRawFmt `json:"sharesOutstanding"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// DailyPrices returns raw daily closing prices for ticker from start through
// today. An unknown or delisted ticker yields an empty slice, not an error.
func (y *yahoo) DailyPrices(ctx context.Context, ticker string, start time.Time) ([]PriceRow, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "yahoo.DailyPrices")
	defer span.End()
	span.SetAttributes(attribute.String("Ticker", ticker))

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		yahooAPI, url.PathEscape(ticker), start.Unix(), time.Now().Unix())

	chart, err := y.fetchChart(ctx, ticker, reqURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chart request failed")
		return nil, err
	}
	if chart == nil {
		return nil, nil
	}

	tz := common.GetTimezone()
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}

	closes := result.Indicators.Quote[0].Close
	rows := make([]PriceRow, 0, len(result.Timestamp))
	for idx, ts := range result.Timestamp {
		if idx >= len(closes) || closes[idx] == nil {
			// non-trading gap or unpriced bar
			continue
		}
		rows = append(rows, PriceRow{
			Date:  tradeDate(ts, tz),
			Close: *closes[idx],
		})
	}

	return rows, nil
}

// Dividends returns the full cash dividend history for ticker in ascending
// date order.
func (y *yahoo) Dividends(ctx context.Context, ticker string) ([]DividendRow, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "yahoo.Dividends")
	defer span.End()
	span.SetAttributes(attribute.String("Ticker", ticker))

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=max&interval=1d&events=div",
		yahooAPI, url.PathEscape(ticker))

	chart, err := y.fetchChart(ctx, ticker, reqURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dividend request failed")
		return nil, err
	}
	if chart == nil {
		return nil, nil
	}

	tz := common.GetTimezone()
	events := chart.Chart.Result[0].Events.Dividends
	rows := make([]DividendRow, 0, len(events))
	for _, div := range events {
		if div.Amount < 0 {
			continue
		}
		rows = append(rows, DividendRow{
			Date:   tradeDate(div.Date, tz),
			Amount: div.Amount,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	return rows, nil
}

// Profile returns descriptive attributes for ticker. Missing fundamentals
// leave the corresponding fields empty or nil; only a transport or decode
// failure is an error.
func (y *yahoo) Profile(ctx context.Context, ticker string) (*SecurityProfile, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "yahoo.Profile")
	defer span.End()
	span.SetAttributes(attribute.String("Ticker", ticker))

	subLog := log.With().Str("Ticker", ticker).Logger()

	reqURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price%%2CsummaryProfile%%2CdefaultKeyStatistics",
		yahooAPI, url.PathEscape(ticker))

	body, err := y.get(ctx, reqURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "quoteSummary request failed")
		subLog.Warn().Err(err).Msg("could not fetch security profile")
		return nil, err
	}

	summary := yahooQuoteSummaryResponse{}
	if err := json.Unmarshal(body, &summary); err != nil {
		subLog.Warn().Err(err).Msg("could not unmarshal quoteSummary json")
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, err)
	}

	profile := &SecurityProfile{Ticker: ticker}
	if summary.QuoteSummary.Error != nil || len(summary.QuoteSummary.Result) == 0 {
		// unknown ticker; descriptive attributes stay empty
		return profile, nil
	}

	result := summary.QuoteSummary.Result[0]
	if result.Price != nil {
		profile.CompanyName = result.Price.LongName
		if profile.CompanyName == "" {
			profile.CompanyName = result.Price.ShortName
		}
	}
	if result.SummaryProfile != nil {
		profile.Sector = result.SummaryProfile.Sector
		profile.Industry = result.SummaryProfile.Industry
	}
	if result.DefaultKeyStatistics != nil && result.DefaultKeyStatistics.SharesOutstanding.Raw != nil {
		shares := int64(*result.DefaultKeyStatistics.SharesOutstanding.Raw)
		profile.SharesOutstanding = &shares
	}

	return profile, nil
}

// fetchChart runs a chart API request and validates the envelope. A nil
// response with nil error means yahoo knows nothing about the ticker.
func (y *yahoo) fetchChart(ctx context.Context, ticker string, reqURL string) (*yahooChartResponse, error) {
	subLog := log.With().Str("Ticker", ticker).Logger()

	body, err := y.get(ctx, reqURL)
	if err != nil {
		subLog.Warn().Err(err).Msg("yahoo chart request failed")
		return nil, err
	}

	chart := yahooChartResponse{}
	if err := json.Unmarshal(body, &chart); err != nil {
		subLog.Warn().Err(err).Msg("could not unmarshal chart json")
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, err)
	}

	if chart.Chart.Error != nil {
		subLog.Info().Str("Code", chart.Chart.Error.Code).Str("Description", chart.Chart.Error.Description).Msg("yahoo reported no data for ticker")
		return nil, nil
	}
	if len(chart.Chart.Result) == 0 {
		return nil, nil
	}

	return &chart, nil
}

func (y *yahoo) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	// yahoo rejects requests without a browser-like agent
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// treated the same as an empty result set
		return []byte(`{}`), nil
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatusCode, resp.StatusCode)
	}

	return ioutil.ReadAll(resp.Body)
}

func tradeDate(epoch int64, tz *time.Location) time.Time {
	t := time.Unix(epoch, 0).In(tz)
	return time.Date(t.Year(), t.Month(), t.Day(), marketCloseHour, 0, 0, 0, tz)
}
