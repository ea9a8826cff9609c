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
	"strings"

	"github.com/spf13/viper"
)

// Universe is the static set of tickers a run computes metrics over. It is
// always supplied externally (configuration or test fixture); there is no
// built-in symbol list.
type Universe struct {
	tickers []string
}

// NewUniverse creates a universe from an explicit ticker list. Tickers are
// upper-cased; order is preserved and determines output row order.
func NewUniverse(tickers []string) *Universe {
	normalized := make([]string, 0, len(tickers))
	for _, ticker := range tickers {
		ticker = strings.TrimSpace(strings.ToUpper(ticker))
		if ticker != "" {
			normalized = append(normalized, ticker)
		}
	}
	return &Universe{tickers: normalized}
}

// UniverseFromConfig reads the `tickers` list from configuration.
func UniverseFromConfig() (*Universe, error) {
	u := NewUniverse(viper.GetStringSlice("tickers"))
	if u.Len() == 0 {
		return nil, ErrEmptyUniverse
	}
	return u, nil
}

func (u *Universe) Tickers() []string {
	return u.tickers
}

func (u *Universe) Len() int {
	return len(u.tickers)
}
