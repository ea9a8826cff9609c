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

package metrics

import (
	"time"

	"github.com/penny-vault/stock-metrics/data"
)

// SumDividends totals dividend amounts for events falling in the closed
// window [start, end]. Dividends are summed in raw currency; an empty event
// list or a window with no events is a valid zero, never an error.
func SumDividends(events []data.DividendRow, start, end time.Time) float64 {
	var total float64
	for _, event := range events {
		if event.Date.Before(start) || event.Date.After(end) {
			continue
		}
		total += event.Amount
	}
	return total
}
