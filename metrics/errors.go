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

import "errors"

var (
	// ErrEmptySeries indicates the provider returned zero rows for a ticker;
	// the unit is skipped, never computed.
	ErrEmptySeries = errors.New("price series is empty")

	// ErrInsufficientData indicates a slice has fewer than two observations
	// and therefore no first/last distinction to compute a return from.
	ErrInsufficientData = errors.New("insufficient data: at least 2 price observations required")

	// ErrDegenerateSeries indicates a first close of exactly zero; computing
	// a return would divide by zero so the unit is reported invalid.
	ErrDegenerateSeries = errors.New("degenerate series: first close is zero")
)
