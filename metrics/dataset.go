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

// Dataset is an append-only, ordered collection of result rows accumulated
// across the ticker universe. Skipped units simply contribute no row; there
// are no placeholder or error rows and no deduplication.
type Dataset struct {
	rows []*MetricsResult
}

func NewDataset() *Dataset {
	return &Dataset{rows: make([]*MetricsResult, 0, 256)}
}

func (dataset *Dataset) Append(rows ...*MetricsResult) {
	dataset.rows = append(dataset.rows, rows...)
}

func (dataset *Dataset) Rows() []*MetricsResult {
	return dataset.rows
}

func (dataset *Dataset) Len() int {
	return len(dataset.rows)
}
