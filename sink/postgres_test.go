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
	"errors"

	"github.com/jackc/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pashagolub/pgxmock"

	"github.com/penny-vault/stock-metrics/database"
	"github.com/penny-vault/stock-metrics/metrics"
)

var _ = Describe("Postgres sink", func() {
	var (
		dbPool  pgxmock.PgxConnIface
		dataset *metrics.Dataset
	)

	BeforeEach(func() {
		var err error
		dbPool, err = pgxmock.NewConn()
		Expect(err).To(BeNil())
		database.SetPool(dbPool)

		dataset = metrics.NewDataset()
		dataset.Append(fullRow(), sparseRow())
	})

	It("replaces the mode table inside a single transaction", func() {
		dbPool.ExpectBegin()
		dbPool.ExpectExec("CREATE TABLE IF NOT EXISTS stock_metrics_yearly").WillReturnResult(pgconn.CommandTag("CREATE TABLE"))
		dbPool.ExpectExec("TRUNCATE TABLE stock_metrics_yearly").WillReturnResult(pgconn.CommandTag("TRUNCATE TABLE"))
		dbPool.ExpectExec("INSERT INTO stock_metrics_yearly").WillReturnResult(pgconn.CommandTag("INSERT 0 1"))
		dbPool.ExpectExec("INSERT INTO stock_metrics_yearly").WillReturnResult(pgconn.CommandTag("INSERT 0 1"))
		dbPool.ExpectCommit()

		sink := NewPostgres(ModeYearly)
		Expect(sink.Write(context.Background(), dataset)).To(Succeed())
		Expect(dbPool.ExpectationsWereMet()).To(Succeed())
	})

	It("targets the history table in history mode", func() {
		dbPool.ExpectBegin()
		dbPool.ExpectExec("CREATE TABLE IF NOT EXISTS stock_metrics_history").WillReturnResult(pgconn.CommandTag("CREATE TABLE"))
		dbPool.ExpectExec("TRUNCATE TABLE stock_metrics_history").WillReturnResult(pgconn.CommandTag("TRUNCATE TABLE"))
		dbPool.ExpectExec("INSERT INTO stock_metrics_history").WillReturnResult(pgconn.CommandTag("INSERT 0 1"))
		dbPool.ExpectExec("INSERT INTO stock_metrics_history").WillReturnResult(pgconn.CommandTag("INSERT 0 1"))
		dbPool.ExpectCommit()

		sink := NewPostgres(ModeHistory)
		Expect(sink.Write(context.Background(), dataset)).To(Succeed())
		Expect(dbPool.ExpectationsWereMet()).To(Succeed())
	})

	It("commits an empty dataset after truncating", func() {
		dbPool.ExpectBegin()
		dbPool.ExpectExec("CREATE TABLE IF NOT EXISTS stock_metrics_yearly").WillReturnResult(pgconn.CommandTag("CREATE TABLE"))
		dbPool.ExpectExec("TRUNCATE TABLE stock_metrics_yearly").WillReturnResult(pgconn.CommandTag("TRUNCATE TABLE"))
		dbPool.ExpectCommit()

		sink := NewPostgres(ModeYearly)
		Expect(sink.Write(context.Background(), metrics.NewDataset())).To(Succeed())
		Expect(dbPool.ExpectationsWereMet()).To(Succeed())
	})

	It("rolls back when an insert fails", func() {
		dbPool.ExpectBegin()
		dbPool.ExpectExec("CREATE TABLE IF NOT EXISTS stock_metrics_yearly").WillReturnResult(pgconn.CommandTag("CREATE TABLE"))
		dbPool.ExpectExec("TRUNCATE TABLE stock_metrics_yearly").WillReturnResult(pgconn.CommandTag("TRUNCATE TABLE"))
		dbPool.ExpectExec("INSERT INTO stock_metrics_yearly").WillReturnError(errors.New("value too long"))
		dbPool.ExpectRollback()

		sink := NewPostgres(ModeYearly)
		Expect(sink.Write(context.Background(), dataset)).NotTo(Succeed())
		Expect(dbPool.ExpectationsWereMet()).To(Succeed())
	})
})
