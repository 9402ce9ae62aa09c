/*
 * Copyright 2025 eino-oracle23ai Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package oraclevs

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type mockEmbedder struct {
	vectors [][]float64
	err     error
}

func (m *mockEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.vectors, nil
}

func expectCreateTable(mock sqlmock.Sqlmock) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS").
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestNewIndexerValidation(t *testing.T) {
	ctx := context.Background()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	emb := &mockEmbedder{}

	_, err = NewIndexer(ctx, &IndexerConfig{Embedding: emb})
	assert.ErrorContains(t, err, "database connection not provided")

	_, err = NewIndexer(ctx, &IndexerConfig{DB: db})
	assert.ErrorContains(t, err, "embedding is required")

	_, err = NewIndexer(ctx, &IndexerConfig{DB: db, Embedding: emb, TableName: "PDF COLLECTION"})
	assert.ErrorContains(t, err, "invalid table name")
}

func TestNewIndexerCreatesTable(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	expectCreateTable(mock)

	i, err := NewIndexer(ctx, &IndexerConfig{DB: db, Embedding: &mockEmbedder{}})
	assert.NoError(t, err)
	assert.Equal(t, "PDFCOLLECTION", i.config.TableName)
	assert.Equal(t, 384, i.config.Dimension)
	assert.Equal(t, defaultBatchSize, i.config.BatchSize)
	assert.Equal(t, "OracleVS", i.GetType())
	assert.True(t, i.IsCallbacksEnabled())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	expectCreateTable(mock)

	i, err := NewIndexer(ctx, &IndexerConfig{
		DB: db,
		Embedding: &mockEmbedder{vectors: [][]float64{
			{0.1, 0.2},
			{0.3, 0.4},
		}},
	})
	assert.NoError(t, err)

	docs := []*schema.Document{
		{ID: "chunk-1", Content: "first chunk", MetaData: map[string]any{"chunk_index": 0}},
		{Content: "second chunk", MetaData: map[string]any{"chunk_index": 1}},
	}

	mock.ExpectBegin()
	mock.ExpectExec("MERGE INTO PDFCOLLECTION").
		WithArgs("chunk-1", "first chunk", `{"chunk_index":0}`, "[0.1,0.2]").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("MERGE INTO PDFCOLLECTION").
		WithArgs(sqlmock.AnyArg(), "second chunk", `{"chunk_index":1}`, "[0.3,0.4]").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ids, err := i.Store(ctx, docs)
	assert.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Equal(t, "chunk-1", ids[0])

	// a document without an ID gets a generated UUID
	_, err = uuid.Parse(ids[1])
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreBatching(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	expectCreateTable(mock)

	i, err := NewIndexer(ctx, &IndexerConfig{
		DB:        db,
		BatchSize: 2,
		Embedding: &mockEmbedder{vectors: [][]float64{{1}, {2}, {3}}},
	})
	assert.NoError(t, err)

	docs := []*schema.Document{
		{ID: "a", Content: "a"},
		{ID: "b", Content: "b"},
		{ID: "c", Content: "c"},
	}

	// 3 docs with batch size 2 means two transactions
	mock.ExpectBegin()
	mock.ExpectExec("MERGE INTO PDFCOLLECTION").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("MERGE INTO PDFCOLLECTION").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("MERGE INTO PDFCOLLECTION").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ids, err := i.Store(ctx, docs)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreEmbeddingMismatch(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	expectCreateTable(mock)

	i, err := NewIndexer(ctx, &IndexerConfig{
		DB:        db,
		Embedding: &mockEmbedder{vectors: [][]float64{{1}}},
	})
	assert.NoError(t, err)

	docs := []*schema.Document{
		{ID: "a", Content: "a"},
		{ID: "b", Content: "b"},
	}

	_, err = i.Store(ctx, docs)
	assert.ErrorContains(t, err, "length mismatch")
}

func TestStoreEmbeddingError(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	expectCreateTable(mock)

	i, err := NewIndexer(ctx, &IndexerConfig{
		DB:        db,
		Embedding: &mockEmbedder{err: fmt.Errorf("service unavailable")},
	})
	assert.NoError(t, err)

	_, err = i.Store(ctx, []*schema.Document{{ID: "a", Content: "a"}})
	assert.ErrorContains(t, err, "embedding failed")
}

func TestStoreRollbackOnExecError(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	expectCreateTable(mock)

	i, err := NewIndexer(ctx, &IndexerConfig{
		DB:        db,
		Embedding: &mockEmbedder{vectors: [][]float64{{1}}},
	})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("MERGE INTO PDFCOLLECTION").
		WillReturnError(fmt.Errorf("ORA-01722: invalid number"))
	mock.ExpectRollback()

	_, err = i.Store(ctx, []*schema.Document{{ID: "a", Content: "a"}})
	assert.ErrorContains(t, err, "failed to upsert document a")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRollbackOnMarshalError(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	expectCreateTable(mock)

	i, err := NewIndexer(ctx, &IndexerConfig{
		DB:        db,
		Embedding: &mockEmbedder{vectors: [][]float64{{1}}},
	})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()

	docs := []*schema.Document{
		{ID: "a", Content: "a", MetaData: map[string]any{"bad": make(chan int)}},
	}

	_, err = i.Store(ctx, docs)
	assert.ErrorContains(t, err, "failed to marshal metadata")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "[0.1,0.2,0.3]", formatVector([]float64{0.1, 0.2, 0.3}))
	assert.Equal(t, "[-1,0,1]", formatVector([]float64{-1, 0, 1}))
	assert.Equal(t, "[]", formatVector(nil))
}

func TestValidateIdentifier(t *testing.T) {
	assert.NoError(t, validateIdentifier("PDFCOLLECTION"))
	assert.NoError(t, validateIdentifier("my_table_2"))
	assert.Error(t, validateIdentifier(""))
	assert.Error(t, validateIdentifier("1table"))
	assert.Error(t, validateIdentifier("_table"))
	assert.Error(t, validateIdentifier("table; drop"))
}

func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN(&ConnectionConfig{
		User:     "ADMIN",
		Password: "secret",
		Host:     "adb.ap-seoul-1.oraclecloud.com",
		Port:     1522,
		Service:  "myatp_high",
	})
	assert.Contains(t, dsn, "oracle://")
	assert.Contains(t, dsn, "adb.ap-seoul-1.oraclecloud.com")
	assert.Contains(t, dsn, "myatp_high")
	assert.NotContains(t, dsn, "WALLET")

	dsn = BuildDSN(&ConnectionConfig{
		User:           "ADMIN",
		Password:       "secret",
		Host:           "adb.ap-seoul-1.oraclecloud.com",
		Port:           1522,
		Service:        "myatp_high",
		WalletLocation: "/opt/wallet",
		WalletPassword: "walletpw",
	})
	assert.Contains(t, dsn, "SSL")
	assert.Contains(t, dsn, "WALLET")
}
