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
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/indexer"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/bahn1075/eino-oracle23ai/pdfcollection"
)

// IndexerConfig configures the Oracle 23ai indexer.
type IndexerConfig struct {
	// DB is an open database handle backed by the go-ora driver.
	// Use Connect to build one from wallet credentials.
	// Required.
	DB *sql.DB

	// TableName is the table for storing documents and vectors.
	// Optional. Default pdfcollection.DefaultTableName.
	TableName string

	// Dimension is the EMBEDDING column's vector dimension.
	// Optional. Default pdfcollection.DefaultDimension.
	Dimension int

	// BatchSize is the number of documents upserted per transaction.
	// Optional. Default 32.
	BatchSize int

	// Embedding is the vectorization method for document contents.
	// Required.
	Embedding embedding.Embedder
}

// Indexer stores documents with their embeddings in an Oracle 23ai vector
// table shaped like PDFCOLLECTION.
type Indexer struct {
	config *IndexerConfig
}

// NewIndexer creates a new Oracle 23ai indexer and ensures the target table
// exists.
func NewIndexer(ctx context.Context, config *IndexerConfig) (*Indexer, error) {
	if config.DB == nil {
		return nil, fmt.Errorf("[NewIndexer] database connection not provided")
	}

	if config.Embedding == nil {
		return nil, fmt.Errorf("[NewIndexer] embedding is required")
	}

	if config.TableName == "" {
		config.TableName = pdfcollection.DefaultTableName
	}

	if config.Dimension == 0 {
		config.Dimension = pdfcollection.DefaultDimension
	}

	if config.BatchSize == 0 {
		config.BatchSize = defaultBatchSize
	}

	if err := validateIdentifier(config.TableName); err != nil {
		return nil, fmt.Errorf("[NewIndexer] invalid table name: %w", err)
	}

	if err := config.DB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("[NewIndexer] failed to ping database: %w", err)
	}

	i := &Indexer{config: config}

	if err := i.ensureTable(ctx); err != nil {
		return nil, err
	}

	return i, nil
}

// ensureTable creates the vector table when it does not exist yet, using the
// PDFCOLLECTION layout. CREATE TABLE IF NOT EXISTS requires Oracle 23ai.
func (i *Indexer) ensureTable(ctx context.Context) error {
	createTableSQL := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		%s VARCHAR2(100) PRIMARY KEY,
		%s CLOB,
		%s CLOB CHECK (%s IS JSON),
		%s VECTOR(%d, FLOAT32),
		%s TIMESTAMP DEFAULT SYSTIMESTAMP
	)`,
		i.config.TableName,
		pdfcollection.ColumnID,
		pdfcollection.ColumnText,
		pdfcollection.ColumnMetadata,
		pdfcollection.ColumnMetadata,
		pdfcollection.ColumnEmbedding,
		i.config.Dimension,
		pdfcollection.ColumnCreatedAt,
	)

	if _, err := i.config.DB.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("[OracleVSIndexer] failed to create table: %w", err)
	}

	return nil
}

// Store embeds the documents' contents and upserts them into the vector
// table, batch by batch.
func (i *Indexer) Store(ctx context.Context, docs []*schema.Document, opts ...indexer.Option) (ids []string, err error) {
	options := indexer.GetCommonOptions(&indexer.Options{
		Embedding: i.config.Embedding,
	}, opts...)

	ctx = callbacks.EnsureRunInfo(ctx, i.GetType(), components.ComponentOfIndexer)
	ctx = callbacks.OnStart(ctx, &indexer.CallbackInput{Docs: docs})
	defer func() {
		if err != nil {
			callbacks.OnError(ctx, err)
		}
	}()

	emb := options.Embedding
	if emb == nil {
		return nil, fmt.Errorf("[OracleVSIndexer] embedding not provided")
	}

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		texts = append(texts, doc.Content)
	}

	vectors, err := emb.EmbedStrings(i.makeEmbeddingCtx(ctx, emb), texts)
	if err != nil {
		return nil, fmt.Errorf("[OracleVSIndexer] embedding failed: %w", err)
	}

	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("[OracleVSIndexer] embedding result length mismatch: need %d, got %d", len(docs), len(vectors))
	}

	ids = make([]string, 0, len(docs))
	for j := 0; j < len(docs); j += i.config.BatchSize {
		end := j + i.config.BatchSize
		if end > len(docs) {
			end = len(docs)
		}

		batchIDs, err := i.upsertBatch(ctx, docs[j:end], vectors[j:end])
		if err != nil {
			return nil, err
		}

		ids = append(ids, batchIDs...)
	}

	callbacks.OnEnd(ctx, &indexer.CallbackOutput{IDs: ids})

	return ids, nil
}

// upsertBatch merges one batch of documents into the vector table inside a
// transaction.
func (i *Indexer) upsertBatch(ctx context.Context, docs []*schema.Document, vectors [][]float64) ([]string, error) {
	if len(docs) == 0 {
		return []string{}, nil
	}

	tx, err := i.config.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("[OracleVSIndexer] failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	mergeSQL := i.buildMergeSQL()

	ids := make([]string, 0, len(docs))
	for idx, doc := range docs {
		id := doc.ID
		if id == "" {
			id = uuid.NewString()
		}
		ids = append(ids, id)

		var metadata string
		if metadata, err = sonic.MarshalString(doc.MetaData); err != nil {
			return nil, fmt.Errorf("[OracleVSIndexer] failed to marshal metadata: %w", err)
		}

		if _, err = tx.ExecContext(ctx, mergeSQL, id, doc.Content, metadata, formatVector(vectors[idx])); err != nil {
			return nil, fmt.Errorf("[OracleVSIndexer] failed to upsert document %s: %w", id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("[OracleVSIndexer] failed to commit transaction: %w", err)
	}

	return ids, nil
}

func (i *Indexer) buildMergeSQL() string {
	return fmt.Sprintf(
		`MERGE INTO %[1]s t
		USING (SELECT :1 AS %[2]s, :2 AS %[3]s, :3 AS %[4]s, TO_VECTOR(:4) AS %[5]s FROM dual) s
		ON (t.%[2]s = s.%[2]s)
		WHEN MATCHED THEN UPDATE SET t.%[3]s = s.%[3]s, t.%[4]s = s.%[4]s, t.%[5]s = s.%[5]s
		WHEN NOT MATCHED THEN INSERT (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s)
		VALUES (s.%[2]s, s.%[3]s, s.%[4]s, s.%[5]s, SYSTIMESTAMP)`,
		i.config.TableName,
		pdfcollection.ColumnID,
		pdfcollection.ColumnText,
		pdfcollection.ColumnMetadata,
		pdfcollection.ColumnEmbedding,
		pdfcollection.ColumnCreatedAt,
	)
}

// formatVector renders a float array in the textual form TO_VECTOR accepts.
func formatVector(vector []float64) string {
	strValues := make([]string, len(vector))
	for i, v := range vector {
		strValues[i] = strconv.FormatFloat(v, 'f', -1, 32)
	}
	return "[" + strings.Join(strValues, ",") + "]"
}

// makeEmbeddingCtx creates embedding context
func (i *Indexer) makeEmbeddingCtx(ctx context.Context, emb embedding.Embedder) context.Context {
	runInfo := &callbacks.RunInfo{
		Component: components.ComponentOfEmbedding,
	}

	if embType, ok := components.GetType(emb); ok {
		runInfo.Type = embType
	}

	runInfo.Name = runInfo.Type + string(runInfo.Component)

	return callbacks.ReuseHandlers(ctx, runInfo)
}

// GetType returns the indexer type.
func (i *Indexer) GetType() string {
	return typ
}

// IsCallbacksEnabled returns whether callbacks are enabled.
func (i *Indexer) IsCallbacksEnabled() bool {
	return true
}

// Ensure Indexer implements indexer.Indexer
var _ indexer.Indexer = (*Indexer)(nil)
