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
	"sort"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/retriever"
	"github.com/cloudwego/eino/schema"

	"github.com/bahn1075/eino-oracle23ai/pdfcollection"
)

// RetrieverConfig holds the configuration for the Oracle 23ai retriever.
type RetrieverConfig struct {
	// DB is an open database handle backed by the go-ora driver.
	// Required.
	DB *sql.DB

	// TableName is the table storing documents and vectors.
	// Optional. Default pdfcollection.DefaultTableName.
	TableName string

	// DistanceStrategy is the metric for similarity search.
	// Optional. Default DistanceCosine.
	DistanceStrategy DistanceStrategy

	// TopK is the maximum number of documents to retrieve.
	// Optional. Default 5.
	TopK int

	// ScoreThreshold filters out results scoring below it.
	// Optional.
	ScoreThreshold *float64

	// Embedding is the vectorization method for queries.
	// Required.
	Embedding embedding.Embedder
}

// Retriever is the Oracle 23ai implementation of eino Retriever.
type Retriever struct {
	config *RetrieverConfig
}

// NewRetriever creates a new Oracle 23ai retriever.
func NewRetriever(ctx context.Context, config *RetrieverConfig) (*Retriever, error) {
	if config.Embedding == nil {
		return nil, fmt.Errorf("[NewRetriever] embedding not provided")
	}

	if config.DB == nil {
		return nil, fmt.Errorf("[NewRetriever] database connection not provided")
	}

	if config.TableName == "" {
		config.TableName = pdfcollection.DefaultTableName
	}

	if config.TopK == 0 {
		config.TopK = defaultTopK
	}

	if config.DistanceStrategy == "" {
		config.DistanceStrategy = DistanceCosine
	}

	if err := config.DistanceStrategy.Validate(); err != nil {
		return nil, fmt.Errorf("[NewRetriever] invalid distance strategy: %w", err)
	}

	if err := validateIdentifier(config.TableName); err != nil {
		return nil, fmt.Errorf("[NewRetriever] invalid table name: %w", err)
	}

	if err := config.DB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("[NewRetriever] failed to ping database: %w", err)
	}

	return &Retriever{config: config}, nil
}

// candidate is one fetched row, with its embedding retained for MMR.
type candidate struct {
	doc    *schema.Document
	vector []float64
}

// Retrieve retrieves similar documents based on the query.
func (r *Retriever) Retrieve(ctx context.Context, query string, opts ...retriever.Option) (docs []*schema.Document, err error) {
	co := retriever.GetCommonOptions(&retriever.Options{
		TopK:           &r.config.TopK,
		ScoreThreshold: r.config.ScoreThreshold,
		Embedding:      r.config.Embedding,
	}, opts...)

	io := retriever.GetImplSpecificOptions(&implOptions{
		DistanceStrategy: r.config.DistanceStrategy,
	}, opts...)

	ctx = callbacks.EnsureRunInfo(ctx, r.GetType(), components.ComponentOfRetriever)
	ctx = callbacks.OnStart(ctx, &retriever.CallbackInput{
		Query:          query,
		TopK:           *co.TopK,
		ScoreThreshold: co.ScoreThreshold,
	})
	defer func() {
		if err != nil {
			callbacks.OnError(ctx, err)
		}
	}()

	emb := co.Embedding
	if emb == nil {
		return nil, fmt.Errorf("[OracleVSRetriever] embedding not provided")
	}

	vectors, err := emb.EmbedStrings(r.makeEmbeddingCtx(ctx, emb), []string{query})
	if err != nil {
		return nil, fmt.Errorf("[Retrieve] failed to embed query: %w", err)
	}

	if len(vectors) != 1 {
		return nil, fmt.Errorf("[Retrieve] invalid vector length, expected=1, got=%d", len(vectors))
	}

	queryVector := vectors[0]

	useMMR := io.FetchK > 0
	limit := *co.TopK
	if useMMR && io.FetchK > limit {
		limit = io.FetchK
	}

	searchSQL, args, err := r.buildSearchQuery(queryVector, io, co.ScoreThreshold, limit, useMMR)
	if err != nil {
		return nil, err
	}

	rows, err := r.config.DB.QueryContext(ctx, searchSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("[Retrieve] query failed: %w", err)
	}
	defer rows.Close()

	candidates, err := r.scanRows(rows, queryVector, io.DistanceStrategy, useMMR)
	if err != nil {
		return nil, err
	}

	if useMMR {
		candidates = selectMMR(queryVector, candidates, io.LambdaMult, *co.TopK)
	}

	docs = make([]*schema.Document, 0, len(candidates))
	for _, c := range candidates {
		docs = append(docs, c.doc)
	}

	callbacks.OnEnd(ctx, &retriever.CallbackOutput{Docs: docs})

	return docs, nil
}

// buildSearchQuery renders the vector search statement and its bind
// arguments. Rows without embeddings are skipped: the EMBEDDING column is
// populated by a downstream component and may still be empty. Filter keys
// become part of the JSON path expression and must be plain identifiers.
func (r *Retriever) buildSearchQuery(queryVector []float64, io *implOptions, scoreThreshold *float64, limit int, withVector bool) (string, []any, error) {
	metric := io.DistanceStrategy.Metric()

	columns := fmt.Sprintf("%s, %s, %s", pdfcollection.ColumnID, pdfcollection.ColumnText, pdfcollection.ColumnMetadata)
	if withVector {
		columns += fmt.Sprintf(", FROM_VECTOR(%s RETURNING CLOB)", pdfcollection.ColumnEmbedding)
	}

	distanceExpr := fmt.Sprintf("VECTOR_DISTANCE(%s, TO_VECTOR(:1), %s)", pdfcollection.ColumnEmbedding, metric)

	args := []any{formatVector(queryVector)}

	conditions := []string{fmt.Sprintf("%s IS NOT NULL", pdfcollection.ColumnEmbedding)}

	keys := make([]string, 0, len(io.Filter))
	for k := range io.Filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := validateIdentifier(k); err != nil {
			return "", nil, fmt.Errorf("[Retrieve] invalid filter key: %w", err)
		}
		args = append(args, io.Filter[k])
		conditions = append(conditions, fmt.Sprintf("JSON_VALUE(%s, '$.%s') = :%d", pdfcollection.ColumnMetadata, k, len(args)))
	}

	if scoreThreshold != nil {
		args = append(args, r.thresholdDistance(*scoreThreshold, io.DistanceStrategy))
		conditions = append(conditions, fmt.Sprintf("%s < :%d", distanceExpr, len(args)))
	}

	args = append(args, limit)

	query := fmt.Sprintf(
		"SELECT %s, %s AS DISTANCE FROM %s WHERE %s ORDER BY DISTANCE FETCH FIRST :%d ROWS ONLY",
		columns,
		distanceExpr,
		r.config.TableName,
		strings.Join(conditions, " AND "),
		len(args),
	)

	return query, args, nil
}

func (r *Retriever) scanRows(rows *sql.Rows, queryVector []float64, strategy DistanceStrategy, withVector bool) ([]candidate, error) {
	candidates := make([]candidate, 0)

	for rows.Next() {
		var (
			id           string
			content      string
			metadataJSON sql.NullString
			vectorText   string
			distance     float64
		)

		dest := []any{&id, &content, &metadataJSON}
		if withVector {
			dest = append(dest, &vectorText)
		}
		dest = append(dest, &distance)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("[Retrieve] failed to scan row: %w", err)
		}

		var metadata map[string]any
		if metadataJSON.Valid && metadataJSON.String != "" {
			if err := sonic.UnmarshalString(metadataJSON.String, &metadata); err != nil {
				return nil, fmt.Errorf("[Retrieve] failed to parse metadata of %s: %w", id, err)
			}
		}

		doc := &schema.Document{
			ID:       id,
			Content:  content,
			MetaData: metadata,
		}
		doc.WithScore(score(distance, strategy))
		doc.WithDenseVector(queryVector)

		c := candidate{doc: doc}
		if withVector {
			vec, err := parseVector(vectorText)
			if err != nil {
				return nil, fmt.Errorf("[Retrieve] failed to parse embedding of %s: %w", id, err)
			}
			c.vector = vec
		}

		candidates = append(candidates, c)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("[Retrieve] rows error: %w", rows.Err())
	}

	return candidates, nil
}

// score converts a distance to a similarity score in (0, 1] under the
// strategy the search actually ran with.
func score(distance float64, strategy DistanceStrategy) float64 {
	switch strategy {
	case DistanceCosine:
		// cosine similarity = 1 - cosine distance
		return 1 - distance
	case DistanceDot, DistanceEuclidean:
		if distance == 0 {
			return 1.0
		}
		return 1.0 / (1.0 + distance)
	default:
		return 1 - distance
	}
}

// thresholdDistance converts a score threshold to the equivalent distance
// bound for the strategy.
func (r *Retriever) thresholdDistance(scoreThreshold float64, strategy DistanceStrategy) float64 {
	switch strategy {
	case DistanceCosine:
		return 1 - scoreThreshold
	default:
		return scoreThreshold
	}
}

// formatVector renders a float array in the textual form TO_VECTOR accepts.
func formatVector(vector []float64) string {
	strValues := make([]string, len(vector))
	for i, v := range vector {
		strValues[i] = strconv.FormatFloat(v, 'f', -1, 32)
	}
	return "[" + strings.Join(strValues, ",") + "]"
}

// parseVector parses the textual vector form FROM_VECTOR returns.
func parseVector(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	vec := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid vector element %q: %w", p, err)
		}
		vec = append(vec, f)
	}

	return vec, nil
}

func (r *Retriever) makeEmbeddingCtx(ctx context.Context, emb embedding.Embedder) context.Context {
	runInfo := &callbacks.RunInfo{
		Component: components.ComponentOfEmbedding,
	}

	if embType, ok := components.GetType(emb); ok {
		runInfo.Type = embType
	}

	runInfo.Name = runInfo.Type + string(runInfo.Component)

	return callbacks.ReuseHandlers(ctx, runInfo)
}

// GetType returns the type of the retriever.
func (r *Retriever) GetType() string {
	return typ
}

// IsCallbacksEnabled returns true if callbacks are enabled.
func (r *Retriever) IsCallbacksEnabled() bool {
	return true
}

// Ensure Retriever implements retriever.Retriever
var _ retriever.Retriever = (*Retriever)(nil)
