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

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/retriever"

	indexervs "github.com/bahn1075/eino-oracle23ai/components/indexer/oraclevs"
	"github.com/bahn1075/eino-oracle23ai/components/retriever/oraclevs"
)

// This example demonstrates how to use the OracleVS retriever.
// Prerequisites:
// 1. Oracle Database 23ai with a populated PDFCOLLECTION table
//    (run the indexer example first)
// 2. Environment variables set to match your database:
//    ORACLE_HOST, ORACLE_PORT, ORACLE_SERVICE, ORACLE_USER, ORACLE_PASSWORD,
//    ORACLE_WALLET_LOCATION, ORACLE_WALLET_PASSWORD

func main() {
	ctx := context.Background()

	port, _ := strconv.Atoi(os.Getenv("ORACLE_PORT"))
	if port == 0 {
		port = 1522
	}

	db, err := indexervs.Connect(ctx, &indexervs.ConnectionConfig{
		User:           os.Getenv("ORACLE_USER"),
		Password:       os.Getenv("ORACLE_PASSWORD"),
		Host:           os.Getenv("ORACLE_HOST"),
		Port:           port,
		Service:        os.Getenv("ORACLE_SERVICE"),
		WalletLocation: os.Getenv("ORACLE_WALLET_LOCATION"),
		WalletPassword: os.Getenv("ORACLE_WALLET_PASSWORD"),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	retr, err := oraclevs.NewRetriever(ctx, &oraclevs.RetrieverConfig{
		DB:               db,
		TableName:        "PDFCOLLECTION",
		DistanceStrategy: oraclevs.DistanceCosine,
		TopK:             5,
		Embedding:        &mockEmbedder{}, // In production, use real embedder
	})
	if err != nil {
		log.Fatalf("Failed to create retriever: %v", err)
	}

	query := "How does Oracle rank rows by vector similarity?"

	// Plain similarity search
	docs, err := retr.Retrieve(ctx, query)
	if err != nil {
		log.Fatalf("Failed to retrieve documents: %v", err)
	}

	fmt.Printf("Found %d similar documents for query: %s\n\n", len(docs), query)
	for i, doc := range docs {
		fmt.Printf("Rank %d:\n", i+1)
		fmt.Printf("  ID: %s\n", doc.ID)
		fmt.Printf("  Content: %s\n", doc.Content)
		fmt.Printf("  Score: %.4f\n", doc.Score())
		if len(doc.MetaData) > 0 {
			fmt.Printf("  Metadata: %v\n", doc.MetaData)
		}
		fmt.Println()
	}

	// Example: Filtering by metadata through JSON_VALUE
	fmt.Println("Example: Filtering by metadata category='database'")
	filteredDocs, err := retr.Retrieve(ctx, query,
		oraclevs.WithFilter(map[string]string{"category": "database"}),
	)
	if err != nil {
		log.Fatalf("Failed to retrieve filtered documents: %v", err)
	}

	fmt.Printf("Found %d documents in 'database' category\n\n", len(filteredDocs))
	for i, doc := range filteredDocs {
		fmt.Printf("  %d. %s (score: %.4f)\n", i+1, doc.Content, doc.Score())
	}
	fmt.Println()

	// Example: Retrieve with score threshold
	fmt.Println("Example: Using score threshold of 0.5")
	thresholdDocs, err := retr.Retrieve(ctx, query,
		retriever.WithScoreThreshold(0.5),
	)
	if err != nil {
		log.Fatalf("Failed to retrieve documents with threshold: %v", err)
	}

	fmt.Printf("Found %d documents with score >= 0.50\n\n", len(thresholdDocs))

	// Example: Maximum Marginal Relevance search for diverse results
	fmt.Println("Example: MMR search, fetch 20 candidates, lambda 0.5")
	mmrDocs, err := retr.Retrieve(ctx, query,
		oraclevs.WithMMR(20, 0.5),
	)
	if err != nil {
		log.Fatalf("Failed to retrieve documents with MMR: %v", err)
	}

	fmt.Printf("Found %d diverse documents\n", len(mmrDocs))
	for i, doc := range mmrDocs {
		fmt.Printf("  %d. %s (score: %.4f)\n", i+1, doc.Content, doc.Score())
	}

	// Example: Using Euclidean distance
	fmt.Println("\nExample: Using Euclidean distance")
	l2Docs, err := retr.Retrieve(ctx, query,
		oraclevs.WithDistanceStrategy(oraclevs.DistanceEuclidean),
	)
	if err != nil {
		log.Fatalf("Failed to retrieve documents with Euclidean distance: %v", err)
	}

	fmt.Printf("Found %d documents using Euclidean distance\n", len(l2Docs))
}

// mockEmbedder is a mock embedding implementation for demonstration.
// In production, replace with real embedder like:
//
//	import "github.com/cloudwego/eino/components/embedding/openai"
//	embedding := openai.NewEmbedder()
type mockEmbedder struct{}

func (m *mockEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	// Return mock 3-dimensional vectors for demonstration
	result := make([][]float64, len(texts))
	for i := range result {
		result[i] = []float64{0.1, 0.2, 0.3}
	}
	return result, nil
}
