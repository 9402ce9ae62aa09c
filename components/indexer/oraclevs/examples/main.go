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
	"github.com/cloudwego/eino/schema"

	"github.com/bahn1075/eino-oracle23ai/components/document/transformer/splitter/character"
	"github.com/bahn1075/eino-oracle23ai/components/indexer/oraclevs"
)

// This example demonstrates how to use the OracleVS indexer.
// Prerequisites:
// 1. Oracle Database 23ai (Autonomous Database or on-premises)
// 2. For Autonomous Database: download and unzip the connection wallet
// 3. Environment variables set to match your database:
//    ORACLE_HOST, ORACLE_PORT, ORACLE_SERVICE, ORACLE_USER, ORACLE_PASSWORD,
//    ORACLE_WALLET_LOCATION, ORACLE_WALLET_PASSWORD
// The PDFCOLLECTION table is created automatically if it does not exist.

func main() {
	ctx := context.Background()

	port, _ := strconv.Atoi(os.Getenv("ORACLE_PORT"))
	if port == 0 {
		port = 1522
	}

	db, err := oraclevs.Connect(ctx, &oraclevs.ConnectionConfig{
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

	// Split source documents into overlapping chunks before indexing
	splitter, err := character.NewSplitter(ctx, &character.Config{
		ChunkSize: 200,
		Overlap:   40,
		Separator: "\n",
	})
	if err != nil {
		log.Fatalf("Failed to create splitter: %v", err)
	}

	source := []*schema.Document{
		{
			ID: "oracle23ai-overview",
			Content: "Oracle Database 23ai introduces AI Vector Search.\n" +
				"Vectors live in the VECTOR column type next to relational data.\n" +
				"VECTOR_DISTANCE ranks rows by similarity inside plain SQL.\n" +
				"JSON documents are stored in CLOB columns with an IS JSON check.",
			MetaData: map[string]any{
				"file_name": "oracle23ai_overview.pdf",
				"category":  "database",
			},
		},
	}

	chunks, err := splitter.Transform(ctx, source)
	if err != nil {
		log.Fatalf("Failed to split documents: %v", err)
	}

	idxr, err := oraclevs.NewIndexer(ctx, &oraclevs.IndexerConfig{
		DB:        db,
		TableName: "PDFCOLLECTION",
		Dimension: 3,               // match your embedding model's dimension
		Embedding: &mockEmbedder{}, // In production, use real embedder
	})
	if err != nil {
		log.Fatalf("Failed to create indexer: %v", err)
	}

	ids, err := idxr.Store(ctx, chunks)
	if err != nil {
		log.Fatalf("Failed to store documents: %v", err)
	}

	fmt.Printf("Successfully indexed %d chunks\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  - %s\n", id)
	}
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
