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

	"github.com/bahn1075/eino-oracle23ai/pdfcollection"
)

// This example demonstrates preparing PDFCOLLECTION chunk records from
// structured input: the text field is split into overlapping chunks and each
// chunk becomes a storage-ready record with JSON metadata, a chunk index,
// and a source_id shared by all chunks of one source document.

func main() {
	ctx := context.Background()

	overlap := 20
	preparer, err := pdfcollection.NewPreparer(ctx, &pdfcollection.Config{
		TextKey:       "text",
		ChunkSize:     120,
		ChunkOverlap:  &overlap,
		Separator:     "\n",
		KeepSeparator: "False",
	})
	if err != nil {
		log.Fatalf("Failed to create preparer: %v", err)
	}

	// Tabular input: one row per extracted PDF page
	input := pdfcollection.Table{
		Rows: []map[string]any{
			{
				"text": "Oracle Database 23ai introduces the VECTOR data type.\n" +
					"Vectors are stored alongside relational data.\n" +
					"VECTOR_DISTANCE computes similarity inside SQL.",
				"file_name": "oracle23ai_overview.pdf",
				"page":      1,
			},
			{
				"text": "AI Vector Search supports cosine, dot product, and\n" +
					"Euclidean distance metrics.",
				"file_name": "oracle23ai_overview.pdf",
				"page":      2,
			},
		},
	}

	records, err := preparer.Prepare(ctx, input)
	if err != nil {
		log.Fatalf("Failed to prepare records: %v", err)
	}

	fmt.Printf("Prepared %d records\n\n", len(records))
	for _, r := range records {
		fmt.Printf("ID: %s\n", r.ID)
		fmt.Printf("  Text: %s\n", r.Text)
		fmt.Printf("  Metadata: %s\n", r.Metadata)
		fmt.Printf("  CreatedAt: %s\n\n", r.CreatedAt)
	}

	// A plain message runs through the same pipeline as a one-row table
	msgRecords, err := preparer.Prepare(ctx, pdfcollection.Message{
		Text: "A single message becomes a single-source chunk sequence.",
	})
	if err != nil {
		log.Fatalf("Failed to prepare message records: %v", err)
	}

	fmt.Printf("Message produced %d record(s)\n", len(msgRecords))
}
