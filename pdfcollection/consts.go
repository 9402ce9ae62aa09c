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

// Package pdfcollection prepares text chunks for storage in an Oracle 23ai
// PDFCOLLECTION table: it normalizes heterogeneous inputs into documents,
// splits them into chunks, and maps each chunk to a storage-ready record with
// a fresh ID, positional metadata, and a JSON metadata payload. Embeddings are
// left empty for a downstream embedding component to populate.
package pdfcollection

import "errors"

const (
	// DefaultTableName is the Oracle table records are shaped for.
	DefaultTableName = "PDFCOLLECTION"

	// DefaultDimension is the EMBEDDING column's vector dimension.
	DefaultDimension = 384

	// DefaultTextKey selects the input field holding chunkable text.
	DefaultTextKey = "text"

	// DefaultChunkSize is the maximum chunk length in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the number of characters shared between
	// consecutive chunks.
	DefaultChunkOverlap = 200
)

// PDFCOLLECTION column names:
//
//	ID         VARCHAR2(100) PRIMARY KEY
//	TEXT       CLOB
//	METADATA   CLOB (JSON)
//	EMBEDDING  VECTOR(384), nullable, populated downstream
//	CREATED_AT TIMESTAMP
const (
	ColumnID        = "ID"
	ColumnText      = "TEXT"
	ColumnMetadata  = "METADATA"
	ColumnEmbedding = "EMBEDDING"
	ColumnCreatedAt = "CREATED_AT"
)

// Metadata keys stamped onto every stored chunk.
const (
	// MetaChunkIndex is the chunk's zero-based position within its source
	// document.
	MetaChunkIndex = "chunk_index"
	// MetaSourceID identifies the document a chunk was split from.
	MetaSourceID = "source_id"
)

var (
	// ErrInvalidInput reports a missing, empty, or malformed input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput reports a tabular input with zero rows.
	ErrEmptyInput = errors.New("empty input")
)
