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

package pdfcollection

import (
	"fmt"
	"maps"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
)

// Record is one storage-ready PDFCOLLECTION row.
type Record struct {
	// ID is a freshly generated UUID string, the VARCHAR2(100) primary key.
	ID string `json:"id"`

	// Text is the chunk text stored in the TEXT CLOB.
	Text string `json:"text"`

	// Metadata is the JSON-serialized chunk metadata stored in the METADATA
	// CLOB. It always contains chunk_index and source_id.
	Metadata string `json:"metadata"`

	// Embedding is nil at emission time; a downstream embedding component
	// populates the VECTOR(384) column.
	Embedding []float32 `json:"embedding"`

	// CreatedAt is the record creation time, UTC, RFC 3339.
	CreatedAt string `json:"created_at"`

	// SourceMetadata retains the unserialized metadata mapping for
	// downstream use.
	SourceMetadata map[string]any `json:"source_metadata"`
}

// MapperConfig configures a Mapper.
type MapperConfig struct {
	// Now supplies record timestamps.
	// Optional. Default time.Now.
	Now func() time.Time

	// NewID generates record and source identifiers.
	// Optional. Default UUID v4.
	NewID func() string
}

// Mapper assigns storage identity and positional metadata to chunks.
type Mapper struct {
	now   func() time.Time
	newID func() string
}

// NewMapper creates a record mapper.
func NewMapper(config *MapperConfig) *Mapper {
	if config == nil {
		config = &MapperConfig{}
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	newID := config.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	return &Mapper{now: now, newID: newID}
}

// MapDocuments converts chunks, grouped by originating document, into
// PDFCOLLECTION records. Each record gets a fresh ID. The chunk's metadata is
// copied and extended with chunk_index (zero-based, contiguous within each
// run of chunks sharing a source_id) and source_id (reused from the chunk's
// own metadata when present, otherwise freshly generated). Emission is
// all-or-nothing: a serialization failure aborts the whole call.
func (m *Mapper) MapDocuments(docs []*schema.Document) ([]*Record, error) {
	records := make([]*Record, 0, len(docs))

	chunkIndex := 0
	currentSource := ""

	for i, doc := range docs {
		if doc == nil {
			return nil, fmt.Errorf("[MapDocuments] %w: nil document at position %d", ErrInvalidInput, i)
		}

		meta := maps.Clone(doc.MetaData)
		if meta == nil {
			meta = make(map[string]any)
		}

		sourceID, _ := meta[MetaSourceID].(string)
		if sourceID == "" {
			sourceID = m.newID()
			meta[MetaSourceID] = sourceID
		}

		if i == 0 || sourceID != currentSource {
			chunkIndex = 0
			currentSource = sourceID
		}
		meta[MetaChunkIndex] = chunkIndex
		chunkIndex++

		metaJSON, err := marshalMetadata(meta)
		if err != nil {
			return nil, fmt.Errorf("[MapDocuments] failed to serialize metadata: %w", err)
		}

		records = append(records, &Record{
			ID:             m.newID(),
			Text:           doc.Content,
			Metadata:       metaJSON,
			Embedding:      nil,
			CreatedAt:      m.now().UTC().Format(time.RFC3339Nano),
			SourceMetadata: meta,
		})
	}

	return records, nil
}

// marshalMetadata serializes the metadata mapping to JSON, preserving
// non-ASCII characters. Values the codec cannot serialize are coerced to
// their string form.
func marshalMetadata(meta map[string]any) (string, error) {
	s, err := sonic.MarshalString(meta)
	if err == nil {
		return s, nil
	}

	coerced := make(map[string]any, len(meta))
	for k, v := range meta {
		if _, vErr := sonic.Marshal(v); vErr != nil {
			coerced[k] = fmt.Sprint(v)
			continue
		}
		coerced[k] = v
	}

	return sonic.MarshalString(coerced)
}
