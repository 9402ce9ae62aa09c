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
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"

	"github.com/bahn1075/eino-oracle23ai/components/document/transformer/splitter/character"
)

func intPtr(i int) *int {
	return &i
}

func TestPrepareScenarioSentenceSplit(t *testing.T) {
	ctx := context.Background()

	p, err := NewPreparer(ctx, &Config{
		ChunkSize:    1,
		ChunkOverlap: intPtr(0),
		Separator:    ".",
	})
	assert.NoError(t, err)

	records, err := p.Prepare(ctx, Data{Fields: map[string]any{"text": "A.B.C"}})
	assert.NoError(t, err)
	assert.Len(t, records, 3)

	wantText := []string{"A", "B", "C"}
	for i, rec := range records {
		assert.Equal(t, wantText[i], rec.Text)

		var meta map[string]any
		assert.NoError(t, sonic.UnmarshalString(rec.Metadata, &meta))
		assert.Equal(t, float64(i), meta[MetaChunkIndex])
	}
}

func TestPrepareAllChunksShareSourceID(t *testing.T) {
	ctx := context.Background()

	p, err := NewPreparer(ctx, &Config{
		ChunkSize:    1,
		ChunkOverlap: intPtr(0),
		Separator:    ".",
	})
	assert.NoError(t, err)

	records, err := p.Prepare(ctx, Data{Fields: map[string]any{"text": "A.B.C"}})
	assert.NoError(t, err)

	first := records[0].SourceMetadata[MetaSourceID]
	for _, rec := range records {
		assert.Equal(t, first, rec.SourceMetadata[MetaSourceID])
	}
}

func TestPrepareRecordCountEqualsTotalChunks(t *testing.T) {
	ctx := context.Background()

	p, err := NewPreparer(ctx, &Config{
		ChunkSize:    10,
		ChunkOverlap: intPtr(0),
		Separator:    "\n",
	})
	assert.NoError(t, err)

	records, err := p.Prepare(ctx, Table{Rows: []map[string]any{
		{"text": "aaaa\nbbbb\ncccc"},       // 2 chunks: "aaaa\nbbbb" and "cccc"
		{"text": strings.Repeat("x", 25)}, // 1 oversized chunk, emitted whole
		{"text": "short"},                 // 1 chunk
	}})
	assert.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestPrepareDefaultsSingleChunk(t *testing.T) {
	ctx := context.Background()

	p, err := NewPreparer(ctx, nil)
	assert.NoError(t, err)

	content := strings.Repeat("b", 500)
	records, err := p.Prepare(ctx, Message{Text: content})
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, content, records[0].Text)
	assert.Nil(t, records[0].Embedding)
}

func TestPrepareMistypedSeparator(t *testing.T) {
	ctx := context.Background()

	p, err := NewPreparer(ctx, &Config{
		ChunkSize:    3,
		ChunkOverlap: intPtr(0),
		Separator:    "/n",
	})
	assert.NoError(t, err)

	records, err := p.Prepare(ctx, Message{Text: "one\ntwo"})
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "one", records[0].Text)
	assert.Equal(t, "two", records[1].Text)
}

func TestPrepareKeepSeparatorEnd(t *testing.T) {
	ctx := context.Background()

	p, err := NewPreparer(ctx, &Config{
		ChunkSize:     2,
		ChunkOverlap:  intPtr(0),
		Separator:     ".",
		KeepSeparator: "End",
	})
	assert.NoError(t, err)

	records, err := p.Prepare(ctx, Message{Text: "A.B"})
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "A.", records[0].Text)
	assert.Equal(t, "B", records[1].Text)
}

func TestNewPreparerInvalidOverlap(t *testing.T) {
	ctx := context.Background()

	_, err := NewPreparer(ctx, &Config{
		ChunkSize:    100,
		ChunkOverlap: intPtr(100),
	})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, character.ErrSplit))
}

func TestNewPreparerInvalidKeepSeparator(t *testing.T) {
	ctx := context.Background()

	_, err := NewPreparer(ctx, &Config{KeepSeparator: "Middle"})
	assert.Error(t, err)
}

func TestPrepareInvalidInputFailsWhole(t *testing.T) {
	ctx := context.Background()

	p, err := NewPreparer(ctx, nil)
	assert.NoError(t, err)

	_, err = p.Prepare(ctx, Table{Rows: []map[string]any{
		{"text": "fine"},
		{"other": "no text key"},
	}})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
