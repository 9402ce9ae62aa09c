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

	"github.com/bahn1075/eino-oracle23ai/components/document/transformer/splitter/character"
)

// Config configures a Preparer. The options mirror the split-text component's
// inputs.
type Config struct {
	// TextKey selects the input field holding chunkable text.
	// Optional. Default "text".
	TextKey string

	// ChunkSize is the maximum chunk length. Text is first split by
	// separator, then pieces are merged up to this size; an individual piece
	// larger than ChunkSize is emitted whole.
	// Optional. Default 1000.
	ChunkSize int

	// ChunkOverlap is the number of characters shared between consecutive
	// chunks.
	// Optional. Default 200.
	ChunkOverlap *int

	// Separator is the raw separator token. Escape sequences and the common
	// "/n", "/t" typos are resolved before splitting.
	// Optional. Default "\n".
	Separator string

	// KeepSeparator is one of "False", "True", "Start", "End" and controls
	// whether the separator is kept in output chunks and where it is placed.
	// Optional. Default "False".
	KeepSeparator string

	// Mapper overrides the record mapper, mainly for deterministic IDs and
	// timestamps in tests.
	// Optional.
	Mapper *Mapper
}

// Preparer runs the full chunk-record preparation pipeline: input
// normalization, separator resolution, splitting, and record mapping. One
// invocation processes one input batch synchronously to completion;
// invocations share no mutable state beyond configuration.
type Preparer struct {
	textKey  string
	splitter *character.Splitter
	mapper   *Mapper
}

// NewPreparer creates a Preparer.
func NewPreparer(ctx context.Context, config *Config) (*Preparer, error) {
	if config == nil {
		config = &Config{}
	}

	textKey := config.TextKey
	if textKey == "" {
		textKey = DefaultTextKey
	}

	keepType, err := character.ParseKeepType(config.KeepSeparator)
	if err != nil {
		return nil, err
	}

	separator := config.Separator
	if separator == "" {
		separator = "\n"
	}

	chunkSize := config.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}

	overlap := DefaultChunkOverlap
	if config.ChunkOverlap != nil {
		overlap = *config.ChunkOverlap
	}

	splitter, err := character.NewSplitter(ctx, &character.Config{
		ChunkSize: chunkSize,
		Overlap:   overlap,
		Separator: character.ResolveSeparator(separator),
		KeepType:  keepType,
	})
	if err != nil {
		return nil, err
	}

	mapper := config.Mapper
	if mapper == nil {
		mapper = NewMapper(nil)
	}

	return &Preparer{
		textKey:  textKey,
		splitter: splitter,
		mapper:   mapper,
	}, nil
}

// Prepare normalizes the input, splits it into chunks, and returns
// storage-ready PDFCOLLECTION records. Either all chunks for all input
// documents are produced, or the invocation fails with no partial output.
func (p *Preparer) Prepare(ctx context.Context, in Input) ([]*Record, error) {
	docs, err := NormalizeInput(in, p.textKey)
	if err != nil {
		return nil, err
	}

	chunks, err := p.splitter.Transform(ctx, docs)
	if err != nil {
		return nil, err
	}

	return p.mapper.MapDocuments(chunks)
}
