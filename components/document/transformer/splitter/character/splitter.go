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

package character

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"
)

// ErrSplit wraps any failure raised while configuring or running the splitter.
var ErrSplit = errors.New("split text failed")

const (
	defaultChunkSize = 1000
)

// KeepType controls whether the separator is retained in emitted chunks
// and where it is placed.
type KeepType int

const (
	// KeepTypeNone discards the separator.
	KeepTypeNone KeepType = iota
	// KeepTypeStart keeps the separator at the start of the following chunk piece.
	KeepTypeStart
	// KeepTypeEnd keeps the separator at the end of the preceding chunk piece.
	KeepTypeEnd
)

// ParseKeepType maps the textual keep_separator options ("False", "True",
// "Start", "End") onto a KeepType. "True" behaves as "Start", which is where
// the upstream character splitter places a kept separator.
func ParseKeepType(s string) (KeepType, error) {
	switch strings.ToLower(s) {
	case "", "false":
		return KeepTypeNone, nil
	case "true", "start":
		return KeepTypeStart, nil
	case "end":
		return KeepTypeEnd, nil
	default:
		return KeepTypeNone, fmt.Errorf("%w: unknown keep_separator option: %q", ErrSplit, s)
	}
}

// Config configures the character splitter.
type Config struct {
	// ChunkSize is the maximum length of each chunk. Text is first split by
	// separator, then adjacent pieces are merged up to this size. A single
	// piece longer than ChunkSize is emitted whole, not further divided.
	// Optional. Default 1000.
	ChunkSize int

	// Overlap is the number of characters shared between consecutive chunks.
	// Must be smaller than ChunkSize.
	// Optional. Default 0.
	Overlap int

	// Separator is the character sequence to split on. Run the raw user input
	// through ResolveSeparator first when it may contain escape sequences.
	// An empty separator splits the text into individual characters.
	Separator string

	// KeepType is the separator retention policy.
	// Optional. Default KeepTypeNone.
	KeepType KeepType

	// LenFunc measures piece length when merging.
	// Optional. Default counts runes.
	LenFunc func(s string) int

	// IDGenerator generates the ID of each emitted chunk from the original
	// document ID and the chunk's index within that document.
	// Optional. Default reuses the original document ID.
	IDGenerator func(ctx context.Context, originalID string, splitIndex int) string
}

// Splitter splits documents on a fixed separator and greedily re-merges the
// pieces up to the configured chunk size.
type Splitter struct {
	chunkSize int
	overlap   int
	separator string
	keepType  KeepType
	lenFunc   func(s string) int
	idGen     func(ctx context.Context, originalID string, splitIndex int) string
}

// NewSplitter creates a character splitter.
func NewSplitter(ctx context.Context, config *Config) (*Splitter, error) {
	if config == nil {
		config = &Config{}
	}

	chunkSize := config.ChunkSize
	if chunkSize == 0 {
		chunkSize = defaultChunkSize
	}
	if chunkSize < 0 {
		return nil, fmt.Errorf("[NewSplitter] %w: chunk size must be positive, got %d", ErrSplit, chunkSize)
	}
	if config.Overlap < 0 {
		return nil, fmt.Errorf("[NewSplitter] %w: chunk overlap cannot be negative, got %d", ErrSplit, config.Overlap)
	}
	if config.Overlap >= chunkSize {
		return nil, fmt.Errorf("[NewSplitter] %w: chunk overlap (%d) must be smaller than chunk size (%d)",
			ErrSplit, config.Overlap, chunkSize)
	}

	lenFunc := config.LenFunc
	if lenFunc == nil {
		lenFunc = utf8.RuneCountInString
	}

	idGen := config.IDGenerator
	if idGen == nil {
		idGen = func(ctx context.Context, originalID string, splitIndex int) string {
			return originalID
		}
	}

	return &Splitter{
		chunkSize: chunkSize,
		overlap:   config.Overlap,
		separator: config.Separator,
		keepType:  config.KeepType,
		lenFunc:   lenFunc,
		idGen:     idGen,
	}, nil
}

// Transform splits each input document into chunks, preserving document order
// and chunk order within each document. Chunks inherit a copy of the parent
// document's metadata.
func (s *Splitter) Transform(ctx context.Context, src []*schema.Document, _ ...document.TransformerOption) ([]*schema.Document, error) {
	out := make([]*schema.Document, 0, len(src))
	for _, doc := range src {
		if doc == nil {
			return nil, fmt.Errorf("[Transform] %w: nil document in input", ErrSplit)
		}

		chunks := s.merge(s.split(doc.Content))
		for idx, chunk := range chunks {
			out = append(out, &schema.Document{
				ID:       s.idGen(ctx, doc.ID, idx),
				Content:  chunk,
				MetaData: maps.Clone(doc.MetaData),
			})
		}
	}

	return out, nil
}

// split breaks text on the separator, applying the keep policy, and drops
// empty pieces.
func (s *Splitter) split(text string) []string {
	var pieces []string

	if s.separator == "" {
		pieces = make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
	} else {
		parts := strings.Split(text, s.separator)
		pieces = make([]string, 0, len(parts))
		switch s.keepType {
		case KeepTypeStart:
			pieces = append(pieces, parts[0])
			for _, p := range parts[1:] {
				pieces = append(pieces, s.separator+p)
			}
		case KeepTypeEnd:
			for i, p := range parts {
				if i < len(parts)-1 {
					p += s.separator
				}
				pieces = append(pieces, p)
			}
		default:
			pieces = parts
		}
	}

	filtered := pieces[:0]
	for _, p := range pieces {
		if p != "" {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

// merge greedily joins adjacent pieces up to chunkSize, carrying over up to
// overlap characters between consecutive chunks. A single oversized piece
// becomes a chunk of its own.
func (s *Splitter) merge(pieces []string) []string {
	joinSep := s.separator
	if s.keepType != KeepTypeNone {
		// pieces already carry the separator
		joinSep = ""
	}
	sepLen := s.lenFunc(joinSep)

	var chunks []string
	var current []string
	total := 0

	joinLen := func(n int) int {
		if n > 0 {
			return sepLen
		}
		return 0
	}

	for _, piece := range pieces {
		pieceLen := s.lenFunc(piece)

		if total+pieceLen+joinLen(len(current)) > s.chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, joinSep))

			for total > s.overlap || (total+pieceLen+joinLen(len(current)) > s.chunkSize && total > 0) {
				dec := s.lenFunc(current[0])
				if len(current) > 1 {
					dec += sepLen
				}
				total -= dec
				current = current[1:]
			}
		}

		current = append(current, piece)
		total += pieceLen
		if len(current) > 1 {
			total += sepLen
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, joinSep))
	}

	return chunks
}

// GetType returns the type of the splitter.
func (s *Splitter) GetType() string {
	return "CharacterSplitter"
}

// Ensure Splitter implements document.Transformer
var _ document.Transformer = (*Splitter)(nil)
