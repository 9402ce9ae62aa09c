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

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
)

// Input is one of the shapes the preparation pipeline accepts: a single
// structured record (Data), an ordered sequence of records (DataSet), a
// tabular collection (Table), or a single text message (Message).
type Input interface {
	toDocuments(textKey string) ([]*schema.Document, error)
}

// Data is a single structured record. The field named by the text key holds
// the chunkable text; all other fields become document metadata.
type Data struct {
	Fields map[string]any
}

// DataSet is a non-empty ordered sequence of structured records.
type DataSet []Data

// Table is a tabular collection of rows.
type Table struct {
	Rows []map[string]any
}

// Message is a single text message. It is normalized through the tabular path
// as a one-row table.
type Message struct {
	Text string
}

// NormalizeInput reduces any accepted input shape to an ordered sequence of
// documents. textKey selects the field holding the chunkable text and is
// passed through explicitly, never written back onto the input value. Every
// returned document carries a source_id metadata entry; a fresh UUID is
// generated per document unless the input already supplies one.
func NormalizeInput(in Input, textKey string) ([]*schema.Document, error) {
	if in == nil {
		return nil, fmt.Errorf("[NormalizeInput] %w: no input provided", ErrInvalidInput)
	}
	if textKey == "" {
		textKey = DefaultTextKey
	}

	docs, err := in.toDocuments(textKey)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if doc.MetaData == nil {
			doc.MetaData = make(map[string]any)
		}
		if _, ok := doc.MetaData[MetaSourceID].(string); !ok {
			doc.MetaData[MetaSourceID] = uuid.NewString()
		}
	}

	return docs, nil
}

func (d Data) toDocuments(textKey string) ([]*schema.Document, error) {
	doc, err := rowToDocument(d.Fields, textKey)
	if err != nil {
		return nil, err
	}
	return []*schema.Document{doc}, nil
}

func (ds DataSet) toDocuments(textKey string) ([]*schema.Document, error) {
	if len(ds) == 0 {
		return nil, fmt.Errorf("[NormalizeInput] %w: no records provided", ErrInvalidInput)
	}

	docs := make([]*schema.Document, 0, len(ds))
	for i, d := range ds {
		doc, err := rowToDocument(d.Fields, textKey)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func (t Table) toDocuments(textKey string) ([]*schema.Document, error) {
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("[NormalizeInput] %w: table has no rows", ErrEmptyInput)
	}

	docs := make([]*schema.Document, 0, len(t.Rows))
	for i, row := range t.Rows {
		doc, err := rowToDocument(row, textKey)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func (m Message) toDocuments(textKey string) ([]*schema.Document, error) {
	return Table{Rows: []map[string]any{{textKey: m.Text}}}.toDocuments(textKey)
}

func rowToDocument(fields map[string]any, textKey string) (*schema.Document, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: record has no fields", ErrInvalidInput)
	}

	raw, ok := fields[textKey]
	if !ok {
		return nil, fmt.Errorf("%w: record is missing text field %q", ErrInvalidInput, textKey)
	}

	text, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: text field %q holds %T, expected string", ErrInvalidInput, textKey, raw)
	}

	meta := make(map[string]any, len(fields)-1)
	for k, v := range fields {
		if k == textKey {
			continue
		}
		meta[k] = v
	}

	return &schema.Document{Content: text, MetaData: meta}, nil
}
