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
	"github.com/cloudwego/eino/schema"
)

// GetChunkIndex returns the chunk's zero-based position within its source
// document. The value may have passed through JSON, so integer and float
// encodings are both accepted.
func GetChunkIndex(doc *schema.Document) (int, bool) {
	if doc == nil || doc.MetaData == nil {
		return 0, false
	}

	switch v := doc.MetaData[MetaChunkIndex].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetSourceID returns the identifier of the document a chunk was split from.
func GetSourceID(doc *schema.Document) (string, bool) {
	if doc == nil || doc.MetaData == nil {
		return "", false
	}

	id, ok := doc.MetaData[MetaSourceID].(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}

// SetSourceID stamps a source identifier onto the document's metadata.
func SetSourceID(doc *schema.Document, id string) {
	if doc.MetaData == nil {
		doc.MetaData = make(map[string]any)
	}

	doc.MetaData[MetaSourceID] = id
}
