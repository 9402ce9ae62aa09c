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

package oraclevs

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 0}, []float64{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{2, 0}, []float64{5, 0}), 1e-9)

	// degenerate inputs
	assert.Equal(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{1}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, cosineSimilarity([]float64{0, 0}, []float64{1, 0}))
}

func candidateOf(id string, vector []float64) candidate {
	return candidate{
		doc:    &schema.Document{ID: id},
		vector: vector,
	}
}

func ids(cs []candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.doc.ID)
	}
	return out
}

func TestSelectMMR(t *testing.T) {
	query := []float64{1, 0}
	candidates := []candidate{
		candidateOf("a", []float64{1, 0}),
		candidateOf("b", []float64{0.95, 0.05}),
		candidateOf("c", []float64{0, 1}),
		candidateOf("d", []float64{0.9, 0.1}),
	}

	// diversity-heavy lambda pushes the orthogonal candidate to second place
	got := selectMMR(query, candidates, 0.3, 2)
	assert.Equal(t, []string{"a", "c"}, ids(got))

	// relevance-only lambda keeps the similarity ordering
	got = selectMMR(query, candidates, 1.0, 3)
	assert.Equal(t, []string{"a", "b", "d"}, ids(got))
}

func TestSelectMMRBounds(t *testing.T) {
	query := []float64{1, 0}
	candidates := []candidate{
		candidateOf("a", []float64{1, 0}),
		candidateOf("b", []float64{0, 1}),
	}

	// k at or above the candidate count returns everything as-is
	got := selectMMR(query, candidates, 0.5, 2)
	assert.Equal(t, []string{"a", "b"}, ids(got))

	got = selectMMR(query, candidates, 0.5, 10)
	assert.Equal(t, []string{"a", "b"}, ids(got))

	assert.Nil(t, selectMMR(query, nil, 0.5, 3))
	assert.Nil(t, selectMMR(query, candidates, 0.5, 0))
}
