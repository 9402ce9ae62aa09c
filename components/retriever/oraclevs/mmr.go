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

import "math"

// selectMMR reselects up to k candidates by maximal marginal relevance.
// Candidates must arrive ordered by relevance. lambdaMult weights relevance
// against diversity: 1 keeps the original ranking, 0 maximizes diversity.
func selectMMR(queryVector []float64, candidates []candidate, lambdaMult float64, k int) []candidate {
	if k >= len(candidates) {
		return candidates
	}
	if len(candidates) == 0 || k <= 0 {
		return nil
	}

	relevance := make([]float64, len(candidates))
	for i, c := range candidates {
		relevance[i] = cosineSimilarity(queryVector, c.vector)
	}

	selected := make([]candidate, 0, k)
	selectedIdx := make([]int, 0, k)
	used := make([]bool, len(candidates))

	// most relevant candidate always goes first
	best := 0
	for i := range candidates {
		if relevance[i] > relevance[best] {
			best = i
		}
	}
	selected = append(selected, candidates[best])
	selectedIdx = append(selectedIdx, best)
	used[best] = true

	for len(selected) < k {
		bestIdx := -1
		bestScore := math.Inf(-1)

		for i := range candidates {
			if used[i] {
				continue
			}

			maxSim := math.Inf(-1)
			for _, j := range selectedIdx {
				sim := cosineSimilarity(candidates[i].vector, candidates[j].vector)
				if sim > maxSim {
					maxSim = sim
				}
			}

			score := lambdaMult*relevance[i] - (1-lambdaMult)*maxSim
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			break
		}

		selected = append(selected, candidates[bestIdx])
		selectedIdx = append(selectedIdx, bestIdx)
		used[bestIdx] = true
	}

	return selected
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
