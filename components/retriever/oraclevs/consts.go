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
	"fmt"
)

const typ = "OracleVS"

const defaultTopK = 5

// DistanceStrategy selects the VECTOR_DISTANCE metric for similarity search.
type DistanceStrategy string

const (
	// DistanceCosine uses cosine distance.
	DistanceCosine DistanceStrategy = "cosine"
	// DistanceDot uses negated dot product distance.
	DistanceDot DistanceStrategy = "dot"
	// DistanceEuclidean uses Euclidean (L2) distance.
	DistanceEuclidean DistanceStrategy = "euclidean"
)

// String returns the string representation of the distance strategy.
func (d DistanceStrategy) String() string {
	return string(d)
}

// Metric returns the VECTOR_DISTANCE metric keyword for the strategy.
func (d DistanceStrategy) Metric() string {
	switch d {
	case DistanceCosine:
		return "COSINE"
	case DistanceDot:
		return "DOT"
	case DistanceEuclidean:
		return "EUCLIDEAN"
	default:
		return "COSINE"
	}
}

// Validate checks if the distance strategy is valid.
func (d DistanceStrategy) Validate() error {
	switch d {
	case DistanceCosine, DistanceDot, DistanceEuclidean:
		return nil
	default:
		return fmt.Errorf("invalid distance strategy: %s", d)
	}
}

// validateIdentifier validates SQL identifiers to prevent SQL injection.
// Unquoted Oracle identifiers must start with a letter and contain only
// letters, digits, and underscores.
func validateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier cannot be empty")
	}

	for i, c := range name {
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		isUnderscore := c == '_'

		if i == 0 && !isLetter {
			return fmt.Errorf("identifier must start with a letter: %s", name)
		}

		if !isLetter && !isDigit && !isUnderscore {
			return fmt.Errorf("identifier contains invalid character: %s", name)
		}
	}

	return nil
}
