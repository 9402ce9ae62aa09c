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
	"github.com/cloudwego/eino/components/retriever"
)

// implOptions holds implementation-specific options for the Oracle retriever.
type implOptions struct {
	// Filter restricts results to rows whose metadata fields equal the given
	// values, compared through JSON_VALUE on the METADATA column.
	Filter map[string]string

	// DistanceStrategy selects the VECTOR_DISTANCE metric.
	// Default: the retriever's configured strategy.
	DistanceStrategy DistanceStrategy

	// FetchK is the number of candidates fetched for MMR reselection.
	// Zero disables MMR.
	FetchK int

	// LambdaMult balances MMR between similarity (1.0) and diversity (0.0).
	LambdaMult float64
}

// WithFilter restricts search results by metadata field equality.
// Example: map[string]string{"category": "database"}.
func WithFilter(filter map[string]string) retriever.Option {
	return retriever.WrapImplSpecificOptFn(func(o *implOptions) {
		o.Filter = filter
	})
}

// WithDistanceStrategy sets the distance metric for this retrieval.
func WithDistanceStrategy(strategy DistanceStrategy) retriever.Option {
	return retriever.WrapImplSpecificOptFn(func(o *implOptions) {
		o.DistanceStrategy = strategy
	})
}

// WithMMR enables Maximum Marginal Relevance reselection: fetchK candidates
// are retrieved and the top K among them are chosen balancing relevance
// against diversity. lambdaMult 1.0 favors similarity, 0.0 favors diversity.
func WithMMR(fetchK int, lambdaMult float64) retriever.Option {
	return retriever.WrapImplSpecificOptFn(func(o *implOptions) {
		o.FetchK = fetchK
		o.LambdaMult = lambdaMult
	})
}
