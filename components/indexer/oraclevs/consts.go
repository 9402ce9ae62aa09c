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

import "fmt"

const typ = "OracleVS"

const defaultBatchSize = 32

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
