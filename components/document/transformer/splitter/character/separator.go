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
	"strings"
)

// ResolveSeparator normalizes a raw user-supplied separator token.
// The literals "/n" and "/t" are treated as mistyped escapes for newline and
// tab. Otherwise standard backslash escape sequences are decoded, so a literal
// backslash-n in the input becomes an actual newline. Unrecognized escapes are
// passed through unchanged. ResolveSeparator never fails; the result may be
// empty.
func ResolveSeparator(raw string) string {
	switch raw {
	case "/n":
		return "\n"
	case "/t":
		return "\t"
	}
	return unescape(raw)
}

func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}

		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}

	return b.String()
}
