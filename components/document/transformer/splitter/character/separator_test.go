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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSeparator(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "mistyped newline", input: "/n", want: "\n"},
		{name: "mistyped tab", input: "/t", want: "\t"},
		{name: "escaped newline", input: `\n`, want: "\n"},
		{name: "escaped double newline", input: `\n\n`, want: "\n\n"},
		{name: "escaped tab", input: `\t`, want: "\t"},
		{name: "escaped carriage return", input: `\r`, want: "\r"},
		{name: "escaped backslash", input: `\\`, want: `\`},
		{name: "escaped backslash then n", input: `\\n`, want: `\n`},
		{name: "plain sentence separator", input: ".", want: "."},
		{name: "actual newline passes through", input: "\n", want: "\n"},
		{name: "unknown escape preserved", input: `\d`, want: `\d`},
		{name: "trailing backslash preserved", input: `abc\`, want: `abc\`},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSeparator(tt.input))
		})
	}
}
