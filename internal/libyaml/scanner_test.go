// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scanAll(t *testing.T, src string) []TokenType {
	t.Helper()
	s := NewScanner(src)
	var out []TokenType
	for {
		tok, err := s.Scan()
		if err != nil {
			t.Fatalf("scan %q: %v", src, err)
		}
		out = append(out, tok.Type)
		if tok.Type == STREAM_END_TOKEN {
			return out
		}
	}
}

func TestScannerTokenSequences(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want []TokenType
	}{
		{
			name: "plain mapping",
			src:  "a: 1\n",
			want: []TokenType{
				STREAM_START_TOKEN, BLOCK_MAPPING_START_TOKEN,
				SCALAR_TOKEN, VALUE_TOKEN, SCALAR_TOKEN,
				BLOCK_END_TOKEN, STREAM_END_TOKEN,
			},
		},
		{
			name: "block sequence",
			src:  "- a\n- b\n",
			want: []TokenType{
				STREAM_START_TOKEN, BLOCK_SEQUENCE_START_TOKEN,
				BLOCK_ENTRY_TOKEN, SCALAR_TOKEN,
				BLOCK_ENTRY_TOKEN, SCALAR_TOKEN,
				BLOCK_END_TOKEN, STREAM_END_TOKEN,
			},
		},
		{
			name: "flow sequence",
			src:  "[a, b]\n",
			want: []TokenType{
				STREAM_START_TOKEN, FLOW_SEQUENCE_START_TOKEN,
				SCALAR_TOKEN, FLOW_ENTRY_TOKEN, SCALAR_TOKEN,
				FLOW_SEQUENCE_END_TOKEN, STREAM_END_TOKEN,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, scanAll(t, tc.src))
		})
	}
}

// ENYAML leans on the scanner emitting a TAG_TOKEN for its "!basetag"
// shorthands ("!$", "!for", ...) the same way it would for any other
// YAML tag, so the loader can classify on the composed Node's Tag field
// without the scanner knowing anything about ENYAML semantics.
func TestScannerTagToken(t *testing.T) {
	toks := scanAll(t, "!$ 1\n")
	assert.Contains(t, toks, TAG_TOKEN)
}
