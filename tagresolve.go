// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Tag restoration on a rendered node (spec §4.4): a subtag is used
// verbatim; its absence falls back to the implicit core-schema resolver.
// coreScalarSubtags distinguishes a subtag that names one of those core
// types (triggering value coercion) from an arbitrary custom tag (kept
// as a literal label with no coercion, spec's "or any custom tag").

package enyaml

import "github.com/dhain/enyaml/internal/libyaml"

var coreScalarSubtags = map[string]bool{
	"null": true, "bool": true, "str": true, "int": true, "float": true, "timestamp": true,
}

// resolveScalarTag restores the tag and Go value for a rendered scalar
// Node, given its subtag (explicit, may be empty) and raw tag (the
// composer's literal tag, used only when there is no subtag and the
// node isn't a template result).
func resolveScalarTag(subtag, rawTag, value string, quoted bool) (tag string, out any, err error) {
	if subtag != "" {
		if coreScalarSubtags[subtag] {
			_, v, err := libyaml.Resolve("!!"+subtag, value)
			if err != nil {
				return "", nil, err
			}
			return subtag, v, nil
		}
		return subtag, value, nil
	}
	if quoted {
		return "", value, nil
	}
	rtag, v, err := libyaml.Resolve(rawTag, value)
	if err != nil {
		return "", nil, err
	}
	return libyaml.ShortTag(rtag), v, nil
}

// resolveExprTag restores the tag for an evaluated expression result
// (spec §4.4). The value is passed through unchanged; the caller
// represents it as a Node carrying its core YAML tag (int, str, ...), so
// Construct resolves its text back to that same YAML type rather than
// re-interpreting it as an untagged scalar.
func resolveExprTag(subtag string, value any) (tag string, out any) {
	if subtag == "" {
		return "", value
	}
	return subtag, value
}
