// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The tag codec: splitting and joining ENYAML's URI tags into their
// (basetag, subtag, skip_render) parts (spec §4.1), ported from
// enyaml.nodes.split_tag/unsplit_tag.

package enyaml

import "strings"

// TagPrefix is the fixed ENYAML tag namespace.
const TagPrefix = "tag:enyaml.org,2022:"

// SplitTag decomposes tag into its basetag, optional subtag, and
// skip-render flag. ok is false if tag does not start with TagPrefix.
func SplitTag(tag string) (basetag, subtag string, skipRender, ok bool) {
	if !strings.HasPrefix(tag, TagPrefix) {
		return "", "", false, false
	}
	rest := tag[len(TagPrefix):]
	base := rest
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		base, subtag = rest[:i], rest[i+1:]
	}
	for strings.HasSuffix(base, "~") {
		base = strings.TrimSuffix(base, "~")
		skipRender = true
	}
	return base, subtag, skipRender, true
}

// JoinTag is the exact inverse of SplitTag.
func JoinTag(basetag, subtag string, skipRender bool) string {
	var b strings.Builder
	b.WriteString(TagPrefix)
	b.WriteString(basetag)
	if skipRender {
		b.WriteByte('~')
	}
	if subtag != "" {
		b.WriteByte(':')
		b.WriteString(subtag)
	}
	return b.String()
}
