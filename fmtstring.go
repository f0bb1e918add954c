// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Fmt ("$f") evaluation (spec §4.5): "{name}" placeholder substitution
// against the context, ported from FormatStringNode.render's use of
// Python str.format. Dotted paths ("{a.b}") walk into map[string]any
// values; the rest of Python's format mini-language (conversions,
// alignment, nested field access beyond dotted names) is not
// implemented since named substitution is all §4.5 requires.

package enyaml

import (
	"fmt"
	"strings"
)

func formatString(template string, ctx *Context) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(template) {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				out.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated format field in %q", template)
			}
			field := template[i+1 : i+end]
			val, err := lookupFormatField(ctx, field)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&out, "%v", val)
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				out.WriteByte('}')
				i += 2
				continue
			}
			return "", fmt.Errorf("single '}' encountered in format string %q", template)
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String(), nil
}

func lookupFormatField(ctx *Context, field string) (any, error) {
	parts := strings.Split(field, ".")
	v, ok := ctx.Get(parts[0])
	if !ok {
		return nil, fmt.Errorf("no field named %q in format string", parts[0])
	}
	for _, p := range parts[1:] {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("cannot access %q on non-mapping value", p)
		}
		v, ok = m[p]
		if !ok {
			return nil, fmt.Errorf("no field named %q in format string", p)
		}
	}
	return v, nil
}
