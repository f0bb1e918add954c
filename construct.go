// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Construct turns a rendered Node tree into plain Go values, the final
// step of Render/Load (spec §6). It runs after rendering has already
// reduced every template variant (Expr, Fmt, Set, If, For) down to a
// plain scalar/sequence/mapping Node or dropped it to nil. The exception
// is a skip_render copy, which keeps its template kind; Construct returns
// an error for it.

package enyaml

import (
	"fmt"

	"github.com/dhain/enyaml/internal/libyaml"
)

const libyamlQuotedStyles = libyaml.SingleQuotedStyle | libyaml.DoubleQuotedStyle | libyaml.LiteralStyle | libyaml.FoldedStyle

// Construct converts a post-render Node into a Go value.
func (l *Loader) Construct(n *Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case KindScalar:
		effectiveTag := n.Subtag
		if effectiveTag == "" {
			effectiveTag = n.RawTag
		}
		if v, ok, err := l.constructor.TryScalar(effectiveTag, n.Value); ok {
			return v, err
		}
		quoted := n.Style&(libyamlQuotedStyles) != 0
		_, v, err := resolveScalarTag(n.Subtag, n.RawTag, n.Value, quoted)
		return v, err
	case KindSequence:
		out := make([]any, 0, len(n.Items))
		for _, item := range n.Items {
			v, err := l.Construct(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case KindMapping:
		allString := true
		for _, e := range n.Entries {
			if e.Key == nil || e.Key.Kind != KindScalar {
				allString = false
				break
			}
		}
		if allString {
			m := make(map[string]any, len(n.Entries))
			for _, e := range n.Entries {
				k, err := l.Construct(e.Key)
				if err != nil {
					return nil, err
				}
				v, err := l.Construct(e.Value)
				if err != nil {
					return nil, err
				}
				m[fmt.Sprint(k)] = v
			}
			return m, nil
		}
		m := make(map[any]any, len(n.Entries))
		for _, e := range n.Entries {
			k, err := l.Construct(e.Key)
			if err != nil {
				return nil, err
			}
			v, err := l.Construct(e.Value)
			if err != nil {
				return nil, err
			}
			m[k] = v
		}
		return m, nil
	}
	return nil, fmt.Errorf("enyaml: internal error: cannot construct unrendered node kind %d", n.Kind)
}
