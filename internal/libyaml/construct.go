// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The Constructor turns a Node tree into host Go values. Unlike the
// teacher's reflect-driven struct/field marshaling, ENYAML only ever needs
// Node -> any: scalars resolve through the implicit resolver, sequences
// become []any, and mappings whose keys are all scalars become
// map[string]any keyed by each key's text (any other mapping becomes
// map[any]any).

package libyaml

import "fmt"

// ScalarConstructFunc lets a caller override how a specific tag's scalar
// value is constructed, the extension point behind add_constructor.
type ScalarConstructFunc func(tag, value string) (any, error)

// Constructor turns Nodes into Go values, consulting any registered
// per-tag overrides before falling back to the implicit resolver.
type Constructor struct {
	scalarOverrides map[string]ScalarConstructFunc
	multiOverrides  []multiConstructEntry
}

type multiConstructEntry struct {
	prefix string
	fn     ScalarConstructFunc
}

// NewConstructor creates an empty Constructor.
func NewConstructor() *Constructor {
	return &Constructor{scalarOverrides: map[string]ScalarConstructFunc{}}
}

// AddConstructor registers fn as the handler for nodes whose resolved tag
// equals tag exactly.
func (c *Constructor) AddConstructor(tag string, fn ScalarConstructFunc) {
	c.scalarOverrides[tag] = fn
}

// AddMultiConstructor registers fn as the handler for nodes whose resolved
// tag has the given prefix (e.g. a whole tag namespace).
func (c *Constructor) AddMultiConstructor(prefix string, fn ScalarConstructFunc) {
	c.multiOverrides = append(c.multiOverrides, multiConstructEntry{prefix: prefix, fn: fn})
}

// TryScalar consults any constructor registered for tag (exact or by
// prefix) and reports whether one matched.
func (c *Constructor) TryScalar(tag, value string) (any, bool, error) {
	if fn, ok := c.scalarOverrides[tag]; ok {
		v, err := fn(tag, value)
		return v, true, err
	}
	for _, m := range c.multiOverrides {
		if len(tag) >= len(m.prefix) && tag[:len(m.prefix)] == m.prefix {
			v, err := m.fn(tag, value)
			return v, true, err
		}
	}
	return nil, false, nil
}

// Construct converts a Node into a Go value.
func (c *Constructor) Construct(n *Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.Construct(n.Content[0])
	case AliasNode:
		return c.Construct(n.Alias)
	case ScalarNode:
		return c.constructScalar(n)
	case SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.Construct(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case MappingNode:
		return c.constructMapping(n)
	}
	return nil, fmt.Errorf("yaml: cannot construct node of kind %s", n.Kind)
}

func (c *Constructor) constructScalar(n *Node) (any, error) {
	if fn, ok := c.scalarOverrides[n.Tag]; ok {
		return fn(n.Tag, n.Value)
	}
	for _, m := range c.multiOverrides {
		if len(n.Tag) >= len(m.prefix) && n.Tag[:len(m.prefix)] == m.prefix {
			return m.fn(n.Tag, n.Value)
		}
	}
	tag := n.Tag
	if n.Style&(SingleQuotedStyle|DoubleQuotedStyle|LiteralStyle|FoldedStyle) != 0 && tag == "" {
		return n.Value, nil
	}
	_, val, err := Resolve(tag, n.Value)
	return val, err
}

func (c *Constructor) constructMapping(n *Node) (any, error) {
	allString := true
	for i := 0; i < len(n.Content); i += 2 {
		if n.Content[i].Kind != ScalarNode {
			allString = false
			break
		}
	}
	if allString {
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i < len(n.Content); i += 2 {
			k, err := c.Construct(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := c.Construct(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[fmt.Sprint(k)] = v
		}
		return m, nil
	}
	m := make(map[any]any, len(n.Content)/2)
	for i := 0; i < len(n.Content); i += 2 {
		k, err := c.Construct(n.Content[i])
		if err != nil {
			return nil, err
		}
		v, err := c.Construct(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}
