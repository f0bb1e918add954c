// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The Representer turns Go values into a Node tree, the inverse of the
// Constructor. Like Constructor, this is deliberately reflect-light: ENYAML
// only needs to represent the value shapes its own render pipeline
// produces (nil, bool, string, the numeric kinds, time.Time, []any,
// map[string]any, map[any]any, and *Node passthrough).

package libyaml

import (
	"fmt"
	"strconv"
	"time"
)

// RepresentFunc lets a caller override how a specific Go type is
// represented, the extension point behind add_representer.
type RepresentFunc func(v any) (*Node, error)

// Representer turns Go values into Nodes.
type Representer struct {
	overrides map[string]RepresentFunc
}

// NewRepresenter creates an empty Representer.
func NewRepresenter() *Representer {
	return &Representer{overrides: map[string]RepresentFunc{}}
}

// AddRepresenter registers fn as the handler for values whose type name
// (fmt.Sprintf("%T", v)) equals typeName.
func (r *Representer) AddRepresenter(typeName string, fn RepresentFunc) {
	r.overrides[typeName] = fn
}

// Represent converts a Go value into a Node.
func (r *Representer) Represent(v any) (*Node, error) {
	if n, ok := v.(*Node); ok {
		return n, nil
	}
	if fn, ok := r.overrides[fmt.Sprintf("%T", v)]; ok {
		return fn(v)
	}
	switch x := v.(type) {
	case nil:
		return &Node{Kind: ScalarNode, Tag: NULL_TAG, Value: "null"}, nil
	case bool:
		return &Node{Kind: ScalarNode, Tag: BOOL_TAG, Value: strconv.FormatBool(x)}, nil
	case string:
		return &Node{Kind: ScalarNode, Tag: STR_TAG, Value: x}, nil
	case int:
		return &Node{Kind: ScalarNode, Tag: INT_TAG, Value: strconv.Itoa(x)}, nil
	case int64:
		return &Node{Kind: ScalarNode, Tag: INT_TAG, Value: strconv.FormatInt(x, 10)}, nil
	case uint64:
		return &Node{Kind: ScalarNode, Tag: INT_TAG, Value: strconv.FormatUint(x, 10)}, nil
	case float64:
		return &Node{Kind: ScalarNode, Tag: FLOAT_TAG, Value: formatFloat(x)}, nil
	case time.Time:
		return &Node{Kind: ScalarNode, Tag: TIMESTAMP_TAG, Value: x.Format(time.RFC3339Nano)}, nil
	case []any:
		n := &Node{Kind: SequenceNode, Tag: SEQ_TAG}
		for _, item := range x {
			child, err := r.Represent(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case map[string]any:
		n := &Node{Kind: MappingNode, Tag: MAP_TAG}
		for k, val := range x {
			kn, err := r.Represent(k)
			if err != nil {
				return nil, err
			}
			vn, err := r.Represent(val)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, kn, vn)
		}
		return n, nil
	case map[any]any:
		n := &Node{Kind: MappingNode, Tag: MAP_TAG}
		for k, val := range x {
			kn, err := r.Represent(k)
			if err != nil {
				return nil, err
			}
			vn, err := r.Represent(val)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, kn, vn)
		}
		return n, nil
	}
	return nil, fmt.Errorf("yaml: cannot represent value of type %T", v)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
