// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Dynamic value semantics for the expression evaluator: the arithmetic,
// comparison, membership, and truthiness rules that Python gets for free
// and Go needs spelled out, since expression operands are YAML-decoded
// `any` values (int64, float64, string, bool, []any, map[string]any...).

package expr

import (
	"fmt"
	"math"
)

// Context is the minimal name-lookup surface an expression needs from
// its host. *enyaml.Context satisfies it without either package
// importing the other.
type Context interface {
	Get(name string) (any, bool)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	case map[any]any:
		return len(x) > 0
	}
	return true
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func bothInt(a, b any) (int64, int64, bool) {
	ai, aok := asInt(a)
	bi, bok := asInt(b)
	return ai, bi, aok && bok
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case uint64:
		return int64(x), true
	}
	return 0, false
}

func applyUnaryPlus(v any) (any, error) {
	if f, ok := asFloat(v); ok {
		if i, ok := asInt(v); ok {
			return i, nil
		}
		return f, nil
	}
	return nil, fmt.Errorf("expr: unary + needs a number, got %T", v)
}

func applyUnaryMinus(v any) (any, error) {
	if i, ok := asInt(v); ok {
		return -i, nil
	}
	if f, ok := asFloat(v); ok {
		return -f, nil
	}
	return nil, fmt.Errorf("expr: unary - needs a number, got %T", v)
}

// numOp applies an integer-preserving op when both operands are whole
// numbers, else falls back to float64 arithmetic.
func numOp(a, b any, intOp func(int64, int64) int64, floatOp func(float64, float64) float64) (any, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		return intOp(ai, bi), nil
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, fmt.Errorf("expr: operator needs numbers, got %T and %T", a, b)
	}
	return floatOp(af, bf), nil
}

func applyAdd(a, b any) (any, error) {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as + bs, nil
		}
	}
	if al, ok := a.([]any); ok {
		if bl, ok := b.([]any); ok {
			out := make([]any, 0, len(al)+len(bl))
			out = append(out, al...)
			out = append(out, bl...)
			return out, nil
		}
	}
	return numOp(a, b, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y })
}

func applySub(a, b any) (any, error) {
	return numOp(a, b, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y })
}

func applyMul(a, b any) (any, error) {
	return numOp(a, b, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y })
}

func applyDiv(a, b any) (any, error) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, fmt.Errorf("expr: / needs numbers, got %T and %T", a, b)
	}
	if bf == 0 {
		return nil, fmt.Errorf("expr: division by zero")
	}
	return af / bf, nil
}

func applyFloorDiv(a, b any) (any, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		if bi == 0 {
			return nil, fmt.Errorf("expr: division by zero")
		}
		q := ai / bi
		if (ai%bi != 0) && ((ai < 0) != (bi < 0)) {
			q--
		}
		return q, nil
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, fmt.Errorf("expr: // needs numbers, got %T and %T", a, b)
	}
	if bf == 0 {
		return nil, fmt.Errorf("expr: division by zero")
	}
	return math.Floor(af / bf), nil
}

func applyMod(a, b any) (any, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		if bi == 0 {
			return nil, fmt.Errorf("expr: modulo by zero")
		}
		m := ai % bi
		if m != 0 && ((m < 0) != (bi < 0)) {
			m += bi
		}
		return m, nil
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, fmt.Errorf("expr: %% needs numbers, got %T and %T", a, b)
	}
	return math.Mod(math.Mod(af, bf)+bf, bf), nil
}

func applyPow(a, b any) (any, error) {
	if ai, bi, ok := bothInt(a, b); ok && bi >= 0 {
		result := int64(1)
		for i := int64(0); i < bi; i++ {
			result *= ai
		}
		return result, nil
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, fmt.Errorf("expr: ^ needs numbers, got %T and %T", a, b)
	}
	return math.Pow(af, bf), nil
}

func compareLess(a, b any) (any, error) {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af < bf, nil
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as < bs, nil
		}
	}
	return nil, fmt.Errorf("expr: cannot compare %T and %T", a, b)
}

func compareGreater(a, b any) (any, error) {
	less, err := compareLess(a, b)
	if err != nil {
		return nil, err
	}
	eq := valuesEqual(a, b)
	return !less.(bool) && !eq, nil
}

func valuesEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
	}
	return a == b
}

func membership(needle, haystack any) (any, error) {
	switch h := haystack.(type) {
	case string:
		s, ok := needle.(string)
		if !ok {
			return nil, fmt.Errorf("expr: 'in' a string needs a string, got %T", needle)
		}
		return stringContains(h, s), nil
	case []any:
		for _, item := range h {
			if valuesEqual(item, needle) {
				return true, nil
			}
		}
		return false, nil
	case map[string]any:
		key, ok := needle.(string)
		if !ok {
			return false, nil
		}
		_, found := h[key]
		return found, nil
	case map[any]any:
		_, found := h[needle]
		return found, nil
	}
	return nil, fmt.Errorf("expr: 'in' needs a container, got %T", haystack)
}

func stringContains(s, substr string) bool {
	if len(substr) == 0 {
		return true
	}
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// indexValue implements the "." operator: a name lookup on a Context
// value, map[string]any keyed access (the shape the loader's Constructor
// produces for plain YAML mappings), falling back to map[any]any.
func indexValue(v any, key string) (any, error) {
	if c, ok := v.(Context); ok {
		val, found := c.Get(key)
		if !found {
			return nil, fmt.Errorf("expr: no attribute %q", key)
		}
		return val, nil
	}
	switch m := v.(type) {
	case map[string]any:
		val, ok := m[key]
		if !ok {
			return nil, fmt.Errorf("expr: no attribute %q", key)
		}
		return val, nil
	case map[any]any:
		val, ok := m[key]
		if !ok {
			return nil, fmt.Errorf("expr: no attribute %q", key)
		}
		return val, nil
	}
	return nil, fmt.Errorf("expr: cannot index %T with %q", v, key)
}
