package loader

import (
	"fmt"
	"math"
)

// normalize rewrites a freshly-unmarshalled tree into the engine's shape
// contract: string-keyed mappings, []any sequences, int for integral
// numbers and float64 for the rest.
func normalize(v any) any {
	switch n := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, val := range n {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, val := range n {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, val := range n {
			out[i] = normalize(val)
		}
		return out
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint:
		return normalizeUint(uint64(n))
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case uint64:
		return normalizeUint(n)
	case float32:
		return float64(n)
	default:
		return n
	}
}

func normalizeUint(n uint64) any {
	if n <= math.MaxInt {
		return int(n)
	}
	return n
}
