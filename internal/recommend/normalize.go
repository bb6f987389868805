package recommend

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Known top-level keys and their aliases, canonical first.
var (
	homesKeys    = []string{"homeRecommendations", "homes"}
	visitKeys    = []string{"placesToVisit"}
	eatKeys      = []string{"placesToEat"}
	advisoryKeys = []string{"healthAdvisory", "advisory"}
	featuredKeys = []string{"featured", "feature"}
)

// Normalize converts a parsed model reply into a Set.
//
// Only a non-object top-level value is an error (KindParse). Everything below it is
// coerced: missing arrays become empty, non-object elements are dropped, absent or
// mistyped string fields become Unknown, and ids are made unique per category.
func Normalize(v any) (Set, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Set{}, newError(KindParse, fmt.Sprintf("expected top-level JSON object, got %s", describe(v)), nil)
	}

	return Set{
		Homes:         normalizeItems(lookupArray(obj, homesKeys)),
		PlacesToVisit: normalizeItems(lookupArray(obj, visitKeys)),
		PlacesToEat:   normalizeItems(lookupArray(obj, eatKeys)),
		Advisory:      lookupBool(obj, advisoryKeys),
	}, nil
}

func lookupArray(obj map[string]any, keys []string) []any {
	for _, k := range keys {
		if arr, ok := obj[k].([]any); ok {
			return arr
		}
	}
	return nil
}

// lookupBool returns the first bool-typed value among keys, else false.
func lookupBool(obj map[string]any, keys []string) bool {
	for _, k := range keys {
		if b, ok := obj[k].(bool); ok {
			return b
		}
	}
	return false
}

func normalizeItems(raw []any) []Item {
	out := make([]Item, 0, len(raw))
	used := make(map[int]struct{}, len(raw))
	var pending []int // indexes into out that still need an id

	for i, el := range raw {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		it := Item{
			Name:        stringOr(m["name"], Unknown),
			Address:     stringOr(m["address"], Unknown),
			Cost:        stringOr(m["cost"], Unknown),
			Link:        stringOr(m["link"], Unknown),
			Description: stringOr(m["description"], ""),
			Featured:    lookupBool(m, featuredKeys),
		}
		if id, ok := intValue(m["id"]); ok {
			if _, dup := used[id]; !dup {
				it.ID = id
				used[id] = struct{}{}
				out = append(out, it)
				continue
			}
		}
		// Position-based fallback is assigned once all explicit ids are known.
		it.ID = i + 1
		pending = append(pending, len(out))
		out = append(out, it)
	}

	for _, idx := range pending {
		id := out[idx].ID
		for {
			if _, taken := used[id]; !taken {
				break
			}
			id++
		}
		out[idx].ID = id
		used[id] = struct{}{}
	}
	return out
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

// intValue accepts integral JSON numbers and numeric strings.
func intValue(v any) (int, bool) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), true
		}
		f, err := x.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		return int(f), true
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		return int(x), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
