package store

import (
	"fmt"
	"sort"
	"strings"
)

// AttributeText flattens the scalar values of an attribute map into a single
// searchable string. Keys are sorted so the indexed text is deterministic.
// Nested maps are skipped; lists contribute their scalar elements.
func AttributeText(attrs map[string]any) string {
	if len(attrs) == 0 {
		return ""
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		switch v := attrs[k].(type) {
		case string:
			if v != "" {
				parts = append(parts, v)
			}
		case []any:
			for _, item := range v {
				if s := scalarString(item); s != "" {
					parts = append(parts, s)
				}
			}
		default:
			if s := scalarString(v); s != "" {
				parts = append(parts, s)
			}
		}
	}

	return strings.Join(parts, " ")
}

func scalarString(v any) string {
	switch v := v.(type) {
	case nil, map[string]any:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
