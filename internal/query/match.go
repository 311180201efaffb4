package query

import "strings"

// Match reports whether term is a case-insensitive substring of any present
// field. Empty fields count as absent and never match.
func Match(term string, fields ...string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Filter keeps the items whose fields match term. A blank term keeps everything.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	out := make([]T, 0, len(items))
	if strings.TrimSpace(term) == "" {
		return append(out, items...)
	}
	for _, it := range items {
		if Match(term, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}
