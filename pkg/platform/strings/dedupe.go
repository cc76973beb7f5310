// Package strings holds small slice helpers for configuration lists.
package strings

import (
	"strings"
)

// Compact trims every element and drops blanks and repeats. The first
// occurrence wins and order is preserved.
func Compact(values []string) []string {
	return compact(values, func(s string) string { return s })
}

// CompactFold is Compact with case-insensitive repeat detection. The first
// spelling seen is the one kept.
//
//	CompactFold([]string{"GPTBot", " gptbot ", "ChatGPT-User"})
//	// []string{"GPTBot", "ChatGPT-User"}
func CompactFold(values []string) []string {
	return compact(values, strings.ToLower)
}

func compact(values []string, key func(string) string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}
