package entity

import "strings"

// HandlePrefix marks every username
const HandlePrefix = "@"

// NormalizeHandle derives the base username from a display name: trim,
// lower-case, collapse whitespace runs to single dots, drop anything
// outside [a-z0-9.]. An empty result falls back to "user". The result
// carries the @ prefix but no uniqueness guarantee; the allocator adds
// collision suffixes.
func NormalizeHandle(displayName string) string {
	name := strings.ToLower(strings.TrimSpace(displayName))
	name = strings.Join(strings.Fields(name), ".")

	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	base := strings.Trim(b.String(), ".")
	if base == "" {
		base = "user"
	}
	return HandlePrefix + base
}
