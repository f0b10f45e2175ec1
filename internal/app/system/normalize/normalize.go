// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email trims whitespace and lowercases an email address. All email
// comparisons and stored values go through this so lookups are
// case-insensitive.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace but preserves case; display names keep whatever
// capitalization the person typed.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role trims and lowercases a role value so "Trainer" and "trainer"
// compare equal at validation boundaries.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
