package utils

import "strings"

// IsLowerAlpha reports whether s is non-empty and consists only of a-z.
func IsLowerAlpha(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// IsValidInput checks if input can match anything in an a-z dictionary.
// Surrounding whitespace is ignored.
func IsValidInput(s string) bool {
	return IsLowerAlpha(strings.TrimSpace(s))
}

// SplitList splits a comma separated list, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
