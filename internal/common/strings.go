package common

import "strings"

// UnknownStr is the String() value of enum members outside their declared range.
const UnknownStr = "unknown"

// Unquote strips one pair of matching single or double quotes around s.
func Unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}

	return s
}
