// Package iputil contains small, pure helpers for working with IP address
// strings. Nothing here performs I/O.
package iputil

import (
	"strconv"
	"strings"
)

// IsValidIPv4 reports whether s is a syntactically valid IPv4 address:
// exactly four dot-separated segments, each a base-10 integer in [0, 255].
//
// Leading zeros are accepted ("08.8.8.8" parses the same as "8.8.8.8") -
// the check uses plain integer parsing, nothing stricter. This is a pure
// function: no side effects, no errors, deterministic for every input.
func IsValidIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}

	for _, part := range parts {
		// Atoi rejects empty segments, signs with no digits, and any
		// non-digit characters, so "1.2.3." and "1.2.3.+4" both fail here
		n, err := strconv.Atoi(part)
		if err != nil {
			return false
		}
		if n < 0 || n > 255 {
			return false
		}
		// Atoi accepts a leading sign; "-0" parses to 0 but is not a
		// valid octet spelling
		if strings.HasPrefix(part, "-") || strings.HasPrefix(part, "+") {
			return false
		}
	}

	return true
}
