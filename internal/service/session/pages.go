package session

import (
	"strconv"
	"strings"
	"unicode"
)

// ParsePageCount reads the leading integer of field the way a browser's
// parseInt does (leading whitespace, optional sign, digits up to the first
// non digit). Missing digits or a zero result yield def.
func ParsePageCount(field string, def int) int {
	s := strings.TrimLeftFunc(field, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return def
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return def
	}
	return n
}
