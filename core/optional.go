package core

import "strings"

// String returns a pointer to s, or nil when s is empty.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Int returns a pointer to n.
func Int(n int) *int {
	return &n
}

// Deref returns the value s points at, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ParseLeadingInt reads an optionally signed run of decimal digits at the
// start of s, after leading whitespace, ignoring whatever follows it
// ("100px" is 100, "32.1" is 32). ok is false when s does not start with a
// number or the number overflows.
func ParseLeadingInt(s string) (n int64, ok bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if n > (1<<62)/10 {
			return 0, false
		}
		n = n*10 + int64(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// PositiveInt parses s like ParseLeadingInt and returns a pointer to the
// result only when it is greater than zero. Dimensions of zero are treated
// the same as missing ones.
func PositiveInt(s string) *int {
	n, ok := ParseLeadingInt(s)
	if !ok || n <= 0 || n > int64(^uint32(0)>>1) {
		return nil
	}
	return Int(int(n))
}
