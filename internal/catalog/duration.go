package catalog

import "strings"

type DurationBucket string

const (
	DurationShort  DurationBucket = "short"  // <= 20h
	DurationMedium DurationBucket = "medium" // 21h - 50h
	DurationLong   DurationBucket = "long"   // > 50h
)

func (b DurationBucket) Valid() bool {
	switch b {
	case DurationShort, DurationMedium, DurationLong:
		return true
	}
	return false
}

// Contains reports whether a course duration text falls in the bucket. Durations
// without a leading number belong to no bucket.
func (b DurationBucket) Contains(duration string) bool {
	h, ok := parseHours(duration)
	if !ok {
		return false
	}
	switch b {
	case DurationShort:
		return h <= 20
	case DurationMedium:
		return h >= 21 && h <= 50
	case DurationLong:
		return h > 50
	}
	return false
}

// parseHours reads the leading integer of a duration such as "24 hours" or
// "12.5h" (12).
func parseHours(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		n = n*10 + int(s[digits]-'0')
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
