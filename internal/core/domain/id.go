package domain

import "strings"

// SameID reports whether a and b name the same entity. Ids are hex ObjectIDs:
// callers may send either case, while the store always returns lowercase.
func SameID(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}
