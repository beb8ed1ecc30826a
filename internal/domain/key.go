package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	keyPrefixPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)
	ticketKeyPattern = regexp.MustCompile(`^([A-Z][A-Z0-9]*)-([0-9]+)$`)
)

// GenerateTicketKey renders the human-facing key for a project prefix and
// ticket number, e.g. "PAY-42".
func GenerateTicketKey(prefix string, number int) string {
	return fmt.Sprintf("%s-%d", prefix, number)
}

// ParseTicketKey splits a key of the form PREFIX-N. ok is false for any
// other shape: lowercase prefix, leading digit, missing number, empty
// string. ParseTicketKey(GenerateTicketKey(p, n)) round-trips for every
// valid prefix and positive number.
func ParseTicketKey(key string) (prefix string, number int, ok bool) {
	match := ticketKeyPattern.FindStringSubmatch(key)
	if match == nil {
		return "", 0, false
	}
	number, err := strconv.Atoi(match[2])
	if err != nil {
		return "", 0, false
	}
	return match[1], number, true
}

// ValidKeyPrefix reports whether prefix is usable for ticket keys: an
// uppercase letter followed by uppercase alphanumerics.
func ValidKeyPrefix(prefix string) bool {
	return keyPrefixPattern.MatchString(prefix)
}
