package domain

import (
	"strings"
	"time"
)

// Tag is a project-scoped catalog entry. Values are always stored
// normalized. The catalog is independent of which tickets reference a
// value: removing a tag from every ticket does not delete the entry.
type Tag struct {
	ID        string
	ProjectID string
	Value     string
	CreatedAt time.Time
}

// NormalizeTag canonicalizes a raw tag value: trimmed and lowercased.
func NormalizeTag(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NormalizeTags normalizes every value, drops entries that normalize to
// empty, and de-duplicates while preserving first-seen order.
func NormalizeTags(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := NormalizeTag(value)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

// HasTag reports case-insensitive membership of tag in tags.
func HasTag(tags []string, tag string) bool {
	normalized := NormalizeTag(tag)
	for _, existing := range tags {
		if NormalizeTag(existing) == normalized {
			return true
		}
	}
	return false
}

// AddTagToList returns a new list with the normalized tag appended, or an
// unchanged copy when a case variant is already present.
func AddTagToList(tags []string, tag string) []string {
	out := append([]string(nil), tags...)
	if HasTag(tags, tag) {
		return out
	}
	return append(out, NormalizeTag(tag))
}

// RemoveTagFromList returns a new list without any case variant of tag.
func RemoveTagFromList(tags []string, tag string) []string {
	normalized := NormalizeTag(tag)
	out := make([]string, 0, len(tags))
	for _, existing := range tags {
		if NormalizeTag(existing) == normalized {
			continue
		}
		out = append(out, existing)
	}
	return out
}
