package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nonSlugChars = regexp.MustCompile("[^a-z0-9-]")
	dashRuns     = regexp.MustCompile("-+")
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// UniqueSlug appends a short random suffix so tenants with the same business
// name don't collide.
func UniqueSlug(name string) string {
	base := Slugify(name)
	if base == "" {
		base = "tenant"
	}
	return base + "-" + strings.ToLower(uuid.New().String()[:8])
}
