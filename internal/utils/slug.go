package utils

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of characters outside [a-z0-9] into a single dash,
// e.g. "Portal IA (v2)" -> "portal-ia-v2".
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// ReadmeFilename is the name under which a project's information text is indexed.
func ReadmeFilename(projectName string) string {
	return "readme-project-" + Slugify(projectName) + ".md"
}
