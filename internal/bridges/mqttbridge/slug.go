package mqttbridge

import "strings"

// maxSlugLength caps generated topic slugs.
const maxSlugLength = 50

// Slugify converts an entity name to a topic-safe slug.
//
// "Master Bedroom" becomes "master-bedroom". Characters outside
// [a-z0-9-] are dropped after lowercasing, runs of hyphens collapse,
// and the result is trimmed and truncated.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")

	var result strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	slug = result.String()

	// Clean up multiple/leading/trailing hyphens
	slug = strings.Trim(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	// Truncate to max length
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
		slug = strings.TrimRight(slug, "-")
	}

	return slug
}
