// Package normalize holds the pure functions that turn located entity
// documents into the derived fields of a property record. Every function is
// total: missing or malformed input produces a fallback value, never an
// error.
package normalize

import (
	"strings"

	"github.com/ternarybob/factsheet/internal/models"
)

// BuildAddressString concatenates the display address from its components in
// fixed order: street number, pre-directional, title-cased street name,
// suffix type, post-directional. Missing components are omitted and a unit
// identifier is appended after a comma.
func BuildAddressString(address *models.Document) string {
	if address == nil {
		return ""
	}

	parts := []string{
		address.Str("street_number"),
		address.Str("street_pre_directional_text"),
		TitleCase(address.Str("street_name")),
		address.Str("street_suffix_type"),
		address.Str("street_post_directional_text"),
	}

	// strings.Fields both drops empty components and collapses any runs of
	// whitespace inside them.
	result := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	if unit := strings.TrimSpace(address.Str("unit_identifier")); unit != "" {
		result += ", " + unit
	}
	return result
}

// TitleCase uppercases the first letter of each space-separated word and
// lowercases the rest. Field data here is ASCII street naming, so no
// locale-aware casing is needed.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
