package graph

import (
	"strings"

	"github.com/ternarybob/factsheet/internal/models"
)

// OwnerName resolves the display name of the party that acquired the
// property in a given sale. Relationship documents are matched structurally:
// the from link must resolve to the sale and the to link must resolve to a
// person or company. Returns "" when nothing resolves; the caller decides
// how to display an unknown owner.
func OwnerName(sale *models.Document, docs map[string]*models.Document, rels Relationships, classified *Classified) string {
	if sale == nil {
		return ""
	}

	for _, rel := range classified.FindAll(models.KindRelationship) {
		fromID := rels.Target(rel.ID, "from")
		if fromID != sale.ID {
			continue
		}

		toID := rels.Target(rel.ID, "to")
		target, ok := docs[toID]
		if !ok {
			continue
		}

		switch classified.Kind(toID) {
		case models.KindPerson:
			if name := personName(target); name != "" {
				return name
			}
		case models.KindCompany:
			if name := target.Str("name"); name != "" {
				return name
			}
		}
	}

	return ""
}

// personName prefers an explicit full name, then concatenates the name
// parts that are present.
func personName(doc *models.Document) string {
	if full := doc.Str("full_name"); full != "" {
		return full
	}

	parts := []string{}
	for _, field := range []string{"first_name", "middle_name", "last_name"} {
		if v := doc.Str(field); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
