package graph

import (
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/factsheet/internal/models"
)

// signature is the presence-test that identifies a document kind. The field
// merely has to exist on the top-level content; its value is irrelevant.
type signature struct {
	kind  models.DocKind
	field string
}

// signatures is the closed, ordered set of kind predicates. Order matters:
// the first matching signature wins, so the generic company "name" test sits
// last. Relationship documents are recognized structurally before any of
// these are consulted.
var signatures = []signature{
	{models.KindProperty, "property_type"},
	{models.KindAddress, "street_name"},
	{models.KindLot, "lot_size_sqft"},
	{models.KindStructure, "exterior_wall_material_primary"},
	{models.KindUtility, "cooling_system_type"},
	{models.KindSale, "purchase_price_amount"},
	{models.KindTax, "tax_assessed_value"},
	{models.KindLayout, "space_type"},
	{models.KindPerson, "first_name"},
	{models.KindCompany, "name"},
}

// singletonKinds are expected at most once per property. Duplicates are not
// an error: the first document in sorted id order wins and a warning names
// the loser, making the tie-break deterministic across filesystems.
var singletonKinds = map[models.DocKind]bool{
	models.KindProperty:  true,
	models.KindAddress:   true,
	models.KindLot:       true,
	models.KindStructure: true,
	models.KindUtility:   true,
}

// Classified holds the result of the single classification pass over a
// property's documents.
type Classified struct {
	kinds  map[string]models.DocKind
	byKind map[models.DocKind][]*models.Document
}

// Classify assigns every loaded document exactly one kind. Documents are
// visited in sorted id order so FindOne and FindAll are deterministic.
func Classify(docs map[string]*models.Document, logger arbor.ILogger) *Classified {
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	c := &Classified{
		kinds:  make(map[string]models.DocKind, len(docs)),
		byKind: make(map[models.DocKind][]*models.Document),
	}

	for _, id := range ids {
		doc := docs[id]
		kind := kindOf(doc)
		c.kinds[id] = kind
		c.byKind[kind] = append(c.byKind[kind], doc)

		if singletonKinds[kind] && len(c.byKind[kind]) == 2 {
			logger.Warn().
				Str("kind", kind.String()).
				Str("winner", c.byKind[kind][0].ID).
				Str("duplicate", id).
				Msg("Multiple documents match a singleton signature, first in sorted order wins")
		}
	}

	return c
}

// kindOf classifies one document. Relationship shape (a from link and a to
// link) takes precedence over the field signatures.
func kindOf(doc *models.Document) models.DocKind {
	if isRelationship(doc) {
		return models.KindRelationship
	}
	for _, sig := range signatures {
		if _, ok := doc.Content[sig.field]; ok {
			return sig.kind
		}
	}
	return models.KindUnknown
}

func isRelationship(doc *models.Document) bool {
	from, hasFrom := doc.Content["from"]
	to, hasTo := doc.Content["to"]
	if !hasFrom || !hasTo {
		return false
	}
	_, fromIsLink := IsLink(from)
	_, toIsLink := IsLink(to)
	return fromIsLink && toIsLink
}

// Kind returns the classified kind of a document id.
func (c *Classified) Kind(docID string) models.DocKind {
	return c.kinds[docID]
}

// FindOne returns the first document of a kind in sorted id order, or nil
// when none matched.
func (c *Classified) FindOne(kind models.DocKind) *models.Document {
	if matches := c.byKind[kind]; len(matches) > 0 {
		return matches[0]
	}
	return nil
}

// FindAll returns every document of a kind in sorted id order.
func (c *Classified) FindAll(kind models.DocKind) []*models.Document {
	return c.byKind[kind]
}
