package graph

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/factsheet/internal/models"
)

// Relationships maps a document id to its table of resolved links
// (field path -> target document id).
type Relationships map[string]map[string]string

// Target returns the target document id recorded for a field path, or "".
func (r Relationships) Target(docID, fieldPath string) string {
	if table, ok := r[docID]; ok {
		return table[fieldPath]
	}
	return ""
}

// Resolve walks every document's content and records each link whose target
// id is present in the store. A link may point at any loaded document, not
// just ones in the same subtree. Unresolvable links are dropped; they are
// logged at debug verbosity only.
func Resolve(docs map[string]*models.Document, logger arbor.ILogger) Relationships {
	rels := make(Relationships, len(docs))

	for id, doc := range docs {
		table := make(map[string]string)
		Walk(doc.Content, VisitorFunc(func(n Node) {
			if n.Kind != NodeLink {
				return
			}
			targetID := TargetID(n.Target)
			if _, ok := docs[targetID]; !ok {
				logger.Debug().
					Str("doc_id", id).
					Str("field", n.Path).
					Str("target", n.Target).
					Msg("Unresolvable link dropped")
				return
			}
			table[n.Path] = targetID
		}))
		if len(table) > 0 {
			rels[id] = table
		}
	}

	return rels
}
