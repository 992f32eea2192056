package models

// Document is one loaded JSON file from a property directory. The ID is the
// filename with the .json extension stripped and is what link targets resolve
// against.
type Document struct {
	ID      string         `json:"id"`
	Path    string         `json:"path"`
	Content map[string]any `json:"content"`
}

// DocKind classifies a document into one of the closed set of domain kinds.
// Every loaded document is classified exactly once; anything that matches no
// signature is KindUnknown.
type DocKind int

const (
	KindUnknown DocKind = iota
	KindRelationship
	KindProperty
	KindAddress
	KindLot
	KindStructure
	KindUtility
	KindSale
	KindTax
	KindLayout
	KindPerson
	KindCompany
)

// String returns the kind name used in logs.
func (k DocKind) String() string {
	switch k {
	case KindRelationship:
		return "relationship"
	case KindProperty:
		return "property"
	case KindAddress:
		return "address"
	case KindLot:
		return "lot"
	case KindStructure:
		return "structure"
	case KindUtility:
		return "utility"
	case KindSale:
		return "sale"
	case KindTax:
		return "tax"
	case KindLayout:
		return "layout"
	case KindPerson:
		return "person"
	case KindCompany:
		return "company"
	default:
		return "unknown"
	}
}

// Str returns a string field from the document content, or "" when the field
// is absent or not a string.
func (d *Document) Str(field string) string {
	if d == nil || d.Content == nil {
		return ""
	}
	s, _ := d.Content[field].(string)
	return s
}

// Num returns a numeric field from the document content. JSON numbers decode
// as float64; numeric strings are accepted because source feeds are
// inconsistent about quoting. ok is false when the field is absent or not
// coercible.
func (d *Document) Num(field string) (float64, bool) {
	if d == nil || d.Content == nil {
		return 0, false
	}
	return ToNumber(d.Content[field])
}
