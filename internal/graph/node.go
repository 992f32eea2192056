// Package graph reconstructs the cross-document link graph of one property:
// it detects content-identifier links anywhere in a document, builds the
// per-document relationship table, classifies documents into domain kinds,
// and stitches sales to their owners through relationship documents.
package graph

import (
	"strconv"
	"strings"
)

// NodeKind partitions every JSON value the walk can encounter.
type NodeKind int

const (
	NodeScalar NodeKind = iota
	NodeList
	NodeMap
	NodeLink
)

// Node is one visited value in a document walk.
type Node struct {
	Kind   NodeKind
	Path   string // dotted/indexed field path from the document root
	Value  any
	Target string // raw link target, set only when Kind == NodeLink
}

// Visitor receives every node of a document walk.
type Visitor interface {
	Visit(n Node)
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(n Node)

func (f VisitorFunc) Visit(n Node) { f(n) }

// IsLink reports whether v has the link shape: an object with exactly one
// key whose value is a string. Anything else is ordinary data.
func IsLink(v any) (target string, ok bool) {
	m, isMap := v.(map[string]any)
	if !isMap || len(m) != 1 {
		return "", false
	}
	for _, val := range m {
		s, isStr := val.(string)
		if !isStr {
			return "", false
		}
		return s, true
	}
	return "", false
}

// TargetID converts a raw link target into a document id. Relative
// references of the form "./<name>.json" resolve by filename; anything else
// is taken as a document id verbatim.
func TargetID(target string) string {
	if strings.HasPrefix(target, "./") {
		return strings.TrimSuffix(strings.TrimPrefix(target, "./"), ".json")
	}
	return target
}

// Walk visits every reachable value in content, classifying each as exactly
// one of {Scalar, List, Map, Link}. Links terminate their branch; lists and
// maps recurse with the element index or key appended to the path.
func Walk(content any, v Visitor) {
	walk(content, "", v)
}

func walk(value any, path string, v Visitor) {
	if target, ok := IsLink(value); ok {
		v.Visit(Node{Kind: NodeLink, Path: path, Value: value, Target: target})
		return
	}

	switch elem := value.(type) {
	case map[string]any:
		v.Visit(Node{Kind: NodeMap, Path: path, Value: elem})
		for key, child := range elem {
			walk(child, joinPath(path, key), v)
		}
	case []any:
		v.Visit(Node{Kind: NodeList, Path: path, Value: elem})
		for i, child := range elem {
			walk(child, joinPath(path, strconv.Itoa(i)), v)
		}
	default:
		v.Visit(Node{Kind: NodeScalar, Path: path, Value: elem})
	}
}

func joinPath(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}
