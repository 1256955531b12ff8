// Package graph holds the linked-data model that credit extraction queries:
// nodes, the read-only Graph interface and an in-memory Store.
package graph

import "strings"

// Node is a term in a triple: a Resource, a Literal or a BlankNode.
type Node interface {
	// String returns the N-Triples style rendering of the node
	String() string
	key() string
}

// Resource is a node identified by a URI. The empty URI denotes the
// document the graph was loaded from.
type Resource struct {
	URI string
}

// String returns the N-Triples form, <uri>
func (r Resource) String() string {
	return "<" + r.URI + ">"
}

func (r Resource) key() string {
	return "<" + r.URI + ">"
}

// Literal is a string value with an optional language tag or datatype.
type Literal struct {
	Value    string
	Lang     string
	Datatype string
}

// String returns the N-Triples form with escapes and tag
func (l Literal) String() string {
	s := `"` + escapeLiteral(l.Value) + `"`
	switch {
	case l.Lang != "":
		s += "@" + l.Lang
	case l.Datatype != "":
		s += "^^<" + l.Datatype + ">"
	}
	return s
}

func (l Literal) key() string {
	return l.String()
}

// BlankNode is an unnamed node, local to the graph it belongs to.
type BlankNode struct {
	ID string
}

// String returns the N-Triples form, _:id
func (b BlankNode) String() string {
	return "_:" + b.ID
}

func (b BlankNode) key() string {
	return "_:" + b.ID
}

// Key returns a string that identifies n within a graph. Two nodes with the
// same key are the same term.
func Key(n Node) string {
	if n == nil {
		return ""
	}
	return n.key()
}

// URI returns the URI of a Resource, or "" for any other node.
func URI(n Node) string {
	if r, ok := n.(Resource); ok {
		return r.URI
	}
	return ""
}

func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
