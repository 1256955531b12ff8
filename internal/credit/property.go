package credit

import (
	"regexp"

	"github.com/ppiankov/creditline/internal/graph"
)

var urlRe = regexp.MustCompile(`^https?:`)

// LooksLikeURL reports whether v is an http or https URL
func LooksLikeURL(v string) bool {
	return urlRe.MatchString(v)
}

// ResolveText returns the first usable text value of subject for the given
// predicates, tried in order. Every object of a predicate is examined: the
// first non-empty literal value or resource URI wins. Literal language tags
// are not considered.
func ResolveText(g graph.Graph, subject graph.Node, predicates ...graph.Resource) string {
	for _, p := range predicates {
		for _, obj := range g.Each(subject, p) {
			switch o := obj.(type) {
			case graph.Literal:
				if o.Value != "" {
					return o.Value
				}
			case graph.Resource:
				if o.URI != "" {
					return o.URI
				}
			}
		}
	}
	return ""
}

// ResolveURL returns a URL value of subject for the given predicates, tried
// in order. Only the first object of each predicate is considered: a
// resource URI is trusted as-is, a literal only counts if it looks like a URL.
func ResolveURL(g graph.Graph, subject graph.Node, predicates ...graph.Resource) string {
	for _, p := range predicates {
		switch o := g.Any(subject, p).(type) {
		case graph.Resource:
			if o.URI != "" {
				return o.URI
			}
		case graph.Literal:
			if LooksLikeURL(o.Value) {
				return o.Value
			}
		}
	}
	return ""
}
