// Package vocab defines the fixed namespace table and the predicate terms
// used when resolving attribution metadata.
package vocab

import (
	"sort"
	"strings"

	"github.com/ppiankov/creditline/internal/graph"
)

// Namespace is a base IRI that terms are appended to.
type Namespace string

// Term returns the resource for local name within the namespace
func (ns Namespace) Term(local string) graph.Resource {
	return graph.Resource{URI: string(ns) + local}
}

// Namespace IRIs
const (
	DC      Namespace = "http://purl.org/dc/elements/1.1/"
	DCTerms Namespace = "http://purl.org/dc/terms/"
	CC      Namespace = "http://creativecommons.org/ns#"
	XHTML   Namespace = "http://www.w3.org/1999/xhtml/vocab#"
	OG      Namespace = "http://ogp.me/ns#"
	Twitter Namespace = "http://dev.twitter.com/cards#"
	Flickr  Namespace = "http://flickr.com/ns#"
	RDF     Namespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XSD     Namespace = "http://www.w3.org/2001/XMLSchema#"
)

// Predicates queried by credit extraction
var (
	DCTitle   = DC.Term("title")
	DCCreator = DC.Term("creator")
	DCSource  = DC.Term("source")
	DCRights  = DC.Term("rights")

	DCTermsCreator = DCTerms.Term("creator")
	DCTermsLicense = DCTerms.Term("license")
	DCTermsSource  = DCTerms.Term("source")

	CCAttributionName = CC.Term("attributionName")
	CCAttributionURL  = CC.Term("attributionURL")
	CCLicense         = CC.Term("license")

	XHTMLLicense = XHTML.Term("license")

	OGTitle = OG.Term("title")
	OGURL   = OG.Term("url")

	TwitterCreator = Twitter.Term("creator")

	FlickrPhotographer = Flickr.Term("photographer")

	RDFType = RDF.Term("type")
)

// prefixes is never modified after initialization; callers get copies.
var prefixes = map[string]Namespace{
	"dc":      DC,
	"dcterms": DCTerms,
	"cc":      CC,
	"xhtml":   XHTML,
	"og":      OG,
	"twitter": Twitter,
	"flickr":  Flickr,
	"rdf":     RDF,
	"xsd":     XSD,
}

// Lookup returns the namespace bound to prefix in the default table
func Lookup(prefix string) (Namespace, bool) {
	ns, ok := prefixes[prefix]
	return ns, ok
}

// Prefixes returns a copy of the default prefix table
func Prefixes() map[string]Namespace {
	out := make(map[string]Namespace, len(prefixes))
	for k, v := range prefixes {
		out[k] = v
	}
	return out
}

// PrefixNames returns the default prefixes in sorted order
func PrefixNames() []string {
	names := make([]string, 0, len(prefixes))
	for k := range prefixes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Expand turns a CURIE such as "dc:title" into a full IRI using table,
// falling back to the default prefixes. Values that are already absolute
// IRIs, or whose prefix is unknown, are returned unchanged with ok=false.
func Expand(curie string, table map[string]Namespace) (string, bool) {
	prefix, local, found := strings.Cut(curie, ":")
	if !found || strings.HasPrefix(local, "//") {
		return curie, false
	}
	if ns, ok := table[prefix]; ok {
		return string(ns) + local, true
	}
	if ns, ok := prefixes[prefix]; ok {
		return string(ns) + local, true
	}
	return curie, false
}
