package loader

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/ppiankov/creditline/internal/graph"
	"github.com/ppiankov/creditline/internal/vocab"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlTerms are the bare rel/property terms of the HTML initial context
var htmlTerms = map[string]bool{
	"license":     true,
	"alternate":   true,
	"describedby": true,
	"role":        true,
}

// RDFaLoader extracts RDFa 1.1 statements from HTML. Only the attributes
// needed for attribution metadata are processed: about, resource, href,
// src, typeof, property, rel, content, datatype, vocab, prefix and lang.
// Literal text content is whitespace-trimmed.
type RDFaLoader struct{}

// NewRDFaLoader creates a new RDFa loader
func NewRDFaLoader() *RDFaLoader {
	return &RDFaLoader{}
}

// Name returns the loader name
func (l *RDFaLoader) Name() string {
	return "rdfa"
}

// CanHandle matches HTML and XHTML files and media types
func (l *RDFaLoader) CanHandle(path string, contentType string) bool {
	switch mediaType(contentType) {
	case "text/html", "application/xhtml+xml":
		return true
	}
	return hasExt(path, ".html", ".htm", ".xhtml")
}

// Load parses HTML from r and returns the RDFa statements it carries. The
// page itself is the empty-URI resource.
func (l *RDFaLoader) Load(r io.Reader, base string) (*graph.Store, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	baseURL, err := parseBase(base)
	if err != nil {
		return nil, err
	}
	if href := findBaseHref(doc); href != "" {
		if u, err := url.Parse(href); err == nil {
			if baseURL != nil {
				u = baseURL.ResolveReference(u)
			}
			baseURL = u
		}
	}

	g := graph.NewStore()
	p := &rdfaParser{g: g, base: baseURL, blanks: make(map[string]graph.BlankNode)}
	document := graph.Resource{URI: ""}

	root := &evalContext{
		parentSubject: document,
		parentObject:  document,
		prefixes:      vocab.Prefixes(),
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := p.walk(c, root); err != nil {
			return nil, err
		}
	}

	return g, nil
}

type evalContext struct {
	parentSubject graph.Node
	parentObject  graph.Node
	incomplete    []graph.Resource
	prefixes      map[string]vocab.Namespace
	vocab         string
	lang          string
}

type rdfaParser struct {
	g      *graph.Store
	base   *url.URL
	blanks map[string]graph.BlankNode
}

func (p *rdfaParser) walk(n *html.Node, ctx *evalContext) error {
	if n.Type != html.ElementNode {
		return nil
	}

	attrs := attrMap(n)
	local := *ctx
	if v, ok := attrs["vocab"]; ok {
		local.vocab = v
	}
	if v, ok := attrs["prefix"]; ok {
		local.prefixes = parsePrefixAttr(v, ctx.prefixes)
	}
	if v, ok := attrs["lang"]; ok {
		local.lang = v
	} else if v, ok := attrs["xml:lang"]; ok {
		local.lang = v
	}

	rels := p.terms(attrs["rel"], &local)
	props := p.terms(attrs["property"], &local)
	types := p.terms(attrs["typeof"], &local)

	about, hasAbout := p.resourceAttr(attrs, "about", &local)
	resource, hasResource := p.objectAttr(attrs, &local)
	_, hasTypeof := attrs["typeof"]
	_, hasProperty := attrs["property"]

	var newSubject, currentObject, typed graph.Node
	skip := false

	if _, hasRel := attrs["rel"]; !hasRel {
		if hasProperty {
			switch {
			case hasAbout:
				newSubject = about
			default:
				newSubject = ctx.parentObject
			}
			if hasTypeof {
				switch {
				case hasAbout:
					typed = about
				case hasResource:
					typed = resource
				default:
					typed = p.g.NewBlankNode()
				}
				if !hasAbout {
					currentObject = typed
				}
			}
		} else {
			switch {
			case hasAbout:
				newSubject = about
			case hasResource:
				newSubject = resource
			case hasTypeof:
				newSubject = p.g.NewBlankNode()
			default:
				newSubject = ctx.parentObject
				skip = true
			}
			typed = newSubject
		}
	} else {
		if hasAbout {
			newSubject = about
			typed = about
		} else {
			newSubject = ctx.parentObject
		}
		switch {
		case hasResource:
			currentObject = resource
		case hasTypeof && !hasAbout:
			currentObject = p.g.NewBlankNode()
		}
		if !hasAbout && hasTypeof {
			typed = currentObject
		}
	}

	if typed != nil {
		for _, t := range types {
			if err := p.g.Add(typed, vocab.RDFType, t); err != nil {
				return err
			}
		}
	}

	if !skip && newSubject != nil {
		for _, pred := range ctx.incomplete {
			if err := p.g.Add(ctx.parentSubject, pred, newSubject); err != nil {
				return err
			}
		}
	}

	var incomplete []graph.Resource
	if len(rels) > 0 {
		if currentObject != nil {
			for _, rel := range rels {
				if err := p.g.Add(newSubject, rel, currentObject); err != nil {
					return err
				}
			}
		} else {
			incomplete = rels
			currentObject = p.g.NewBlankNode()
		}
	}

	if len(props) > 0 {
		value := p.propertyValue(n, attrs, &local, hasResource && len(rels) == 0, resource, typed, hasAbout)
		for _, prop := range props {
			if err := p.g.Add(newSubject, prop, value); err != nil {
				return err
			}
		}
	}

	child := local
	if skip {
		child.parentSubject = ctx.parentSubject
		child.parentObject = ctx.parentObject
		child.incomplete = ctx.incomplete
	} else {
		child.parentSubject = newSubject
		child.parentObject = newSubject
		if currentObject != nil {
			child.parentObject = currentObject
		}
		child.incomplete = incomplete
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := p.walk(c, &child); err != nil {
			return err
		}
	}
	return nil
}

func (p *rdfaParser) propertyValue(n *html.Node, attrs map[string]string, ctx *evalContext,
	useResource bool, resource, typed graph.Node, hasAbout bool) graph.Node {

	datatype := ""
	if dt, ok := attrs["datatype"]; ok && dt != "" {
		if iri, ok := p.expandTerm(dt, ctx); ok {
			datatype = iri.URI
		}
	}

	if content, ok := attrs["content"]; ok {
		return literal(content, ctx.lang, datatype)
	}
	if datatype != "" {
		return literal(textContent(n), "", datatype)
	}
	if useResource {
		return resource
	}
	if typed != nil && !hasAbout {
		return typed
	}
	return literal(textContent(n), ctx.lang, "")
}

func literal(value, lang, datatype string) graph.Literal {
	if datatype != "" {
		return graph.Literal{Value: value, Datatype: datatype}
	}
	return graph.Literal{Value: value, Lang: strings.ToLower(lang)}
}

// terms expands a space separated list of TERMorCURIEorAbsIRI values.
// Unresolvable values are dropped.
func (p *rdfaParser) terms(value string, ctx *evalContext) []graph.Resource {
	var out []graph.Resource
	for _, f := range strings.Fields(value) {
		if r, ok := p.expandTerm(f, ctx); ok {
			out = append(out, r)
		}
	}
	return out
}

func (p *rdfaParser) expandTerm(value string, ctx *evalContext) (graph.Resource, bool) {
	if !strings.Contains(value, ":") {
		switch {
		case ctx.vocab != "":
			return graph.Resource{URI: ctx.vocab + value}, true
		case htmlTerms[strings.ToLower(value)]:
			return vocab.XHTML.Term(strings.ToLower(value)), true
		}
		return graph.Resource{}, false
	}

	if iri, ok := vocab.Expand(value, ctx.prefixes); ok {
		return graph.Resource{URI: iri}, true
	}
	if u, err := url.Parse(value); err == nil && u.IsAbs() {
		return graph.Resource{URI: value}, true
	}
	return graph.Resource{}, false
}

// resourceAttr reads a SafeCURIEorCURIEorIRI attribute
func (p *rdfaParser) resourceAttr(attrs map[string]string, name string, ctx *evalContext) (graph.Node, bool) {
	v, ok := attrs[name]
	if !ok {
		return nil, false
	}
	v = strings.TrimSpace(v)

	safe := strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]")
	if safe {
		v = v[1 : len(v)-1]
	}

	if label, ok := strings.CutPrefix(v, "_:"); ok {
		return p.blank(label), true
	}
	if iri, ok := vocab.Expand(v, ctx.prefixes); ok {
		return graph.Resource{URI: iri}, true
	}
	if safe {
		return nil, false
	}

	return graph.Resource{URI: resolveIRI(p.base, v)}, true
}

// objectAttr reads the first of resource, href and src
func (p *rdfaParser) objectAttr(attrs map[string]string, ctx *evalContext) (graph.Node, bool) {
	if r, ok := p.resourceAttr(attrs, "resource", ctx); ok {
		return r, true
	}
	for _, name := range []string{"href", "src"} {
		if v, ok := attrs[name]; ok {
			return graph.Resource{URI: resolveIRI(p.base, strings.TrimSpace(v))}, true
		}
	}
	return nil, false
}

func (p *rdfaParser) blank(label string) graph.BlankNode {
	b, ok := p.blanks[label]
	if !ok {
		b = p.g.NewBlankNode()
		p.blanks[label] = b
	}
	return b
}

func attrMap(n *html.Node) map[string]string {
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if a.Namespace != "" {
			key = a.Namespace + ":" + key
		}
		m[key] = a.Val
	}
	return m
}

// parsePrefixAttr extends table with "p1: iri1 p2: iri2" mappings
func parsePrefixAttr(value string, table map[string]vocab.Namespace) map[string]vocab.Namespace {
	out := make(map[string]vocab.Namespace, len(table))
	for k, v := range table {
		out[k] = v
	}

	fields := strings.Fields(value)
	for i := 0; i+1 < len(fields); i += 2 {
		prefix, ok := strings.CutSuffix(fields[i], ":")
		if !ok {
			i--
			continue
		}
		out[strings.ToLower(prefix)] = vocab.Namespace(fields[i+1])
	}
	return out
}

func findBaseHref(doc *html.Node) string {
	var href string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Base {
			for _, a := range n.Attr {
				if a.Key == "href" {
					href = a.Val
					return true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)
	return href
}

// textContent concatenates the text below n
func textContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}
