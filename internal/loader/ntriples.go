package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/knakk/rdf"

	"github.com/ppiankov/creditline/internal/graph"
)

// ErrSyntax is wrapped by all N-Triples parse errors
var ErrSyntax = errors.New("syntax error")

// placeholderBase stands in for the document while decoding; relative
// references come back under it and are re-resolved against the real base.
const placeholderBase = "http://creditline.invalid/"

const (
	xsdString     = "http://www.w3.org/2001/XMLSchema#string"
	rdfLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

// NTriplesLoader parses line-based N-Triples
type NTriplesLoader struct{}

// NewNTriplesLoader creates a new N-Triples loader
func NewNTriplesLoader() *NTriplesLoader {
	return &NTriplesLoader{}
}

// Name returns the loader name
func (l *NTriplesLoader) Name() string {
	return "ntriples"
}

// CanHandle matches .nt files and the application/n-triples media type
func (l *NTriplesLoader) CanHandle(path string, contentType string) bool {
	switch mediaType(contentType) {
	case "application/n-triples", "text/plain+ntriples":
		return true
	}
	return hasExt(path, ".nt")
}

// Load parses N-Triples from r. The IRI <> names the document itself and
// other relative IRIs are resolved against base.
//
// Each line is decoded on its own so errors carry the line number. The
// Turtle decoder is used because the N-Triples one rejects relative IRIs.
func (l *NTriplesLoader) Load(r io.Reader, base string) (*graph.Store, error) {
	baseURL, err := parseBase(base)
	if err != nil {
		return nil, err
	}

	nt := &ntConverter{
		g:      graph.NewStore(),
		base:   baseURL,
		blanks: make(map[string]graph.BlankNode),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := nt.decodeLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read n-triples: %w", err)
	}

	return nt.g, nil
}

// ntConverter turns decoded rdf terms into graph nodes
type ntConverter struct {
	g      *graph.Store
	base   *url.URL
	blanks map[string]graph.BlankNode
}

// decodeLine adds the single triple on line. Blank and comment lines are
// skipped.
func (c *ntConverter) decodeLine(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	doc := "@base <" + placeholderBase + "> .\n" + line + "\n"
	dec := rdf.NewTripleDecoder(strings.NewReader(doc), rdf.Turtle)

	t, err := dec.Decode()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: expected a triple", ErrSyntax)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if _, err := dec.Decode(); !errors.Is(err, io.EOF) {
		if err == nil {
			return fmt.Errorf("%w: more than one triple", ErrSyntax)
		}
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	subject, err := c.node(t.Subj)
	if err != nil {
		return err
	}
	pred, ok := t.Pred.(rdf.IRI)
	if !ok {
		return fmt.Errorf("%w: predicate must be an IRI", ErrSyntax)
	}
	object, err := c.node(t.Obj)
	if err != nil {
		return err
	}

	return c.g.Add(subject, graph.Resource{URI: c.iri(pred.String())}, object)
}

func (c *ntConverter) node(term rdf.Term) (graph.Node, error) {
	switch v := term.(type) {
	case rdf.IRI:
		return graph.Resource{URI: c.iri(v.String())}, nil
	case rdf.Blank:
		return c.blank(v.String()), nil
	case rdf.Literal:
		lit := graph.Literal{Value: v.String(), Lang: strings.ToLower(v.Lang())}
		if dt := v.DataType.String(); dt != xsdString && dt != rdfLangString {
			lit.Datatype = c.iri(dt)
		}
		return lit, nil
	}
	return nil, fmt.Errorf("%w: unsupported term %v", ErrSyntax, term)
}

// iri maps references decoded under placeholderBase back to the document
// and the real base.
func (c *ntConverter) iri(s string) string {
	if !strings.HasPrefix(s, placeholderBase) {
		return s
	}
	return resolveIRI(c.base, strings.TrimPrefix(s, placeholderBase))
}

func (c *ntConverter) blank(label string) graph.BlankNode {
	label = strings.TrimPrefix(label, "_:")
	b, ok := c.blanks[label]
	if !ok {
		b = c.g.NewBlankNode()
		c.blanks[label] = b
	}
	return b
}

func parseBase(base string) (*url.URL, error) {
	if base == "" {
		return nil, nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URI %q: %w", base, err)
	}
	return u, nil
}

// resolveIRI resolves ref against base. The empty reference is kept as
// the document IRI.
func resolveIRI(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	return base.ResolveReference(u).String()
}
