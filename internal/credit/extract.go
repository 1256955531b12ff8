package credit

import (
	"regexp"

	"github.com/ppiankov/creditline/internal/graph"
	"github.com/ppiankov/creditline/internal/vocab"
)

var flickrRe = regexp.MustCompile(`^https?://(?:www\.)?flickr\.com/`)

// Extractor builds Credits from a graph. Source chains are followed
// recursively; MaxDepth and the cycle guard bound that recursion on graphs
// whose dc:source links loop back.
type Extractor struct {
	maxDepth   int
	cycleGuard bool
}

// Option configures an Extractor
type Option func(*Extractor)

// WithMaxDepth limits how many levels of sources are followed. Zero or a
// negative value means no limit.
func WithMaxDepth(n int) Option {
	return func(e *Extractor) {
		e.maxDepth = n
	}
}

// WithCycleGuard controls whether a source that refers back to a subject
// already on the current extraction path is skipped. Without the guard a
// cyclic graph recurses until MaxDepth is reached, or forever if unlimited.
func WithCycleGuard(enabled bool) Option {
	return func(e *Extractor) {
		e.cycleGuard = enabled
	}
}

// NewExtractor creates an extractor. The cycle guard is on by default and
// depth is unlimited.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{cycleGuard: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = NewExtractor()

// Extract builds a Credit for subject using the default extractor.
// See Extractor.Extract.
func Extract(g graph.Graph, subject graph.Node) *Credit {
	return defaultExtractor.Extract(g, subject)
}

// ExtractURI builds a Credit for the resource named by uri using the
// default extractor.
func ExtractURI(g graph.Graph, uri string) *Credit {
	return defaultExtractor.Extract(g, g.Sym(uri))
}

// ExtractURI builds a Credit for the resource named by uri
func (e *Extractor) ExtractURI(g graph.Graph, uri string) *Credit {
	return e.Extract(g, g.Sym(uri))
}

// Extract builds a Credit for subject. A nil subject is located through
// <> dc:source ?subject, the way copied media records its original. The
// result is nil when the graph holds no usable attribution for the subject.
func (e *Extractor) Extract(g graph.Graph, subject graph.Node) *Credit {
	if subject == nil {
		main, ok := g.Any(g.Sym(""), vocab.DCSource).(graph.Resource)
		if !ok {
			return nil
		}
		subject = main
	}

	return e.extract(g, subject, 0, map[string]bool{})
}

func (e *Extractor) extract(g graph.Graph, subject graph.Node, depth int, path map[string]bool) *Credit {
	key := graph.Key(subject)
	path[key] = true
	defer delete(path, key)

	c := &Credit{}
	subjectURI := graph.URI(subject)

	c.titleText = ResolveText(g, subject, vocab.DCTitle, vocab.OGTitle)
	c.titleURL = ResolveURL(g, subject, vocab.OGURL)
	if c.titleURL == "" && LooksLikeURL(subjectURI) {
		c.titleURL = subjectURI
	}
	if c.titleText == "" {
		c.titleText = c.titleURL
	}

	c.attribText = ResolveText(g, subject,
		vocab.CCAttributionName,
		vocab.DCCreator,
		vocab.DCTermsCreator,
		vocab.TwitterCreator,
	)
	c.attribURL = ResolveURL(g, subject, vocab.CCAttributionURL)

	if c.attribText == "" && flickrRe.MatchString(subjectURI) {
		c.attribText = ResolveText(g, subject, vocab.FlickrPhotographer)
	}
	if c.attribURL == "" && LooksLikeURL(c.attribText) {
		c.attribURL = c.attribText
	}
	if c.attribText == "" {
		c.attribText = c.attribURL
	}

	c.licenseURL = ResolveURL(g, subject, vocab.XHTMLLicense, vocab.DCTermsLicense, vocab.CCLicense)
	if c.licenseURL != "" {
		c.licenseText = ResolveLicenseName(c.licenseURL)
	} else {
		c.licenseText = ResolveText(g, subject, vocab.DCRights, vocab.XHTMLLicense)
	}

	if e.maxDepth <= 0 || depth < e.maxDepth {
		c.sources = e.extractSources(g, subject, depth, path)
	}

	if !c.hasInformation() {
		return nil
	}
	return c
}

func (e *Extractor) extractSources(g graph.Graph, subject graph.Node, depth int, path map[string]bool) []*Credit {
	var sources []*Credit

	objs := g.Each(subject, vocab.DCSource)
	objs = append(objs, g.Each(subject, vocab.DCTermsSource)...)

	for _, obj := range objs {
		var src graph.Node
		switch o := obj.(type) {
		case graph.Resource, graph.BlankNode:
			src = o
		case graph.Literal:
			if !LooksLikeURL(o.Value) {
				continue
			}
			src = g.Sym(o.Value)
		default:
			continue
		}

		if e.cycleGuard && path[graph.Key(src)] {
			continue
		}

		if s := e.extract(g, src, depth+1, path); s != nil {
			sources = append(sources, s)
		}
	}

	return sources
}
