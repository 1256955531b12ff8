package credit

import (
	"testing"

	"github.com/ppiankov/creditline/internal/graph"
	"github.com/ppiankov/creditline/internal/vocab"
)

const workURI = "http://example.com/work"

func lit(v string) graph.Literal    { return graph.Literal{Value: v} }
func res(uri string) graph.Resource { return graph.Resource{URI: uri} }

func TestExtract_TitlePrefersDCOverOG(t *testing.T) {
	g := graph.NewStore()
	subj := g.Sym(workURI)
	mustAdd(t, g, subj, vocab.OGTitle, lit("OG Title"))
	mustAdd(t, g, subj, vocab.DCTitle, lit("DC Title"))

	c := ExtractURI(g, workURI)
	if c == nil {
		t.Fatal("Expected credit, got nil")
	}
	if c.TitleText() != "DC Title" {
		t.Errorf("Expected dc:title to win, got %q", c.TitleText())
	}
}

func TestExtract_TitleFallsBackToOG(t *testing.T) {
	g := graph.NewStore()
	subj := g.Sym(workURI)
	mustAdd(t, g, subj, vocab.OGTitle, lit("OG Title"))
	mustAdd(t, g, subj, vocab.OGURL, lit("https://example.com/canonical"))

	c := ExtractURI(g, workURI)
	if c.TitleText() != "OG Title" {
		t.Errorf("Expected og:title, got %q", c.TitleText())
	}
	if c.TitleURL() != "https://example.com/canonical" {
		t.Errorf("Expected og:url as title URL, got %q", c.TitleURL())
	}
}

func TestExtract_TitleURLFromSubject(t *testing.T) {
	g := graph.NewStore()
	subj := g.Sym(workURI)
	mustAdd(t, g, subj, vocab.DCCreator, lit("Alice"))

	c := ExtractURI(g, workURI)
	if c.TitleURL() != workURI {
		t.Errorf("Expected subject URI as title URL, got %q", c.TitleURL())
	}
	if c.TitleText() != workURI {
		t.Errorf("Expected title URL as title text, got %q", c.TitleText())
	}
}

func TestExtract_NonURLSubjectHasNoTitleURL(t *testing.T) {
	g := graph.NewStore()
	subj := g.Sym("urn:isbn:0451450523")
	mustAdd(t, g, subj, vocab.DCCreator, lit("Alice"))

	c := Extract(g, subj)
	if c.TitleURL() != "" || c.TitleText() != "" {
		t.Errorf("Expected no title, got %q <%q>", c.TitleText(), c.TitleURL())
	}
	if c.AttribText() != "Alice" {
		t.Errorf("Expected attribution, got %q", c.AttribText())
	}
}

func TestExtract_AttributionPriority(t *testing.T) {
	tests := []struct {
		name     string
		triples  map[graph.Resource]graph.Node
		wantText string
		wantURL  string
	}{
		{
			name: "attributionName wins",
			triples: map[graph.Resource]graph.Node{
				vocab.CCAttributionName: lit("CC Name"),
				vocab.DCCreator:         lit("DC Creator"),
				vocab.CCAttributionURL:  res("http://example.com/cc"),
			},
			wantText: "CC Name",
			wantURL:  "http://example.com/cc",
		},
		{
			name: "dc creator before dcterms",
			triples: map[graph.Resource]graph.Node{
				vocab.DCCreator:      lit("DC Creator"),
				vocab.DCTermsCreator: lit("Terms Creator"),
			},
			wantText: "DC Creator",
		},
		{
			name: "twitter creator last",
			triples: map[graph.Resource]graph.Node{
				vocab.TwitterCreator: lit("@alice"),
			},
			wantText: "@alice",
		},
		{
			name: "URL-shaped text promoted to URL",
			triples: map[graph.Resource]graph.Node{
				vocab.DCTermsCreator: res("http://example.com/people/alice"),
			},
			wantText: "http://example.com/people/alice",
			wantURL:  "http://example.com/people/alice",
		},
		{
			name: "URL used as text",
			triples: map[graph.Resource]graph.Node{
				vocab.CCAttributionURL: lit("https://example.com/alice"),
			},
			wantText: "https://example.com/alice",
			wantURL:  "https://example.com/alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.NewStore()
			subj := g.Sym(workURI)
			for p, o := range tt.triples {
				mustAdd(t, g, subj, p, o)
			}

			c := Extract(g, subj)
			if c == nil {
				t.Fatal("Expected credit, got nil")
			}
			if c.AttribText() != tt.wantText {
				t.Errorf("AttribText = %q, want %q", c.AttribText(), tt.wantText)
			}
			if c.AttribURL() != tt.wantURL {
				t.Errorf("AttribURL = %q, want %q", c.AttribURL(), tt.wantURL)
			}
		})
	}
}

func TestExtract_FlickrPhotographer(t *testing.T) {
	g := graph.NewStore()
	photo := g.Sym("https://www.flickr.com/photos/alice/123")
	other := g.Sym("https://example.com/photos/123")
	mustAdd(t, g, photo, vocab.FlickrPhotographer, lit("Alice Photographer"))
	mustAdd(t, g, other, vocab.FlickrPhotographer, lit("Not Used"))

	if c := Extract(g, photo); c.AttribText() != "Alice Photographer" {
		t.Errorf("Expected photographer for flickr subject, got %q", c.AttribText())
	}
	if c := Extract(g, other); c.AttribText() != "" {
		t.Errorf("Expected photographer ignored outside flickr, got %q", c.AttribText())
	}
}

func TestExtract_License(t *testing.T) {
	t.Run("xhtml license URL resolved to name", func(t *testing.T) {
		g := graph.NewStore()
		subj := g.Sym(workURI)
		mustAdd(t, g, subj, vocab.CCLicense, res("https://creativecommons.org/publicdomain/zero/1.0/"))
		mustAdd(t, g, subj, vocab.XHTMLLicense, res("https://creativecommons.org/licenses/by-sa/4.0/"))

		c := Extract(g, subj)
		if c.LicenseURL() != "https://creativecommons.org/licenses/by-sa/4.0/" {
			t.Errorf("Expected xhtml:license first, got %q", c.LicenseURL())
		}
		if c.LicenseText() != "CC BY-SA 4.0 Unported" {
			t.Errorf("Expected canonical name, got %q", c.LicenseText())
		}
	})

	t.Run("dc rights as plain text", func(t *testing.T) {
		g := graph.NewStore()
		subj := g.Sym(workURI)
		mustAdd(t, g, subj, vocab.DCRights, lit("All rights reserved"))

		c := Extract(g, subj)
		if c.LicenseURL() != "" || c.LicenseText() != "All rights reserved" {
			t.Errorf("Expected rights text only, got %q <%q>", c.LicenseText(), c.LicenseURL())
		}
	})

	t.Run("xhtml license literal as text", func(t *testing.T) {
		g := graph.NewStore()
		subj := g.Sym(workURI)
		mustAdd(t, g, subj, vocab.XHTMLLicense, lit("Free for personal use"))

		c := Extract(g, subj)
		if c.LicenseText() != "Free for personal use" {
			t.Errorf("Expected literal license text, got %q", c.LicenseText())
		}
	})
}

func TestExtract_Sources(t *testing.T) {
	g := graph.NewStore()
	subj := g.Sym(workURI)
	blank := g.NewBlankNode()

	mustAdd(t, g, subj, vocab.DCTitle, lit("Derived"))
	mustAdd(t, g, subj, vocab.DCTermsSource, res("http://example.com/terms-source"))
	mustAdd(t, g, subj, vocab.DCSource, res("http://example.com/a"))
	mustAdd(t, g, subj, vocab.DCSource, lit("not a url"))
	mustAdd(t, g, subj, vocab.DCSource, lit("http://example.com/b"))
	mustAdd(t, g, subj, vocab.DCSource, blank)
	mustAdd(t, g, subj, vocab.DCSource, blank)

	mustAdd(t, g, res("http://example.com/a"), vocab.DCTitle, lit("Source A"))
	mustAdd(t, g, res("http://example.com/b"), vocab.DCTitle, lit("Source B"))
	mustAdd(t, g, blank, vocab.DCCreator, lit("Anonymous"))

	c := Extract(g, subj)
	sources := c.Sources()

	// dcterms:source objects follow dc:source ones
	want := []string{"Source A", "Source B", "", "http://example.com/terms-source"}
	if len(sources) != len(want) {
		t.Fatalf("Expected %d sources, got %d", len(want), len(sources))
	}
	for i, s := range sources {
		if s.TitleText() != want[i] {
			t.Errorf("source %d: TitleText = %q, want %q", i, s.TitleText(), want[i])
		}
	}
	if sources[2].AttribText() != "Anonymous" {
		t.Errorf("Expected blank node source attribution, got %q", sources[2].AttribText())
	}
}

func TestExtract_SourceWithoutInformationDropped(t *testing.T) {
	g := graph.NewStore()
	subj := g.Sym(workURI)
	mustAdd(t, g, subj, vocab.DCTitle, lit("Work"))
	mustAdd(t, g, subj, vocab.DCSource, g.NewBlankNode())

	c := Extract(g, subj)
	if len(c.Sources()) != 0 {
		t.Errorf("Expected empty blank node source to be dropped, got %d", len(c.Sources()))
	}
}

func TestExtract_LocatesSubjectThroughDocument(t *testing.T) {
	g := graph.NewStore()
	mustAdd(t, g, g.Sym(""), vocab.DCSource, res(workURI))
	mustAdd(t, g, res(workURI), vocab.DCTitle, lit("Copied Work"))

	c := Extract(g, nil)
	if c == nil || c.TitleText() != "Copied Work" {
		t.Fatalf("Expected credit for document source, got %+v", c)
	}
}

func TestExtract_NoDocumentSource(t *testing.T) {
	g := graph.NewStore()
	if c := Extract(g, nil); c != nil {
		t.Errorf("Expected nil without document source, got %+v", c.Record())
	}

	g2 := graph.NewStore()
	mustAdd(t, g2, g2.Sym(""), vocab.DCSource, lit("http://example.com/literal"))
	if c := Extract(g2, nil); c != nil {
		t.Errorf("Expected nil for literal document source, got %+v", c.Record())
	}
}

func TestExtract_NoInformation(t *testing.T) {
	g := graph.NewStore()
	subj := g.Sym("urn:nothing")
	mustAdd(t, g, subj, vocab.RDFType, res("http://example.com/Thing"))

	if c := Extract(g, subj); c != nil {
		t.Errorf("Expected nil, got %+v", c.Record())
	}
}

func TestExtract_Idempotent(t *testing.T) {
	g := graph.NewStore()
	subj := g.Sym(workURI)
	mustAdd(t, g, subj, vocab.DCTitle, lit("Work"))
	mustAdd(t, g, subj, vocab.CCAttributionName, lit("Alice"))
	mustAdd(t, g, subj, vocab.CCLicense, res("https://creativecommons.org/licenses/by/4.0/"))
	mustAdd(t, g, subj, vocab.DCSource, res("http://example.com/src"))
	mustAdd(t, g, res("http://example.com/src"), vocab.DCTitle, lit("Src"))

	first := Extract(g, subj)
	second := Extract(g, subj)

	if first == second {
		t.Fatal("Expected distinct credit values")
	}
	if !first.Equal(second) {
		t.Errorf("Expected equal credits:\n%+v\n%+v", first.Record(), second.Record())
	}
}

func cyclicGraph(t *testing.T) *graph.Store {
	g := graph.NewStore()
	a, b := res("http://example.com/a"), res("http://example.com/b")
	mustAdd(t, g, a, vocab.DCTitle, lit("A"))
	mustAdd(t, g, b, vocab.DCTitle, lit("B"))
	mustAdd(t, g, a, vocab.DCSource, b)
	mustAdd(t, g, b, vocab.DCSource, a)
	return g
}

func TestExtractor_CycleGuard(t *testing.T) {
	g := cyclicGraph(t)

	c := NewExtractor().ExtractURI(g, "http://example.com/a")
	if c == nil {
		t.Fatal("Expected credit")
	}
	if len(c.Sources()) != 1 {
		t.Fatalf("Expected 1 source, got %d", len(c.Sources()))
	}
	b := c.Sources()[0]
	if b.TitleText() != "B" {
		t.Errorf("Expected source B, got %q", b.TitleText())
	}
	if len(b.Sources()) != 0 {
		t.Errorf("Expected cycle back to A to be cut, got %d sources", len(b.Sources()))
	}
}

func TestExtractor_MaxDepth(t *testing.T) {
	g := cyclicGraph(t)

	e := NewExtractor(WithCycleGuard(false), WithMaxDepth(3))
	c := e.ExtractURI(g, "http://example.com/a")

	depth := 0
	for cur := c; len(cur.Sources()) > 0; cur = cur.Sources()[0] {
		depth++
	}
	if depth != 3 {
		t.Errorf("Expected source chain of depth 3, got %d", depth)
	}
}

func TestExtractor_SharedSourceNotACycle(t *testing.T) {
	g := graph.NewStore()
	root := res("http://example.com/root")
	x, y := res("http://example.com/x"), res("http://example.com/y")
	shared := res("http://example.com/shared")
	mustAdd(t, g, root, vocab.DCSource, x)
	mustAdd(t, g, root, vocab.DCSource, y)
	mustAdd(t, g, x, vocab.DCSource, shared)
	mustAdd(t, g, y, vocab.DCSource, shared)
	mustAdd(t, g, shared, vocab.DCTitle, lit("Shared"))

	c := NewExtractor().Extract(g, root)
	if len(c.Sources()) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(c.Sources()))
	}
	for i, s := range c.Sources() {
		if len(s.Sources()) != 1 || s.Sources()[0].TitleText() != "Shared" {
			t.Errorf("source %d: expected shared grandchild", i)
		}
	}
}
