package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/creditline/internal/credit"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrUnbalanced is the panic value when an End call has no matching Begin
var ErrUnbalanced = errors.New("unbalanced formatter calls")

// HTMLFormatter builds an HTML fragment rooted at a <p> element. Sources
// become nested <ul>/<li> lists and fields with a URL become links.
type HTMLFormatter struct {
	credit.BaseFormatter
	root  *html.Node
	stack []*html.Node
}

// NewHTMLFormatter creates a new HTML formatter with an empty <p> root
func NewHTMLFormatter() *HTMLFormatter {
	root := newElement(atom.P)
	return &HTMLFormatter{
		root:  root,
		stack: []*html.Node{root},
	}
}

// Root returns the root <p> element
func (f *HTMLFormatter) Root() *html.Node {
	return f.root
}

// BeginSources appends " "+label to the current element and opens a <ul>
func (f *HTMLFormatter) BeginSources(label string) {
	if label != "" {
		f.AddText(" " + label)
	}
	f.push(newElement(atom.Ul))
}

// EndSources closes the open <ul>. It panics with ErrUnbalanced otherwise.
func (f *HTMLFormatter) EndSources() { f.pop(atom.Ul) }

// BeginSource opens an <li>
func (f *HTMLFormatter) BeginSource() { f.push(newElement(atom.Li)) }

// EndSource closes the open <li>. It panics with ErrUnbalanced otherwise.
func (f *HTMLFormatter) EndSource() { f.pop(atom.Li) }

// AddTitle appends the title, as a link when url is set
func (f *HTMLFormatter) AddTitle(text, url string) { f.addLink(text, url) }

// AddAttrib appends the attribution, as a link when url is set
func (f *HTMLFormatter) AddAttrib(text, url string) { f.addLink(text, url) }

// AddLicense appends the license name, as a link when url is set
func (f *HTMLFormatter) AddLicense(text, url string) { f.addLink(text, url) }

// AddText appends a text node to the current element
func (f *HTMLFormatter) AddText(text string) {
	f.current().AppendChild(newText(text))
}

// String renders the fragment as HTML
func (f *HTMLFormatter) String() string {
	var buf strings.Builder
	if err := html.Render(&buf, f.root); err != nil {
		return ""
	}
	return buf.String()
}

func (f *HTMLFormatter) addLink(text, url string) {
	if url == "" {
		f.AddText(text)
		return
	}

	a := newElement(atom.A)
	a.Attr = append(a.Attr, html.Attribute{Key: "href", Val: url})
	a.AppendChild(newText(text))
	f.current().AppendChild(a)
}

func (f *HTMLFormatter) current() *html.Node {
	return f.stack[len(f.stack)-1]
}

func (f *HTMLFormatter) push(n *html.Node) {
	f.current().AppendChild(n)
	f.stack = append(f.stack, n)
}

func (f *HTMLFormatter) pop(want atom.Atom) {
	if len(f.stack) <= 1 {
		panic(ErrUnbalanced)
	}
	if top := f.current(); top.DataAtom != want {
		panic(fmt.Errorf("%w: closing <%s> with <%s> open", ErrUnbalanced, want, top.DataAtom))
	}
	f.stack = f.stack[:len(f.stack)-1]
}

func newElement(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func newText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

var _ credit.Formatter = (*HTMLFormatter)(nil)
