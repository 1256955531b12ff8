package format

import (
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// linkRule writes anchors inline, without the space the default rule puts
// between "(" and the link.
var linkRule = md.Rule{
	Filter: []string{"a"},
	Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
		href, ok := selec.Attr("href")
		if !ok || href == "" {
			return md.String(content)
		}
		return md.String("[" + content + "](" + href + ")")
	},
}

// MarkdownFormatter renders a credit as Markdown by building the HTML
// fragment and converting it.
type MarkdownFormatter struct {
	*HTMLFormatter
	converter *md.Converter
}

// NewMarkdownFormatter creates a new Markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	converter := md.NewConverter("", true, nil)
	converter.AddRules(linkRule)
	return &MarkdownFormatter{
		HTMLFormatter: NewHTMLFormatter(),
		converter:     converter,
	}
}

// Markdown converts the rendered fragment
func (f *MarkdownFormatter) Markdown() (string, error) {
	out, err := f.converter.ConvertString(f.HTMLFormatter.String())
	if err != nil {
		return "", fmt.Errorf("failed to convert to markdown: %w", err)
	}
	return out, nil
}

// String returns the Markdown rendering, or "" if conversion fails
func (f *MarkdownFormatter) String() string {
	out, err := f.Markdown()
	if err != nil {
		return ""
	}
	return out
}
