// Package format provides credit.Formatter implementations for plain text,
// HTML, Markdown and styled terminal output.
package format

import (
	"strings"

	"github.com/ppiankov/creditline/internal/credit"
)

// TextFormatter renders a credit as plain text. URLs are dropped and nested
// sources become an indented bullet list.
type TextFormatter struct {
	credit.BaseFormatter
	buf   strings.Builder
	depth int
}

// NewTextFormatter creates a new plain text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// BeginSources appends label after a space and opens a nesting level
func (f *TextFormatter) BeginSources(label string) {
	if label != "" {
		if f.buf.Len() > 0 {
			f.buf.WriteByte(' ')
		}
		f.buf.WriteString(label)
	}
	f.depth++
}

// EndSources closes the current nesting level
func (f *TextFormatter) EndSources() {
	f.depth--
}

// BeginSource starts an indented "* " item on a new line
func (f *TextFormatter) BeginSource() {
	f.buf.WriteByte('\n')
	f.buf.WriteString(strings.Repeat("    ", f.depth))
	f.buf.WriteString("* ")
}

// AddTitle appends the title; url is ignored
func (f *TextFormatter) AddTitle(text, url string) { f.buf.WriteString(text) }

// AddAttrib appends the attribution; url is ignored
func (f *TextFormatter) AddAttrib(text, url string) { f.buf.WriteString(text) }

// AddLicense appends the license name; url is ignored
func (f *TextFormatter) AddLicense(text, url string) { f.buf.WriteString(text) }

// AddText appends literal template text
func (f *TextFormatter) AddText(text string) { f.buf.WriteString(text) }

// String returns the text rendered so far
func (f *TextFormatter) String() string {
	return f.buf.String()
}

var _ credit.Formatter = (*TextFormatter)(nil)
