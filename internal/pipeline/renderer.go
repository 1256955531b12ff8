package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/creditline/internal/credit"
	"github.com/ppiankov/creditline/internal/format"
)

// Renderer turns a credit into output in one of the configured formats
type Renderer struct {
	format      string
	sourceDepth int
	translator  credit.Translator
	showURLs    bool
}

// NewRenderer creates a new renderer. translator may be nil.
func NewRenderer(formatName string, sourceDepth int, translator credit.Translator, showURLs bool) *Renderer {
	return &Renderer{
		format:      formatName,
		sourceDepth: sourceDepth,
		translator:  translator,
		showURLs:    showURLs,
	}
}

// Format returns the output format name
func (r *Renderer) Format() string {
	return r.format
}

// Extension returns the file extension for the output format
func (r *Renderer) Extension() string {
	switch r.format {
	case "html":
		return ".html"
	case "markdown":
		return ".md"
	case "json":
		return ".json"
	default:
		return ".txt"
	}
}

// Render renders c
func (r *Renderer) Render(c *credit.Credit) (string, error) {
	opts := []credit.FormatOption{credit.WithSourceDepth(r.sourceDepth)}
	if r.translator != nil {
		opts = append(opts, credit.WithTranslator(r.translator))
	}

	switch r.format {
	case "text":
		f := format.NewTextFormatter()
		if err := c.Format(f, opts...); err != nil {
			return "", err
		}
		return f.String(), nil

	case "terminal":
		f := format.NewTerminalFormatter(r.showURLs)
		if err := c.Format(f, opts...); err != nil {
			return "", err
		}
		return f.String(), nil

	case "html":
		f := format.NewHTMLFormatter()
		if err := c.Format(f, opts...); err != nil {
			return "", err
		}
		return f.String(), nil

	case "markdown":
		f := format.NewMarkdownFormatter()
		if err := c.Format(f, opts...); err != nil {
			return "", err
		}
		return f.Markdown()

	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal credit: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format %q", r.format)
	}
}
