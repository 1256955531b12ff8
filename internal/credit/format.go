package credit

// DefaultSourceDepth is the number of source levels rendered when no
// depth is given.
const DefaultSourceDepth = 1

// Translator localizes credit line templates and source labels. msgids are
// the English strings in Templates, SourceLabel and SourcesLabel.
type Translator interface {
	Gettext(msgid string) string
	NGettext(singular, plural string, n int) string
}

type formatOptions struct {
	sourceDepth int
	translator  Translator
}

// FormatOption configures Credit.Format
type FormatOption func(*formatOptions)

// WithSourceDepth sets how many levels of sources are rendered. Zero or a
// negative depth renders the main credit line only.
func WithSourceDepth(n int) FormatOption {
	return func(o *formatOptions) {
		o.sourceDepth = n
	}
}

// WithTranslator localizes the credit line and the source labels
func WithTranslator(t Translator) FormatOption {
	return func(o *formatOptions) {
		o.translator = t
	}
}

// Format drives f through the credit line of c and, up to the requested
// depth, its sources. If a template contains an unknown placeholder the
// render stops and ErrUnknownPlaceholder is returned; End is not called.
func (c *Credit) Format(f Formatter, opts ...FormatOption) error {
	o := formatOptions{sourceDepth: DefaultSourceDepth}
	for _, opt := range opts {
		opt(&o)
	}

	f.Begin()
	if err := c.format(f, o.sourceDepth, o.translator); err != nil {
		return err
	}
	f.End()

	return nil
}

func (c *Credit) format(f Formatter, depth int, tr Translator) error {
	line := CreditLine(c.titleText != "", c.attribText != "", c.licenseText != "")
	if line != "" {
		if tr != nil {
			line = tr.Gettext(line)
		}

		tokens, err := tokenize(line)
		if err != nil {
			return err
		}

		for _, tok := range tokens {
			switch tok.kind {
			case titleToken:
				f.AddTitle(c.titleText, c.titleURL)
			case attribToken:
				f.AddAttrib(c.attribText, c.attribURL)
			case licenseToken:
				f.AddLicense(c.licenseText, c.licenseURL)
			default:
				f.AddText(tok.text)
			}
		}
	}

	if depth <= 0 || len(c.sources) == 0 {
		return nil
	}

	f.BeginSources(sourcesLabel(len(c.sources), tr))
	for _, s := range c.sources {
		f.BeginSource()
		if err := s.format(f, depth-1, tr); err != nil {
			return err
		}
		f.EndSource()
	}
	f.EndSources()

	return nil
}

func sourcesLabel(n int, tr Translator) string {
	if tr != nil {
		return tr.NGettext(SourceLabel, SourcesLabel, n)
	}
	if n == 1 {
		return SourceLabel
	}
	return SourcesLabel
}
