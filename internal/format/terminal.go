package format

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleAttrib  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleLicense = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleLink    = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Underline(true)
)

// TerminalFormatter renders the plain text layout with colors. URLs are
// shown after their field in link style.
type TerminalFormatter struct {
	TextFormatter
	showURLs bool
}

// NewTerminalFormatter creates a terminal formatter. When showURLs is set
// each linked field is followed by its URL.
func NewTerminalFormatter(showURLs bool) *TerminalFormatter {
	return &TerminalFormatter{showURLs: showURLs}
}

// BeginSources writes the styled label and opens a nesting level
func (f *TerminalFormatter) BeginSources(label string) {
	f.TextFormatter.BeginSources(styleLabel.Render(label))
}

// AddTitle writes the styled title
func (f *TerminalFormatter) AddTitle(text, url string) {
	f.addStyled(styleTitle, text, url)
}

// AddAttrib writes the styled attribution
func (f *TerminalFormatter) AddAttrib(text, url string) {
	f.addStyled(styleAttrib, text, url)
}

// AddLicense writes the styled license name
func (f *TerminalFormatter) AddLicense(text, url string) {
	f.addStyled(styleLicense, text, url)
}

func (f *TerminalFormatter) addStyled(style lipgloss.Style, text, url string) {
	f.buf.WriteString(style.Render(text))
	if f.showURLs && url != "" && url != text {
		f.buf.WriteString(" <" + styleLink.Render(url) + ">")
	}
}
