package credit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlaceholder is returned when a credit line template, usually a
// translated one, contains a placeholder other than <title>, <attrib> or
// <license>.
var ErrUnknownPlaceholder = errors.New("unknown placeholder in credit line template")

// Source list labels, also used as msgids for translation
const (
	SourceLabel  = "Source:"
	SourcesLabel = "Sources:"
)

// Templates lists every credit line template, the msgids a catalog can
// translate.
var Templates = []string{
	"<title> by <attrib> (<license>).",
	"<title> by <attrib>.",
	"<title> (<license>).",
	"<title>.",
	"Credit: <attrib> (<license>).",
	"Credit: <attrib>.",
	"License: <license>.",
}

// CreditLine selects the template for the fields that are present. It
// returns "" when none are.
func CreditLine(hasTitle, hasAttrib, hasLicense bool) string {
	if hasTitle {
		if hasAttrib {
			if hasLicense {
				return Templates[0]
			}
			return Templates[1]
		}
		if hasLicense {
			return Templates[2]
		}
		return Templates[3]
	}

	if hasAttrib {
		if hasLicense {
			return Templates[4]
		}
		return Templates[5]
	}
	if hasLicense {
		return Templates[6]
	}
	return ""
}

type tokenKind int

const (
	textToken tokenKind = iota
	titleToken
	attribToken
	licenseToken
)

type token struct {
	kind tokenKind
	text string
}

var placeholders = map[string]tokenKind{
	"title":   titleToken,
	"attrib":  attribToken,
	"license": licenseToken,
}

// tokenize splits a template into literal text runs and placeholders. A '<'
// that does not open a <word> placeholder is literal text.
func tokenize(tmpl string) ([]token, error) {
	var tokens []token
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, token{kind: textToken, text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(tmpl); {
		if tmpl[i] == '<' {
			if end := placeholderEnd(tmpl, i+1); end > 0 {
				name := tmpl[i+1 : end]
				kind, ok := placeholders[name]
				if !ok {
					return nil, fmt.Errorf("%w: <%s> in %q", ErrUnknownPlaceholder, name, tmpl)
				}
				flush()
				tokens = append(tokens, token{kind: kind})
				i = end + 1
				continue
			}
		}
		text.WriteByte(tmpl[i])
		i++
	}
	flush()

	return tokens, nil
}

// placeholderEnd returns the index of the '>' closing a run of letters that
// starts at start, or -1.
func placeholderEnd(s string, start int) int {
	i := start
	for i < len(s) && isPlaceholderByte(s[i]) {
		i++
	}
	if i == start || i >= len(s) || s[i] != '>' {
		return -1
	}
	return i
}

func isPlaceholderByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}
