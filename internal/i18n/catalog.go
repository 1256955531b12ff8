// Package i18n loads message catalogs that translate credit line templates
// and source labels. Catalogs are YAML or TOML files keyed by the English
// msgid; plural forms follow CLDR cardinal rules for the catalog locale.
package i18n

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Domain is the message domain credit catalogs are written for
const Domain = "creditline"

// domains lists the domain names accepted in catalog files. Catalogs
// written for libcredit use "libcredit" or "attribution text".
var domains = map[string]bool{
	Domain:             true,
	"libcredit":        true,
	"attribution text": true,
}

var (
	// ErrUnknownLocale is returned when no built-in catalog matches a locale
	ErrUnknownLocale = errors.New("no catalog for locale")
	// ErrUnsupportedFormat is returned for catalog files that are neither
	// YAML nor TOML
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// Catalog holds translations for one locale
type Catalog struct {
	Domain   string                       `yaml:"domain" toml:"domain"`
	Locale   string                       `yaml:"locale" toml:"locale"`
	Messages map[string]string            `yaml:"messages" toml:"messages"`
	Plurals  map[string]map[string]string `yaml:"plurals" toml:"plurals"`

	tag language.Tag
}

// Load reads a catalog file. The format is chosen by extension:
// .yaml/.yml or .toml.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	case ".toml":
		format = "toml"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	cat, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes catalog data in the given format ("yaml" or "toml")
func Parse(data []byte, format string) (*Catalog, error) {
	cat := &Catalog{}

	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cat); err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
	case "toml":
		md, err := toml.Decode(string(data), cat)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse catalog: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if cat.Domain == "" {
		cat.Domain = Domain
	}
	if !domains[cat.Domain] {
		return nil, fmt.Errorf("catalog domain %q is not %q", cat.Domain, Domain)
	}

	if cat.Locale == "" {
		return nil, fmt.Errorf("catalog has no locale")
	}
	tag, err := language.Parse(cat.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog locale %q: %w", cat.Locale, err)
	}
	cat.tag = tag

	return cat, nil
}

// Tag returns the catalog's language tag
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Gettext returns the translation of msgid, or msgid itself when the
// catalog has none.
func (c *Catalog) Gettext(msgid string) string {
	if s, ok := c.Messages[msgid]; ok && s != "" {
		return s
	}
	return msgid
}

// NGettext returns the plural form for n. Forms are looked up under the
// singular msgid by CLDR category name (zero, one, two, few, many, other).
// Without a translation the English singular is used for n == 1 and the
// plural otherwise.
func (c *Catalog) NGettext(singular, pluralID string, n int) string {
	if forms, ok := c.Plurals[singular]; ok {
		if s := forms[formName(plural.Cardinal.MatchPlural(c.tag, n, 0, 0, 0, 0))]; s != "" {
			return s
		}
		if s := forms["other"]; s != "" {
			return s
		}
	}

	if n == 1 {
		return singular
	}
	return pluralID
}

func formName(f plural.Form) string {
	switch f {
	case plural.Zero:
		return "zero"
	case plural.One:
		return "one"
	case plural.Two:
		return "two"
	case plural.Few:
		return "few"
	case plural.Many:
		return "many"
	default:
		return "other"
	}
}
