package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.yaml
var locales embed.FS

// Builtin returns the embedded catalog best matching locale, for example
// "sv", "sv_SE.UTF-8" or "de-AT".
func Builtin(locale string) (*Catalog, error) {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	base, _ := tag.Base()

	data, err := locales.ReadFile(path.Join("locales", base.String()+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}

	return Parse(data, "yaml")
}

// Available lists the locales of the embedded catalogs
func Available() []string {
	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// normalizeLocale turns POSIX locale names like sv_SE.UTF-8 into BCP 47
func normalizeLocale(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	return strings.ReplaceAll(locale, "_", "-")
}
