package credit

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	ccLicenseRe     = regexp.MustCompile(`^https?://(?:www\.)?creativecommons\.org/licenses/([-a-zA-Z]+)/([0-9.]+)(?:/([a-zA-Z][-a-zA-Z]*)(?:/|$))?`)
	ccPublicRe      = regexp.MustCompile(`^https?://(?:www\.)?creativecommons\.org/publicdomain/([a-z]+)/([0-9.]+)`)
	freeArtRe       = regexp.MustCompile(`^https?://(?:www\.)?artlibre\.org/licence/lal(?:/([-a-zA-Z0-9]+))?`)
	notJurisdiction = map[string]bool{"legalcode": true, "deed": true}
)

// ResolveLicenseName maps a license URL to a short display name. URLs that
// are not recognized are returned unchanged.
func ResolveLicenseName(url string) string {
	if m := ccLicenseRe.FindStringSubmatch(url); m != nil {
		name := fmt.Sprintf("CC %s %s", strings.ToUpper(m[1]), m[2])
		if m[3] != "" && !notJurisdiction[strings.ToLower(m[3])] {
			return name + " (" + strings.ToUpper(m[3]) + ")"
		}
		return name + " Unported"
	}

	if m := ccPublicRe.FindStringSubmatch(url); m != nil {
		switch m[1] {
		case "zero":
			return "CC0 " + m[2]
		case "mark":
			return "public domain"
		}
		return url
	}

	if m := freeArtRe.FindStringSubmatch(url); m != nil {
		if m[1] == "licence-art-libre-12" {
			return "Free Art License 1.2"
		}
		return "Free Art License 1.3"
	}

	return url
}
