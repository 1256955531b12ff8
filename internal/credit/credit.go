// Package credit turns attribution metadata in a linked-data graph into a
// Credit record and renders credit lines such as
// "Title by Author (CC BY-SA 4.0 Unported)." through a Formatter.
//
// A Credit is created once by Extract and is read-only afterwards. Its
// sources are themselves Credits for the works it was derived from.
package credit

import "encoding/json"

// Credit is the resolved attribution for one subject. The zero-length
// string means a field is absent.
type Credit struct {
	titleText   string
	titleURL    string
	attribText  string
	attribURL   string
	licenseText string
	licenseURL  string
	sources     []*Credit
}

// Record is the serializable form of a Credit
type Record struct {
	TitleText   string   `json:"title_text,omitempty"`
	TitleURL    string   `json:"title_url,omitempty"`
	AttribText  string   `json:"attrib_text,omitempty"`
	AttribURL   string   `json:"attrib_url,omitempty"`
	LicenseText string   `json:"license_text,omitempty"`
	LicenseURL  string   `json:"license_url,omitempty"`
	Sources     []Record `json:"sources,omitempty"`
}

// FromRecord builds a Credit from r. Sources that carry no information are
// dropped, and nil is returned when r itself carries none.
func FromRecord(r Record) *Credit {
	c := &Credit{
		titleText:   r.TitleText,
		titleURL:    r.TitleURL,
		attribText:  r.AttribText,
		attribURL:   r.AttribURL,
		licenseText: r.LicenseText,
		licenseURL:  r.LicenseURL,
	}
	for _, sr := range r.Sources {
		if s := FromRecord(sr); s != nil {
			c.sources = append(c.sources, s)
		}
	}
	if !c.hasInformation() {
		return nil
	}
	return c
}

// Record returns the serializable form of c
func (c *Credit) Record() Record {
	r := Record{
		TitleText:   c.titleText,
		TitleURL:    c.titleURL,
		AttribText:  c.attribText,
		AttribURL:   c.attribURL,
		LicenseText: c.licenseText,
		LicenseURL:  c.licenseURL,
	}
	for _, s := range c.sources {
		r.Sources = append(r.Sources, s.Record())
	}
	return r
}

// MarshalJSON implements json.Marshaler
func (c *Credit) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Record())
}

// TitleText returns the work's title, or "" if unknown
func (c *Credit) TitleText() string { return c.titleText }

// TitleURL returns the link for the title
func (c *Credit) TitleURL() string { return c.titleURL }

// AttribText returns the name of the author to credit
func (c *Credit) AttribText() string { return c.attribText }

// AttribURL returns the link for the author
func (c *Credit) AttribURL() string { return c.attribURL }

// LicenseText returns the short license name
func (c *Credit) LicenseText() string { return c.licenseText }

// LicenseURL returns the license URL
func (c *Credit) LicenseURL() string { return c.licenseURL }

// Sources returns a copy of the source list
func (c *Credit) Sources() []*Credit {
	if len(c.sources) == 0 {
		return nil
	}
	out := make([]*Credit, len(c.sources))
	copy(out, c.sources)
	return out
}

// Equal reports whether c and o hold the same fields and equal sources
func (c *Credit) Equal(o *Credit) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.titleText != o.titleText || c.titleURL != o.titleURL ||
		c.attribText != o.attribText || c.attribURL != o.attribURL ||
		c.licenseText != o.licenseText || c.licenseURL != o.licenseURL {
		return false
	}
	if len(c.sources) != len(o.sources) {
		return false
	}
	for i := range c.sources {
		if !c.sources[i].Equal(o.sources[i]) {
			return false
		}
	}
	return true
}

func (c *Credit) hasInformation() bool {
	return c.titleText != "" || c.attribText != "" || c.licenseText != "" || len(c.sources) > 0
}
