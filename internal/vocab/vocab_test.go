package vocab

import "testing"

func TestExpand(t *testing.T) {
	custom := map[string]Namespace{"ex": "http://example.com/ns#"}

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"dc:title", "http://purl.org/dc/elements/1.1/title", true},
		{"cc:attributionName", "http://creativecommons.org/ns#attributionName", true},
		{"ex:thing", "http://example.com/ns#thing", true},
		{"http://example.com/x", "http://example.com/x", false},
		{"unknown:term", "unknown:term", false},
		{"license", "license", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Expand(tt.in, custom)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Expand(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPrefixesReturnsCopy(t *testing.T) {
	p := Prefixes()
	p["dc"] = "http://changed/"

	ns, ok := Lookup("dc")
	if !ok || ns != DC {
		t.Errorf("Expected default table to be unchanged, got %q", ns)
	}
}

func TestTerms(t *testing.T) {
	if DCTitle.URI != "http://purl.org/dc/elements/1.1/title" {
		t.Errorf("Unexpected dc:title IRI %q", DCTitle.URI)
	}
	if XHTMLLicense.URI != "http://www.w3.org/1999/xhtml/vocab#license" {
		t.Errorf("Unexpected xhtml:license IRI %q", XHTMLLicense.URI)
	}
}
