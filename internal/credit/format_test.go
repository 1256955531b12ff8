package credit

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// recorder logs every formatter call as a short string
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Begin()                      { r.add("begin") }
func (r *recorder) End()                        { r.add("end") }
func (r *recorder) BeginSources(label string)   { r.add("sources %s", label) }
func (r *recorder) EndSources()                 { r.add("/sources") }
func (r *recorder) BeginSource()                { r.add("source") }
func (r *recorder) EndSource()                  { r.add("/source") }
func (r *recorder) AddTitle(text, url string)   { r.add("title %s|%s", text, url) }
func (r *recorder) AddAttrib(text, url string)  { r.add("attrib %s|%s", text, url) }
func (r *recorder) AddLicense(text, url string) { r.add("license %s|%s", text, url) }
func (r *recorder) AddText(text string)         { r.add("text %s", text) }

func (r *recorder) String() string {
	return strings.Join(r.calls, "\n")
}

func TestCreditLine(t *testing.T) {
	tests := []struct {
		title, attrib, license bool
		want                   string
	}{
		{true, true, true, "<title> by <attrib> (<license>)."},
		{true, true, false, "<title> by <attrib>."},
		{true, false, true, "<title> (<license>)."},
		{true, false, false, "<title>."},
		{false, true, true, "Credit: <attrib> (<license>)."},
		{false, true, false, "Credit: <attrib>."},
		{false, false, true, "License: <license>."},
		{false, false, false, ""},
	}

	for _, tt := range tests {
		if got := CreditLine(tt.title, tt.attrib, tt.license); got != tt.want {
			t.Errorf("CreditLine(%v, %v, %v) = %q, want %q", tt.title, tt.attrib, tt.license, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tokens, err := tokenize("a <title> b <attrib><license> 1 < 2 <> <x")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []token{
		{kind: textToken, text: "a "},
		{kind: titleToken},
		{kind: textToken, text: " b "},
		{kind: attribToken},
		{kind: licenseToken},
		{kind: textToken, text: " 1 < 2 <> <x"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("Expected %d tokens, got %d: %+v", len(want), len(tokens), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, tokens[i], want[i])
		}
	}
}

func TestTokenize_UnknownPlaceholder(t *testing.T) {
	_, err := tokenize("<title> by <author>.")
	if !errors.Is(err, ErrUnknownPlaceholder) {
		t.Fatalf("Expected ErrUnknownPlaceholder, got %v", err)
	}
	if !strings.Contains(err.Error(), "<author>") {
		t.Errorf("Expected error to name the placeholder, got %q", err.Error())
	}
}

func TestFormat_FullLine(t *testing.T) {
	c := FromRecord(Record{
		TitleText:   "Sunset",
		TitleURL:    "http://example.com/sunset",
		AttribText:  "Alice",
		AttribURL:   "http://example.com/alice",
		LicenseText: "CC BY 4.0 Unported",
		LicenseURL:  "https://creativecommons.org/licenses/by/4.0/",
	})

	r := &recorder{}
	if err := c.Format(r); err != nil {
		t.Fatalf("Format: %v", err)
	}

	want := strings.Join([]string{
		"begin",
		"title Sunset|http://example.com/sunset",
		"text  by ",
		"attrib Alice|http://example.com/alice",
		"text  (",
		"license CC BY 4.0 Unported|https://creativecommons.org/licenses/by/4.0/",
		"text ).",
		"end",
	}, "\n")
	if r.String() != want {
		t.Errorf("Expected calls:\n%s\ngot:\n%s", want, r.String())
	}
}

func TestFormat_EmptyURLsPassedThrough(t *testing.T) {
	c := FromRecord(Record{AttribText: "Alice"})

	r := &recorder{}
	if err := c.Format(r); err != nil {
		t.Fatalf("Format: %v", err)
	}

	want := "begin\ntext Credit: \nattrib Alice|\ntext .\nend"
	if r.String() != want {
		t.Errorf("Expected calls:\n%s\ngot:\n%s", want, r.String())
	}
}

func sourcedCredit() *Credit {
	return FromRecord(Record{
		TitleText: "Collage",
		Sources: []Record{
			{
				TitleText: "Photo A",
				Sources:   []Record{{TitleText: "Negative"}},
			},
			{TitleText: "Photo B"},
		},
	})
}

func TestFormat_SourceDepth(t *testing.T) {
	tests := []struct {
		name string
		opts []FormatOption
		want []string
	}{
		{
			name: "depth zero",
			opts: []FormatOption{WithSourceDepth(0)},
			want: []string{"begin", "title Collage|", "text .", "end"},
		},
		{
			name: "default depth",
			want: []string{
				"begin", "title Collage|", "text .",
				"sources Sources:",
				"source", "title Photo A|", "text .", "/source",
				"source", "title Photo B|", "text .", "/source",
				"/sources",
				"end",
			},
		},
		{
			name: "depth two",
			opts: []FormatOption{WithSourceDepth(2)},
			want: []string{
				"begin", "title Collage|", "text .",
				"sources Sources:",
				"source", "title Photo A|", "text .",
				"sources Source:",
				"source", "title Negative|", "text .", "/source",
				"/sources",
				"/source",
				"source", "title Photo B|", "text .", "/source",
				"/sources",
				"end",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			if err := sourcedCredit().Format(r, tt.opts...); err != nil {
				t.Fatalf("Format: %v", err)
			}
			want := strings.Join(tt.want, "\n")
			if r.String() != want {
				t.Errorf("Expected calls:\n%s\ngot:\n%s", want, r.String())
			}
		})
	}
}

type fakeTranslator struct {
	messages map[string]string
	nCalls   []int
}

func (f *fakeTranslator) Gettext(msgid string) string {
	if s, ok := f.messages[msgid]; ok {
		return s
	}
	return msgid
}

func (f *fakeTranslator) NGettext(singular, plural string, n int) string {
	f.nCalls = append(f.nCalls, n)
	if n == 1 {
		return f.Gettext(singular)
	}
	return f.Gettext(plural)
}

func TestFormat_Translator(t *testing.T) {
	tr := &fakeTranslator{messages: map[string]string{
		"<title>.": "<title> [sv].",
		"Source:":  "Källa:",
		"Sources:": "Källor:",
	}}

	r := &recorder{}
	if err := sourcedCredit().Format(r, WithTranslator(tr), WithSourceDepth(2)); err != nil {
		t.Fatalf("Format: %v", err)
	}

	out := r.String()
	if !strings.Contains(out, "text  [sv].") {
		t.Errorf("Expected translated template, got:\n%s", out)
	}
	if !strings.Contains(out, "sources Källor:") || !strings.Contains(out, "sources Källa:") {
		t.Errorf("Expected translated labels, got:\n%s", out)
	}
	if len(tr.nCalls) != 2 || tr.nCalls[0] != 2 || tr.nCalls[1] != 1 {
		t.Errorf("Expected NGettext counts [2 1], got %v", tr.nCalls)
	}
}

func TestFormat_UnknownPlaceholderAborts(t *testing.T) {
	tr := &fakeTranslator{messages: map[string]string{
		"<title>.": "<titel>.",
	}}

	r := &recorder{}
	err := FromRecord(Record{TitleText: "Sunset"}).Format(r, WithTranslator(tr))
	if !errors.Is(err, ErrUnknownPlaceholder) {
		t.Fatalf("Expected ErrUnknownPlaceholder, got %v", err)
	}
	if r.String() != "begin" {
		t.Errorf("Expected nothing emitted after begin, got:\n%s", r.String())
	}
}

func TestFormat_BaseFormatterIsNoop(t *testing.T) {
	if err := sourcedCredit().Format(BaseFormatter{}, WithSourceDepth(5)); err != nil {
		t.Fatalf("Format: %v", err)
	}
}
