package bibtex

import (
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/affilnet/format"
)

const sample = `
@article{smith2020,
  author      = {Alice Smith and Bob Jones},
  title       = {Co-affiliation at Scale},
  affiliation = {MIT, Stanford},
  year        = {2020}
}

@Article{white2021,
  Author = {Carol White and
            Dan Brown},
  DOI    = {10.1234/white.2021},
  title  = {Another Paper}
}

@book{lonely2019,
  title = {No Authors Here}
}
`

func TestParse(t *testing.T) {
	f := &Format{}
	entries, err := f.Parse(strings.NewReader(sample), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entry count = %d, want 3", len(entries))
	}

	first := entries[0]
	if first.CitationKey != "smith2020" {
		t.Errorf("CitationKey = %q, want smith2020", first.CitationKey)
	}
	if first.EntryType != "article" {
		t.Errorf("EntryType = %q, want article", first.EntryType)
	}
	if first.Authors != "Alice Smith and Bob Jones" {
		t.Errorf("Authors = %q", first.Authors)
	}
	if first.Affiliation != "MIT, Stanford" {
		t.Errorf("Affiliation = %q", first.Affiliation)
	}
	if first.HasDOI() {
		t.Errorf("unexpected DOI %q", first.DOI)
	}

	second := entries[1]
	if second.EntryType != "article" {
		t.Errorf("EntryType = %q, want article", second.EntryType)
	}
	if second.DOI != "10.1234/white.2021" {
		t.Errorf("DOI = %q, want 10.1234/white.2021", second.DOI)
	}
	if second.Authors != "Carol White and Dan Brown" {
		t.Errorf("Authors = %q, want line break collapsed", second.Authors)
	}

	if entries[2].Authors != "" {
		t.Errorf("Authors = %q, want empty", entries[2].Authors)
	}
}

func TestParseInvalid(t *testing.T) {
	f := &Format{}
	_, err := f.Parse(strings.NewReader(`@article{broken, author = {unterminated`), &format.ParseOptions{SourceName: "refs.bib"})
	if err == nil {
		t.Fatal("expected error for malformed input")
	}
	if !strings.Contains(err.Error(), "refs.bib") {
		t.Errorf("error %q does not name the source", err)
	}
}

func TestParseComments(t *testing.T) {
	input := `% Encoding: UTF-8

@article{first,
  author      = {Alice Smith}, % corresponding author
  affiliation = {AT\&T Labs, 100% Research}
}

% exported from a reference manager
@article{second,
  author = "Bob Jones",
  note   = "50% done"
}
`
	f := &Format{}
	entries, err := f.Parse(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entry count = %d, want 2", len(entries))
	}
	if entries[0].Authors != "Alice Smith" {
		t.Errorf("Authors = %q, want Alice Smith", entries[0].Authors)
	}
	if entries[0].Affiliation != "AT&T Labs, 100% Research" {
		t.Errorf("Affiliation = %q", entries[0].Affiliation)
	}
	if entries[1].CitationKey != "second" || entries[1].Authors != "Bob Jones" {
		t.Errorf("second entry = %+v", entries[1])
	}
}

func TestParseDecodesLaTeX(t *testing.T) {
	input := `@article{accents,
  author      = {Jos{\'e} Garc{\'\i}a and M{\"u}ller, J{\"o}rg},
  affiliation = {{\AA}bo Akademi, Universit{\'e} de Montr{\'e}al}
}`
	f := &Format{}
	entries, err := f.Parse(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}
	if got, want := entries[0].Authors, "José García and Müller, Jörg"; got != want {
		t.Errorf("Authors = %q, want %q", got, want)
	}
	if got, want := entries[0].Affiliation, "Åbo Akademi, Université de Montréal"; got != want {
		t.Errorf("Affiliation = %q, want %q", got, want)
	}
}

func TestParseRejectsDroppedEntries(t *testing.T) {
	input := `@article{a, author = {Alice Smith}}
! stray text
@article{b, author = {Bob Jones}}
`
	f := &Format{}
	if _, err := f.Parse(strings.NewReader(input), nil); err == nil {
		t.Fatal("expected error when entries cannot be read")
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"leading line", "% x\n@a{k}", "\n@a{k}"},
		{"after field", "@a{k, f = {v}, % x\n}", "@a{k, f = {v}, \n}"},
		{"inside braces", "@a{k, f = {50% v}}", "@a{k, f = {50% v}}"},
		{"inside quotes", `@a{k, f = "50% v"}`, `@a{k, f = "50% v"}`},
		{"escaped", `@a{k, f = 50\% v}`, `@a{k, f = 50\% v}`},
		{"trailing without newline", "@a{k}\n% end", "@a{k}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(stripComments([]byte(tt.input))); got != tt.want {
				t.Errorf("stripComments(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	f := &Format{}
	entries, err := f.Parse(strings.NewReader(""), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entry count = %d, want 0", len(entries))
	}
}

func TestCanParse(t *testing.T) {
	f := &Format{}
	tests := []struct {
		input string
		want  bool
	}{
		{"@article{x, title={y}}", true},
		{"  @Book{x, title={y}}", true},
		{"<xml/>", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := f.CanParse([]byte(tt.input)); got != tt.want {
			t.Errorf("CanParse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRegistered(t *testing.T) {
	p, err := format.GetParser("bibtex")
	if err != nil {
		t.Fatalf("GetParser failed: %v", err)
	}
	if p.Name() != "bibtex" {
		t.Errorf("Name = %q", p.Name())
	}
}
