package format_test

import (
	"bytes"
	"testing"

	"github.com/lehigh-university-libraries/affilnet/format"
	_ "github.com/lehigh-university-libraries/affilnet/format/bibtex"
	_ "github.com/lehigh-university-libraries/affilnet/format/csv"
	_ "github.com/lehigh-university-libraries/affilnet/format/geojson"
	_ "github.com/lehigh-university-libraries/affilnet/format/jsonfmt"
	_ "github.com/lehigh-university-libraries/affilnet/format/table"
	_ "github.com/lehigh-university-libraries/affilnet/format/yamlfmt"
	"github.com/lehigh-university-libraries/affilnet/hub"
)

func TestList(t *testing.T) {
	want := []string{"bibtex", "csv", "geojson", "json", "table", "yaml"}
	got := format.List()
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGetParser(t *testing.T) {
	if _, err := format.GetParser("BibTeX"); err != nil {
		t.Errorf("GetParser(BibTeX) failed: %v", err)
	}
	if _, err := format.GetParser("table"); err == nil {
		t.Error("table should not be a parser")
	}
	if _, err := format.GetParser("marc"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		peek     string
		want     string
	}{
		{"refs.bib", "", "bibtex"},
		{"refs.CSV", "", "csv"},
		{"refs.txt", "@article{x, author={A}}", "bibtex"},
		{"refs", "key,author\nx,A\n", "csv"},
	}
	for _, tt := range tests {
		f, err := format.DetectFormat(tt.filename, []byte(tt.peek))
		if err != nil {
			t.Errorf("DetectFormat(%q) failed: %v", tt.filename, err)
			continue
		}
		if f.Name() != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.filename, f.Name(), tt.want)
		}
	}

	if _, err := format.DetectFormat("refs.json", []byte("{}")); err == nil {
		t.Error("presenters must not be detected as input formats")
	}
}

func TestEveryPresenterHandlesEmptyResult(t *testing.T) {
	result := &hub.Result{
		Affiliations: hub.NewAffiliationMapBuilder().Freeze(),
		Graph:        hub.NewGraph(),
	}
	for _, s := range format.DefaultRegistry.Serializers() {
		var buf bytes.Buffer
		if err := s.Serialize(&buf, result, format.NewSerializeOptions()); err != nil {
			t.Errorf("%s: Serialize failed: %v", s.Name(), err)
		}
	}
}
