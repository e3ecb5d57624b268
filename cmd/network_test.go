package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/affilnet/format"
)

const bibliography = `
@article{smith2020,
  author      = {Alice Smith and Bob Jones},
  affiliation = {MIT, Stanford},
  title       = {Shared Affiliations}
}

@article{white2021,
  author = {Carol White},
  doi    = {10.1234/white},
  affiliation = {Nowhere Institute}
}
`

// fakeServices serves Crossref works and Nominatim searches.
func fakeServices(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/works/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/10.1234/white") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok","message-type":"work","message":{
			"author":[{"given":"Carol","family":"White","affiliation":[{"name":"Stanford"}]}]}}`))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "MIT":
			_, _ = w.Write([]byte(`[{"lat":"42.3601","lon":"-71.0942"}]`))
		case "Stanford":
			_, _ = w.Write([]byte(`[{"lat":"37.4275","lon":"-122.1697"}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	})
	return httptest.NewServer(mux)
}

func setup(t *testing.T) (dir, bibPath string) {
	t.Helper()
	dir = t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)

	srv := fakeServices(t)
	t.Cleanup(srv.Close)
	t.Setenv("AFFILNET_CROSSREF_BASE_URL", srv.URL)
	t.Setenv("AFFILNET_CROSSREF_RATE_LIMIT", "100")
	t.Setenv("AFFILNET_GEOCODER_BASE_URL", srv.URL)
	t.Setenv("AFFILNET_GEOCODER_RATE_LIMIT", "100")
	t.Setenv("AFFILNET_LOGGING_LEVEL", "error")

	bibPath = filepath.Join(dir, "refs.bib")
	require.NoError(t, os.WriteFile(bibPath, []byte(bibliography), 0o644))
	return dir, bibPath
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func TestNetworkCommand(t *testing.T) {
	dir, bibPath := setup(t)
	out := filepath.Join(dir, "network.json")
	metricsFile := filepath.Join(dir, "metrics.prom")

	require.NoError(t, run(t, "network", bibPath, "--format", "json", "-o", out, "--metrics-file", metricsFile))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc format.Document
	require.NoError(t, json.Unmarshal(data, &doc))

	names := make([]string, 0, len(doc.Authors))
	for _, a := range doc.Authors {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Alice Smith", "Bob Jones", "Carol White"}, names)
	assert.Equal(t, []string{"Stanford"}, doc.Authors[2].Affiliations, "Crossref affiliations win")

	require.NotNil(t, doc.Graph)
	assert.Len(t, doc.Graph.Nodes, 3)
	assert.Len(t, doc.Graph.Edges, 3)
	assert.Empty(t, doc.Graph.Unplaced)

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "affilnet_graph_edges 3")
	assert.Contains(t, string(metrics), "affilnet_entries_processed_total 2")
}

func TestAffiliationsCommand(t *testing.T) {
	dir, bibPath := setup(t)
	out := filepath.Join(dir, "authors.csv")

	require.NoError(t, run(t, "affiliations", bibPath, "--format", "csv", "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"author,affiliations,latitude,longitude",
		"Alice Smith,MIT|Stanford,,",
		"Bob Jones,MIT|Stanford,,",
		"Carol White,Stanford,,",
	}, lines)
}

func TestNetworkCommandErrors(t *testing.T) {
	dir, bibPath := setup(t)

	assert.Error(t, run(t, "network", filepath.Join(dir, "missing.bib")))
	assert.Error(t, run(t, "network", bibPath, "--format", "marc"))
	assert.Error(t, run(t, "network"))

	dup := filepath.Join(dir, "dup.bib")
	require.NoError(t, os.WriteFile(dup, []byte(bibliography+"\n@article{smith2020, author = {Dan Brown}}\n"), 0o644))
	assert.Error(t, run(t, "affiliations", dup, "--strict"))
	assert.NoError(t, run(t, "affiliations", dup, "-o", filepath.Join(dir, "dup.txt")))

	broken := filepath.Join(dir, "broken.bib")
	require.NoError(t, os.WriteFile(broken, []byte("@article{x, author = {unterminated"), 0o644))
	assert.Error(t, run(t, "network", broken))
}

func TestFormatsCommand(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"formats"})
	require.NoError(t, root.Execute())

	out := buf.String()
	assert.Contains(t, out, "bibtex")
	assert.Contains(t, out, "[input]")
	assert.Contains(t, out, "geojson")
	assert.Contains(t, out, "[input,output]")
}
