// internal/loader/loader_test.go
package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodview/internal/catalog"
)

const sampleJSON = `[
	{"id": 1, "title": "Wool Sweater", "price": 40.5,
	 "category": {"id": 1, "name": "Clothes"},
	 "images": ["https://example.com/a.png"]},
	{"id": 2, "title": "Steel Mug", "price": 12, "description": "500ml"}
]`

func TestFetchFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))

	records, err := Fetch(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Wool Sweater", records[0].Title)
	assert.Equal(t, 40.5, records[0].Price)
	assert.Equal(t, "Clothes", records[0].Category.Name)
	assert.Equal(t, "500ml", records[1].Description)
}

func TestFetchFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	records, err := Fetch(context.Background(), srv.URL+"/products.json")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFetchFailuresAreLoadErrors(t *testing.T) {
	var loadErr *catalog.LoadError

	_, err := Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorAs(t, err, &loadErr)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not an array"), 0o644))
	_, err = Fetch(context.Background(), bad)
	require.ErrorAs(t, err, &loadErr)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()
	_, err = Fetch(context.Background(), srv.URL)
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "502")
}
