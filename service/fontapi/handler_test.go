package fontapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/fontica/core/catalog"
	"github.com/npillmayer/fontica/core/config"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type failingLister struct {
	err error
}

func (fl failingLister) ListFonts(ctx context.Context, page, pageSize int, filters catalog.Filters) (catalog.CatalogPage, error) {
	return catalog.CatalogPage{}, fl.err
}

func fontDir(t *testing.T, names ...string) string {
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("mock font data for "+name), 0o644))
	}
	return dir
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestListFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.api")
	defer teardown()
	//
	dir := fontDir(t, "Roboto-Regular.ttf", "Merriweather-Regular.ttf", "Pacifico-Regular.ttf", "README.md")
	lister := catalog.NewIndexer(catalog.DirSource{Dir: dir, BaseURL: "http://localhost:3000/fonts"})
	router := NewRouter(NewHandler(lister, 20), dir)
	rec := get(router, "/api/fonts?page=1&limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	var lr catalog.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lr))
	assert.Equal(t, 1, lr.CurrentPage)
	assert.Equal(t, 2, lr.TotalPages)
	assert.Equal(t, 3, lr.TotalFonts)
	require.Len(t, lr.Fonts, 2)
	// DirSource enumerates sorted by file name
	assert.Equal(t, "Merriweather", lr.Fonts[0].ID)
	assert.Equal(t, catalog.Serif, lr.Fonts[0].Category)
	assert.Equal(t, "http://localhost:3000/fonts/Merriweather-Regular.ttf", lr.Fonts[0].ResourceURL)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	//
	rec = get(router, "/api/fonts?category=handwriting")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lr))
	require.Len(t, lr.Fonts, 1)
	assert.Equal(t, "Pacifico", lr.Fonts[0].ID)
	//
	rec = get(router, "/api/fonts?q=ROB&sort=name")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lr))
	require.Len(t, lr.Fonts, 1)
	assert.Equal(t, "Roboto", lr.Fonts[0].ID)
	//
	rec = get(router, "/fonts/Roboto-Regular.ttf")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mock font data for Roboto-Regular.ttf", rec.Body.String())
}

func TestListFontsErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.api")
	defer teardown()
	//
	empty := catalog.NewIndexer(catalog.DirSource{Dir: fontDir(t, "notes.txt")})
	missing := catalog.NewIndexer(catalog.DirSource{Dir: filepath.Join(t.TempDir(), "missing")})
	valid := catalog.NewIndexer(catalog.DirSource{Dir: fontDir(t, "Roboto-Regular.ttf")})
	for _, tc := range []struct {
		lister catalog.Lister
		query  string
		status int
		code   int
	}{
		{empty, "", http.StatusNotFound, core.EEMPTY},
		{missing, "", http.StatusInternalServerError, core.ESOURCE},
		{valid, "?limit=0", http.StatusBadRequest, core.EINVALID},
		{valid, "?page=abc", http.StatusBadRequest, core.EINVALID},
		{valid, "?category=fantasy", http.StatusBadRequest, core.EINVALID},
		{failingLister{errors.New("boom")}, "", http.StatusInternalServerError, core.EINTERNAL},
	} {
		router := NewRouter(NewHandler(tc.lister, 0), "")
		rec := get(router, "/api/fonts"+tc.query)
		assert.Equal(t, tc.status, rec.Code, tc.query)
		var er catalog.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
		assert.Equal(t, tc.code, er.Code, tc.query)
		assert.NotEmpty(t, er.Error)
	}
}

func TestPageClamping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.api")
	defer teardown()
	//
	lister := catalog.NewIndexer(catalog.DirSource{Dir: fontDir(t, "A-Regular.ttf", "B-Regular.ttf", "C-Regular.ttf")})
	router := NewRouter(NewHandler(lister, 2), "")
	rec := get(router, "/api/fonts?page=9")
	require.Equal(t, http.StatusOK, rec.Code)
	var lr catalog.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lr))
	assert.Equal(t, 2, lr.CurrentPage)
	assert.Len(t, lr.Fonts, 1)
	rec = get(router, fmt.Sprintf("/api/fonts?limit=%d", config.MaxPageSize+50))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lr))
	assert.Equal(t, config.MaxPageSize, lr.PageSize)
}

func TestHTTPListerRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.api")
	defer teardown()
	//
	lister := catalog.NewIndexer(catalog.DirSource{Dir: fontDir(t, "Roboto-Regular.ttf", "Roboto-Bold.ttf", "Lobster-Regular.ttf")})
	server := httptest.NewServer(NewRouter(NewHandler(lister, 20), ""))
	defer server.Close()
	client := catalog.HTTPLister{BaseURL: server.URL}
	cp, err := client.ListFonts(context.Background(), 1, 10, catalog.Filters{Sort: catalog.SortByName})
	require.NoError(t, err)
	require.Len(t, cp.Items, 2)
	assert.Equal(t, "Lobster", cp.Items[0].ID)
	assert.Equal(t, catalog.Display, cp.Items[0].Category)
	assert.Equal(t, []string{"700", "regular"}, cp.Items[1].Variants)
	empty := httptest.NewServer(NewRouter(NewHandler(catalog.NewIndexer(catalog.DirSource{Dir: t.TempDir()}), 20), ""))
	defer empty.Close()
	_, err = catalog.HTTPLister{BaseURL: empty.URL}.ListFonts(context.Background(), 1, 10, catalog.Filters{})
	assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)
}

func TestOpenSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.api")
	defer teardown()
	//
	_, _, err := OpenSource(config.Settings{})
	assert.Equal(t, core.EMISSING, core.Code(err))
	src, closer, err := OpenSource(config.Settings{CatalogDir: "/fonts", BaseURL: "https://fonts.example.com"})
	require.NoError(t, err)
	assert.NoError(t, closer())
	ds, ok := src.(catalog.DirSource)
	require.True(t, ok)
	assert.Equal(t, "https://fonts.example.com/fonts", ds.BaseURL)
	// without a base URL, font files are served by the listing server itself
	src, _, err = OpenSource(config.Settings{CatalogDir: "/fonts", Listen: ":3000"})
	require.NoError(t, err)
	ds = src.(catalog.DirSource)
	assert.Equal(t, "http://localhost:3000/fonts", ds.BaseURL)
	entries, err := catalog.DirSource{Dir: fontDir(t, "Roboto-Regular.ttf"), BaseURL: ds.BaseURL}.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/fonts/Roboto-Regular.ttf", entries[0].URL)
	src, closer, err = OpenSource(config.Settings{CatalogDB: ":memory:", CatalogDir: "/fonts"})
	require.NoError(t, err)
	defer closer()
	_, ok = src.(catalog.SQLSource)
	assert.True(t, ok)
}
