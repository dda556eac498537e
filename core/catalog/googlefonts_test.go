package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleRespFragm string = `
{
    "kind": "webfonts#webfontList",
    "items": [
        {
            "kind": "webfonts#webfont",
            "family": "Anonymous Pro",
            "variants": [
                "regular",
                "italic",
                "700",
                "700italic"
            ],
            "subsets": [
                "greek",
                "latin",
                "cyrillic"
            ],
            "version": "v3",
            "lastModified": "2012-07-25",
            "files": {
                "regular": "http://themes.googleusercontent.com/static/fonts/anonymouspro/v3/Zhfjj_gat3waL4JSju74E-V_5zh5b-_HiooIRUBwn1A.ttf",
                "italic": "http://themes.googleusercontent.com/static/fonts/anonymouspro/v3/q0u6LFHwttnT_69euiDbWKwIsuKDCXG0NQm7BvAgx-c.ttf",
                "700": "http://themes.googleusercontent.com/static/fonts/anonymouspro/v3/WDf5lZYgdmmKhO8E1AQud--Cz_5MeePnXDAcLNWyBME.ttf",
                "700italic": "http://themes.googleusercontent.com/static/fonts/anonymouspro/v3/_fVr_XGln-cetWSUc-JpfA1LL9bfs7wyIp6F8OC9RxA.ttf"
            }
        },
        {
            "kind": "webfonts#webfont",
            "family": "Antic",
            "variants": [
                "regular"
            ],
            "subsets": [
                "latin"
            ],
            "version": "v4",
            "lastModified": "2012-07-25",
            "files": {
                "regular": "http://themes.googleusercontent.com/static/fonts/antic/v4/hEa8XCNM7tXGzD0Uk0AipA.ttf"
            }
        }
    ]
}
`

func TestGoogleSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.catalog")
	defer teardown()
	//
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(exampleRespFragm))
	}))
	defer srv.Close()
	//
	src := GoogleSource{APIKey: "test-key", Endpoint: srv.URL}
	entries, err := src.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "Anonymous Pro-regular.ttf", entries[0].Name)
	assert.Equal(t, "Anonymous Pro-700italic.ttf", entries[3].Name)
	//
	page, err := NewIndexer(src).ListFonts(context.Background(), 1, 10, Filters{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Anonymous Pro", page.Items[0].DisplayName)
	assert.Equal(t, []string{"regular", "italic", "700", "700italic"}, page.Items[0].Variants)
	assert.Equal(t, SansSerif, page.Items[1].Category)
	//
	_, err = GoogleSource{APIKey: "wrong", Endpoint: srv.URL}.Entries(context.Background())
	assert.Equal(t, core.ECONNECTION, core.Code(err))
	_, err = GoogleSource{Endpoint: srv.URL}.Entries(context.Background())
	assert.Equal(t, core.EMISSING, core.Code(err))
}
