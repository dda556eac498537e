package config

import (
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.config")
	defer teardown()
	//
	t.Setenv("GOOGLE_API_KEY", "")
	s := Load(nil)
	assert.Equal(t, DefaultAppKey, s.AppKey)
	assert.Equal(t, DefaultListen, s.Listen)
	assert.Equal(t, DefaultPageSize, s.PageSize)
	assert.False(t, s.CacheFonts)
	assert.Empty(t, s.GoogleAPIKey)
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.config")
	defer teardown()
	//
	t.Setenv("GOOGLE_API_KEY", "from-env")
	s := Load(testconfig.Conf{
		KeyCatalogDir: "./fonts",
		KeyBaseURL:    "http://localhost:3000/",
		KeyListen:     ":8080",
		KeyPageSize:   500,
		KeyCacheFonts: true,
	})
	assert.Equal(t, "./fonts", s.CatalogDir)
	assert.Equal(t, "http://localhost:3000", s.BaseURL)
	assert.Equal(t, ":8080", s.Listen)
	assert.Equal(t, MaxPageSize, s.PageSize)
	assert.True(t, s.CacheFonts)
	assert.Equal(t, "from-env", s.GoogleAPIKey)
	//
	s = Load(testconfig.Conf{
		KeyPageSize:     0,
		KeyGoogleAPIKey: "from-conf",
	})
	assert.Equal(t, DefaultPageSize, s.PageSize)
	assert.Equal(t, "from-conf", s.GoogleAPIKey)
}

func TestPublicURL(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.config")
	defer teardown()
	//
	for listen, expected := range map[string]string{
		":3000":          "http://localhost:3000",
		"0.0.0.0:8080":   "http://localhost:8080",
		"fonts.lan:3000": "http://fonts.lan:3000",
		"garbage":        "http://localhost:3000",
	} {
		assert.Equal(t, expected, Settings{Listen: listen}.PublicURL(), listen)
	}
	s := Settings{Listen: ":3000", BaseURL: "https://fonts.example.com"}
	assert.Equal(t, "https://fonts.example.com", s.PublicURL())
}
