/*
Package config collects fontica's settings from a schuko configuration.

Binaries build a configuration from command-line flags and environment and
hand it to Load. Keys not set in the configuration fall back to defaults.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"net"
	"os"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontica.config'.
func tracer() tracing.Trace {
	return tracing.Select("fontica.config")
}

// Configuration keys understood by Load.
const (
	KeyAppKey       = "app-key"
	KeyCatalogDir   = "catalog-dir"
	KeyCatalogDB    = "catalog-db"
	KeyGoogleAPIKey = "google-api-key"
	KeyBaseURL      = "base-url"
	KeyListen       = "listen"
	KeyPageSize     = "page-size"
	KeyFallbackFont = "fallback-font"
	KeyCacheFonts   = "cache-fonts"
)

// Default values for settings.
const (
	DefaultAppKey   = "fontica"
	DefaultListen   = ":3000"
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Settings is the typed view of a configuration.
type Settings struct {
	AppKey       string // application key, used for cache folders
	CatalogDir   string // directory of font files, if any
	CatalogDB    string // sqlite file holding a 'fonts' table, if any
	GoogleAPIKey string // key for the Google Fonts directory, if any
	BaseURL      string // public URL prefix of the listing server
	Listen       string // listen address of the listing server
	PageSize     int    // default page size for listings
	FallbackFont string // name of a system font used as rendering fallback
	CacheFonts   bool   // cache fetched font resources on disk
}

// Load reads settings from conf. conf may be nil, in which case defaults
// are returned. The Google API key may as well be given as environment
// variable GOOGLE_API_KEY.
func Load(conf schuko.Configuration) Settings {
	s := Settings{
		AppKey:   DefaultAppKey,
		Listen:   DefaultListen,
		PageSize: DefaultPageSize,
	}
	if conf != nil {
		s.AppKey = stringOr(conf, KeyAppKey, s.AppKey)
		s.CatalogDir = conf.GetString(KeyCatalogDir)
		s.CatalogDB = conf.GetString(KeyCatalogDB)
		s.GoogleAPIKey = conf.GetString(KeyGoogleAPIKey)
		s.BaseURL = strings.TrimSuffix(conf.GetString(KeyBaseURL), "/")
		s.Listen = stringOr(conf, KeyListen, s.Listen)
		s.FallbackFont = conf.GetString(KeyFallbackFont)
		if conf.IsSet(KeyCacheFonts) {
			s.CacheFonts = conf.GetBool(KeyCacheFonts)
		}
		if conf.IsSet(KeyPageSize) {
			n := conf.GetInt(KeyPageSize)
			switch {
			case n < 1:
				tracer().Errorf("config: invalid page size %d, using %d", n, s.PageSize)
			case n > MaxPageSize:
				s.PageSize = MaxPageSize
			default:
				s.PageSize = n
			}
		}
	}
	if s.GoogleAPIKey == "" {
		s.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	}
	tracer().Debugf("config: catalog dir=%q db=%q, listen=%s, page size=%d",
		s.CatalogDir, s.CatalogDB, s.Listen, s.PageSize)
	return s
}

func stringOr(conf schuko.Configuration, key, def string) string {
	if v := conf.GetString(key); v != "" {
		return v
	}
	return def
}

// PublicURL returns the URL prefix clients reach the listing server at.
// Without an explicit base URL, it is derived from the listen address, with
// unspecified hosts mapped to localhost.
func (s Settings) PublicURL() string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	host, port, err := net.SplitHostPort(s.Listen)
	if err != nil {
		return "http://localhost" + DefaultListen
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
