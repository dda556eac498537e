package fontapi

import (
	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/fontica/core/catalog"
	"github.com/npillmayer/fontica/core/config"
	"github.com/npillmayer/fontica/core/locate/resources"
)

// OpenSource selects the catalog source configured in settings. A sqlite
// catalog takes precedence over a font directory, which takes precedence
// over the Google Fonts directory. Font files of sqlite and directory
// catalogs are addressed below the server's public URL (see
// config.Settings.PublicURL). The returned function releases the source's
// resources.
func OpenSource(s config.Settings) (catalog.Source, func() error, error) {
	noop := func() error { return nil }
	baseURL := catalog.JoinURL(s.PublicURL(), "fonts")
	switch {
	case s.CatalogDB != "":
		db, err := catalog.OpenDB(s.CatalogDB)
		if err != nil {
			return nil, noop, err
		}
		tracer().Infof("catalog source is database %s", s.CatalogDB)
		return catalog.SQLSource{DB: db, BaseURL: baseURL}, db.Close, nil
	case s.CatalogDir != "":
		tracer().Infof("catalog source is directory %s", s.CatalogDir)
		return catalog.DirSource{Dir: s.CatalogDir, BaseURL: baseURL}, noop, nil
	case s.GoogleAPIKey != "":
		tracer().Infof("catalog source is the Google Fonts directory")
		return catalog.GoogleSource{APIKey: s.GoogleAPIKey}, noop, nil
	}
	return nil, noop, core.Error(core.EMISSING, "no catalog source configured")
}

// NewFetcher creates the fetcher for font resources configured in settings.
func NewFetcher(s config.Settings) (resources.Fetcher, error) {
	var fetcher resources.Fetcher = resources.URLFetcher{}
	if !s.CacheFonts {
		return fetcher, nil
	}
	dir, err := resources.CacheDirPath(s.AppKey, "fonts")
	if err != nil {
		return nil, err
	}
	tracer().Infof("caching fonts in %s", dir)
	return resources.CachingFetcher{Dir: dir, Next: fetcher}, nil
}
