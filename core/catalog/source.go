package catalog

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Entry is a raw entry of a catalog source.
type Entry struct {
	Name string // file name, including extension
	URL  string // location of the binary font data
}

// Source enumerates raw entries for the catalog. Sources are read-only and
// must be safe for concurrent use.
type Source interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// DirSource is a catalog source listing the files of a directory.
type DirSource struct {
	Dir     string // directory containing font files
	BaseURL string // URL prefix under which the files are served; if empty, file URLs are used
}

// Entries lists the regular files of the directory, sorted by name.
// Sub-directories are not descended into.
func (ds DirSource) Entries(ctx context.Context) ([]Entry, error) {
	files, err := os.ReadDir(ds.Dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.IsDir() || strings.HasPrefix(f.Name(), ".") {
			continue
		}
		entries = append(entries, Entry{
			Name: f.Name(),
			URL:  ds.resourceURL(f.Name()),
		})
	}
	return entries, nil
}

func (ds DirSource) resourceURL(name string) string {
	if ds.BaseURL == "" {
		abs, err := filepath.Abs(filepath.Join(ds.Dir, name))
		if err != nil {
			abs = filepath.Join(ds.Dir, name)
		}
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
		return u.String()
	}
	return JoinURL(ds.BaseURL, name)
}

func (ds DirSource) String() string {
	return "dir:" + ds.Dir
}

// JoinURL appends an escaped file name to a base URL. If name already is an
// absolute URL, it is returned unchanged.
func JoinURL(base, name string) string {
	if u, err := url.Parse(name); err == nil && u.IsAbs() {
		return name
	}
	return strings.TrimSuffix(base, "/") + "/" + url.PathEscape(strings.TrimPrefix(name, "/"))
}
