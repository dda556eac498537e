package resources

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path"
	"path/filepath"
)

// CachingFetcher wraps a fetcher and keeps copies of fetched resources in a
// cache directory. Resources are keyed by a hash of their URL.
type CachingFetcher struct {
	Dir  string  // cache directory, see CacheDirPath
	Next Fetcher // fetcher for resources not in the cache
}

// Fetch returns the cached copy of resourceURL, if present. Otherwise the
// resource is fetched and stored. A failure to store a copy is not an error.
func (cf CachingFetcher) Fetch(ctx context.Context, resourceURL string) ([]byte, error) {
	fpath := filepath.Join(cf.Dir, cacheKey(resourceURL))
	if data, err := os.ReadFile(fpath); err == nil && len(data) > 0 {
		tracer().Debugf("cache hit for %s", resourceURL)
		return data, nil
	}
	data, err := cf.Next.Fetch(ctx, resourceURL)
	if err != nil {
		return nil, err
	}
	if err := writeCachedFile(fpath, data); err != nil {
		tracer().Errorf("cannot cache %s: %v", resourceURL, err)
	}
	return data, nil
}

func cacheKey(resourceURL string) string {
	h := sha1.Sum([]byte(resourceURL))
	return hex.EncodeToString(h[:]) + path.Ext(path.Base(resourceURL))
}

// writeCachedFile writes data to a temporary file first and renames it,
// so concurrent readers never see partial files.
func writeCachedFile(fpath string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(fpath), ".fetch-*")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), fpath)
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(appkey string, subfolders ...string) (string, error) {
	if appkey == "" {
		tracer().Errorf("application key is not set")
	}
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	subs := filepath.Join(subfolders...)
	cachedir = filepath.Join(cachedir, appkey, subs)
	tracer().Infof("caching in %s", cachedir)
	if err = os.MkdirAll(cachedir, 0755); err != nil {
		return "", err
	}
	return cachedir, nil
}
