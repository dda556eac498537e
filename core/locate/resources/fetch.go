package resources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/npillmayer/fontica/core"
)

// MaxFontSize limits the size of a font resource to be fetched.
const MaxFontSize = 32 << 20

// Fetcher resolves a resource URL to the resource's binary data.
type Fetcher interface {
	Fetch(ctx context.Context, resourceURL string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, resourceURL string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, resourceURL string) ([]byte, error) {
	return f(ctx, resourceURL)
}

// URLFetcher fetches resources with schemes http, https and file.
// URLs without a scheme are interpreted as local file paths.
type URLFetcher struct {
	Client *http.Client // if nil, a client with a 30s timeout is used
}

var defaultClient = &http.Client{Timeout: 30 * time.Second}

// Fetch loads the resource located at resourceURL.
func (uf URLFetcher) Fetch(ctx context.Context, resourceURL string) ([]byte, error) {
	u, err := url.Parse(resourceURL)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid resource URL: %s", resourceURL)
	}
	switch u.Scheme {
	case "http", "https":
		return uf.fetchHTTP(ctx, u.String())
	case "file":
		return readFile(u.Path)
	case "":
		return readFile(resourceURL)
	}
	return nil, core.Error(core.EINVALID, "unsupported scheme %q for resource %s", u.Scheme, resourceURL)
}

func (uf URLFetcher) fetchHTTP(ctx context.Context, resourceURL string) ([]byte, error) {
	client := uf.Client
	if client == nil {
		client = defaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceURL, nil)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot create request for %s", resourceURL)
	}
	tracer().Debugf("fetching %s", resourceURL)
	resp, err := client.Do(req)
	if err != nil {
		return nil, core.WrapError(err, core.ECONNECTION, "cannot fetch %s", resourceURL)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("response: %v", resp.Status)
		if resp.StatusCode == http.StatusNotFound {
			return nil, core.WrapError(err, core.EMISSING, "resource not found: %s", resourceURL)
		}
		return nil, core.WrapError(err, core.ECONNECTION, "cannot fetch %s", resourceURL)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFontSize+1))
	if err != nil {
		return nil, core.WrapError(err, core.ECONNECTION, "transmission of %s interrupted", resourceURL)
	}
	if len(data) > MaxFontSize {
		return nil, core.Error(core.EINVALID, "resource %s exceeds %d bytes", resourceURL, MaxFontSize)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, core.WrapError(err, core.EMISSING, "resource not found: %s", path)
	} else if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot read %s", path)
	}
	return data, nil
}
