package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/npillmayer/fontica/core"
)

// GoogleFontsAPI is the endpoint of the Google Fonts web-font directory.
const GoogleFontsAPI = `https://www.googleapis.com/webfonts/v1/webfonts`

// GoogleFontInfo is an item of the Google Fonts directory.
type GoogleFontInfo struct {
	Family   string            `json:"family"`
	Version  string            `json:"version"`
	Variants []string          `json:"variants"`
	Subsets  []string          `json:"subsets"`
	Files    map[string]string `json:"files"`
}

type googleFontsList struct {
	Items []GoogleFontInfo `json:"items"`
}

// GoogleSource is a catalog source enumerating the Google Fonts directory.
// Every variant file of a family becomes an entry named
// "<family>-<variant>.<ext>".
type GoogleSource struct {
	APIKey   string       // Google API key, required
	Endpoint string       // defaults to GoogleFontsAPI
	Client   *http.Client // defaults to a client with a 30s timeout
}

// Entries downloads the directory of Google Fonts, sorted by family name.
func (gs GoogleSource) Entries(ctx context.Context) ([]Entry, error) {
	if gs.APIKey == "" {
		err := errors.New("Google API key not set")
		return nil, core.WrapError(err, core.EMISSING,
			`Google Fonts API-key must be set in configuration or as GOOGLE_API_KEY in environment;
      please refer to https://developers.google.com/fonts/docs/developer_api`)
	}
	list, err := gs.fetchDirectory(ctx)
	if err != nil {
		return nil, err
	}
	return googleEntries(list), nil
}

func (gs GoogleSource) fetchDirectory(ctx context.Context) (googleFontsList, error) {
	var list googleFontsList
	endpoint := gs.Endpoint
	if endpoint == "" {
		endpoint = GoogleFontsAPI
	}
	client := gs.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	values := url.Values{
		"sort": []string{"alpha"},
		"key":  []string{gs.APIKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return list, core.WrapError(err, core.EINVALID, "invalid Google Fonts endpoint %s", endpoint)
	}
	resp, err := client.Do(req)
	if err != nil {
		tracer().Errorf("Google Fonts API request not OK: %s", err.Error())
		return list, core.WrapError(err, core.ECONNECTION,
			"could not get fonts-directory from Google font service")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		tracer().Errorf("Google Fonts API request not OK: %v", resp.Status)
		err := fmt.Errorf("response: %v", resp.Status)
		return list, core.WrapError(err, core.ECONNECTION,
			"could not get fonts-directory from Google font service")
	}
	if err = json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return list, core.WrapError(err, core.EINVALID,
			"could not decode fonts-list from Google font service")
	}
	tracer().Infof("%d fonts in Google Fonts directory", len(list.Items))
	return list, nil
}

func googleEntries(list googleFontsList) []Entry {
	var entries []Entry
	for _, finfo := range list.Items {
		for _, v := range finfo.Variants {
			fileURL, ok := finfo.Files[v]
			if !ok {
				continue
			}
			entries = append(entries, Entry{
				Name: finfo.Family + "-" + v + path.Ext(fileURL),
				URL:  fileURL,
			})
		}
	}
	return entries
}

func (gs GoogleSource) String() string {
	return "google-fonts"
}
