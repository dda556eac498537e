package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/npillmayer/fontica/core"
)

// ListResponse is the wire format of a listing, as served by
// GET /api/fonts.
type ListResponse struct {
	Fonts       []FontRecord `json:"fonts"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
	TotalFonts  int          `json:"totalFonts"`
	PageSize    int          `json:"pageSize,omitempty"`
}

// ErrorResponse is the wire format of a failed listing.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

// NewListResponse converts a catalog page to its wire format.
func NewListResponse(cp CatalogPage) ListResponse {
	fonts := cp.Items
	if fonts == nil {
		fonts = []FontRecord{}
	}
	return ListResponse{
		Fonts:       fonts,
		CurrentPage: cp.Page,
		TotalPages:  cp.TotalPages,
		TotalFonts:  cp.TotalItems,
		PageSize:    cp.PageSize,
	}
}

// HTTPLister lists fonts by querying a listing server.
type HTTPLister struct {
	BaseURL string       // e.g. "http://localhost:3000"
	Client  *http.Client // defaults to a client with a 30s timeout
}

var _ Lister = HTTPLister{}

// ListFonts calls GET /api/fonts. Status 404 is reported as ErrEmptyCatalog,
// status 400 as ErrInvalidPaging and other failures as ErrSourceUnavailable.
func (hl HTTPLister) ListFonts(ctx context.Context, page, pageSize int, filters Filters) (CatalogPage, error) {
	if pageSize < 1 {
		return CatalogPage{}, ErrInvalidPaging
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(pageSize))
	if filters.Category != "" && filters.Category != CategoryAll {
		q.Set("category", string(filters.Category))
	}
	if filters.Query != "" {
		q.Set("q", filters.Query)
	}
	if filters.Sort == SortByName {
		q.Set("sort", "name")
	}
	endpoint := JoinURL(hl.BaseURL, "api") + "/fonts?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return CatalogPage{}, core.WrapError(err, core.EINVALID, "invalid listing URL %s", endpoint)
	}
	client := hl.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return CatalogPage{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return CatalogPage{}, ErrEmptyCatalog
	case http.StatusBadRequest:
		return CatalogPage{}, ErrInvalidPaging
	default:
		return CatalogPage{}, fmt.Errorf("%w: listing server responded %s", ErrSourceUnavailable, resp.Status)
	}
	var lr ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return CatalogPage{}, fmt.Errorf("%w: cannot decode listing: %w", ErrSourceUnavailable, err)
	}
	return CatalogPage{
		Items:      lr.Fonts,
		Page:       lr.CurrentPage,
		PageSize:   pageSize,
		TotalItems: lr.TotalFonts,
		TotalPages: lr.TotalPages,
	}, nil
}
