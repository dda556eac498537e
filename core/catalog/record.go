package catalog

import (
	"github.com/npillmayer/fontica/core"
)

// Category is the classification of a typeface.
type Category string

// Categories of typefaces. CategoryAll is not a category but matches every
// category in filters.
const (
	Serif       Category = "serif"
	SansSerif   Category = "sans-serif"
	Display     Category = "display"
	Handwriting Category = "handwriting"
	Monospace   Category = "monospace"
	CategoryAll Category = "all"
)

// Categories lists all valid categories.
var Categories = []Category{Serif, SansSerif, Display, Handwriting, Monospace}

// Valid is a predicate: is c one of the enumerated categories?
func (c Category) Valid() bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// FontRecord is a catalog entry for a typeface.
type FontRecord struct {
	ID          string   `json:"id"`          // unique within a catalog
	DisplayName string   `json:"displayName"` // human readable name
	ResourceURL string   `json:"resourceUrl"` // location of the font binary
	Category    Category `json:"category"`
	Variants    []string `json:"variants"` // style identifiers, e.g. "regular", "700italic"
}

// CatalogPage is the result of a listing query.
//
// TotalPages = ⌈TotalItems/PageSize⌉. If the filtered catalog is empty,
// Items is empty, TotalPages is 0 and Page is 1.
type CatalogPage struct {
	Items      []FontRecord
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Errors returned by listings. They may be matched with errors.Is and carry
// an error code (see core.Code).
var (
	// ErrSourceUnavailable is returned if the catalog source cannot be enumerated.
	ErrSourceUnavailable = core.Error(core.ESOURCE, "font catalog cannot be enumerated")
	// ErrEmptyCatalog is returned if the source contains no eligible entries.
	ErrEmptyCatalog = core.Error(core.EEMPTY, "font catalog is empty")
	// ErrInvalidPaging is returned for page sizes < 1.
	ErrInvalidPaging = core.Error(core.EINVALID, "page size must be at least 1")
)
