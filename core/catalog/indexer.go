package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/fontica/core/font"
	"github.com/npillmayer/fontica/core/font/fontregistry"
	"golang.org/x/text/cases"
)

// SortOrder selects the order of records in a listing.
type SortOrder int

// Sort orders for listings. SortNone keeps the enumeration order of the
// catalog source.
const (
	SortNone SortOrder = iota
	SortByName
)

// ParseSortOrder maps "name" to SortByName, everything else to SortNone.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), "name") {
		return SortByName
	}
	return SortNone
}

// Filters restrict a listing. The zero value does not filter.
type Filters struct {
	Category Category  // exact match, unless empty or CategoryAll
	Query    string    // case-insensitive substring of the display name
	Sort     SortOrder // order of records
}

// Lister is an interface for everything producing catalog pages.
type Lister interface {
	ListFonts(ctx context.Context, page, pageSize int, filters Filters) (CatalogPage, error)
}

// Indexer lists fonts from a catalog source.
type Indexer struct {
	source Source
}

var _ Lister = (*Indexer)(nil)

// NewIndexer creates an indexer for a catalog source.
func NewIndexer(source Source) *Indexer {
	return &Indexer{source: source}
}

// ListFonts enumerates the catalog source, applies filters and returns page
// number page (1-based) of size pageSize. Pages beyond the last page are
// clamped to the last page.
//
// ListFonts fails with ErrSourceUnavailable if the source cannot be
// enumerated, ErrEmptyCatalog if it contains no font files and
// ErrInvalidPaging if pageSize < 1.
func (ix *Indexer) ListFonts(ctx context.Context, page, pageSize int, filters Filters) (CatalogPage, error) {
	if pageSize < 1 {
		return CatalogPage{}, ErrInvalidPaging
	}
	records, err := ix.Index(ctx)
	if err != nil {
		return CatalogPage{}, err
	}
	records = Filter(records, filters)
	return Paginate(records, page, pageSize), nil
}

// Index enumerates the catalog source and returns all font records, in
// enumeration order.
func (ix *Indexer) Index(ctx context.Context) ([]FontRecord, error) {
	if ix.source == nil {
		return nil, ErrSourceUnavailable
	}
	entries, err := ix.source.Entries(ctx)
	if err != nil {
		tracer().Errorf("catalog source %v: %v", ix.source, err)
		if errors.Is(err, ErrSourceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	records := IndexEntries(entries)
	if len(records) == 0 {
		return nil, ErrEmptyCatalog
	}
	tracer().Debugf("catalog source %v: %d entries, %d fonts", ix.source, len(entries), len(records))
	return records, nil
}

// IndexEntries turns raw entries into font records. Entries without a
// recognized font file extension are skipped. Entries sharing an identifier
// are merged into a single record, listing all their variants. Identifiers
// are compared the way the font registry keys fonts, so every record maps to
// exactly one registry entry. The first occurrence of an identifier
// determines the record's position.
func IndexEntries(entries []Entry) []FontRecord {
	fonts := linkedhashmap.New()
	for _, entry := range entries {
		if !IsFontFile(entry.Name) {
			tracer().Debugf("skipping non-font entry %q", entry.Name)
			continue
		}
		id, variant := ParseFilename(entry.Name)
		if id == "" {
			continue
		}
		key := fontregistry.NormalizeFontID(id)
		if r, found := fonts.Get(key); found {
			rec := r.(*FontRecord)
			if !contains(rec.Variants, variant) {
				rec.Variants = append(rec.Variants, variant)
				if variant == font.RegularVariant {
					rec.ResourceURL = entry.URL
				}
			}
			continue
		}
		name := DisplayName(id)
		fonts.Put(key, &FontRecord{
			ID:          id,
			DisplayName: name,
			ResourceURL: entry.URL,
			Category:    Categorize(name),
			Variants:    []string{variant},
		})
	}
	records := make([]FontRecord, 0, fonts.Size())
	for _, r := range fonts.Values() {
		records = append(records, *r.(*FontRecord))
	}
	return records
}

// Filter returns the records matching filters, optionally sorted. The input
// is not modified.
func Filter(records []FontRecord, filters Filters) []FontRecord {
	matched := make([]FontRecord, 0, len(records))
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(filters.Query))
	for _, rec := range records {
		if filters.Category != "" && filters.Category != CategoryAll && rec.Category != filters.Category {
			continue
		}
		if query != "" && !strings.Contains(fold.String(rec.DisplayName), query) {
			continue
		}
		matched = append(matched, rec)
	}
	if filters.Sort == SortByName {
		sort.SliceStable(matched, func(i, j int) bool {
			return fold.String(matched[i].DisplayName) < fold.String(matched[j].DisplayName)
		})
	}
	return matched
}

// Paginate slices page number page out of records. page is clamped to
// [1, TotalPages]; pageSize must be at least 1.
func Paginate(records []FontRecord, page, pageSize int) CatalogPage {
	total := len(records)
	cp := CatalogPage{
		Page:       1,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: (total + pageSize - 1) / pageSize,
		Items:      []FontRecord{},
	}
	if cp.TotalPages == 0 {
		return cp
	}
	cp.Page = page
	if cp.Page < 1 {
		cp.Page = 1
	} else if cp.Page > cp.TotalPages {
		cp.Page = cp.TotalPages
	}
	start := (cp.Page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	cp.Items = append(cp.Items, records[start:end]...)
	return cp
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
