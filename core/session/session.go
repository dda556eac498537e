package session

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/derekparker/trie"
	"github.com/google/uuid"
	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/fontica/core/catalog"
	"github.com/npillmayer/fontica/core/font/loader"
	"golang.org/x/text/cases"
)

// MaxSuggestions limits the number of names returned by Suggest.
const MaxSuggestions = 10

// Session is a font preview session. It owns a font loader client, which
// it closes on Close. A session is safe for concurrent use.
type Session struct {
	ID       uuid.UUID
	lister   catalog.Lister
	client   *loader.Client
	checker  CoverageChecker
	pageSize int
	mx       sync.Mutex
	params   Params
	page     catalog.CatalogPage
	names    *trie.Trie // folded display name → display name
}

// New creates a session listing pages of pageSize fonts from lister,
// loading fonts with client and checking coverage with checker.
func New(lister catalog.Lister, client *loader.Client, checker CoverageChecker, pageSize int) *Session {
	if pageSize < 1 {
		pageSize = 20
	}
	s := &Session{
		ID:       uuid.New(),
		lister:   lister,
		client:   client,
		checker:  checker,
		pageSize: pageSize,
		params: Params{
			Preview:  DefaultPreview(),
			Category: catalog.CategoryAll,
			Page:     1,
		},
		page:  catalog.CatalogPage{Page: 1, PageSize: pageSize, Items: []catalog.FontRecord{}},
		names: trie.New(),
	}
	tracer().Infof("session %s created", s.ID)
	return s
}

// Params returns the current parameters.
func (s *Session) Params() Params {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.params
}

// View computes the view for the current parameters and load states.
func (s *Session) View() View {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.compute()
}

// Refresh lists the current catalog page and starts loading the fonts
// visible on it.
func (s *Session) Refresh(ctx context.Context) (View, error) {
	s.mx.Lock()
	pageNo := s.params.Page
	s.mx.Unlock()
	return s.showPage(ctx, pageNo)
}

// showPage lists catalog page pageNo. Page number and fonts of the session
// change only if the listing succeeds. An empty catalog leaves the session
// without fonts.
func (s *Session) showPage(ctx context.Context, pageNo int) (View, error) {
	page, err := s.lister.ListFonts(ctx, pageNo, s.pageSize, catalog.Filters{})
	s.mx.Lock()
	defer s.mx.Unlock()
	if errors.Is(err, catalog.ErrEmptyCatalog) {
		tracer().Infof("session %s: font catalog is empty", s.ID)
		s.page = catalog.CatalogPage{Page: 1, PageSize: s.pageSize, Items: []catalog.FontRecord{}}
		s.params.Page = 1
		return s.compute(), err
	} else if err != nil {
		tracer().Errorf("session %s cannot list fonts: %v", s.ID, err)
		return s.compute(), err
	}
	s.page = page
	s.params.Page = page.Page
	fold := cases.Fold()
	for _, rec := range page.Items {
		s.names.Add(fold.String(rec.DisplayName), rec.DisplayName)
	}
	tracer().Debugf("session %s shows page %d/%d", s.ID, page.Page, page.TotalPages)
	return s.compute(), nil
}

// SetPreview changes the preview request. Size and direction are normalized.
func (s *Session) SetPreview(pr PreviewRequest) View {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.params.Preview = pr.Normalized()
	return s.compute()
}

// SetPreviewText changes the text of the preview request only.
func (s *Session) SetPreviewText(text string) View {
	s.mx.Lock()
	defer s.mx.Unlock()
	pr := s.params.Preview
	pr.Text = text
	pr.Direction = ""
	s.params.Preview = pr.Normalized()
	return s.compute()
}

// SetQuery changes the search query.
func (s *Session) SetQuery(query string) View {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.params.Query = query
	return s.compute()
}

// SetCategory changes the selected category. Besides the categories of
// the catalog, catalog.CategoryAll and "" select every category.
func (s *Session) SetCategory(category catalog.Category) (View, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	if category == "" {
		category = catalog.CategoryAll
	}
	if category != catalog.CategoryAll && !category.Valid() {
		return s.compute(), core.Error(core.EINVALID, "unknown font category %q", category)
	}
	s.params.Category = category
	return s.compute(), nil
}

// SetPage selects a catalog page and refreshes the session. If the page
// cannot be listed, the session stays on its current page.
func (s *Session) SetPage(ctx context.Context, page int) (View, error) {
	if page < 1 {
		page = 1
	}
	return s.showPage(ctx, page)
}

// Reload re-loads a font which failed to load.
func (s *Session) Reload(fontID string) error {
	_, err := s.client.Reload(fontID)
	return err
}

// Await waits until every visible font has been loaded or failed, or until
// ctx is done, and returns the resulting view.
func (s *Session) Await(ctx context.Context) (View, error) {
	s.mx.Lock()
	view := s.compute()
	s.mx.Unlock()
	for _, rec := range view.VisibleFonts {
		if view.States[rec.ID].Terminal() {
			continue
		}
		if _, err := s.client.EnsureLoaded(rec).Await(ctx); err != nil {
			if ctx.Err() != nil {
				return s.View(), ctx.Err()
			}
			if core.Code(err) == core.EPRECONDITION { // session closed
				return s.View(), err
			}
		}
	}
	return s.View(), nil
}

// Suggest returns display names of fonts seen by the session which start
// with prefix, in alphabetical order.
func (s *Session) Suggest(prefix string) []string {
	prefix = cases.Fold().String(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}
	s.mx.Lock()
	defer s.mx.Unlock()
	keys := s.names.PrefixSearch(prefix)
	suggestions := make([]string, 0, len(keys))
	for _, key := range keys {
		if node, ok := s.names.Find(key); ok {
			suggestions = append(suggestions, node.Meta().(string))
		}
	}
	sort.Strings(suggestions)
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}

// Close ends the session. Loads in flight are discarded.
func (s *Session) Close() {
	tracer().Infof("session %s closed", s.ID)
	s.client.Close()
}

// compute derives the current view and starts loading visible fonts.
// s.mx must be held.
func (s *Session) compute() View {
	view := Compute(s.page, s.params, s.client, s.checker)
	for _, rec := range view.VisibleFonts {
		if view.States[rec.ID] == loader.Unloaded {
			s.client.EnsureLoaded(rec)
			view.States[rec.ID] = s.client.State(rec.ID)
		}
	}
	return view
}
