package session

import (
	"github.com/npillmayer/fontica/core/catalog"
	"github.com/npillmayer/fontica/core/font/loader"
)

// CoverageVerdict tells if a font covers the preview text.
type CoverageVerdict int

// Coverage verdicts. Unknown is the verdict for fonts not loaded.
const (
	Unknown CoverageVerdict = iota
	Supported
	Unsupported
)

func (v CoverageVerdict) String() string {
	switch v {
	case Supported:
		return "supported"
	case Unsupported:
		return "unsupported"
	}
	return "unknown"
}

// CoverageChecker decides if a loaded font covers a text.
type CoverageChecker interface {
	Supports(fontID, text string) (bool, error)
}

// Params are the user controlled parameters of a session.
type Params struct {
	Preview  PreviewRequest
	Query    string           // case-insensitive substring of display names
	Category catalog.Category // exact match, unless empty or catalog.CategoryAll
	Page     int              // 1-based catalog page
}

// View is what a session shows for its parameters.
type View struct {
	Params       Params
	VisibleFonts []catalog.FontRecord
	Verdicts     map[string]CoverageVerdict // by font ID
	States       map[string]loader.LoadState
	Page         int // catalog page actually shown
	TotalPages   int
	TotalFonts   int
}

// Verdict returns the verdict for a font, Unknown for fonts not visible.
func (v View) Verdict(fontID string) CoverageVerdict {
	return v.Verdicts[fontID]
}

// Compute derives the view of a catalog page. It has no side effects
// other than calling the checker for loaded fonts.
//
// Fonts are filtered by params.Query and params.Category; the order of the
// catalog page is kept. A font's verdict is Unknown if it is not loaded,
// otherwise it is the checker's verdict for params.Preview.Text. Checker
// errors yield Unknown.
func Compute(page catalog.CatalogPage, params Params, states loader.StateReader, checker CoverageChecker) View {
	visible := catalog.Filter(page.Items, catalog.Filters{
		Category: params.Category,
		Query:    params.Query,
	})
	view := View{
		Params:       params,
		VisibleFonts: visible,
		Verdicts:     make(map[string]CoverageVerdict, len(visible)),
		States:       make(map[string]loader.LoadState, len(visible)),
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalFonts:   page.TotalItems,
	}
	for _, rec := range visible {
		state := states.State(rec.ID)
		view.States[rec.ID] = state
		verdict := Unknown
		if state == loader.Loaded {
			ok, err := checker.Supports(rec.ID, params.Preview.Text)
			switch {
			case err != nil:
				tracer().Errorf("cannot check coverage of %s: %v", rec.ID, err)
			case ok:
				verdict = Supported
			default:
				verdict = Unsupported
			}
		}
		view.Verdicts[rec.ID] = verdict
	}
	return view
}
