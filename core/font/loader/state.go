package loader

import (
	"fmt"

	"github.com/npillmayer/fontica/core"
)

// LoadState is the client-side status of a font.
type LoadState int

// Load states of fonts.
const (
	Unloaded LoadState = iota
	Loading
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("LoadState(%d)", int(s))
}

// Terminal is a predicate: is s one of Loaded or Failed?
func (s LoadState) Terminal() bool {
	return s == Loaded || s == Failed
}

// FontLoadError reports a failure to fetch or parse a font.
type FontLoadError struct {
	ID    string
	Cause error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("font %s failed to load: %v", e.ID, e.Cause)
}

func (e *FontLoadError) Unwrap() error {
	return e.Cause
}

// ErrorCode returns core.ELOAD.
func (e *FontLoadError) ErrorCode() int {
	return core.ELOAD
}

// UserMessage returns a message suitable for a per-font error indicator.
func (e *FontLoadError) UserMessage() string {
	return fmt.Sprintf("font %s failed to load", e.ID)
}

var _ core.AppError = (*FontLoadError)(nil)

// Errors returned by the client.
var (
	// ErrClosed is returned for requests to a client which has been closed.
	ErrClosed = core.Error(core.EPRECONDITION, "font loading session has been closed")
	// ErrNotFailed is returned when re-loading a font which is not in state Failed.
	ErrNotFailed = core.Error(core.EPRECONDITION, "only fonts which failed to load may be re-loaded")
)

// StateReader gives read-only access to font load states.
type StateReader interface {
	State(id string) LoadState
}

var _ StateReader = (*Client)(nil)
