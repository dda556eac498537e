package loader

import (
	"context"
	"sync"
	"time"

	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/fontica/core/catalog"
	"github.com/npillmayer/fontica/core/font"
	"github.com/npillmayer/fontica/core/font/fontregistry"
	"github.com/npillmayer/fontica/core/locate/resources"
	"golang.org/x/sync/singleflight"
)

// DefaultLoadTimeout limits the time a single font load may take.
const DefaultLoadTimeout = 60 * time.Second

// Observer is notified about every state change of a font.
type Observer func(id string, state LoadState)

// Client loads fonts of catalog records and registers them with a
// runtime font registry. A client is meant to be owned by a single preview
// session; it is safe for concurrent use.
type Client struct {
	fetcher     resources.Fetcher
	registry    *fontregistry.Registry
	LoadTimeout time.Duration // per font; defaults to DefaultLoadTimeout
	inflight    singleflight.Group
	mx          sync.RWMutex
	states      map[string]LoadState
	errs        map[string]error
	records     map[string]catalog.FontRecord
	observer    Observer
	closed      chan struct{}
	isClosed    bool
}

// New creates a client fetching font resources with fetcher. If registry is
// nil, fonts are registered with the global font registry.
func New(fetcher resources.Fetcher, registry *fontregistry.Registry) *Client {
	if fetcher == nil {
		fetcher = resources.URLFetcher{}
	}
	if registry == nil {
		registry = fontregistry.GlobalRegistry()
	}
	return &Client{
		fetcher:     fetcher,
		registry:    registry,
		LoadTimeout: DefaultLoadTimeout,
		states:      make(map[string]LoadState),
		errs:        make(map[string]error),
		records:     make(map[string]catalog.FontRecord),
		closed:      make(chan struct{}),
	}
}

// Registry returns the font registry loaded fonts are registered with.
func (c *Client) Registry() *fontregistry.Registry {
	return c.registry
}

// SetObserver sets a function to be called on every state change. It will
// be called from arbitrary goroutines and must not block.
func (c *Client) SetObserver(observer Observer) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.observer = observer
}

// EnsureLoaded starts loading the font of rec, if it has not been requested
// before. It returns a promise for the font's terminal state.
//
// EnsureLoaded is idempotent: for a font already loaded or failed, the
// promise is resolved immediately. While a font is loading, further calls
// attach to the load in flight instead of fetching the resource again.
func (c *Client) EnsureLoaded(rec catalog.FontRecord) StatePromise {
	if rec.ID == "" {
		return resolved{Unloaded, core.Error(core.EINVALID, "font record without identifier")}
	}
	c.mx.Lock()
	if c.isClosed {
		c.mx.Unlock()
		return resolved{Unloaded, ErrClosed}
	}
	id := rec.ID
	started := false
	switch c.states[id] {
	case Loaded:
		c.mx.Unlock()
		return resolved{Loaded, nil}
	case Failed:
		err := c.errs[id]
		c.mx.Unlock()
		return resolved{Failed, err}
	case Unloaded:
		tracer().Debugf("start loading font %s from %s", id, rec.ResourceURL)
		c.states[id] = Loading
		c.records[id] = rec
		started = true
	}
	// state is Loading: the load in flight (if any) cannot have ended yet,
	// as ending it requires c.mx
	ch := c.inflight.DoChan(id, func() (interface{}, error) {
		return c.load(rec)
	})
	p := newPending(ch, c.closed)
	observer := c.observer
	c.mx.Unlock()
	if started && observer != nil {
		observer(id, Loading)
	}
	return p
}

// Reload starts loading a font again which failed to load before. For fonts
// in any other state, ErrNotFailed is returned.
func (c *Client) Reload(id string) (StatePromise, error) {
	c.mx.Lock()
	if c.isClosed {
		c.mx.Unlock()
		return nil, ErrClosed
	}
	if c.states[id] != Failed {
		c.mx.Unlock()
		return nil, ErrNotFailed
	}
	rec := c.records[id]
	tracer().Infof("re-loading font %s", id)
	c.states[id] = Loading
	delete(c.errs, id)
	c.inflight.Forget(id) // never attach to the remains of the failed load
	ch := c.inflight.DoChan(id, func() (interface{}, error) {
		return c.load(rec)
	})
	p := newPending(ch, c.closed)
	observer := c.observer
	c.mx.Unlock()
	if observer != nil {
		observer(id, Loading)
	}
	return p, nil
}

// State returns the load state of a font. Fonts never requested are
// Unloaded.
func (c *Client) State(id string) LoadState {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.states[id]
}

// Err returns the load error of a font in state Failed, nil otherwise.
func (c *Client) Err(id string) error {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.errs[id]
}

// States returns a snapshot of all load states.
func (c *Client) States() map[string]LoadState {
	c.mx.RLock()
	defer c.mx.RUnlock()
	snapshot := make(map[string]LoadState, len(c.states))
	for id, s := range c.states {
		snapshot[id] = s
	}
	return snapshot
}

// Close tears the client down. Loads in flight are allowed to complete in
// the background, but their results are discarded. Pending promises return
// ErrClosed. Close may be called more than once.
func (c *Client) Close() {
	c.mx.Lock()
	defer c.mx.Unlock()
	if !c.isClosed {
		c.isClosed = true
		close(c.closed)
	}
}

// load fetches, parses and registers a font. It runs exactly once per
// load in flight.
func (c *Client) load(rec catalog.FontRecord) (interface{}, error) {
	f, err := c.fetchFont(rec)
	c.mx.Lock()
	if c.isClosed {
		c.mx.Unlock()
		tracer().Debugf("discarding result for font %s after teardown", rec.ID)
		return nil, ErrClosed
	}
	var state LoadState
	if err != nil {
		tracer().Errorf("font %s failed to load: %v", rec.ID, err)
		err = &FontLoadError{ID: rec.ID, Cause: err}
		state = Failed
		c.errs[rec.ID] = err
	} else {
		tracer().Infof("font %s loaded", rec.ID)
		c.registry.StoreFont(rec.ID, f)
		state = Loaded
	}
	c.states[rec.ID] = state
	observer := c.observer
	c.mx.Unlock()
	if observer != nil {
		observer(rec.ID, state)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (c *Client) fetchFont(rec catalog.FontRecord) (*font.ScalableFont, error) {
	if f, ok := c.registry.Font(rec.ID); ok {
		tracer().Debugf("font %s already present in registry", rec.ID)
		return f, nil
	}
	timeout := c.LoadTimeout
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	// loads are detached from any session context: they complete in the background
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	data, err := c.fetcher.Fetch(ctx, rec.ResourceURL)
	if err != nil {
		return nil, err
	}
	f, err := font.ParseOpenTypeFont(data)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "resource %s is not a supported font", rec.ResourceURL)
	}
	f.Filepath = rec.ResourceURL
	return f, nil
}
