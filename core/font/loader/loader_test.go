package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/fontica/core/catalog"
	"github.com/npillmayer/fontica/core/font/fontregistry"
	"github.com/npillmayer/fontica/core/locate/resources"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
)

// gatedFetcher delivers Go Mono for every URL, but only after its gate
// has been opened. Fetches for URLs in fail return an error.
type gatedFetcher struct {
	gate  chan struct{}
	calls int32
	fail  map[string]bool
	mx    sync.Mutex
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{gate: make(chan struct{}), fail: map[string]bool{}}
}

func (gf *gatedFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	atomic.AddInt32(&gf.calls, 1)
	select {
	case <-gf.gate:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	gf.mx.Lock()
	defer gf.mx.Unlock()
	if gf.fail[url] {
		return nil, core.Error(core.ECONNECTION, "cannot reach %s", url)
	}
	return gomono.TTF, nil
}

func (gf *gatedFetcher) setFailing(url string, fail bool) {
	gf.mx.Lock()
	defer gf.mx.Unlock()
	gf.fail[url] = fail
}

func (gf *gatedFetcher) Calls() int {
	return int(atomic.LoadInt32(&gf.calls))
}

func record(id string) catalog.FontRecord {
	return catalog.FontRecord{
		ID:          id,
		DisplayName: id,
		ResourceURL: "http://localhost:3000/fonts/" + id + "-Regular.ttf",
		Category:    catalog.Monospace,
		Variants:    []string{"regular"},
	}
}

func awaitState(t *testing.T, p StatePromise) (LoadState, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.Await(ctx)
}

func TestSingleFlight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.fonts")
	defer teardown()
	//
	fetcher := newGatedFetcher()
	client := New(fetcher, fontregistry.NewRegistry())
	defer client.Close()
	const N = 50
	promises := make([]StatePromise, N)
	var wg sync.WaitGroup
	for i := 0; i < N; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			promises[i] = client.EnsureLoaded(record("Roboto"))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, Loading, client.State("Roboto"))
	close(fetcher.gate)
	for _, p := range promises {
		state, err := awaitState(t, p)
		require.NoError(t, err)
		assert.Equal(t, Loaded, state)
	}
	assert.Equal(t, 1, fetcher.Calls(), "expected exactly one fetch for concurrent requests")
	assert.Equal(t, Loaded, client.State("Roboto"))
	assert.True(t, client.Registry().Contains("Roboto"))
	// idempotent after completion
	state, err := client.EnsureLoaded(record("Roboto")).LoadState()
	assert.NoError(t, err)
	assert.Equal(t, Loaded, state)
	assert.Equal(t, 1, fetcher.Calls())
}

func TestFailureAndReload(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.fonts")
	defer teardown()
	//
	fetcher := newGatedFetcher()
	close(fetcher.gate)
	rec := record("Broken")
	fetcher.setFailing(rec.ResourceURL, true)
	client := New(fetcher, fontregistry.NewRegistry())
	defer client.Close()
	state, err := awaitState(t, client.EnsureLoaded(rec))
	assert.Equal(t, Failed, state)
	var lerr *FontLoadError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "Broken", lerr.ID)
	assert.Equal(t, core.ELOAD, core.Code(err))
	assert.Equal(t, Failed, client.State("Broken"))
	assert.Error(t, client.Err("Broken"))
	assert.False(t, client.Registry().Contains("Broken"))
	// no automatic retry
	state, _ = client.EnsureLoaded(rec).LoadState()
	assert.Equal(t, Failed, state)
	assert.Equal(t, 1, fetcher.Calls())
	// explicit reload
	fetcher.setFailing(rec.ResourceURL, false)
	p, err := client.Reload("Broken")
	require.NoError(t, err)
	state, err = awaitState(t, p)
	require.NoError(t, err)
	assert.Equal(t, Loaded, state)
	assert.Nil(t, client.Err("Broken"))
	assert.Equal(t, 2, fetcher.Calls())
	assert.True(t, client.Registry().Contains("Broken"))
}

func TestReloadPreconditions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.fonts")
	defer teardown()
	//
	fetcher := newGatedFetcher()
	close(fetcher.gate)
	client := New(fetcher, fontregistry.NewRegistry())
	_, err := client.Reload("Unknown")
	assert.ErrorIs(t, err, ErrNotFailed)
	_, err = awaitState(t, client.EnsureLoaded(record("Roboto")))
	require.NoError(t, err)
	_, err = client.Reload("Roboto")
	assert.ErrorIs(t, err, ErrNotFailed)
	assert.Equal(t, core.EPRECONDITION, core.Code(err))
	client.Close()
	_, err = client.Reload("Roboto")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = client.EnsureLoaded(record("Lato")).LoadState()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestLoadsAreIsolated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.fonts")
	defer teardown()
	//
	slow := newGatedFetcher()
	defer close(slow.gate)
	slowURL := record("Slow").ResourceURL
	fetcher := resources.FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		if url == slowURL {
			return slow.Fetch(ctx, url)
		}
		return gomono.TTF, nil
	})
	client := New(fetcher, fontregistry.NewRegistry())
	defer client.Close()
	ps := client.EnsureLoaded(record("Slow"))
	pf := client.EnsureLoaded(record("Fast"))
	state, err := awaitState(t, pf)
	require.NoError(t, err)
	assert.Equal(t, Loaded, state)
	assert.Equal(t, Loading, client.State("Slow"))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	state, err = ps.Await(ctx)
	assert.Equal(t, Loading, state)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGarbageFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.fonts")
	defer teardown()
	//
	fetcher := resources.FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		return []byte("mock font data for Roboto 400"), nil
	})
	client := New(fetcher, fontregistry.NewRegistry())
	defer client.Close()
	state, err := awaitState(t, client.EnsureLoaded(record("Roboto")))
	assert.Equal(t, Failed, state)
	assert.Error(t, err)
	_, err = client.EnsureLoaded(catalog.FontRecord{}).LoadState()
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestCloseDiscardsResults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.fonts")
	defer teardown()
	//
	fetcher := newGatedFetcher()
	registry := fontregistry.NewRegistry()
	client := New(fetcher, registry)
	var changes int32
	client.SetObserver(func(id string, state LoadState) {
		atomic.AddInt32(&changes, 1)
	})
	p := client.EnsureLoaded(record("Roboto"))
	client.Close()
	client.Close() // idempotent
	state, err := awaitState(t, p)
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, Unloaded, state)
	close(fetcher.gate)
	assert.Never(t, func() bool {
		return registry.Contains("Roboto")
	}, 100*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, Loading, client.State("Roboto"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&changes)) // only Unloaded → Loading
}

func TestStatesSnapshot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontica.fonts")
	defer teardown()
	//
	fetcher := newGatedFetcher()
	client := New(fetcher, fontregistry.NewRegistry())
	defer client.Close()
	client.EnsureLoaded(record("A"))
	client.EnsureLoaded(record("B"))
	snapshot := client.States()
	assert.Len(t, snapshot, 2)
	snapshot["A"] = Failed
	assert.Equal(t, Loading, client.State("A"))
	assert.Equal(t, Unloaded, client.State("C"))
	close(fetcher.gate)
}
