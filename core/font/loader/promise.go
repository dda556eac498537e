package loader

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// StatePromise is returned by requests to load a font. Calling LoadState
// blocks until the font has reached a terminal state.
type StatePromise interface {
	LoadState() (LoadState, error)
	Await(ctx context.Context) (LoadState, error)
}

// resolved is a promise for a font in a terminal state.
type resolved struct {
	state LoadState
	err   error
}

func (r resolved) LoadState() (LoadState, error) {
	return r.state, r.err
}

func (r resolved) Await(ctx context.Context) (LoadState, error) {
	return r.state, r.err
}

// pending is a promise attached to a load in flight. It may be awaited any
// number of times, from any number of goroutines.
type pending struct {
	done   chan struct{} // closed as soon as state and err are set
	closed <-chan struct{}
	state  LoadState
	err    error
}

func newPending(ch <-chan singleflight.Result, closed <-chan struct{}) *pending {
	p := &pending{done: make(chan struct{}), closed: closed}
	go func() {
		select {
		case r := <-ch:
			if r.Err != nil {
				p.state, p.err = Failed, r.Err
			} else {
				p.state = Loaded
			}
			close(p.done)
		case <-closed: // results arriving after teardown are discarded
		}
	}()
	return p
}

func (p *pending) LoadState() (LoadState, error) {
	return p.Await(context.Background())
}

// Await waits for the load to complete. If ctx is done before, Await
// returns Loading and the context's error; the promise may be awaited again
// later. If the client is closed while waiting, ErrClosed is returned.
func (p *pending) Await(ctx context.Context) (LoadState, error) {
	select {
	case <-p.done:
		return p.state, p.err
	default:
	}
	select {
	case <-p.done:
		return p.state, p.err
	case <-p.closed:
		return Unloaded, ErrClosed
	case <-ctx.Done():
		return Loading, ctx.Err()
	}
}
