// Package fetch runs list requests so that only the response for the most
// recent state of a list is ever delivered.
package fetch

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrSuperseded is returned to callers whose request was overtaken by a
// newer request for the same owner.
var ErrSuperseded = errors.New("fetch: superseded by a newer request")

// Func performs the actual request.
type Func[T any] func(ctx context.Context) (T, error)

type flight struct {
	key    string
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
	refs   int
}

// Group tracks the latest key per owner. An owner is one list as seen by
// one browser tab; a key is the canonical query that produced the request.
//
// Calls with the owner's current key share a single in-flight request.
// A call with a different key cancels the in-flight request and becomes
// the owner's latest; results of earlier keys are dropped with
// ErrSuperseded.
type Group struct {
	mu     sync.Mutex
	sf     singleflight.Group
	latest map[string]*flight
	gen    uint64
}

func NewGroup() *Group {
	return &Group{latest: make(map[string]*flight)}
}

// Do runs fn under g for owner and key. fn receives a context that keeps
// the values of ctx but is cancelled only when the request is superseded
// or every waiting caller has gone away.
func Do[T any](ctx context.Context, g *Group, owner, key string, fn Func[T]) (T, error) {
	var zero T

	f := g.acquire(ctx, owner, key)
	defer g.release(owner, f)

	ch := g.sf.DoChan(owner+"\x00"+key+"\x00"+strconv.FormatUint(f.gen, 10), func() (any, error) {
		return fn(f.ctx)
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if !g.isLatest(owner, f) {
			return zero, ErrSuperseded
		}
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(T)
		return v, nil
	}
}

// Forget drops the state of every owner starting with prefix, cancelling
// their in-flight requests.
func (g *Group) Forget(prefix string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for owner, f := range g.latest {
		if strings.HasPrefix(owner, prefix) {
			f.cancel()
			delete(g.latest, owner)
		}
	}
}

func (g *Group) acquire(ctx context.Context, owner, key string) *flight {
	g.mu.Lock()
	defer g.mu.Unlock()

	f, ok := g.latest[owner]
	if !ok || f.key != key {
		if ok {
			f.cancel()
		}
		g.gen++
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{key: key, gen: g.gen, ctx: fctx, cancel: cancel}
		g.latest[owner] = f
	}
	f.refs++
	return f
}

func (g *Group) release(owner string, f *flight) {
	g.mu.Lock()
	defer g.mu.Unlock()

	f.refs--
	if f.refs > 0 {
		return
	}
	f.cancel()
	if g.latest[owner] == f {
		delete(g.latest, owner)
	}
}

func (g *Group) isLatest(owner string, f *flight) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	cur, ok := g.latest[owner]
	return ok && cur == f
}
