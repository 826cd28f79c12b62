package fetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (g *Group) waiting(owner string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if f, ok := g.latest[owner]; ok {
		return f.refs
	}
	return 0
}

func (g *Group) size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.latest)
}

type result struct {
	val string
	err error
}

func TestDo_ReturnsValue(t *testing.T) {
	g := NewGroup()

	v, err := Do(context.Background(), g, "s1|assets", "page=1", func(ctx context.Context) (string, error) {
		return "rows", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "rows", v)
	assert.Equal(t, 0, g.size())
}

func TestDo_PropagatesError(t *testing.T) {
	g := NewGroup()
	boom := errors.New("boom")

	_, err := Do(context.Background(), g, "s1|assets", "page=1", func(ctx context.Context) (int, error) {
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestDo_SameKeySharesOneRequest(t *testing.T) {
	g := NewGroup()
	var calls atomic.Int32
	release := make(chan struct{})

	fn := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "rows", nil
	}

	results := make(chan result, 2)
	for i := 0; i < 2; i++ {
		go func() {
			v, err := Do(context.Background(), g, "s1|assets", "page=2", fn)
			results <- result{v, err}
		}()
	}

	require.Eventually(t, func() bool { return g.waiting("s1|assets") == 2 }, time.Second, time.Millisecond)
	close(release)

	for i := 0; i < 2; i++ {
		r := <-results
		require.NoError(t, r.err)
		assert.Equal(t, "rows", r.val)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 0, g.size())
}

func TestDo_NewKeyCancelsPrevious(t *testing.T) {
	g := NewGroup()
	started := make(chan struct{})
	cancelled := make(chan struct{})

	first := make(chan result, 1)
	go func() {
		v, err := Do(context.Background(), g, "s1|assets", "states=ASSIGNED,AVAILABLE", func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return "", ctx.Err()
		})
		first <- result{v, err}
	}()
	<-started

	v, err := Do(context.Background(), g, "s1|assets", "states=ASSIGNED", func(ctx context.Context) (string, error) {
		return "assigned only", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "assigned only", v)

	<-cancelled
	r := <-first
	assert.ErrorIs(t, r.err, ErrSuperseded)
}

func TestDo_StaleResponseNeverWins(t *testing.T) {
	g := NewGroup()
	started := make(chan struct{})
	release := make(chan struct{})

	slow := make(chan result, 1)
	go func() {
		// ignores cancellation and answers late
		v, err := Do(context.Background(), g, "s1|users", "search=a", func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
		slow <- result{v, err}
	}()
	<-started

	v, err := Do(context.Background(), g, "s1|users", "search=ab", func(ctx context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)

	close(release)
	r := <-slow
	assert.ErrorIs(t, r.err, ErrSuperseded)
	assert.Empty(t, r.val)
}

func TestDo_OwnersAreIndependent(t *testing.T) {
	g := NewGroup()
	started := make(chan struct{})
	release := make(chan struct{})

	other := make(chan result, 1)
	go func() {
		v, err := Do(context.Background(), g, "s2|assets", "page=1", func(ctx context.Context) (string, error) {
			close(started)
			select {
			case <-release:
				return "s2 rows", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		})
		other <- result{v, err}
	}()
	<-started

	_, err := Do(context.Background(), g, "s1|assets", "page=3", func(ctx context.Context) (string, error) {
		return "s1 rows", nil
	})
	require.NoError(t, err)

	close(release)
	r := <-other
	require.NoError(t, r.err)
	assert.Equal(t, "s2 rows", r.val)
}

func TestDo_CallerCancellation(t *testing.T) {
	g := NewGroup()
	ctx, cancel := context.WithCancel(context.Background())
	flightDone := make(chan error, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := Do(ctx, g, "s1|assets", "page=1", func(fctx context.Context) (string, error) {
			cancel()
			<-fctx.Done()
			flightDone <- fctx.Err()
			return "", fctx.Err()
		})
		assert.ErrorIs(t, err, context.Canceled)
	}()
	wg.Wait()

	// the last waiter leaving cancels the shared request
	assert.ErrorIs(t, <-flightDone, context.Canceled)
	assert.Equal(t, 0, g.size())
}

func TestDo_KeepsContextValues(t *testing.T) {
	type key struct{}
	g := NewGroup()
	ctx := context.WithValue(context.Background(), key{}, "token")

	v, err := Do(ctx, g, "s1|assets", "page=1", func(ctx context.Context) (string, error) {
		s, _ := ctx.Value(key{}).(string)
		return s, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "token", v)
}

func TestForget(t *testing.T) {
	g := NewGroup()
	started := make(chan struct{})

	done := make(chan result, 1)
	go func() {
		v, err := Do(context.Background(), g, "s1|assets", "page=1", func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			return "", ctx.Err()
		})
		done <- result{v, err}
	}()
	<-started

	g.Forget("s1|assets")

	r := <-done
	assert.ErrorIs(t, r.err, ErrSuperseded)
}

func TestForget_DropsEveryOwnerWithPrefix(t *testing.T) {
	g := NewGroup()
	started := make(chan struct{}, 3)
	release := make(chan struct{})

	owners := []string{"s1|assets|t1", "s1|users|t2", "s2|assets|t1"}
	results := make([]result, len(owners))
	var wg sync.WaitGroup
	for i, owner := range owners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Do(context.Background(), g, owner, "page=1", func(ctx context.Context) (string, error) {
				started <- struct{}{}
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-release:
					return "rows", nil
				}
			})
			results[i] = result{v, err}
		}()
	}
	for range owners {
		<-started
	}

	g.Forget("s1|")
	close(release)
	wg.Wait()

	assert.ErrorIs(t, results[0].err, ErrSuperseded)
	assert.ErrorIs(t, results[1].err, ErrSuperseded)
	require.NoError(t, results[2].err)
	assert.Equal(t, "rows", results[2].val)
}
