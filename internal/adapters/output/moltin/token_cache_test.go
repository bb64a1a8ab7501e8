package moltin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront-bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenServer issues token-1, token-2, ... valid for ttl from the cache's clock
type tokenServer struct {
	calls  atomic.Int32
	ttl    time.Duration
	now    func() time.Time
	status int
	delay  time.Duration
}

func (s *tokenServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n := s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.status != 0 {
		w.WriteHeader(s.status)
		fmt.Fprint(w, `{"errors":[{"title":"Unauthorized"}]}`)
		return
	}
	if r.URL.Path != tokenPath || r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "implicit" || r.PostForm.Get("client_id") != "client-id" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"access_token":"token-%d","expires":%d,"token_type":"Bearer"}`, n, s.now().Add(s.ttl).Unix())
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestTokenCache(t *testing.T, srv *tokenServer) (*TokenCache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	srv.now = clock.Now
	server := httptest.NewServer(srv)
	t.Cleanup(server.Close)

	cache := NewTokenCache(server.Client(), server.URL, "client-id", 10*time.Second)
	cache.now = clock.Now
	return cache, clock
}

func TestAuthHeaderRefreshesOnFirstUse(t *testing.T) {
	srv := &tokenServer{ttl: time.Hour}
	cache, _ := newTestTokenCache(t, srv)

	header, err := cache.AuthHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", header)
	assert.Equal(t, int32(1), srv.calls.Load())

	// Cached until expiry minus skew
	header, err = cache.AuthHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", header)
	assert.Equal(t, int32(1), srv.calls.Load())
}

func TestAuthHeaderRefreshesAtExpiryMinusSkew(t *testing.T) {
	srv := &tokenServer{ttl: time.Minute}
	cache, clock := newTestTokenCache(t, srv)

	_, err := cache.AuthHeader(context.Background())
	require.NoError(t, err)

	clock.Advance(49 * time.Second)
	header, err := cache.AuthHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", header, "still outside the skew window")

	clock.Advance(time.Second)
	header, err = cache.AuthHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-2", header, "at expiry minus skew the token is replaced")
	assert.Equal(t, int32(2), srv.calls.Load())
}

func TestAuthHeaderSingleFlightUnderConcurrency(t *testing.T) {
	srv := &tokenServer{ttl: time.Minute, delay: 50 * time.Millisecond}
	cache, clock := newTestTokenCache(t, srv)

	_, err := cache.AuthHeader(context.Background())
	require.NoError(t, err)
	clock.Advance(time.Minute)

	const workers = 32
	var wg sync.WaitGroup
	headers := make([]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			headers[i], errs[i] = cache.AuthHeader(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "Bearer token-2", headers[i])
	}
	assert.Equal(t, int32(2), srv.calls.Load(), "expired credential must be refreshed exactly once")
}

func TestRefreshFailureKeepsPreviousCredential(t *testing.T) {
	srv := &tokenServer{ttl: time.Minute}
	cache, clock := newTestTokenCache(t, srv)

	_, err := cache.AuthHeader(context.Background())
	require.NoError(t, err)
	before := cache.Credential()

	srv.status = http.StatusInternalServerError
	clock.Advance(time.Minute)

	_, err = cache.AuthHeader(context.Background())
	require.Error(t, err)

	var authErr *domain.AuthError
	assert.True(t, errors.As(err, &authErr))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, before, cache.Credential())

	// The next call attempt retries the refresh
	srv.status = 0
	header, err := cache.AuthHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-3", header)
}

func TestForceRefreshReplacesRejectedToken(t *testing.T) {
	srv := &tokenServer{ttl: time.Hour}
	cache, _ := newTestTokenCache(t, srv)

	header, err := cache.AuthHeader(context.Background())
	require.NoError(t, err)

	require.NoError(t, cache.ForceRefresh(context.Background(), header))
	assert.Equal(t, int32(2), srv.calls.Load())

	// A second worker reporting the same stale header does not trigger another grant
	require.NoError(t, cache.ForceRefresh(context.Background(), header))
	assert.Equal(t, int32(2), srv.calls.Load())

	header, err = cache.AuthHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-2", header)
}

func TestAbandonedCallerDoesNotCorruptCredential(t *testing.T) {
	srv := &tokenServer{ttl: time.Hour, delay: 100 * time.Millisecond}
	cache, _ := newTestTokenCache(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := cache.AuthHeader(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// The detached refresh completes and later callers reuse its result
	require.Eventually(t, func() bool {
		return !cache.Credential().IsZero()
	}, time.Second, 10*time.Millisecond)

	header, err := cache.AuthHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", header)
	assert.Equal(t, int32(1), srv.calls.Load())
}

func TestTokenResponseWithoutExpiryIsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"abc"}`)
	}))
	defer server.Close()

	cache := NewTokenCache(server.Client(), server.URL, "client-id", DefaultTokenSkew)
	_, err := cache.AuthHeader(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.True(t, cache.Credential().IsZero())
}
