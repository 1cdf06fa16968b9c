package offline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutGetRoundTrip(t *testing.T) {
	cache, err := OpenCache(t.TempDir(), nil)
	require.NoError(t, err)

	require.NoError(t, cache.Put("https://example.com/app.js", "text/javascript", []byte("console.log(1)")))

	entry, body, err := cache.Get("https://example.com/app.js")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/app.js", entry.URL)
	assert.Equal(t, "text/javascript", entry.ContentType)
	assert.Equal(t, []byte("console.log(1)"), body)
	assert.WithinDuration(t, time.Now(), entry.FetchedAt, time.Minute)
}

func TestCacheMissReportsNotExist(t *testing.T) {
	cache, err := OpenCache(t.TempDir(), nil)
	require.NoError(t, err)

	_, _, err = cache.Get("https://example.com/missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCachePurge(t *testing.T) {
	cache, err := OpenCache(t.TempDir(), nil)
	require.NoError(t, err)

	require.NoError(t, cache.Put("https://example.com/a", "", []byte("a")))
	require.NoError(t, cache.Purge())

	_, _, err = cache.Get("https://example.com/a")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNamespaceMismatchPurgesOnOpen(t *testing.T) {
	dir := t.TempDir()

	cache, err := OpenCache(dir, nil)
	require.NoError(t, err)
	require.NoError(t, cache.Put("https://example.com/a", "", []byte("a")))

	// Rewrite the marker as if an older build populated this cache.
	require.NoError(t, os.WriteFile(filepath.Join(dir, namespaceFile), []byte("osint-terminal-v1.0"), 0o600))

	reopened, err := OpenCache(dir, nil)
	require.NoError(t, err)
	_, _, err = reopened.Get("https://example.com/a")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func testFetcher(t *testing.T, serverURL string) (*Fetcher, *Cache) {
	t.Helper()

	cache, err := OpenCache(t.TempDir(), nil)
	require.NoError(t, err)

	u, err := url.Parse(serverURL)
	require.NoError(t, err)

	fetcher := NewFetcher(
		&http.Client{Timeout: 5 * time.Second},
		cache,
		[]string{u.Hostname()}, // the test server plays the app origin
		[]string{"esm.sh", "fonts.gstatic.com"},
		nil,
	)
	return fetcher, cache
}

func TestPolicySelection(t *testing.T) {
	fetcher, _ := testFetcher(t, "http://127.0.0.1:0")

	assert.Equal(t, PolicyNetworkFirst, fetcher.PolicyFor("http://127.0.0.1:8080/index.html"))
	assert.Equal(t, PolicyStaleWhileRevalidate, fetcher.PolicyFor("https://esm.sh/react@19"))
	assert.Equal(t, PolicyStaleWhileRevalidate, fetcher.PolicyFor("https://fonts.gstatic.com/inter.woff2"))
	assert.Equal(t, PolicyPassthrough, fetcher.PolicyFor("https://www.shodan.io"))
	assert.Equal(t, PolicyPassthrough, fetcher.PolicyFor("::not a url::"))
}

func TestNetworkFirstCachesAndFallsBack(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>shell</html>"))
	}))
	fetcher, _ := testFetcher(t, server.URL)

	shellURL := server.URL + "/index.html"
	result, err := fetcher.Fetch(context.Background(), shellURL)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, []byte("<html>shell</html>"), result.Body)
	assert.Equal(t, int32(1), hits.Load())

	// Network gone; the cached shell is served instead.
	server.Close()
	result, err = fetcher.Fetch(context.Background(), shellURL)
	require.NoError(t, err)
	assert.True(t, result.FromCache)
	assert.Equal(t, []byte("<html>shell</html>"), result.Body)
	assert.Equal(t, "text/html", result.ContentType)
}

func TestNetworkFirstWithoutCacheFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	fetcher, _ := testFetcher(t, server.URL)
	server.Close()

	_, err := fetcher.Fetch(context.Background(), server.URL+"/never-cached")
	assert.Error(t, err)
}

func TestStaleWhileRevalidateServesCacheAndRefreshes(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("fresh"))
	}))
	defer server.Close()

	cache, err := OpenCache(t.TempDir(), nil)
	require.NoError(t, err)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	// Register the test server as a library host to exercise revalidation.
	fetcher := NewFetcher(&http.Client{Timeout: 5 * time.Second}, cache, nil, []string{u.Hostname()}, nil)

	libURL := server.URL + "/lib.js"

	// Cold: fetched from the network and cached.
	result, err := fetcher.Fetch(context.Background(), libURL)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, int32(1), hits.Load())

	// Warm: served from cache, refreshed in the background.
	result, err = fetcher.Fetch(context.Background(), libURL)
	require.NoError(t, err)
	assert.True(t, result.FromCache)
	assert.Equal(t, []byte("fresh"), result.Body)

	require.Eventually(t, func() bool {
		return hits.Load() >= 2
	}, 2*time.Second, 20*time.Millisecond)
}

func TestPassthroughNeverCaches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("tool page"))
	}))
	defer server.Close()

	cache, err := OpenCache(t.TempDir(), nil)
	require.NoError(t, err)
	// Server host registered nowhere: passthrough.
	fetcher := NewFetcher(&http.Client{Timeout: 5 * time.Second}, cache, nil, nil, nil)

	result, err := fetcher.Fetch(context.Background(), server.URL+"/tool")
	require.NoError(t, err)
	assert.False(t, result.FromCache)

	_, _, err = cache.Get(server.URL + "/tool")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPrecacheSkipsPassthroughAndToleratesFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("asset"))
	}))
	defer server.Close()

	fetcher, cache := testFetcher(t, server.URL)

	fetcher.Precache(context.Background(), []string{
		server.URL + "/shell",
		"https://www.shodan.io",          // passthrough, skipped
		"http://127.0.0.1:1/unreachable", // app host, fails quietly
	})

	_, _, err := cache.Get(server.URL + "/shell")
	assert.NoError(t, err)
	_, _, err = cache.Get("https://www.shodan.io")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
