package offline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Policy selects how a request interacts with the cache.
type Policy int

const (
	// PolicyPassthrough never touches the cache. Applied to cataloged tool
	// links; third-party destinations are not ours to cache.
	PolicyPassthrough Policy = iota
	// PolicyNetworkFirst prefers a fresh response, falling back to the cache
	// when the network is down. Applied to the app shell.
	PolicyNetworkFirst
	// PolicyStaleWhileRevalidate serves the cached copy immediately and
	// refreshes it in the background. Applied to library and font CDNs.
	PolicyStaleWhileRevalidate
)

// Result is a fetched asset, from the network or the cache.
type Result struct {
	Body        []byte
	ContentType string
	FromCache   bool
	FetchedAt   time.Time
}

// Fetcher retrieves assets with per-origin caching policies.
type Fetcher struct {
	client       *http.Client
	cache        *Cache
	logger       *slog.Logger
	appHosts     map[string]bool
	libraryHosts map[string]bool

	// refreshes tracks in-flight background revalidations so a burst of
	// requests for the same asset refreshes it once.
	mu        sync.Mutex
	refreshes map[string]bool
}

// NewFetcher creates a fetcher. appHosts are served network-first;
// libraryHosts stale-while-revalidate; everything else passes through
// uncached. A nil client gets a 30s-timeout default.
func NewFetcher(client *http.Client, cache *Cache, appHosts, libraryHosts []string, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{
		client:       client,
		cache:        cache,
		logger:       logger,
		appHosts:     hostSet(appHosts),
		libraryHosts: hostSet(libraryHosts),
		refreshes:    make(map[string]bool),
	}
}

// PolicyFor returns the caching policy applied to rawURL.
func (f *Fetcher) PolicyFor(rawURL string) Policy {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PolicyPassthrough
	}
	host := u.Hostname()
	switch {
	case f.libraryHosts[host]:
		return PolicyStaleWhileRevalidate
	case host == "" || f.appHosts[host]:
		return PolicyNetworkFirst
	default:
		return PolicyPassthrough
	}
}

// Fetch retrieves rawURL under its policy.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	switch f.PolicyFor(rawURL) {
	case PolicyStaleWhileRevalidate:
		return f.fetchStaleWhileRevalidate(ctx, rawURL)
	case PolicyNetworkFirst:
		return f.fetchNetworkFirst(ctx, rawURL)
	default:
		return f.fetchDirect(ctx, rawURL)
	}
}

// Precache fetches and stores each URL, tolerating individual failures.
// Called once at startup to warm the shell and library assets.
func (f *Fetcher) Precache(ctx context.Context, urls []string) {
	for _, rawURL := range urls {
		if f.PolicyFor(rawURL) == PolicyPassthrough {
			continue
		}
		if _, err := f.Fetch(ctx, rawURL); err != nil && f.logger != nil {
			f.logger.Warn("precache fetch failed", slog.String("url", rawURL), slog.Any("error", err))
		}
	}
}

func (f *Fetcher) fetchDirect(ctx context.Context, rawURL string) (*Result, error) {
	body, contentType, err := f.doRequest(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return &Result{Body: body, ContentType: contentType, FetchedAt: time.Now()}, nil
}

func (f *Fetcher) fetchNetworkFirst(ctx context.Context, rawURL string) (*Result, error) {
	body, contentType, err := f.doRequest(ctx, rawURL)
	if err == nil {
		f.store(rawURL, contentType, body)
		return &Result{Body: body, ContentType: contentType, FetchedAt: time.Now()}, nil
	}

	entry, cached, cacheErr := f.cache.Get(rawURL)
	if cacheErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if f.logger != nil {
		f.logger.Info("network unavailable, serving cached asset", slog.String("url", rawURL))
	}
	return &Result{Body: cached, ContentType: entry.ContentType, FromCache: true, FetchedAt: entry.FetchedAt}, nil
}

func (f *Fetcher) fetchStaleWhileRevalidate(ctx context.Context, rawURL string) (*Result, error) {
	entry, cached, err := f.cache.Get(rawURL)
	if err == nil {
		f.refreshInBackground(rawURL)
		return &Result{Body: cached, ContentType: entry.ContentType, FromCache: true, FetchedAt: entry.FetchedAt}, nil
	}

	body, contentType, err := f.doRequest(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	f.store(rawURL, contentType, body)
	return &Result{Body: body, ContentType: contentType, FetchedAt: time.Now()}, nil
}

func (f *Fetcher) refreshInBackground(rawURL string) {
	f.mu.Lock()
	if f.refreshes[rawURL] {
		f.mu.Unlock()
		return
	}
	f.refreshes[rawURL] = true
	f.mu.Unlock()

	go func() {
		defer func() {
			f.mu.Lock()
			delete(f.refreshes, rawURL)
			f.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		body, contentType, err := f.doRequest(ctx, rawURL)
		if err != nil {
			if f.logger != nil {
				f.logger.Debug("background revalidation failed", slog.String("url", rawURL), slog.Any("error", err))
			}
			return
		}
		f.store(rawURL, contentType, body)
	}()
}

func (f *Fetcher) store(rawURL, contentType string, body []byte) {
	if err := f.cache.Put(rawURL, contentType, body); err != nil && f.logger != nil {
		f.logger.Warn("failed to cache asset", slog.String("url", rawURL), slog.Any("error", err))
	}
}

func (f *Fetcher) doRequest(ctx context.Context, rawURL string) (body []byte, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func hostSet(hosts []string) map[string]bool {
	set := make(map[string]bool, len(hosts))
	for _, host := range hosts {
		set[host] = true
	}
	return set
}
