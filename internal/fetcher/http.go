package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPOptions configures the HTTP provider.
type HTTPOptions struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	// RatePerHost limits requests per second per host. Carrier portals
	// throttle aggressively.
	RatePerHost rate.Limit
}

// HTTPProvider downloads roster exports over HTTP(S) with retries and a
// per-host rate limit.
type HTTPProvider struct {
	client  *http.Client
	opts    HTTPOptions
	mu      sync.Mutex
	limiter map[string]*rate.Limiter
}

// NewHTTPProvider creates an HTTPProvider with the given options.
func NewHTTPProvider(opts HTTPOptions) *HTTPProvider {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 2
	}
	if opts.RatePerHost == 0 {
		opts.RatePerHost = 2
	}
	return &HTTPProvider{
		client:  &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: make(map[string]*rate.Limiter),
	}
}

// Fetch downloads the URL body.
func (h *HTTPProvider) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: parse url %s", rawURL)
	}

	var lastErr error
	for attempt := 0; attempt <= h.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			zap.L().Debug("fetcher: retrying download",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, eris.Wrap(ctx.Err(), "fetcher: context cancelled")
			}
		}

		if err := h.hostLimiter(u.Host).Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "fetcher: rate limit wait")
		}

		data, err := h.download(ctx, rawURL)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (h *HTTPProvider) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: build request")
	}
	if h.opts.UserAgent != "" {
		req.Header.Set("User-Agent", h.opts.UserAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: get %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("fetcher: get %s: status %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: read body %s", rawURL)
	}
	return data, nil
}

func (h *HTTPProvider) hostLimiter(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.limiter[host]
	if !ok {
		l = rate.NewLimiter(h.opts.RatePerHost, 1)
		h.limiter[host] = l
	}
	return l
}
