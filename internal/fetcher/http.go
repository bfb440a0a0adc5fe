// Package fetcher downloads district boundary files over HTTP with rate
// limiting and retries.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cityscale/healthatlas/internal/resilience"
)

// HTTPFetcher downloads files using net/http with retry and a shared
// rate limiter.
type HTTPFetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	retry     resilience.RetryConfig
	userAgent string
}

// Options configures an HTTPFetcher.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSec throttles outgoing requests. Zero means unlimited.
	RequestsPerSec float64
	Retry          resilience.RetryConfig
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1)
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		limiter:   limiter,
		retry:     opts.Retry,
		userAgent: opts.UserAgent,
	}
}

// Download fetches url into the file at dest, retrying transient
// failures. The destination is only written on success.
func (f *HTTPFetcher) Download(ctx context.Context, url, dest string) error {
	log := zap.L().With(zap.String("component", "fetcher"), zap.String("url", url))
	log.Info("fetcher: downloading")

	return resilience.Do(ctx, f.retry, func(ctx context.Context) error {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return eris.Wrap(err, "fetcher: rate limit wait")
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return eris.Wrapf(err, "fetcher: build request %s", url)
		}
		if f.userAgent != "" {
			req.Header.Set("User-Agent", f.userAgent)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return eris.Wrapf(err, "fetcher: get %s", url)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			err := eris.Errorf("fetcher: %s returned status %d", url, resp.StatusCode)
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return resilience.NewTransientError(err, resp.StatusCode)
			}
			return err
		}

		// Same directory as dest so the final rename is atomic.
		tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
		if err != nil {
			return eris.Wrap(err, "fetcher: create temp file")
		}
		tmpName := tmp.Name()
		if _, err := io.Copy(tmp, resp.Body); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
			return eris.Wrapf(err, "fetcher: copy %s", url)
		}
		if err := tmp.Close(); err != nil {
			_ = os.Remove(tmpName)
			return eris.Wrap(err, "fetcher: close temp file")
		}
		if err := os.Rename(tmpName, dest); err != nil {
			_ = os.Remove(tmpName)
			return eris.Wrapf(err, "fetcher: move to %s", dest)
		}
		return nil
	})
}
