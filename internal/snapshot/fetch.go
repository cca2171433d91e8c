package snapshot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"recondash/internal/storage"
)

// Fetcher reads snapshot bytes from any supported location.
type Fetcher struct {
	store storage.Storage
	http  *resty.Client
}

// NewFetcher builds a Fetcher. store may be nil when no s3:// sources are used.
func NewFetcher(store storage.Storage) *Fetcher {
	client := resty.New()
	client.
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetTimeout(60 * time.Second)
	return &Fetcher{store: store, http: client}
}

// WithHTTPClient replaces the HTTP client, mainly for tests.
func (f *Fetcher) WithHTTPClient(c *resty.Client) *Fetcher {
	f.http = c
	return f
}

// Fetch returns the full content of loc.
func (f *Fetcher) Fetch(ctx context.Context, loc Location) ([]byte, error) {
	switch loc.Kind {
	case KindFile:
		b, err := os.ReadFile(loc.Path)
		if err != nil {
			return nil, fmt.Errorf("read snapshot file: %w", err)
		}
		return b, nil
	case KindS3:
		if f.store == nil {
			return nil, fmt.Errorf("fetch %s: object storage is not configured", loc.Raw)
		}
		rc, _, err := f.store.Get(ctx, loc.Bucket, loc.Path)
		if err != nil {
			return nil, fmt.Errorf("get snapshot object: %w", err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read snapshot object: %w", err)
		}
		return b, nil
	case KindHTTP:
		resp, err := f.http.R().SetContext(ctx).Get(loc.URL)
		if err != nil {
			return nil, fmt.Errorf("download snapshot: %w", err)
		}
		if resp.StatusCode() >= http.StatusBadRequest {
			return nil, fmt.Errorf("download snapshot: %s returned %d", loc.URL, resp.StatusCode())
		}
		return resp.Body(), nil
	}
	return nil, fmt.Errorf("unknown snapshot location kind %q", loc.Kind)
}
