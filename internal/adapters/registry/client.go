// Package registry implements the Registry port: an HTTP package registry
// client with per-name metadata caching and in-flight request coalescing.
package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL    = "https://registry.npmjs.org"
	httpClientTimeout = 30 * time.Second
)

var _ ports.Registry = (*Client)(nil)

// Client implements ports.Registry against an npm-compatible HTTP registry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     ports.Logger

	mu       sync.RWMutex
	metadata map[string]*domain.RegistryPackage

	// metaFlights coalesces concurrent metadata fetches for one name;
	// downloads coalesces concurrent downloads for one (identity, target).
	// Keys are cleared when an operation settles, so failures do not poison
	// later retries.
	metaFlights singleflight.Group
	downloads   singleflight.Group
}

// NewClient creates a Client against the default registry.
func NewClient(logger ports.Logger) *Client {
	return NewClientWith(defaultBaseURL, &http.Client{Timeout: httpClientTimeout}, logger)
}

// NewClientWith creates a Client with a custom base URL and http client
// (used for testing).
func NewClientWith(baseURL string, httpClient *http.Client, logger ports.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		metadata:   make(map[string]*domain.RegistryPackage),
	}
}

// PackageMetadata returns the registry record for name, fetching it at most
// once per client lifetime. Concurrent first fetches for the same name share
// one request.
func (c *Client) PackageMetadata(ctx context.Context, name string) (*domain.RegistryPackage, error) {
	c.mu.RLock()
	cached, ok := c.metadata[name]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err, _ := c.metaFlights.Do(name, func() (any, error) {
		pkg, err := c.fetchMetadata(ctx, name)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.metadata[name] = pkg
		c.mu.Unlock()
		return pkg, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.RegistryPackage), nil
}

func (c *Client) fetchMetadata(ctx context.Context, name string) (*domain.RegistryPackage, error) {
	// Scoped names keep their @ but escape the inner separator.
	endpoint := c.baseURL + "/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, zerr.With(domain.ErrPackageNotFound, "name", name)
	}
	if resp.StatusCode != http.StatusOK {
		reqErr := zerr.With(domain.ErrRegistryRequestFailed, "status_code", resp.StatusCode)
		return nil, zerr.With(reqErr, "name", name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}

	var pkg domain.RegistryPackage
	if err := json.Unmarshal(body, &pkg); err != nil {
		return nil, zerr.Wrap(err, domain.ErrRegistryParseFailed.Error())
	}

	return &pkg, nil
}
