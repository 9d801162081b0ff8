// Package remotecfg supplies the order endpoint URL from a remote
// configuration document that may be slow to sync on first load.
package remotecfg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
)

// Provider is the configuration source consulted by the endpoint resolver.
type Provider interface {
	// WaitReady blocks until the initial configuration sync has finished,
	// successfully or not, or the context is done.
	WaitReady(ctx context.Context) error
	// EndpointURL returns the configured submission URL, possibly empty.
	EndpointURL() string
	// Refresh re-fetches the configuration document on demand.
	Refresh(ctx context.Context) error
}

// httpProvider loads a JSON document of the form {"orderEndpoint": "..."}.
type httpProvider struct {
	client *http.Client
	logger *log.Logger
	url    string

	mu       sync.Mutex
	once     sync.Once
	ready    chan struct{}
	endpoint string
}

// NewHTTP builds a Provider backed by the config document at url. The first
// WaitReady triggers the initial fetch.
func NewHTTP(url string, client *http.Client, logger *log.Logger) Provider {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &httpProvider{
		client: client,
		logger: logger,
		url:    url,
		ready:  make(chan struct{}),
	}
}

func (p *httpProvider) WaitReady(ctx context.Context) error {
	p.once.Do(func() {
		go func() {
			defer close(p.ready)
			if err := p.Refresh(ctx); err != nil {
				p.logger.Printf("remotecfg: initial sync error=%v", err)
			}
		}()
	})
	select {
	case <-p.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *httpProvider) EndpointURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.endpoint
}

func (p *httpProvider) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("build config request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch config: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch config: status %d", resp.StatusCode)
	}

	var doc struct {
		OrderEndpoint string `json:"orderEndpoint"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	p.mu.Lock()
	p.endpoint = doc.OrderEndpoint
	p.mu.Unlock()
	p.logger.Printf("remotecfg: synced endpoint=%q", doc.OrderEndpoint)
	return nil
}
