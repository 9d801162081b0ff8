package checkout

import (
	"context"
	"io"
	"log"
	"net/url"
	"strings"

	"storefront-orders/internal/remotecfg"
)

// Resolver determines the remote submission URL, tolerating slow or failed
// configuration sync: one bounded refresh retry, then the declared default.
type Resolver struct {
	// Source is the configuration provider; nil means none is available and
	// only DefaultURL is consulted.
	Source remotecfg.Provider
	// DefaultURL is the page-declared fallback endpoint, possibly empty.
	DefaultURL string
	// Secure marks the caller's context as HTTPS-served; http candidates are
	// then upgraded to https, never the reverse.
	Secure bool
	Logger *log.Logger
}

// Resolve returns the endpoint URL to submit to, or false when none is
// usable. It never returns an error; failures fall through to the fallback.
func (r *Resolver) Resolve(ctx context.Context) (string, bool) {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if r.Source == nil {
		return r.fallback(logger)
	}

	if err := r.Source.WaitReady(ctx); err != nil {
		logger.Printf("resolver: config readiness error=%v", err)
		return r.fallback(logger)
	}

	if u, ok := r.normalize(r.Source.EndpointURL()); ok {
		return u, true
	}

	// The configured value is absent or unusable: refresh once and re-read.
	if err := r.Source.Refresh(ctx); err != nil {
		logger.Printf("resolver: refresh error=%v", err)
	}
	if u, ok := r.normalize(r.Source.EndpointURL()); ok {
		logger.Printf("resolver: endpoint available after refresh")
		return u, true
	}

	return r.fallback(logger)
}

func (r *Resolver) fallback(logger *log.Logger) (string, bool) {
	if u, ok := r.normalize(r.DefaultURL); ok {
		logger.Printf("resolver: using declared default endpoint")
		return u, true
	}
	logger.Printf("resolver: no usable endpoint")
	return "", false
}

// normalize validates the candidate as an absolute http(s) URL and applies
// the secure-context upgrade.
func (r *Resolver) normalize(candidate string) (string, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", false
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" {
		return "", false
	}
	switch u.Scheme {
	case "https":
		return u.String(), true
	case "http":
		if r.Secure {
			u.Scheme = "https"
		}
		return u.String(), true
	default:
		return "", false
	}
}
