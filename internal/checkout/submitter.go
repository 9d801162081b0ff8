package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"storefront-orders/internal/domain"
)

// Submitter delivers an order draft to a resolved endpoint. A 2xx response
// status is the sole success signal; the response body is never used to
// alter control flow.
type Submitter struct {
	Client *http.Client
	Logger *log.Logger
}

// Submit POSTs the draft as JSON. Every failure (serialization, transport,
// non-2xx) collapses to false; it never returns an error.
func (s *Submitter) Submit(ctx context.Context, url string, draft domain.OrderDraft) bool {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	body, err := json.Marshal(draft)
	if err != nil {
		logger.Printf("submitter: encode error=%v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logger.Printf("submitter: build request error=%v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		logger.Printf("submitter: transport error=%v", err)
		return false
	}
	defer resp.Body.Close()

	// Best-effort peek at the body for the logs only.
	peek, _ := io.ReadAll(io.LimitReader(resp.Body, 256))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Printf("submitter: rejected status=%d body=%s", resp.StatusCode, peek)
		return false
	}
	logger.Printf("submitter: accepted status=%d body=%s", resp.StatusCode, peek)
	return true
}
