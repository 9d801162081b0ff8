package order

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront-orders/internal/domain"
	"storefront-orders/internal/repository/document"
)

// BadRequestError marks a caller error: malformed body shape or missing
// required fields. Anything else the service returns is a server fault.
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string { return e.Reason }

func badRequest(reason string) error { return &BadRequestError{Reason: reason} }

// Service accepts inbound orders and persists them into the shared orders
// document with a read-modify-write guarded by the store's concurrency token.
type Service struct {
	docs   document.Repository
	logger *log.Logger
	now    func() time.Time
}

func New(docs document.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{docs: docs, logger: logger, now: time.Now}
}

// NormalizeBody converts a raw request body into an order object. Accepted
// shapes: a JSON object, or a JSON string whose content is itself a JSON
// object ("" parses to an empty object). Anything else is a bad request.
func NormalizeBody(raw []byte) (map[string]any, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return map[string]any{}, nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return nil, badRequest("invalid JSON body")
	}

	switch v := decoded.(type) {
	case map[string]any:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return map[string]any{}, nil
		}
		var inner any
		if err := json.Unmarshal([]byte(v), &inner); err != nil {
			return nil, badRequest("invalid JSON body")
		}
		obj, ok := inner.(map[string]any)
		if !ok {
			return nil, badRequest("request body must be an object")
		}
		return obj, nil
	default:
		return nil, badRequest("request body must be an object")
	}
}

// Accept validates the order object, assigns identity, and appends it at the
// head of the shared document. It returns the assigned id.
func (s *Service) Accept(ctx context.Context, order map[string]any) (string, error) {
	if order == nil {
		return "", badRequest("request body must be an object")
	}
	if !hasField(order, "fullName") && !hasField(order, "phone") {
		return "", badRequest("missing required fields: fullName or phone")
	}

	doc, err := s.docs.Fetch(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch orders document: %w", err)
	}

	contents, orders, err := decodeDocument(doc.Content)
	if err != nil {
		return "", err
	}

	id := stringField(order, "id")
	if id == "" {
		id = s.newID(orders)
		order["id"] = id
	}
	if stringField(order, "status") == "" {
		order["status"] = domain.StatusPending
	}

	contents[domain.DocumentOrdersKey] = append([]any{order}, orders...)

	encoded, err := json.MarshalIndent(contents, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode orders document: %w", err)
	}
	if err := s.docs.Write(ctx, document.Document{Content: encoded, Token: doc.Token}); err != nil {
		return "", fmt.Errorf("write orders document: %w", err)
	}

	s.logger.Printf("order service: accepted id=%s orders=%d", id, len(orders)+1)
	return id, nil
}

// decodeDocument parses the document content, normalizing a missing document
// to an empty object and a missing or non-array orders field to an empty
// sequence.
func decodeDocument(content []byte) (map[string]any, []any, error) {
	contents := map[string]any{}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &contents); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrBadDocument, err)
		}
	}
	orders, _ := contents[domain.DocumentOrdersKey].([]any)
	if orders == nil {
		orders = []any{}
	}
	return contents, orders, nil
}

// newID derives an id from the submission time, with a random suffix so two
// submissions within the same millisecond cannot collide. Regenerates if the
// document somehow already holds the id.
func (s *Service) newID(existing []any) string {
	for {
		id := strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + uuid.NewString()[:8]
		if !containsID(existing, id) {
			return id
		}
	}
}

func containsID(orders []any, id string) bool {
	for _, o := range orders {
		if m, ok := o.(map[string]any); ok && stringField(m, "id") == id {
			return true
		}
	}
	return false
}

func hasField(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
