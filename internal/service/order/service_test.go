package order

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"storefront-orders/internal/domain"
	"storefront-orders/internal/repository/document"
)

type stubDocRepo struct {
	doc        document.Document
	fetchErr   error
	writeErr   error
	fetchCalls int
	writeCalls int
	written    document.Document
}

func (s *stubDocRepo) Fetch(_ context.Context) (document.Document, error) {
	s.fetchCalls++
	return s.doc, s.fetchErr
}

func (s *stubDocRepo) Write(_ context.Context, doc document.Document) error {
	s.writeCalls++
	s.written = doc
	return s.writeErr
}

func writtenOrders(t *testing.T, repo *stubDocRepo) []map[string]any {
	t.Helper()
	var doc struct {
		Orders []map[string]any `json:"orders"`
	}
	if err := json.Unmarshal(repo.written.Content, &doc); err != nil {
		t.Fatalf("written document is not valid JSON: %v", err)
	}
	return doc.Orders
}

func TestNormalizeBody(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr bool
		wantLen int
	}{
		{"object", `{"fullName":"Amal"}`, false, 1},
		{"json-encoded string", `"{\"fullName\":\"Amal\"}"`, false, 1},
		{"empty body", ``, false, 0},
		{"empty string", `""`, false, 0},
		{"malformed", `{"fullName":`, true, 0},
		{"malformed inner", `"{\"fullName\""`, true, 0},
		{"array", `[1,2]`, true, 0},
		{"number", `42`, true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obj, err := NormalizeBody([]byte(tc.raw))
			if tc.wantErr {
				var badReq *BadRequestError
				if !errors.As(err, &badReq) {
					t.Fatalf("expected bad request, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(obj) != tc.wantLen {
				t.Fatalf("expected %d fields, got %d", tc.wantLen, len(obj))
			}
		})
	}
}

func TestAcceptRejectsMissingIdentityFields(t *testing.T) {
	repo := &stubDocRepo{}
	svc := New(repo, nil)

	_, err := svc.Accept(context.Background(), map[string]any{"city": "Rabat"})
	var badReq *BadRequestError
	if !errors.As(err, &badReq) {
		t.Fatalf("expected bad request, got %v", err)
	}
	if !strings.Contains(badReq.Reason, "fullName") || !strings.Contains(badReq.Reason, "phone") {
		t.Fatalf("reason should name the missing fields, got %q", badReq.Reason)
	}
	if repo.fetchCalls != 0 || repo.writeCalls != 0 {
		t.Fatalf("rejected order must not touch the store")
	}
}

func TestAcceptCreatesOrdersArray(t *testing.T) {
	repo := &stubDocRepo{doc: document.Document{Content: []byte(`{"site":"demo"}`)}}
	svc := New(repo, nil)

	id, err := svc.Accept(context.Background(), map[string]any{"fullName": "Amal", "phone": "+212 612345678"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatalf("expected assigned id")
	}

	orders := writtenOrders(t, repo)
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}
	if orders[0]["id"] != id {
		t.Fatalf("expected id %q in document, got %v", id, orders[0]["id"])
	}
	if orders[0]["status"] != domain.StatusPending {
		t.Fatalf("expected pending status, got %v", orders[0]["status"])
	}

	// Fields beyond the document's orders survive the rewrite.
	var doc map[string]any
	if err := json.Unmarshal(repo.written.Content, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["site"] != "demo" {
		t.Fatalf("document fields lost: %v", doc)
	}
}

func TestAcceptPrependsNewestFirst(t *testing.T) {
	existing := `{"orders":[{"id":"old-1","fullName":"Old"}]}`
	repo := &stubDocRepo{doc: document.Document{Content: []byte(existing), Token: "sha-1"}}
	svc := New(repo, nil)

	_, err := svc.Accept(context.Background(), map[string]any{"fullName": "Amal"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orders := writtenOrders(t, repo)
	if len(orders) != 2 {
		t.Fatalf("expected two orders, got %d", len(orders))
	}
	if orders[0]["fullName"] != "Amal" {
		t.Fatalf("new order must be first, got %v", orders[0])
	}
	if orders[1]["id"] != "old-1" {
		t.Fatalf("prior order must follow, got %v", orders[1])
	}
	if repo.written.Token != "sha-1" {
		t.Fatalf("write must carry the token read in the same invocation, got %q", repo.written.Token)
	}
}

func TestAcceptNormalizesInvalidOrdersField(t *testing.T) {
	repo := &stubDocRepo{doc: document.Document{Content: []byte(`{"orders":"oops"}`)}}
	svc := New(repo, nil)

	if _, err := svc.Accept(context.Background(), map[string]any{"phone": "0612"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(writtenOrders(t, repo)); got != 1 {
		t.Fatalf("expected normalized single-order array, got %d", got)
	}
}

func TestAcceptKeepsCallerID(t *testing.T) {
	repo := &stubDocRepo{}
	svc := New(repo, nil)

	id, err := svc.Accept(context.Background(), map[string]any{"fullName": "Amal", "id": "retry-1", "status": "confirmed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "retry-1" {
		t.Fatalf("caller id must be kept, got %q", id)
	}
	orders := writtenOrders(t, repo)
	if orders[0]["status"] != "confirmed" {
		t.Fatalf("caller status must be kept, got %v", orders[0]["status"])
	}
}

func TestAcceptGeneratedIDsAreUnique(t *testing.T) {
	repo := &stubDocRepo{}
	svc := New(repo, nil)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := svc.Accept(context.Background(), map[string]any{"fullName": "Amal"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestAcceptSurfacesConflict(t *testing.T) {
	repo := &stubDocRepo{writeErr: domain.ErrConflict}
	svc := New(repo, nil)

	_, err := svc.Accept(context.Background(), map[string]any{"fullName": "Amal"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict to propagate, got %v", err)
	}
}

func TestAcceptBadDocument(t *testing.T) {
	repo := &stubDocRepo{doc: document.Document{Content: []byte(`not json`)}}
	svc := New(repo, nil)

	_, err := svc.Accept(context.Background(), map[string]any{"fullName": "Amal"})
	if !errors.Is(err, domain.ErrBadDocument) {
		t.Fatalf("expected bad document error, got %v", err)
	}
	if repo.writeCalls != 0 {
		t.Fatalf("must not overwrite an undecodable document")
	}
}

func TestAcceptFetchError(t *testing.T) {
	repo := &stubDocRepo{fetchErr: errors.New("store unreachable")}
	svc := New(repo, nil)

	_, err := svc.Accept(context.Background(), map[string]any{"fullName": "Amal"})
	if err == nil {
		t.Fatalf("expected error")
	}
	var badReq *BadRequestError
	if errors.As(err, &badReq) {
		t.Fatalf("store failures are server faults, not bad requests")
	}
}
