package order

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"storefront-orders/internal/repository/document"
)

// The conditional write depends on a stable encoding: the same document must
// serialize to the same bytes on every run.
func TestDocumentEncodingStable(t *testing.T) {
	existing := `{"site":"demo","orders":[{"id":"1700000000000-aaaa","fullName":"Old","status":"pending"}]}`
	repo := &stubDocRepo{doc: document.Document{Content: []byte(existing), Token: "sha-1"}}
	svc := New(repo, nil)

	body := []byte(`{"id":"1700000001000-bbbb","fullName":"Amal","phone":"+212 612345678","city":"Casablanca","total":120.5}`)
	order, err := NormalizeBody(body)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if _, err := svc.Accept(context.Background(), order); err != nil {
		t.Fatalf("accept: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "orders_document", repo.written.Content)
}
