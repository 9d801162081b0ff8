package document

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-orders/internal/domain"
)

func newRepo(srvURL string) Repository {
	return NewGitHub(GitHubConfig{
		BaseURL: srvURL,
		Token:   "t0ken",
		Owner:   "acme",
		Repo:    "shop-data",
		Branch:  "main",
		Path:    "data/orders.json",
	}, nil, nil)
}

func TestFetchDecodesContentAndToken(t *testing.T) {
	content := `{"orders":[]}`
	var gotAuth, gotPath, gotRef string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotRef = r.URL.Query().Get("ref")
		// The contents API wraps base64 in newlines.
		encoded := base64.StdEncoding.EncodeToString([]byte(content))
		wrapped := encoded[:8] + "\n" + encoded[8:] + "\n"
		json.NewEncoder(w).Encode(map[string]string{"content": wrapped, "sha": "abc123"})
	}))
	defer srv.Close()

	doc, err := newRepo(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(doc.Content) != content {
		t.Fatalf("unexpected content %q", doc.Content)
	}
	if doc.Token != "abc123" {
		t.Fatalf("unexpected token %q", doc.Token)
	}
	if gotAuth != "Bearer t0ken" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotPath != "/repos/acme/shop-data/contents/data/orders.json" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotRef != "main" {
		t.Fatalf("unexpected ref %q", gotRef)
	}
}

func TestFetchMissingDocumentIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	doc, err := newRepo(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("missing document must not be an error, got %v", err)
	}
	if len(doc.Content) != 0 || doc.Token != "" {
		t.Fatalf("expected empty document, got %+v", doc)
	}
}

func TestWriteCarriesToken(t *testing.T) {
	var got struct {
		Message string `json:"message"`
		Content string `json:"content"`
		Branch  string `json:"branch"`
		SHA     string `json:"sha"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newRepo(srv.URL).Write(context.Background(), Document{Content: []byte(`{"orders":[]}`), Token: "abc123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SHA != "abc123" {
		t.Fatalf("write must include the token, got %q", got.SHA)
	}
	if got.Branch != "main" {
		t.Fatalf("unexpected branch %q", got.Branch)
	}
	decoded, err := base64.StdEncoding.DecodeString(got.Content)
	if err != nil || string(decoded) != `{"orders":[]}` {
		t.Fatalf("unexpected content %q err=%v", got.Content, err)
	}
}

func TestWriteFirstDocumentOmitsToken(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	if err := newRepo(srv.URL).Write(context.Background(), Document{Content: []byte(`{}`)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := body["sha"]; present {
		t.Fatalf("first write must not send a token: %v", body)
	}
}

func TestWriteConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	err := newRepo(srv.URL).Write(context.Background(), Document{Content: []byte(`{}`), Token: "stale"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}
