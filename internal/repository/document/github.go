package document

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"storefront-orders/internal/domain"
)

// githubRepo stores the orders document as a single file in a repository,
// through the contents API. The file SHA doubles as the concurrency token.
type githubRepo struct {
	client  *http.Client
	logger  *log.Logger
	baseURL string
	token   string
	owner   string
	repo    string
	branch  string
	path    string
}

// GitHubConfig carries the settings for the contents-API backed repository.
type GitHubConfig struct {
	BaseURL string
	Token   string
	Owner   string
	Repo    string
	Branch  string
	Path    string
}

// NewGitHub builds a Repository over the contents API. A nil client falls
// back to http.DefaultClient.
func NewGitHub(cfg GitHubConfig, client *http.Client, logger *log.Logger) Repository {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &githubRepo{
		client:  client,
		logger:  logger,
		baseURL: baseURL,
		token:   cfg.Token,
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		branch:  cfg.Branch,
		path:    cfg.Path,
	}
}

func (r *githubRepo) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", r.baseURL, r.owner, r.repo, r.path)
}

func (r *githubRepo) Fetch(ctx context.Context) (Document, error) {
	url := r.contentsURL() + "?ref=" + r.branch
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Document{}, fmt.Errorf("build fetch request: %w", err)
	}
	r.authorize(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// First-ever order creates the file.
		r.logger.Printf("document repo: fetch path=%s missing, starting empty", r.path)
		return Document{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Document{}, fmt.Errorf("fetch document: status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Content string `json:"content"`
		SHA     string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Document{}, fmt.Errorf("decode fetch response: %w", err)
	}
	content, err := base64.StdEncoding.DecodeString(stripNewlines(payload.Content))
	if err != nil {
		return Document{}, fmt.Errorf("decode document content: %w", err)
	}
	r.logger.Printf("document repo: fetch path=%s bytes=%d token=%s", r.path, len(content), payload.SHA)
	return Document{Content: content, Token: payload.SHA}, nil
}

func (r *githubRepo) Write(ctx context.Context, doc Document) error {
	payload := map[string]string{
		"message": "update orders",
		"content": base64.StdEncoding.EncodeToString(doc.Content),
		"branch":  r.branch,
	}
	if doc.Token != "" {
		payload["sha"] = doc.Token
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode write request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.contentsURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build write request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	r.authorize(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		r.logger.Printf("document repo: write path=%s bytes=%d", r.path, len(doc.Content))
		return nil
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusPreconditionFailed:
		return fmt.Errorf("write document: %w", domain.ErrConflict)
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("write document: status %d: %s", resp.StatusCode, respBody)
	}
}

func (r *githubRepo) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

// The contents API wraps base64 payloads in newlines.
func stripNewlines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
