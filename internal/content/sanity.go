package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type SanityOptions struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	// BaseURL replaces https://<project>.api.sanity.io/v<version> when set.
	BaseURL string
}

const byTypeAndID = `*[_type == $type && _id == $id]`

// SanityStore talks to the Sanity HTTP API: GROQ queries for reads and the
// mutation endpoint for writes.
type SanityStore struct {
	queryBase  string
	mutateBase string
	dataset    string
	token      string
	httpClient *http.Client
}

func NewSanityStore(opts SanityOptions) *SanityStore {
	version := strings.TrimPrefix(strings.TrimSpace(opts.APIVersion), "v")
	if version == "" {
		version = "2024-01-01"
	}
	mutateBase := fmt.Sprintf("https://%s.api.sanity.io/v%s", opts.ProjectID, version)
	queryBase := mutateBase
	if opts.UseCDN {
		queryBase = fmt.Sprintf("https://%s.apicdn.sanity.io/v%s", opts.ProjectID, version)
	}
	if opts.BaseURL != "" {
		queryBase = strings.TrimRight(opts.BaseURL, "/")
		mutateBase = queryBase
	}
	return &SanityStore{
		queryBase:  queryBase,
		mutateBase: mutateBase,
		dataset:    opts.Dataset,
		token:      opts.Token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// BuildGROQ renders q as a GROQ projection query, newest first.
func BuildGROQ(q Query) string {
	order := "_createdAt"
	if q.OrderBy != "" {
		order = q.OrderBy
	}
	parts := make([]string, 0, len(q.Fields))
	for _, f := range q.Fields {
		switch {
		case f.Expr != "":
			parts = append(parts, fmt.Sprintf("%q: %s", f.Name, f.Expr))
		case f.Path == f.Name:
			parts = append(parts, f.Name)
		default:
			parts = append(parts, fmt.Sprintf("%q: %s", f.Name, f.Path))
		}
	}
	return fmt.Sprintf(`*[_type == %q] | order(%s desc) { %s }`, q.Type, order, strings.Join(parts, ", "))
}

func (s *SanityStore) Fetch(ctx context.Context, q Query) ([]Document, error) {
	endpoint := fmt.Sprintf("%s/data/query/%s?query=%s", s.queryBase, url.PathEscape(s.dataset), url.QueryEscape(BuildGROQ(q)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("sanity create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sanity query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("sanity query failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out sanityQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("sanity decode response: %w", err)
	}
	docs := make([]Document, 0, len(out.Result))
	for _, doc := range out.Result {
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (s *SanityStore) Create(ctx context.Context, docType string, doc Document) (string, error) {
	body := cloneDocument(doc)
	body["_type"] = docType
	res, err := s.mutate(ctx, map[string]any{"create": body})
	if err != nil {
		return "", err
	}
	if len(res.Results) == 0 || res.Results[0].ID == "" {
		return "", errors.New("sanity response missing document id")
	}
	return res.Results[0].ID, nil
}

func (s *SanityStore) CreateIfMissing(ctx context.Context, docType, id string, doc Document) error {
	body := cloneDocument(doc)
	body["_id"] = id
	body["_type"] = docType
	_, err := s.mutate(ctx, map[string]any{"createIfNotExists": body})
	return err
}

// Patch and Delete select by query so an id of another document type never
// matches.
func (s *SanityStore) Patch(ctx context.Context, docType, id string, set Document) error {
	res, err := s.mutate(ctx, map[string]any{"patch": map[string]any{
		"query":  byTypeAndID,
		"params": map[string]any{"type": docType, "id": id},
		"set":    set,
	}})
	if err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SanityStore) Delete(ctx context.Context, docType, id string) error {
	res, err := s.mutate(ctx, map[string]any{"delete": map[string]any{
		"query":  byTypeAndID,
		"params": map[string]any{"type": docType, "id": id},
	}})
	if err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SanityStore) mutate(ctx context.Context, mutation map[string]any) (sanityMutateResponse, error) {
	raw, err := json.Marshal(map[string]any{"mutations": []map[string]any{mutation}})
	if err != nil {
		return sanityMutateResponse{}, fmt.Errorf("sanity marshal mutation: %w", err)
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s?returnIds=true&visibility=sync", s.mutateBase, url.PathEscape(s.dataset))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return sanityMutateResponse{}, fmt.Errorf("sanity create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return sanityMutateResponse{}, fmt.Errorf("sanity mutation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		text := strings.TrimSpace(string(body))
		if resp.StatusCode == http.StatusNotFound || (resp.StatusCode == http.StatusConflict && strings.Contains(text, "does not exist")) {
			return sanityMutateResponse{}, ErrNotFound
		}
		return sanityMutateResponse{}, fmt.Errorf("sanity mutation failed: status=%d body=%s", resp.StatusCode, text)
	}

	var out sanityMutateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return sanityMutateResponse{}, fmt.Errorf("sanity decode response: %w", err)
	}
	return out, nil
}

func (s *SanityStore) authorize(req *http.Request) {
	if s.token != "" {
		req.Header.Set("authorization", "Bearer "+s.token)
	}
}

func cloneDocument(doc Document) Document {
	out := make(Document, len(doc)+2)
	for k, v := range doc {
		out[k] = v
	}
	return out
}

type sanityQueryResponse struct {
	Result []Document `json:"result"`
}

type sanityMutateResponse struct {
	TransactionID string                 `json:"transactionId"`
	Results       []sanityMutationResult `json:"results"`
}

type sanityMutationResult struct {
	ID        string `json:"id"`
	Operation string `json:"operation"`
}
