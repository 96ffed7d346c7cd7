// Package search talks to the hosted search index. Profiles and posts are
// indexed externally; this package only queries, the local database stays
// the source of truth.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"helenite/internal/observability"
)

// Hit is a single match returned by the index. Endpoint is an opaque API
// path reference; the slug sits in its second-to-last segment.
type Hit struct {
	ObjectID string `json:"objectID"`
	Endpoint string `json:"endpoint"`
}

// Client queries a named index. Calls are synchronous and not retried;
// failures surface to the caller.
type Client interface {
	Search(ctx context.Context, index, query string) ([]Hit, error)
}

type httpClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient returns a Client backed by the hosted index's REST API.
func NewHTTPClient(baseURL, apiKey string) Client {
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Hits   []Hit `json:"hits"`
	NbHits int   `json:"nbHits"`
}

func (c *httpClient) Search(ctx context.Context, index, query string) ([]Hit, error) {
	body, err := json.Marshal(queryRequest{Query: query})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/1/indexes/%s/query", c.baseURL, url.PathEscape(index))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		observability.SearchRequests.WithLabelValues(index, "error").Inc()
		return nil, fmt.Errorf("search index unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.SearchRequests.WithLabelValues(index, "error").Inc()
		return nil, fmt.Errorf("search index returned status %d", resp.StatusCode)
	}

	var parsed queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		observability.SearchRequests.WithLabelValues(index, "error").Inc()
		return nil, fmt.Errorf("search index returned malformed response: %w", err)
	}

	observability.SearchRequests.WithLabelValues(index, "ok").Inc()
	return parsed.Hits, nil
}

// SlugFromEndpoint extracts the slug from a hit's endpoint reference. The
// endpoint ends with a trailing slash, so the slug is the second-to-last
// segment: /api/v1/profile/<slug>/ or /api/v1/profile/post/<slug>/.
func SlugFromEndpoint(endpoint string) string {
	parts := strings.Split(strings.TrimRight(endpoint, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
