package server

import (
	"context"
	"net/http"
	"testing"

	"helenite/internal/search"
	"helenite/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSearchClient struct {
	hits map[string][]search.Hit
	err  error
}

func (c *fixedSearchClient) Search(ctx context.Context, index, query string) ([]search.Hit, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.hits[index], nil
}

func TestSearch(t *testing.T) {
	s, app, _ := newTestServer(t)
	alice := registerAccount(t, app, s, "alice")
	bob := registerAccount(t, app, s, "bob")
	postSlug := createPostVia(t, app, bob, "findable post")

	client := &fixedSearchClient{hits: map[string][]search.Hit{
		service.IndexProfile: {
			{ObjectID: "1", Endpoint: "/api/v1/profile/" + bob.Slug + "/"},
			{ObjectID: "2", Endpoint: "/api/v1/profile/deleted-user/"},
		},
		service.IndexPost: {
			{ObjectID: "3", Endpoint: "/api/v1/profile/post/" + postSlug + "/"},
		},
	}}
	s.searchService = service.NewSearchService(client, s.profileRepo, s.postRepo)

	t.Run("profile hits resolve against the database", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/v1/search?query=bob", alice.Token, nil)
		require.Equal(t, http.StatusOK, status)

		// The stale second hit has no matching profile and is dropped.
		results, _ := body["results"].([]any)
		require.Len(t, results, 1)
		profile, _ := results[0].(map[string]any)
		assert.Equal(t, "bob", profile["username"])
	})

	t.Run("post index", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/v1/search?query=findable&index=Post", alice.Token, nil)
		require.Equal(t, http.StatusOK, status)

		results, _ := body["results"].([]any)
		require.Len(t, results, 1)
		post, _ := results[0].(map[string]any)
		assert.Equal(t, "findable post", post["text"])
	})

	t.Run("no matches is a 204", func(t *testing.T) {
		client.hits = nil
		status, body := doJSON(t, app, http.MethodGet, "/api/v1/search?query=nothing", alice.Token, nil)
		assert.Equal(t, http.StatusNoContent, status)
		assert.Nil(t, body)
	})

	t.Run("empty query rejected", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/v1/search", alice.Token, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Search query cannot be empty", body["error"])
	})

	t.Run("unknown index rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodGet, "/api/v1/search?query=x&index=Bogus", alice.Token, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("index outage surfaces as internal error", func(t *testing.T) {
		client.err = context.DeadlineExceeded
		status, body := doJSON(t, app, http.MethodGet, "/api/v1/search?query=x", alice.Token, nil)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "INTERNAL_ERROR", body["code"])
	})
}
