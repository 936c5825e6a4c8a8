package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeES(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The v8 client rejects servers that don't identify as Elasticsearch
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
}

func TestClient_Search(t *testing.T) {
	server := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/urbanstyle-kb/_search", r.URL.Path)
		assert.Contains(t, r.Header.Get("Authorization"), "ApiKey")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(10), body["size"])
		assert.Contains(t, body, "retriever")
		assert.Contains(t, body, "highlight")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"hits": map[string]any{
				"hits": []map[string]any{
					{
						"_index": "urbanstyle-kb",
						"_id":    "shipping-times",
						"_score": 1.7,
						"_source": map[string]any{
							"title": "Shipping times",
							"text":  "Standard shipping takes 3-5 business days.",
						},
						"highlight": map[string]any{
							"semantic_text": []string{"shipping takes 3-5 business days"},
						},
					},
				},
			},
		})
	})
	defer server.Close()

	client, err := NewClient(server.URL, "dGVzdA==", "urbanstyle-kb", logrus.New())
	require.NoError(t, err)

	hits, err := client.Search(context.Background(), "How long does shipping take?")
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, "urbanstyle-kb", hits[0].Index)
	assert.Equal(t, "shipping-times", hits[0].ID)
	assert.InDelta(t, 1.7, hits[0].Score, 0.001)
	assert.Equal(t, "Shipping times", hits[0].SourceString("title"))
	assert.Equal(t, []string{"shipping takes 3-5 business days"}, hits[0].Highlight["semantic_text"])
}

func TestClient_Search_NoHits(t *testing.T) {
	server := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hits":{"hits":[]}}`))
	})
	defer server.Close()

	client, err := NewClient(server.URL, "dGVzdA==", "urbanstyle-kb", logrus.New())
	require.NoError(t, err)

	hits, err := client.Search(context.Background(), "something nobody wrote about")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestClient_Search_ServerError(t *testing.T) {
	server := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"reason":"shard failure"}}`))
	})
	defer server.Close()

	client, err := NewClient(server.URL, "dGVzdA==", "urbanstyle-kb", logrus.New())
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestHit_SourceString(t *testing.T) {
	hit := Hit{Source: map[string]any{
		"title": "Returns",
		"views": float64(12),
	}}

	assert.Equal(t, "Returns", hit.SourceString("title"))
	assert.Equal(t, "", hit.SourceString("views"))
	assert.Equal(t, "", hit.SourceString("missing"))
}
