package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"
)

// Client is the knowledge-base retriever. It issues semantic queries
// against a single fixed index and returns the ranked hits unchanged;
// ranking is entirely the cluster's business.
type Client struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewClient(endpoint, apiKey, index string, logger *logrus.Logger) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{endpoint},
		APIKey:    apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &Client{
		es:     es,
		index:  index,
		logger: logger,
	}, nil
}

// Search runs a semantic query for the given issue text. At most 10
// hits are returned, each with up to 2 highlight fragments per field
// ordered by score. An empty slice means the knowledge base has
// nothing relevant; that is not an error.
func (c *Client) Search(ctx context.Context, query string) ([]Hit, error) {
	body := map[string]any{
		"retriever": map[string]any{
			"standard": map[string]any{
				"query": map[string]any{
					"semantic": map[string]any{
						"field": "semantic_text",
						"query": query,
					},
				},
			},
		},
		"highlight": map[string]any{
			"fields": map[string]any{
				"semantic_text": map[string]any{
					"type":                "semantic",
					"number_of_fragments": 2,
					"order":               "score",
				},
			},
		},
		"size": 10,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"index":        c.index,
		"query_length": len(query),
	}).Debug("Executing knowledge base search")

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search failed with status %s: %s", res.Status(), string(raw))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	c.logger.WithField("hits", len(parsed.Hits.Hits)).Debug("Knowledge base search completed")

	return parsed.Hits.Hits, nil
}

// IndexDocument stores one knowledge-base article. Used by the seeder;
// the serving path never writes to the index.
func (c *Client) IndexDocument(ctx context.Context, id string, doc any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	res, err := c.es.Index(
		c.index,
		bytes.NewReader(payload),
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(id),
	)
	if err != nil {
		return fmt.Errorf("index request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return fmt.Errorf("indexing failed with status %s: %s", res.Status(), string(raw))
	}
	return nil
}

// Ping checks that the cluster is reachable with the configured credentials.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Info(c.es.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch unreachable: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch info failed with status %s", res.Status())
	}
	return nil
}
