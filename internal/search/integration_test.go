//go:build integration

package search

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestIntegration_RealCluster(t *testing.T) {
	endpoint := os.Getenv("ES_ENDPOINT")
	apiKey := os.Getenv("ES_API_KEY")

	if endpoint == "" || apiKey == "" {
		t.Skip("ES_ENDPOINT and ES_API_KEY required for integration tests")
	}

	index := os.Getenv("ES_INDEX")
	if index == "" {
		index = "urbanstyle-kb"
	}

	client, err := NewClient(endpoint, apiKey, index, logrus.New())
	require.NoError(t, err)

	require.NoError(t, client.Ping(context.Background()))

	hits, err := client.Search(context.Background(), "how long does shipping take")
	require.NoError(t, err)
	require.LessOrEqual(t, len(hits), 10)
}
