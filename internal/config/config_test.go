package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "urbanstyle-kb", cfg.Elasticsearch.Index)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAI.Model)
}

func TestLoad_CredentialsFromEnv(t *testing.T) {
	t.Setenv("ES_ENDPOINT", "https://es.example.com")
	t.Setenv("ES_API_KEY", "es-key")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://es.example.com", cfg.Elasticsearch.Endpoint)
	assert.Equal(t, "es-key", cfg.Elasticsearch.APIKey)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.True(t, cfg.SearchEnabled())
	assert.True(t, cfg.AssistantEnabled())
}

func TestFeatureFlags_Disabled(t *testing.T) {
	var cfg Config
	assert.False(t, cfg.SearchEnabled())
	assert.False(t, cfg.AssistantEnabled())
	assert.False(t, cfg.AnalyticsEnabled())
	assert.False(t, cfg.CacheEnabled())
}

func TestFeatureFlags_PartialCredentials(t *testing.T) {
	var cfg Config
	cfg.Elasticsearch.Endpoint = "https://es.example.com"
	cfg.Elasticsearch.APIKey = "es-key"

	assert.True(t, cfg.SearchEnabled())
	assert.False(t, cfg.AssistantEnabled(), "assistant needs the OpenAI key too")
}
