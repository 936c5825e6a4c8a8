package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		URL string
	}
	Redis struct {
		URL string
	}
	Elasticsearch struct {
		Endpoint string
		APIKey   string
		Index    string
	}
	OpenAI struct {
		APIKey  string
		BaseURL string
		Model   string
	}
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	var config Config

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("elasticsearch.index", "urbanstyle-kb")
	viper.SetDefault("openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("openai.model", "gpt-3.5-turbo")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	config.Server.Port = viper.GetString("server.port")
	config.Database.URL = viper.GetString("database.url")
	config.Redis.URL = viper.GetString("redis.url")
	config.Elasticsearch.Index = viper.GetString("elasticsearch.index")
	config.OpenAI.BaseURL = viper.GetString("openai.base_url")
	config.OpenAI.Model = viper.GetString("openai.model")

	// Credentials come from the environment only, never from config files
	config.Elasticsearch.Endpoint = os.Getenv("ES_ENDPOINT")
	config.Elasticsearch.APIKey = os.Getenv("ES_API_KEY")
	config.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")

	return &config, nil
}

// SearchEnabled reports whether the knowledge-base retriever is configured.
func (c *Config) SearchEnabled() bool {
	return c.Elasticsearch.Endpoint != "" && c.Elasticsearch.APIKey != ""
}

// AssistantEnabled reports whether the full ask flow (retrieval plus
// generation) is configured.
func (c *Config) AssistantEnabled() bool {
	return c.SearchEnabled() && c.OpenAI.APIKey != ""
}

// AnalyticsEnabled reports whether query analytics can be persisted.
func (c *Config) AnalyticsEnabled() bool {
	return c.Database.URL != ""
}

// CacheEnabled reports whether search results can be cached in Redis.
func (c *Config) CacheEnabled() bool {
	return c.Redis.URL != ""
}
