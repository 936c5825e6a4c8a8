package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/urbanstyle/support-assistant/internal/assistant"
	"github.com/urbanstyle/support-assistant/internal/database"
	"github.com/urbanstyle/support-assistant/internal/models"
	"github.com/urbanstyle/support-assistant/internal/search"
	"github.com/urbanstyle/support-assistant/internal/tickets"
	"github.com/urbanstyle/support-assistant/pkg/utils"
)

// Retriever is the knowledge-base search dependency.
type Retriever interface {
	Search(ctx context.Context, query string) ([]search.Hit, error)
}

// Generator is the chat-completion dependency.
type Generator interface {
	Complete(ctx context.Context, systemPrompt, userQuestion string) (string, error)
}

const cacheTTL = 5 * time.Minute

// AssistantService runs the ask flow: retrieve, then either generate
// an answer from the retrieved context or open a fallback ticket when
// nothing relevant was found. Both external calls are strictly
// sequential and their failures propagate to the caller untouched.
type AssistantService struct {
	retriever Retriever
	generator Generator
	cache     *database.Cache
	logger    *logrus.Logger
}

func NewAssistantService(
	retriever Retriever,
	generator Generator,
	cache *database.Cache,
	logger *logrus.Logger,
) *AssistantService {
	return &AssistantService{
		retriever: retriever,
		generator: generator,
		cache:     cache,
		logger:    logger,
	}
}

// Result is the outcome of one ask turn. Exactly one of Answer or
// FallbackTicket is set.
type Result struct {
	Answer         string
	Sources        []models.Article
	Hits           int
	FallbackTicket *tickets.Ticket
}

// Answer handles one user question against the given session's ticket
// store.
func (s *AssistantService) Answer(ctx context.Context, store *tickets.Store, question string) (*Result, error) {
	hits, err := s.retrieve(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("knowledge base search failed: %w", err)
	}

	if len(hits) == 0 {
		ticket := store.CreateFallback(question)
		s.logger.WithFields(logrus.Fields{
			"ticket":   ticket.ID,
			"question": question,
		}).Info("No articles found, fallback ticket created")

		return &Result{FallbackTicket: &ticket}, nil
	}

	prompt := assistant.BuildPrompt(hits)

	answer, err := s.generator.Complete(ctx, prompt, question)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return &Result{
		Answer:  assistant.FormatReference(answer),
		Sources: sourceArticles(hits),
		Hits:    len(hits),
	}, nil
}

// retrieve checks the cache before hitting Elasticsearch. Cache
// failures are logged and ignored; they must never fail the ask.
func (s *AssistantService) retrieve(ctx context.Context, question string) ([]search.Hit, error) {
	cacheKey := utils.MD5Hash(question)

	var cached []search.Hit
	if err := s.cache.GetCachedSearchResults(ctx, cacheKey, &cached); err == nil {
		s.logger.WithField("hits", len(cached)).Debug("Retrieval served from cache")
		return cached, nil
	} else if err != redis.Nil {
		s.logger.WithError(err).Debug("Retrieval cache read failed")
	}

	hits, err := s.retriever.Search(ctx, question)
	if err != nil {
		return nil, err
	}

	if err := s.cache.CacheSearchResults(ctx, cacheKey, hits, cacheTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to cache retrieval results")
	}

	return hits, nil
}

func sourceArticles(hits []search.Hit) []models.Article {
	articles := make([]models.Article, 0, len(hits))
	for _, hit := range hits {
		title := hit.SourceString("title")
		if title == "" {
			title = "Untitled"
		}
		articles = append(articles, models.Article{
			Title: title,
			URL:   hit.SourceString("url"),
			Text:  hit.SourceString("text"),
		})
	}
	return articles
}
