package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urbanstyle/support-assistant/internal/config"
	"github.com/urbanstyle/support-assistant/internal/search"
	"github.com/urbanstyle/support-assistant/internal/seeder"
	"github.com/urbanstyle/support-assistant/pkg/utils"
)

// HelpPageConfig identifies one help-center article to ingest.
type HelpPageConfig struct {
	Slug string
	URL  string
}

var helpCenterPages = []HelpPageConfig{
	{Slug: "shipping-times", URL: "https://help.urbanstyle.example/articles/shipping-times"},
	{Slug: "change-shipping-address", URL: "https://help.urbanstyle.example/articles/change-shipping-address"},
	{Slug: "track-your-order", URL: "https://help.urbanstyle.example/articles/track-your-order"},
	{Slug: "returns-and-refunds", URL: "https://help.urbanstyle.example/articles/returns-and-refunds"},
	{Slug: "damaged-items", URL: "https://help.urbanstyle.example/articles/damaged-items"},
	{Slug: "cancel-an-order", URL: "https://help.urbanstyle.example/articles/cancel-an-order"},
	{Slug: "payment-methods", URL: "https://help.urbanstyle.example/articles/payment-methods"},
	{Slug: "discount-codes", URL: "https://help.urbanstyle.example/articles/discount-codes"},
	{Slug: "account-settings", URL: "https://help.urbanstyle.example/articles/account-settings"},
	{Slug: "password-reset", URL: "https://help.urbanstyle.example/articles/password-reset"},
	{Slug: "size-guide", URL: "https://help.urbanstyle.example/articles/size-guide"},
	{Slug: "garment-care", URL: "https://help.urbanstyle.example/articles/garment-care"},
}

var (
	dryRun    = flag.Bool("dry-run", false, "Don't index into Elasticsearch, just print what would be indexed")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	pageLimit = flag.Int("limit", 0, "Limit number of pages to process (0 = all)")
	delay     = flag.Duration("delay", time.Second, "Delay between requests")
)

// ContentSeeder scrapes help-center articles and indexes them into the
// knowledge-base index the assistant searches.
type ContentSeeder struct {
	searchClient *search.Client
	processor    *seeder.ContentProcessor
	logger       *logrus.Logger
	errors       []error
}

func main() {
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.Info("Starting help-center content seeder...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	var searchClient *search.Client
	if !*dryRun {
		if !cfg.SearchEnabled() {
			logger.Fatal("ES_ENDPOINT and ES_API_KEY are required to seed the knowledge base")
		}

		searchClient, err = search.NewClient(
			cfg.Elasticsearch.Endpoint,
			cfg.Elasticsearch.APIKey,
			cfg.Elasticsearch.Index,
			logger,
		)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create Elasticsearch client")
		}
	}

	cs := &ContentSeeder{
		searchClient: searchClient,
		processor:    seeder.NewContentProcessor(),
		logger:       logger,
	}

	if err := cs.SeedContent(context.Background()); err != nil {
		logger.WithError(err).Fatal("Content seeding failed")
	}

	logger.Info("Content seeding completed successfully!")
}

func (cs *ContentSeeder) SeedContent(ctx context.Context) error {
	pages := helpCenterPages
	if *pageLimit > 0 && *pageLimit < len(pages) {
		pages = pages[:*pageLimit]
		cs.logger.WithField("limit", *pageLimit).Info("Limited pages to process")
	}

	cs.logger.WithField("total_pages", len(pages)).Info("Processing help-center pages")

	processed := 0
	for i, page := range pages {
		cs.logger.WithFields(logrus.Fields{
			"page":     page.Slug,
			"progress": fmt.Sprintf("%d/%d", i+1, len(pages)),
		}).Info("Processing page")

		if err := cs.processPage(ctx, page); err != nil {
			cs.logger.WithError(err).WithField("page", page.Slug).Error("Failed to process page")
			cs.errors = append(cs.errors, fmt.Errorf("failed to process %s: %w", page.Slug, err))
			continue
		}
		processed++
	}

	cs.logger.WithFields(logrus.Fields{
		"processed": processed,
		"errors":    len(cs.errors),
	}).Info("Content seeding completed")

	for _, err := range cs.errors {
		cs.logger.WithError(err).Warn("Processing error")
	}

	return nil
}

func (cs *ContentSeeder) processPage(ctx context.Context, page HelpPageConfig) error {
	var title, content string
	var processingError error

	// Fresh collector per page to avoid callback state bleeding across pages
	c := colly.NewCollector(
		colly.UserAgent("UrbanStyleSeeder/1.0"),
	)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "help.urbanstyle.example",
		Parallelism: 1,
		Delay:       *delay,
	})
	c.SetRequestTimeout(30 * time.Second)

	c.OnHTML("article", func(e *colly.HTMLElement) {
		title = strings.TrimSpace(e.ChildText("h1"))
		content = cs.processor.CleanContent(e.Text)
	})

	c.OnError(func(r *colly.Response, err error) {
		processingError = err
	})

	if err := c.Visit(page.URL); err != nil {
		return fmt.Errorf("failed to visit page: %w", err)
	}

	if processingError != nil {
		return fmt.Errorf("processing error: %w", processingError)
	}

	if content == "" {
		return fmt.Errorf("no content extracted from page")
	}

	if title == "" {
		title = strings.ReplaceAll(page.Slug, "-", " ")
	}

	category := cs.processor.Categorize(content)

	if *dryRun {
		cs.logger.WithFields(logrus.Fields{
			"page":           page.Slug,
			"title":          title,
			"category":       category,
			"content_length": len(content),
		}).Info("DRY RUN: Would index article")
		return nil
	}

	doc := map[string]any{
		"title":         title,
		"text":          content,
		"semantic_text": content,
		"url":           page.URL,
		"category":      category,
	}

	cs.logger.WithFields(logrus.Fields{
		"page":           page.Slug,
		"content_length": len(content),
	}).Debug("Indexing article")

	return cs.searchClient.IndexDocument(ctx, page.Slug, doc)
}
