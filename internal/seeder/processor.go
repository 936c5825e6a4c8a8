package seeder

import (
	"regexp"
	"strings"
)

// ContentProcessor cleans scraped help-center pages before indexing.
type ContentProcessor struct {
	multiWhitespace *regexp.Regexp
	htmlTags        *regexp.Regexp
}

func NewContentProcessor() *ContentProcessor {
	return &ContentProcessor{
		multiWhitespace: regexp.MustCompile(`[ \t]+`),
		htmlTags:        regexp.MustCompile(`<[^>]*>`),
	}
}

// CleanContent strips leftover markup and normalizes whitespace.
func (cp *ContentProcessor) CleanContent(content string) string {
	content = cp.htmlTags.ReplaceAllString(content, "")
	content = cp.multiWhitespace.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	var cleaned []string
	emptyLines := 0

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			emptyLines++
			if emptyLines <= 1 {
				cleaned = append(cleaned, "")
			}
			continue
		}
		emptyLines = 0
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// categoryKeywords maps a support category to the phrases that signal it.
var categoryKeywords = map[string][]string{
	"shipping": {"shipping", "delivery", "courier", "tracking", "dispatch"},
	"returns":  {"return", "refund", "exchange", "damaged", "faulty"},
	"orders":   {"order", "checkout", "cancel", "invoice", "payment"},
	"account":  {"account", "password", "login", "email", "profile"},
	"products": {"size", "sizing", "fabric", "care", "material"},
}

// Categorize picks the support category whose keywords occur most
// often in the content. Falls back to "general".
func (cp *ContentProcessor) Categorize(content string) string {
	contentLower := strings.ToLower(content)

	best := "general"
	bestCount := 0
	for _, category := range []string{"shipping", "returns", "orders", "account", "products"} {
		count := 0
		for _, keyword := range categoryKeywords[category] {
			count += strings.Count(contentLower, keyword)
		}
		if count > bestCount {
			best = category
			bestCount = count
		}
	}
	return best
}
