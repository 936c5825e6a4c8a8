package assistant

import (
	"fmt"
	"regexp"
)

var referencePattern = regexp.MustCompile(`Reference:\s*\[(.*?)\]\((.*?)\)`)

// FormatReference rewrites the first "Reference: [title](url)" marker
// in a completion into an inline hyperlink. Text without the marker
// passes through unchanged.
func FormatReference(text string) string {
	match := referencePattern.FindStringSubmatch(text)
	if match == nil {
		return text
	}

	title, url := match[1], match[2]
	link := fmt.Sprintf(`Reference: <a href="%s" target="_blank">%s</a>`, url, title)

	replaced := false
	return referencePattern.ReplaceAllStringFunc(text, func(s string) string {
		if replaced {
			return s
		}
		replaced = true
		return link
	})
}
