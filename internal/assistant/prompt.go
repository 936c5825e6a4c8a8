package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urbanstyle/support-assistant/internal/search"
)

const fragmentSeparator = "\n --- \n"

// indexSourceFields lists, per index, the source fields worth quoting
// when a hit comes back without highlight fragments. Fields not listed
// here are never copied into the prompt.
var indexSourceFields = map[string][]string{
	"urbanstyle-kb": {
		"title",
		"text",
		"semantic_text",
		"url",
		"category",
	},
}

const promptTemplate = `
Instructions:

- You are the UrbanStyle Support Assistant. Your goal is to deliver fast, precise and professional responses to customers using only the information available in your knowledge base.
Always follow this exact structure when responding:
1. Title: A clear, informative headline summarizing the topic
2. Summary: One or two concise sentences directly answering the question
3. Reference: Direct URL to the relevant article in the knowledge base
4. Additional Info: Optional short notes with useful tips or next steps
5. Contact Support Note: Only if no relevant information is found or further human action is required
Guidelines:
- Do not sound like a chatbot or engage in any casual conversation.
- Never include greetings ("Hi", "Hello"), sign-offs or apologies.
- Do not use Markdown, asterisks, code blocks or JSON formatting.
- Never fabricate information or links. Only return what exists in the knowledge base.
- If you cannot find an article matching the request, reply exactly:
Title: Information Not Found
Summary: We're unable to find information related to your request in the current knowledge base.
Contact Support Note: Please contact our team directly at support@urbanstyle.com
- Answer questions truthfully and factually using only the context presented.
- If you don't know the answer, just say that you don't know, don't make up an answer.
- You must always cite the document where the answer was extracted using inline academic citation style [], using the position.
- You are correct, factual, precise, and reliable.

Context:
%s
`

// BuildPrompt assembles the system prompt from the retrieved hits.
// Highlight fragments win over raw source fields: when a hit carries
// highlights, every fragment from every highlighted field goes in,
// joined by the fixed separator. Hits without highlights contribute
// their allow-listed source fields, skipping empty values. Context is
// never truncated or deduplicated.
func BuildPrompt(hits []search.Hit) string {
	var context strings.Builder

	for _, hit := range hits {
		if len(hit.Highlight) > 0 {
			fields := make([]string, 0, len(hit.Highlight))
			for field := range hit.Highlight {
				fields = append(fields, field)
			}
			sort.Strings(fields)

			var fragments []string
			for _, field := range fields {
				fragments = append(fragments, hit.Highlight[field]...)
			}
			context.WriteString(strings.Join(fragments, fragmentSeparator))
			continue
		}

		for _, field := range indexSourceFields[hit.Index] {
			value := hit.SourceString(field)
			if value == "" {
				continue
			}
			context.WriteString(fmt.Sprintf("%s: %s\n", field, value))
		}
	}

	return fmt.Sprintf(promptTemplate, context.String())
}
