package search

// Hit is a single knowledge-base document returned by Elasticsearch.
// Source carries the raw field values (schema differs per index);
// Highlight maps field names to the matched fragments, ordered by score.
type Hit struct {
	Index     string              `json:"_index"`
	ID        string              `json:"_id"`
	Score     float64             `json:"_score"`
	Source    map[string]any      `json:"_source"`
	Highlight map[string][]string `json:"highlight,omitempty"`
}

// SourceString returns the named source field as a string, or "" when
// the field is absent or not textual.
func (h Hit) SourceString(field string) string {
	value, ok := h.Source[field]
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return s
}

type searchResponse struct {
	Hits struct {
		Hits []Hit `json:"hits"`
	} `json:"hits"`
}
