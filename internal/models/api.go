package models

import "github.com/urbanstyle/support-assistant/internal/tickets"

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Article is a knowledge-base source shown alongside the answer.
type Article struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Text  string `json:"text"`
}

// AskResponse carries either a generated answer with its sources or,
// when nothing relevant was found, the fallback ticket that was opened.
type AskResponse struct {
	Answer         string          `json:"answer,omitempty"`
	Sources        []Article       `json:"sources,omitempty"`
	FallbackTicket *tickets.Ticket `json:"fallback_ticket,omitempty"`
	ResponseTime   int             `json:"response_time_ms"`
}

// HealthResponse is the /health payload. Detail carries the
// per-dependency probe results with timings.
type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Detail    interface{}       `json:"detail,omitempty"`
}
