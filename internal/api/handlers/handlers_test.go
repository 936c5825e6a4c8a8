package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanstyle/support-assistant/internal/database"
	"github.com/urbanstyle/support-assistant/internal/health"
	"github.com/urbanstyle/support-assistant/internal/middleware"
	"github.com/urbanstyle/support-assistant/internal/models"
	"github.com/urbanstyle/support-assistant/internal/search"
	"github.com/urbanstyle/support-assistant/internal/services"
	"github.com/urbanstyle/support-assistant/internal/tickets"
)

type fakeRetriever struct {
	hits []search.Hit
}

func (f *fakeRetriever) Search(ctx context.Context, query string) ([]search.Hit, error) {
	return f.hits, nil
}

type fakeGenerator struct {
	answer string
}

func (f *fakeGenerator) Complete(ctx context.Context, systemPrompt, userQuestion string) (string, error) {
	return f.answer, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRouter(svc *services.AssistantService, manager *tickets.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := testLogger()

	assistantHandler := NewAssistantHandler(svc, manager, nil, logger)
	ticketHandler := NewTicketHandler(manager, logger)

	router := gin.New()
	router.Use(middleware.Session())

	api := router.Group("/api")
	api.POST("/assistant/ask", assistantHandler.HandleAsk)
	api.GET("/suggestions", assistantHandler.HandleSuggestions)
	api.GET("/tickets", ticketHandler.HandleList)
	api.PATCH("/tickets/:id", ticketHandler.HandleUpdate)
	api.GET("/tickets/stats", ticketHandler.HandleStats)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, session string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func newAssistantService(r services.Retriever, g services.Generator) *services.AssistantService {
	logger := testLogger()
	return services.NewAssistantService(r, g, database.NewCache(nil, logger), logger)
}

func TestHandleAsk_Disabled(t *testing.T) {
	router := newTestRouter(nil, tickets.NewManager(testLogger()))

	w, resp := doJSON(t, router, "POST", "/api/assistant/ask", "s1", gin.H{"question": "anything"})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestHandleAsk_EmptyQuestion(t *testing.T) {
	svc := newAssistantService(&fakeRetriever{}, &fakeGenerator{})
	router := newTestRouter(svc, tickets.NewManager(testLogger()))

	w, _ := doJSON(t, router, "POST", "/api/assistant/ask", "s1", gin.H{"question": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAsk_AnswerPath(t *testing.T) {
	hits := []search.Hit{{
		Index:     "urbanstyle-kb",
		Source:    map[string]any{"title": "Shipping times", "text": "3-5 days"},
		Highlight: map[string][]string{"semantic_text": {"3-5 business days"}},
	}}
	svc := newAssistantService(&fakeRetriever{hits: hits}, &fakeGenerator{answer: "Title: Shipping\nSummary: 3-5 days."})
	router := newTestRouter(svc, tickets.NewManager(testLogger()))

	w, resp := doJSON(t, router, "POST", "/api/assistant/ask", "s1", gin.H{"question": "How long does shipping take?"})

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "Title: Shipping\nSummary: 3-5 days.", data["answer"])
	assert.Nil(t, data["fallback_ticket"])

	sources := data["sources"].([]any)
	require.Len(t, sources, 1)
	assert.Equal(t, "Shipping times", sources[0].(map[string]any)["title"])
}

func TestHandleAsk_FallbackPath(t *testing.T) {
	svc := newAssistantService(&fakeRetriever{}, &fakeGenerator{})
	manager := tickets.NewManager(testLogger())
	router := newTestRouter(svc, manager)

	w, resp := doJSON(t, router, "POST", "/api/assistant/ask", "s1", gin.H{"question": "Unheard-of problem"})

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	assert.Nil(t, data["answer"])

	ticket := data["fallback_ticket"].(map[string]any)
	assert.Equal(t, "TICKET-1101", ticket["id"])
	assert.Equal(t, "Open", ticket["status"])
	assert.Equal(t, "Medium", ticket["priority"])
	assert.Equal(t, "Unheard-of problem", ticket["issue"])

	// Same session sees the new ticket first in the table
	_, listResp := doJSON(t, router, "GET", "/api/tickets", "s1", nil)
	list := listResp["data"].([]any)
	require.Len(t, list, 101)
	assert.Equal(t, "TICKET-1101", list[0].(map[string]any)["id"])
}

func TestHandleSuggestions(t *testing.T) {
	router := newTestRouter(nil, tickets.NewManager(testLogger()))

	w, resp := doJSON(t, router, "GET", "/api/suggestions", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].([]any)
	require.Len(t, data, len(SuggestionQuestions))
	assert.Equal(t, SuggestionQuestions[0], data[0])
}

func TestHandleList_SeedsPerSession(t *testing.T) {
	router := newTestRouter(nil, tickets.NewManager(testLogger()))

	w, resp := doJSON(t, router, "GET", "/api/tickets", "session-a", nil)

	require.Equal(t, http.StatusOK, w.Code)
	list := resp["data"].([]any)
	assert.Len(t, list, 100)
}

func TestHandleUpdate(t *testing.T) {
	manager := tickets.NewManager(testLogger())
	router := newTestRouter(nil, manager)

	// Seed the session and grab a real ticket ID
	_, listResp := doJSON(t, router, "GET", "/api/tickets", "s1", nil)
	first := listResp["data"].([]any)[0].(map[string]any)
	id := first["id"].(string)

	w, resp := doJSON(t, router, "PATCH", "/api/tickets/"+id, "s1", gin.H{"status": "Closed", "priority": "High"})

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "Closed", data["status"])
	assert.Equal(t, "High", data["priority"])
	assert.Equal(t, id, data["id"])
}

func TestHandleUpdate_InvalidStatus(t *testing.T) {
	router := newTestRouter(nil, tickets.NewManager(testLogger()))

	_, listResp := doJSON(t, router, "GET", "/api/tickets", "s1", nil)
	id := listResp["data"].([]any)[0].(map[string]any)["id"].(string)

	w, _ := doJSON(t, router, "PATCH", "/api/tickets/"+id, "s1", gin.H{"status": "Escalated"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUpdate_NotFound(t *testing.T) {
	router := newTestRouter(nil, tickets.NewManager(testLogger()))

	w, _ := doJSON(t, router, "PATCH", "/api/tickets/TICKET-99999", "s1", gin.H{"status": "Closed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleHealth_AllDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	checker := health.NewChecker(nil, nil, nil, testLogger())
	handler := NewHealthHandler(checker)

	router := gin.New()
	router.GET("/health", handler.HandleHealth)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "support-assistant", resp.Service)
	for name, status := range resp.Services {
		assert.Equal(t, "disabled", status, "service %s", name)
	}
	assert.Len(t, resp.Services, 4)
}

func TestHandleStats(t *testing.T) {
	router := newTestRouter(nil, tickets.NewManager(testLogger()))

	w, resp := doJSON(t, router, "GET", "/api/tickets/stats", "s1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	assert.Contains(t, data, "by_month_status")
	assert.Contains(t, data, "by_priority")

	byPriority := data["by_priority"].([]any)
	total := 0.0
	for _, entry := range byPriority {
		total += entry.(map[string]any)["count"].(float64)
	}
	assert.Equal(t, 100.0, total)
}
