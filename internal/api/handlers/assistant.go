package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/urbanstyle/support-assistant/internal/middleware"
	"github.com/urbanstyle/support-assistant/internal/models"
	"github.com/urbanstyle/support-assistant/internal/repository"
	"github.com/urbanstyle/support-assistant/internal/services"
	"github.com/urbanstyle/support-assistant/internal/tickets"
	"github.com/urbanstyle/support-assistant/pkg/utils"
)

// SuggestionQuestions are the pre-canned prompts shown as pills above
// the issue form.
var SuggestionQuestions = []string{
	"How long does shipping take?",
	"How do I update my shipping address?",
	"How do I access or update my account information?",
}

type AssistantHandler struct {
	assistantService *services.AssistantService
	ticketManager    *tickets.Manager
	repoManager      *repository.RepositoryManager
	logger           *logrus.Logger
}

// NewAssistantHandler wires the ask flow. assistantService may be nil
// when credentials are missing; the handler then reports the feature
// as unavailable instead of crashing. repoManager may be nil when
// analytics is not configured.
func NewAssistantHandler(
	assistantService *services.AssistantService,
	ticketManager *tickets.Manager,
	repoManager *repository.RepositoryManager,
	logger *logrus.Logger,
) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		ticketManager:    ticketManager,
		repoManager:      repoManager,
		logger:           logger,
	}
}

// HandleAsk processes one assistant question.
func (h *AssistantHandler) HandleAsk(c *gin.Context) {
	startTime := time.Now()

	if h.assistantService == nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable,
			"AI assistant is not available. Please check the ES_ENDPOINT, ES_API_KEY and OPENAI_API_KEY environment variables.", nil)
		return
	}

	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid ask request")
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Question cannot be empty", nil)
		return
	}

	sessionID := middleware.SessionID(c)
	store := h.ticketManager.ForSession(sessionID)

	h.logger.WithFields(logrus.Fields{
		"question":     question,
		"user_session": sessionID,
	}).Info("Processing assistant question")

	result, err := h.assistantService.Answer(c.Request.Context(), store, question)
	if err != nil {
		h.logger.WithError(err).Error("Assistant request failed")
		go h.trackAskQuery(sessionID, question, nil, time.Since(startTime), c.GetHeader("User-Agent"), c.ClientIP())
		utils.ErrorResponse(c, http.StatusInternalServerError, "Assistant request failed", err)
		return
	}

	responseTime := time.Since(startTime)
	go h.trackAskQuery(sessionID, question, result, responseTime, c.GetHeader("User-Agent"), c.ClientIP())

	response := models.AskResponse{
		Answer:         result.Answer,
		Sources:        result.Sources,
		FallbackTicket: result.FallbackTicket,
		ResponseTime:   int(responseTime.Milliseconds()),
	}

	message := "Answer generated"
	if result.FallbackTicket != nil {
		message = "No relevant articles found, support ticket created"
	}

	h.logger.WithFields(logrus.Fields{
		"hits":          result.Hits,
		"fallback":      result.FallbackTicket != nil,
		"response_time": responseTime.Milliseconds(),
	}).Info("Assistant question completed")

	utils.SuccessResponse(c, http.StatusOK, message, response)
}

// HandleSuggestions returns the canned suggestion questions.
func (h *AssistantHandler) HandleSuggestions(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Suggestions retrieved", SuggestionQuestions)
}

func (h *AssistantHandler) trackAskQuery(session, question string, result *services.Result, responseTime time.Duration, userAgent, ip string) {
	if h.repoManager == nil {
		return
	}

	record := &models.AskQuery{
		QuestionText:   question,
		UserSession:    session,
		AskedAt:        time.Now(),
		ResponseTimeMs: int(responseTime.Milliseconds()),
		UserAgent:      userAgent,
		IPAddress:      ip,
	}
	if result != nil {
		record.HitsCount = result.Hits
		if result.FallbackTicket != nil {
			record.Fallback = true
			record.FallbackTicket = result.FallbackTicket.ID
		}
	}

	if err := h.repoManager.AskQuery.Create(record); err != nil {
		h.logger.WithError(err).Error("Failed to track ask query")
	}
}
