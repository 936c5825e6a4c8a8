package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/urbanstyle/support-assistant/internal/middleware"
	"github.com/urbanstyle/support-assistant/internal/tickets"
	"github.com/urbanstyle/support-assistant/pkg/utils"
)

type TicketHandler struct {
	ticketManager *tickets.Manager
	logger        *logrus.Logger
}

func NewTicketHandler(ticketManager *tickets.Manager, logger *logrus.Logger) *TicketHandler {
	return &TicketHandler{
		ticketManager: ticketManager,
		logger:        logger,
	}
}

// HandleList returns the session's tickets, most recent first.
func (h *TicketHandler) HandleList(c *gin.Context) {
	store := h.ticketManager.ForSession(middleware.SessionID(c))
	utils.SuccessResponse(c, http.StatusOK, "Tickets retrieved", store.List())
}

// HandleUpdate edits one ticket. Status and priority are constrained
// to their enums; ID and submission date cannot be changed.
func (h *TicketHandler) HandleUpdate(c *gin.Context) {
	id := c.Param("id")

	var upd tickets.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid update format", err)
		return
	}

	store := h.ticketManager.ForSession(middleware.SessionID(c))

	ticket, err := store.Update(id, upd)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.ErrorResponse(c, http.StatusNotFound, "Ticket not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ticket update", err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"ticket":  ticket.ID,
		"session": middleware.SessionID(c),
	}).Info("Ticket updated")

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated", ticket)
}

// HandleStats returns the aggregates backing the two ticket charts.
func (h *TicketHandler) HandleStats(c *gin.Context) {
	store := h.ticketManager.ForSession(middleware.SessionID(c))

	stats := gin.H{
		"by_month_status": store.StatsByMonthStatus(),
		"by_priority":     store.StatsByPriority(),
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket stats retrieved", stats)
}
