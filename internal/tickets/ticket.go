package tickets

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status of a support ticket.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusClosed     Status = "Closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Priority of a support ticket.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

const (
	ticketIDPrefix = "TICKET-"
	firstTicketID  = 1001

	// Product label stamped on tickets created by the assistant fallback.
	AutoGeneratedProduct = "Auto-generated"
)

// Ticket is one row of the session's support-ticket table. ID and
// SubmittedAt are immutable once created.
type Ticket struct {
	ID          string    `json:"id"`
	OrderRef    string    `json:"order_ref"`
	Product     string    `json:"product"`
	Issue       string    `json:"issue"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NumericID extracts the numeric suffix of a ticket ID. IDs that do
// not match the TICKET-<n> shape report ok=false and are ignored when
// computing the next ID.
func NumericID(id string) (int, bool) {
	suffix, found := strings.CutPrefix(id, ticketIDPrefix)
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}

func formatTicketID(n int) string {
	return fmt.Sprintf("%s%d", ticketIDPrefix, n)
}
