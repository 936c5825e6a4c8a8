package tickets

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Store holds one session's tickets, most recent first. Each browser
// session owns its own store; the mutex only exists because a single
// session can still issue overlapping requests.
type Store struct {
	mu      sync.RWMutex
	tickets []Ticket
}

// NewStore returns a store pre-populated with the given tickets.
func NewStore(seed []Ticket) *Store {
	tickets := make([]Ticket, len(seed))
	copy(tickets, seed)
	return &Store{tickets: tickets}
}

// List returns a snapshot of all tickets, most recent first.
func (s *Store) List() []Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// Get returns the ticket with the given ID.
func (s *Store) Get(id string) (Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return Ticket{}, fmt.Errorf("ticket %s not found", id)
}

// CreateFallback synthesizes a ticket for an issue the knowledge base
// could not answer. The numeric ID is one greater than the maximum
// currently present (never reused); 1001 when no ticket carries a
// parseable ID. The new ticket is prepended so it shows first in the
// table.
func (s *Store) CreateFallback(issue string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	max, found := 0, false
	for _, t := range s.tickets {
		if n, ok := NumericID(t.ID); ok && n > max {
			max, found = n, true
		}
	}

	next := firstTicketID
	if found {
		next = max + 1
	}

	ticket := Ticket{
		ID:          formatTicketID(next),
		OrderRef:    fmt.Sprintf("ORD-%d", next),
		Product:     AutoGeneratedProduct,
		Issue:       issue,
		Status:      StatusOpen,
		Priority:    PriorityMedium,
		SubmittedAt: time.Now(),
	}

	s.tickets = append([]Ticket{ticket}, s.tickets...)
	return ticket
}

// Update applies an edit to an existing ticket. ID and SubmittedAt
// cannot change; status and priority must be valid enum values.
type Update struct {
	OrderRef *string   `json:"order_ref,omitempty"`
	Product  *string   `json:"product,omitempty"`
	Issue    *string   `json:"issue,omitempty"`
	Status   *Status   `json:"status,omitempty"`
	Priority *Priority `json:"priority,omitempty"`
}

func (s *Store) Update(id string, upd Update) (Ticket, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return Ticket{}, fmt.Errorf("invalid status %q", *upd.Status)
	}
	if upd.Priority != nil && !upd.Priority.Valid() {
		return Ticket{}, fmt.Errorf("invalid priority %q", *upd.Priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tickets {
		if s.tickets[i].ID != id {
			continue
		}
		if upd.OrderRef != nil {
			s.tickets[i].OrderRef = *upd.OrderRef
		}
		if upd.Product != nil {
			s.tickets[i].Product = *upd.Product
		}
		if upd.Issue != nil {
			s.tickets[i].Issue = *upd.Issue
		}
		if upd.Status != nil {
			s.tickets[i].Status = *upd.Status
		}
		if upd.Priority != nil {
			s.tickets[i].Priority = *upd.Priority
		}
		return s.tickets[i], nil
	}

	return Ticket{}, fmt.Errorf("ticket %s not found", id)
}

// MonthStatusCount is one bar segment of the tickets-over-time chart.
type MonthStatusCount struct {
	Month  string `json:"month"` // "2026-08"
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// PriorityCount is one slice of the tickets-by-priority chart.
type PriorityCount struct {
	Priority Priority `json:"priority"`
	Count    int      `json:"count"`
}

// StatsByMonthStatus aggregates ticket counts by submission month and
// status, ordered by month then status.
func (s *Store) StatsByMonthStatus() []MonthStatusCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		month  string
		status Status
	}
	counts := make(map[key]int)
	for _, t := range s.tickets {
		counts[key{t.SubmittedAt.Format("2006-01"), t.Status}]++
	}

	out := make([]MonthStatusCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, MonthStatusCount{Month: k.month, Status: k.status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Status < out[j].Status
	})
	return out
}

// StatsByPriority aggregates ticket counts by priority in High,
// Medium, Low order.
func (s *Store) StatsByPriority() []PriorityCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[Priority]int)
	for _, t := range s.tickets {
		counts[t.Priority]++
	}

	out := make([]PriorityCount, 0, 3)
	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		if counts[p] > 0 {
			out = append(out, PriorityCount{Priority: p, Count: counts[p]})
		}
	}
	return out
}
