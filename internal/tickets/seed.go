package tickets

import (
	"fmt"
	"math/rand"
	"time"
)

const seedCount = 100

var (
	seedProducts = []string{
		"Linen Shirt",
		"Denim Jacket",
		"Canvas Sneakers",
		"Wool Overcoat",
		"Leather Belt",
		"Cotton Hoodie",
		"Silk Scarf",
		"Chino Trousers",
	}

	seedIssues = []string{
		"Order arrived with the wrong size",
		"Package marked delivered but never received",
		"Requesting a refund for a damaged item",
		"Discount code was not applied at checkout",
		"Need to change the shipping address",
		"Item colour differs from the product photos",
		"Return label will not download",
		"Charged twice for the same order",
		"Tracking has not updated in five days",
		"Want to cancel before the order ships",
	}

	seedStatuses   = []Status{StatusOpen, StatusInProgress, StatusClosed}
	seedPriorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}
)

// SeedTickets builds the synthetic ticket table a fresh session starts
// with: 100 rows, IDs 1001 upward, submission dates spread over the
// last six months so the charts have something to show.
func SeedTickets() []Ticket {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	tickets := make([]Ticket, 0, seedCount)
	for i := 0; i < seedCount; i++ {
		n := firstTicketID + i
		submitted := now.AddDate(0, 0, -rng.Intn(180))

		tickets = append(tickets, Ticket{
			ID:          formatTicketID(n),
			OrderRef:    fmt.Sprintf("ORD-%d", 40000+rng.Intn(50000)),
			Product:     seedProducts[rng.Intn(len(seedProducts))],
			Issue:       seedIssues[rng.Intn(len(seedIssues))],
			Status:      seedStatuses[rng.Intn(len(seedStatuses))],
			Priority:    seedPriorities[rng.Intn(len(seedPriorities))],
			SubmittedAt: submitted,
		})
	}

	// Most recent first, matching the table's display order
	for i, j := 0, len(tickets)-1; i < j; i, j = i+1, j-1 {
		tickets[i], tickets[j] = tickets[j], tickets[i]
	}

	return tickets
}
