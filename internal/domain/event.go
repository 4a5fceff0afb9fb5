package domain

import "time"

// CategoryCount is the number of price categories per event.
const CategoryCount = 3

// Event represents an event in the catalog. Events are immutable once created.
type Event struct {
	ID             uint64               `json:"id"`
	Name           string               `json:"name"`
	OrganiserID    string               `json:"organiser_id"`
	EventTime      time.Time            `json:"event_time"`
	CategoryPrices [CategoryCount]int64 `json:"category_prices"` // nominal units, indexed A, B, C
	CreatedAt      time.Time            `json:"created_at"`
}

// Expired reports whether the event deadline has passed at the given time.
func (e *Event) Expired(now time.Time) bool {
	return !now.Before(e.EventTime)
}

// CategoryPrice returns the nominal primary-market price for a category.
func (e *Event) CategoryPrice(cat Category) int64 {
	return e.CategoryPrices[cat]
}
