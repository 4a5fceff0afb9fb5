package dto

import (
	"time"

	"github.com/rouvinerh/is4302-project/internal/domain"
)

// CreateEventRequest represents the request to create a new event
type CreateEventRequest struct {
	Name           string    `json:"name" binding:"required,min=1,max=255"`
	EventTime      time.Time `json:"event_time" binding:"required"`
	CategoryPrices []int64   `json:"category_prices" binding:"required"`
	OrganiserID    string    `json:"-"` // Set from context
}

// Validate validates the CreateEventRequest
func (r *CreateEventRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Event name is required"
	}
	if r.EventTime.IsZero() {
		return false, "Event time is required"
	}
	if len(r.CategoryPrices) != domain.CategoryCount {
		return false, "Exactly three category prices are required"
	}
	for _, price := range r.CategoryPrices {
		if price < 0 {
			return false, "Category prices cannot be negative"
		}
	}
	return true, ""
}

// Prices returns the category prices as a fixed-size array
func (r *CreateEventRequest) Prices() [domain.CategoryCount]int64 {
	var prices [domain.CategoryCount]int64
	copy(prices[:], r.CategoryPrices)
	return prices
}

// EventResponse represents the response for an event
type EventResponse struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	OrganiserID    string  `json:"organiser_id"`
	EventTime      string  `json:"event_time"`
	CategoryPrices []int64 `json:"category_prices"`
	Expired        bool    `json:"expired"`
	CreatedAt      string  `json:"created_at"`
}

// ToEventResponse converts an Event to an EventResponse
func ToEventResponse(event *domain.Event) *EventResponse {
	return &EventResponse{
		ID:             event.ID,
		Name:           event.Name,
		OrganiserID:    event.OrganiserID,
		EventTime:      event.EventTime.Format(time.RFC3339),
		CategoryPrices: event.CategoryPrices[:],
		Expired:        event.Expired(time.Now()),
		CreatedAt:      event.CreatedAt.Format(time.RFC3339),
	}
}
