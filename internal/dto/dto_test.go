package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rouvinerh/is4302-project/internal/domain"
)

func TestCreateEventRequestValidate(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name  string
		req   CreateEventRequest
		valid bool
	}{
		{
			name:  "valid",
			req:   CreateEventRequest{Name: "Show", EventTime: future, CategoryPrices: []int64{300, 200, 100}},
			valid: true,
		},
		{
			name:  "missing name",
			req:   CreateEventRequest{EventTime: future, CategoryPrices: []int64{300, 200, 100}},
			valid: false,
		},
		{
			name:  "missing time",
			req:   CreateEventRequest{Name: "Show", CategoryPrices: []int64{300, 200, 100}},
			valid: false,
		},
		{
			name:  "too few prices",
			req:   CreateEventRequest{Name: "Show", EventTime: future, CategoryPrices: []int64{300, 200}},
			valid: false,
		},
		{
			name:  "too many prices",
			req:   CreateEventRequest{Name: "Show", EventTime: future, CategoryPrices: []int64{300, 200, 100, 50}},
			valid: false,
		},
		{
			name:  "negative price",
			req:   CreateEventRequest{Name: "Show", EventTime: future, CategoryPrices: []int64{300, -1, 100}},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := tt.req.Validate()
			assert.Equal(t, tt.valid, valid)
			if !tt.valid {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestCreateEventRequestPrices(t *testing.T) {
	req := CreateEventRequest{CategoryPrices: []int64{300, 200, 100}}
	assert.Equal(t, [domain.CategoryCount]int64{300, 200, 100}, req.Prices())
}

func TestSetRoleRequestValidate(t *testing.T) {
	tests := []struct {
		name  string
		req   SetRoleRequest
		valid bool
	}{
		{"valid organiser", SetRoleRequest{Participant: "olivia", Role: "ORGANISER"}, true},
		{"valid admin", SetRoleRequest{Participant: "root", Role: "ADMIN"}, true},
		{"unknown role", SetRoleRequest{Participant: "olivia", Role: "SUPERUSER"}, false},
		{"lowercase role", SetRoleRequest{Participant: "olivia", Role: "organiser"}, false},
		{"missing participant", SetRoleRequest{Role: "USER"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := tt.req.Validate()
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestBuyTicketRequestValidate(t *testing.T) {
	valid, _ := (&BuyTicketRequest{LoyaltyPoints: 0, PaymentAmount: 0}).Validate()
	assert.True(t, valid)

	valid, _ = (&BuyTicketRequest{LoyaltyPoints: -1}).Validate()
	assert.False(t, valid)

	valid, _ = (&BuyTicketRequest{PaymentAmount: -1}).Validate()
	assert.False(t, valid)
}

func TestTransferPointsRequestValidate(t *testing.T) {
	valid, _ := (&TransferPointsRequest{Owner: "alice", To: "bob", Amount: 10}).Validate()
	assert.True(t, valid)

	valid, _ = (&TransferPointsRequest{To: "bob", Amount: 10}).Validate()
	assert.False(t, valid)

	valid, _ = (&TransferPointsRequest{Owner: "alice", Amount: 10}).Validate()
	assert.False(t, valid)

	valid, _ = (&TransferPointsRequest{Owner: "alice", To: "bob", Amount: -10}).Validate()
	assert.False(t, valid)
}

func TestToTicketResponse(t *testing.T) {
	ticket := &domain.Ticket{
		ID:           7,
		EventID:      0,
		Category:     domain.CategoryB,
		SeatLabel:    "B8",
		NominalPrice: 200,
		OwnerID:      "bob",
		State:        domain.TicketStateListed,
	}

	resp := ToTicketResponse(ticket)
	assert.Equal(t, uint64(7), resp.ID)
	assert.Equal(t, "B", resp.Category)
	assert.Equal(t, "LISTED", resp.State)
	assert.Equal(t, int64(200), resp.NominalPrice)
}

func TestToEventResponse(t *testing.T) {
	event := &domain.Event{
		ID:             3,
		Name:           "Show",
		OrganiserID:    "olivia",
		EventTime:      time.Now().Add(-time.Hour),
		CategoryPrices: [domain.CategoryCount]int64{300, 200, 100},
	}

	resp := ToEventResponse(event)
	assert.Equal(t, uint64(3), resp.ID)
	assert.True(t, resp.Expired)
	assert.Equal(t, []int64{300, 200, 100}, resp.CategoryPrices)
}
