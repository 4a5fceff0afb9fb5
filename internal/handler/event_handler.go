package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rouvinerh/is4302-project/internal/dto"
	"github.com/rouvinerh/is4302-project/internal/service"
	"github.com/rouvinerh/is4302-project/pkg/middleware"
	"github.com/rouvinerh/is4302-project/pkg/response"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	marketplace *service.Marketplace
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(marketplace *service.Marketplace) *EventHandler {
	return &EventHandler{
		marketplace: marketplace,
	}
}

// Create handles POST /events - creates a new event (organiser only)
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}
	req.OrganiserID = callerID

	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	eventID, err := h.marketplace.CreateEvent(c.Request.Context(), callerID, req.Name, req.EventTime, req.Prices())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	event, err := h.marketplace.Event(c.Request.Context(), eventID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Created(c, dto.ToEventResponse(event))
}

// GetByID handles GET /events/:id - retrieves an event
func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	event, err := h.marketplace.Event(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, dto.ToEventResponse(event))
}
