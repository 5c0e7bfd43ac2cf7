// ABOUTME: Venue pipeline MCP tool handlers
// ABOUTME: Implements create_venue, advance_venue and schedule_walkthrough
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

type VenueHandlers struct {
	svc *activation.Service
}

func NewVenueHandlers(svc *activation.Service) *VenueHandlers {
	return &VenueHandlers{svc: svc}
}

type CreateVenueInput struct {
	ActivationID string `json:"activation_id" jsonschema:"Activation UUID (required)"`
	Name         string `json:"name" jsonschema:"Venue name (required)"`
	Address      string `json:"address,omitempty" jsonschema:"Street address"`
	City         string `json:"city,omitempty" jsonschema:"City"`
	State        string `json:"state,omitempty" jsonschema:"State"`
	ContactName  string `json:"contact_name,omitempty" jsonschema:"Venue contact name"`
	ContactEmail string `json:"contact_email,omitempty" jsonschema:"Venue contact email"`
	Capacity     int    `json:"capacity,omitempty" jsonschema:"Guest capacity"`
	BookingCost  int64  `json:"booking_cost,omitempty" jsonschema:"Booking cost in cents"`
}

func (h *VenueHandlers) CreateVenue(ctx context.Context, request *mcp.CallToolRequest, input CreateVenueInput) (*mcp.CallToolResult, VenueOutput, error) {
	activationID, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, VenueOutput{}, err
	}
	if input.Name == "" {
		return nil, VenueOutput{}, fmt.Errorf("name is required")
	}

	v, err := h.svc.CreateVenue(ctx, models.Venue{
		ActivationID: activationID,
		Name:         input.Name,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		Capacity:     input.Capacity,
		BookingCost:  input.BookingCost,
	})
	if err != nil {
		return nil, VenueOutput{}, err
	}
	return nil, venueToOutput(v), nil
}

type VenueIDInput struct {
	VenueID string `json:"venue_id" jsonschema:"Venue UUID (required)"`
}

func (h *VenueHandlers) AdvanceVenue(ctx context.Context, request *mcp.CallToolRequest, input VenueIDInput) (*mcp.CallToolResult, VenueOutput, error) {
	id, err := parseID("venue_id", input.VenueID)
	if err != nil {
		return nil, VenueOutput{}, err
	}
	v, err := h.svc.AdvanceVenue(ctx, id)
	if err != nil {
		return nil, VenueOutput{}, err
	}
	return nil, venueToOutput(v), nil
}

type ScheduleWalkthroughInput struct {
	VenueID string `json:"venue_id" jsonschema:"Venue UUID (required)"`
	Date    string `json:"date,omitempty" jsonschema:"Walkthrough date (RFC3339 or YYYY-MM-DD)"`
	Notes   string `json:"notes,omitempty" jsonschema:"Walkthrough notes"`
}

func (h *VenueHandlers) ScheduleWalkthrough(ctx context.Context, request *mcp.CallToolRequest, input ScheduleWalkthroughInput) (*mcp.CallToolResult, VenueOutput, error) {
	id, err := parseID("venue_id", input.VenueID)
	if err != nil {
		return nil, VenueOutput{}, err
	}
	date, err := parseOptionalTime("date", input.Date)
	if err != nil {
		return nil, VenueOutput{}, err
	}
	v, err := h.svc.ScheduleWalkthrough(ctx, id, date, input.Notes)
	if err != nil {
		return nil, VenueOutput{}, err
	}
	return nil, venueToOutput(v), nil
}
