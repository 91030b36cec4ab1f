package models

// Booking represents a submitted booking in the database.
type Booking struct {
	ID              int64  `json:"id"`
	ReferenceNumber string `json:"referenceNumber"`
	Status          string `json:"status"` // pending, confirmed, cancelled
	PropertySize    string `json:"propertySize"`
	TotalAmount     int64  `json:"totalAmount"` // cents
	AgentName       string `json:"agentName"`
	AgentEmail      string `json:"agentEmail"`
	AgentPhone      string `json:"agentPhone,omitempty"`
	AgentCompany    string `json:"agentCompany,omitempty"`
	Address         string `json:"address"`
	City            string `json:"city,omitempty"`
	Province        string `json:"province,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	PropertyType    string `json:"propertyType,omitempty"`
	Bedrooms        int    `json:"bedrooms,omitempty"`
	Bathrooms       int    `json:"bathrooms,omitempty"`
	PreferredDate   string `json:"preferredDate,omitempty"`
	TimeSlot        string `json:"timeSlot,omitempty"`
	Notes           string `json:"notes,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// CreateBookingRequest is the request body for submitting a booking.
// Example:
// {
//   "propertySize": "1500-2500",
//   "bundleId": "essentials",
//   "addons": {"matterportTour": 1},
//   "agentName": "Dana Reyes",
//   "agentEmail": "dana@example.com",
//   "address": "12 Maple Ave",
//   "postalCode": "k1a0a9",
//   "preferredDate": "2026-09-15",
//   "timeSlot": "morning"
// }
type CreateBookingRequest struct {
	QuoteRequest
	AgentName     string `json:"agentName"`
	AgentEmail    string `json:"agentEmail"`
	AgentPhone    string `json:"agentPhone,omitempty"`
	AgentCompany  string `json:"agentCompany,omitempty"`
	Address       string `json:"address"`
	City          string `json:"city,omitempty"`
	Province      string `json:"province,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	PropertyType  string `json:"propertyType,omitempty"`
	Bedrooms      int    `json:"bedrooms,omitempty"`
	Bathrooms     int    `json:"bathrooms,omitempty"`
	PreferredDate string `json:"preferredDate,omitempty"`
	TimeSlot      string `json:"timeSlot,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// BookingPayload is the downstream record shape shared by the primary
// database insert and the HTTP fallback endpoint. Optional free-text fields
// are pointers so that "not provided" persists as null, never empty string.
// The embedded line items are the canonical price snapshot; totals are never
// re-derived from the catalog after submission.
type BookingPayload struct {
	ReferenceNumber string     `json:"reference_number"`
	Status          string     `json:"status"`
	PropertySize    string     `json:"property_size"`
	Services        []LineItem `json:"services"`
	TotalAmount     int64      `json:"total_amount"`
	AgentName       string     `json:"agent_name"`
	AgentEmail      string     `json:"agent_email"`
	AgentPhone      *string    `json:"agent_phone"`
	AgentCompany    *string    `json:"agent_company"`
	Address         string     `json:"address"`
	City            *string    `json:"city"`
	Province        *string    `json:"province"`
	PostalCode      *string    `json:"postal_code"`
	PropertyType    *string    `json:"property_type"`
	Bedrooms        int        `json:"bedrooms,omitempty"`
	Bathrooms       int        `json:"bathrooms,omitempty"`
	PreferredDate   *string    `json:"preferred_date"`
	TimeSlot        *string    `json:"time"`
	Notes           *string    `json:"notes"`
}

// BookingResponse is a single booking with its persisted line items.
type BookingResponse struct {
	Booking
	Lines          []LineItem `json:"lines"`
	TotalFormatted string     `json:"totalFormatted"`
}

// BookingListItem represents a booking in a list response.
type BookingListItem struct {
	Booking
	LineCount int `json:"lineCount"`
}

// BookingListResponse is the response for listing bookings.
type BookingListResponse struct {
	Bookings []BookingListItem `json:"bookings"`
}

// UpdateBookingStatusRequest is the request body for a status transition.
// Example: {"status": "confirmed"}
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}
