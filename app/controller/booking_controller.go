package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"realpix-media/models"
	"realpix-media/repository"
	"realpix-media/service"
)

// BookingController handles HTTP requests for bookings
type BookingController struct {
	bookingService service.BookingServiceInterface
	repository     repository.BookingRepositoryInterface
	summaryService *service.SummaryService
}

// NewBookingController creates a new BookingController
func NewBookingController(bookingService service.BookingServiceInterface, repo repository.BookingRepositoryInterface, summaryService *service.SummaryService) *BookingController {
	return &BookingController{
		bookingService: bookingService,
		repository:     repo,
		summaryService: summaryService,
	}
}

// CreateBooking handles POST /api/bookings
// Example request:
// POST /api/bookings
// {
//   "propertySize": "1500-2500",
//   "bundleId": "essentials",
//   "addons": {"matterportTour": 1},
//   "agentName": "Dana Reyes",
//   "agentEmail": "dana@example.com",
//   "address": "12 Maple Ave",
//   "postalCode": "k1a0a9"
// }
// Example response:
// {
//   "id": 42,
//   "referenceNumber": "RP-MFJ3K2X1-A7Q9ZC",
//   "status": "pending",
//   "totalAmount": 56800,
//   ...
// }
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateBooking: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ CreateBooking: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateBooking: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	// Validate required fields
	if strings.TrimSpace(req.PropertySize) == "" {
		log.Printf("❌ CreateBooking: propertySize is required")
		http.Error(w, "propertySize is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.AgentName) == "" {
		log.Printf("❌ CreateBooking: agentName is required")
		http.Error(w, "agentName is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.AgentEmail) == "" {
		log.Printf("❌ CreateBooking: agentEmail is required")
		http.Error(w, "agentEmail is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Address) == "" {
		log.Printf("❌ CreateBooking: address is required")
		http.Error(w, "address is required", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	booking, err := c.bookingService.Submit(ctx, &req)
	if err != nil {
		log.Printf("❌ CreateBooking: Error submitting booking: %v", err)
		errMsg := err.Error()
		if strings.Contains(errMsg, "custom quote") {
			http.Error(w, errMsg, http.StatusUnprocessableEntity)
			return
		}
		if strings.Contains(errMsg, "unpriced items") {
			http.Error(w, errMsg, http.StatusUnprocessableEntity)
			return
		}
		if strings.Contains(errMsg, "unknown size bracket") {
			http.Error(w, errMsg, http.StatusBadRequest)
			return
		}
		if strings.Contains(errMsg, "selection is empty") {
			http.Error(w, errMsg, http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to create booking: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ CreateBooking: Created booking %s", booking.ReferenceNumber)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(booking); err != nil {
		log.Printf("❌ CreateBooking: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// GetBooking handles GET /api/bookings/:reference
// An all-digit reference is treated as a legacy raw numeric id.
func (c *BookingController) GetBooking(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetBooking: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ GetBooking: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path format: /api/bookings/{reference}
	reference := strings.TrimPrefix(r.URL.Path, "/api/bookings/")
	if reference == "" {
		http.Error(w, "booking reference parameter is required", http.StatusBadRequest)
		return
	}
	if strings.Contains(reference, "/") {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	booking, err := c.bookingService.Lookup(ctx, reference)
	if err != nil {
		log.Printf("❌ GetBooking: Error fetching booking: %v", err)
		errMsg := err.Error()
		if strings.Contains(errMsg, "not found") {
			http.Error(w, errMsg, http.StatusNotFound)
			return
		}
		if strings.Contains(errMsg, "invalid booking id") {
			http.Error(w, errMsg, http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch booking: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ GetBooking: Successfully fetched booking %s", booking.ReferenceNumber)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(booking); err != nil {
		log.Printf("❌ GetBooking: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListBookings handles GET /admin/bookings?status=pending
// Example response:
// {
//   "bookings": [
//     {"id": 42, "referenceNumber": "RP-MFJ3K2X1-A7Q9ZC", "status": "pending", "lineCount": 2}
//   ]
// }
func (c *BookingController) ListBookings(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListBookings: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ListBookings: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var status *string
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		if statusStr != "pending" && statusStr != "confirmed" && statusStr != "cancelled" {
			log.Printf("❌ ListBookings: Invalid status filter: %s", statusStr)
			http.Error(w, "Invalid status filter. Use pending, confirmed or cancelled", http.StatusBadRequest)
			return
		}
		status = &statusStr
	}

	ctx := context.Background()
	bookings, err := c.repository.List(ctx, status)
	if err != nil {
		log.Printf("❌ ListBookings: Error fetching bookings: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch bookings: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ ListBookings: Successfully fetched %d bookings", len(bookings))

	response := models.BookingListResponse{
		Bookings: bookings,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ ListBookings: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// UpdateStatus handles POST /admin/bookings/:reference/status
// Example request:
// POST /admin/bookings/RP-MFJ3K2X1-A7Q9ZC/status
// {"status": "confirmed"}
func (c *BookingController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateStatus: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ UpdateStatus: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path format: /admin/bookings/{reference}/status
	path := strings.TrimPrefix(r.URL.Path, "/admin/bookings/")
	reference := strings.TrimSuffix(path, "/status")
	if reference == path || reference == "" {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	var req models.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateStatus: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Status) == "" {
		log.Printf("❌ UpdateStatus: status is required")
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	booking, err := c.repository.UpdateStatus(ctx, reference, req.Status)
	if err != nil {
		log.Printf("❌ UpdateStatus: Error updating booking: %v", err)
		errMsg := err.Error()
		if strings.Contains(errMsg, "not found") {
			http.Error(w, errMsg, http.StatusNotFound)
			return
		}
		if strings.Contains(errMsg, "invalid status") {
			http.Error(w, errMsg, http.StatusBadRequest)
			return
		}
		if strings.Contains(errMsg, "not in pending status") {
			http.Error(w, errMsg, http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to update booking: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ UpdateStatus: Booking %s is now %s", booking.ReferenceNumber, booking.Status)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(booking); err != nil {
		log.Printf("❌ UpdateStatus: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// RenderSummary handles GET /admin/bookings/:reference/render
// Serves the HTML summary sheet that headless Chrome screenshots.
func (c *BookingController) RenderSummary(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RenderSummary: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/admin/bookings/")
	reference := strings.TrimSuffix(path, "/render")
	if reference == path || reference == "" {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	booking, err := c.bookingService.Lookup(ctx, reference)
	if err != nil {
		log.Printf("❌ RenderSummary: Error fetching booking: %v", err)
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch booking: %v", err), http.StatusInternalServerError)
		return
	}

	html, err := c.summaryService.RenderHTML(booking)
	if err != nil {
		log.Printf("❌ RenderSummary: Error rendering summary: %v", err)
		http.Error(w, "Failed to render summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// GetSummaryPNG handles GET /admin/bookings/:reference/summary.png
// Returns a PNG screenshot of the booking summary sheet.
func (c *BookingController) GetSummaryPNG(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetSummaryPNG: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ GetSummaryPNG: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/admin/bookings/")
	reference := strings.TrimSuffix(path, "/summary.png")
	if reference == path || reference == "" {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	// Confirm the booking exists before spinning up Chrome
	ctx := context.Background()
	if _, err := c.bookingService.Lookup(ctx, reference); err != nil {
		log.Printf("❌ GetSummaryPNG: Error fetching booking: %v", err)
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch booking: %v", err), http.StatusInternalServerError)
		return
	}

	png, err := c.summaryService.RenderPNG(ctx, reference)
	if err != nil {
		log.Printf("❌ GetSummaryPNG: Error rendering PNG: %v", err)
		http.Error(w, fmt.Sprintf("Failed to render summary: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ GetSummaryPNG: Serving %d bytes for booking %s", len(png), reference)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s-summary.png"`, reference))
	w.Write(png)
}
