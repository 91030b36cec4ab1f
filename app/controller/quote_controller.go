package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"realpix-media/models"
	"realpix-media/service"
)

// QuoteController handles HTTP requests for price quotes
type QuoteController struct {
	bookingService service.BookingServiceInterface
}

// NewQuoteController creates a new QuoteController
func NewQuoteController(bookingService service.BookingServiceInterface) *QuoteController {
	return &QuoteController{
		bookingService: bookingService,
	}
}

// Quote handles POST /api/quote
// Example request:
// POST /api/quote
// {
//   "propertySize": "1500-2500",
//   "bundleId": "essentials",
//   "addons": {"matterportTour": 1}
// }
// Example response:
// {
//   "propertySize": "1500-2500",
//   "breakdown": {
//     "lineItems": [
//       {"name": "Essentials", "unitPrice": 32900, "qty": 1, "lineTotal": 32900},
//       {"name": "Matterport 3D Tour", "unitPrice": 23900, "qty": 1, "lineTotal": 23900}
//     ],
//     "total": 56800,
//     "totalFormatted": "$568.00"
//   }
// }
func (c *QuoteController) Quote(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Quote: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Quote: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Quote: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.PropertySize) == "" {
		log.Printf("❌ Quote: propertySize is required")
		http.Error(w, "propertySize is required", http.StatusBadRequest)
		return
	}

	resp, err := c.bookingService.Quote(&req)
	if err != nil {
		log.Printf("❌ Quote: Error computing quote: %v", err)
		errMsg := err.Error()
		if strings.Contains(errMsg, "unknown size bracket") {
			http.Error(w, errMsg, http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to compute quote: %v", err), http.StatusInternalServerError)
		return
	}

	if resp.ContactForPricing {
		log.Printf("✅ Quote: Size %s is quote-on-request", req.PropertySize)
	} else {
		log.Printf("✅ Quote: Computed %s for size %s (%d line items)",
			resp.Breakdown.TotalFormatted, req.PropertySize, len(resp.Breakdown.LineItems))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("❌ Quote: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
