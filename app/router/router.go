package router

import (
	"net/http"
	"strings"

	"realpix-media/app/controller"
)

type Controllers struct {
	Catalog      *controller.CatalogController
	Quote        *controller.QuoteController
	Booking      *controller.BookingController
	ServiceImage *controller.ServiceImageController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Catalog feed for the booking wizard
	http.HandleFunc("/api/catalog", controllers.Catalog.GetCatalog)

	// Price a selection without persisting
	http.HandleFunc("/api/quote", controllers.Quote.Quote)

	// Service marketing images
	http.HandleFunc("/api/services/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/image") {
			controllers.ServiceImage.GetServiceImage(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Bookings routes
	// Submit a booking
	http.HandleFunc("/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Booking.CreateBooking(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Look up a booking by reference (or legacy numeric id)
	http.HandleFunc("/api/bookings/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Booking.GetBooking(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Admin: list bookings
	http.HandleFunc("/admin/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Booking.ListBookings(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Admin: booking actions (must route suffixes before any generic form)
	http.HandleFunc("/admin/bookings/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/bookings/")

		if strings.HasSuffix(path, "/status") {
			controllers.Booking.UpdateStatus(w, r)
			return
		}
		if strings.HasSuffix(path, "/summary.png") {
			controllers.Booking.GetSummaryPNG(w, r)
			return
		}
		if strings.HasSuffix(path, "/render") {
			controllers.Booking.RenderSummary(w, r)
			return
		}

		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Admin: sync catalog prices from the authoring spreadsheet
	http.HandleFunc("/admin/catalog/sync", controllers.Catalog.SyncCatalog)
}
