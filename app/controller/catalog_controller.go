package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"realpix-media/catalog"
	"realpix-media/service"
)

// CatalogController handles HTTP requests for the pricing catalog
type CatalogController struct {
	syncService *service.CatalogSyncService
}

// NewCatalogController creates a new CatalogController. syncService may be nil
// when no spreadsheet credentials are configured; sync requests then get 503.
func NewCatalogController(syncService *service.CatalogSyncService) *CatalogController {
	return &CatalogController{
		syncService: syncService,
	}
}

// GetCatalog handles GET /api/catalog
// Returns the wizard feed: pricing table per size bracket plus packages.
// Example response:
// {
//   "pricingData": {"1500-2500": {"hdrPhotography": 239, "droneAerialPhotos": 179}},
//   "packagesData": [{"id": "essentials", "title": "Essentials", "prices": {"1500-2500": "$329.00"}}],
//   "sizeBrackets": [{"id": "Under 1500", "label": "Under 1,500 sq ft"}],
//   "currency": "CAD"
// }
func (c *CatalogController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCatalog: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ GetCatalog: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cat := catalog.Get()
	if cat == nil {
		log.Printf("❌ GetCatalog: Catalog not loaded")
		http.Error(w, "Catalog not loaded", http.StatusServiceUnavailable)
		return
	}

	feed := cat.BuildFeed()
	log.Printf("✅ GetCatalog: Serving feed with %d brackets, %d packages",
		len(feed.Brackets), len(feed.PackagesData))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(feed); err != nil {
		log.Printf("❌ GetCatalog: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// SyncCatalog handles POST /admin/catalog/sync?spreadsheetId=XXX&range=Prices!A:D
// Example response:
// {"updated": 12, "skipped": 1}
func (c *CatalogController) SyncCatalog(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SyncCatalog: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ SyncCatalog: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if c.syncService == nil {
		log.Printf("❌ SyncCatalog: Sheets credentials not configured")
		http.Error(w, "Catalog sync is not configured", http.StatusServiceUnavailable)
		return
	}

	spreadsheetID := r.URL.Query().Get("spreadsheetId")
	if spreadsheetID == "" {
		log.Printf("❌ SyncCatalog: spreadsheetId parameter is required")
		http.Error(w, "spreadsheetId parameter is required", http.StatusBadRequest)
		return
	}

	readRange := r.URL.Query().Get("range")
	if readRange == "" {
		readRange = "Prices!A:D"
	}

	ctx := context.Background()
	updated, skipped, err := c.syncService.SyncCatalog(ctx, spreadsheetID, readRange)
	if err != nil {
		log.Printf("❌ SyncCatalog: Sync failed: %v", err)
		http.Error(w, fmt.Sprintf("Failed to sync catalog: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ SyncCatalog: Applied %d updates (%d skipped)", updated, skipped)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]int{
		"updated": updated,
		"skipped": skipped,
	}); err != nil {
		log.Printf("❌ SyncCatalog: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
