package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"realpix-media/catalog"
)

// CatalogSyncService pulls price updates from the catalog authoring
// spreadsheet into the catalog config file and hot-reloads the session
// catalog. Structure changes (new bundles/services) are still authored by
// hand; the spreadsheet only owns prices.
type CatalogSyncService struct {
	sheets     SheetsServiceInterface
	configPath string
}

// NewCatalogSyncService creates a new CatalogSyncService
func NewCatalogSyncService(sheetsService SheetsServiceInterface, configPath string) *CatalogSyncService {
	return &CatalogSyncService{
		sheets:     sheetsService,
		configPath: configPath,
	}
}

// SyncCatalog fetches price rows, applies them to the catalog config,
// validates the result, writes it back, and reloads the singleton.
// Returns (updated, skipped) row counts.
func (s *CatalogSyncService) SyncCatalog(ctx context.Context, spreadsheetID, readRange string) (int, int, error) {
	log.Printf("🔄 SyncCatalog: Syncing prices from spreadsheet %s range %s", spreadsheetID, readRange)

	rows, err := s.sheets.FetchPriceRows(spreadsheetID, readRange)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch price rows: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, fmt.Errorf("spreadsheet range contained no usable price rows")
	}

	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read catalog config: %w", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, 0, fmt.Errorf("failed to parse catalog config: %w", err)
	}

	updated, skipped := 0, 0
	for _, row := range rows {
		if applyPriceRow(doc, row) {
			updated++
		} else {
			skipped++
			log.Printf("⚠️ SyncCatalog: Skipped row kind=%s id=%s bracket=%s (no matching catalog entry)",
				row.Kind, row.ID, row.Bracket)
		}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to encode catalog config: %w", err)
	}

	// Validate before touching the file so a bad spreadsheet cannot break
	// the running catalog.
	if _, err := catalog.Parse(out); err != nil {
		return 0, 0, fmt.Errorf("synced catalog failed validation: %w", err)
	}

	if err := os.WriteFile(s.configPath, out, 0644); err != nil {
		return 0, 0, fmt.Errorf("failed to write catalog config: %w", err)
	}

	if _, err := catalog.Load(s.configPath); err != nil {
		return 0, 0, fmt.Errorf("failed to reload catalog: %w", err)
	}

	log.Printf("✅ SyncCatalog: Applied %d price updates (%d skipped)", updated, skipped)
	return updated, skipped, nil
}

// applyPriceRow writes one spreadsheet price into the generic catalog
// document. Returns false when no matching entry exists.
func applyPriceRow(doc map[string]interface{}, row PriceRow) bool {
	var listKey string
	switch row.Kind {
	case "bundle":
		listKey = "bundles"
	case "service":
		listKey = "services"
	case "addon":
		listKey = "addons"
	default:
		return false
	}

	list, ok := doc[listKey].([]interface{})
	if !ok {
		return false
	}

	for _, raw := range list {
		entry, ok := raw.(map[string]interface{})
		if !ok || entry["id"] != row.ID {
			continue
		}

		if row.Bracket == "" || row.Bracket == "flat" {
			entry["price"] = row.Price
			return true
		}

		prices, ok := entry["prices"].(map[string]interface{})
		if !ok {
			prices = make(map[string]interface{})
			entry["prices"] = prices
		}
		prices[row.Bracket] = row.Price
		return true
	}
	return false
}
