package app

import (
	"fmt"
	"log"
	"os"

	"realpix-media/app/controller"
	"realpix-media/app/router"
	"realpix-media/catalog"
	"realpix-media/db"
	"realpix-media/repository"
	"realpix-media/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Load the pricing catalog
	catalogPath := os.Getenv("CATALOG_PATH")
	if catalogPath == "" {
		catalogPath = "config/catalog.json"
	}
	if _, err := catalog.Load(catalogPath); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// Ensure image cache directory exists
	if err := service.EnsureCacheDir(); err != nil {
		return err
	}

	// Sheets-backed catalog sync is optional; without credentials the sync
	// endpoint reports itself unconfigured.
	var syncService *service.CatalogSyncService
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath != "" {
		sheetsService, err := service.NewSheetsService(credentialsPath)
		if err != nil {
			return err
		}
		syncService = service.NewCatalogSyncService(sheetsService, catalogPath)
	} else {
		log.Printf("⚠️ GOOGLE_APPLICATION_CREDENTIALS not set, catalog sync disabled")
	}

	// Initialize repository and services
	bookingRepo := repository.NewBookingRepository()
	bookingService := service.NewBookingService(bookingRepo, os.Getenv("BOOKING_FALLBACK_URL"))

	baseURL := os.Getenv("SUMMARY_BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}
	summaryService := service.NewSummaryService(baseURL)

	// Create controllers
	controllers := &router.Controllers{
		Catalog:      controller.NewCatalogController(syncService),
		Quote:        controller.NewQuoteController(bookingService),
		Booking:      controller.NewBookingController(bookingService, bookingRepo, summaryService),
		ServiceImage: controller.NewServiceImageController(),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
