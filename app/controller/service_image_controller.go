package controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"realpix-media/catalog"
	"realpix-media/service"
)

// ServiceImageController serves optimized marketing images for catalog services
type ServiceImageController struct{}

// NewServiceImageController creates a new ServiceImageController
func NewServiceImageController() *ServiceImageController {
	return &ServiceImageController{}
}

// GetServiceImage handles GET /api/services/:id/image?size=thumb|medium
// Serves the first catalog image for the service, resized and cached.
func (c *ServiceImageController) GetServiceImage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetServiceImage: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ GetServiceImage: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path format: /api/services/{id}/image
	path := strings.TrimPrefix(r.URL.Path, "/api/services/")
	serviceID := strings.TrimSuffix(path, "/image")
	if serviceID == path || serviceID == "" {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "medium"
	}

	cat := catalog.Get()
	if cat == nil {
		log.Printf("❌ GetServiceImage: Catalog not loaded")
		http.Error(w, "Catalog not loaded", http.StatusServiceUnavailable)
		return
	}

	svc := cat.Service(serviceID)
	if svc == nil {
		log.Printf("❌ GetServiceImage: Unknown service: %s", serviceID)
		http.Error(w, fmt.Sprintf("service not found: %s", serviceID), http.StatusNotFound)
		return
	}
	if len(svc.Images) == 0 {
		log.Printf("❌ GetServiceImage: Service %s has no images", serviceID)
		http.Error(w, fmt.Sprintf("service %s has no images", serviceID), http.StatusNotFound)
		return
	}

	data, err := service.GetOptimizedServiceImage(serviceID, svc.Images[0], size)
	if err != nil {
		log.Printf("❌ GetServiceImage: Error optimizing image for %s: %v", serviceID, err)
		http.Error(w, fmt.Sprintf("Failed to load image: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ GetServiceImage: Serving %d bytes for service %s (size=%s)", len(data), serviceID, size)

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}
