package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"realpix-media/catalog"
	"realpix-media/models"
	"realpix-media/pricing"
	"realpix-media/repository"
)

// BookingService handles booking submission: pricing the selection,
// assembling the order payload, and persisting it.
// Implements BookingServiceInterface
type BookingService struct {
	repository  repository.BookingRepositoryInterface
	fallbackURL string
	client      *http.Client
}

// NewBookingService creates a new BookingService. fallbackURL may be empty,
// in which case a primary-write failure is surfaced directly.
func NewBookingService(repo repository.BookingRepositoryInterface, fallbackURL string) *BookingService {
	return &BookingService{
		repository:  repo,
		fallbackURL: fallbackURL,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Ensure BookingService implements BookingServiceInterface
var _ BookingServiceInterface = (*BookingService)(nil)

// Quote prices a selection without persisting anything. The quote-on-request
// bracket yields a contact-for-pricing response instead of a breakdown.
func (s *BookingService) Quote(req *models.QuoteRequest) (*models.QuoteResponse, error) {
	cat := catalog.Get()
	if cat == nil {
		return nil, fmt.Errorf("catalog not loaded")
	}

	sel := pricing.FromQuote(req.BundleID, req.Services, req.Addons)
	breakdown, err := pricing.ComputeTotal(cat, sel, req.PropertySize)
	if err == pricing.ErrUnpriced {
		return &models.QuoteResponse{
			PropertySize:      req.PropertySize,
			ContactForPricing: true,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &models.QuoteResponse{
		PropertySize: req.PropertySize,
		Breakdown:    breakdown,
	}, nil
}

// Submit prices the selection, assembles the order, and persists it.
// The primary write goes to the database; on failure the same payload is
// POSTed once to the fallback endpoint before an error is surfaced. No
// partial-order state is left visible on failure.
func (s *BookingService) Submit(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
	cat := catalog.Get()
	if cat == nil {
		return nil, fmt.Errorf("catalog not loaded")
	}

	sel := pricing.FromQuote(req.BundleID, req.Services, req.Addons)
	breakdown, err := pricing.ComputeTotal(cat, sel, req.PropertySize)
	if err == pricing.ErrUnpriced {
		return nil, fmt.Errorf("property size %q requires a custom quote and cannot be booked online", req.PropertySize)
	}
	if err != nil {
		return nil, err
	}

	payload, err := AssembleOrder(req, breakdown)
	if err != nil {
		return nil, err
	}

	booking, err := s.repository.Create(ctx, payload)
	if err == nil {
		log.Printf("✅ Submit: Booking %s persisted via primary store", payload.ReferenceNumber)
		return booking, nil
	}

	log.Printf("⚠️ Submit: Primary store write failed for %s: %v", payload.ReferenceNumber, err)

	if s.fallbackURL == "" {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if fbErr := s.postFallback(ctx, payload); fbErr != nil {
		log.Printf("❌ Submit: Fallback submission also failed for %s: %v", payload.ReferenceNumber, fbErr)
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	log.Printf("✅ Submit: Booking %s accepted via fallback endpoint", payload.ReferenceNumber)
	return &models.Booking{
		ReferenceNumber: payload.ReferenceNumber,
		Status:          payload.Status,
		PropertySize:    payload.PropertySize,
		TotalAmount:     payload.TotalAmount,
		AgentName:       payload.AgentName,
		AgentEmail:      payload.AgentEmail,
		Address:         payload.Address,
	}, nil
}

// postFallback sends the payload to the secondary endpoint. One attempt, no
// retry loop beyond this single alternate path.
func (s *BookingService) postFallback(ctx context.Context, payload *models.BookingPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode fallback payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.fallbackURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build fallback request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("fallback request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("fallback endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// Lookup fetches a booking for the confirmation view. An all-digit reference
// is treated as a legacy raw numeric id.
func (s *BookingService) Lookup(ctx context.Context, reference string) (*models.BookingResponse, error) {
	trimmed := strings.TrimSpace(reference)
	if trimmed == "" {
		return nil, fmt.Errorf("reference is required")
	}

	if isAllDigits(trimmed) {
		id, err := parseID(trimmed)
		if err != nil {
			return nil, err
		}
		return s.repository.GetByID(ctx, id)
	}
	return s.repository.GetByReference(ctx, trimmed)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid booking id: %s", s)
	}
	return id, nil
}
