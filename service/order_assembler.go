package service

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"realpix-media/models"
	"realpix-media/utils"
)

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewReferenceCode generates the human-facing order reference:
// "RP-" + base36(epoch millis) + "-" + 6 random base36 chars, upper-cased.
// Uniqueness is probabilistic and not verified against the store before
// insert; a collision is an accepted, astronomically unlikely risk.
func NewReferenceCode() string {
	return newReferenceCodeAt(time.Now().UnixMilli())
}

func newReferenceCodeAt(epochMillis int64) string {
	suffix := make([]byte, 6)
	random := make([]byte, 6)
	if _, err := rand.Read(random); err != nil {
		// crypto/rand failing is effectively unrecoverable; fall back to the
		// clock so submission still proceeds.
		for i := range random {
			random[i] = byte(time.Now().UnixNano() >> (i * 8))
		}
	}
	for i, b := range random {
		suffix[i] = base36Chars[int(b)%len(base36Chars)]
	}

	code := "RP-" + strconv.FormatInt(epochMillis, 36) + "-" + string(suffix)
	return strings.ToUpper(code)
}

// optional normalizes a free-text field for persistence: blank becomes nil
// (stored as SQL null), anything else is trimmed. Keeps the persisted
// "not provided" state unambiguous.
func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// AssembleOrder turns the submitted booking request and its computed
// breakdown into the payload handed to the persistence boundary.
//
// The breakdown's line items are embedded verbatim as the price snapshot.
// Submission is refused while any selected item failed to price, so an
// undercharged order can never be persisted silently.
func AssembleOrder(req *models.CreateBookingRequest, breakdown *models.Breakdown) (*models.BookingPayload, error) {
	if len(breakdown.UnpricedItems) > 0 {
		return nil, fmt.Errorf("selection contains unpriced items: %s",
			strings.Join(breakdown.UnpricedItems, ", "))
	}
	if len(breakdown.LineItems) == 0 {
		return nil, fmt.Errorf("selection is empty")
	}

	var postal *string
	if normalized := utils.NormalizePostalCode(req.PostalCode); normalized != "" {
		postal = &normalized
	}

	payload := &models.BookingPayload{
		ReferenceNumber: NewReferenceCode(),
		Status:          "pending",
		PropertySize:    req.PropertySize,
		Services:        breakdown.LineItems,
		TotalAmount:     breakdown.Total,
		AgentName:       strings.TrimSpace(req.AgentName),
		AgentEmail:      strings.TrimSpace(req.AgentEmail),
		AgentPhone:      optional(req.AgentPhone),
		AgentCompany:    optional(req.AgentCompany),
		Address:         strings.TrimSpace(req.Address),
		City:            optional(req.City),
		Province:        optional(req.Province),
		PostalCode:      postal,
		PropertyType:    optional(req.PropertyType),
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		PreferredDate:   optional(req.PreferredDate),
		TimeSlot:        optional(req.TimeSlot),
		Notes:           optional(req.Notes),
	}
	return payload, nil
}
