package service

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"realpix-media/models"
)

var referenceRegex = regexp.MustCompile(`^RP-[0-9A-Z]+-[0-9A-Z]{6}$`)

func TestNewReferenceCodeFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := NewReferenceCode()
		if !referenceRegex.MatchString(code) {
			t.Fatalf("reference %q does not match RP-<base36 millis>-<6 chars>", code)
		}
		if seen[code] {
			t.Fatalf("duplicate reference generated: %q", code)
		}
		seen[code] = true
	}
}

func TestReferenceCodeEncodesMillis(t *testing.T) {
	const millis = int64(1756400000000)
	code := newReferenceCodeAt(millis)

	parts := strings.Split(code, "-")
	if len(parts) != 3 || parts[0] != "RP" {
		t.Fatalf("reference %q has unexpected shape", code)
	}

	decoded, err := strconv.ParseInt(strings.ToLower(parts[1]), 36, 64)
	if err != nil {
		t.Fatalf("middle segment %q is not base36: %v", parts[1], err)
	}
	if decoded != millis {
		t.Errorf("middle segment decodes to %d, want %d", decoded, millis)
	}
	if code != strings.ToUpper(code) {
		t.Errorf("reference %q is not upper-cased", code)
	}
}

func testBreakdown() *models.Breakdown {
	return &models.Breakdown{
		LineItems: []models.LineItem{
			{Name: "Essentials", UnitPrice: 32900, Qty: 1, LineTotal: 32900},
			{Name: "Matterport 3D Tour", UnitPrice: 23900, Qty: 1, LineTotal: 23900},
		},
		Total:          56800,
		TotalFormatted: "$568.00",
	}
}

func TestAssembleOrderSnapshot(t *testing.T) {
	req := &models.CreateBookingRequest{
		QuoteRequest: models.QuoteRequest{
			PropertySize: "1500-2500",
			BundleID:     "essentials",
			Addons:       map[string]int{"matterportTour": 1},
		},
		AgentName:  "  Dana Reyes ",
		AgentEmail: "dana@example.com",
		Address:    "12 Maple Ave",
		PostalCode: "k1a0a9",
	}

	payload, err := AssembleOrder(req, testBreakdown())
	if err != nil {
		t.Fatalf("AssembleOrder returned error: %v", err)
	}

	if !referenceRegex.MatchString(payload.ReferenceNumber) {
		t.Errorf("reference %q has wrong format", payload.ReferenceNumber)
	}
	if payload.Status != "pending" {
		t.Errorf("status = %q, want pending", payload.Status)
	}
	if payload.AgentName != "Dana Reyes" {
		t.Errorf("agent name = %q, want trimmed \"Dana Reyes\"", payload.AgentName)
	}
	if payload.TotalAmount != 56800 {
		t.Errorf("total = %d, want 56800", payload.TotalAmount)
	}
	if len(payload.Services) != 2 {
		t.Fatalf("snapshot has %d lines, want 2", len(payload.Services))
	}
	if payload.Services[0] != testBreakdown().LineItems[0] {
		t.Errorf("snapshot line 0 = %+v, want breakdown line carried verbatim", payload.Services[0])
	}
	if payload.PostalCode == nil || *payload.PostalCode != "K1A 0A9" {
		t.Errorf("postal = %v, want normalized \"K1A 0A9\"", payload.PostalCode)
	}
}

func TestAssembleOrderBlankOptionalsAreNull(t *testing.T) {
	req := &models.CreateBookingRequest{
		QuoteRequest: models.QuoteRequest{PropertySize: "1500-2500"},
		AgentName:    "Dana Reyes",
		AgentEmail:   "dana@example.com",
		Address:      "12 Maple Ave",
		AgentPhone:   "   ",
		City:         "",
		Notes:        "\t",
	}

	payload, err := AssembleOrder(req, testBreakdown())
	if err != nil {
		t.Fatalf("AssembleOrder returned error: %v", err)
	}

	if payload.AgentPhone != nil {
		t.Errorf("blank agentPhone should persist as null, got %q", *payload.AgentPhone)
	}
	if payload.City != nil {
		t.Errorf("empty city should persist as null, got %q", *payload.City)
	}
	if payload.Notes != nil {
		t.Errorf("whitespace notes should persist as null, got %q", *payload.Notes)
	}
	if payload.PostalCode != nil {
		t.Errorf("missing postal should persist as null, got %q", *payload.PostalCode)
	}
}

func TestAssembleOrderRefusesUnpricedItems(t *testing.T) {
	breakdown := testBreakdown()
	breakdown.UnpricedItems = []string{"ghostAddon"}

	req := &models.CreateBookingRequest{
		QuoteRequest: models.QuoteRequest{PropertySize: "1500-2500"},
		AgentName:    "Dana Reyes",
		AgentEmail:   "dana@example.com",
		Address:      "12 Maple Ave",
	}

	if _, err := AssembleOrder(req, breakdown); err == nil {
		t.Fatal("expected refusal while unpriced items exist")
	} else if !strings.Contains(err.Error(), "ghostAddon") {
		t.Errorf("error %q should name the unpriced item", err.Error())
	}
}

func TestAssembleOrderRefusesEmptySelection(t *testing.T) {
	req := &models.CreateBookingRequest{
		QuoteRequest: models.QuoteRequest{PropertySize: "1500-2500"},
		AgentName:    "Dana Reyes",
		AgentEmail:   "dana@example.com",
		Address:      "12 Maple Ave",
	}

	if _, err := AssembleOrder(req, &models.Breakdown{}); err == nil {
		t.Fatal("expected refusal for an empty selection")
	}
}
