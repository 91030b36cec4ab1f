package pricing

import (
	"testing"

	"realpix-media/catalog"
)

const testConfig = `{
	"currency": "CAD",
	"sizeBrackets": [
		{"id": "Under 1500", "label": "Under 1,500 sq ft"},
		{"id": "1500-2500", "label": "1,500 - 2,500 sq ft"},
		{"id": "5500plus", "label": "5,500+ sq ft", "unpriced": true}
	],
	"bundles": [
		{
			"id": "essentials",
			"title": "Essentials",
			"includedServiceIds": ["hdrPhotography"],
			"prices": {"Under 1500": 279, "1500-2500": 329}
		},
		{
			"id": "marketing-pro",
			"title": "Marketing Pro",
			"parentId": "essentials",
			"includedServiceIds": ["droneAerialPhotos", "twilightPhotos"],
			"prices": {"Under 1500": 479, "1500-2500": 529}
		},
		{
			"id": "top-agent",
			"title": "Top Agent",
			"parentId": "marketing-pro",
			"includedServiceIds": ["cinematicVideoTour"],
			"prices": {"Under 1500": 779, "1500-2500": 899}
		}
	],
	"services": [
		{"id": "hdrPhotography", "title": "HDR Photography", "prices": {"Under 1500": 199, "1500-2500": 239}},
		{"id": "droneAerialPhotos", "title": "Drone Aerial Photos", "price": 179},
		{"id": "twilightPhotos", "title": "Twilight Photos", "price": 149},
		{"id": "cinematicVideoTour", "title": "Cinematic Video Tour", "prices": {"Under 1500": 349, "1500-2500": 399}},
		{"id": "propertyWebsite", "title": "Property Website", "price": 129}
	],
	"addons": [
		{"id": "matterportTour", "title": "Matterport 3D Tour", "prices": {"Under 1500": 199, "1500-2500": 239}},
		{"id": "virtualStaging", "title": "Virtual Staging", "perUnit": true, "price": "39/image"},
		{"id": "blueSkyReplacement", "title": "Blue Sky Replacement", "price": 29}
	]
}`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(testConfig))
	if err != nil {
		t.Fatalf("failed to parse test catalog: %v", err)
	}
	return cat
}

func TestComputeTotalBundleWithAddon(t *testing.T) {
	cat := testCatalog(t)
	sel := FromQuote("essentials", nil, map[string]int{"matterportTour": 1})

	breakdown, err := ComputeTotal(cat, sel, "1500-2500")
	if err != nil {
		t.Fatalf("ComputeTotal returned error: %v", err)
	}

	if len(breakdown.LineItems) != 2 {
		t.Fatalf("got %d line items, want 2: %+v", len(breakdown.LineItems), breakdown.LineItems)
	}
	if breakdown.LineItems[0].Name != "Essentials" || breakdown.LineItems[0].LineTotal != 32900 {
		t.Errorf("bundle line = %+v, want Essentials at 32900", breakdown.LineItems[0])
	}
	if breakdown.LineItems[1].Name != "Matterport 3D Tour" || breakdown.LineItems[1].LineTotal != 23900 {
		t.Errorf("addon line = %+v, want Matterport 3D Tour at 23900", breakdown.LineItems[1])
	}
	if breakdown.Total != 56800 {
		t.Errorf("total = %d, want 56800", breakdown.Total)
	}
	if breakdown.TotalFormatted != "$568.00" {
		t.Errorf("totalFormatted = %q, want \"$568.00\"", breakdown.TotalFormatted)
	}
	if len(breakdown.UnpricedItems) != 0 {
		t.Errorf("unexpected unpriced items: %v", breakdown.UnpricedItems)
	}
}

func TestComputeTotalPerImageQuantity(t *testing.T) {
	cat := testCatalog(t)
	sel := FromQuote("", nil, map[string]int{"virtualStaging": 3})

	breakdown, err := ComputeTotal(cat, sel, "Under 1500")
	if err != nil {
		t.Fatalf("ComputeTotal returned error: %v", err)
	}

	if len(breakdown.LineItems) != 1 {
		t.Fatalf("got %d line items, want 1", len(breakdown.LineItems))
	}
	line := breakdown.LineItems[0]
	if line.UnitPrice != 3900 || line.Qty != 3 || line.LineTotal != 11700 {
		t.Errorf("line = %+v, want 3900 x 3 = 11700", line)
	}
	if !line.PerImage {
		t.Error("virtualStaging line should be marked per-image")
	}
	if breakdown.TotalFormatted != "$117.00" {
		t.Errorf("totalFormatted = %q, want \"$117.00\"", breakdown.TotalFormatted)
	}
}

func TestComputeTotalUnpricedBracket(t *testing.T) {
	cat := testCatalog(t)
	sel := FromQuote("essentials", nil, nil)

	if _, err := ComputeTotal(cat, sel, "5500plus"); err != ErrUnpriced {
		t.Fatalf("ComputeTotal error = %v, want ErrUnpriced", err)
	}
}

func TestComputeTotalUnknownBracket(t *testing.T) {
	cat := testCatalog(t)
	sel := FromQuote("essentials", nil, nil)

	if _, err := ComputeTotal(cat, sel, "9000plus"); err == nil {
		t.Fatal("expected error for unknown bracket")
	}
}

func TestComputeTotalIncludedServiceNotCharged(t *testing.T) {
	cat := testCatalog(t)
	sel := FromQuote("essentials",
		map[string]int{"hdrPhotography": 1, "twilightPhotos": 1}, nil)

	breakdown, err := ComputeTotal(cat, sel, "Under 1500")
	if err != nil {
		t.Fatalf("ComputeTotal returned error: %v", err)
	}

	// hdrPhotography is included in essentials, twilightPhotos is not.
	if len(breakdown.LineItems) != 2 {
		t.Fatalf("got %d line items, want 2 (bundle + twilightPhotos): %+v",
			len(breakdown.LineItems), breakdown.LineItems)
	}
	for _, line := range breakdown.LineItems {
		if line.Name == "HDR Photography" {
			t.Error("included service was charged separately")
		}
	}
	if breakdown.Total != 27900+14900 {
		t.Errorf("total = %d, want %d", breakdown.Total, 27900+14900)
	}
}

func TestComputeTotalUnknownIDsCollected(t *testing.T) {
	cat := testCatalog(t)
	sel := FromQuote("ghostBundle",
		map[string]int{"twilightPhotos": 1},
		map[string]int{"ghostAddon": 1})

	breakdown, err := ComputeTotal(cat, sel, "Under 1500")
	if err != nil {
		t.Fatalf("ComputeTotal returned error: %v", err)
	}

	if len(breakdown.UnpricedItems) != 2 {
		t.Fatalf("unpriced items = %v, want ghostBundle and ghostAddon", breakdown.UnpricedItems)
	}
	// Priced items still total up; the unpriced ones block submission later.
	if breakdown.Total != 14900 {
		t.Errorf("total = %d, want 14900", breakdown.Total)
	}
}

func TestComputeTotalDeterministic(t *testing.T) {
	cat := testCatalog(t)
	sel := FromQuote("",
		map[string]int{"twilightPhotos": 1, "droneAerialPhotos": 1, "cinematicVideoTour": 1},
		nil)

	first, err := ComputeTotal(cat, sel, "1500-2500")
	if err != nil {
		t.Fatalf("ComputeTotal returned error: %v", err)
	}

	// Line items come out in id order regardless of map iteration.
	wantOrder := []string{"Cinematic Video Tour", "Drone Aerial Photos", "Twilight Photos"}
	for i, want := range wantOrder {
		if first.LineItems[i].Name != want {
			t.Errorf("line %d = %q, want %q", i, first.LineItems[i].Name, want)
		}
	}

	for run := 0; run < 5; run++ {
		again, err := ComputeTotal(cat, sel, "1500-2500")
		if err != nil {
			t.Fatalf("ComputeTotal returned error: %v", err)
		}
		if len(again.LineItems) != len(first.LineItems) {
			t.Fatal("line item count changed between runs")
		}
		for i := range again.LineItems {
			if again.LineItems[i] != first.LineItems[i] {
				t.Errorf("run %d line %d = %+v, want %+v", run, i, again.LineItems[i], first.LineItems[i])
			}
		}
	}
}

func TestSelectionQuantitySemantics(t *testing.T) {
	sel := NewSelection()

	sel.SetServiceQty("virtualStaging", 3)
	if !sel.HasService("virtualStaging") || sel.Services["virtualStaging"] != 3 {
		t.Fatalf("services = %v, want virtualStaging:3", sel.Services)
	}

	// Setting quantity to zero removes the entry entirely.
	sel.SetServiceQty("virtualStaging", 0)
	if sel.HasService("virtualStaging") {
		t.Error("zero quantity should remove the service from the selection")
	}
	if _, ok := sel.Services["virtualStaging"]; ok {
		t.Error("no zero-quantity entry may linger in the map")
	}

	sel.SetAddonQty("itemRemoval", -2)
	if sel.HasAddon("itemRemoval") {
		t.Error("negative quantity should not create an entry")
	}
}

func TestFromQuoteDropsNonPositiveQuantities(t *testing.T) {
	sel := FromQuote("essentials",
		map[string]int{"twilightPhotos": 1, "droneAerialPhotos": 0},
		map[string]int{"virtualStaging": -1})

	if sel.BundleID != "essentials" {
		t.Errorf("bundle = %q, want essentials", sel.BundleID)
	}
	if !sel.HasService("twilightPhotos") {
		t.Error("positive-quantity service should survive")
	}
	if sel.HasService("droneAerialPhotos") || sel.HasAddon("virtualStaging") {
		t.Error("non-positive quantities should be dropped")
	}
}

func TestIsIncludedAllowList(t *testing.T) {
	cat := testCatalog(t)

	// Marked included as soon as any bundle is selected.
	if !IsIncluded(cat, "propertyWebsite", "essentials") {
		t.Error("propertyWebsite should be included with any bundle")
	}
	// No bundle, nothing is included.
	if IsIncluded(cat, "propertyWebsite", "") {
		t.Error("nothing is included without a bundle")
	}
}

func TestIsIncludedParentChain(t *testing.T) {
	cat := testCatalog(t)

	tests := []struct {
		serviceID string
		bundleID  string
		want      bool
	}{
		{"hdrPhotography", "essentials", true},
		{"droneAerialPhotos", "essentials", false},
		{"droneAerialPhotos", "marketing-pro", true},
		{"hdrPhotography", "marketing-pro", true},    // inherited from essentials
		{"hdrPhotography", "top-agent", true},        // inherited two levels up
		{"cinematicVideoTour", "top-agent", true},    // own list
		{"cinematicVideoTour", "marketing-pro", false},
		{"hdrPhotography", "ghostBundle", false},     // unknown bundle
		{"ghostService", "top-agent", false},         // unknown service
	}
	for _, tt := range tests {
		if got := IsIncluded(cat, tt.serviceID, tt.bundleID); got != tt.want {
			t.Errorf("IsIncluded(%s, %s) = %v, want %v", tt.serviceID, tt.bundleID, got, tt.want)
		}
	}
}
