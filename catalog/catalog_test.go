package catalog

import "testing"

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
			"prices": {"Under 1500": 279, "1500-2500": "$329"}
		},
		{
			"id": "marketing-pro",
			"title": "Marketing Pro",
			"parentId": "essentials",
			"includedServiceIds": ["droneAerialPhotos"],
			"prices": {"Under 1500": 479, "1500-2500": 529}
		}
	],
	"services": [
		{
			"id": "hdrPhotography",
			"title": "HDR Photography",
			"prices": {"Under 1500": 199, "1500-2500": 239}
		},
		{
			"id": "droneAerialPhotos",
			"title": "Drone Aerial Photos",
			"price": 179
		}
	],
	"addons": [
		{
			"id": "matterportTour",
			"title": "Matterport 3D Tour",
			"prices": {"Under 1500": 199, "1500-2500": 239}
		},
		{
			"id": "virtualStaging",
			"title": "Virtual Staging",
			"perUnit": true,
			"price": "39/image"
		}
	]
}`

func TestParseNormalizesPrices(t *testing.T) {
	cat, err := Parse([]byte(testConfig))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	b := cat.Bundle("essentials")
	if b == nil {
		t.Fatal("bundle essentials not found")
	}
	if b.Prices["Under 1500"] != 27900 {
		t.Errorf("essentials Under 1500 = %d cents, want 27900", b.Prices["Under 1500"])
	}
	if b.Prices["1500-2500"] != 32900 {
		t.Errorf("essentials 1500-2500 = %d cents, want 32900 (from \"$329\")", b.Prices["1500-2500"])
	}

	staging := cat.Service("virtualStaging")
	if staging == nil {
		t.Fatal("addon virtualStaging not found")
	}
	if staging.Unit != UnitPerImage {
		t.Errorf("virtualStaging unit = %s, want %s", staging.Unit, UnitPerImage)
	}
	if !staging.Addon {
		t.Error("virtualStaging should be flagged as addon")
	}
	if p, ok := staging.PriceFor("Under 1500"); !ok || p != 3900 {
		t.Errorf("virtualStaging price = %d,%v, want 3900 (from \"39/image\")", p, ok)
	}
}

func TestServiceIndexCoversServicesAndAddons(t *testing.T) {
	cat, err := Parse([]byte(testConfig))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	for _, id := range []string{"hdrPhotography", "droneAerialPhotos", "matterportTour", "virtualStaging"} {
		if cat.Service(id) == nil {
			t.Errorf("Service(%q) = nil, want indexed entry", id)
		}
	}
	if cat.Service("nope") != nil {
		t.Error("Service(nope) should be nil")
	}
}

func TestPriceForTableWinsOverFlat(t *testing.T) {
	cat, err := Parse([]byte(testConfig))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	hdr := cat.Service("hdrPhotography")
	if p, ok := hdr.PriceFor("1500-2500"); !ok || p != 23900 {
		t.Errorf("hdrPhotography 1500-2500 = %d,%v, want 23900", p, ok)
	}
	// No table entry and no flat price: not priceable for that bracket
	if _, ok := hdr.PriceFor("5500plus"); ok {
		t.Error("hdrPhotography should have no price for 5500plus")
	}

	drone := cat.Service("droneAerialPhotos")
	if p, ok := drone.PriceFor("1500-2500"); !ok || p != 17900 {
		t.Errorf("droneAerialPhotos fallback flat price = %d,%v, want 17900", p, ok)
	}
}

func TestParseRejectsBundleMissingBracketPrice(t *testing.T) {
	const config = `{
		"currency": "CAD",
		"sizeBrackets": [
			{"id": "Under 1500", "label": "Under 1,500 sq ft"},
			{"id": "1500-2500", "label": "1,500 - 2,500 sq ft"}
		],
		"bundles": [
			{"id": "essentials", "title": "Essentials", "prices": {"Under 1500": 279}}
		]
	}`
	if _, err := Parse([]byte(config)); err == nil {
		t.Fatal("expected error for bundle missing a bracket price")
	}
}

func TestParseAllowsMissingPriceForUnpricedBracket(t *testing.T) {
	// 5500plus is quote-on-request; bundles carry no price for it and the
	// config is still valid.
	if _, err := Parse([]byte(testConfig)); err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
}

func TestParseRejectsUnknownParent(t *testing.T) {
	const config = `{
		"currency": "CAD",
		"sizeBrackets": [{"id": "Under 1500", "label": "Under 1,500 sq ft"}],
		"bundles": [
			{"id": "orphan", "title": "Orphan", "parentId": "ghost", "prices": {"Under 1500": 100}}
		]
	}`
	if _, err := Parse([]byte(config)); err == nil {
		t.Fatal("expected error for unknown parent bundle")
	}
}

func TestParseRejectsMissingCurrency(t *testing.T) {
	const config = `{
		"sizeBrackets": [{"id": "Under 1500", "label": "x"}],
		"bundles": [{"id": "b", "title": "B", "prices": {"Under 1500": 100}}]
	}`
	if _, err := Parse([]byte(config)); err == nil {
		t.Fatal("expected error for missing currency")
	}
}

func TestBuildFeedSkipsUnpricedBracket(t *testing.T) {
	cat, err := Parse([]byte(testConfig))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	feed := cat.BuildFeed()
	if _, ok := feed.PricingData["5500plus"]; ok {
		t.Error("feed should not carry pricing rows for the unpriced bracket")
	}
	if feed.PricingData["1500-2500"]["hdrPhotography"] != 239 {
		t.Errorf("feed hdrPhotography 1500-2500 = %v, want 239",
			feed.PricingData["1500-2500"]["hdrPhotography"])
	}
	if len(feed.Brackets) != 3 {
		t.Errorf("feed brackets = %d, want all 3 (unpriced still listed)", len(feed.Brackets))
	}

	var essentials *FeedPackage
	for i := range feed.PackagesData {
		if feed.PackagesData[i].ID == "essentials" {
			essentials = &feed.PackagesData[i]
		}
	}
	if essentials == nil {
		t.Fatal("essentials missing from feed packages")
	}
	if essentials.Prices["1500-2500"] != "$329.00" {
		t.Errorf("essentials feed price = %q, want \"$329.00\"", essentials.Prices["1500-2500"])
	}
	if feed.Currency != "CAD" {
		t.Errorf("feed currency = %q, want CAD", feed.Currency)
	}
}
