package service

import (
	"encoding/json"
	"testing"
)

func syncDoc(t *testing.T) map[string]interface{} {
	t.Helper()
	const config = `{
		"currency": "CAD",
		"sizeBrackets": [{"id": "Under 1500", "label": "x"}],
		"bundles": [{"id": "essentials", "title": "Essentials", "prices": {"Under 1500": 279}}],
		"services": [{"id": "droneAerialPhotos", "title": "Drone", "price": 179}],
		"addons": [{"id": "virtualStaging", "title": "Staging", "perUnit": true, "price": "39/image"}]
	}`
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(config), &doc); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func TestApplyPriceRowBracketPrice(t *testing.T) {
	doc := syncDoc(t)

	ok := applyPriceRow(doc, PriceRow{Kind: "bundle", ID: "essentials", Bracket: "Under 1500", Price: "299"})
	if !ok {
		t.Fatal("expected bundle row to apply")
	}

	bundle := doc["bundles"].([]interface{})[0].(map[string]interface{})
	prices := bundle["prices"].(map[string]interface{})
	if prices["Under 1500"] != "299" {
		t.Errorf("bundle price = %v, want \"299\"", prices["Under 1500"])
	}
}

func TestApplyPriceRowFlatPrice(t *testing.T) {
	doc := syncDoc(t)

	if !applyPriceRow(doc, PriceRow{Kind: "service", ID: "droneAerialPhotos", Bracket: "flat", Price: "189"}) {
		t.Fatal("expected flat service row to apply")
	}
	svc := doc["services"].([]interface{})[0].(map[string]interface{})
	if svc["price"] != "189" {
		t.Errorf("service price = %v, want \"189\"", svc["price"])
	}

	// Empty bracket means flat too
	if !applyPriceRow(doc, PriceRow{Kind: "addon", ID: "virtualStaging", Price: "45/image"}) {
		t.Fatal("expected addon row to apply")
	}
	addon := doc["addons"].([]interface{})[0].(map[string]interface{})
	if addon["price"] != "45/image" {
		t.Errorf("addon price = %v, want \"45/image\"", addon["price"])
	}
}

func TestApplyPriceRowCreatesPriceTable(t *testing.T) {
	doc := syncDoc(t)

	// droneAerialPhotos has only a flat price; a bracket row creates the table.
	if !applyPriceRow(doc, PriceRow{Kind: "service", ID: "droneAerialPhotos", Bracket: "Under 1500", Price: "169"}) {
		t.Fatal("expected bracket row to apply")
	}
	svc := doc["services"].([]interface{})[0].(map[string]interface{})
	prices, ok := svc["prices"].(map[string]interface{})
	if !ok {
		t.Fatal("prices table was not created")
	}
	if prices["Under 1500"] != "169" {
		t.Errorf("created price = %v, want \"169\"", prices["Under 1500"])
	}
}

func TestApplyPriceRowSkipsUnknownTargets(t *testing.T) {
	doc := syncDoc(t)

	if applyPriceRow(doc, PriceRow{Kind: "bundle", ID: "ghost", Price: "100"}) {
		t.Error("unknown bundle id should be skipped")
	}
	if applyPriceRow(doc, PriceRow{Kind: "widget", ID: "essentials", Price: "100"}) {
		t.Error("unknown kind should be skipped")
	}
}
