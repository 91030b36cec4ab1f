package models

// LineItem is one priced row in a computed order. Money values are integer
// cents; they are formatted to two decimals only at display/submission time.
// Produced fresh on every pricing recomputation, never mutated in place.
type LineItem struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Qty       int    `json:"qty"`
	LineTotal int64  `json:"lineTotal"`
	// PerImage marks items displayed with a "/img" unit suffix. The suffix is
	// presentational only; pricing is always unit price times quantity.
	PerImage bool `json:"perImage,omitempty"`
}

// Breakdown is the itemized result of a pricing computation.
// UnpricedItems lists selected ids that could not be resolved to a price;
// a quote surfaces them as warnings and submission refuses while any exist.
type Breakdown struct {
	LineItems      []LineItem `json:"lineItems"`
	Total          int64      `json:"total"`
	TotalFormatted string     `json:"totalFormatted"`
	UnpricedItems  []string   `json:"unpricedItems,omitempty"`
}

// QuoteRequest carries a selection plus the active size bracket.
// An id appears in Services/Addons if and only if its quantity is > 0.
// Example: {"propertySize": "1500-2500", "bundleId": "essentials", "addons": {"matterportTour": 1}}
type QuoteRequest struct {
	PropertySize string         `json:"propertySize"`
	BundleID     string         `json:"bundleId,omitempty"`
	Services     map[string]int `json:"services,omitempty"`
	Addons       map[string]int `json:"addons,omitempty"`
}

// QuoteResponse is the /api/quote payload. ContactForPricing is set for the
// quote-on-request bracket instead of any breakdown.
type QuoteResponse struct {
	PropertySize      string     `json:"propertySize"`
	ContactForPricing bool       `json:"contactForPricing,omitempty"`
	Breakdown         *Breakdown `json:"breakdown,omitempty"`
}
