package pricing

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"realpix-media/catalog"
	"realpix-media/models"
	"realpix-media/utils"
)

// ErrUnpriced is returned for the quote-on-request size bracket. That bracket
// is categorically unpriced: the calculator performs no table lookups for it
// instead of treating it as a bracket with a zero or missing price.
var ErrUnpriced = errors.New("property size requires a custom quote")

// ComputeTotal converts a selection and the active size bracket into an
// itemized breakdown with a grand total in cents.
//
// It is a pure function of (selection, bracket, catalog): recomputation is
// independent of which selection changed last, and identical inputs yield
// identical output.
//
// Rules, in order: the selected bundle contributes one line at quantity 1;
// each selected service contributes unit price times quantity unless the
// bundle already includes it; each selected add-on with quantity > 0
// contributes unit price times quantity. Ids that cannot be resolved to a
// price are collected on the breakdown as unpriced items (and logged) rather
// than silently skipped; submission refuses while any exist.
func ComputeTotal(cat *catalog.Catalog, sel *Selection, bracketID string) (*models.Breakdown, error) {
	br := cat.Bracket(bracketID)
	if br == nil {
		return nil, fmt.Errorf("unknown size bracket %q", bracketID)
	}
	if br.Unpriced {
		return nil, ErrUnpriced
	}

	breakdown := &models.Breakdown{
		LineItems: []models.LineItem{},
	}

	if sel.BundleID != "" {
		b := cat.Bundle(sel.BundleID)
		if b == nil {
			breakdown.UnpricedItems = append(breakdown.UnpricedItems, sel.BundleID)
			log.Printf("⚠️ ComputeTotal: unknown bundle %q left unpriced", sel.BundleID)
		} else {
			price := b.Prices[br.ID] // validated present and positive at load
			breakdown.LineItems = append(breakdown.LineItems, models.LineItem{
				Name:      b.Title,
				UnitPrice: price,
				Qty:       1,
				LineTotal: price,
			})
			breakdown.Total += price
		}
	}

	for _, id := range sortedIDs(sel.Services) {
		// Services the selected bundle already covers are not separately
		// chargeable; the wizard shows them as "Included".
		if IsIncluded(cat, id, sel.BundleID) {
			continue
		}
		addService(breakdown, cat, br.ID, id, sel.Services[id])
	}

	for _, id := range sortedIDs(sel.Addons) {
		addService(breakdown, cat, br.ID, id, sel.Addons[id])
	}

	breakdown.TotalFormatted = utils.FormatUSD(breakdown.Total)
	return breakdown, nil
}

// addService resolves one selected id through the catalog's service index and
// appends a line, or records the id as unpriced.
func addService(breakdown *models.Breakdown, cat *catalog.Catalog, bracketID, serviceID string, qty int) {
	svc := cat.Service(serviceID)
	if svc == nil {
		breakdown.UnpricedItems = append(breakdown.UnpricedItems, serviceID)
		log.Printf("⚠️ ComputeTotal: unknown service %q left unpriced", serviceID)
		return
	}
	price, ok := svc.PriceFor(bracketID)
	if !ok {
		breakdown.UnpricedItems = append(breakdown.UnpricedItems, serviceID)
		log.Printf("⚠️ ComputeTotal: service %q has no price for bracket %q", serviceID, bracketID)
		return
	}
	if qty < 1 {
		qty = 1
	}

	lineTotal := price * int64(qty)
	breakdown.LineItems = append(breakdown.LineItems, models.LineItem{
		Name:      svc.Title,
		UnitPrice: price,
		Qty:       qty,
		LineTotal: lineTotal,
		PerImage:  svc.Unit == catalog.UnitPerImage,
	})
	breakdown.Total += lineTotal
}

// sortedIDs returns map keys in ascending order so line items are emitted
// deterministically regardless of selection mutation order.
func sortedIDs(m map[string]int) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
