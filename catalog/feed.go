package catalog

import (
	"realpix-media/utils"
)

// Feed is the shape the booking wizard consumes: a pricing table keyed by
// size bracket then service id, plus the package definitions.
type Feed struct {
	PricingData  map[string]map[string]float64 `json:"pricingData"`
	PackagesData []FeedPackage                 `json:"packagesData"`
	Brackets     []SizeBracket                 `json:"sizeBrackets"`
	Currency     string                        `json:"currency"`
}

// FeedPackage is one bundle as presented to the wizard. Prices are display
// strings; the server-side calculator never reads them back.
type FeedPackage struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	ParentID           string            `json:"parentId,omitempty"`
	Features           []string          `json:"features"`
	IncludedServiceIDs []string          `json:"includedServiceIds"`
	Prices             map[string]string `json:"prices"`
}

// BuildFeed flattens the catalog into the wizard feed. Unpriced brackets get
// no pricing rows at all; the wizard shows a contact prompt for them.
func (c *Catalog) BuildFeed() *Feed {
	feed := &Feed{
		PricingData: make(map[string]map[string]float64),
		Brackets:    c.Brackets,
		Currency:    c.Currency,
	}

	for _, br := range c.Brackets {
		if br.Unpriced {
			continue
		}
		row := make(map[string]float64)
		for i := range c.Services {
			svc := &c.Services[i]
			if p, ok := svc.PriceFor(br.ID); ok {
				row[svc.ID] = utils.DollarsFromCents(p)
			}
		}
		feed.PricingData[br.ID] = row
	}

	for _, b := range c.Bundles {
		pkg := FeedPackage{
			ID:                 b.ID,
			Title:              b.Title,
			ParentID:           b.ParentID,
			Features:           b.Features,
			IncludedServiceIDs: b.IncludedServiceIDs,
			Prices:             make(map[string]string, len(b.Prices)),
		}
		for bracketID, cents := range b.Prices {
			pkg.Prices[bracketID] = utils.FormatUSD(cents)
		}
		feed.PackagesData = append(feed.PackagesData, pkg)
	}

	return feed
}
