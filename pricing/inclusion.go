package pricing

import (
	"realpix-media/catalog"
)

// alwaysIncluded lists services every bundle in the catalog ships by design.
// They are marked "Included" whenever any bundle is selected, without
// consulting the bundle's own included-service lists.
var alwaysIncluded = map[string]bool{
	"propertyWebsite":    true,
	"slideshowVideoTour": true,
	"featureSheet":       true,
	"socialMediaPost":    true,
	"socialMediaStory":   true,
	"blueSkyReplacement": true,
}

// IsIncluded answers whether a service is already paid for by the currently
// selected bundle, so it can be offered as "Included" instead of a separate
// purchase.
//
// Resolution walks the bundle's explicit includedServiceIds up the structural
// parent chain. Unknown service or bundle ids conservatively resolve to not
// included; a missing parent terminates the walk.
func IsIncluded(cat *catalog.Catalog, serviceID, bundleID string) bool {
	if bundleID == "" {
		return false
	}
	if alwaysIncluded[serviceID] {
		return true
	}

	b := cat.Bundle(bundleID)
	// Depth guard: the parent chain is acyclic by authoring convention, but a
	// bad catalog must not hang the resolver.
	for depth := 0; b != nil && depth <= len(cat.Bundles); depth++ {
		for _, id := range b.IncludedServiceIDs {
			if id == serviceID {
				return true
			}
		}
		if b.ParentID == "" {
			return false
		}
		b = cat.Bundle(b.ParentID)
	}
	return false
}
