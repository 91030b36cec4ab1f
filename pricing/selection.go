package pricing

// Selection is the user's current choices: one optional bundle, individually
// selected services with quantities, and add-ons with quantities.
//
// The quantity maps are the selection sets: an id is selected if and only if
// its map entry exists, and entries only exist with quantity > 0. Setting a
// quantity to zero deletes the entry entirely, so no zero-quantity entries
// can linger.
type Selection struct {
	BundleID string
	Services map[string]int
	Addons   map[string]int
}

// NewSelection returns an empty selection, as created at wizard start.
func NewSelection() *Selection {
	return &Selection{
		Services: make(map[string]int),
		Addons:   make(map[string]int),
	}
}

// SelectBundle sets the active bundle; an empty id clears it.
func (s *Selection) SelectBundle(bundleID string) {
	s.BundleID = bundleID
}

// SetServiceQty sets the quantity for a service. Quantity <= 0 removes the
// service from the selection.
func (s *Selection) SetServiceQty(serviceID string, qty int) {
	if qty <= 0 {
		delete(s.Services, serviceID)
		return
	}
	s.Services[serviceID] = qty
}

// SetAddonQty sets the quantity for an add-on. Quantity <= 0 removes it.
func (s *Selection) SetAddonQty(addonID string, qty int) {
	if qty <= 0 {
		delete(s.Addons, addonID)
		return
	}
	s.Addons[addonID] = qty
}

// HasService reports whether a service is currently selected.
func (s *Selection) HasService(serviceID string) bool {
	_, ok := s.Services[serviceID]
	return ok
}

// HasAddon reports whether an add-on is currently selected.
func (s *Selection) HasAddon(addonID string) bool {
	_, ok := s.Addons[addonID]
	return ok
}

// FromQuote builds a normalized selection from a wire-level quote request,
// dropping any non-positive quantities.
func FromQuote(bundleID string, services, addons map[string]int) *Selection {
	sel := NewSelection()
	sel.SelectBundle(bundleID)
	for id, qty := range services {
		sel.SetServiceQty(id, qty)
	}
	for id, qty := range addons {
		sel.SetAddonQty(id, qty)
	}
	return sel
}
